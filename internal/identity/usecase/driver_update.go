package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/identity/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type DriverUpdateInput struct {
	ID            int64  `validate:"required,gt=0"`
	FullName      string `validate:"omitempty,min=2,max=120"`
	LicenseNumber string `validate:"omitempty,min=4,max=32"`
	Region        string `validate:"omitempty,min=2,max=64"`
	Language      string `validate:"omitempty,oneof=en ak"`
	Status        string `validate:"omitempty,oneof=unverified active suspended inactive"`
}

// DriverUpdate patches a driver's record on behalf of an administrator.
func (s *Usecase) DriverUpdate(ctx context.Context, in DriverUpdateInput) error {
	ctx, span := s.startSpan(ctx, "DriverUpdate")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "drivers", "write")
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	patch := entity.PatchUser{
		ID:            in.ID,
		FullName:      in.FullName,
		LicenseNumber: in.LicenseNumber,
		Region:        in.Region,
		Language:      in.Language,
		Status:        userStatusFromString(in.Status),
		UpdatedBy:     clm.UserID,
	}

	err = s.repoDB.PatchUser(ctx, patch)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "driver not found", "driver_id", in.ID)
		return goerror.NewBusiness("driver not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo patch user", "driver_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
