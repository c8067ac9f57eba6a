package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/driver/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type ProfileUpdateInput struct {
	FullName string `validate:"omitempty,min=2,max=100"`
	Region   string `validate:"omitempty,min=2,max=100"`
	Language string `validate:"omitempty,oneof=en ak"`
}

// ProfileUpdate changes the caller's self-service profile fields. Omitted
// fields keep their stored value.
func (s *Usecase) ProfileUpdate(ctx context.Context, in ProfileUpdateInput) error {
	ctx, span := s.startSpan(ctx, "ProfileUpdate")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "driver", "write")
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err = s.repoDB.PatchProfile(ctx, entity.PatchProfile{
		ID:       clm.UserID,
		FullName: in.FullName,
		Region:   in.Region,
		Language: in.Language,
	})
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "driver not found", "driver_id", clm.UserID)
		return goerror.NewBusiness("driver not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo patch driver profile", "driver_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "driver profile updated", "driver_id", clm.UserID)

	return nil
}
