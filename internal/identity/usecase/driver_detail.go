package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/identity/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type DriverDetailInput struct {
	ID int64 `validate:"required,gt=0"`
}

type DriverDetailOutput struct {
	Driver entity.User
}

// DriverDetail returns one driver's full record for administrators.
func (s *Usecase) DriverDetail(ctx context.Context, in DriverDetailInput) (*DriverDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "DriverDetail")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "drivers", "read"); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	driver, err := s.repoDB.GetUserByID(ctx, in.ID, true)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "driver not found", "driver_id", in.ID)
		return nil, goerror.NewBusiness("driver not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "driver_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DriverDetailOutput{Driver: *driver}, nil
}
