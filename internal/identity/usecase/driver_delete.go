package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type DriverDeleteInput struct {
	ID int64 `validate:"required,gt=0"`
}

// DriverDelete soft deletes a driver. The record stays queryable for
// audit purposes but disappears from listings.
func (s *Usecase) DriverDelete(ctx context.Context, in DriverDeleteInput) error {
	ctx, span := s.startSpan(ctx, "DriverDelete")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "drivers", "write")
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if clm.UserID == in.ID {
		return goerror.NewBusiness("cannot delete your own account", goerror.CodeForbidden)
	}

	err = s.repoDB.MarkUserDeleted(ctx, in.ID, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "driver not found", "driver_id", in.ID)
		return goerror.NewBusiness("driver not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark user deleted", "driver_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "driver deleted", "driver_id", in.ID, "deleted_by", clm.UserID)

	return nil
}
