package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/identity/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type LicenseActionInput struct {
	ID     int64  `validate:"required,gt=0"`
	Action string `validate:"required,oneof=suspend reinstate verify activate"`
}

// LicenseAction applies an administrative action to a driver's account
// or license.
func (s *Usecase) LicenseAction(ctx context.Context, in LicenseActionInput) error {
	ctx, span := s.startSpan(ctx, "LicenseAction")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "drivers", "write")
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	switch entity.LicenseActionFromString(in.Action) {
	case entity.LicenseActionSuspend:
		err = s.repoDB.UpdateUserStatus(ctx, in.ID, entity.UserStatusActive, entity.UserStatusSuspended)
	case entity.LicenseActionReinstate:
		err = s.repoDB.UpdateUserStatus(ctx, in.ID, entity.UserStatusSuspended, entity.UserStatusActive)
	case entity.LicenseActionVerify:
		err = s.repoDB.UpdateLicenseVerified(ctx, in.ID, true, clm.UserID)
	case entity.LicenseActionActivate:
		err = s.repoDB.UpdateUserStatus(ctx, in.ID, entity.UserStatusUnverified, entity.UserStatusActive)
	}

	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "driver not in a state that allows this action",
			"driver_id", in.ID, "action", in.Action)
		return goerror.NewBusiness("driver not found or not eligible for this action", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo apply license action",
			"driver_id", in.ID, "action", in.Action, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "license action applied",
		"driver_id", in.ID, "action", in.Action, "applied_by", clm.UserID)

	return nil
}
