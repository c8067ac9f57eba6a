package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/offense/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type UpdateStatusInput struct {
	ID     int64  `validate:"required,gt=0"`
	Status string `validate:"required,oneof=confirmed cancelled"`
}

// UpdateStatus moves a pending offense to confirmed or cancelled.
// Confirmation deducts the offense's points from the driver's score and
// announces the offense for delivery.
func (s *Usecase) UpdateStatus(ctx context.Context, in UpdateStatusInput) error {
	ctx, span := s.startSpan(ctx, "UpdateStatus")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "offenses", "write"); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	offense, err := s.repoDB.GetOffenseByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "offense not found", "offense_id", in.ID)
		return goerror.NewBusiness("offense not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get offense by id", "offense_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	if offense.Status != entity.OffenseStatusPending {
		slog.WarnContext(ctx, "offense is not pending", "offense_id", in.ID, "status", offense.Status.String())
		return goerror.NewBusiness("only pending offenses can be updated", goerror.CodeConflict)
	}

	newStatus := entity.OffenseStatusFromString(in.Status)

	if newStatus == entity.OffenseStatusCancelled {
		err := s.repoDB.UpdateOffenseStatus(ctx, in.ID, entity.OffenseStatusPending, newStatus)
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("only pending offenses can be updated", goerror.CodeConflict)
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo update offense status", "offense_id", in.ID, "error", err)
			return goerror.NewServer(err)
		}
		return nil
	}

	err = s.repoDB.ConfirmOffense(ctx, offense.ID, offense.DriverID, offense.Points)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("only pending offenses can be updated", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo confirm offense", "offense_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOffenseRecorded(ctx, OffenseRecordedEvent{
		OffenseID:     offense.ID,
		OffenseNumber: offense.Number,
		DriverID:      offense.DriverID,
		OffenseType:   offense.Type,
		FineAmount:    offense.FineAmount,
		Location:      offense.Location,
	}); err != nil {
		// record stands; delivery will be missed, not retried here
		slog.ErrorContext(ctx, "failed to publish offense recorded event", "offense_id", offense.ID, "error", err)
	}

	return nil
}
