package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/appeal/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type DecideInput struct {
	ID       int64  `validate:"required,gt=0"`
	Decision string `validate:"required,oneof=approve reject"`
	Reason   string `validate:"required,min=5,max=2000"`
}

// Decide records an admin ruling. Approval cancels the offense and restores
// the driver's deducted points; rejection leaves the offense standing.
// Decided appeals are immutable.
func (s *Usecase) Decide(ctx context.Context, in DecideInput) error {
	ctx, span := s.startSpan(ctx, "Decide")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "appeals", "decide")
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	appeal, err := s.repoDB.GetAppealByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "appeal not found", "appeal_id", in.ID)
		return goerror.NewBusiness("appeal not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get appeal by id", "appeal_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	if appeal.Decided() {
		slog.WarnContext(ctx, "appeal already decided", "appeal_id", appeal.ID, "status", appeal.Status.String())
		return goerror.NewBusiness("appeal has already been decided", goerror.CodeConflict)
	}

	offense, err := s.repoDB.GetOffenseForAppeal(ctx, appeal.OffenseID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get offense for appeal", "offense_id", appeal.OffenseID, "error", err)
		return goerror.NewServer(err)
	}

	decision := entity.Decision{
		AppealID:  appeal.ID,
		OffenseID: offense.ID,
		DriverID:  appeal.DriverID,
		Points:    offense.Points,
		DecidedBy: clm.UserID,
		Reason:    in.Reason,
		DecidedAt: s.clock.Now(),
	}

	outcome := entity.AppealStatusRejected
	if in.Decision == "approve" {
		outcome = entity.AppealStatusApproved
		err = s.repoDB.ApproveAppeal(ctx, decision)
	} else {
		err = s.repoDB.RejectAppeal(ctx, decision)
	}

	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("appeal has already been decided", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo decide appeal", "appeal_id", appeal.ID, "decision", in.Decision, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishAppealDecided(ctx, AppealDecidedEvent{
		AppealID:      appeal.ID,
		AppealNumber:  appeal.Number,
		OffenseID:     offense.ID,
		OffenseNumber: offense.Number,
		DriverID:      appeal.DriverID,
		Decision:      outcome,
		Reason:        in.Reason,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish appeal decided event", "appeal_id", appeal.ID, "error", err)
	}

	slog.InfoContext(ctx, "appeal decided",
		"appeal_id", appeal.ID, "decision", outcome.String(), "decided_by", clm.UserID)

	return nil
}
