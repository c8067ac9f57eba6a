package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/drivelaw/backend/internal/appeal/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type SubmitInput struct {
	OffenseID int64  `validate:"required,gt=0"`
	Reason    string `validate:"required,min=10,max=2000"`
}

type SubmitOutput struct {
	ID     int64
	Number string
	DueAt  time.Time
	Status entity.AppealStatus
}

// Submit files an appeal against one of the caller's own offenses. An
// offense can be appealed once while it is still pending or confirmed.
func (s *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmitOutput, error) {
	ctx, span := s.startSpan(ctx, "Submit")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "appeals", "write")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	offense, err := s.repoDB.GetOffenseForAppeal(ctx, in.OffenseID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "offense not found", "offense_id", in.OffenseID)
		return nil, goerror.NewBusiness("offense not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get offense for appeal", "offense_id", in.OffenseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if offense.DriverID != clm.UserID {
		// do not reveal that a foreign offense exists
		slog.WarnContext(ctx, "offense belongs to another driver", "offense_id", in.OffenseID, "user_id", clm.UserID)
		return nil, goerror.NewBusiness("offense not found", goerror.CodeNotFound)
	}

	if !offense.Appealable() {
		slog.WarnContext(ctx, "offense is not appealable", "offense_id", offense.ID, "status", offense.Status)
		return nil, goerror.NewBusiness("offense can no longer be appealed", goerror.CodeConflict)
	}

	now := s.clock.Now()
	dueAt := now.Add(s.cfg.GetDay("modules.appeal.due_days"))

	appeal := entity.NewAppeal{
		ID:        s.uid.Generate(),
		OffenseID: offense.ID,
		DriverID:  clm.UserID,
		Reason:    in.Reason,
		DueAt:     dueAt,
	}

	number, err := s.create(ctx, appeal)
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "offense already appealed", "offense_id", offense.ID)
		return nil, goerror.NewBusiness("offense has already been appealed", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create appeal", "offense_id", offense.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishAppealSubmitted(ctx, AppealSubmittedEvent{
		AppealID:      appeal.ID,
		AppealNumber:  number,
		OffenseID:     offense.ID,
		OffenseNumber: offense.Number,
		DriverID:      clm.UserID,
		DueAt:         dueAt.Unix(),
	}); err != nil {
		// appeal stands even if the announcement does not go out
		slog.ErrorContext(ctx, "failed to publish appeal submitted event", "appeal_id", appeal.ID, "error", err)
	}

	slog.InfoContext(ctx, "appeal submitted",
		"appeal_id", appeal.ID, "number", number, "offense_id", offense.ID, "driver_id", clm.UserID)

	return &SubmitOutput{
		ID:     appeal.ID,
		Number: number,
		DueAt:  dueAt,
		Status: entity.AppealStatusPending,
	}, nil
}

func (s *Usecase) create(ctx context.Context, appeal entity.NewAppeal) (string, error) {
	seq, err := s.repoDB.NextAppealNumber(ctx)
	if err != nil {
		return "", err
	}

	number := fmt.Sprintf("APP%03d", seq)
	if err := s.repoDB.CreateAppeal(ctx, appeal, number); err != nil {
		return "", err
	}

	return number, nil
}
