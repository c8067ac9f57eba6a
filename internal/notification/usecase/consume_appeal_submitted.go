package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/drivelaw/backend/internal/notification/entity"
)

type ConsumeAppealSubmittedInput struct {
	AppealID      int64  `validate:"required,gt=0"`
	AppealNumber  string `validate:"required"`
	OffenseID     int64  `validate:"required,gt=0"`
	OffenseNumber string `validate:"required"`
	DriverID      int64  `validate:"required,gt=0"`
	DueAt         int64  `validate:"required,gt=0"`
}

// ConsumeAppealSubmitted acknowledges a driver's appeal and names the
// decision due date.
func (s *Usecase) ConsumeAppealSubmitted(ctx context.Context, in ConsumeAppealSubmittedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeAppealSubmitted")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	rec := s.recipient(ctx, in.DriverID)
	if rec == nil {
		return nil
	}

	s.notifyRecipient(ctx, rec, entity.KindAppealSubmitted, map[string]any{
		"number":         in.AppealNumber,
		"offense_number": in.OffenseNumber,
		"due_date":       time.Unix(in.DueAt, 0).UTC().Format("2 January 2006"),
	})

	return nil
}
