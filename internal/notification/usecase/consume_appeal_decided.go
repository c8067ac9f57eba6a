package usecase

import (
	"context"
	"log/slog"

	"github.com/drivelaw/backend/internal/notification/entity"
)

type ConsumeAppealDecidedInput struct {
	AppealID      int64  `validate:"required,gt=0"`
	AppealNumber  string `validate:"required"`
	OffenseID     int64  `validate:"required,gt=0"`
	OffenseNumber string `validate:"required"`
	DriverID      int64  `validate:"required,gt=0"`
	Decision      string `validate:"required,oneof=approved rejected"`
	Reason        string `validate:"required"`
}

// ConsumeAppealDecided tells a driver the outcome of their appeal.
func (s *Usecase) ConsumeAppealDecided(ctx context.Context, in ConsumeAppealDecidedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeAppealDecided")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	rec := s.recipient(ctx, in.DriverID)
	if rec == nil {
		return nil
	}

	s.notifyRecipient(ctx, rec, entity.KindAppealDecided, map[string]any{
		"number":         in.AppealNumber,
		"offense_number": in.OffenseNumber,
		"decision":       in.Decision,
		"reason":         in.Reason,
	})

	return nil
}
