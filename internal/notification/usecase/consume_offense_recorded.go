package usecase

import (
	"context"
	"log/slog"

	"github.com/drivelaw/backend/internal/notification/entity"
)

type ConsumeOffenseRecordedInput struct {
	OffenseID     int64  `validate:"required,gt=0"`
	OffenseNumber string `validate:"required"`
	DriverID      int64  `validate:"required,gt=0"`
	OffenseType   string `validate:"required"`
	FineAmount    int64  `validate:"required,gt=0"`
	Location      string `validate:"required"`
}

// ConsumeOffenseRecorded tells a driver an offense was confirmed against
// their license.
func (s *Usecase) ConsumeOffenseRecorded(ctx context.Context, in ConsumeOffenseRecordedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOffenseRecorded")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	rec := s.recipient(ctx, in.DriverID)
	if rec == nil {
		return nil
	}

	s.notifyRecipient(ctx, rec, entity.KindOffenseRecorded, map[string]any{
		"number":   in.OffenseNumber,
		"type":     in.OffenseType,
		"location": in.Location,
		"fine":     in.FineAmount,
	})

	return nil
}
