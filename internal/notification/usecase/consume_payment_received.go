package usecase

import (
	"context"
	"log/slog"

	"github.com/drivelaw/backend/internal/notification/entity"
)

type ConsumePaymentReceivedInput struct {
	PaymentID     int64  `validate:"required,gt=0"`
	Reference     string `validate:"required"`
	OffenseID     int64  `validate:"required,gt=0"`
	OffenseNumber string `validate:"required"`
	DriverID      int64  `validate:"required,gt=0"`
	Amount        int64  `validate:"required,gt=0"`
}

// ConsumePaymentReceived confirms a fine settlement to the driver.
func (s *Usecase) ConsumePaymentReceived(ctx context.Context, in ConsumePaymentReceivedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePaymentReceived")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	rec := s.recipient(ctx, in.DriverID)
	if rec == nil {
		return nil
	}

	s.notifyRecipient(ctx, rec, entity.KindPaymentReceived, map[string]any{
		"reference":      in.Reference,
		"offense_number": in.OffenseNumber,
		"amount":         in.Amount,
	})

	return nil
}
