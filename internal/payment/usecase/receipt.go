package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/payment/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type ReceiptInput struct {
	ID int64 `validate:"required,gt=0"`
}

type ReceiptOutput struct {
	Payment entity.Payment
}

// Receipt returns the settlement record for one payment. Drivers can only
// read their own receipts; admins can read any.
func (s *Usecase) Receipt(ctx context.Context, in ReceiptInput) (*ReceiptOutput, error) {
	ctx, span := s.startSpan(ctx, "Receipt")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "payments", "read")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	payment, err := s.repoDB.GetPaymentByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "payment not found", "payment_id", in.ID)
		return nil, goerror.NewBusiness("payment not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get payment by id", "payment_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if payment.DriverID != clm.UserID && clm.Role != "admin" {
		// do not reveal that a foreign receipt exists
		slog.WarnContext(ctx, "payment belongs to another driver", "payment_id", in.ID, "user_id", clm.UserID)
		return nil, goerror.NewBusiness("payment not found", goerror.CodeNotFound)
	}

	return &ReceiptOutput{Payment: *payment}, nil
}
