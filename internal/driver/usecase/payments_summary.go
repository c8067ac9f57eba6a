package usecase

import (
	"context"
	"log/slog"

	"github.com/drivelaw/backend/internal/driver/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type PaymentSummaryOutput struct {
	Summary entity.PaymentSummary
}

// PaymentsSummary returns what the calling driver has paid and still owes,
// with their settlement history.
func (s *Usecase) PaymentsSummary(ctx context.Context) (*PaymentSummaryOutput, error) {
	ctx, span := s.startSpan(ctx, "PaymentsSummary")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "driver", "read")
	if err != nil {
		return nil, err
	}

	summary, err := s.repoDB.GetPaymentSummary(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get driver payment summary", "driver_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PaymentSummaryOutput{Summary: *summary}, nil
}
