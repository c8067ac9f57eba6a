package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/drivelaw/backend/internal/payment/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/drivelaw/backend/internal/pkg/idempotency"
)

type PayInput struct {
	IdempotencyKey string `validate:"omitempty,max=128"`
	OffenseID      int64  `validate:"required,gt=0"`
	Method         string `validate:"required,oneof=mobile_money card bank"`
}

type PayOutput struct {
	ID        int64
	Reference string
	OffenseID int64
	Amount    int64
	Method    entity.PaymentMethod
	PaidAt    time.Time
}

// Pay settles the fine on one of the caller's confirmed offenses. The
// amount charged is always the offense's fine amount. An idempotency key
// guards against double capture.
func (s *Usecase) Pay(ctx context.Context, in PayInput) (*PayOutput, error) {
	ctx, span := s.startSpan(ctx, "Pay")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "payments", "write")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	offense, err := s.repoDB.GetOffenseForPayment(ctx, in.OffenseID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "offense not found", "offense_id", in.OffenseID)
		return nil, goerror.NewBusiness("offense not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get offense for payment", "offense_id", in.OffenseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if offense.DriverID != clm.UserID {
		// do not reveal that a foreign offense exists
		slog.WarnContext(ctx, "offense belongs to another driver", "offense_id", in.OffenseID, "user_id", clm.UserID)
		return nil, goerror.NewBusiness("offense not found", goerror.CodeNotFound)
	}

	if !offense.Payable() {
		slog.WarnContext(ctx, "offense is not payable", "offense_id", offense.ID, "status", offense.Status)
		return nil, goerror.NewBusiness("offense has no outstanding fine", goerror.CodeConflict)
	}

	method := entity.PaymentMethodFromString(in.Method)

	var out *PayOutput
	capture := func(ctx context.Context) error {
		out, err = s.capture(ctx, offense, method)
		return err
	}

	if in.IdempotencyKey == "" {
		if err := capture(ctx); err != nil {
			return nil, err
		}
		return out, nil
	}

	err = s.idemp.Exec(ctx, "payment:capture:"+in.IdempotencyKey, capture,
		idempotency.WithStateTTL(s.cfg.GetHour("modules.payment.idempotency_ttl_hours")))
	if errors.Is(err, idempotency.ErrAlreadyCompleted) || errors.Is(err, idempotency.ErrAlreadyInProgress) {
		slog.WarnContext(ctx, "duplicate payment submission", "idempotency_key", in.IdempotencyKey)
		return nil, goerror.NewBusiness("payment already submitted", goerror.CodeConflict)
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Usecase) capture(
	ctx context.Context,
	offense *entity.PaymentOffense,
	method entity.PaymentMethod,
) (*PayOutput, error) {
	seq, err := s.repoDB.NextPaymentNumber(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo next payment number", "error", err)
		return nil, goerror.NewServer(err)
	}

	payment := entity.NewPayment{
		ID:        s.uid.Generate(),
		OffenseID: offense.ID,
		DriverID:  offense.DriverID,
		Amount:    offense.FineAmount,
		Method:    method,
		PaidAt:    s.clock.Now(),
	}

	reference := fmt.Sprintf("PAY%03d", seq)
	err = s.repoDB.CreatePayment(ctx, payment, reference)
	if errors.Is(err, goerror.ErrConflict) || errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "offense already paid", "offense_id", offense.ID)
		return nil, goerror.NewBusiness("offense has already been paid", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create payment", "offense_id", offense.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishPaymentReceived(ctx, PaymentReceivedEvent{
		PaymentID:     payment.ID,
		Reference:     reference,
		OffenseID:     offense.ID,
		OffenseNumber: offense.Number,
		DriverID:      offense.DriverID,
		Amount:        payment.Amount,
	}); err != nil {
		// payment stands even if the announcement does not go out
		slog.ErrorContext(ctx, "failed to publish payment received event", "payment_id", payment.ID, "error", err)
	}

	slog.InfoContext(ctx, "payment captured",
		"payment_id", payment.ID, "reference", reference, "offense_id", offense.ID, "driver_id", offense.DriverID)

	return &PayOutput{
		ID:        payment.ID,
		Reference: reference,
		OffenseID: offense.ID,
		Amount:    payment.Amount,
		Method:    method,
		PaidAt:    payment.PaidAt,
	}, nil
}
