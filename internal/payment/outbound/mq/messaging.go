package mq

import (
	"context"
	"encoding/json"

	"github.com/drivelaw/backend/internal/payment/usecase"
	"github.com/drivelaw/backend/internal/pkg/instrument"
	"github.com/drivelaw/backend/internal/pkg/messaging"
	"github.com/drivelaw/backend/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishPaymentReceived(ctx context.Context, msg usecase.PaymentReceivedEvent) error {
	ctx, span := m.ins.Tracer("payment.outbound.mq").Start(ctx, "PublishPaymentReceived")
	defer span.End()

	body, err := json.Marshal(event.PaymentReceivedMessage{
		PaymentID:     msg.PaymentID,
		Reference:     msg.Reference,
		OffenseID:     msg.OffenseID,
		OffenseNumber: msg.OffenseNumber,
		DriverID:      msg.DriverID,
		Amount:        msg.Amount,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.PaymentReceivedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
