package mq

import (
	"context"
	"encoding/json"

	"github.com/drivelaw/backend/internal/offense/usecase"
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

func (m *Messaging) PublishOffenseRecorded(ctx context.Context, msg usecase.OffenseRecordedEvent) error {
	ctx, span := m.ins.Tracer("offense.outbound.mq").Start(ctx, "PublishOffenseRecorded")
	defer span.End()

	body, err := json.Marshal(event.OffenseRecordedMessage{
		OffenseID:     msg.OffenseID,
		OffenseNumber: msg.OffenseNumber,
		DriverID:      msg.DriverID,
		OffenseType:   msg.OffenseType.String(),
		FineAmount:    msg.FineAmount,
		Location:      msg.Location,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.OffenseRecordedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
