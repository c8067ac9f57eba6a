package mq

import (
	"context"
	"encoding/json"

	"github.com/drivelaw/backend/internal/appeal/usecase"
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

func (m *Messaging) PublishAppealSubmitted(ctx context.Context, msg usecase.AppealSubmittedEvent) error {
	ctx, span := m.ins.Tracer("appeal.outbound.mq").Start(ctx, "PublishAppealSubmitted")
	defer span.End()

	body, err := json.Marshal(event.AppealSubmittedMessage{
		AppealID:      msg.AppealID,
		AppealNumber:  msg.AppealNumber,
		OffenseID:     msg.OffenseID,
		OffenseNumber: msg.OffenseNumber,
		DriverID:      msg.DriverID,
		DueAt:         msg.DueAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.AppealSubmittedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishAppealDecided(ctx context.Context, msg usecase.AppealDecidedEvent) error {
	ctx, span := m.ins.Tracer("appeal.outbound.mq").Start(ctx, "PublishAppealDecided")
	defer span.End()

	body, err := json.Marshal(event.AppealDecidedMessage{
		AppealID:      msg.AppealID,
		AppealNumber:  msg.AppealNumber,
		OffenseID:     msg.OffenseID,
		OffenseNumber: msg.OffenseNumber,
		DriverID:      msg.DriverID,
		Decision:      msg.Decision.String(),
		Reason:        msg.Reason,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.AppealDecidedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
