package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/drivelaw/backend/internal/notification/usecase"
	"github.com/drivelaw/backend/internal/pkg/instrument"
	"github.com/drivelaw/backend/internal/pkg/messaging"
	"github.com/drivelaw/backend/internal/pkg/uid"
	"github.com/drivelaw/backend/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) OTPRequestedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "OTPRequestedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: otp requested notification")

	var payload event.OTPRequestedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of otp requested notification", "error", err)
		return nil
	}

	if err := h.uc.ConsumeOTPRequested(ctx, usecase.ConsumeOTPRequestedInput{
		UserID:  payload.UserID,
		Contact: payload.Contact,
		Channel: payload.Channel,
		Code:    payload.Code,
		Lang:    payload.Lang,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume otp requested", "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) OffenseRecordedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "OffenseRecordedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: offense recorded notification", "msg_body", string(body))

	var payload event.OffenseRecordedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of offense recorded notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeOffenseRecorded(ctx, usecase.ConsumeOffenseRecordedInput{
		OffenseID:     payload.OffenseID,
		OffenseNumber: payload.OffenseNumber,
		DriverID:      payload.DriverID,
		OffenseType:   payload.OffenseType,
		FineAmount:    payload.FineAmount,
		Location:      payload.Location,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume offense recorded", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) AppealSubmittedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "AppealSubmittedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: appeal submitted notification", "msg_body", string(body))

	var payload event.AppealSubmittedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of appeal submitted notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeAppealSubmitted(ctx, usecase.ConsumeAppealSubmittedInput{
		AppealID:      payload.AppealID,
		AppealNumber:  payload.AppealNumber,
		OffenseID:     payload.OffenseID,
		OffenseNumber: payload.OffenseNumber,
		DriverID:      payload.DriverID,
		DueAt:         payload.DueAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume appeal submitted", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) AppealDecidedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "AppealDecidedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: appeal decided notification", "msg_body", string(body))

	var payload event.AppealDecidedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of appeal decided notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeAppealDecided(ctx, usecase.ConsumeAppealDecidedInput{
		AppealID:      payload.AppealID,
		AppealNumber:  payload.AppealNumber,
		OffenseID:     payload.OffenseID,
		OffenseNumber: payload.OffenseNumber,
		DriverID:      payload.DriverID,
		Decision:      payload.Decision,
		Reason:        payload.Reason,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume appeal decided", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) PaymentReceivedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PaymentReceivedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: payment received notification", "msg_body", string(body))

	var payload event.PaymentReceivedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of payment received notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumePaymentReceived(ctx, usecase.ConsumePaymentReceivedInput{
		PaymentID:     payload.PaymentID,
		Reference:     payload.Reference,
		OffenseID:     payload.OffenseID,
		OffenseNumber: payload.OffenseNumber,
		DriverID:      payload.DriverID,
		Amount:        payload.Amount,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume payment received", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
