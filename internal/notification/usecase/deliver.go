package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/notification/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/drivelaw/backend/internal/pkg/mail"
	"github.com/drivelaw/backend/internal/pkg/sms"
)

func (s *Usecase) recipient(ctx context.Context, userID int64) *entity.Recipient {
	rec, err := s.repoDB.GetRecipient(ctx, userID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "notification recipient not found", "user_id", userID)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get recipient", "user_id", userID, "error", err)
		return nil
	}

	return rec
}

func (s *Usecase) buildMessage(ctx context.Context, kind entity.Kind, lang string, data map[string]any) (string, string, bool) {
	tpl := lookupTemplate(kind, lang)
	if tpl.Title == "" {
		slog.ErrorContext(ctx, "no message template for kind", "kind", kind.String(), "lang", lang)
		return "", "", false
	}

	body, err := s.renderTemplate(kind.String(), tpl.Body, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render message body", "kind", kind.String(), "error", err)
		return "", "", false
	}

	return tpl.Title, body, true
}

// notifyRecipient writes the inbox row and pushes it out over the best
// available channel: email when the user has one, SMS otherwise. Users with
// neither still get the in-app row.
func (s *Usecase) notifyRecipient(ctx context.Context, rec *entity.Recipient, kind entity.Kind, data map[string]any) {
	title, body, ok := s.buildMessage(ctx, kind, rec.Language, data)
	if !ok {
		return
	}

	n := entity.CreateNotification{
		ID:     s.uid.Generate(),
		UserID: rec.ID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	}

	switch {
	case rec.Email != "":
		s.deliverEmail(ctx, n, rec.Email)
	case rec.Phone != "":
		s.deliverSMS(ctx, n, rec.Phone)
	default:
		if err := s.repoDB.CreateNotification(ctx, n); err != nil {
			slog.ErrorContext(ctx, "failed to repo create notification", "user_id", rec.ID, "kind", kind.String(), "error", err)
		}
	}
}

func (s *Usecase) deliverEmail(ctx context.Context, n entity.CreateNotification, email string) {
	logID, err := s.repoDB.CreateNotificationWithDeliveryLog(ctx, n, entity.CreateDeliveryLog{
		NotificationID: n.ID,
		Channel:        entity.ChannelEmail,
		Status:         entity.DeliveryStatusQueued,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create email notification+log", "user_id", n.UserID, "kind", n.Kind.String(), "error", err)
		return
	}

	sendErr := s.repoMail.Send(ctx, mail.Message{
		To:       []string{email},
		Subject:  n.Title,
		TextBody: n.Body,
	})
	s.settleDeliveryLog(ctx, logID, sendErr)
}

func (s *Usecase) deliverSMS(ctx context.Context, n entity.CreateNotification, phone string) {
	logID, err := s.repoDB.CreateNotificationWithDeliveryLog(ctx, n, entity.CreateDeliveryLog{
		NotificationID: n.ID,
		Channel:        entity.ChannelSMS,
		Status:         entity.DeliveryStatusQueued,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create sms notification+log", "user_id", n.UserID, "kind", n.Kind.String(), "error", err)
		return
	}

	sendErr := s.repoSMS.Send(ctx, sms.Message{
		To:   phone,
		Body: n.Body,
	})
	s.settleDeliveryLog(ctx, logID, sendErr)
}

func (s *Usecase) settleDeliveryLog(ctx context.Context, logID int64, sendErr error) {
	if sendErr == nil {
		up := entity.UpdateDeliveryLog{
			ID:     logID,
			Status: entity.DeliveryStatusSent,
		}
		if err := s.repoDB.UpdateDeliveryLogStatus(ctx, up); err != nil {
			slog.ErrorContext(ctx, "failed to repo update delivery log status sent", "log_id", logID, "error", err)
		}
		return
	}

	nextRetry := s.clock.Now().Add(s.cfg.GetMinute("modules.notification.retry_minutes"))
	up := entity.UpdateDeliveryLog{
		ID:               logID,
		Status:           entity.DeliveryStatusFailed,
		ProviderResponse: sendErr.Error(),
		NextRetryAt:      &nextRetry,
	}
	if err := s.repoDB.UpdateDeliveryLogStatus(ctx, up); err != nil {
		slog.ErrorContext(ctx, "failed to repo update delivery log status failed", "log_id", logID, "error", err)
	}

	slog.ErrorContext(ctx, "failed to deliver notification", "log_id", logID, "error", sendErr)
}
