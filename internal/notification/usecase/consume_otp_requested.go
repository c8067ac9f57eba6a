package usecase

import (
	"context"
	"log/slog"

	"github.com/drivelaw/backend/internal/notification/entity"
)

type ConsumeOTPRequestedInput struct {
	UserID  int64  `validate:"required,gt=0"`
	Contact string `validate:"required"`
	Channel string `validate:"required,oneof=email sms"`
	Code    string `validate:"required,len=6,numeric"`
	Lang    string `validate:"omitempty,oneof=en ak"`
}

// ConsumeOTPRequested delivers a verification code to the contact it was
// requested for. The channel is fixed by the contact form, not the user's
// stored preferences.
func (s *Usecase) ConsumeOTPRequested(ctx context.Context, in ConsumeOTPRequestedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPRequested")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	title, body, ok := s.buildMessage(ctx, entity.KindOTP, in.Lang, map[string]any{
		"code": in.Code,
	})
	if !ok {
		return nil
	}

	n := entity.CreateNotification{
		ID:     s.uid.Generate(),
		UserID: in.UserID,
		Kind:   entity.KindOTP,
		Title:  title,
		Body:   body,
	}

	if entity.ChannelFromString(in.Channel) == entity.ChannelEmail {
		s.deliverEmail(ctx, n, in.Contact)
	} else {
		s.deliverSMS(ctx, n, in.Contact)
	}

	return nil
}
