package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/drivelaw/backend/internal/identity/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type SendOTPInput struct {
	Contact string `validate:"required,max=254"`
}

type SendOTPOutput struct {
	Contact   string
	Channel   entity.Channel
	ExpiresIn time.Duration
}

// SendOTP issues a fresh verification code for a contact and hands it to the
// delivery pipeline. Re-sending overwrites the previous code, resets the
// attempt counter, and starts a new expiry window.
func (s *Usecase) SendOTP(ctx context.Context, in SendOTPInput) (*SendOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "SendOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	contact, err := entity.NormalizeContact(in.Contact)
	if err != nil {
		slog.WarnContext(ctx, "contact is not a valid email or phone", "contact", in.Contact)
		return nil, goerror.NewInvalidInput(nil, "contact", "must be a valid email address or phone number")
	}

	now := s.clock.Now()

	verification, err := s.repoDB.GetVerificationByContact(ctx, contact.Value)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get verification by contact", "contact", contact.Value, "error", err)
		return nil, goerror.NewServer(err)
	}

	if verification != nil && verification.Locked(now) {
		mins := int(math.Ceil(verification.LockRemaining(now).Minutes()))
		slog.WarnContext(ctx, "verification is locked, refusing to issue code",
			"contact", contact.Value, "locked_until", verification.LockedUntil)
		return nil, goerror.NewBusiness(fmt.Sprintf("too many failed attempts, try again in %d minutes", mins), goerror.CodeLocked)
	}

	user, err := s.repoDB.GetUserByContact(ctx, contact.Value)
	if errors.Is(err, goerror.ErrNotFound) {
		user = &entity.User{
			ID:       s.uid.Generate(),
			Role:     entity.RoleDriver,
			Status:   entity.UserStatusUnverified,
			Language: s.cfg.GetString("modules.identity.default_language"),
		}
		newUser := entity.NewUser{
			ID:       user.ID,
			Role:     user.Role,
			Status:   user.Status,
			Language: user.Language,
		}
		if contact.Channel == entity.ChannelEmail {
			newUser.Email = contact.Value
			user.Email = contact.Value
		} else {
			newUser.Phone = contact.Value
			user.Phone = contact.Value
		}

		if err := s.repoDB.CreateUser(ctx, newUser); err != nil {
			slog.ErrorContext(ctx, "failed to repo create user", "contact", contact.Value, "error", err)
			return nil, goerror.NewServer(err)
		}
	} else if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by contact", "contact", contact.Value, "error", err)
		return nil, goerror.NewServer(err)
	}

	code, err := s.minter.Mint()
	if err != nil {
		slog.ErrorContext(ctx, "failed to mint verification code", "error", err)
		return nil, goerror.NewServer(err)
	}

	digest, err := s.codeHash.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash verification code", "error", err)
		return nil, goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.identity.otp_ttl_minutes")
	if err := s.repoDB.UpsertVerification(ctx, entity.NewVerification{
		ID:         s.uid.Generate(),
		UserID:     user.ID,
		Contact:    contact.Value,
		Channel:    contact.Channel,
		CodeDigest: string(digest),
		ExpiresAt:  now.Add(ttl),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert verification", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOTPRequested(ctx, OTPRequestedEvent{
		UserID:  user.ID,
		Contact: contact.Value,
		Channel: contact.Channel,
		Code:    code,
		Lang:    user.Language,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp requested event", "user_id", user.ID, "error", err)
		return nil, goerror.NewBusiness("failed to deliver verification code, please retry", goerror.CodeDependencyFailed)
	}

	return &SendOTPOutput{
		Contact:   entity.MaskContact(contact),
		Channel:   contact.Channel,
		ExpiresIn: ttl,
	}, nil
}
