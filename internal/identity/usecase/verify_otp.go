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

type VerifyOTPInput struct {
	Contact  string `validate:"required,max=254"`
	Code     string `validate:"required,numeric"`
	Remember bool
}

type VerifyOTPOutput struct {
	Token      string
	ExpiresAt  time.Time
	UserID     int64
	Role       entity.Role
	Onboarding bool
}

// VerifyOTP checks a submitted code against the pending verification and, on
// success, activates the user and issues a session token.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	contact, err := entity.NormalizeContact(in.Contact)
	if err != nil {
		slog.WarnContext(ctx, "contact is not a valid email or phone", "contact", in.Contact)
		return nil, goerror.NewInvalidInput(nil, "contact", "must be a valid email address or phone number")
	}

	verification, err := s.repoDB.GetVerificationByContact(ctx, contact.Value)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no pending verification for contact", "contact", contact.Value)
		return nil, goerror.NewBusiness("no verification code was requested for this contact", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get verification by contact", "contact", contact.Value, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	match := s.codeHash.Verify(verification.CodeDigest, in.Code)
	lockFor := s.cfg.GetMinute("modules.identity.otp_lock_minutes")

	outcome := verification.Evaluate(now, match, s.maxAttempts(), lockFor)

	switch outcome {
	case entity.VerifyOutcomeExpired:
		slog.WarnContext(ctx, "verification code expired", "contact", contact.Value)
		return nil, goerror.NewBusiness("verification code has expired, request a new one", goerror.CodeInvalidFormat)

	case entity.VerifyOutcomeLocked:
		mins := int(math.Ceil(verification.LockRemaining(now).Minutes()))
		slog.WarnContext(ctx, "verification is locked", "contact", contact.Value, "locked_until", verification.LockedUntil)
		return nil, goerror.NewBusiness(fmt.Sprintf("too many failed attempts, try again in %d minutes", mins), goerror.CodeLocked)

	case entity.VerifyOutcomeInvalid, entity.VerifyOutcomeMaxAttempts:
		// The increment and the lock transition run in one statement so a
		// concurrent wrong code cannot erase this failure.
		attempts, locked, err := s.repoDB.ConsumeVerificationAttempt(ctx,
			verification.ID, s.maxAttempts(), now.Add(lockFor))
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "verification already locked or consumed", "contact", contact.Value)
			return nil, goerror.NewBusiness("too many failed attempts, try again later", goerror.CodeLocked)
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo consume verification attempt", "contact", contact.Value, "error", err)
			return nil, goerror.NewServer(err)
		}

		if locked {
			slog.WarnContext(ctx, "verification locked after max attempts", "contact", contact.Value)
			return nil, goerror.NewBusiness("maximum attempts reached, verification is locked temporarily", goerror.CodeLocked)
		}

		left := s.maxAttempts() - attempts
		slog.WarnContext(ctx, "verification code mismatch", "contact", contact.Value, "attempts_left", left)
		return nil, goerror.NewBusiness(fmt.Sprintf("invalid verification code, %d attempts remaining", left), goerror.CodeInvalidFormat)
	}

	if err := s.repoDB.ActivateVerifiedUser(ctx, entity.VerifiedUser{
		VerificationID: verification.ID,
		UserID:         verification.UserID,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo activate verified user", "user_id", verification.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	user, err := s.repoDB.GetUserByID(ctx, verification.UserID, false)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", verification.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	ttl := s.cfg.GetHour("modules.identity.session_ttl_hours")
	if in.Remember {
		ttl = s.cfg.GetDay("modules.identity.session_remember_ttl_days")
	}

	token, err := s.jwt.Generate(user.ID, contact.Value, user.Role.String(), user.OnboardingDone, ttl)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOTPOutput{
		Token:      token,
		ExpiresAt:  now.Add(ttl),
		UserID:     user.ID,
		Role:       user.Role,
		Onboarding: user.OnboardingDone,
	}, nil
}
