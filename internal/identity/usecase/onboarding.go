package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/drivelaw/backend/internal/identity/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type OnboardingInput struct {
	FullName      string `validate:"required,min=2,max=120"`
	LicenseNumber string `validate:"required,min=4,max=32"`
	Region        string `validate:"required,min=2,max=64"`
}

type OnboardingOutput struct {
	Token     string
	ExpiresAt time.Time
}

// Onboarding completes the first-login profile setup and refreshes the
// session token so its onboarding claim reflects the new state.
func (s *Usecase) Onboarding(ctx context.Context, in OnboardingInput) (*OnboardingOutput, error) {
	ctx, span := s.startSpan(ctx, "Onboarding")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID, false)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "session user no longer exists", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if user.OnboardingDone {
		slog.WarnContext(ctx, "onboarding already completed", "user_id", user.ID)
		return nil, goerror.NewBusiness("onboarding already completed", goerror.CodeConflict)
	}

	if err := s.repoDB.CompleteOnboarding(ctx, entity.Onboarding{
		UserID:        user.ID,
		FullName:      in.FullName,
		LicenseNumber: in.LicenseNumber,
		Region:        in.Region,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo complete onboarding", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// keep the original session lifetime for the refreshed token
	ttl := clm.ExpiresAt.Time.Sub(s.clock.Now())
	token, err := s.jwt.Generate(user.ID, clm.Contact, user.Role.String(), true, ttl)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &OnboardingOutput{
		Token:     token,
		ExpiresAt: clm.ExpiresAt.Time,
	}, nil
}
