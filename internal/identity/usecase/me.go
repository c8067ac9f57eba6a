package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/identity/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type MeOutput struct {
	ID            int64
	FullName      string
	Email         string
	Phone         string
	Role          entity.Role
	Status        entity.UserStatus
	LicenseNumber string
	Region        string
	DrivingScore  int16
	Onboarding    bool
}

// Me returns the authenticated user's profile and onboarding state.
func (s *Usecase) Me(ctx context.Context) (*MeOutput, error) {
	ctx, span := s.startSpan(ctx, "Me")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
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

	return &MeOutput{
		ID:            user.ID,
		FullName:      user.FullName,
		Email:         user.Email,
		Phone:         user.Phone,
		Role:          user.Role,
		Status:        user.Status,
		LicenseNumber: user.LicenseNumber,
		Region:        user.Region,
		DrivingScore:  user.DrivingScore,
		Onboarding:    user.OnboardingDone,
	}, nil
}
