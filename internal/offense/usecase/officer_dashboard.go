package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/drivelaw/backend/internal/offense/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type OfficerDashboardOutput struct {
	Dashboard entity.OfficerDashboard
}

// OfficerDashboard summarizes the calling officer's recording activity for
// today and overall.
func (s *Usecase) OfficerDashboard(ctx context.Context) (*OfficerDashboardOutput, error) {
	ctx, span := s.startSpan(ctx, "OfficerDashboard")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "offenses", "read")
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	dashboard, err := s.repoDB.GetOfficerDashboard(ctx, clm.UserID, dayStart)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get officer dashboard", "officer_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &OfficerDashboardOutput{Dashboard: *dashboard}, nil
}
