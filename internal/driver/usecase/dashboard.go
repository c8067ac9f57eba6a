package usecase

import (
	"context"
	"log/slog"

	"github.com/drivelaw/backend/internal/driver/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type DashboardOutput struct {
	Dashboard entity.Dashboard
}

// Dashboard returns the calling driver's home screen aggregate: driving
// score, outstanding fines, counts, and a handful of recent offenses.
func (s *Usecase) Dashboard(ctx context.Context) (*DashboardOutput, error) {
	ctx, span := s.startSpan(ctx, "Dashboard")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "driver", "read")
	if err != nil {
		return nil, err
	}

	dashboard, err := s.repoDB.GetDashboard(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get driver dashboard", "driver_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DashboardOutput{Dashboard: *dashboard}, nil
}
