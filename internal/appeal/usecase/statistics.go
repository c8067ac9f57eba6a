package usecase

import (
	"context"
	"log/slog"

	"github.com/drivelaw/backend/internal/appeal/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type StatisticsOutput struct {
	Statistics entity.Statistics
}

// Statistics returns the admin appeal aggregates.
func (s *Usecase) Statistics(ctx context.Context) (*StatisticsOutput, error) {
	ctx, span := s.startSpan(ctx, "Statistics")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "statistics", "read"); err != nil {
		return nil, err
	}

	stats, err := s.repoDB.GetStatistics(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get appeal statistics", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &StatisticsOutput{Statistics: *stats}, nil
}
