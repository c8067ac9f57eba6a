package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/driver/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type OffensesInput struct {
	Status string `validate:"omitempty,oneof=pending confirmed paid cancelled"`
	Page   int32  `validate:"omitempty,min=1"`
	Limit  int32  `validate:"omitempty,min=1,max=100"`
}

type OffensesOutput struct {
	Offenses []entity.Offense
	Total    int64
	Page     int32
	Limit    int32
}

// Offenses returns the calling driver's own offense records.
func (s *Usecase) Offenses(ctx context.Context, in OffensesInput) (*OffensesOutput, error) {
	ctx, span := s.startSpan(ctx, "Offenses")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "driver", "read")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Page == 0 {
		in.Page = 1
	}
	if in.Limit == 0 {
		in.Limit = 20
	}

	filter := entity.OffenseListFilterData{
		Limit:  in.Limit,
		Offset: (in.Page - 1) * in.Limit,
	}
	if in.Status != "" {
		filter.IsFilterByStatus = true
		filter.Statuses = []int16{int16(entity.OffenseStatusFromString(in.Status))}
	}

	offenses, total, err := s.repoDB.GetOffenseList(ctx, clm.UserID, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get driver offense list", "driver_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &OffensesOutput{
		Offenses: offenses,
		Total:    total,
		Page:     in.Page,
		Limit:    in.Limit,
	}, nil
}

type OffenseDetailInput struct {
	ID int64 `validate:"required,gt=0"`
}

type OffenseDetailOutput struct {
	Offense entity.Offense
}

// OffenseDetail returns one of the caller's offense records. A record
// belonging to another driver reads as not found.
func (s *Usecase) OffenseDetail(ctx context.Context, in OffenseDetailInput) (*OffenseDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "OffenseDetail")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "driver", "read")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	offense, err := s.repoDB.GetOffenseByID(ctx, clm.UserID, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "offense not found", "offense_id", in.ID, "driver_id", clm.UserID)
		return nil, goerror.NewBusiness("offense not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get driver offense by id", "offense_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &OffenseDetailOutput{Offense: *offense}, nil
}
