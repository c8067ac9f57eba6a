package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/offense/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type ListInput struct {
	Status   string `validate:"omitempty,oneof=pending confirmed paid cancelled"`
	Type     string `validate:"omitempty"`
	DriverID int64  `validate:"omitempty,gt=0"`
	Mine     bool
	Page     int32 `validate:"omitempty,min=1"`
	Limit    int32 `validate:"omitempty,min=1,max=100"`
}

type ListOutput struct {
	Offenses []entity.Offense
	Total    int64
	Page     int32
	Limit    int32
}

// List returns offenses for officers and admins. Mine restricts the list
// to offenses the calling officer recorded.
func (s *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "offenses", "read")
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
	if in.Type != "" {
		offenseType := entity.OffenseTypeFromString(in.Type)
		if offenseType == entity.OffenseTypeUnknown {
			return nil, goerror.NewInvalidInput(nil, "type", "must be a known offense type")
		}
		filter.IsFilterByType = true
		filter.Types = []int16{int16(offenseType)}
	}
	if in.DriverID > 0 {
		filter.IsFilterByDriver = true
		filter.DriverID = in.DriverID
	}
	if in.Mine {
		filter.IsFilterByOfficer = true
		filter.OfficerID = clm.UserID
	}

	offenses, total, err := s.repoDB.GetOffenseList(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get offense list", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListOutput{
		Offenses: offenses,
		Total:    total,
		Page:     in.Page,
		Limit:    in.Limit,
	}, nil
}

type DetailInput struct {
	ID int64 `validate:"required,gt=0"`
}

type DetailOutput struct {
	Offense entity.Offense
}

// Detail returns one offense.
func (s *Usecase) Detail(ctx context.Context, in DetailInput) (*DetailOutput, error) {
	ctx, span := s.startSpan(ctx, "Detail")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "offenses", "read"); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	offense, err := s.repoDB.GetOffenseByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "offense not found", "offense_id", in.ID)
		return nil, goerror.NewBusiness("offense not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get offense by id", "offense_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DetailOutput{Offense: *offense}, nil
}
