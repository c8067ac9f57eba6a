package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/drivelaw/backend/internal/appeal/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type ListOwnInput struct {
	Status string `validate:"omitempty,oneof=pending approved rejected"`
	Page   int32  `validate:"omitempty,min=1"`
	Limit  int32  `validate:"omitempty,min=1,max=100"`
}

type ListOutput struct {
	Appeals []entity.Appeal
	Total   int64
	Page    int32
	Limit   int32
}

// ListOwn returns the calling driver's appeals.
func (s *Usecase) ListOwn(ctx context.Context, in ListOwnInput) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "ListOwn")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "appeals", "read")
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

	filter := entity.AppealListFilterData{
		IsFilterByDriver: true,
		DriverID:         clm.UserID,
		Limit:            in.Limit,
		Offset:           (in.Page - 1) * in.Limit,
	}
	if in.Status != "" {
		filter.IsFilterByStatus = true
		filter.Statuses = []int16{int16(entity.AppealStatusFromString(in.Status))}
	}

	appeals, total, err := s.repoDB.GetAppealList(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get appeal list", "driver_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListOutput{
		Appeals: appeals,
		Total:   total,
		Page:    in.Page,
		Limit:   in.Limit,
	}, nil
}

type QueueInput struct {
	Status string `validate:"omitempty,oneof=pending approved rejected"`
	Page   int32  `validate:"omitempty,min=1"`
	Limit  int32  `validate:"omitempty,min=1,max=100"`
}

// Queue returns the admin review queue, oldest first so derived priority
// surfaces the longest-waiting appeals.
func (s *Usecase) Queue(ctx context.Context, in QueueInput) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "Queue")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "appeals", "decide"); err != nil {
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

	filter := entity.AppealListFilterData{
		Limit:  in.Limit,
		Offset: (in.Page - 1) * in.Limit,
	}
	if in.Status == "" {
		filter.IsFilterByStatus = true
		filter.Statuses = []int16{int16(entity.AppealStatusPending)}
	} else {
		filter.IsFilterByStatus = true
		filter.Statuses = []int16{int16(entity.AppealStatusFromString(in.Status))}
	}

	appeals, total, err := s.repoDB.GetAppealList(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get appeal list", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListOutput{
		Appeals: appeals,
		Total:   total,
		Page:    in.Page,
		Limit:   in.Limit,
	}, nil
}

type DetailInput struct {
	ID int64 `validate:"required,gt=0"`
}

type DetailOutput struct {
	Appeal entity.Appeal
}

// Detail returns one appeal for admin review.
func (s *Usecase) Detail(ctx context.Context, in DetailInput) (*DetailOutput, error) {
	ctx, span := s.startSpan(ctx, "Detail")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "appeals", "decide"); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	appeal, err := s.repoDB.GetAppealByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "appeal not found", "appeal_id", in.ID)
		return nil, goerror.NewBusiness("appeal not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get appeal by id", "appeal_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DetailOutput{Appeal: *appeal}, nil
}
