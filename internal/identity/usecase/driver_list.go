package usecase

import (
	"context"
	"log/slog"

	"github.com/drivelaw/backend/internal/identity/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

type DriverListInput struct {
	Search string `validate:"omitempty,max=120"`
	Status string `validate:"omitempty,oneof=unverified active suspended inactive"`
	Page   int32  `validate:"omitempty,min=1"`
	Limit  int32  `validate:"omitempty,min=1,max=100"`
}

type DriverListOutput struct {
	Drivers []entity.User
	Total   int64
	Page    int32
	Limit   int32
}

// DriverList returns the paged driver directory for administrators.
func (s *Usecase) DriverList(ctx context.Context, in DriverListInput) (*DriverListOutput, error) {
	ctx, span := s.startSpan(ctx, "DriverList")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "drivers", "read"); err != nil {
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

	filter := entity.UserListFilterData{
		Limit:  in.Limit,
		Offset: (in.Page - 1) * in.Limit,
	}
	if in.Search != "" {
		filter.IsFilterBySearch = true
		filter.Search = in.Search
	}
	if in.Status != "" {
		filter.IsFilterByStatus = true
		filter.Statuses = []int16{int16(userStatusFromString(in.Status))}
	}

	drivers, total, err := s.repoDB.GetUserList(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user list", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DriverListOutput{
		Drivers: drivers,
		Total:   total,
		Page:    in.Page,
		Limit:   in.Limit,
	}, nil
}

func userStatusFromString(str string) entity.UserStatus {
	switch str {
	case "unverified":
		return entity.UserStatusUnverified
	case "active":
		return entity.UserStatusActive
	case "suspended":
		return entity.UserStatusSuspended
	case "inactive":
		return entity.UserStatusInactive
	default:
		return entity.UserStatusUnknown
	}
}
