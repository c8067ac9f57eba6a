package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/drivelaw/backend/internal/offense/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/drivelaw/backend/internal/pkg/idempotency"
)

type CreateInput struct {
	IdempotencyKey string `validate:"omitempty,max=128"`
	LicenseNumber  string `validate:"required,min=4,max=32"`
	Type           string `validate:"required"`
	Location       string `validate:"required,min=2,max=255"`
	Description    string `validate:"omitempty,max=2000"`
	OccurredAt     time.Time
}

type CreateOutput struct {
	ID         int64
	Number     string
	DriverID   int64
	FineAmount int64
	Points     int16
	Status     entity.OffenseStatus
}

// Create records a new offense against a driver, looked up by license
// number. The fine amount and points come from the penalty schedule, not
// the request. An idempotency key guards against duplicate submissions.
func (s *Usecase) Create(ctx context.Context, in CreateInput) (*CreateOutput, error) {
	ctx, span := s.startSpan(ctx, "Create")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "offenses", "write")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	offenseType := entity.OffenseTypeFromString(in.Type)
	penalty, ok := entity.PenaltyFor(offenseType)
	if !ok {
		return nil, goerror.NewInvalidInput(nil, "type", "must be a known offense type")
	}

	var out *CreateOutput
	record := func(ctx context.Context) error {
		out, err = s.record(ctx, in, clm.UserID, offenseType, penalty)
		return err
	}

	if in.IdempotencyKey == "" {
		if err := record(ctx); err != nil {
			return nil, err
		}
		return out, nil
	}

	err = s.idemp.Exec(ctx, "offense:create:"+in.IdempotencyKey, record,
		idempotency.WithStateTTL(s.cfg.GetHour("modules.offense.idempotency_ttl_hours")))
	if errors.Is(err, idempotency.ErrAlreadyCompleted) || errors.Is(err, idempotency.ErrAlreadyInProgress) {
		slog.WarnContext(ctx, "duplicate offense submission", "idempotency_key", in.IdempotencyKey)
		return nil, goerror.NewBusiness("offense already submitted", goerror.CodeConflict)
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Usecase) record(
	ctx context.Context,
	in CreateInput,
	officerID int64,
	offenseType entity.OffenseType,
	penalty entity.Penalty,
) (*CreateOutput, error) {
	driver, err := s.repoDB.GetDriverByLicense(ctx, in.LicenseNumber)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no driver holds this license", "license_number", in.LicenseNumber)
		return nil, goerror.NewBusiness("driver not found for license number", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get driver by license", "license_number", in.LicenseNumber, "error", err)
		return nil, goerror.NewServer(err)
	}

	seq, err := s.repoDB.NextOffenseNumber(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo next offense number", "error", err)
		return nil, goerror.NewServer(err)
	}

	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = s.clock.Now()
	}

	offense := entity.NewOffense{
		ID:          s.uid.Generate(),
		DriverID:    driver.ID,
		OfficerID:   officerID,
		Type:        offenseType,
		FineAmount:  penalty.FineAmount,
		Points:      penalty.Points,
		Location:    in.Location,
		Description: in.Description,
		OccurredAt:  occurredAt,
	}

	number := fmt.Sprintf("OFF%03d", seq)
	if err := s.repoDB.CreateOffense(ctx, offense, number); err != nil {
		slog.ErrorContext(ctx, "failed to repo create offense", "driver_id", driver.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "offense recorded",
		"offense_id", offense.ID, "number", number, "driver_id", driver.ID, "officer_id", officerID)

	return &CreateOutput{
		ID:         offense.ID,
		Number:     number,
		DriverID:   driver.ID,
		FineAmount: penalty.FineAmount,
		Points:     penalty.Points,
		Status:     entity.OffenseStatusPending,
	}, nil
}
