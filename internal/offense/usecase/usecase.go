package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/drivelaw/backend/internal/offense/entity"
	"github.com/drivelaw/backend/internal/pkg/clock"
	"github.com/drivelaw/backend/internal/pkg/config"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/drivelaw/backend/internal/pkg/idempotency"
	"github.com/drivelaw/backend/internal/pkg/instrument"
	"github.com/drivelaw/backend/internal/pkg/jwt"
	"github.com/drivelaw/backend/internal/pkg/storage"
	"github.com/drivelaw/backend/internal/pkg/uid"
	"github.com/drivelaw/backend/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type OffenseRecordedEvent struct {
	OffenseID     int64
	OffenseNumber string
	DriverID      int64
	OffenseType   entity.OffenseType
	FineAmount    int64
	Location      string
}

type repoMessaging interface {
	PublishOffenseRecorded(ctx context.Context, msg OffenseRecordedEvent) error
}

type repoDB interface {
	GetDriverByLicense(ctx context.Context, license string) (*entity.Driver, error)
	GetOffenseByID(ctx context.Context, id int64) (*entity.Offense, error)
	GetOffenseList(ctx context.Context, filter entity.OffenseListFilterData) ([]entity.Offense, int64, error)
	GetOfficerDashboard(ctx context.Context, officerID int64, dayStart time.Time) (*entity.OfficerDashboard, error)
	GetStatistics(ctx context.Context) (*entity.Statistics, error)

	NextOffenseNumber(ctx context.Context) (int64, error)
	CreateOffense(ctx context.Context, offense entity.NewOffense, number string) error

	UpdateOffenseStatus(ctx context.Context, id int64, oldStatus, newStatus entity.OffenseStatus) error
	ConfirmOffense(ctx context.Context, id, driverID int64, points int16) error
	AppendEvidenceKey(ctx context.Context, id int64, key string) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	idemp         idempotency.Idempotency
	storage       storage.Storage
	uid           uid.NumberID
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Idempotency   idempotency.Idempotency
	Storage       storage.Storage
	UID           uid.NumberID
	UUID          uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Enforcer      *casbin.Enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		idemp:         dep.Idempotency,
		storage:       dep.Storage,
		uid:           dep.UID,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("offense.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	return clm, nil
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := s.enforcer.Enforce(clm.Role, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.UserID, "role", clm.Role, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}
