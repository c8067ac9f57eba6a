package usecase

import (
	"context"
	"log/slog"

	"github.com/casbin/casbin/v3"
	"github.com/drivelaw/backend/internal/appeal/entity"
	"github.com/drivelaw/backend/internal/pkg/clock"
	"github.com/drivelaw/backend/internal/pkg/config"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/drivelaw/backend/internal/pkg/instrument"
	"github.com/drivelaw/backend/internal/pkg/jwt"
	"github.com/drivelaw/backend/internal/pkg/uid"
	"github.com/drivelaw/backend/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type AppealSubmittedEvent struct {
	AppealID      int64
	AppealNumber  string
	OffenseID     int64
	OffenseNumber string
	DriverID      int64
	DueAt         int64
}

type AppealDecidedEvent struct {
	AppealID      int64
	AppealNumber  string
	OffenseID     int64
	OffenseNumber string
	DriverID      int64
	Decision      entity.AppealStatus
	Reason        string
}

type repoMessaging interface {
	PublishAppealSubmitted(ctx context.Context, msg AppealSubmittedEvent) error
	PublishAppealDecided(ctx context.Context, msg AppealDecidedEvent) error
}

type repoDB interface {
	GetAppealByID(ctx context.Context, id int64) (*entity.Appeal, error)
	GetAppealList(ctx context.Context, filter entity.AppealListFilterData) ([]entity.Appeal, int64, error)
	GetOffenseForAppeal(ctx context.Context, offenseID int64) (*entity.AppealOffense, error)
	GetStatistics(ctx context.Context) (*entity.Statistics, error)

	NextAppealNumber(ctx context.Context) (int64, error)
	CreateAppeal(ctx context.Context, appeal entity.NewAppeal, number string) error

	ApproveAppeal(ctx context.Context, decision entity.Decision) error
	RejectAppeal(ctx context.Context, decision entity.Decision) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	UID           uid.NumberID
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
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("appeal.usecase").Start(ctx, name)
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
