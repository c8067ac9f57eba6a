package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/drivelaw/backend/internal/identity/entity"
	"github.com/drivelaw/backend/internal/pkg/clock"
	"github.com/drivelaw/backend/internal/pkg/config"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/drivelaw/backend/internal/pkg/hash"
	"github.com/drivelaw/backend/internal/pkg/instrument"
	"github.com/drivelaw/backend/internal/pkg/jwt"
	"github.com/drivelaw/backend/internal/pkg/otp"
	"github.com/drivelaw/backend/internal/pkg/uid"
	"github.com/drivelaw/backend/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type OTPRequestedEvent struct {
	UserID  int64
	Contact string
	Channel entity.Channel
	Code    string
	Lang    string
}

type repoMessaging interface {
	PublishOTPRequested(ctx context.Context, msg OTPRequestedEvent) error
}

type repoDB interface {
	GetUserByContact(ctx context.Context, contact string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64, includeDeleted bool) (*entity.User, error)
	GetVerificationByContact(ctx context.Context, contact string) (*entity.Verification, error)
	GetUserList(ctx context.Context, filter entity.UserListFilterData) ([]entity.User, int64, error)

	CreateUser(ctx context.Context, user entity.NewUser) error
	UpsertVerification(ctx context.Context, in entity.NewVerification) error

	ConsumeVerificationAttempt(ctx context.Context, id int64, maxAttempts int16, lockUntil time.Time) (attempts int16, locked bool, err error)
	CompleteOnboarding(ctx context.Context, in entity.Onboarding) error
	PatchUser(ctx context.Context, user entity.PatchUser) error
	UpdateUserStatus(ctx context.Context, id int64, oldStatus, newStatus entity.UserStatus) error
	UpdateLicenseVerified(ctx context.Context, id int64, verified bool, byID int64) error
	MarkUserDeleted(ctx context.Context, id, byID int64) error

	ActivateVerifiedUser(ctx context.Context, data entity.VerifiedUser) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	codeHash      hash.Hash
	minter        otp.Minter
	uid           uid.NumberID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	CodeHash      hash.Hash
	Minter        otp.Minter
	UID           uid.NumberID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Enforcer      *casbin.Enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		codeHash:      dep.CodeHash,
		minter:        dep.Minter,
		uid:           dep.UID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) maxAttempts() int16 {
	if v := s.cfg.GetInt("modules.identity.otp_max_attempts"); v > 0 {
		return int16(v)
	}
	return 5
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
