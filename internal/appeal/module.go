package appeal

import (
	"github.com/casbin/casbin/v3"
	"github.com/drivelaw/backend/internal/appeal/inbound"
	"github.com/drivelaw/backend/internal/appeal/outbound/db"
	"github.com/drivelaw/backend/internal/appeal/outbound/mq"
	"github.com/drivelaw/backend/internal/appeal/usecase"
	"github.com/drivelaw/backend/internal/pkg/clock"
	"github.com/drivelaw/backend/internal/pkg/config"
	"github.com/drivelaw/backend/internal/pkg/instrument"
	"github.com/drivelaw/backend/internal/pkg/messaging"
	"github.com/drivelaw/backend/internal/pkg/router"
	"github.com/drivelaw/backend/internal/pkg/uid"
	"github.com/drivelaw/backend/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Enforcer   *casbin.Enforcer           `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAppeal := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAppeal,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		UID:           dep.UID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Enforcer:      dep.Enforcer,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
