package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/drivelaw/backend/internal/pkg/clock"
	"github.com/drivelaw/backend/internal/pkg/config"
	"github.com/drivelaw/backend/internal/pkg/goroutine"
	"github.com/drivelaw/backend/internal/pkg/hash"
	"github.com/drivelaw/backend/internal/pkg/idempotency"
	"github.com/drivelaw/backend/internal/pkg/instrument"
	"github.com/drivelaw/backend/internal/pkg/jwt"
	"github.com/drivelaw/backend/internal/pkg/mail"
	"github.com/drivelaw/backend/internal/pkg/messaging"
	"github.com/drivelaw/backend/internal/pkg/otp"
	"github.com/drivelaw/backend/internal/pkg/pgxcasbin"
	"github.com/drivelaw/backend/internal/pkg/router"
	"github.com/drivelaw/backend/internal/pkg/sms"
	"github.com/drivelaw/backend/internal/pkg/storage"
	"github.com/drivelaw/backend/internal/pkg/uid"
	"github.com/drivelaw/backend/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	argon2id  hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	minter    otp.Minter
	jwt       jwt.JWT

	// resources
	dbConn        *pgxpool.Pool
	cacheConn     *redis.Client
	idemp         idempotency.Idempotency
	mail          mail.Mail
	sms           sms.SMS
	messaging     messaging.Messaging
	storage       storage.Storage
	casbin        *casbin.Enforcer
	casbinWatcher *pgxcasbin.Watcher

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initSMS()
	app.initStorage()
	app.initMessaging()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
