package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/drivelaw/backend/internal/appeal/entity"
	"github.com/drivelaw/backend/internal/pkg/config"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/drivelaw/backend/internal/pkg/instrument"
	"github.com/drivelaw/backend/internal/pkg/jwt"
	"github.com/drivelaw/backend/internal/pkg/validator"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

type fakeClock struct{}

func (fakeClock) Now() time.Time { return testNow }

type fakeUID struct{ next int64 }

func (f *fakeUID) Generate() int64 {
	f.next++
	return f.next
}

type fakeConfig struct {
	config.Config
}

func (fakeConfig) GetDay(string) time.Duration { return 14 * 24 * time.Hour }

type fakeMessaging struct {
	submitted []AppealSubmittedEvent
	decided   []AppealDecidedEvent
	err       error
}

func (f *fakeMessaging) PublishAppealSubmitted(_ context.Context, msg AppealSubmittedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.submitted = append(f.submitted, msg)
	return nil
}

func (f *fakeMessaging) PublishAppealDecided(_ context.Context, msg AppealDecidedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.decided = append(f.decided, msg)
	return nil
}

type fakeRepoDB struct {
	appeal     *entity.Appeal
	offense    *entity.AppealOffense
	statistics *entity.Statistics

	nextNumber int64
	createErr  error
	created    []entity.NewAppeal
	numbers    []string
	approved   []entity.Decision
	rejected   []entity.Decision
	decideErr  error
}

func (f *fakeRepoDB) GetAppealByID(context.Context, int64) (*entity.Appeal, error) {
	if f.appeal == nil {
		return nil, goerror.ErrNotFound
	}
	return f.appeal, nil
}

func (f *fakeRepoDB) GetAppealList(context.Context, entity.AppealListFilterData) ([]entity.Appeal, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepoDB) GetOffenseForAppeal(context.Context, int64) (*entity.AppealOffense, error) {
	if f.offense == nil {
		return nil, goerror.ErrNotFound
	}
	return f.offense, nil
}

func (f *fakeRepoDB) GetStatistics(context.Context) (*entity.Statistics, error) {
	if f.statistics == nil {
		return nil, goerror.ErrNotFound
	}
	return f.statistics, nil
}

func (f *fakeRepoDB) NextAppealNumber(context.Context) (int64, error) {
	f.nextNumber++
	return f.nextNumber, nil
}

func (f *fakeRepoDB) CreateAppeal(_ context.Context, appeal entity.NewAppeal, number string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, appeal)
	f.numbers = append(f.numbers, number)
	return nil
}

func (f *fakeRepoDB) ApproveAppeal(_ context.Context, decision entity.Decision) error {
	if f.decideErr != nil {
		return f.decideErr
	}
	f.approved = append(f.approved, decision)
	return nil
}

func (f *fakeRepoDB) RejectAppeal(_ context.Context, decision entity.Decision) error {
	if f.decideErr != nil {
		return f.decideErr
	}
	f.rejected = append(f.rejected, decision)
	return nil
}

const testRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	m, err := model.NewModelFromString(testRBACModel)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("new enforcer: %v", err)
	}

	if _, err := e.AddPolicies([][]string{
		{"driver", "appeals", "read"},
		{"driver", "appeals", "write"},
		{"admin", "appeals", "read"},
		{"admin", "appeals", "decide"},
		{"admin", "statistics", "read"},
	}); err != nil {
		t.Fatalf("add policies: %v", err)
	}

	return e
}

type testDeps struct {
	repo      *fakeRepoDB
	messaging *fakeMessaging
}

func newTestUsecase(t *testing.T, deps *testDeps) *Usecase {
	t.Helper()

	if deps.repo == nil {
		deps.repo = &fakeRepoDB{}
	}
	if deps.messaging == nil {
		deps.messaging = &fakeMessaging{}
	}

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	return New(Dependency{
		RepoDB:        deps.repo,
		RepoMessaging: deps.messaging,
		Validator:     v,
		Config:        fakeConfig{},
		UID:           &fakeUID{},
		Clock:         fakeClock{},
		Instrument:    instrument.NewNoop(),
		Enforcer:      newTestEnforcer(t),
	})
}

func authCtx(t *testing.T, userID int64, role string) context.Context {
	t.Helper()

	return jwt.SetAuth(t.Context(), jwt.Claims{UserID: userID, Role: role})
}

func assertStatus(t *testing.T, err error, want int) *goerror.Error {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}

	gerr, ok := err.(*goerror.Error)
	if !ok {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	if gerr.StatusCode() != want {
		t.Fatalf("expected status %d, got %d (%s)", want, gerr.StatusCode(), gerr.Msg())
	}

	return gerr
}
