package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/drivelaw/backend/internal/offense/entity"
	"github.com/drivelaw/backend/internal/pkg/config"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/drivelaw/backend/internal/pkg/idempotency"
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

type fakeUUID struct{}

func (fakeUUID) Generate() string { return "test-object-key" }

type fakeConfig struct {
	config.Config
}

func (fakeConfig) GetHour(string) time.Duration { return 24 * time.Hour }

type fakeIdempotency struct {
	execErr error
	keys    []string
}

func (f *fakeIdempotency) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return "", nil
}

func (f *fakeIdempotency) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.keys = append(f.keys, key)
	if f.execErr != nil {
		return f.execErr
	}
	return fn(ctx)
}

type fakeMessaging struct {
	published []OffenseRecordedEvent
	err       error
}

func (f *fakeMessaging) PublishOffenseRecorded(_ context.Context, msg OffenseRecordedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

type fakeRepoDB struct {
	driver  *entity.Driver
	offense *entity.Offense

	nextNumber    int64
	created       []entity.NewOffense
	numbers       []string
	statusUpdates []entity.OffenseStatus
	confirmed     []int64
	confirmErr    error
}

func (f *fakeRepoDB) GetDriverByLicense(context.Context, string) (*entity.Driver, error) {
	if f.driver == nil {
		return nil, goerror.ErrNotFound
	}
	return f.driver, nil
}

func (f *fakeRepoDB) GetOffenseByID(context.Context, int64) (*entity.Offense, error) {
	if f.offense == nil {
		return nil, goerror.ErrNotFound
	}
	return f.offense, nil
}

func (f *fakeRepoDB) GetOffenseList(context.Context, entity.OffenseListFilterData) ([]entity.Offense, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepoDB) GetOfficerDashboard(context.Context, int64, time.Time) (*entity.OfficerDashboard, error) {
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) GetStatistics(context.Context) (*entity.Statistics, error) {
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) NextOffenseNumber(context.Context) (int64, error) {
	f.nextNumber++
	return f.nextNumber, nil
}

func (f *fakeRepoDB) CreateOffense(_ context.Context, offense entity.NewOffense, number string) error {
	f.created = append(f.created, offense)
	f.numbers = append(f.numbers, number)
	return nil
}

func (f *fakeRepoDB) UpdateOffenseStatus(_ context.Context, _ int64, _, newStatus entity.OffenseStatus) error {
	f.statusUpdates = append(f.statusUpdates, newStatus)
	return nil
}

func (f *fakeRepoDB) ConfirmOffense(_ context.Context, id, _ int64, _ int16) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmed = append(f.confirmed, id)
	return nil
}

func (f *fakeRepoDB) AppendEvidenceKey(context.Context, int64, string) error { return nil }

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
		{"officer", "offenses", "read"},
		{"officer", "offenses", "write"},
		{"admin", "offenses", "read"},
		{"admin", "statistics", "read"},
	}); err != nil {
		t.Fatalf("add policies: %v", err)
	}

	return e
}

type testDeps struct {
	repo      *fakeRepoDB
	messaging *fakeMessaging
	idemp     *fakeIdempotency
}

func newTestUsecase(t *testing.T, deps *testDeps) *Usecase {
	t.Helper()

	if deps.repo == nil {
		deps.repo = &fakeRepoDB{}
	}
	if deps.messaging == nil {
		deps.messaging = &fakeMessaging{}
	}
	if deps.idemp == nil {
		deps.idemp = &fakeIdempotency{}
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
		Idempotency:   deps.idemp,
		UID:           &fakeUID{},
		UUID:          fakeUUID{},
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

func TestCreate(t *testing.T) {
	input := func() CreateInput {
		return CreateInput{
			LicenseNumber: "GH-DL-1234",
			Type:          "speeding",
			Location:      "Ring Road, Accra",
		}
	}

	t.Run("DriverNotAllowed", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &testDeps{})

		// Act
		_, err := uc.Create(authCtx(t, 9, "driver"), input())

		// Assert
		assertStatus(t, err, http.StatusForbidden)
	})

	t.Run("UnknownOffenseType", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &testDeps{})
		in := input()
		in.Type = "jaywalking"

		// Act
		_, err := uc.Create(authCtx(t, 3, "officer"), in)

		// Assert
		assertStatus(t, err, http.StatusUnprocessableEntity)
	})

	t.Run("UnknownLicense", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &testDeps{})

		// Act
		_, err := uc.Create(authCtx(t, 3, "officer"), input())

		// Assert
		assertStatus(t, err, http.StatusNotFound)
	})

	t.Run("AppliesPenaltySchedule", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{driver: &entity.Driver{ID: 9}}
		uc := newTestUsecase(t, &testDeps{repo: repo})

		// Act
		out, err := uc.Create(authCtx(t, 3, "officer"), input())

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Number != "OFF001" {
			t.Fatalf("expected number OFF001, got %q", out.Number)
		}
		if out.FineAmount != 200 || out.Points != 6 {
			t.Fatalf("expected speeding penalty 200/6, got %d/%d", out.FineAmount, out.Points)
		}
		if out.Status != entity.OffenseStatusPending {
			t.Fatalf("expected pending status, got %s", out.Status)
		}

		if len(repo.created) != 1 {
			t.Fatalf("expected one offense row, got %d", len(repo.created))
		}
		row := repo.created[0]
		if row.DriverID != 9 || row.OfficerID != 3 {
			t.Fatalf("unexpected offense row: %+v", row)
		}
		if !row.OccurredAt.Equal(testNow) {
			t.Fatalf("expected occurred at to default to now, got %s", row.OccurredAt)
		}
	})

	t.Run("DuplicateIdempotencyKey", func(t *testing.T) {

		// Arrange
		idemp := &fakeIdempotency{execErr: idempotency.ErrAlreadyInProgress}
		uc := newTestUsecase(t, &testDeps{repo: &fakeRepoDB{driver: &entity.Driver{ID: 9}}, idemp: idemp})
		in := input()
		in.IdempotencyKey = "ticket-555"

		// Act
		_, err := uc.Create(authCtx(t, 3, "officer"), in)

		// Assert
		assertStatus(t, err, http.StatusConflict)
		if len(idemp.keys) != 1 || idemp.keys[0] != "offense:create:ticket-555" {
			t.Fatalf("unexpected idempotency keys: %v", idemp.keys)
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	pendingOffense := func() *entity.Offense {
		return &entity.Offense{
			ID:         77,
			Number:     "OFF001",
			DriverID:   9,
			Type:       entity.OffenseTypeSpeeding,
			Status:     entity.OffenseStatusPending,
			FineAmount: 200,
			Points:     6,
			Location:   "Ring Road, Accra",
		}
	}

	t.Run("NotFound", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &testDeps{})

		// Act
		err := uc.UpdateStatus(authCtx(t, 3, "officer"), UpdateStatusInput{ID: 77, Status: "confirmed"})

		// Assert
		assertStatus(t, err, http.StatusNotFound)
	})

	t.Run("NotPending", func(t *testing.T) {

		// Arrange
		offense := pendingOffense()
		offense.Status = entity.OffenseStatusPaid
		uc := newTestUsecase(t, &testDeps{repo: &fakeRepoDB{offense: offense}})

		// Act
		err := uc.UpdateStatus(authCtx(t, 3, "officer"), UpdateStatusInput{ID: 77, Status: "cancelled"})

		// Assert
		assertStatus(t, err, http.StatusConflict)
	})

	t.Run("CancelSkipsDelivery", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{offense: pendingOffense()}
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, &testDeps{repo: repo, messaging: msg})

		// Act
		err := uc.UpdateStatus(authCtx(t, 3, "officer"), UpdateStatusInput{ID: 77, Status: "cancelled"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.statusUpdates) != 1 || repo.statusUpdates[0] != entity.OffenseStatusCancelled {
			t.Fatalf("unexpected status updates: %v", repo.statusUpdates)
		}
		if len(msg.published) != 0 {
			t.Fatal("expected no delivery for a cancelled offense")
		}
	})

	t.Run("ConfirmDeductsPointsAndAnnounces", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{offense: pendingOffense()}
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, &testDeps{repo: repo, messaging: msg})

		// Act
		err := uc.UpdateStatus(authCtx(t, 3, "officer"), UpdateStatusInput{ID: 77, Status: "confirmed"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.confirmed) != 1 || repo.confirmed[0] != 77 {
			t.Fatalf("unexpected confirmations: %v", repo.confirmed)
		}
		if len(msg.published) != 1 {
			t.Fatalf("expected one event, got %d", len(msg.published))
		}
		event := msg.published[0]
		if event.OffenseNumber != "OFF001" || event.FineAmount != 200 || event.OffenseType != entity.OffenseTypeSpeeding {
			t.Fatalf("unexpected event: %+v", event)
		}
	})

	t.Run("PublishFailureDoesNotFailConfirmation", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{offense: pendingOffense()}
		msg := &fakeMessaging{err: context.DeadlineExceeded}
		uc := newTestUsecase(t, &testDeps{repo: repo, messaging: msg})

		// Act
		err := uc.UpdateStatus(authCtx(t, 3, "officer"), UpdateStatusInput{ID: 77, Status: "confirmed"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.confirmed) != 1 {
			t.Fatalf("expected confirmation to stand, got %v", repo.confirmed)
		}
	})

	t.Run("ConfirmRaceIsConflict", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{offense: pendingOffense(), confirmErr: goerror.ErrNotFound}
		uc := newTestUsecase(t, &testDeps{repo: repo})

		// Act
		err := uc.UpdateStatus(authCtx(t, 3, "officer"), UpdateStatusInput{ID: 77, Status: "confirmed"})

		// Assert
		assertStatus(t, err, http.StatusConflict)
	})
}
