package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/drivelaw/backend/internal/payment/entity"
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
	published []PaymentReceivedEvent
	err       error
}

func (f *fakeMessaging) PublishPaymentReceived(_ context.Context, msg PaymentReceivedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

type fakeRepoDB struct {
	offense    *entity.PaymentOffense
	payment    *entity.Payment
	statistics *entity.Statistics

	nextNumber  int64
	createErr   error
	created     []entity.NewPayment
	createdRefs []string
}

func (f *fakeRepoDB) GetPaymentByID(context.Context, int64) (*entity.Payment, error) {
	if f.payment == nil {
		return nil, goerror.ErrNotFound
	}
	return f.payment, nil
}

func (f *fakeRepoDB) GetOffenseForPayment(context.Context, int64) (*entity.PaymentOffense, error) {
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

func (f *fakeRepoDB) NextPaymentNumber(context.Context) (int64, error) {
	f.nextNumber++
	return f.nextNumber, nil
}

func (f *fakeRepoDB) CreatePayment(_ context.Context, payment entity.NewPayment, reference string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, payment)
	f.createdRefs = append(f.createdRefs, reference)
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
		{"driver", "payments", "read"},
		{"driver", "payments", "write"},
		{"admin", "payments", "read"},
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

func confirmedOffense() *entity.PaymentOffense {
	return &entity.PaymentOffense{
		ID:         77,
		Number:     "OFF042",
		DriverID:   9,
		Status:     entity.OffenseStatusConfirmed,
		FineAmount: 200,
	}
}

func TestPay(t *testing.T) {

	t.Run("Unauthenticated", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &testDeps{})

		// Act
		_, err := uc.Pay(t.Context(), PayInput{OffenseID: 77, Method: "card"})

		// Assert
		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("OfficerNotAllowed", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &testDeps{})

		// Act
		_, err := uc.Pay(authCtx(t, 3, "officer"), PayInput{OffenseID: 77, Method: "card"})

		// Assert
		assertStatus(t, err, http.StatusForbidden)
	})

	t.Run("UnknownMethod", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &testDeps{})

		// Act
		_, err := uc.Pay(authCtx(t, 9, "driver"), PayInput{OffenseID: 77, Method: "cheque"})

		// Assert
		assertStatus(t, err, http.StatusUnprocessableEntity)
	})

	t.Run("ForeignOffenseLooksMissing", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{offense: confirmedOffense()}
		uc := newTestUsecase(t, &testDeps{repo: repo})

		// Act
		_, err := uc.Pay(authCtx(t, 1234, "driver"), PayInput{OffenseID: 77, Method: "card"})

		// Assert
		assertStatus(t, err, http.StatusNotFound)
		if len(repo.created) != 0 {
			t.Fatal("expected no capture for a foreign offense")
		}
	})

	t.Run("NotPayable", func(t *testing.T) {

		// Arrange
		offense := confirmedOffense()
		offense.Status = entity.OffenseStatusPaid
		uc := newTestUsecase(t, &testDeps{repo: &fakeRepoDB{offense: offense}})

		// Act
		_, err := uc.Pay(authCtx(t, 9, "driver"), PayInput{OffenseID: 77, Method: "card"})

		// Assert
		assertStatus(t, err, http.StatusConflict)
	})

	t.Run("CapturesFineAmount", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{offense: confirmedOffense()}
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, &testDeps{repo: repo, messaging: msg})

		// Act
		out, err := uc.Pay(authCtx(t, 9, "driver"), PayInput{OffenseID: 77, Method: "mobile_money"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Reference != "PAY001" {
			t.Fatalf("expected reference PAY001, got %q", out.Reference)
		}
		if out.Amount != 200 {
			t.Fatalf("expected fine amount 200, got %d", out.Amount)
		}
		if out.Method != entity.PaymentMethodMobileMoney {
			t.Fatalf("expected mobile money, got %v", out.Method)
		}
		if !out.PaidAt.Equal(testNow) {
			t.Fatalf("expected paid at %s, got %s", testNow, out.PaidAt)
		}

		if len(repo.created) != 1 {
			t.Fatalf("expected one payment row, got %d", len(repo.created))
		}
		if repo.created[0].Amount != 200 || repo.created[0].OffenseID != 77 {
			t.Fatalf("unexpected payment row: %+v", repo.created[0])
		}

		if len(msg.published) != 1 {
			t.Fatalf("expected one event, got %d", len(msg.published))
		}
		if msg.published[0].OffenseNumber != "OFF042" || msg.published[0].Amount != 200 {
			t.Fatalf("unexpected event: %+v", msg.published[0])
		}
	})

	t.Run("PublishFailureDoesNotFailCapture", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{offense: confirmedOffense()}
		msg := &fakeMessaging{err: errors.New("broker down")}
		uc := newTestUsecase(t, &testDeps{repo: repo, messaging: msg})

		// Act
		out, err := uc.Pay(authCtx(t, 9, "driver"), PayInput{OffenseID: 77, Method: "card"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out == nil || len(repo.created) != 1 {
			t.Fatal("expected the payment to stand")
		}
	})

	t.Run("DuplicateIdempotencyKey", func(t *testing.T) {

		// Arrange
		idemp := &fakeIdempotency{execErr: idempotency.ErrAlreadyCompleted}
		uc := newTestUsecase(t, &testDeps{repo: &fakeRepoDB{offense: confirmedOffense()}, idemp: idemp})

		// Act
		_, err := uc.Pay(authCtx(t, 9, "driver"), PayInput{
			IdempotencyKey: "abc-123",
			OffenseID:      77,
			Method:         "card",
		})

		// Assert
		assertStatus(t, err, http.StatusConflict)
		if len(idemp.keys) != 1 || idemp.keys[0] != "payment:capture:abc-123" {
			t.Fatalf("unexpected idempotency keys: %v", idemp.keys)
		}
	})

	t.Run("ConcurrentCaptureLosesRace", func(t *testing.T) {

		// Arrange. The payment insert fails because the guarded offense
		// update saw a non-confirmed status.
		repo := &fakeRepoDB{offense: confirmedOffense(), createErr: goerror.ErrNotFound}
		uc := newTestUsecase(t, &testDeps{repo: repo})

		// Act
		_, err := uc.Pay(authCtx(t, 9, "driver"), PayInput{OffenseID: 77, Method: "card"})

		// Assert
		assertStatus(t, err, http.StatusConflict)
	})
}
