package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/drivelaw/backend/internal/identity/entity"
	"github.com/drivelaw/backend/internal/pkg/config"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/drivelaw/backend/internal/pkg/hash"
	"github.com/drivelaw/backend/internal/pkg/instrument"
	"github.com/drivelaw/backend/internal/pkg/jwt"
	"github.com/drivelaw/backend/internal/pkg/validator"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type fakeUID struct{ next int64 }

func (f *fakeUID) Generate() int64 {
	f.next++
	return f.next
}

type fakeUUID struct{}

func (fakeUUID) Generate() string { return "test-token-id" }

type fakeMinter struct {
	code string
	err  error
}

func (f *fakeMinter) Mint() (string, error) { return f.code, f.err }

type fakeMessaging struct {
	published []OTPRequestedEvent
	err       error
}

func (f *fakeMessaging) PublishOTPRequested(_ context.Context, msg OTPRequestedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

// fakeConfig serves only the keys the usecases read. Everything else panics
// through the embedded nil interface, which is what we want in tests.
type fakeConfig struct {
	config.Config
}

func (fakeConfig) GetMinute(key string) time.Duration {
	switch key {
	case "modules.identity.otp_ttl_minutes":
		return 5 * time.Minute
	case "modules.identity.otp_lock_minutes":
		return 15 * time.Minute
	}
	return 0
}

func (fakeConfig) GetHour(string) time.Duration { return time.Hour }

func (fakeConfig) GetDay(string) time.Duration { return 30 * 24 * time.Hour }

func (fakeConfig) GetInt(string) int { return 5 }

func (fakeConfig) GetString(key string) string {
	if key == "modules.identity.default_language" {
		return "en"
	}
	return ""
}

type attemptConsumption struct {
	verificationID int64
	maxAttempts    int16
	lockUntil      time.Time
}

type fakeRepoDB struct {
	user         *entity.User
	verification *entity.Verification
	consumeRace  bool

	createdUsers []entity.NewUser
	upserted     []entity.NewVerification
	consumed     []attemptConsumption
	activated    []entity.VerifiedUser
}

func (f *fakeRepoDB) GetUserByContact(context.Context, string) (*entity.User, error) {
	if f.user == nil {
		return nil, goerror.ErrNotFound
	}
	return f.user, nil
}

func (f *fakeRepoDB) GetUserByID(context.Context, int64, bool) (*entity.User, error) {
	if f.user == nil {
		return nil, goerror.ErrNotFound
	}
	return f.user, nil
}

func (f *fakeRepoDB) GetVerificationByContact(context.Context, string) (*entity.Verification, error) {
	if f.verification == nil {
		return nil, goerror.ErrNotFound
	}
	cp := *f.verification
	return &cp, nil
}

func (f *fakeRepoDB) GetUserList(context.Context, entity.UserListFilterData) ([]entity.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepoDB) CreateUser(_ context.Context, user entity.NewUser) error {
	f.createdUsers = append(f.createdUsers, user)
	return nil
}

func (f *fakeRepoDB) UpsertVerification(_ context.Context, in entity.NewVerification) error {
	f.upserted = append(f.upserted, in)
	return nil
}

// ConsumeVerificationAttempt mirrors the guarded single-statement update:
// actively locked rows are untouched, the failure that reaches maxAttempts
// sets the lock and resets the counter.
func (f *fakeRepoDB) ConsumeVerificationAttempt(_ context.Context, id int64, maxAttempts int16, lockUntil time.Time) (int16, bool, error) {
	f.consumed = append(f.consumed, attemptConsumption{id, maxAttempts, lockUntil})

	v := f.verification
	if f.consumeRace || v == nil || v.ID != id || v.Locked(testNow) {
		return 0, false, goerror.ErrNotFound
	}

	if v.Attempts+1 >= maxAttempts {
		v.Attempts = 0
		until := lockUntil
		v.LockedUntil = &until
		return 0, true, nil
	}

	v.Attempts++
	v.LockedUntil = nil
	return v.Attempts, false, nil
}

func (f *fakeRepoDB) CompleteOnboarding(context.Context, entity.Onboarding) error { return nil }

func (f *fakeRepoDB) PatchUser(context.Context, entity.PatchUser) error { return nil }

func (f *fakeRepoDB) UpdateUserStatus(context.Context, int64, entity.UserStatus, entity.UserStatus) error {
	return nil
}

func (f *fakeRepoDB) UpdateLicenseVerified(context.Context, int64, bool, int64) error { return nil }

func (f *fakeRepoDB) MarkUserDeleted(context.Context, int64, int64) error { return nil }

func (f *fakeRepoDB) ActivateVerifiedUser(_ context.Context, data entity.VerifiedUser) error {
	f.activated = append(f.activated, data)
	return nil
}

type testDeps struct {
	repo      *fakeRepoDB
	messaging *fakeMessaging
	minter    *fakeMinter
	clock     *fakeClock
	codeHash  hash.Hash
	jwt       jwt.JWT
}

func newTestUsecase(t *testing.T, deps *testDeps) *Usecase {
	t.Helper()

	if deps.repo == nil {
		deps.repo = &fakeRepoDB{}
	}
	if deps.messaging == nil {
		deps.messaging = &fakeMessaging{}
	}
	if deps.minter == nil {
		deps.minter = &fakeMinter{code: "123456"}
	}
	if deps.clock == nil {
		deps.clock = &fakeClock{now: testNow}
	}
	if deps.codeHash == nil {
		deps.codeHash = hash.NewArgon2id("test-pepper")
	}
	if deps.jwt == nil {
		token, err := jwt.NewHS512(jwt.Config{
			Secret:     []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
			Issuer:     "drivelaw",
			Audiences:  []string{"drivelaw-api"},
			DefaultTTL: time.Hour,
			Clock:      deps.clock,
			UUID:       fakeUUID{},
		})
		if err != nil {
			t.Fatalf("new jwt: %v", err)
		}
		deps.jwt = token
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
		CodeHash:      deps.codeHash,
		Minter:        deps.minter,
		UID:           &fakeUID{},
		Clock:         deps.clock,
		JWT:           deps.jwt,
		Instrument:    instrument.NewNoop(),
	})
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
