package usecase

import (
	"net/http"
	"testing"
	"time"

	"github.com/drivelaw/backend/internal/identity/entity"
	"github.com/drivelaw/backend/internal/pkg/hash"
)

func pendingVerification(t *testing.T, hasher hash.Hash, code string) *entity.Verification {
	t.Helper()

	digest, err := hasher.Hash(code)
	if err != nil {
		t.Fatalf("hash code: %v", err)
	}

	return &entity.Verification{
		ID:         11,
		UserID:     9,
		Contact:    "kofi@example.com",
		Channel:    entity.ChannelEmail,
		CodeDigest: string(digest),
		ExpiresAt:  testNow.Add(5 * time.Minute),
	}
}

func TestVerifyOTP(t *testing.T) {
	hasher := hash.NewArgon2id("test-pepper")

	t.Run("NoPendingVerification", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &testDeps{codeHash: hasher})

		// Act
		_, err := uc.VerifyOTP(t.Context(), VerifyOTPInput{Contact: "kofi@example.com", Code: "123456"})

		// Assert
		assertStatus(t, err, http.StatusNotFound)
	})

	t.Run("ExpiredCode", func(t *testing.T) {

		// Arrange
		v := pendingVerification(t, hasher, "123456")
		v.ExpiresAt = testNow.Add(-time.Second)
		repo := &fakeRepoDB{verification: v}
		uc := newTestUsecase(t, &testDeps{repo: repo, codeHash: hasher})

		// Act
		_, err := uc.VerifyOTP(t.Context(), VerifyOTPInput{Contact: "kofi@example.com", Code: "123456"})

		// Assert
		assertStatus(t, err, http.StatusBadRequest)
		if len(repo.consumed) != 0 {
			t.Fatal("expected expired code to not consume an attempt")
		}
	})

	t.Run("CodeAtExpiryInstantIsExpired", func(t *testing.T) {

		// Arrange
		v := pendingVerification(t, hasher, "123456")
		v.ExpiresAt = testNow
		repo := &fakeRepoDB{verification: v}
		uc := newTestUsecase(t, &testDeps{repo: repo, codeHash: hasher})

		// Act
		_, err := uc.VerifyOTP(t.Context(), VerifyOTPInput{Contact: "kofi@example.com", Code: "123456"})

		// Assert
		assertStatus(t, err, http.StatusBadRequest)
		if len(repo.activated) != 0 {
			t.Fatal("expected no activation at the expiry instant")
		}
	})

	t.Run("WrongCodeConsumesAttempt", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{verification: pendingVerification(t, hasher, "654321")}
		uc := newTestUsecase(t, &testDeps{repo: repo, codeHash: hasher})

		// Act
		_, err := uc.VerifyOTP(t.Context(), VerifyOTPInput{Contact: "kofi@example.com", Code: "123456"})

		// Assert
		assertStatus(t, err, http.StatusBadRequest)
		if len(repo.consumed) != 1 {
			t.Fatalf("expected one consumed attempt, got %d", len(repo.consumed))
		}
		call := repo.consumed[0]
		if call.verificationID != 11 || call.maxAttempts != 5 || !call.lockUntil.Equal(testNow.Add(15*time.Minute)) {
			t.Fatalf("unexpected consumption: %+v", call)
		}
		if repo.verification.Attempts != 1 {
			t.Fatalf("expected 1 attempt recorded, got %d", repo.verification.Attempts)
		}
	})

	t.Run("FifthFailureLocks", func(t *testing.T) {

		// Arrange
		v := pendingVerification(t, hasher, "654321")
		v.Attempts = 4
		repo := &fakeRepoDB{verification: v}
		uc := newTestUsecase(t, &testDeps{repo: repo, codeHash: hasher})

		// Act
		_, err := uc.VerifyOTP(t.Context(), VerifyOTPInput{Contact: "kofi@example.com", Code: "123456"})

		// Assert
		assertStatus(t, err, http.StatusForbidden)
		if len(repo.consumed) != 1 {
			t.Fatalf("expected lockout to be persisted, got %d consumptions", len(repo.consumed))
		}
		if repo.verification.LockedUntil == nil || !repo.verification.LockedUntil.Equal(testNow.Add(15*time.Minute)) {
			t.Fatalf("expected lockout until %s, got %v", testNow.Add(15*time.Minute), repo.verification.LockedUntil)
		}
		if repo.verification.Attempts != 0 {
			t.Fatalf("expected attempts reset on lock, got %d", repo.verification.Attempts)
		}
	})

	t.Run("RacingFailureAgainstFreshLock", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{verification: pendingVerification(t, hasher, "654321"), consumeRace: true}
		uc := newTestUsecase(t, &testDeps{repo: repo, codeHash: hasher})

		// Act
		_, err := uc.VerifyOTP(t.Context(), VerifyOTPInput{Contact: "kofi@example.com", Code: "123456"})

		// Assert
		assertStatus(t, err, http.StatusForbidden)
		if len(repo.activated) != 0 {
			t.Fatal("expected no activation when the row was locked by a concurrent attempt")
		}
	})

	t.Run("LockedRejectsCorrectCode", func(t *testing.T) {

		// Arrange
		v := pendingVerification(t, hasher, "123456")
		until := testNow.Add(10 * time.Minute)
		v.LockedUntil = &until
		repo := &fakeRepoDB{verification: v}
		uc := newTestUsecase(t, &testDeps{repo: repo, codeHash: hasher})

		// Act
		_, err := uc.VerifyOTP(t.Context(), VerifyOTPInput{Contact: "kofi@example.com", Code: "123456"})

		// Assert
		assertStatus(t, err, http.StatusForbidden)
		if len(repo.activated) != 0 {
			t.Fatal("expected no activation while locked")
		}
	})

	t.Run("SuccessIssuesSessionToken", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{
			verification: pendingVerification(t, hasher, "123456"),
			user:         &entity.User{ID: 9, Role: entity.RoleDriver, OnboardingDone: false},
		}
		uc := newTestUsecase(t, &testDeps{repo: repo, codeHash: hasher})

		// Act
		out, err := uc.VerifyOTP(t.Context(), VerifyOTPInput{Contact: "kofi@example.com", Code: "123456"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.activated) != 1 {
			t.Fatalf("expected one activation, got %d", len(repo.activated))
		}
		if repo.activated[0].VerificationID != 11 || repo.activated[0].UserID != 9 {
			t.Fatalf("unexpected activation: %+v", repo.activated[0])
		}
		if out.Token == "" {
			t.Fatal("expected session token")
		}
		if !out.ExpiresAt.Equal(testNow.Add(time.Hour)) {
			t.Fatalf("expected 1h session, got expiry %s", out.ExpiresAt)
		}
		if out.Role != entity.RoleDriver || out.Onboarding {
			t.Fatalf("unexpected output: %+v", out)
		}
	})

	t.Run("RememberExtendsSession", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{
			verification: pendingVerification(t, hasher, "123456"),
			user:         &entity.User{ID: 9, Role: entity.RoleDriver},
		}
		uc := newTestUsecase(t, &testDeps{repo: repo, codeHash: hasher})

		// Act
		out, err := uc.VerifyOTP(t.Context(), VerifyOTPInput{
			Contact:  "kofi@example.com",
			Code:     "123456",
			Remember: true,
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.ExpiresAt.Equal(testNow.Add(30 * 24 * time.Hour)) {
			t.Fatalf("expected 30d session, got expiry %s", out.ExpiresAt)
		}
	})
}
