package entity

import (
	"testing"
	"time"
)

func TestVerificationEvaluate(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	const maxAttempts = int16(5)
	const lockFor = 15 * time.Minute

	t.Run("ExpiredDoesNotConsumeAttempt", func(t *testing.T) {

		// Arrange
		v := &Verification{ExpiresAt: now.Add(-time.Second), Attempts: 2}

		// Act
		outcome := v.Evaluate(now, true, maxAttempts, lockFor)

		// Assert
		if outcome != VerifyOutcomeExpired {
			t.Fatalf("expected expired, got %s", outcome)
		}
		if v.Attempts != 2 {
			t.Fatalf("expected attempts untouched, got %d", v.Attempts)
		}
	})

	t.Run("ExpiredAtTheExpiryInstant", func(t *testing.T) {

		// Arrange
		v := &Verification{ExpiresAt: now, Attempts: 2}

		// Act
		outcome := v.Evaluate(now, true, maxAttempts, lockFor)

		// Assert
		if outcome != VerifyOutcomeExpired {
			t.Fatalf("expected expired, got %s", outcome)
		}
		if v.Attempts != 2 {
			t.Fatalf("expected attempts untouched, got %d", v.Attempts)
		}
	})

	t.Run("ExpiryCheckedBeforeLockout", func(t *testing.T) {

		// Arrange
		until := now.Add(10 * time.Minute)
		v := &Verification{ExpiresAt: now.Add(-time.Second), LockedUntil: &until}

		// Act
		outcome := v.Evaluate(now, true, maxAttempts, lockFor)

		// Assert
		if outcome != VerifyOutcomeExpired {
			t.Fatalf("expected expired, got %s", outcome)
		}
	})

	t.Run("LockedRejectsEvenCorrectCode", func(t *testing.T) {

		// Arrange
		until := now.Add(10 * time.Minute)
		v := &Verification{ExpiresAt: now.Add(5 * time.Minute), LockedUntil: &until}

		// Act
		outcome := v.Evaluate(now, true, maxAttempts, lockFor)

		// Assert
		if outcome != VerifyOutcomeLocked {
			t.Fatalf("expected locked, got %s", outcome)
		}
		if got := v.LockRemaining(now); got != 10*time.Minute {
			t.Fatalf("expected 10m remaining, got %s", got)
		}
	})

	t.Run("ElapsedLockoutClearsBeforeComparing", func(t *testing.T) {

		// Arrange
		until := now.Add(-time.Minute)
		v := &Verification{ExpiresAt: now.Add(5 * time.Minute), LockedUntil: &until, Attempts: 3}

		// Act
		outcome := v.Evaluate(now, true, maxAttempts, lockFor)

		// Assert
		if outcome != VerifyOutcomeSuccess {
			t.Fatalf("expected success, got %s", outcome)
		}
		if v.LockedUntil != nil || v.Attempts != 0 {
			t.Fatalf("expected lockout cleared, got attempts=%d locked_until=%v", v.Attempts, v.LockedUntil)
		}
	})

	t.Run("MismatchIncrementsAttempts", func(t *testing.T) {

		// Arrange
		v := &Verification{ExpiresAt: now.Add(5 * time.Minute)}

		// Act
		outcome := v.Evaluate(now, false, maxAttempts, lockFor)

		// Assert
		if outcome != VerifyOutcomeInvalid {
			t.Fatalf("expected invalid, got %s", outcome)
		}
		if v.Attempts != 1 {
			t.Fatalf("expected 1 attempt, got %d", v.Attempts)
		}
		if got := v.AttemptsRemaining(maxAttempts); got != 4 {
			t.Fatalf("expected 4 attempts remaining, got %d", got)
		}
	})

	t.Run("FifthFailureLocks", func(t *testing.T) {

		// Arrange
		v := &Verification{ExpiresAt: now.Add(5 * time.Minute), Attempts: 4}

		// Act
		outcome := v.Evaluate(now, false, maxAttempts, lockFor)

		// Assert
		if outcome != VerifyOutcomeMaxAttempts {
			t.Fatalf("expected max attempts, got %s", outcome)
		}
		if v.LockedUntil == nil || !v.LockedUntil.Equal(now.Add(lockFor)) {
			t.Fatalf("expected lockout until %s, got %v", now.Add(lockFor), v.LockedUntil)
		}
		if v.Attempts != 0 {
			t.Fatalf("expected attempts reset, got %d", v.Attempts)
		}
	})

	t.Run("MatchSucceeds", func(t *testing.T) {

		// Arrange
		v := &Verification{ExpiresAt: now.Add(5 * time.Minute), Attempts: 4}

		// Act
		outcome := v.Evaluate(now, true, maxAttempts, lockFor)

		// Assert
		if outcome != VerifyOutcomeSuccess {
			t.Fatalf("expected success, got %s", outcome)
		}
	})
}
