package entity

import "time"

// VerifyOutcome is the result of evaluating a verification attempt.
type VerifyOutcome int16

const (
	VerifyOutcomeUnknown     VerifyOutcome = 0
	VerifyOutcomeSuccess     VerifyOutcome = 1
	VerifyOutcomeExpired     VerifyOutcome = 2
	VerifyOutcomeLocked      VerifyOutcome = 3
	VerifyOutcomeInvalid     VerifyOutcome = 4
	VerifyOutcomeMaxAttempts VerifyOutcome = 5
)

func (o VerifyOutcome) String() string {
	switch o {
	case VerifyOutcomeSuccess:
		return "Success"
	case VerifyOutcomeExpired:
		return "Expired"
	case VerifyOutcomeLocked:
		return "Locked"
	case VerifyOutcomeInvalid:
		return "Invalid"
	case VerifyOutcomeMaxAttempts:
		return "MaxAttempts"
	default:
		return "Unknown"
	}
}

// Verification is the pending proof-of-contact state for one contact.
//
// Only a digest of the code is stored; the plaintext code exists solely in
// the delivery message.
type Verification struct {
	ID          int64
	UserID      int64
	Contact     string
	Channel     Channel
	CodeDigest  string
	ExpiresAt   time.Time
	Attempts    int16
	LockedUntil *time.Time
	UpdatedAt   time.Time
}

// Locked reports whether the verification is under an active lockout.
func (v *Verification) Locked(now time.Time) bool {
	return v.LockedUntil != nil && now.Before(*v.LockedUntil)
}

// LockRemaining returns how long the active lockout still lasts.
func (v *Verification) LockRemaining(now time.Time) time.Duration {
	if !v.Locked(now) {
		return 0
	}
	return v.LockedUntil.Sub(now)
}

// Evaluate runs one verification attempt against the stored state and
// mutates attempts and lockout accordingly.
//
// Checks run in a fixed order: expiry, then lockout, then code equality.
// An expired code never consumes an attempt. A lockout that has elapsed is
// cleared (attempts reset) before the code is compared. The attempt that
// reaches maxAttempts failures triggers a lockout of lockFor and resets the
// counter.
func (v *Verification) Evaluate(now time.Time, match bool, maxAttempts int16, lockFor time.Duration) VerifyOutcome {
	// A code submitted at the expiry instant is already expired.
	if !now.Before(v.ExpiresAt) {
		return VerifyOutcomeExpired
	}

	if v.Locked(now) {
		return VerifyOutcomeLocked
	}

	if v.LockedUntil != nil {
		v.LockedUntil = nil
		v.Attempts = 0
	}

	if !match {
		v.Attempts++
		if v.Attempts >= maxAttempts {
			until := now.Add(lockFor)
			v.LockedUntil = &until
			v.Attempts = 0
			return VerifyOutcomeMaxAttempts
		}
		return VerifyOutcomeInvalid
	}

	return VerifyOutcomeSuccess
}

// AttemptsRemaining returns how many failures are left before lockout.
func (v *Verification) AttemptsRemaining(maxAttempts int16) int16 {
	left := maxAttempts - v.Attempts
	if left < 0 {
		return 0
	}
	return left
}

// NewVerification is the state written when a code is (re)issued.
type NewVerification struct {
	ID         int64
	UserID     int64
	Contact    string
	Channel    Channel
	CodeDigest string
	ExpiresAt  time.Time
}

// VerifiedUser is the outcome persisted when a code matches: the user is
// activated and the verification row removed.
type VerifiedUser struct {
	VerificationID int64
	UserID         int64
}
