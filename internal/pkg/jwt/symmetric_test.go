package jwt

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type fakeUUID struct{}

func (fakeUUID) Generate() string { return "test-token-id" }

func newTestJWT(t *testing.T, clk *fakeClock) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:     "drivelaw",
		Audiences:  []string{"drivelaw-api"},
		DefaultTTL: time.Hour,
		Clock:      clk,
		UUID:       fakeUUID{},
	})
	if err != nil {
		t.Fatalf("new hs512: %v", err)
	}

	return s
}

func TestNewHS512RejectsShortSecret(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("short")})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
	}
}

func TestSymmetricRoundTrip(t *testing.T) {

	// Arrange
	clk := &fakeClock{now: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}
	s := newTestJWT(t, clk)

	// Act
	token, err := s.Generate(42, "kofi@example.com", "driver", true, 30*24*time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := s.Verify(token)

	// Assert
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Contact != "kofi@example.com" || claims.Role != "driver" || !claims.Onboarding {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "42" {
		t.Fatalf("expected subject 42, got %q", claims.Subject)
	}
	want := clk.now.Add(30 * 24 * time.Hour)
	if !claims.ExpiresAt.Time.Equal(want) {
		t.Fatalf("expected expiry %s, got %s", want, claims.ExpiresAt.Time)
	}
}

func TestSymmetricDefaultTTL(t *testing.T) {

	// Arrange
	clk := &fakeClock{now: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}
	s := newTestJWT(t, clk)

	// Act
	token, err := s.Generate(7, "233241234567", "driver", false, 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := s.Verify(token)

	// Assert
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !claims.ExpiresAt.Time.Equal(clk.now.Add(time.Hour)) {
		t.Fatalf("expected default 1h expiry, got %s", claims.ExpiresAt.Time)
	}
}

func TestSymmetricVerifyExpired(t *testing.T) {

	// Arrange
	clk := &fakeClock{now: time.Now().Add(-2 * time.Hour)}
	s := newTestJWT(t, clk)
	token, err := s.Generate(7, "kofi@example.com", "driver", false, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Act
	_, err = s.Verify(token)

	// Assert
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSymmetricVerifyTampered(t *testing.T) {

	// Arrange
	clk := &fakeClock{now: time.Now()}
	s := newTestJWT(t, clk)
	token, err := s.Generate(7, "kofi@example.com", "driver", false, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Act
	_, err = s.Verify(token + "x")

	// Assert
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if errors.Is(err, ErrTokenExpired) {
		t.Fatal("tampered token must not read as expired")
	}
}

func TestSymmetricVerifyMalformed(t *testing.T) {

	// Arrange
	clk := &fakeClock{now: time.Now()}
	s := newTestJWT(t, clk)

	// Act
	_, err := s.Verify("garbage.token.value")

	// Assert
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
