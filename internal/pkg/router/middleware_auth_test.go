package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/drivelaw/backend/internal/pkg/jwt"
)

type fakeVerifier struct {
	claims jwt.Claims
	err    error
}

func (f fakeVerifier) Generate(int64, string, string, bool, time.Duration) (string, error) {
	return "", nil
}

func (f fakeVerifier) Verify(string) (jwt.Claims, error) {
	return f.claims, f.err
}

func authHandler(t *testing.T, verifier jwt.JWT) http.Handler {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return middlewareAuthentication(verifier, nil)(next)
}

func TestMiddlewareAuthentication(t *testing.T) {
	t.Run("MissingToken", func(t *testing.T) {

		// Arrange
		h := authHandler(t, fakeVerifier{})
		rec := httptest.NewRecorder()

		// Act
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))

		// Assert
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Authentication required") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {

		// Arrange
		h := authHandler(t, fakeVerifier{err: jwt.ErrTokenExpired})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer stale")

		// Act
		h.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Token expired") {
			t.Fatalf("expected expired message, got: %s", rec.Body.String())
		}
	})

	t.Run("InvalidToken", func(t *testing.T) {

		// Arrange
		h := authHandler(t, fakeVerifier{err: jwt.ErrInvalidToken})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		// Act
		h.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Invalid token") {
			t.Fatalf("expected invalid message, got: %s", rec.Body.String())
		}
	})

	t.Run("CookieTokenAccepted", func(t *testing.T) {

		// Arrange
		h := authHandler(t, fakeVerifier{claims: jwt.Claims{UserID: 9, Role: "driver"}})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session"})

		// Act
		h.ServeHTTP(rec, req)

		// Assert
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
