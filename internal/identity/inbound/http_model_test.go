package inbound

import (
	"net/http"
	"testing"
	"time"

	"github.com/drivelaw/backend/internal/pkg/config"
	"github.com/drivelaw/backend/internal/pkg/router"
)

// fakeConfig serves only the keys the cookie profile reads. Everything
// else panics through the embedded nil interface.
type fakeConfig struct {
	config.Config

	env    string
	domain string
}

func (f fakeConfig) GetString(key string) string {
	switch key {
	case "app.env":
		return f.env
	case "app.server.cookie.domain":
		return f.domain
	}
	return ""
}

func TestNewCookieSettings(t *testing.T) {
	t.Run("DefaultIsCrossSiteProfile", func(t *testing.T) {
		// Arrange
		cfg := fakeConfig{env: "production", domain: "drivelaw.example"}

		// Act
		cs := newCookieSettings(cfg)

		// Assert
		if !cs.secure {
			t.Error("expected Secure cookie outside dev")
		}
		if cs.sameSite != http.SameSiteNoneMode {
			t.Errorf("expected SameSite=None, got %v", cs.sameSite)
		}
		if cs.domain != "drivelaw.example" {
			t.Errorf("expected configured domain, got %q", cs.domain)
		}
	})

	t.Run("DevRelaxesToLax", func(t *testing.T) {
		// Arrange
		cfg := fakeConfig{env: "dev"}

		// Act
		cs := newCookieSettings(cfg)

		// Assert
		if cs.secure {
			t.Error("expected insecure cookie in dev")
		}
		if cs.sameSite != http.SameSiteLaxMode {
			t.Errorf("expected SameSite=Lax in dev, got %v", cs.sameSite)
		}
	})
}

func TestSessionCookies(t *testing.T) {
	expiresAt := time.Date(2025, time.March, 10, 13, 0, 0, 0, time.UTC)

	t.Run("VerifyOTPSetsSessionCookie", func(t *testing.T) {
		// Arrange
		resp := VerifyOTPResponse{
			Token:     "tok-123",
			ExpiresAt: expiresAt,
			cookies:   newCookieSettings(fakeConfig{env: "production", domain: "drivelaw.example"}),
		}

		// Act
		cookies := resp.Cookies()

		// Assert
		if len(cookies) != 1 {
			t.Fatalf("expected one cookie, got %d", len(cookies))
		}

		c := cookies[0]
		if c.Name != router.SessionCookieName || c.Value != "tok-123" {
			t.Errorf("unexpected cookie identity: %q=%q", c.Name, c.Value)
		}
		if !c.Expires.Equal(expiresAt) {
			t.Errorf("expected expiry %v, got %v", expiresAt, c.Expires)
		}
		if !c.HttpOnly || c.Path != "/" {
			t.Errorf("expected HttpOnly cookie on /, got %+v", c)
		}
		if !c.Secure || c.SameSite != http.SameSiteNoneMode || c.Domain != "drivelaw.example" {
			t.Errorf("expected configured cross-site attributes, got %+v", c)
		}
	})

	t.Run("DevCookieFollowsDevProfile", func(t *testing.T) {
		// Arrange
		resp := OnboardingResponse{
			Token:     "tok-456",
			ExpiresAt: expiresAt,
			cookies:   newCookieSettings(fakeConfig{env: "dev"}),
		}

		// Act
		c := resp.Cookies()[0]

		// Assert
		if c.Secure {
			t.Error("expected insecure cookie in dev")
		}
		if c.SameSite != http.SameSiteLaxMode {
			t.Errorf("expected SameSite=Lax in dev, got %v", c.SameSite)
		}
	})

	t.Run("LogoutClearsCookie", func(t *testing.T) {
		// Arrange
		resp := LogoutResponse{cookies: newCookieSettings(fakeConfig{env: "production"})}

		// Act
		c := resp.Cookies()[0]

		// Assert
		if c.Name != router.SessionCookieName || c.Value != "" {
			t.Errorf("expected empty session cookie, got %q=%q", c.Name, c.Value)
		}
		if c.MaxAge != -1 {
			t.Errorf("expected MaxAge=-1, got %d", c.MaxAge)
		}
		if !c.Secure || c.SameSite != http.SameSiteNoneMode {
			t.Errorf("expected cross-site attributes on the clearing cookie, got %+v", c)
		}
	})
}
