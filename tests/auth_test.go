package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

type sendOTPData struct {
	Contact          string `json:"contact"`
	Channel          string `json:"channel"`
	ExpiresInSeconds int64  `json:"expires_in_seconds"`
}

func TestSendOTP(t *testing.T) {

	t.Run("InvalidContact", func(t *testing.T) {

		// Arrange
		payload := map[string]string{"contact": "not-a-contact"}

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/v1/auth/send-otp", payload, "")

		// Assert
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", status)
		}
		if env := decodeError(t, body); env.Message == "" {
			t.Fatal("expected error message")
		}
	})

	t.Run("NewContact", func(t *testing.T) {

		// Arrange
		contact := uniqueEmail("e2e-send")
		payload := map[string]string{"contact": contact}

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/v1/auth/send-otp", payload, "")

		// Assert
		if status != http.StatusOK {
			errEnv := decodeError(t, body)
			t.Fatalf("send otp failed: status=%d message=%q", status, errEnv.Message)
		}

		var data sendOTPData
		decodeSuccess(t, body, &data)
		if data.Channel != "email" {
			t.Fatalf("expected email channel, got %q", data.Channel)
		}
		if data.Contact == contact {
			t.Fatal("expected contact to be masked in response")
		}
		if data.ExpiresInSeconds <= 0 {
			t.Fatalf("expected positive expiry, got %d", data.ExpiresInSeconds)
		}
	})
}

func TestVerifyOTP(t *testing.T) {

	t.Run("NoPendingVerification", func(t *testing.T) {

		// Arrange
		payload := map[string]any{
			"contact": uniqueEmail("e2e-verify-missing"),
			"code":    "123456",
		}

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/v1/auth/verify-otp", payload, "")

		// Assert
		if status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
		if env := decodeError(t, body); env.Message == "" {
			t.Fatal("expected error message")
		}
	})

	t.Run("WrongCode", func(t *testing.T) {

		// Arrange
		contact := uniqueEmail("e2e-verify-wrong")
		status, body := doJSON(t, http.MethodPost, "/api/v1/auth/send-otp", map[string]string{"contact": contact}, "")
		if status != http.StatusOK {
			errEnv := decodeError(t, body)
			t.Fatalf("send otp failed: status=%d message=%q", status, errEnv.Message)
		}

		// Act. The real code went out over email, so any fixed guess is wrong
		// for all practical purposes.
		status, body = doJSON(t, http.MethodPost, "/api/v1/auth/verify-otp", map[string]any{
			"contact": contact,
			"code":    "000000",
		}, "")

		// Assert
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
		if env := decodeError(t, body); env.Message == "" {
			t.Fatal("expected error message")
		}
	})
}

func TestLogout(t *testing.T) {

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/logout", nil, "")

	// Assert
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if env := decodeSuccess(t, body, nil); env.Message == "" {
		t.Fatal("expected success message")
	}
}

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	endpoints := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/driver/dashboard"},
		{http.MethodGet, "/api/v1/offenses"},
		{http.MethodGet, "/api/v1/appeals"},
		{http.MethodPost, "/api/v1/payments"},
		{http.MethodGet, "/api/v1/notifications"},
		{http.MethodGet, "/api/v1/admin/drivers"},
	}

	for _, ep := range endpoints {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			status, _ := doJSON(t, ep.method, ep.path, nil, "")
			if status != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", status)
			}
		})
	}
}
