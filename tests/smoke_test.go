package tests

import (
	"net/http"
	"testing"
)

type meData struct {
	ID     int64  `json:"id,string"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

func TestAuthenticatedSmoke(t *testing.T) {
	token := e2eToken(t)

	t.Run("Me", func(t *testing.T) {

		// Act
		status, body := doJSON(t, http.MethodGet, "/api/v1/auth/me", nil, token)

		// Assert
		if status != http.StatusOK {
			errEnv := decodeError(t, body)
			t.Fatalf("me failed: status=%d message=%q", status, errEnv.Message)
		}

		var data meData
		decodeSuccess(t, body, &data)
		if data.ID == 0 || data.Role == "" {
			t.Fatalf("expected identity in response, got %+v", data)
		}
	})

	t.Run("Notifications", func(t *testing.T) {

		// Act
		status, body := doJSON(t, http.MethodGet, "/api/v1/notifications", nil, token)

		// Assert
		if status != http.StatusOK {
			errEnv := decodeError(t, body)
			t.Fatalf("notifications failed: status=%d message=%q", status, errEnv.Message)
		}
		if env := decodeSuccess(t, body, nil); env.Meta == nil {
			t.Fatal("expected unread count in meta")
		}
	})
}
