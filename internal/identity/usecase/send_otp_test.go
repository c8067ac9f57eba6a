package usecase

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/drivelaw/backend/internal/identity/entity"
)

func TestSendOTP(t *testing.T) {

	t.Run("InvalidContact", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &testDeps{})

		// Act
		_, err := uc.SendOTP(t.Context(), SendOTPInput{Contact: "not a contact"})

		// Assert
		assertStatus(t, err, http.StatusUnprocessableEntity)
	})

	t.Run("LockedContactRefusesToIssue", func(t *testing.T) {

		// Arrange
		until := testNow.Add(10 * time.Minute)
		repo := &fakeRepoDB{
			verification: &entity.Verification{
				Contact:     "kofi@example.com",
				ExpiresAt:   testNow.Add(time.Minute),
				LockedUntil: &until,
			},
		}
		uc := newTestUsecase(t, &testDeps{repo: repo})

		// Act
		_, err := uc.SendOTP(t.Context(), SendOTPInput{Contact: "kofi@example.com"})

		// Assert
		assertStatus(t, err, http.StatusForbidden)
		if len(repo.upserted) != 0 {
			t.Fatal("expected no code to be issued while locked")
		}
	})

	t.Run("NewContactRegistersDriver", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{}
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, &testDeps{repo: repo, messaging: msg})

		// Act
		out, err := uc.SendOTP(t.Context(), SendOTPInput{Contact: "Kofi@Example.com"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.createdUsers) != 1 {
			t.Fatalf("expected one created user, got %d", len(repo.createdUsers))
		}
		created := repo.createdUsers[0]
		if created.Role != entity.RoleDriver || created.Status != entity.UserStatusUnverified {
			t.Fatalf("expected unverified driver, got role=%v status=%v", created.Role, created.Status)
		}
		if created.Email != "kofi@example.com" {
			t.Fatalf("expected normalized email, got %q", created.Email)
		}
		if out.Contact != "ko***@example.com" {
			t.Fatalf("expected masked contact, got %q", out.Contact)
		}
		if out.Channel != entity.ChannelEmail {
			t.Fatalf("expected email channel, got %v", out.Channel)
		}
		if out.ExpiresIn != 5*time.Minute {
			t.Fatalf("expected 5m expiry, got %s", out.ExpiresIn)
		}
	})

	t.Run("IssuesHashedCodeWithExpiry", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{user: &entity.User{ID: 9, Language: "ak"}}
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, &testDeps{repo: repo, messaging: msg})

		// Act
		_, err := uc.SendOTP(t.Context(), SendOTPInput{Contact: "+233 24 123 4567"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.upserted) != 1 {
			t.Fatalf("expected one verification upsert, got %d", len(repo.upserted))
		}
		issued := repo.upserted[0]
		if issued.UserID != 9 {
			t.Fatalf("expected verification for user 9, got %d", issued.UserID)
		}
		if !issued.ExpiresAt.Equal(testNow.Add(5 * time.Minute)) {
			t.Fatalf("expected expiry at %s, got %s", testNow.Add(5*time.Minute), issued.ExpiresAt)
		}
		if issued.CodeDigest == "123456" {
			t.Fatal("expected code digest, got plaintext")
		}

		if len(msg.published) != 1 {
			t.Fatalf("expected one delivery event, got %d", len(msg.published))
		}
		event := msg.published[0]
		if event.Code != "123456" || event.Contact != "233241234567" || event.Lang != "ak" {
			t.Fatalf("unexpected delivery event: %+v", event)
		}
		if event.Channel != entity.ChannelSMS {
			t.Fatalf("expected sms channel, got %v", event.Channel)
		}
	})

	t.Run("DeliveryFailure", func(t *testing.T) {

		// Arrange
		msg := &fakeMessaging{err: errors.New("broker down")}
		uc := newTestUsecase(t, &testDeps{messaging: msg})

		// Act
		_, err := uc.SendOTP(t.Context(), SendOTPInput{Contact: "kofi@example.com"})

		// Assert
		assertStatus(t, err, http.StatusInternalServerError)
	})
}
