package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/drivelaw/backend/internal/notification/entity"
	"github.com/drivelaw/backend/internal/pkg/config"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/drivelaw/backend/internal/pkg/instrument"
	"github.com/drivelaw/backend/internal/pkg/mail"
	"github.com/drivelaw/backend/internal/pkg/sms"
	"github.com/drivelaw/backend/internal/pkg/validator"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

type fakeClock struct{}

func (fakeClock) Now() time.Time { return testNow }

type fakeUID struct{ next int64 }

func (f *fakeUID) Generate() int64 {
	f.next++
	return f.next
}

type fakeConfig struct {
	config.Config
}

func (fakeConfig) GetMinute(string) time.Duration { return 30 * time.Minute }

type loggedNotification struct {
	notification entity.CreateNotification
	log          entity.CreateDeliveryLog
}

type fakeRepoDB struct {
	recipient *entity.Recipient

	nextLogID int64
	inbox     []entity.CreateNotification
	delivered []loggedNotification
	updates   []entity.UpdateDeliveryLog
}

func (f *fakeRepoDB) GetRecipient(context.Context, int64) (*entity.Recipient, error) {
	if f.recipient == nil {
		return nil, goerror.ErrNotFound
	}
	return f.recipient, nil
}

func (f *fakeRepoDB) CreateNotification(_ context.Context, data entity.CreateNotification) error {
	f.inbox = append(f.inbox, data)
	return nil
}

func (f *fakeRepoDB) CreateNotificationWithDeliveryLog(_ context.Context, n entity.CreateNotification, dl entity.CreateDeliveryLog) (int64, error) {
	f.delivered = append(f.delivered, loggedNotification{notification: n, log: dl})
	f.nextLogID++
	return f.nextLogID, nil
}

func (f *fakeRepoDB) UpdateDeliveryLogStatus(_ context.Context, u entity.UpdateDeliveryLog) error {
	f.updates = append(f.updates, u)
	return nil
}

func (f *fakeRepoDB) ListNotifications(context.Context, int64, entity.NotificationStatus, int32, int32) ([]entity.NotificationItem, error) {
	return nil, nil
}

func (f *fakeRepoDB) CountUnreadNotifications(context.Context, int64) (int64, error) { return 0, nil }

func (f *fakeRepoDB) MarkNotificationRead(context.Context, int64, int64) (bool, error) {
	return false, nil
}

func (f *fakeRepoDB) MarkNotificationsReadAll(context.Context, int64) (int64, error) { return 0, nil }

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeSMS struct {
	sent []sms.Message
	err  error
}

func (f *fakeSMS) Send(_ context.Context, msg sms.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type testDeps struct {
	repo *fakeRepoDB
	mail *fakeMail
	sms  *fakeSMS
}

func newTestUsecase(t *testing.T, deps *testDeps) *Usecase {
	t.Helper()

	if deps.repo == nil {
		deps.repo = &fakeRepoDB{}
	}
	if deps.mail == nil {
		deps.mail = &fakeMail{}
	}
	if deps.sms == nil {
		deps.sms = &fakeSMS{}
	}

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	return NewNotification(Dependency{
		RepoDB:     deps.repo,
		RepoMail:   deps.mail,
		RepoSMS:    deps.sms,
		Config:     fakeConfig{},
		UID:        &fakeUID{},
		Clock:      fakeClock{},
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})
}

func TestConsumeOTPRequested(t *testing.T) {
	input := func() ConsumeOTPRequestedInput {
		return ConsumeOTPRequestedInput{
			UserID:  9,
			Contact: "kofi@example.com",
			Channel: "email",
			Code:    "123456",
			Lang:    "en",
		}
	}

	t.Run("MalformedEventDropped", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{}
		uc := newTestUsecase(t, &testDeps{repo: repo})
		in := input()
		in.Channel = "carrier-pigeon"

		// Act
		err := uc.ConsumeOTPRequested(t.Context(), in)

		// Assert
		if err != nil {
			t.Fatalf("expected malformed event to be dropped, got %v", err)
		}
		if len(repo.delivered) != 0 || len(repo.inbox) != 0 {
			t.Fatal("expected nothing written for a malformed event")
		}
	})

	t.Run("EmailChannel", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{}
		mailer := &fakeMail{}
		uc := newTestUsecase(t, &testDeps{repo: repo, mail: mailer})

		// Act
		err := uc.ConsumeOTPRequested(t.Context(), input())

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.delivered) != 1 {
			t.Fatalf("expected one delivery log, got %d", len(repo.delivered))
		}
		if repo.delivered[0].log.Channel != entity.ChannelEmail {
			t.Fatalf("expected email channel, got %v", repo.delivered[0].log.Channel)
		}
		if len(mailer.sent) != 1 {
			t.Fatalf("expected one email, got %d", len(mailer.sent))
		}
		if !strings.Contains(mailer.sent[0].TextBody, "123456") {
			t.Fatalf("expected code in body, got %q", mailer.sent[0].TextBody)
		}
		if len(repo.updates) != 1 || repo.updates[0].Status != entity.DeliveryStatusSent {
			t.Fatalf("expected log settled sent, got %+v", repo.updates)
		}
	})

	t.Run("SMSFailureSchedulesRetry", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{}
		sender := &fakeSMS{err: errors.New("provider down")}
		uc := newTestUsecase(t, &testDeps{repo: repo, sms: sender})
		in := input()
		in.Contact = "233241234567"
		in.Channel = "sms"

		// Act
		err := uc.ConsumeOTPRequested(t.Context(), in)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.updates) != 1 {
			t.Fatalf("expected one log update, got %d", len(repo.updates))
		}
		up := repo.updates[0]
		if up.Status != entity.DeliveryStatusFailed || up.ProviderResponse != "provider down" {
			t.Fatalf("unexpected log update: %+v", up)
		}
		if up.NextRetryAt == nil || !up.NextRetryAt.Equal(testNow.Add(30*time.Minute)) {
			t.Fatalf("expected retry at %s, got %v", testNow.Add(30*time.Minute), up.NextRetryAt)
		}
	})
}

func TestConsumeOffenseRecorded(t *testing.T) {
	input := func() ConsumeOffenseRecordedInput {
		return ConsumeOffenseRecordedInput{
			OffenseID:     77,
			OffenseNumber: "OFF042",
			DriverID:      9,
			OffenseType:   "speeding",
			FineAmount:    200,
			Location:      "Ring Road, Accra",
		}
	}

	t.Run("UnknownRecipientDropped", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{}
		uc := newTestUsecase(t, &testDeps{repo: repo})

		// Act
		err := uc.ConsumeOffenseRecorded(t.Context(), input())

		// Assert
		if err != nil {
			t.Fatalf("expected event for unknown user to be dropped, got %v", err)
		}
		if len(repo.delivered) != 0 || len(repo.inbox) != 0 {
			t.Fatal("expected nothing written for an unknown recipient")
		}
	})

	t.Run("PrefersEmailOverSMS", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{recipient: &entity.Recipient{
			ID:       9,
			Email:    "kofi@example.com",
			Phone:    "233241234567",
			Language: "en",
		}}
		mailer := &fakeMail{}
		sender := &fakeSMS{}
		uc := newTestUsecase(t, &testDeps{repo: repo, mail: mailer, sms: sender})

		// Act
		err := uc.ConsumeOffenseRecorded(t.Context(), input())

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(mailer.sent) != 1 || len(sender.sent) != 0 {
			t.Fatalf("expected email delivery only, got %d emails %d sms", len(mailer.sent), len(sender.sent))
		}
		if !strings.Contains(mailer.sent[0].TextBody, "OFF042") {
			t.Fatalf("expected offense number in body, got %q", mailer.sent[0].TextBody)
		}
	})

	t.Run("NoContactStillGetsInboxRow", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{recipient: &entity.Recipient{ID: 9, Language: "ak"}}
		uc := newTestUsecase(t, &testDeps{repo: repo})

		// Act
		err := uc.ConsumeOffenseRecorded(t.Context(), input())

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.inbox) != 1 {
			t.Fatalf("expected one inbox row, got %d", len(repo.inbox))
		}
		row := repo.inbox[0]
		if row.UserID != 9 || row.Kind != entity.KindOffenseRecorded {
			t.Fatalf("unexpected inbox row: %+v", row)
		}
		if len(repo.delivered) != 0 {
			t.Fatal("expected no outbound delivery without a contact")
		}
	})
}
