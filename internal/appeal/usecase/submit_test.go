package usecase

import (
	"net/http"
	"testing"
	"time"

	"github.com/drivelaw/backend/internal/appeal/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
)

func appealableOffense() *entity.AppealOffense {
	return &entity.AppealOffense{
		ID:       77,
		Number:   "OFF042",
		DriverID: 9,
		Status:   entity.OffenseStatusConfirmed,
		Points:   6,
	}
}

func TestSubmit(t *testing.T) {
	const reason = "The speed camera location was mislabeled on the ticket."

	t.Run("Unauthenticated", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &testDeps{})

		// Act
		_, err := uc.Submit(t.Context(), SubmitInput{OffenseID: 77, Reason: reason})

		// Assert
		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("ReasonTooShort", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &testDeps{})

		// Act
		_, err := uc.Submit(authCtx(t, 9, "driver"), SubmitInput{OffenseID: 77, Reason: "unfair"})

		// Assert
		assertStatus(t, err, http.StatusUnprocessableEntity)
	})

	t.Run("ForeignOffenseLooksMissing", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{offense: appealableOffense()}
		uc := newTestUsecase(t, &testDeps{repo: repo})

		// Act
		_, err := uc.Submit(authCtx(t, 1234, "driver"), SubmitInput{OffenseID: 77, Reason: reason})

		// Assert
		assertStatus(t, err, http.StatusNotFound)
		if len(repo.created) != 0 {
			t.Fatal("expected no appeal for a foreign offense")
		}
	})

	t.Run("CancelledOffenseNotAppealable", func(t *testing.T) {

		// Arrange
		offense := appealableOffense()
		offense.Status = entity.OffenseStatusCancelled
		uc := newTestUsecase(t, &testDeps{repo: &fakeRepoDB{offense: offense}})

		// Act
		_, err := uc.Submit(authCtx(t, 9, "driver"), SubmitInput{OffenseID: 77, Reason: reason})

		// Assert
		assertStatus(t, err, http.StatusConflict)
	})

	t.Run("SecondAppealRejected", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{offense: appealableOffense(), createErr: goerror.ErrConflict}
		uc := newTestUsecase(t, &testDeps{repo: repo})

		// Act
		_, err := uc.Submit(authCtx(t, 9, "driver"), SubmitInput{OffenseID: 77, Reason: reason})

		// Assert
		assertStatus(t, err, http.StatusConflict)
	})

	t.Run("FilesPendingAppeal", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{offense: appealableOffense()}
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, &testDeps{repo: repo, messaging: msg})

		// Act
		out, err := uc.Submit(authCtx(t, 9, "driver"), SubmitInput{OffenseID: 77, Reason: reason})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Number != "APP001" {
			t.Fatalf("expected number APP001, got %q", out.Number)
		}
		if out.Status != entity.AppealStatusPending {
			t.Fatalf("expected pending status, got %s", out.Status)
		}
		if !out.DueAt.Equal(testNow.Add(14 * 24 * time.Hour)) {
			t.Fatalf("expected due at %s, got %s", testNow.Add(14*24*time.Hour), out.DueAt)
		}

		if len(repo.created) != 1 {
			t.Fatalf("expected one appeal row, got %d", len(repo.created))
		}
		if repo.created[0].OffenseID != 77 || repo.created[0].DriverID != 9 {
			t.Fatalf("unexpected appeal row: %+v", repo.created[0])
		}

		if len(msg.submitted) != 1 {
			t.Fatalf("expected one event, got %d", len(msg.submitted))
		}
		if msg.submitted[0].OffenseNumber != "OFF042" || msg.submitted[0].AppealNumber != "APP001" {
			t.Fatalf("unexpected event: %+v", msg.submitted[0])
		}
	})
}

func TestDecide(t *testing.T) {
	pendingAppeal := func() *entity.Appeal {
		return &entity.Appeal{
			ID:        5,
			Number:    "APP001",
			OffenseID: 77,
			DriverID:  9,
			Status:    entity.AppealStatusPending,
		}
	}

	t.Run("DriverNotAllowed", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &testDeps{})

		// Act
		err := uc.Decide(authCtx(t, 9, "driver"), DecideInput{ID: 5, Decision: "approve", Reason: "camera fault"})

		// Assert
		assertStatus(t, err, http.StatusForbidden)
	})

	t.Run("NotFound", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &testDeps{})

		// Act
		err := uc.Decide(authCtx(t, 1, "admin"), DecideInput{ID: 5, Decision: "approve", Reason: "camera fault"})

		// Assert
		assertStatus(t, err, http.StatusNotFound)
	})

	t.Run("AlreadyDecided", func(t *testing.T) {

		// Arrange
		appeal := pendingAppeal()
		appeal.Status = entity.AppealStatusRejected
		uc := newTestUsecase(t, &testDeps{repo: &fakeRepoDB{appeal: appeal}})

		// Act
		err := uc.Decide(authCtx(t, 1, "admin"), DecideInput{ID: 5, Decision: "approve", Reason: "camera fault"})

		// Assert
		assertStatus(t, err, http.StatusConflict)
	})

	t.Run("ApproveRestoresPoints", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{appeal: pendingAppeal(), offense: appealableOffense()}
		msg := &fakeMessaging{}
		uc := newTestUsecase(t, &testDeps{repo: repo, messaging: msg})

		// Act
		err := uc.Decide(authCtx(t, 1, "admin"), DecideInput{ID: 5, Decision: "approve", Reason: "camera fault"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.approved) != 1 || len(repo.rejected) != 0 {
			t.Fatalf("expected one approval, got approved=%d rejected=%d", len(repo.approved), len(repo.rejected))
		}
		decision := repo.approved[0]
		if decision.Points != 6 || decision.DecidedBy != 1 || decision.DriverID != 9 {
			t.Fatalf("unexpected decision: %+v", decision)
		}
		if !decision.DecidedAt.Equal(testNow) {
			t.Fatalf("expected decided at %s, got %s", testNow, decision.DecidedAt)
		}

		if len(msg.decided) != 1 {
			t.Fatalf("expected one event, got %d", len(msg.decided))
		}
		if msg.decided[0].Decision != entity.AppealStatusApproved {
			t.Fatalf("expected approved decision event, got %s", msg.decided[0].Decision)
		}
	})

	t.Run("RejectLeavesOffenseStanding", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{appeal: pendingAppeal(), offense: appealableOffense()}
		uc := newTestUsecase(t, &testDeps{repo: repo})

		// Act
		err := uc.Decide(authCtx(t, 1, "admin"), DecideInput{ID: 5, Decision: "reject", Reason: "evidence is clear"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.rejected) != 1 || len(repo.approved) != 0 {
			t.Fatalf("expected one rejection, got approved=%d rejected=%d", len(repo.approved), len(repo.rejected))
		}
	})

	t.Run("RaceOnDecisionIsConflict", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{appeal: pendingAppeal(), offense: appealableOffense(), decideErr: goerror.ErrNotFound}
		uc := newTestUsecase(t, &testDeps{repo: repo})

		// Act
		err := uc.Decide(authCtx(t, 1, "admin"), DecideInput{ID: 5, Decision: "approve", Reason: "camera fault"})

		// Assert
		assertStatus(t, err, http.StatusConflict)
	})
}
