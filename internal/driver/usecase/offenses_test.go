package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/drivelaw/backend/internal/driver/entity"
	"github.com/drivelaw/backend/internal/pkg/goerror"
	"github.com/drivelaw/backend/internal/pkg/instrument"
	"github.com/drivelaw/backend/internal/pkg/jwt"
	"github.com/drivelaw/backend/internal/pkg/validator"
)

type fakeRepoDB struct {
	dashboard *entity.Dashboard
	offense   *entity.Offense
	offenses  []entity.Offense
	total     int64
	summary   *entity.PaymentSummary

	listFilters []entity.OffenseListFilterData
	detailIDs   [][2]int64
	patched     []entity.PatchProfile
	patchErr    error
}

func (f *fakeRepoDB) GetDashboard(context.Context, int64) (*entity.Dashboard, error) {
	if f.dashboard == nil {
		return nil, goerror.ErrNotFound
	}
	return f.dashboard, nil
}

func (f *fakeRepoDB) GetOffenseList(_ context.Context, _ int64, filter entity.OffenseListFilterData) ([]entity.Offense, int64, error) {
	f.listFilters = append(f.listFilters, filter)
	return f.offenses, f.total, nil
}

func (f *fakeRepoDB) GetOffenseByID(_ context.Context, driverID, id int64) (*entity.Offense, error) {
	f.detailIDs = append(f.detailIDs, [2]int64{driverID, id})
	if f.offense == nil {
		return nil, goerror.ErrNotFound
	}
	return f.offense, nil
}

func (f *fakeRepoDB) GetPaymentSummary(context.Context, int64) (*entity.PaymentSummary, error) {
	if f.summary == nil {
		return nil, goerror.ErrNotFound
	}
	return f.summary, nil
}

func (f *fakeRepoDB) PatchProfile(_ context.Context, data entity.PatchProfile) error {
	if f.patchErr != nil {
		return f.patchErr
	}
	f.patched = append(f.patched, data)
	return nil
}

const testRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	m, err := model.NewModelFromString(testRBACModel)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("new enforcer: %v", err)
	}

	if _, err := e.AddPolicies([][]string{
		{"driver", "driver", "read"},
		{"driver", "driver", "write"},
	}); err != nil {
		t.Fatalf("add policies: %v", err)
	}

	return e
}

func newTestUsecase(t *testing.T, repo *fakeRepoDB) *Usecase {
	t.Helper()

	if repo == nil {
		repo = &fakeRepoDB{}
	}

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	return New(Dependency{
		RepoDB:     repo,
		Validator:  v,
		Instrument: instrument.NewNoop(),
		Enforcer:   newTestEnforcer(t),
	})
}

func authCtx(t *testing.T, userID int64, role string) context.Context {
	t.Helper()

	return jwt.SetAuth(t.Context(), jwt.Claims{UserID: userID, Role: role})
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}

	gerr, ok := err.(*goerror.Error)
	if !ok {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	if gerr.StatusCode() != want {
		t.Fatalf("expected status %d, got %d (%s)", want, gerr.StatusCode(), gerr.Msg())
	}
}

func TestOffenses(t *testing.T) {
	t.Run("Unauthenticated", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, nil)

		// Act
		_, err := uc.Offenses(t.Context(), OffensesInput{})

		// Assert
		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("OfficerNotAllowed", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, nil)

		// Act
		_, err := uc.Offenses(authCtx(t, 3, "officer"), OffensesInput{})

		// Assert
		assertStatus(t, err, http.StatusForbidden)
	})

	t.Run("DefaultsPageAndLimit", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{total: 42}
		uc := newTestUsecase(t, repo)

		// Act
		out, err := uc.Offenses(authCtx(t, 9, "driver"), OffensesInput{})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Page != 1 || out.Limit != 20 {
			t.Fatalf("expected page 1 limit 20, got %d/%d", out.Page, out.Limit)
		}
		if out.Total != 42 {
			t.Fatalf("expected total 42, got %d", out.Total)
		}
	})

	t.Run("StatusFilterAndOffset", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{}
		uc := newTestUsecase(t, repo)

		// Act
		_, err := uc.Offenses(authCtx(t, 9, "driver"), OffensesInput{Status: "confirmed", Page: 3, Limit: 10})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.listFilters) != 1 {
			t.Fatalf("expected one list call, got %d", len(repo.listFilters))
		}
		filter := repo.listFilters[0]
		if !filter.IsFilterByStatus || len(filter.Statuses) != 1 || filter.Statuses[0] != int16(entity.OffenseStatusConfirmed) {
			t.Fatalf("unexpected status filter: %+v", filter)
		}
		if filter.Limit != 10 || filter.Offset != 20 {
			t.Fatalf("expected limit 10 offset 20, got %d/%d", filter.Limit, filter.Offset)
		}
	})

	t.Run("UnknownStatusRejected", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, nil)

		// Act
		_, err := uc.Offenses(authCtx(t, 9, "driver"), OffensesInput{Status: "disputed"})

		// Assert
		assertStatus(t, err, http.StatusUnprocessableEntity)
	})
}

func TestOffenseDetail(t *testing.T) {
	t.Run("ScopedToCaller", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{offense: &entity.Offense{ID: 77, Number: "OFF001"}}
		uc := newTestUsecase(t, repo)

		// Act
		out, err := uc.OffenseDetail(authCtx(t, 9, "driver"), OffenseDetailInput{ID: 77})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Offense.Number != "OFF001" {
			t.Fatalf("unexpected offense: %+v", out.Offense)
		}
		if len(repo.detailIDs) != 1 || repo.detailIDs[0] != [2]int64{9, 77} {
			t.Fatalf("expected lookup scoped to driver 9, got %v", repo.detailIDs)
		}
	})

	t.Run("ForeignOffenseLooksMissing", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &fakeRepoDB{})

		// Act
		_, err := uc.OffenseDetail(authCtx(t, 9, "driver"), OffenseDetailInput{ID: 77})

		// Assert
		assertStatus(t, err, http.StatusNotFound)
	})
}

func TestProfileUpdate(t *testing.T) {
	t.Run("PatchesOwnRow", func(t *testing.T) {

		// Arrange
		repo := &fakeRepoDB{}
		uc := newTestUsecase(t, repo)

		// Act
		err := uc.ProfileUpdate(authCtx(t, 9, "driver"), ProfileUpdateInput{FullName: "Kofi Mensah", Language: "ak"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.patched) != 1 {
			t.Fatalf("expected one patch, got %d", len(repo.patched))
		}
		patch := repo.patched[0]
		if patch.ID != 9 || patch.FullName != "Kofi Mensah" || patch.Language != "ak" || patch.Region != "" {
			t.Fatalf("unexpected patch: %+v", patch)
		}
	})

	t.Run("UnknownLanguageRejected", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, nil)

		// Act
		err := uc.ProfileUpdate(authCtx(t, 9, "driver"), ProfileUpdateInput{Language: "fr"})

		// Assert
		assertStatus(t, err, http.StatusUnprocessableEntity)
	})

	t.Run("MissingDriverRow", func(t *testing.T) {

		// Arrange
		uc := newTestUsecase(t, &fakeRepoDB{patchErr: goerror.ErrNotFound})

		// Act
		err := uc.ProfileUpdate(authCtx(t, 9, "driver"), ProfileUpdateInput{Region: "Ashanti"})

		// Assert
		assertStatus(t, err, http.StatusNotFound)
	})
}
