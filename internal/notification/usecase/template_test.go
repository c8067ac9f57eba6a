package usecase

import (
	"strings"
	"testing"

	"github.com/drivelaw/backend/internal/notification/entity"
)

func TestLookupTemplate(t *testing.T) {

	t.Run("EveryKindHasBothLanguages", func(t *testing.T) {
		kinds := []entity.Kind{
			entity.KindOTP,
			entity.KindOffenseRecorded,
			entity.KindAppealSubmitted,
			entity.KindAppealDecided,
			entity.KindPaymentReceived,
		}

		for _, kind := range kinds {
			for _, lang := range []string{languageEnglish, languageAkan} {
				tpl := lookupTemplate(kind, lang)
				if tpl.Title == "" || tpl.Body == "" {
					t.Fatalf("missing %s template for kind %s", lang, kind.String())
				}
			}
		}
	})

	t.Run("UnknownLanguageFallsBackToEnglish", func(t *testing.T) {
		got := lookupTemplate(entity.KindOTP, "fr")
		want := lookupTemplate(entity.KindOTP, languageEnglish)
		if got != want {
			t.Fatalf("expected english fallback, got %+v", got)
		}
	})

	t.Run("UnknownKind", func(t *testing.T) {
		if tpl := lookupTemplate(entity.Kind(99), languageEnglish); tpl.Title != "" {
			t.Fatalf("expected empty template, got %+v", tpl)
		}
	})
}

func TestRenderTemplate(t *testing.T) {
	uc := &Usecase{}

	t.Run("SubstitutesValues", func(t *testing.T) {

		// Arrange
		tpl := lookupTemplate(entity.KindOTP, languageEnglish)

		// Act
		body, err := uc.renderTemplate("otp", tpl.Body, map[string]any{"code": "123456"})

		// Assert
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if !strings.Contains(body, "123456") {
			t.Fatalf("expected code in body, got %q", body)
		}
		if strings.Contains(body, "{{") {
			t.Fatalf("expected no unresolved placeholders, got %q", body)
		}
	})

	t.Run("MissingKeyRendersZeroValue", func(t *testing.T) {

		// Arrange
		tpl := lookupTemplate(entity.KindPaymentReceived, languageEnglish)

		// Act
		body, err := uc.renderTemplate("payment_received", tpl.Body, map[string]any{})

		// Assert
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if strings.Contains(body, "{{") {
			t.Fatalf("expected placeholders resolved, got %q", body)
		}
	})
}
