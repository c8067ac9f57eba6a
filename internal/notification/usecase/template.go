package usecase

import (
	"github.com/drivelaw/backend/internal/notification/entity"
)

const (
	languageEnglish = "en"
	languageAkan    = "ak"
)

type messageTemplate struct {
	Title string
	Body  string
}

// templates hold the per-kind message texts, keyed by language. Bodies are
// Go text templates; the same text serves in-app, email, and SMS delivery.
var templates = map[entity.Kind]map[string]messageTemplate{
	entity.KindOTP: {
		languageEnglish: {
			Title: "Your DriveLaw verification code",
			Body:  "Your DriveLaw verification code is {{.code}}. It expires in 5 minutes. Do not share it with anyone.",
		},
		languageAkan: {
			Title: "Wo DriveLaw nkyerɛkyerɛmu kɔd",
			Body:  "Wo DriveLaw kɔd ne {{.code}}. Ɛbɛtwa mu wɔ simma 5 akyi. Mfa nkyɛ obiara.",
		},
	},
	entity.KindOffenseRecorded: {
		languageEnglish: {
			Title: "Traffic offense recorded",
			Body:  "Offense {{.number}} ({{.type}}) was recorded against your license at {{.location}}. Fine due: GHS {{.fine}}. You may appeal or pay through DriveLaw.",
		},
		languageAkan: {
			Title: "Wɔakyerɛw kwan so mfomso",
			Body:  "Wɔakyerɛw mfomso {{.number}} ({{.type}}) atia wo wɔ {{.location}}. Ka a wɔde wo: GHS {{.fine}}. Wubetumi abɔ mpaeɛ anaa watua wɔ DriveLaw so.",
		},
	},
	entity.KindAppealSubmitted: {
		languageEnglish: {
			Title: "Appeal received",
			Body:  "We received your appeal {{.number}} for offense {{.offense_number}}. A decision is due by {{.due_date}}.",
		},
		languageAkan: {
			Title: "Yɛagye wo mpaeɛbɔ",
			Body:  "Yɛagye wo mpaeɛbɔ {{.number}} a ɛfa mfomso {{.offense_number}} ho. Wɔbɛsi gyinae ansa na {{.due_date}} adu.",
		},
	},
	entity.KindAppealDecided: {
		languageEnglish: {
			Title: "Appeal decision",
			Body:  "Your appeal {{.number}} for offense {{.offense_number}} was {{.decision}}. Reason: {{.reason}}",
		},
		languageAkan: {
			Title: "Mpaeɛbɔ ho gyinae",
			Body:  "Wo mpaeɛbɔ {{.number}} a ɛfa mfomso {{.offense_number}} ho no, gyinae ne: {{.decision}}. Ntease: {{.reason}}",
		},
	},
	entity.KindPaymentReceived: {
		languageEnglish: {
			Title: "Payment received",
			Body:  "Payment {{.reference}} of GHS {{.amount}} for offense {{.offense_number}} was received. The offense is now settled.",
		},
		languageAkan: {
			Title: "Yɛagye wo sika",
			Body:  "Yɛagye tua {{.reference}}, GHS {{.amount}}, a ɛfa mfomso {{.offense_number}} ho. Mfomso no ho ka asa.",
		},
	},
}

func lookupTemplate(kind entity.Kind, lang string) messageTemplate {
	byLang, ok := templates[kind]
	if !ok {
		return messageTemplate{}
	}

	if tpl, ok := byLang[lang]; ok {
		return tpl
	}

	return byLang[languageEnglish]
}
