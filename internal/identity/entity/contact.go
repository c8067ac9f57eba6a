package entity

import (
	"errors"
	"strings"
)

// ErrInvalidContact is returned when input is neither a usable email address
// nor a usable phone number.
var ErrInvalidContact = errors.New("identity: contact is not a valid email address or phone number")

// Contact is a normalized delivery address for verification codes.
type Contact struct {
	Value   string
	Channel Channel
}

// NormalizeContact canonicalizes raw user input into a Contact.
//
// Anything containing '@' is treated as an email address: trimmed and
// lowercased, with a non-empty local part and domain. Everything else is
// treated as a phone number: spaces removed, one leading '+' stripped, and
// the rest must be 9 to 15 digits.
func NormalizeContact(raw string) (Contact, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Contact{}, ErrInvalidContact
	}

	if strings.Contains(raw, "@") {
		email := strings.ToLower(raw)
		local, domain, _ := strings.Cut(email, "@")
		if local == "" || domain == "" || strings.Contains(domain, "@") || !strings.Contains(domain, ".") {
			return Contact{}, ErrInvalidContact
		}

		return Contact{Value: email, Channel: ChannelEmail}, nil
	}

	phone := strings.ReplaceAll(raw, " ", "")
	phone = strings.TrimPrefix(phone, "+")
	if len(phone) < 9 || len(phone) > 15 {
		return Contact{}, ErrInvalidContact
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return Contact{}, ErrInvalidContact
		}
	}

	return Contact{Value: phone, Channel: ChannelSMS}, nil
}

// MaskContact hides most of a contact for responses and logs.
func MaskContact(c Contact) string {
	switch c.Channel {
	case ChannelEmail:
		local, domain, _ := strings.Cut(c.Value, "@")
		if len(local) <= 2 {
			return local[:1] + "***@" + domain
		}
		return local[:2] + "***@" + domain
	case ChannelSMS:
		if len(c.Value) <= 4 {
			return "***"
		}
		return "***" + c.Value[len(c.Value)-4:]
	default:
		return "***"
	}
}
