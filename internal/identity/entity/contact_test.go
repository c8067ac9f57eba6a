package entity

import (
	"errors"
	"testing"
)

func TestNormalizeContact(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Contact
		wantErr bool
	}{
		{
			name: "EmailLowercasedAndTrimmed",
			raw:  "  Kofi.Mensah@Example.COM ",
			want: Contact{Value: "kofi.mensah@example.com", Channel: ChannelEmail},
		},
		{
			name:    "EmailWithoutDomain",
			raw:     "kofi@",
			wantErr: true,
		},
		{
			name:    "EmailWithoutLocalPart",
			raw:     "@example.com",
			wantErr: true,
		},
		{
			name:    "EmailDomainWithoutDot",
			raw:     "kofi@localhost",
			wantErr: true,
		},
		{
			name: "PhoneWithPlusAndSpaces",
			raw:  "+233 24 123 4567",
			want: Contact{Value: "233241234567", Channel: ChannelSMS},
		},
		{
			name: "PhoneDigitsOnly",
			raw:  "0241234567",
			want: Contact{Value: "0241234567", Channel: ChannelSMS},
		},
		{
			name:    "PhoneTooShort",
			raw:     "12345678",
			wantErr: true,
		},
		{
			name:    "PhoneTooLong",
			raw:     "1234567890123456",
			wantErr: true,
		},
		{
			name:    "PhoneWithLetters",
			raw:     "02412345ab",
			wantErr: true,
		},
		{
			name:    "Empty",
			raw:     "   ",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeContact(tc.raw)

			if tc.wantErr {
				if !errors.Is(err, ErrInvalidContact) {
					t.Fatalf("expected ErrInvalidContact, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestMaskContact(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		want    string
	}{
		{
			name:    "Email",
			contact: Contact{Value: "kofi.mensah@example.com", Channel: ChannelEmail},
			want:    "ko***@example.com",
		},
		{
			name:    "EmailShortLocalPart",
			contact: Contact{Value: "ab@example.com", Channel: ChannelEmail},
			want:    "a***@example.com",
		},
		{
			name:    "Phone",
			contact: Contact{Value: "233241234567", Channel: ChannelSMS},
			want:    "***4567",
		},
		{
			name:    "UnknownChannel",
			contact: Contact{Value: "whatever"},
			want:    "***",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaskContact(tc.contact); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
