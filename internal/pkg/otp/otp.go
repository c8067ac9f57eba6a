package otp

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"fmt"

	libOTP "github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// Minter creates one-time numeric passcodes.
type Minter interface {
	// Mint returns a new fixed-length numeric code.
	Mint() (string, error)
}

// Numeric implements Minter using HOTP with a fresh random secret and counter
// per mint.
type Numeric struct {
	digits libOTP.Digits
}

// NewNumeric constructs a Numeric code minter.
//
// If digits is not 6 or 8, it falls back to 6 digits.
func NewNumeric(digits libOTP.Digits) *Numeric {
	if digits != libOTP.DigitsSix && digits != libOTP.DigitsEight {
		digits = libOTP.DigitsSix
	}

	return &Numeric{digits: digits}
}

// Mint returns a new fixed-length numeric code.
func (n *Numeric) Mint() (string, error) {
	var buf [28]byte // 20-byte secret per RFC 4226/6238 + 8-byte counter
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf[:20])
	counter := binary.BigEndian.Uint64(buf[20:])

	code, err := hotp.GenerateCodeCustom(secret, counter, hotp.ValidateOpts{
		Digits:    n.digits,
		Algorithm: libOTP.AlgorithmSHA1,
	})
	if err != nil {
		return "", err
	}

	return code, nil
}
