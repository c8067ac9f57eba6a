// Package otp provides helpers for minting short-lived numeric one-time
// passcodes.
//
// Codes are derived with RFC 4226 HOTP over a random secret and counter, so
// every mint is an independent fixed-length numeric code. Expiry and attempt
// tracking are the caller's responsibility.
package otp
