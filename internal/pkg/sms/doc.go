// Package sms provides helpers for sending SMS messages through an external
// provider behind a small interface.
package sms
