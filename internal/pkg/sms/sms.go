package sms

import (
	"context"
	"io"
)

// Message represents an SMS payload.
type Message struct {
	// To is the recipient phone number in international format.
	To string
	// Body is the message text.
	Body string
	// Sender overrides the configured default sender ID when set.
	Sender string
}

// SMS abstracts an SMS provider.
type SMS interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}
