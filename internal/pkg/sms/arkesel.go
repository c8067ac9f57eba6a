package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrArkeselAPIKeyRequired is returned when the API key is missing.
	ErrArkeselAPIKeyRequired = errors.New("arkesel api key is required")
	// ErrArkeselNoRecipient is returned when the message has no recipient.
	ErrArkeselNoRecipient = errors.New("no recipient provided")
	// ErrArkeselNoSender is returned when both Message.Sender and the configured default are empty.
	ErrArkeselNoSender = errors.New("no sender id provided")
)

const defaultArkeselEndpoint = "https://sms.arkesel.com/api/v2/sms/send"

// Arkesel is an SMS implementation backed by the Arkesel v2 HTTP API.
type Arkesel struct {
	endpoint      string
	apiKey        string
	defaultSender string
	client        *http.Client
}

// ArkeselConfig configures the Arkesel implementation.
type ArkeselConfig struct {
	// Endpoint overrides the production API URL (useful for tests).
	Endpoint string
	// APIKey authenticates requests.
	APIKey string
	// Sender is the default sender ID when Message.Sender is empty.
	Sender string
	// Timeout bounds each HTTP call; zero means 10 seconds.
	Timeout time.Duration
}

// NewArkesel constructs an Arkesel SMS sender.
func NewArkesel(cfg ArkeselConfig) (*Arkesel, error) {
	if cfg.APIKey == "" {
		return nil, ErrArkeselAPIKeyRequired
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultArkeselEndpoint
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Arkesel{
		endpoint:      endpoint,
		apiKey:        cfg.APIKey,
		defaultSender: cfg.Sender,
		client:        &http.Client{Timeout: timeout},
	}, nil
}

// Send delivers a message through the Arkesel API.
func (a *Arkesel) Send(ctx context.Context, msg Message) error {
	recipient := normalizeRecipient(msg.To)
	if recipient == "" {
		return ErrArkeselNoRecipient
	}

	sender := msg.Sender
	if sender == "" {
		sender = a.defaultSender
	}
	if sender == "" {
		return ErrArkeselNoSender
	}

	payload, err := json.Marshal(map[string]any{
		"sender":     sender,
		"message":    msg.Body,
		"recipients": []string{recipient},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("arkesel returned %s: %s", resp.Status, string(body))
	}

	return nil
}

// Close implements io.Closer.
func (a *Arkesel) Close() error {
	a.client.CloseIdleConnections()
	return nil
}

// normalizeRecipient strips whitespace and a single leading plus sign, the
// format the provider expects.
func normalizeRecipient(to string) string {
	to = strings.ReplaceAll(to, " ", "")
	to = strings.TrimPrefix(to, "+")
	return to
}
