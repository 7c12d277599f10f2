// Package delivery posts changesets to the downstream receiver.
package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds a single delivery request.
const DefaultTimeout = 30 * time.Second

// maxBodyInError limits how much of a rejected response is kept.
const maxBodyInError = 256

// Sender delivers an encoded changeset.
type Sender interface {
	Send(ctx context.Context, payload []byte) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, payload []byte) error

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, payload []byte) error { return f(ctx, payload) }

// DeliveryError reports a response outside the 2xx range.
type DeliveryError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *DeliveryError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("delivery to %s rejected: %s", e.URL, e.Status)
	}
	return fmt.Sprintf("delivery to %s rejected: %s: %s", e.URL, e.Status, e.Body)
}

// Retryable reports whether the receiver may accept the same payload later.
func (e *DeliveryError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429 || e.StatusCode == 408
}

// HTTPSender posts JSON payloads with a resty client. It never retries;
// the watch loop redelivers on its next poll.
type HTTPSender struct {
	url    string
	client *resty.Client
}

// NewHTTPSender returns a sender posting to url. A non-positive timeout
// uses DefaultTimeout.
func NewHTTPSender(url string, timeout time.Duration) *HTTPSender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("Content-Type", "application/json")

	return &HTTPSender{
		url:    url,
		client: client,
	}
}

// Send posts payload. Transport failures are wrapped; non-2xx responses
// return *DeliveryError.
func (s *HTTPSender) Send(ctx context.Context, payload []byte) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("delivery to %s: %w", s.url, err)
	}

	if !resp.IsSuccess() {
		body := resp.String()
		if len(body) > maxBodyInError {
			body = body[:maxBodyInError]
		}
		return &DeliveryError{
			URL:        s.url,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       body,
		}
	}
	return nil
}
