package notification

import (
	"time"

	"orderflow/internal/pkg/errs"
)

// DefaultTTL is how long the transport keeps an undelivered web push message.
const DefaultTTL = 24 * time.Hour

// Message is the payload sent to each recipient.
type Message struct {
	Title string
	Body  string
	Icon  string
	Badge string
	// Data is delivered alongside the notification for deep linking.
	Data map[string]string
	TTL  time.Duration
}

func (m Message) Validate() error {
	if m.Title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if m.Body == "" {
		return errs.NewValueIsRequiredError("body")
	}
	return nil
}
