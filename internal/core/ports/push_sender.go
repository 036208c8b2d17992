package ports

import (
	"context"

	"orderflow/internal/core/domain/model/notification"
)

// PushSender is the push transport. Send reports one of three outcomes:
// Delivered (err is nil), TransientFailure or PermanentlyInvalid (err carries
// the transport error). Transport-specific error codes are mapped by the
// adapter; "registration not found or invalid" classes are PermanentlyInvalid.
//
// Implementations must be safe for concurrent use and honor ctx cancellation.
type PushSender interface {
	Send(ctx context.Context, token string, msg notification.Message) (notification.Outcome, error)
}
