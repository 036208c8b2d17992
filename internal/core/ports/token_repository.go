package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
)

// TokenRepository is the notification token registry.
type TokenRepository interface {
	// Upsert inserts the token or, when the token value already exists,
	// updates its owner, device info and updated_at.
	Upsert(ctx context.Context, token *notification.Token) error

	// ListAll returns every registered token (broadcast recipients).
	ListAll(ctx context.Context) ([]*notification.Token, error)

	// ListByUser returns the tokens owned by userID.
	ListByUser(ctx context.Context, userID kernel.UUID) ([]*notification.Token, error)

	// DeleteByTokens removes registrations by token value in one statement.
	// Values that no longer exist are ignored; the call is idempotent.
	DeleteByTokens(ctx context.Context, values []string) (int64, error)

	// DeleteUpdatedBefore removes registrations not refreshed since cutoff.
	DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
