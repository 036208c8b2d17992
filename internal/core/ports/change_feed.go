package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// ChangeType is the kind of order store mutation.
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
)

// OrderChange is one mutation of the order store: the row image before the
// write (nil for inserts) and after it. ID names the committed mutation and
// is the same on every redelivery of it; it is empty when the source cannot
// name the mutation.
type OrderChange struct {
	ID     string
	Type   ChangeType
	Before *order.Order
	After  *order.Order
}

// ChangeNotifier hands committed order mutations to whatever drives the
// change dispatcher (in-process, Kafka, ...). Delivery must be at least once.
type ChangeNotifier interface {
	Notify(ctx context.Context, change OrderChange) error
}

// TransitionDeduper suppresses repeated notifications for the same mutation
// when the change feed redelivers it. Claim returns true the first time key
// is seen within the deduper's retention window. Release drops a claim whose
// dispatch did not complete, so the next delivery is handled again.
type TransitionDeduper interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
