// Package ports defines the contracts between the order tracking core and its
// infrastructure: the order store, the token registry, the push transport and
// the change feed. Adapters implement them; tests substitute fakes.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// OrderRepository is the order store contract. It is the only source of truth
// for stage markers.
type OrderRepository interface {
	// Add persists a new order. The ID must not exist yet.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the full current state of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with id, or errs.ObjectNotFoundError.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// GetForUpdate is Get that also locks the row until the surrounding
	// transaction ends, so concurrent writers observe each other's before image.
	GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error)
}
