// Package commands contains the operations that change state or reach
// recipients: order writes, token registration, the change dispatcher and
// the direct user notification. Every command is built through its
// constructor and validated again by its handler.
package commands

import (
	"context"

	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order store within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// TokenRepoFactory provides access to the token registry within a transaction.
	TokenRepoFactory interface {
		TokenRepository() ports.TokenRepository
	}

	// OrderUoW manages transactions for order writes.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// TokenUoW manages transactions for token registry writes.
	TokenUoW interface {
		TxManager
		TokenRepoFactory
	}

	// TokenUoWFactory creates new token unit of work instances.
	TokenUoWFactory interface {
		Create() TokenUoW
	}
)
