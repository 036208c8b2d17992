package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to add a production line item.
// Initial markers are allowed: an order imported halfway through production
// notifies for its most advanced set marker, like any other insert.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(order.Record{
//	    Number:     "1042",
//	    Attributes: order.Attributes{Color: "preto", Size: "M"},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	record order.Record

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the record. A blank ID is replaced by a
// generated one; CreatedAt is stamped by the handler when zero.
func NewCreateOrderCommand(rec order.Record) (CreateOrderCommand, error) {
	if strings.TrimSpace(rec.ID.String()) == "" {
		rec.ID = order.ID(uuid.NewString())
	}

	// Restore carries every aggregate rule; the result is discarded.
	o, err := order.Restore(rec)
	if err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		record: o.Record(),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() order.ID {
	return c.record.ID
}

func (c CreateOrderCommand) Record() order.Record {
	return c.record
}
