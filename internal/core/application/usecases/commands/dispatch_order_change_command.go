package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrDispatchOrderChangeCommandIsNotConstructed = errors.New(
	"DispatchOrderChangeCommand must be created via NewDispatchOrderChangeCommand constructor",
)

// DispatchOrderChangeCommand carries one order store mutation to the change
// dispatcher: the change kind and the row images around the write.
//
// Example:
//
//	cmd, err := NewDispatchOrderChangeCommand(ports.ChangeUpdate, before, after)
//	if err != nil {
//	    return fmt.Errorf("malformed change: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type DispatchOrderChangeCommand struct { //nolint:recvcheck //using for validation
	changeID   string
	changeType ports.ChangeType
	before     *order.Order
	after      *order.Order

	guard guard.ConstructorGuard
}

// NewDispatchOrderChangeCommand validates the change. The after image is
// required. For inserts the before image is dropped: a new row has no prior
// markers. For updates a before image with a different id is rejected.
func NewDispatchOrderChangeCommand(changeType ports.ChangeType, before, after *order.Order) (DispatchOrderChangeCommand, error) {
	cmd := DispatchOrderChangeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setChangeType(changeType); err != nil {
		return DispatchOrderChangeCommand{}, err
	}
	if err := cmd.setAfter(after); err != nil {
		return DispatchOrderChangeCommand{}, err
	}
	if err := cmd.setBefore(before); err != nil {
		return DispatchOrderChangeCommand{}, err
	}

	return cmd, nil
}

// NewDispatchOrderChangeCommandFromChange also keeps the change ID, which lets
// the dispatcher recognize redeliveries.
func NewDispatchOrderChangeCommandFromChange(change ports.OrderChange) (DispatchOrderChangeCommand, error) {
	cmd, err := NewDispatchOrderChangeCommand(change.Type, change.Before, change.After)
	if err != nil {
		return DispatchOrderChangeCommand{}, err
	}
	cmd.changeID = strings.TrimSpace(change.ID)
	return cmd, nil
}

func (c DispatchOrderChangeCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderChangeCommandIsNotConstructed)
}

// ChangeID is empty when the change source did not name the mutation.
func (c DispatchOrderChangeCommand) ChangeID() string {
	return c.changeID
}

func (c DispatchOrderChangeCommand) ChangeType() ports.ChangeType {
	return c.changeType
}

// Before is nil for inserts.
func (c DispatchOrderChangeCommand) Before() *order.Order {
	return c.before
}

func (c DispatchOrderChangeCommand) After() *order.Order {
	return c.after
}

func (c *DispatchOrderChangeCommand) setChangeType(changeType ports.ChangeType) error {
	switch changeType {
	case ports.ChangeInsert, ports.ChangeUpdate:
		c.changeType = changeType
		return nil
	case "":
		return errs.NewValueIsRequiredError("type")
	default:
		return errs.NewValueIsInvalidError("type")
	}
}

func (c *DispatchOrderChangeCommand) setAfter(after *order.Order) error {
	if after == nil {
		return errs.NewValueIsRequiredError("after")
	}
	if err := after.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("after", err)
	}

	c.after = after
	return nil
}

func (c *DispatchOrderChangeCommand) setBefore(before *order.Order) error {
	if c.changeType == ports.ChangeInsert || before == nil {
		return nil
	}
	if err := before.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("before", err)
	}
	if before.ID() != c.after.ID() {
		return errs.NewValueIsInvalidError("before")
	}

	c.before = before
	return nil
}
