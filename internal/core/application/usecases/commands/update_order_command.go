package commands

import (
	"errors"
	"fmt"
	"maps"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// OrderPatch is a partial order write. Nil fields are left untouched; markers
// not present in the map keep their value.
type OrderPatch struct {
	Markers      map[order.Field]order.Marker
	TrackingCode *string
	Attributes   *order.Attributes
}

func (p OrderPatch) isEmpty() bool {
	return len(p.Markers) == 0 && p.TrackingCode == nil && p.Attributes == nil
}

// UpdateOrderCommand changes an existing order. Markers may be written in
// any order; the stage is always derived from the resulting set.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID order.ID
	patch   OrderPatch

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(orderID order.ID, patch OrderPatch) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPatch(patch),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() order.ID {
	return c.orderID
}

func (c UpdateOrderCommand) Patch() OrderPatch {
	p := c.patch
	p.Markers = maps.Clone(c.patch.Markers)
	return p
}

// Apply writes the patch onto o.
func (c UpdateOrderCommand) Apply(o *order.Order) error {
	for field, value := range c.patch.Markers {
		if err := o.SetMarker(field, value); err != nil {
			return err
		}
	}
	if c.patch.TrackingCode != nil {
		o.SetTrackingCode(*c.patch.TrackingCode)
	}
	if c.patch.Attributes != nil {
		o.SetAttributes(*c.patch.Attributes)
	}
	return nil
}

func (c *UpdateOrderCommand) setOrderID(orderID order.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setPatch(patch OrderPatch) error {
	if patch.isEmpty() {
		return errs.NewValueIsRequiredError("patch")
	}
	for field := range patch.Markers {
		if !field.IsStageMarker() {
			return errs.NewValueIsInvalidErrorWithCause("patch", fmt.Errorf("%s is not a stage marker", field))
		}
	}

	c.patch = patch
	c.patch.Markers = maps.Clone(patch.Markers)
	if patch.TrackingCode != nil {
		code := *patch.TrackingCode
		c.patch.TrackingCode = &code
	}
	if patch.Attributes != nil {
		attrs := *patch.Attributes
		c.patch.Attributes = &attrs
	}
	return nil
}
