package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or Restore.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or Restore")
)

// ID is the opaque identifier the order store assigns to a line item.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id ID) Validate() error {
	if strings.TrimSpace(string(id)) == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	return nil
}

// Attributes are descriptive per-item properties. They never affect the stage.
type Attributes struct {
	Color  string // cor
	Size   string // tamanho
	Mirror string // espelho
}

// Record is the flat, exported form of an Order used by adapters to persist
// and rehydrate it.
type Record struct {
	ID           ID
	Number       string // numero_pedido, shared by sibling line items
	Markers      Markers
	TrackingCode string // nota/rastreio
	Attributes   Attributes
	OrderedAt    *time.Time // dia_pedido
	CreatedAt    time.Time
	OwnerID      *kernel.UUID
}

// Order is one production line item. Line items sharing an order number form
// an order group for display; each item is still classified on its own.
//
// Order follows these invariants:
//   - it has a non-empty ID
//   - it is built only through NewOrder or Restore
//   - stage markers change only through SetMarker, the tracking code only
//     through SetTrackingCode
type Order struct {
	id           ID
	number       string
	markers      Markers
	trackingCode string
	attributes   Attributes
	orderedAt    *time.Time
	createdAt    time.Time
	ownerID      *kernel.UUID

	isConstructed bool
}

// NewOrder creates an order with no stage marker set.
func NewOrder(id ID, number string, attributes Attributes, orderedAt *time.Time, ownerID *kernel.UUID, createdAt time.Time) (*Order, error) {
	return Restore(Record{
		ID:         id,
		Number:     number,
		Attributes: attributes,
		OrderedAt:  orderedAt,
		CreatedAt:  createdAt,
		OwnerID:    ownerID,
	})
}

// Restore rebuilds an order from its persisted or transmitted form.
func Restore(rec Record) (*Order, error) {
	o := &Order{
		markers:      rec.Markers,
		trackingCode: strings.TrimSpace(rec.TrackingCode),
		attributes:   rec.Attributes,
		createdAt:    rec.CreatedAt,
		number:       strings.TrimSpace(rec.Number),
	}

	if err := errors.Join(
		o.setID(rec.ID),
		o.setOwner(rec.OwnerID),
	); err != nil {
		return nil, err
	}

	if rec.OrderedAt != nil {
		t := *rec.OrderedAt
		o.orderedAt = &t
	}

	o.isConstructed = true
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() ID {
	return o.id
}

// Number is the raw numero_pedido, possibly empty.
func (o *Order) Number() string {
	return o.number
}

// GroupKey is the order number when present, the order ID otherwise.
func (o *Order) GroupKey() string {
	if o.number != "" {
		return o.number
	}
	return o.id.String()
}

func (o *Order) Markers() Markers {
	return o.markers
}

func (o *Order) TrackingCode() string {
	return o.trackingCode
}

func (o *Order) Attributes() Attributes {
	return o.attributes
}

func (o *Order) OrderedAt() *time.Time {
	if o.orderedAt == nil {
		return nil
	}
	t := *o.orderedAt
	return &t
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DisplayDate is dia_pedido when known, creation time otherwise.
func (o *Order) DisplayDate() time.Time {
	if o.orderedAt != nil {
		return *o.orderedAt
	}
	return o.createdAt
}

func (o *Order) Owner() *kernel.UUID {
	return o.ownerID
}

func (o *Order) Stage() Stage {
	return Classify(o.markers)
}

// Record returns a copy of the order state.
func (o *Order) Record() Record {
	return Record{
		ID:           o.id,
		Number:       o.number,
		Markers:      o.markers,
		TrackingCode: o.trackingCode,
		Attributes:   o.attributes,
		OrderedAt:    o.OrderedAt(),
		CreatedAt:    o.createdAt,
		OwnerID:      o.ownerID,
	}
}

// Clone returns an independent copy, used to keep the before image of a write.
func (o *Order) Clone() *Order {
	c, _ := Restore(o.Record())
	return c
}

// SetMarker overwrites a stage marker. Any order of writes is accepted.
func (o *Order) SetMarker(field Field, value Marker) error {
	if !o.markers.set(field, value) {
		return errs.NewValueIsInvalidErrorWithCause("field", fmt.Errorf("%s is not a stage marker", field))
	}
	return nil
}

func (o *Order) SetTrackingCode(code string) {
	o.trackingCode = strings.TrimSpace(code)
}

func (o *Order) SetAttributes(attributes Attributes) {
	o.attributes = attributes
}

func (o *Order) setID(id ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = ID(strings.TrimSpace(string(id)))
	return nil
}

func (o *Order) setOwner(ownerID *kernel.UUID) error {
	if ownerID == nil {
		return nil
	}
	if err := ownerID.Validate(); err != nil {
		return err
	}
	owner := *ownerID
	o.ownerID = &owner
	return nil
}
