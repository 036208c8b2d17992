// Package changefeed is the wire format shared by every inbound trigger: the
// HTTP webhook, the Kafka topic and the Postgres NOTIFY channel all carry the
// same JSON envelope around the pedidos row images.
//
//	{"change_id": "...", "type": "UPDATE", "table": "pedidos", "record": {...}, "old_record": {...}}
//
// change_id is optional; database webhooks do not send one.
// "new_record"/"after" and "before" are accepted as aliases of "record" and
// "old_record". Inside a record the tracking code may be keyed "nota/rastreio"
// (as the production table names it) or "nota_rastreio".
package changefeed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// ErrIgnoredChange marks well-formed payloads that never notify, such as deletes.
var ErrIgnoredChange = errors.New("change kind is ignored")

type envelope struct {
	ChangeID  string    `json:"change_id,omitempty"`
	Type      string    `json:"type"`
	Table     string    `json:"table,omitempty"`
	Record    *rowImage `json:"record,omitempty"`
	NewRecord *rowImage `json:"new_record,omitempty"`
	After     *rowImage `json:"after,omitempty"`
	OldRecord *rowImage `json:"old_record,omitempty"`
	Before    *rowImage `json:"before,omitempty"`
}

type rowImage struct {
	ID             flexString   `json:"id"`
	NumeroPedido   flexString   `json:"numero_pedido"`
	Insumos        order.Marker `json:"insumos"`
	EmProducao     order.Marker `json:"em_producao"`
	EnvioExpedicao order.Marker `json:"envio_expedicao"`
	Despachado     order.Marker `json:"despachado"`
	NotaRastreio   flexString   `json:"nota/rastreio"`
	NotaRastreioV2 flexString   `json:"nota_rastreio"`
	Cor            flexString   `json:"cor"`
	Tamanho        flexString   `json:"tamanho"`
	Espelho        flexString   `json:"espelho"`
	DiaPedido      flexString   `json:"dia_pedido"`
	CreatedAt      flexString   `json:"created_at"`
	UserID         flexString   `json:"user_id"`
}

// Decode parses one change. The after image is required; an update without a
// before image is decoded with Before nil, which the dispatcher treats as all
// markers unset.
func Decode(data []byte) (ports.OrderChange, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return ports.OrderChange{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	afterImage := firstImage(env.Record, env.NewRecord, env.After)
	beforeImage := firstImage(env.OldRecord, env.Before)

	changeType, err := parseType(env.Type, beforeImage != nil)
	if err != nil {
		return ports.OrderChange{}, err
	}

	if afterImage == nil {
		return ports.OrderChange{}, errs.NewValueIsRequiredError("record")
	}
	after, err := afterImage.toOrder()
	if err != nil {
		return ports.OrderChange{}, errs.NewValueIsInvalidErrorWithCause("record", err)
	}

	change := ports.OrderChange{ID: strings.TrimSpace(env.ChangeID), Type: changeType, After: after}
	if changeType == ports.ChangeUpdate && beforeImage != nil {
		if change.Before, err = beforeImage.toOrder(); err != nil {
			return ports.OrderChange{}, errs.NewValueIsInvalidErrorWithCause("old_record", err)
		}
	}

	return change, nil
}

// Encode renders a change in the envelope Decode reads.
func Encode(change ports.OrderChange) ([]byte, error) {
	if change.After == nil {
		return nil, errs.NewValueIsRequiredError("after")
	}

	env := envelope{
		ChangeID: change.ID,
		Type:     string(change.Type),
		Table:    "pedidos",
		Record:   fromOrder(change.After),
	}
	if change.Before != nil {
		env.OldRecord = fromOrder(change.Before)
	}
	return json.Marshal(env)
}

func parseType(raw string, hasBefore bool) (ports.ChangeType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "INSERT":
		return ports.ChangeInsert, nil
	case "UPDATE":
		return ports.ChangeUpdate, nil
	case "DELETE", "TRUNCATE":
		return "", fmt.Errorf("%w: %s", ErrIgnoredChange, raw)
	case "":
		if hasBefore {
			return ports.ChangeUpdate, nil
		}
		return ports.ChangeInsert, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("unknown change type %q", raw))
	}
}

func firstImage(images ...*rowImage) *rowImage {
	for _, img := range images {
		if img != nil {
			return img
		}
	}
	return nil
}

func (r *rowImage) toOrder() (*order.Order, error) {
	trackingCode := r.NotaRastreio
	if trackingCode == "" {
		trackingCode = r.NotaRastreioV2
	}

	rec := order.Record{
		ID:     order.ID(r.ID),
		Number: string(r.NumeroPedido),
		Markers: order.Markers{
			Insumos:        r.Insumos,
			EmProducao:     r.EmProducao,
			EnvioExpedicao: r.EnvioExpedicao,
			Despachado:     r.Despachado,
		},
		TrackingCode: string(trackingCode),
		Attributes: order.Attributes{
			Color:  string(r.Cor),
			Size:   string(r.Tamanho),
			Mirror: string(r.Espelho),
		},
	}

	var err error
	if r.DiaPedido != "" {
		orderedAt, parseErr := parseTime(string(r.DiaPedido))
		if parseErr != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("dia_pedido", parseErr)
		}
		rec.OrderedAt = &orderedAt
	}
	if r.CreatedAt != "" {
		if rec.CreatedAt, err = parseTime(string(r.CreatedAt)); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("created_at", err)
		}
	}
	if r.UserID != "" {
		owner, parseErr := kernel.ParseUUID(string(r.UserID))
		if parseErr != nil {
			return nil, parseErr
		}
		rec.OwnerID = &owner
	}

	return order.Restore(rec)
}

func fromOrder(o *order.Order) *rowImage {
	rec := o.Record()
	img := &rowImage{
		ID:             flexString(rec.ID),
		NumeroPedido:   flexString(rec.Number),
		Insumos:        rec.Markers.Insumos,
		EmProducao:     rec.Markers.EmProducao,
		EnvioExpedicao: rec.Markers.EnvioExpedicao,
		Despachado:     rec.Markers.Despachado,
		NotaRastreioV2: flexString(rec.TrackingCode),
		Cor:            flexString(rec.Attributes.Color),
		Tamanho:        flexString(rec.Attributes.Size),
		Espelho:        flexString(rec.Attributes.Mirror),
	}
	if rec.OrderedAt != nil {
		img.DiaPedido = flexString(rec.OrderedAt.Format(time.DateOnly))
	}
	if !rec.CreatedAt.IsZero() {
		img.CreatedAt = flexString(rec.CreatedAt.Format(time.RFC3339Nano))
	}
	if rec.OwnerID != nil {
		img.UserID = flexString(rec.OwnerID.String())
	}
	return img
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// flexString accepts JSON strings and numbers; null and anything else decode
// as empty. Ids and order numbers arrive as either.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = ""
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = flexString(n.String())
	}
	return nil
}

func (f flexString) MarshalJSON() ([]byte, error) {
	if f == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(f))
}
