package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Field identifies one of the order fields whose transitions are reported to
// subscribers.
type Field int

const (
	FieldUnknown Field = iota
	FieldInsumos
	FieldEmProducao
	FieldEnvioExpedicao
	FieldDespachado
	FieldTrackingCode
)

// TrackedFields lists the notification-worthy fields in priority order. When a
// single write flips several of them only the first one is reported.
func TrackedFields() []Field {
	return []Field{
		FieldInsumos,
		FieldEmProducao,
		FieldEnvioExpedicao,
		FieldDespachado,
		FieldTrackingCode,
	}
}

func (f Field) String() string {
	switch f {
	case FieldInsumos:
		return "insumos"
	case FieldEmProducao:
		return "em_producao"
	case FieldEnvioExpedicao:
		return "envio_expedicao"
	case FieldDespachado:
		return "despachado"
	case FieldTrackingCode:
		return "tracking_code"
	default:
		return "unknown"
	}
}

// ParseField maps a field name as returned by String back to its Field.
func ParseField(name string) (Field, error) {
	for _, f := range TrackedFields() {
		if f.String() == name {
			return f, nil
		}
	}
	return FieldUnknown, errs.NewValueIsInvalidErrorWithCause("field", fmt.Errorf("%q is not a tracked field", name))
}

// IsStageMarker reports whether the field is one of the four stage markers.
func (f Field) IsStageMarker() bool {
	return f >= FieldInsumos && f <= FieldDespachado
}

// Markers groups the four stage markers of an order.
type Markers struct {
	Insumos        Marker
	EmProducao     Marker
	EnvioExpedicao Marker
	Despachado     Marker
}

// Get returns the marker stored for field; ok is false for non-marker fields.
func (m Markers) Get(field Field) (Marker, bool) {
	switch field {
	case FieldInsumos:
		return m.Insumos, true
	case FieldEmProducao:
		return m.EmProducao, true
	case FieldEnvioExpedicao:
		return m.EnvioExpedicao, true
	case FieldDespachado:
		return m.Despachado, true
	default:
		return Marker{}, false
	}
}

func (m *Markers) set(field Field, value Marker) bool {
	switch field {
	case FieldInsumos:
		m.Insumos = value
	case FieldEmProducao:
		m.EmProducao = value
	case FieldEnvioExpedicao:
		m.EnvioExpedicao = value
	case FieldDespachado:
		m.Despachado = value
	default:
		return false
	}
	return true
}

// None reports whether no marker is set at all.
func (m Markers) None() bool {
	return !m.Insumos.IsSet() && !m.EmProducao.IsSet() && !m.EnvioExpedicao.IsSet() && !m.Despachado.IsSet()
}
