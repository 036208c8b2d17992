package order

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type markerKind uint8

const (
	kindNone markerKind = iota
	kindText
	kindBool
	kindNumber
)

// Marker is a stage flag as stored by the order store. Upstream writers use
// booleans for some columns and status text ("pendente", "completo") for
// others, so a Marker keeps the raw value and answers IsSet with truthiness:
// true, a non-empty string or a non-zero number.
//
// The zero value is an unset marker. Malformed inputs (objects, arrays) decode
// to unset.
type Marker struct {
	raw  string
	kind markerKind
}

// NewMarker builds a text marker. The empty string yields an unset marker.
func NewMarker(value string) Marker {
	if value == "" {
		return Marker{}
	}
	return Marker{raw: value, kind: kindText}
}

// BoolMarker builds a boolean marker.
func BoolMarker(value bool) Marker {
	return Marker{raw: strconv.FormatBool(value), kind: kindBool}
}

// MarkerFromText rehydrates a nullable text column.
func MarkerFromText(value *string) Marker {
	if value == nil {
		return Marker{}
	}
	return NewMarker(*value)
}

// MarkerFromBool rehydrates a nullable boolean column.
func MarkerFromBool(value *bool) Marker {
	if value == nil {
		return Marker{}
	}
	return BoolMarker(*value)
}

func (m Marker) IsSet() bool {
	switch m.kind {
	case kindText:
		return m.raw != ""
	case kindBool:
		return m.raw == "true"
	case kindNumber:
		f, err := strconv.ParseFloat(m.raw, 64)
		return err == nil && f != 0
	default:
		return false
	}
}

// Value returns the raw stored value, "" when absent.
func (m Marker) Value() string {
	return m.raw
}

// Text returns the value for a nullable text column: nil unless set.
func (m Marker) Text() *string {
	if !m.IsSet() {
		return nil
	}
	v := m.raw
	return &v
}

func (m Marker) IsEqual(other Marker) bool {
	return m.kind == other.kind && m.raw == other.raw
}

func (m *Marker) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*m = Marker{}
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case 'n':
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil //nolint:nilerr // malformed markers decode as unset
		}
		*m = BoolMarker(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil //nolint:nilerr // malformed markers decode as unset
		}
		*m = NewMarker(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return nil //nolint:nilerr // objects and arrays decode as unset
		}
		*m = Marker{raw: n.String(), kind: kindNumber}
	}
	return nil
}

func (m Marker) MarshalJSON() ([]byte, error) {
	switch m.kind {
	case kindText:
		return json.Marshal(m.raw)
	case kindBool, kindNumber:
		return []byte(m.raw), nil
	default:
		return []byte("null"), nil
	}
}
