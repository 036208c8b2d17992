package services

import (
	"fmt"

	"orderflow/internal/core/domain/model/order"
)

// StageEvent is the notification-worthy change derived from one order write.
// It is never persisted.
type StageEvent struct {
	Field    order.Field
	Title    string
	Body     string
	OrderID  order.ID
	GroupKey string
}

// TransitionDetector finds the first tracked field, in order.TrackedFields
// priority, that went from unset to set between two images of the same order.
// Later fields flipped by the same write are not reported.
type TransitionDetector struct{}

func NewTransitionDetector() TransitionDetector {
	return TransitionDetector{}
}

// Detect returns false when nothing tracked transitioned. A nil before image
// stands for an inserted row and is treated as all unset. after must be valid.
func (TransitionDetector) Detect(before, after *order.Order) (StageEvent, bool) {
	if after.Validate() != nil {
		return StageEvent{}, false
	}

	var prev order.Record
	if before.Validate() == nil {
		prev = before.Record()
	}
	next := after.Record()

	for _, field := range order.TrackedFields() {
		if !transitioned(field, prev, next) {
			continue
		}
		return StageEvent{
			Field:    field,
			Title:    fmt.Sprintf("Pedido #%s", after.GroupKey()),
			Body:     eventBody(field, next.TrackingCode),
			OrderID:  after.ID(),
			GroupKey: after.GroupKey(),
		}, true
	}

	return StageEvent{}, false
}

func transitioned(field order.Field, prev, next order.Record) bool {
	if field == order.FieldTrackingCode {
		return prev.TrackingCode == "" && next.TrackingCode != ""
	}
	was, _ := prev.Markers.Get(field)
	is, _ := next.Markers.Get(field)
	return !was.IsSet() && is.IsSet()
}

func eventBody(field order.Field, trackingCode string) string {
	switch field {
	case order.FieldInsumos:
		return "Insumos foram pedidos! 📦"
	case order.FieldEmProducao:
		return "Entrou em produção! 🏭"
	case order.FieldEnvioExpedicao:
		return "Enviado para expedição! 📮"
	case order.FieldDespachado:
		return "Foi despachado! 🚚"
	case order.FieldTrackingCode:
		return fmt.Sprintf("Código de rastreio disponível: %s", trackingCode)
	default:
		return ""
	}
}
