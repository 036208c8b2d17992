package services_test

import (
	"fmt"
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T, rec order.Record) *order.Order {
	t.Helper()
	if rec.ID == "" {
		rec.ID = "p-1"
	}
	o, err := order.Restore(rec)
	require.NoError(t, err)
	return o
}

func TestTransitionDetector_InsumosScenario(t *testing.T) {
	before := restore(t, order.Record{Number: "1001", Markers: order.Markers{
		Insumos: order.BoolMarker(false), EmProducao: order.BoolMarker(false),
	}})
	after := restore(t, order.Record{Number: "1001", Markers: order.Markers{Insumos: order.BoolMarker(true)}})

	ev, ok := services.NewTransitionDetector().Detect(before, after)

	require.True(t, ok)
	assert.Equal(t, order.FieldInsumos, ev.Field)
	assert.Equal(t, "Pedido #1001", ev.Title)
	assert.Equal(t, "Insumos foram pedidos! 📦", ev.Body)
	assert.Equal(t, order.ID("p-1"), ev.OrderID)
	assert.Equal(t, "1001", ev.GroupKey)
}

func TestTransitionDetector_SkipsAlreadySetMarkers(t *testing.T) {
	set := order.BoolMarker(true)
	before := restore(t, order.Record{Number: "7", Markers: order.Markers{Insumos: set, EmProducao: set}})
	after := restore(t, order.Record{Number: "7", Markers: order.Markers{Insumos: set, EmProducao: set, Despachado: set}})

	ev, ok := services.NewTransitionDetector().Detect(before, after)

	require.True(t, ok)
	assert.Equal(t, order.FieldDespachado, ev.Field)
	assert.Equal(t, "Foi despachado! 🚚", ev.Body)
}

func TestTransitionDetector_PriorityOrder(t *testing.T) {
	fields := order.TrackedFields()
	for i, lower := range fields {
		for _, higher := range fields[i+1:] {
			t.Run(fmt.Sprintf("%s beats %s", lower, higher), func(t *testing.T) {
				after := restore(t, flip(order.Record{Number: "5"}, lower, higher))

				ev, ok := services.NewTransitionDetector().Detect(restore(t, order.Record{Number: "5"}), after)

				require.True(t, ok)
				assert.Equal(t, lower, ev.Field)
			})
		}
	}
}

func TestTransitionDetector_NoOp(t *testing.T) {
	set := order.BoolMarker(true)
	tests := []struct {
		name   string
		before order.Record
		after  order.Record
	}{
		{name: "identical", before: order.Record{Markers: order.Markers{Insumos: set}}, after: order.Record{Markers: order.Markers{Insumos: set}}},
		{name: "attribute change", before: order.Record{}, after: order.Record{Attributes: order.Attributes{Color: "azul"}}},
		{name: "marker cleared", before: order.Record{Markers: order.Markers{Insumos: set}}, after: order.Record{}},
		{name: "truthy to other truthy", before: order.Record{Markers: order.Markers{Insumos: order.NewMarker("pendente")}}, after: order.Record{Markers: order.Markers{Insumos: order.NewMarker("completo")}}},
		{name: "tracking code replaced", before: order.Record{TrackingCode: "BR1"}, after: order.Record{TrackingCode: "BR2"}},
		{name: "false to false", before: order.Record{Markers: order.Markers{Despachado: order.BoolMarker(false)}}, after: order.Record{Markers: order.Markers{Despachado: order.BoolMarker(false)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := services.NewTransitionDetector().Detect(restore(t, tt.before), restore(t, tt.after))
			assert.False(t, ok)
		})
	}
}

func TestTransitionDetector_TrackingCode(t *testing.T) {
	after := restore(t, order.Record{Number: "88", TrackingCode: "BR123456789"})

	ev, ok := services.NewTransitionDetector().Detect(restore(t, order.Record{Number: "88"}), after)

	require.True(t, ok)
	assert.Equal(t, order.FieldTrackingCode, ev.Field)
	assert.Equal(t, "Código de rastreio disponível: BR123456789", ev.Body)
}

func TestTransitionDetector_InsertTreatsBeforeAsUnset(t *testing.T) {
	after := restore(t, order.Record{ID: "p-9", Markers: order.Markers{EmProducao: order.NewMarker("em andamento")}})

	ev, ok := services.NewTransitionDetector().Detect(nil, after)

	require.True(t, ok)
	assert.Equal(t, order.FieldEmProducao, ev.Field)
	assert.Equal(t, "Pedido #p-9", ev.Title, "title falls back to the order id")
}

func TestTransitionDetector_InvalidAfter(t *testing.T) {
	_, ok := services.NewTransitionDetector().Detect(nil, nil)
	assert.False(t, ok)
}

func flip(rec order.Record, fields ...order.Field) order.Record {
	for _, f := range fields {
		switch f {
		case order.FieldInsumos:
			rec.Markers.Insumos = order.BoolMarker(true)
		case order.FieldEmProducao:
			rec.Markers.EmProducao = order.BoolMarker(true)
		case order.FieldEnvioExpedicao:
			rec.Markers.EnvioExpedicao = order.BoolMarker(true)
		case order.FieldDespachado:
			rec.Markers.Despachado = order.BoolMarker(true)
		case order.FieldTrackingCode:
			rec.TrackingCode = "BR000"
		}
	}
	return rec
}
