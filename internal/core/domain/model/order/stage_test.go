package order_test

import (
	"fmt"
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	set := order.BoolMarker(true)

	tests := []struct {
		name    string
		markers order.Markers
		want    order.Stage
	}{
		{name: "nothing set", markers: order.Markers{}, want: order.New},
		{name: "insumos only", markers: order.Markers{Insumos: set}, want: order.InsumosPending},
		{name: "em producao", markers: order.Markers{Insumos: set, EmProducao: set}, want: order.InProduction},
		{name: "envio", markers: order.Markers{Insumos: set, EmProducao: set, EnvioExpedicao: set}, want: order.Shipping},
		{name: "despachado", markers: order.Markers{Insumos: set, EmProducao: set, EnvioExpedicao: set, Despachado: set}, want: order.Dispatched},
		{name: "later marker implies earlier", markers: order.Markers{EnvioExpedicao: set}, want: order.Shipping},
		{name: "despachado alone is terminal", markers: order.Markers{Despachado: set}, want: order.Dispatched},
		{name: "gap in markers", markers: order.Markers{Insumos: set, EnvioExpedicao: set}, want: order.Shipping},
		{name: "false markers are unset", markers: order.Markers{Insumos: order.BoolMarker(false)}, want: order.New},
		{name: "status text counts", markers: order.Markers{Insumos: order.NewMarker("completo"), EmProducao: order.NewMarker("em andamento")}, want: order.InProduction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.Classify(tt.markers))
		})
	}
}

func TestClassify_IsTotal(t *testing.T) {
	values := []order.Marker{{}, order.BoolMarker(true)}
	for _, a := range values {
		for _, b := range values {
			for _, c := range values {
				for _, d := range values {
					m := order.Markers{Insumos: a, EmProducao: b, EnvioExpedicao: c, Despachado: d}
					stage := order.Classify(m)
					require.NoError(t, stage.Validate(), "markers %+v", m)
				}
			}
		}
	}
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "new", order.New.String())
	assert.Equal(t, "insumos_pending", order.InsumosPending.String())
	assert.Equal(t, "in_production", order.InProduction.String())
	assert.Equal(t, "shipping", order.Shipping.String())
	assert.Equal(t, "dispatched", order.Dispatched.String())
	assert.Equal(t, "unknown", order.Stage(42).String())
}

func TestStage_Validate(t *testing.T) {
	for _, s := range order.AllStages() {
		require.NoError(t, s.Validate())
	}
	for _, s := range []order.Stage{order.Unknown, order.Stage(-1), order.Stage(6)} {
		t.Run(fmt.Sprintf("rejects %d", s), func(t *testing.T) {
			err := s.Validate()
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		})
	}
}

func TestParseStage(t *testing.T) {
	for _, s := range order.AllStages() {
		parsed, err := order.ParseStage(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ParseStage("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStage_IsTerminal(t *testing.T) {
	assert.True(t, order.Dispatched.IsTerminal())
	assert.False(t, order.Shipping.IsTerminal())
}

func TestTrackedFields_Priority(t *testing.T) {
	assert.Equal(t, []order.Field{
		order.FieldInsumos,
		order.FieldEmProducao,
		order.FieldEnvioExpedicao,
		order.FieldDespachado,
		order.FieldTrackingCode,
	}, order.TrackedFields())
	assert.False(t, order.FieldTrackingCode.IsStageMarker())
	assert.True(t, order.FieldDespachado.IsStageMarker())
}

func TestParseField(t *testing.T) {
	for _, f := range order.TrackedFields() {
		got, err := order.ParseField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := order.ParseField("cor")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
