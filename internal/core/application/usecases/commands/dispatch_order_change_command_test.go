package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatchOrderChangeCommand_MissingAfter(t *testing.T) {
	_, err := commands.NewDispatchOrderChangeCommand(ports.ChangeUpdate, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewDispatchOrderChangeCommand_UnknownType(t *testing.T) {
	after := restoreOrder(t, order.Record{})
	_, err := commands.NewDispatchOrderChangeCommand("DELETE", nil, after)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewDispatchOrderChangeCommand_InsertDropsBefore(t *testing.T) {
	before := restoreOrder(t, order.Record{Markers: order.Markers{Insumos: order.BoolMarker(true)}})
	after := restoreOrder(t, order.Record{Markers: order.Markers{Insumos: order.BoolMarker(true)}})

	cmd, err := commands.NewDispatchOrderChangeCommand(ports.ChangeInsert, before, after)
	require.NoError(t, err)
	assert.Nil(t, cmd.Before())
	assert.Same(t, after, cmd.After())
	assert.Equal(t, ports.ChangeInsert, cmd.ChangeType())
}

func TestNewDispatchOrderChangeCommand_MismatchedImages(t *testing.T) {
	before := restoreOrder(t, order.Record{ID: "1"})
	after := restoreOrder(t, order.Record{ID: "2"})

	_, err := commands.NewDispatchOrderChangeCommand(ports.ChangeUpdate, before, after)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewDispatchOrderChangeCommandFromChange(t *testing.T) {
	before := restoreOrder(t, order.Record{})
	after := restoreOrder(t, order.Record{TrackingCode: "BR123"})

	cmd, err := commands.NewDispatchOrderChangeCommandFromChange(ports.OrderChange{
		Type:   ports.ChangeUpdate,
		Before: before,
		After:  after,
	})
	require.NoError(t, err)
	assert.Same(t, before, cmd.Before())
	require.NoError(t, cmd.Validate())
}

func TestDispatchOrderChangeCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.DispatchOrderChangeCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrDispatchOrderChangeCommandIsNotConstructed)
}
