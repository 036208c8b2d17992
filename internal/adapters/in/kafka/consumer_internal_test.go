package kafka

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type countingDispatcher struct {
	cmds      []commands.DispatchOrderChangeCommand
	deadlines []time.Time
}

func (d *countingDispatcher) Handle(ctx context.Context, cmd commands.DispatchOrderChangeCommand) (commands.DispatchResult, error) {
	d.cmds = append(d.cmds, cmd)
	deadline, _ := ctx.Deadline()
	d.deadlines = append(d.deadlines, deadline)
	return commands.DispatchResult{}, nil
}

func newTestConsumer(d *countingDispatcher, timeout time.Duration) *ChangeConsumer {
	return &ChangeConsumer{dispatcher: d, timeout: timeout, logger: slog.New(slog.DiscardHandler)}
}

func TestHandleRecord_DispatchesDecodedChange(t *testing.T) {
	d := &countingDispatcher{}
	c := newTestConsumer(d, time.Second)

	c.handleRecord(t.Context(), &kgo.Record{
		Value: []byte(`{"type":"UPDATE","record":{"id":"5","despachado":true},"old_record":{"id":"5","despachado":false}}`),
	})

	require.Len(t, d.cmds, 1)
	assert.Equal(t, order.Dispatched, d.cmds[0].After().Stage())
	assert.Equal(t, order.New, d.cmds[0].Before().Stage())
}

func TestHandleRecord_SkipsUndecodable(t *testing.T) {
	d := &countingDispatcher{}
	c := newTestConsumer(d, time.Second)

	c.handleRecord(t.Context(), &kgo.Record{Value: []byte(`not json`)})
	c.handleRecord(t.Context(), &kgo.Record{Value: []byte(`{"type":"DELETE","old_record":{"id":"5"}}`)})

	assert.Empty(t, d.cmds)
}

func TestHandleRecord_DispatchHasDeadline(t *testing.T) {
	d := &countingDispatcher{}
	c := newTestConsumer(d, 2*time.Second)

	started := time.Now()
	c.handleRecord(t.Context(), &kgo.Record{
		Value: []byte(`{"type":"INSERT","record":{"id":"5","insumos":"ok"}}`),
	})

	require.Len(t, d.deadlines, 1)
	require.False(t, d.deadlines[0].IsZero())
	assert.WithinDuration(t, started.Add(2*time.Second), d.deadlines[0], time.Second)
}
