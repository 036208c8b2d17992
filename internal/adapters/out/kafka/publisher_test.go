package kafka_test

import (
	"context"
	"errors"
	"testing"

	"orderflow/internal/adapters/changefeed"
	"orderflow/internal/adapters/out/kafka"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.records = append(f.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func TestChangePublisher_PublishesEncodedChangeKeyedByOrder(t *testing.T) {
	after, err := order.Restore(order.Record{ID: "42", Markers: order.Markers{Insumos: order.BoolMarker(true)}})
	require.NoError(t, err)

	p := &fakeProducer{}
	publisher := kafka.NewChangePublisherWithProducer(p, "order.changed")
	require.NoError(t, publisher.Notify(t.Context(), ports.OrderChange{Type: ports.ChangeInsert, After: after}))

	require.Len(t, p.records, 1)
	assert.Equal(t, "order.changed", p.records[0].Topic)
	assert.Equal(t, []byte("42"), p.records[0].Key)

	decoded, err := changefeed.Decode(p.records[0].Value)
	require.NoError(t, err)
	assert.Equal(t, ports.ChangeInsert, decoded.Type)
	assert.Equal(t, order.InsumosPending, decoded.After.Stage())
}

func TestChangePublisher_ProduceError(t *testing.T) {
	after, err := order.Restore(order.Record{ID: "42"})
	require.NoError(t, err)

	brokerErr := errors.New("not enough replicas")
	publisher := kafka.NewChangePublisherWithProducer(&fakeProducer{err: brokerErr}, "order.changed")
	err = publisher.Notify(t.Context(), ports.OrderChange{Type: ports.ChangeInsert, After: after})
	require.ErrorIs(t, err, brokerErr)
}
