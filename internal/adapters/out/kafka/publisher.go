// Package kafka publishes committed order changes to a Kafka topic, for
// deployments where the dispatcher runs in a separate consumer.
package kafka

import (
	"context"
	"fmt"

	"orderflow/internal/adapters/changefeed"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/tracing"

	"github.com/twmb/franz-go/pkg/kgo"
)

type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// ChangePublisher implements ports.ChangeNotifier. Records are keyed by order
// id so that changes of one order stay ordered within a partition.
type ChangePublisher struct {
	client producer
	topic  string
}

func NewChangePublisher(brokers []string, topic string) (*ChangePublisher, *kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return &ChangePublisher{client: client, topic: topic}, client, nil
}

func NewChangePublisherWithProducer(p producer, topic string) *ChangePublisher {
	return &ChangePublisher{client: p, topic: topic}
}

func (p *ChangePublisher) Notify(ctx context.Context, change ports.OrderChange) error {
	value, err := changefeed.Encode(change)
	if err != nil {
		return err
	}

	record := &kgo.Record{
		Topic:   p.topic,
		Key:     []byte(change.After.ID().String()),
		Value:   value,
		Headers: tracing.InjectKafkaHeaders(ctx),
	}
	if err = p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish order change: %w", err)
	}
	return nil
}
