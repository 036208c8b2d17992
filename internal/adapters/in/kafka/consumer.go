// Package kafka consumes order changes from Kafka and feeds the change
// dispatcher. Offsets are committed by the consumer group after each poll,
// so a crash between dispatch and commit redelivers: delivery is at least
// once and duplicate suppression belongs to the dispatcher's deduper.
package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/adapters/changefeed"
	"orderflow/internal/pkg/tracing"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type ChangeConsumer struct {
	client     *kgo.Client
	dispatcher changefeed.Dispatcher
	timeout    time.Duration
	logger     *slog.Logger
}

// NewChangeConsumer joins group on topic. timeout bounds each dispatch so a
// stuck transport cannot stall the partition.
func NewChangeConsumer(
	brokers []string,
	group, topic string,
	dispatcher changefeed.Dispatcher,
	timeout time.Duration,
	logger *slog.Logger,
) (*ChangeConsumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(group),
		kgo.ConsumeTopics(topic),
	)
	if err != nil {
		return nil, err
	}

	if timeout <= 0 {
		timeout = changefeed.DefaultDispatchTimeout
	}

	return &ChangeConsumer{
		client:     client,
		dispatcher: dispatcher,
		timeout:    timeout,
		logger:     logger.With("component", "kafka_change_consumer", "topic", topic),
	}, nil
}

// Run polls until ctx is done. Records of one poll are dispatched in order.
func (c *ChangeConsumer) Run(ctx context.Context) error {
	c.logger.Info("Topic listening started")
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return nil
		}

		fetches.EachError(func(topic string, partition int32, err error) {
			if errors.Is(err, context.Canceled) {
				return
			}
			c.logger.Error("Fetch failed", "topic", topic, "partition", partition, "error", err)
		})

		iter := fetches.RecordIter()
		for !iter.Done() {
			c.handleRecord(ctx, iter.Next())
		}
	}
}

func (c *ChangeConsumer) handleRecord(ctx context.Context, record *kgo.Record) {
	links := tracing.ExtractKafkaLinks(ctx, record.Headers)
	ctx, span := otel.Tracer("orderflow/kafka").Start(ctx, "ConsumeOrderChange", trace.WithLinks(links...))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := changefeed.HandlePayload(ctx, c.dispatcher, c.logger, record.Value); err != nil {
		span.RecordError(err)
		c.logger.Error("Failed to process order change",
			"partition", record.Partition,
			"offset", record.Offset,
			"error", err,
		)
	}
}

func (c *ChangeConsumer) Close() {
	c.client.Close()
}
