package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer wraps a franz-go client for fire-and-forget event publishing.
type Producer struct {
	client *kgo.Client
}

// NewProducer connects to the given brokers. Returns nil when no brokers
// are configured so the attribution forwarder can run without a sink.
func NewProducer(ctx context.Context, brokers []string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}
	return &Producer{client: client}, nil
}

// EnsureTopic creates the topic if it does not exist yet. Idempotent.
func (p *Producer) EnsureTopic(ctx context.Context, topic string, partitions int32) error {
	adm := kadm.NewClient(p.client)
	resp, err := adm.CreateTopic(ctx, partitions, 1, nil, topic)
	return createTopicErr(topic, err, resp.Err)
}

// createTopicErr folds the two error channels of kadm's singular
// CreateTopic, which surfaces the per-topic error in both return values.
// The already-exists sentinel must be tolerated in each position or a
// restart against an existing topic fails.
func createTopicErr(topic string, errs ...error) error {
	for _, err := range errs {
		if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", topic, err)
		}
	}
	return nil
}

// Produce publishes a single record synchronously.
func (p *Producer) Produce(ctx context.Context, topic string, key, value []byte) error {
	record := &kgo.Record{Topic: topic, Key: key, Value: value}
	return p.client.ProduceSync(ctx, record).FirstErr()
}

// Close flushes buffered records and releases the client.
func (p *Producer) Close() {
	p.client.Close()
}
