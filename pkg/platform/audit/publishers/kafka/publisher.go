// Package kafka delivers audit events to a Kafka topic.
//
// The publisher satisfies audit.Sink, so it can sit directly behind the
// channel worker. Events are keyed by product id to preserve per-product
// ordering across partitions.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "prodauth/pkg/platform/audit"
)

// Publisher produces audit events to a single topic.
type Publisher struct {
	client *kgo.Client
	topic  string
}

// New connects to the given brokers. Callers own Close.
func New(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher requires at least one broker")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka publisher requires a topic")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Publisher{client: client, topic: topic}, nil
}

// wireEvent is the JSON structure published to the topic.
type wireEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	ProductID string    `json:"product_id,omitempty"`
	Actor     string    `json:"actor"`
	Subject   string    `json:"subject,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// Append produces the event synchronously. The worker calling this runs off
// the mutation path, so blocking here does not slow registry writes.
func (p *Publisher) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(wireEvent{
		ID:        event.ID,
		Timestamp: event.Timestamp,
		Action:    string(event.Action),
		ProductID: event.Product.String(),
		Actor:     event.Actor.String(),
		Subject:   event.Subject.String(),
		RequestID: event.RequestID,
	})
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Key:   []byte(event.Product.String()),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes pending records and releases the client.
func (p *Publisher) Close() {
	p.client.Close()
}
