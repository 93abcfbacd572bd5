// Package messaging publishes domain events to Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher implements domain.EventPublisher on a kafka-go writer.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given brokers.
func NewKafkaPublisher(brokers []string, maxRetries int) *KafkaPublisher {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			AllowAutoTopicCreation: true,
			Compression:            kafka.Gzip,
			RequiredAcks:           kafka.RequireAll,
			MaxAttempts:            maxRetries,
			BatchTimeout:           10 * time.Millisecond,
		},
	}
}

// Publish serializes the event as JSON and writes it to the topic, keyed
// for per-entity ordering.
func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
