// Package publisher ships domain events to Kafka.
//
// When KAFKA_BROKERS is unset the kernel wires the Nop publisher, so local
// development and tests never need a broker.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// Publisher sends one JSON-encoded message keyed by key.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
	Close() error
}

// messageWriter is the slice of *kafka.Writer the publisher depends on.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes to one topic through a segmentio/kafka-go writer.
type Kafka struct {
	w     messageWriter
	topic string
}

// NewKafka builds an async writer for topic. Delivery failures are reported
// through the writer's Completion hook and logged; they never reach callers.
func NewKafka(brokers []string, topic string) *Kafka {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{}, // same order number, same partition
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(msgs []kafka.Message, err error) {
			if err == nil {
				return
			}
			for _, m := range msgs {
				logger.Error("publisher: kafka delivery failed", "topic", topic, "key", string(m.Key), "error", err)
			}
		},
	}
	return newKafkaWithWriter(w, topic)
}

func newKafkaWithWriter(w messageWriter, topic string) *Kafka {
	return &Kafka{w: w, topic: topic}
}

func (k *Kafka) Publish(ctx context.Context, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("publisher: marshal: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	if err := k.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publisher: write to %s: %w", k.topic, err)
	}
	return nil
}

// Close flushes pending async writes.
func (k *Kafka) Close() error {
	return k.w.Close()
}

// Nop drops every message.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }

// New returns a Kafka publisher when brokers are configured, Nop otherwise.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return Nop{}
	}
	return NewKafka(brokers, topic)
}
