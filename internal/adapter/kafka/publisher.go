// Package kafka publishes assembled snapshots to a Kafka topic so downstream
// consumers (archival, alerting) see the same data the HTTP API serves.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/shorecast/swellboard/internal/domain"
)

// Publisher produces one message per snapshot. It implements
// aggregate.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the snapshot topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes the snapshot and writes it to the topic.
func (p *Publisher) Publish(ctx context.Context, snap domain.Snapshot) error {
	msg, err := serializeToMessage(snap)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a snapshot into a Kafka message. The key is
// the generation timestamp so consumers with log compaction keep the latest
// snapshot per instant; degraded snapshots are flagged in a header so
// consumers can skip them without deserializing.
func serializeToMessage(snap domain.Snapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize snapshot: %w", err)
	}

	degraded := "false"
	if snap.Error != "" {
		degraded = "true"
	}
	return kafkago.Message{
		Key:   []byte(snap.GeneratedAt.UTC().Format(time.RFC3339)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "generated_at", Value: []byte(snap.GeneratedAt.UTC().Format(time.RFC3339))},
			{Key: "degraded", Value: []byte(degraded)},
		},
	}, nil
}
