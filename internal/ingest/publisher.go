package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/climateguard/climateguard/internal/alert"
)

// KafkaPublisher emits created alerts to a Kafka topic so downstream
// notification services can fan them out.
type KafkaPublisher struct {
	writer *kafkago.Writer
	logger zerolog.Logger
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a producer for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) *KafkaPublisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &KafkaPublisher{
		writer: w,
		logger: logger.With().Str("component", "alert_publisher").Logger(),
	}
}

// PublishAlert serializes the alert and writes it keyed by city so all
// alerts for a city land on the same partition.
func (p *KafkaPublisher) PublishAlert(ctx context.Context, a *alert.Alert) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("serialize alert: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(a.City),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "alert_type", Value: []byte(a.Type)},
			{Key: "severity", Value: []byte(a.Severity)},
		},
	})
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
