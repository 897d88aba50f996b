package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/ghcn-doy-matrix/internal/config"
	"github.com/couchcryptid/ghcn-doy-matrix/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher produces per-station summary records to a Kafka topic.
// It implements pipeline.SummaryPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured summary topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishSummary serializes and publishes one station summary.
func (p *Publisher) PublishSummary(ctx context.Context, s domain.StationSummary) error {
	msg, err := serializeSummary(s)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// serializeSummary marshals a summary into a Kafka message, keyed by station
// id so re-runs for the same station land in the same partition.
func serializeSummary(s domain.StationSummary) (kafkago.Message, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize station summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(s.StationID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "station_name", Value: []byte(s.StationName)},
			{Key: "generated_at", Value: []byte(s.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}

// Close flushes and closes the producer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
