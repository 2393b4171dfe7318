package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/sec-shares-service/internal/config"
	"github.com/couchcryptid/sec-shares-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces share ranges to a Kafka topic.
// It implements pipeline.ResultPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// flushInterval caps how long a written message waits for a batch to fill.
// Publishes run on the request path one message at a time.
const flushInterval = 10 * time.Millisecond

// NewWriter creates a Kafka producer for the configured results topic.
// Messages are keyed by CIK so results for one filer stay ordered.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaResultsTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchSize:    1,
		BatchTimeout: flushInterval,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes one share range.
func (w *Writer) Publish(ctx context.Context, r domain.ShareRange) error {
	msg, err := serializeToMessage(r)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write share range: %w", err)
	}
	w.logger.Debug("share range published", "cik", r.CIK, "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ShareRange into a Kafka message.
func serializeToMessage(r domain.ShareRange) (kafkago.Message, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize share range: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(r.CIK),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "entity_name", Value: []byte(r.EntityName)},
			{Key: "retrieved_at", Value: []byte(r.RetrievedAt.Format(time.RFC3339))},
		},
	}, nil
}
