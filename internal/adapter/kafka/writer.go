package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/ferry-wait-etl/internal/config"
	"github.com/couchcryptid/ferry-wait-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer produces messages to a Kafka topic.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch serializes and publishes observations to the sink topic in a
// single WriteMessages call. Messages are keyed by observation ID.
func (w *Writer) LoadBatch(ctx context.Context, obs []domain.WaitObservation) error {
	if len(obs) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(obs))
	for i := range obs {
		msg, err := serializeToMessage(obs[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d observations: %w", len(msgs), err)
	}
	w.logger.Debug("observations written", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a WaitObservation into a Kafka message.
func serializeToMessage(obs domain.WaitObservation) (kafkago.Message, error) {
	out, err := domain.SerializeObservation(obs)
	if err != nil {
		return kafkago.Message{}, err
	}
	return kafkago.Message{
		Key:   out.Key,
		Value: out.Value,
		Headers: []kafkago.Header{
			{Key: "terminal", Value: []byte(out.Headers["terminal"])},
			{Key: "hours_known", Value: []byte(out.Headers["hours_known"])},
			{Key: "processed_at", Value: []byte(out.Headers["processed_at"])},
		},
	}, nil
}
