package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/ferry-wait-etl/internal/config"
	"github.com/couchcryptid/ferry-wait-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Reader consumes raw posts from a Kafka topic as part of a consumer group.
// It implements pipeline.BatchExtractor.
type Reader struct {
	reader        *kafkago.Reader
	flushInterval time.Duration
	logger        *slog.Logger
}

// NewReader creates a Kafka consumer for the configured source topic. Offsets
// are committed explicitly by the pipeline after each post is handled.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          cfg.KafkaSourceTopic,
		GroupID:        cfg.KafkaGroupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	return &Reader{reader: r, flushInterval: cfg.BatchFlushInterval, logger: logger}
}

// ExtractBatch fetches up to batchSize messages, returning early with a
// partial batch once the flush interval elapses.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error) {
	batchCtx := ctx
	if r.flushInterval > 0 {
		var cancel context.CancelFunc
		batchCtx, cancel = context.WithTimeout(ctx, r.flushInterval)
		defer cancel()
	}

	events := make([]domain.RawEvent, 0, batchSize)
	for len(events) < batchSize {
		msg, err := r.reader.FetchMessage(batchCtx)
		if err != nil {
			if ctx.Err() != nil {
				return events, ctx.Err()
			}
			if batchCtx.Err() != nil {
				if len(events) > 0 {
					r.logger.Debug("flushing partial batch", "size", len(events))
				}
				return events, nil
			}
			return events, fmt.Errorf("fetch message: %w", err)
		}
		raw := mapMessageToRawEvent(msg)
		raw.Commit = r.commitFunc(msg)
		events = append(events, raw)
	}
	return events, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

func (r *Reader) commitFunc(msg kafkago.Message) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return r.reader.CommitMessages(ctx, msg)
	}
}

// mapMessageToRawEvent copies a Kafka message into the transport-neutral RawEvent.
func mapMessageToRawEvent(msg kafkago.Message) domain.RawEvent {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return domain.RawEvent{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}
