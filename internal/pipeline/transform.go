package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/ferry-wait-etl/internal/domain"
)

// WaitTransformer implements Transformer by decoding the post and running the
// extractor for every configured terminal.
type WaitTransformer struct {
	extractor *domain.Extractor
	logger    *slog.Logger
}

// NewTransformer creates a WaitTransformer.
func NewTransformer(extractor *domain.Extractor, logger *slog.Logger) *WaitTransformer {
	return &WaitTransformer{
		extractor: extractor,
		logger:    logger,
	}
}

func (t *WaitTransformer) Transform(_ context.Context, raw domain.RawEvent) ([]domain.WaitObservation, error) {
	msg, err := domain.ParseRawEvent(raw)
	if err != nil {
		return nil, err
	}

	obs := t.extractor.ExtractAll(msg)
	if len(obs) == 0 {
		t.logger.Debug("post not relevant to any terminal", "topic", raw.Topic, "offset", raw.Offset)
		return nil, nil
	}
	return domain.StampProcessed(obs), nil
}
