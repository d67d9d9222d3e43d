package pipeline

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/couchcryptid/ferry-wait-etl/internal/domain"
)

// Deduplicator suppresses observations whose ID was produced recently, so
// posts redelivered after a rebalance are not published twice. A nil
// *Deduplicator passes everything through.
type Deduplicator struct {
	seen *lru.Cache[string, struct{}]
}

// NewDeduplicator creates a Deduplicator remembering up to size IDs.
// A size of 0 returns nil, which disables deduplication.
func NewDeduplicator(size int) (*Deduplicator, error) {
	if size == 0 {
		return nil, nil
	}
	cache, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, fmt.Errorf("create dedupe cache: %w", err)
	}
	return &Deduplicator{seen: cache}, nil
}

// Filter drops observations already remembered or repeated within obs.
// It returns the kept observations and the number dropped.
func (d *Deduplicator) Filter(obs []domain.WaitObservation) ([]domain.WaitObservation, int) {
	if d == nil || len(obs) == 0 {
		return obs, 0
	}
	kept := make([]domain.WaitObservation, 0, len(obs))
	batch := make(map[string]struct{}, len(obs))
	for _, o := range obs {
		if _, dup := batch[o.ID]; dup {
			continue
		}
		if d.seen.Contains(o.ID) {
			continue
		}
		batch[o.ID] = struct{}{}
		kept = append(kept, o)
	}
	return kept, len(obs) - len(kept)
}

// Remember records observations that were successfully produced.
func (d *Deduplicator) Remember(obs []domain.WaitObservation) {
	if d == nil {
		return
	}
	for _, o := range obs {
		d.seen.Add(o.ID, struct{}{})
	}
}
