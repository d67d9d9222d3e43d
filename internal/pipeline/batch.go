package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/ferry-wait-etl/internal/domain"
)

// RunBatch extracts observations from msgs for every configured terminal using
// up to workers goroutines. Each terminal's slice keeps input order and matches
// what ex.ExtractTerminal returns for that terminal.
func RunBatch(ctx context.Context, ex *domain.Extractor, msgs []domain.RawMessage, workers int) (map[string][]domain.WaitObservation, error) {
	if workers < 1 {
		workers = 1
	}

	perMsg := make([][]domain.WaitObservation, len(msgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range msgs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perMsg[i] = ex.ExtractAll(msgs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string][]domain.WaitObservation, 2)
	for _, name := range ex.Terminals().Names() {
		out[name] = []domain.WaitObservation{}
	}
	for _, obs := range perMsg {
		for _, o := range obs {
			out[o.Terminal] = append(out[o.Terminal], o)
		}
	}
	return out, nil
}
