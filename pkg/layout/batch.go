package layout

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"l14layout/pkg/html"
)

// LayoutBatch lays out independent documents concurrently, at most limit
// at a time; a limit of zero or less means one per CPU. Snapshots come
// back in input order. The first failing document cancels the passes
// that have not started yet.
func (le *LayoutEngine) LayoutBatch(ctx context.Context, docs []*html.Document, limit int) ([]*Snapshot, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	out := make([]*Snapshot, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snap, err := le.Layout(doc)
			if err != nil {
				le.logger.Warn("batch document failed", zap.Int("index", i), zap.Error(err))
				return err
			}
			out[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
