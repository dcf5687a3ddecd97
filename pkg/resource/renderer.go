// Package resource turns document sources into layout snapshots and debug
// paint: fetch, parse, lay out, and optionally render.
package resource

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"l14layout/pkg/html"
	"l14layout/pkg/layout"
	"l14layout/pkg/render"
	"l14layout/pkg/text"
)

// Measurer kinds understood by NewMeasurer.
const (
	MeasurerFace  = "face"
	MeasurerFixed = "fixed"
)

// NewMeasurer builds the text measurer kind names. fontPath applies to the
// face measurer, advance to the fixed one.
func NewMeasurer(kind, fontPath string, advance float64) (text.Measurer, error) {
	switch kind {
	case MeasurerFixed:
		return text.FixedMeasurer{Advance: advance}, nil
	case MeasurerFace, "":
		m, err := text.NewFaceMeasurer(fontPath)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("unknown measurer %q", kind)
}

// Pipeline lays out and paints documents fetched through a Fetcher.
type Pipeline struct {
	fetcher Fetcher
	engine  *layout.LayoutEngine
	paint   render.Options
	logger  *zap.Logger
}

// NewPipeline creates a Pipeline. A nil logger disables logging.
func NewPipeline(fetcher Fetcher, engine *layout.LayoutEngine, paint render.Options, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{fetcher: fetcher, engine: engine, paint: paint, logger: logger.Named("resource")}
}

// Load fetches and parses uri.
func (p *Pipeline) Load(ctx context.Context, uri string) (*html.Document, error) {
	body, err := p.fetcher.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(string(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", uri, err)
	}
	p.logger.Debug("document loaded", zap.String("uri", uri), zap.Int("nodes", doc.Len()))
	return doc, nil
}

// Layout loads uri and lays it out.
func (p *Pipeline) Layout(ctx context.Context, uri string) (*html.Document, *layout.Snapshot, error) {
	doc, err := p.Load(ctx, uri)
	if err != nil {
		return nil, nil, err
	}
	snap, err := p.engine.Layout(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("layout %s: %w", uri, err)
	}
	return doc, snap, nil
}

// LayoutAll loads every uri and lays them out concurrently, at most limit
// at a time. Snapshots are in uris order.
func (p *Pipeline) LayoutAll(ctx context.Context, uris []string, limit int) ([]*layout.Snapshot, error) {
	docs := make([]*html.Document, len(uris))
	for i, uri := range uris {
		doc, err := p.Load(ctx, uri)
		if err != nil {
			return nil, err
		}
		docs[i] = doc
	}
	return p.engine.LayoutBatch(ctx, docs, limit)
}

// Paint renders snap onto a width x height canvas.
func (p *Pipeline) Paint(snap *layout.Snapshot, width, height int) (*render.Renderer, error) {
	r := render.NewRenderer(width, height, p.paint)
	if err := r.Render(snap); err != nil {
		return nil, err
	}
	return r, nil
}

// Render lays out uri and paints it, returning the canvas.
func (p *Pipeline) Render(ctx context.Context, uri string, width, height int) (image.Image, *layout.Snapshot, error) {
	_, snap, err := p.Layout(ctx, uri)
	if err != nil {
		return nil, nil, err
	}
	r, err := p.Paint(snap, width, height)
	if err != nil {
		return nil, nil, err
	}
	return r.Image(), snap, nil
}
