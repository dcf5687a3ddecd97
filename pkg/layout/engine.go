package layout

import (
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"l14layout/pkg/html"
	"l14layout/pkg/text"
	"l14layout/pkg/unit"
)

// ErrNilDocument is returned when Layout is given no document or a
// document without a root.
var ErrNilDocument = errors.New("layout: nil document")

// ErrUnknownNode is returned by MeasureNode for an id the document does
// not contain.
var ErrUnknownNode = errors.New("layout: unknown node")

const (
	defaultICBWidth  = 800
	defaultICBHeight = 600
)

var packageLogger atomic.Pointer[zap.Logger]

// SetLogger sets the logger engines use when Options.Logger is nil.
func SetLogger(l *zap.Logger) {
	packageLogger.Store(l)
}

func defaultLogger() *zap.Logger {
	if l := packageLogger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// Options configures a LayoutEngine. Zero values select an 800x600 initial
// containing block and the built-in bitmap font measurer.
type Options struct {
	ICBWidth  float64
	ICBHeight float64
	Measurer  text.Measurer
	Logger    *zap.Logger
}

// LayoutEngine lays out documents. It holds configuration only, so one
// engine may run any number of passes concurrently.
type LayoutEngine struct {
	icbWidth  unit.LayoutUnit
	icbHeight unit.LayoutUnit
	measurer  text.Measurer
	logger    *zap.Logger
}

func NewLayoutEngine(opts Options) *LayoutEngine {
	if opts.ICBWidth <= 0 {
		opts.ICBWidth = defaultICBWidth
	}
	if opts.ICBHeight <= 0 {
		opts.ICBHeight = defaultICBHeight
	}
	if opts.Measurer == nil {
		// The bitmap face needs no font file, so this cannot fail.
		m, _ := text.NewFaceMeasurer("")
		opts.Measurer = m
	}
	if opts.Logger == nil {
		opts.Logger = defaultLogger()
	}
	return &LayoutEngine{
		icbWidth:  unit.FromPx(opts.ICBWidth),
		icbHeight: unit.FromPx(opts.ICBHeight),
		measurer:  opts.Measurer,
		logger:    opts.Logger.Named("layout"),
	}
}

// Layout runs one layout pass over doc and publishes its results. doc is
// only read. An unnumbered document is laid out as a numbered copy, so its
// snapshot is keyed by pre-order position.
func (le *LayoutEngine) Layout(doc *html.Document) (*Snapshot, error) {
	if doc == nil || doc.Root == nil {
		return nil, ErrNilDocument
	}
	doc = doc.Numbered()

	lp := le.newPass(doc)
	space := NewRootSpace(le.icbWidth, le.icbHeight)
	res := lp.layoutNode(doc.Root, space)
	for attempt := 1; res.NeedsRelayout && attempt < maxRelayoutAttempts; attempt++ {
		res = lp.layoutNode(doc.Root, space)
	}
	le.logger.Debug("layout pass complete",
		zap.Int("nodes", doc.Len()),
		zap.Int("results", len(lp.results)))
	return newSnapshot(lp.results, lp.roots), nil
}

// MeasureNode sizes one node of doc without publishing anything: inline
// and block are the space offered to its margin box. Text nodes measure
// 0x0.
func (le *LayoutEngine) MeasureNode(doc *html.Document, id html.NodeID, inline, block AvailableSize) (Size, error) {
	if doc == nil || doc.Root == nil {
		return Size{}, ErrNilDocument
	}
	doc = doc.Numbered()
	node := doc.ByID(id)
	if node == nil {
		return Size{}, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return le.newPass(doc).measureItem(node, inline, block), nil
}
