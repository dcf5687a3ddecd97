package layout

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"l14layout/pkg/css"
	"l14layout/pkg/html"
	"l14layout/pkg/text"
	"l14layout/pkg/unit"
)

// layoutPass is the state of one layout run over one document. It is
// owned by a single goroutine; passes never share a results table.
type layoutPass struct {
	doc      *html.Document
	styles   []*css.ComputedStyle
	measurer text.Measurer
	logger   *zap.Logger

	icbWidth  unit.LayoutUnit
	icbHeight unit.LayoutUnit

	results map[html.NodeID]LayoutResult
	// roots maps each node to the formatting-context root its BfcOffset
	// is relative to.
	roots  map[html.NodeID]html.NodeID
	fcRoot html.NodeID

	caches *passCaches
}

// passCaches survive across the scratch passes a measurement spawns.
type passCaches struct {
	// noCollapseThrough holds boxes whose clearance separated their
	// margins from their parent's. Margin chains stop at them.
	noCollapseThrough map[html.NodeID]bool
	intrinsic         map[html.NodeID]MinMaxSizes
	measured          map[measureKey]LayoutResult
}

type measureKey struct {
	node        html.NodeID
	inline      AvailableSize
	block       AvailableSize
	fixedInline bool
	fixedBlock  bool
}

func (le *LayoutEngine) newPass(doc *html.Document) *layoutPass {
	return &layoutPass{
		doc:       doc,
		styles:    computeStyles(doc),
		measurer:  le.measurer,
		logger:    le.logger,
		icbWidth:  le.icbWidth,
		icbHeight: le.icbHeight,
		results:   make(map[html.NodeID]LayoutResult),
		roots:     make(map[html.NodeID]html.NodeID),
		fcRoot:    html.InvalidNodeID,
		caches: &passCaches{
			noCollapseThrough: make(map[html.NodeID]bool),
			intrinsic:         make(map[html.NodeID]MinMaxSizes),
			measured:          make(map[measureKey]LayoutResult),
		},
	}
}

// child returns a scratch pass sharing styles and caches but writing to
// its own results table.
func (lp *layoutPass) child() *layoutPass {
	c := *lp
	c.results = make(map[html.NodeID]LayoutResult)
	c.roots = make(map[html.NodeID]html.NodeID)
	c.fcRoot = html.InvalidNodeID
	return &c
}

// enterRoot makes id the formatting-context root for the nodes laid out
// until the returned func is called.
func (lp *layoutPass) enterRoot(id html.NodeID) func() {
	prev := lp.fcRoot
	lp.fcRoot = id
	return func() { lp.fcRoot = prev }
}

// layoutNode lays out node in space and records the result. The kind is
// decided here once and handed down.
func (lp *layoutPass) layoutNode(node *html.Node, space ConstraintSpace) LayoutResult {
	kind := lp.kindOf(node)
	if ce := lp.logger.Check(zapcore.DebugLevel, "layout node"); ce != nil {
		ce.Write(
			zap.Int("node", int(node.ID)),
			zap.String("kind", kind.String()),
			zap.Stringer("inline", space.AvailableInlineSize),
			zap.Stringer("offset", space.BfcOffset),
			zap.Bool("measure", space.IsForMeasurementOnly))
	}

	var res LayoutResult
	switch kind {
	case KindNone:
		res = LayoutResult{BfcOffset: space.BfcOffset, ExclusionSpace: space.ExclusionSpace}
	case KindAbsolute:
		res = lp.layoutAbsolute(node, space)
	default:
		res = lp.layoutInner(node, lp.innerKind(node, kind), space)
	}
	res.Kind = kind
	res.clampSizes()
	lp.record(node.ID, res)
	return res
}

// layoutInner runs the formatting algorithm for inner, a kind that
// innerKind has already resolved. Floats and absolutely positioned boxes
// reach it once their container has placed them.
func (lp *layoutPass) layoutInner(node *html.Node, inner BoxKind, space ConstraintSpace) LayoutResult {
	switch inner {
	case KindText:
		return lp.layoutAnonymousText(node, space)
	case KindFlex:
		return lp.layoutFlex(node, space)
	case KindGrid:
		return lp.layoutGrid(node, space)
	}
	return lp.layoutBlock(node, space)
}

func (lp *layoutPass) record(id html.NodeID, res LayoutResult) {
	lp.results[id] = res
	lp.roots[id] = lp.fcRoot
}
