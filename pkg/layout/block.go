package layout

import (
	"go.uber.org/zap"

	"l14layout/pkg/css"
	"l14layout/pkg/html"
	"l14layout/pkg/unit"
)

// maxRelayoutAttempts bounds how often a parent re-runs a child that
// asked for it.
const maxRelayoutAttempts = 3

// flowState is the running state of one block container's normal flow, in
// the coordinates of its formatting context.
type flowState struct {
	parent html.NodeID

	inlineStart unit.LayoutUnit
	inlineSize  unit.LayoutUnit
	contentTop  unit.LayoutUnit

	// base is the flow position before the margins pending in strut.
	base  unit.LayoutUnit
	strut MarginStrut
	es    ExclusionSpace

	// leading holds while nothing has separated the parent's top edge
	// from the flow; topCollapsible says whether that edge can collapse.
	leading        bool
	topCollapsible bool

	percentBase unit.Maybe
	measuring   bool

	placed   []PlacedBlock
	absolute []staticPosition

	baseline     unit.Maybe
	lastBaseline unit.Maybe

	relayout bool
}

type staticPosition struct {
	node   *html.Node
	offset BfcOffset
}

// childSpace is the space an in-flow child starts from.
func (fs *flowState) childSpace() ConstraintSpace {
	return ConstraintSpace{
		AvailableInlineSize:           Definite(fs.inlineSize),
		AvailableBlockSize:            Indefinite,
		BfcOffset:                     BfcOffset{InlineOffset: fs.inlineStart, BlockOffset: unit.Some(fs.base)},
		ExclusionSpace:                fs.es,
		MarginStrut:                   fs.strut,
		PercentageResolutionBlockSize: fs.percentBase,
		IsForMeasurementOnly:          fs.measuring,
	}
}

// position is where content would start if it were placed now.
func (fs *flowState) position() unit.LayoutUnit {
	return fs.base.Add(fs.strut.Collapse())
}

// advance moves the flow past content that ends at end and resets the
// pending margins.
func (fs *flowState) advance(end unit.LayoutUnit) {
	fs.base = end
	fs.strut = MarginStrut{}
	fs.leading = false
}

func (fs *flowState) noteBaselines(top unit.LayoutUnit, first, last unit.Maybe) {
	if b, ok := first.Get(); ok && fs.baseline.IsNone() {
		fs.baseline = unit.Some(top.Add(b))
	}
	if b, ok := last.Get(); ok {
		fs.lastBaseline = unit.Some(top.Add(b))
	} else if b, ok := first.Get(); ok {
		fs.lastBaseline = unit.Some(top.Add(b))
	}
}

// layoutBlock lays out a block container: resolves its own position and
// inline size, flows its children, then sizes it from their extent.
func (lp *layoutPass) layoutBlock(node *html.Node, space ConstraintSpace) LayoutResult {
	style := lp.style(node)
	establishes := space.IsNewFormattingContext
	containing := space.availableInlinePx(lp.icbWidth)
	bm := resolveBoxModel(style, containing)
	width := lp.computeInlineSize(node, style, bm, space)
	if !space.MarginsAlreadyApplied && !lp.shrinksToFit(style) {
		resolveAutoMargins(&bm, width, containing)
	}
	contentInline := width - bm.inlineFrame()

	res := LayoutResult{
		InlineSize: width,
		Margin:     bm.margin,
		Border:     bm.border,
		Padding:    bm.padding,
	}

	var x, pos unit.LayoutUnit
	var chain MarginStrut
	switch {
	case space.MarginsAlreadyApplied:
		x = space.BfcOffset.InlineOffset
		pos = space.BfcOffset.BlockOffset.Or(unit.Zero)
	case establishes:
		x = space.BfcOffset.InlineOffset.Add(unit.FromPx(bm.margin.Left))
		pos = space.BfcOffset.BlockOffset.Or(unit.Zero).Add(unit.FromPx(bm.margin.Top))
	default:
		chain = lp.computeInitialMarginStrut(node, bm, false, contentInline)
		var estimated bool
		pos, res.cleared, estimated = resolveBfcOffset(style, space, chain)
		res.NeedsRelayout = estimated
		x = space.BfcOffset.InlineOffset.Add(unit.FromPx(bm.margin.Left))
	}
	res.BfcOffset = BfcOffset{InlineOffset: x, BlockOffset: unit.Some(pos)}

	fs := &flowState{
		parent:         node.ID,
		inlineSize:     unit.FromPx(contentInline).ClampNonNegative(),
		topCollapsible: topEdgeCollapsible(bm, establishes),
		percentBase:    childPercentageBase(style, bm, space),
		measuring:      space.IsForMeasurementOnly,
	}
	if establishes {
		defer lp.enterRoot(node.ID)()
	} else {
		fs.inlineStart = x.Add(unit.FromPx(bm.border.Left + bm.padding.Left))
		fs.contentTop = pos.Add(unit.FromPx(bm.border.Top + bm.padding.Top))
		fs.es = space.ExclusionSpace
	}
	lp.computeChildBaseBfcOffset(fs, pos, chain)

	lp.runFlow(node, fs)

	bottomCollapsible := bottomEdgeCollapsible(style, bm, establishes)
	collapseThrough := fs.leading && fs.topCollapsible && bottomCollapsible &&
		!lp.caches.noCollapseThrough[node.ID] && !isControl(node)
	end, contentEnd := computeEndMarginStrut(fs, space.MarginStrut, unit.FromPx(bm.margin.Bottom), collapseThrough, bottomCollapsible)
	if establishes {
		contentEnd = unit.MaxOf(contentEnd, fs.es.LastFloatBottom())
		end = MarginStrut{}
		end.Append(unit.FromPx(bm.margin.Bottom))
	}
	contentHeight := contentEnd.Sub(fs.contentTop).ClampNonNegative().ToPx()

	res.BlockSize = lp.computeBlockSize(node, style, bm, contentHeight, space)
	res.EndMarginStrut = end
	res.collapseThrough = collapseThrough && res.BlockSize == 0
	res.Placed = fs.placed
	res.NeedsRelayout = res.NeedsRelayout || fs.relayout
	if establishes {
		res.ExclusionSpace = space.ExclusionSpace
	} else {
		res.ExclusionSpace = fs.es
	}

	// Baselines are stored from the border-box top.
	toBox := unit.FromPx(bm.border.Top + bm.padding.Top).Sub(fs.contentTop)
	if b, ok := fs.baseline.Get(); ok {
		res.Baseline = unit.Some(b.Add(toBox))
	}
	if b, ok := fs.lastBaseline.Get(); ok {
		res.LastBaseline = unit.Some(b.Add(toBox))
	}

	lp.layoutAbsoluteChildren(fs, paddingBox(fs, bm, res))

	if ce := lp.logger.Check(zap.DebugLevel, "block laid out"); ce != nil {
		ce.Write(
			zap.Int("node", int(node.ID)),
			zap.Float64("width", res.InlineSize),
			zap.Float64("height", res.BlockSize),
			zap.Stringer("offset", res.BfcOffset),
			zap.Bool("relayout", res.NeedsRelayout))
	}
	return res
}

// computeChildBaseBfcOffset sets where the first child's margins start
// collapsing from. Below a collapsible top edge the children see the
// parent's own leading margins as pending, which places the first child
// exactly at the parent's top. Otherwise they start at the content edge
// with nothing pending.
func (lp *layoutPass) computeChildBaseBfcOffset(fs *flowState, pos unit.LayoutUnit, chain MarginStrut) {
	fs.leading = true
	if fs.topCollapsible {
		fs.base = pos.Sub(chain.Collapse())
		fs.strut = chain
		return
	}
	fs.base = fs.contentTop
	fs.strut = MarginStrut{}
}

func paddingBox(fs *flowState, bm boxModel, res LayoutResult) logicalRect {
	return logicalRect{
		inlineOffset: fs.inlineStart.Sub(unit.FromPx(bm.padding.Left)),
		blockOffset:  fs.contentTop.Sub(unit.FromPx(bm.padding.Top)),
		inlineSize:   unit.FromPx(res.InlineSize - bm.border.Horizontal()).ClampNonNegative(),
		blockSize:    unit.FromPx(res.BlockSize - bm.border.Vertical()).ClampNonNegative(),
	}
}

// runFlow lays out node's children in DOM order. Consecutive inline-level
// children form one inline run.
func (lp *layoutPass) runFlow(node *html.Node, fs *flowState) {
	children := node.Children
	for i := 0; i < len(children); {
		child := children[i]
		kind := lp.kindOf(child)
		if lp.isInlineLevel(child, kind) {
			j := i + 1
			for j < len(children) && lp.isInlineLevel(children[j], lp.kindOf(children[j])) {
				j++
			}
			lp.layoutInlineRun(children[i:j], fs)
			i = j
			continue
		}

		switch {
		case kind == KindNone:
			lp.layoutNode(child, fs.childSpace())
		case kind == KindFloat:
			lp.placeFloat(child, fs)
		case kind == KindAbsolute:
			fs.absolute = append(fs.absolute, staticPosition{
				node:   child,
				offset: BfcOffset{InlineOffset: fs.inlineStart, BlockOffset: unit.Some(fs.position())},
			})
		case lp.isFlowRoot(child, kind):
			lp.placeFlowRoot(child, fs)
		default:
			lp.placeBlockChild(child, fs)
		}
		i++
	}
}

// placeBlockChild lays out an in-flow block that shares the parent's
// formatting context, re-running it while it asks for relayout.
func (lp *layoutPass) placeBlockChild(child *html.Node, fs *flowState) {
	before := fs.base
	leading := fs.leading

	var res LayoutResult
	for attempt := 0; ; attempt++ {
		res = lp.layoutNode(child, fs.childSpace())
		if !res.NeedsRelayout || attempt+1 >= maxRelayoutAttempts {
			break
		}
		if lp.resolveParentOffsetIfNeeded(fs) {
			break
		}
	}

	top := res.BfcOffset.BlockOffset.Or(before)
	lp.noteClearance(child, res.cleared, fs)
	lp.recordPlaced(fs, child, res, top, before, leading)

	fs.es = res.ExclusionSpace
	if res.collapseThrough {
		fs.strut = res.EndMarginStrut
		return
	}
	fs.noteBaselines(top, res.Baseline, res.LastBaseline)
	fs.advance(top.Add(unit.FromPx(res.BlockSize)))
	fs.strut = res.EndMarginStrut
}

// resolveParentOffsetIfNeeded decides who handles a child's relayout
// request. While the child's margins still collapse into the parent's top
// edge the parent's own position is stale too, so the request goes up and
// the parent reports true. Otherwise the parent re-runs the child.
func (lp *layoutPass) resolveParentOffsetIfNeeded(fs *flowState) bool {
	if fs.leading && fs.topCollapsible {
		fs.relayout = true
		return true
	}
	return false
}

// noteClearance flags a child whose clearance fired while its margins were
// still counted in the parent's top margin. The parent is then laid out
// again without them.
func (lp *layoutPass) noteClearance(child *html.Node, cleared bool, fs *flowState) {
	if !cleared || !fs.leading || !fs.topCollapsible || lp.caches.noCollapseThrough[child.ID] {
		return
	}
	lp.caches.noCollapseThrough[child.ID] = true
	fs.relayout = true
	lp.logger.Debug("clearance separated leading margin",
		zap.Int("parent", int(fs.parent)),
		zap.Int("node", int(child.ID)))
}

func (lp *layoutPass) recordPlaced(fs *flowState, child *html.Node, res LayoutResult, top, before unit.LayoutUnit, leading bool) {
	pb := PlacedBlock{
		NodeID:                child.ID,
		Y:                     top.Sub(fs.contentTop).ToPx(),
		ContentHeight:         res.BlockSize,
		OutgoingBottomMargin:  res.EndMarginStrut.Collapse().ToPx(),
		CollapsedTop:          top.Sub(before).ToPx(),
		ClearLifted:           res.cleared,
		ParentEdgeCollapsible: leading && fs.topCollapsible,
	}
	if pb.ParentEdgeCollapsible && !pb.ClearLifted {
		pb.LeadingCollapseContrib = pb.CollapsedTop
	}
	lp.checkPlacedBlock(fs.parent, pb)
	fs.placed = append(fs.placed, pb)
}

// placeFlowRoot places a block-level child that establishes its own BFC.
// Its border box may not overlap floats, so it is narrowed to the space
// beside them or moved down until it fits.
func (lp *layoutPass) placeFlowRoot(child *html.Node, fs *flowState) {
	cs := lp.style(child)
	available := fs.inlineSize.ToPx()
	cbm := resolveBoxModel(cs, available)
	before := fs.base
	leading := fs.leading

	s := fs.strut
	s.Append(unit.FromPx(cbm.margin.Top))
	pos := fs.base.Add(s.Collapse())
	cleared := false
	if clr := fs.es.ClearanceOffset(cs.Clear); cs.Clear != css.ClearNone && clr.Greater(pos) {
		pos = clr
		cleared = true
	}

	containerEnd := fs.inlineStart.Add(fs.inlineSize)
	sizeAt := func(y unit.LayoutUnit) (unit.LayoutUnit, float64, float64) {
		start, span := fs.es.spanAt(y, fs.inlineStart, containerEnd)
		offer := fs.childSpace()
		offer.AvailableInlineSize = Definite(span)
		w := lp.computeInlineSize(child, cs, cbm, offer)
		return start, span.ToPx(), w
	}
	start, span, w := sizeAt(pos)
	if outer := w + cbm.margin.Horizontal(); outer > span && fs.es.HasFloatsAfter(pos) {
		pos = fs.es.dropOffset(pos, unit.FromPx(outer), fs.inlineStart, containerEnd)
		start, span, w = sizeAt(pos)
	}
	placedBM := cbm
	resolveAutoMargins(&placedBM, w, span)
	x := start.Add(unit.FromPx(placedBM.margin.Left))

	space := fs.childSpace().placedChildSpace(BfcOffset{InlineOffset: x, BlockOffset: unit.Some(pos)}, unit.FromPx(w), unit.Zero, false)
	res := lp.layoutNode(child, space)
	res.cleared = cleared

	lp.noteClearance(child, cleared, fs)
	lp.recordPlaced(fs, child, res, pos, before, leading)

	fs.noteBaselines(pos, res.Baseline, res.LastBaseline)
	fs.advance(pos.Add(unit.FromPx(res.BlockSize)))
	fs.strut.Append(unit.FromPx(cbm.margin.Bottom))
}
