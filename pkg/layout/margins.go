package layout

import (
	"go.uber.org/zap"

	"l14layout/pkg/css"
	"l14layout/pkg/html"
	"l14layout/pkg/unit"
)

// CSS 2.2 §8.3.1: a box's top margin collapses with its first in-flow
// child's when no border, padding, clearance or formatting-context
// boundary separates them. The bottom edge is the same but also needs an
// auto height.

func topEdgeCollapsible(bm boxModel, establishes bool) bool {
	return !establishes && bm.border.Top == 0 && bm.padding.Top == 0
}

func bottomEdgeCollapsible(style *css.ComputedStyle, bm boxModel, establishes bool) bool {
	if establishes || bm.border.Bottom != 0 || bm.padding.Bottom != 0 {
		return false
	}
	if !style.Height.IsAuto() {
		return false
	}
	minH, ok := style.MinHeight.Resolve(0, false)
	return !ok || minH == 0
}

// isFlowRoot reports block-level children that establish their own BFC
// and are therefore placed whole by their parent.
func (lp *layoutPass) isFlowRoot(node *html.Node, kind BoxKind) bool {
	switch kind {
	case KindFlex, KindGrid:
		return true
	case KindBlock:
		return lp.style(node).EstablishesFlowRoot()
	}
	return false
}

// computeInitialMarginStrut gathers the margins that collapse into the top
// of node: its own margin-top, and while the top edge stays collapsible,
// the leading margins of its first in-flow descendants. Children that
// collapse through contribute both margins and the walk continues past
// them.
func (lp *layoutPass) computeInitialMarginStrut(node *html.Node, bm boxModel, establishes bool, contentInline float64) MarginStrut {
	var s MarginStrut
	s.Append(unit.FromPx(bm.margin.Top))
	if topEdgeCollapsible(bm, establishes) {
		lp.appendLeadingMargins(node, &s, contentInline)
	}
	return s
}

// appendLeadingMargins walks node's leading children and reports whether
// every one of them collapsed through.
func (lp *layoutPass) appendLeadingMargins(node *html.Node, s *MarginStrut, contentInline float64) bool {
	for _, child := range node.Children {
		kind := lp.kindOf(child)
		switch {
		case kind == KindNone || kind == KindFloat || kind == KindAbsolute:
			continue
		case lp.isCollapsibleWhitespace(child):
			continue
		case lp.isInlineLevel(child, kind):
			return false
		case lp.caches.noCollapseThrough[child.ID]:
			return false
		}

		cs := lp.style(child)
		cbm := resolveBoxModel(cs, contentInline)
		s.Append(unit.FromPx(cbm.margin.Top))
		if lp.isFlowRoot(child, kind) {
			return false
		}
		if !topEdgeCollapsible(cbm, false) {
			return false
		}
		inner := contentInline - cbm.margin.Horizontal() - cbm.inlineFrame()
		if !lp.appendLeadingMargins(child, s, inner) || !lp.isCollapseThrough(child, cs, cbm) {
			return false
		}
		s.Append(unit.FromPx(cbm.margin.Bottom))
	}
	return true
}

// isCollapseThrough reports a block whose top and bottom margins adjoin:
// it has no in-flow content, no height, and no border or padding between
// its edges.
func (lp *layoutPass) isCollapseThrough(node *html.Node, style *css.ComputedStyle, bm boxModel) bool {
	if lp.caches.noCollapseThrough[node.ID] || isControl(node) {
		return false
	}
	if !topEdgeCollapsible(bm, false) || !bottomEdgeCollapsible(style, bm, false) {
		return false
	}
	for _, child := range node.Children {
		kind := lp.kindOf(child)
		switch {
		case kind == KindNone || kind == KindFloat || kind == KindAbsolute:
			continue
		case lp.isCollapsibleWhitespace(child):
			continue
		case lp.isInlineLevel(child, kind), lp.isFlowRoot(child, kind):
			return false
		}
		cs := lp.style(child)
		if !lp.isCollapseThrough(child, cs, resolveBoxModel(cs, 0)) {
			return false
		}
	}
	return true
}

// resolveBfcOffset resolves the border-box top of an in-flow block: the
// parent's flow position plus the collapsed incoming and leading margins,
// pushed below floats by clearance. An unresolved position is estimated
// at zero and reported so the parent lays the box out again.
func resolveBfcOffset(style *css.ComputedStyle, space ConstraintSpace, chain MarginStrut) (pos unit.LayoutUnit, cleared, estimated bool) {
	base, ok := space.BfcOffset.BlockOffset.Get()
	if !ok {
		estimated = true
	}
	s := space.MarginStrut
	s.AppendStrut(chain)
	pos = base.Add(s.Collapse())

	if style.Clear != css.ClearNone {
		if clr := space.ExclusionSpace.ClearanceOffset(style.Clear); clr.Greater(pos) {
			pos = clr
			cleared = true
		}
	}
	return pos, cleared, estimated
}

// computeEndMarginStrut returns the strut a block hands to its next
// sibling and where its content ends.
//
// A box that collapses through passes on everything it received plus its
// own margins. A collapsible bottom edge lets the last child's margin
// escape together with margin-bottom. Otherwise the pending margins stay
// inside and only margin-bottom leaves.
func computeEndMarginStrut(fs *flowState, incoming MarginStrut, marginBottom unit.LayoutUnit, collapseThrough, bottomCollapsible bool) (end MarginStrut, contentEnd unit.LayoutUnit) {
	switch {
	case collapseThrough:
		end = incoming
		end.AppendStrut(fs.strut)
		end.Append(marginBottom)
		return end, fs.contentTop
	case bottomCollapsible:
		end = fs.strut
		end.Append(marginBottom)
		return end, unit.MaxOf(fs.base, fs.contentTop)
	}
	end.Append(marginBottom)
	return end, fs.base.Add(fs.strut.Collapse())
}

// checkPlacedBlock reports a child that both cleared floats or sits below
// a non-collapsible edge and still claims to have collapsed into its
// parent's top margin.
func (lp *layoutPass) checkPlacedBlock(parent html.NodeID, pb PlacedBlock) {
	if pb.LeadingCollapseContrib == 0 {
		return
	}
	if pb.ClearLifted || !pb.ParentEdgeCollapsible {
		lp.logger.DPanic("leading margin collapsed across a separated edge",
			zap.Int("parent", int(parent)),
			zap.Int("node", int(pb.NodeID)),
			zap.Float64("contrib", pb.LeadingCollapseContrib),
			zap.Bool("cleared", pb.ClearLifted))
	}
}
