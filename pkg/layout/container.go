package layout

import (
	"math"

	"l14layout/pkg/css"
	"l14layout/pkg/html"
	"l14layout/pkg/unit"
)

// containerBox is the resolved frame of a flex or grid container. Both
// establish a formatting context, so their items are positioned relative
// to the content origin.
type containerBox struct {
	style  *css.ComputedStyle
	bm     boxModel
	width  float64
	offset BfcOffset

	contentWidth  float64
	contentHeight float64
	hasHeight     bool
}

func (lp *layoutPass) openContainer(node *html.Node, space ConstraintSpace) containerBox {
	style := lp.style(node)
	bm := resolveBoxModel(style, space.availableInlinePx(lp.icbWidth))
	cb := containerBox{
		style: style,
		bm:    bm,
		width: lp.computeInlineSize(node, style, bm, space),
	}
	cb.contentWidth = math.Max(cb.width-bm.inlineFrame(), 0)

	if space.MarginsAlreadyApplied {
		cb.offset = BfcOffset{InlineOffset: space.BfcOffset.InlineOffset, BlockOffset: unit.Some(space.BfcOffset.BlockOffset.Or(unit.Zero))}
	} else {
		cb.offset = BfcOffset{
			InlineOffset: space.BfcOffset.InlineOffset.Add(unit.FromPx(bm.margin.Left)),
			BlockOffset:  unit.Some(space.BfcOffset.BlockOffset.Or(unit.Zero).Add(unit.FromPx(bm.margin.Top))),
		}
	}

	if space.IsFixedBlockSize {
		cb.contentHeight = math.Max(space.AvailableBlockSize.Value.ToPx()-bm.blockFrame(), 0)
		cb.hasHeight = true
	} else if h, ok := explicitBlockSize(style, bm, space); ok {
		cb.contentHeight = math.Max(h-bm.blockFrame(), 0)
		cb.hasHeight = true
	}
	return cb
}

// itemSpace is the base space items of the container are placed from.
func (cb containerBox) itemSpace(space ConstraintSpace) ConstraintSpace {
	s := ConstraintSpace{IsForMeasurementOnly: space.IsForMeasurementOnly}
	if cb.hasHeight {
		s.PercentageResolutionBlockSize = unit.Some(unit.FromPx(cb.contentHeight))
	}
	return s
}

// closeContainer sizes the container around its content and lays out its
// absolutely positioned children. baseline is measured from the content
// top.
func (lp *layoutPass) closeContainer(node *html.Node, space ConstraintSpace, cb containerBox, contentHeight float64, baseline unit.Maybe) LayoutResult {
	res := LayoutResult{
		InlineSize:     cb.width,
		BlockSize:      lp.computeBlockSize(node, cb.style, cb.bm, contentHeight, space),
		BfcOffset:      cb.offset,
		ExclusionSpace: space.ExclusionSpace,
		Margin:         cb.bm.margin,
		Border:         cb.bm.border,
		Padding:        cb.bm.padding,
	}
	res.EndMarginStrut.Append(unit.FromPx(cb.bm.margin.Bottom))
	if b, ok := baseline.Get(); ok {
		res.Baseline = unit.Some(b.Add(unit.FromPx(cb.bm.border.Top + cb.bm.padding.Top)))
		res.LastBaseline = res.Baseline
	}

	fs := &flowState{parent: node.ID, measuring: space.IsForMeasurementOnly}
	for _, child := range node.Children {
		if lp.kindOf(child) == KindAbsolute {
			fs.absolute = append(fs.absolute, staticPosition{node: child, offset: BfcOffset{BlockOffset: unit.Some(unit.Zero)}})
		}
	}
	lp.layoutAbsoluteChildren(fs, paddingBox(fs, cb.bm, res))
	return res
}

// itemStyle is the style an item's box properties come from. Text items
// are anonymous boxes with initial values.
func (lp *layoutPass) itemStyle(child *html.Node) *css.ComputedStyle {
	if child.Type == html.TextNode {
		return &defaultStyle
	}
	return lp.style(child)
}
