package layout

import (
	"math"

	"l14layout/pkg/css"
	"l14layout/pkg/html"
	"l14layout/pkg/unit"
)

// controlSize is the intrinsic border-box size of checkbox and radio
// inputs.
const controlSize = 13.0

// boxModel is a box's resolved margins, borders and padding in pixels.
type boxModel struct {
	margin  css.BoxEdge
	border  css.BoxEdge
	padding css.BoxEdge

	autoMarginLeft  bool
	autoMarginRight bool
}

// resolveBoxModel resolves percentages against the containing block's
// inline size, as CSS does for both axes.
func resolveBoxModel(style *css.ComputedStyle, containingInline float64) boxModel {
	return boxModel{
		margin:          style.Margin.Resolve(containingInline, true),
		border:          style.Border,
		padding:         style.Padding.Resolve(containingInline, true),
		autoMarginLeft:  style.Margin.Left.IsAuto(),
		autoMarginRight: style.Margin.Right.IsAuto(),
	}
}

func (b boxModel) inlineFrame() float64 {
	return b.border.Horizontal() + b.padding.Horizontal()
}

func (b boxModel) blockFrame() float64 {
	return b.border.Vertical() + b.padding.Vertical()
}

// isControl reports checkbox and radio inputs, which have a fixed
// intrinsic size.
func isControl(node *html.Node) bool {
	if node == nil || !node.IsElement("input") {
		return false
	}
	t, _ := node.GetAttribute("type")
	return t == "checkbox" || t == "radio"
}

// toBorderBox converts a specified width or height to a border-box size.
func toBorderBox(style *css.ComputedStyle, v, frame float64) float64 {
	if style.BoxSizing == css.BoxSizingBorderBox {
		return math.Max(v, frame)
	}
	return v + frame
}

// clampBorderBox applies min and max lengths, resolved against base, to a
// border-box size. min wins over max, and the result never drops below
// the frame.
func clampBorderBox(style *css.ComputedStyle, size, frame float64, minL, maxL css.Length, base float64, hasBase bool) float64 {
	if v, ok := maxL.Resolve(base, hasBase); ok {
		size = math.Min(size, toBorderBox(style, v, frame))
	}
	if v, ok := minL.Resolve(base, hasBase); ok {
		size = math.Max(size, toBorderBox(style, v, frame))
	}
	return math.Max(size, frame)
}

// computeInlineSize returns the border-box inline size of a box.
//
// A fixed space dictates the size. Otherwise an explicit width goes
// through box-sizing, and auto fills the available size less margins,
// except for inline-level boxes and floats, which shrink to fit.
func (lp *layoutPass) computeInlineSize(node *html.Node, style *css.ComputedStyle, bm boxModel, space ConstraintSpace) float64 {
	if space.IsFixedInlineSize {
		return space.AvailableInlineSize.Value.ToPx()
	}
	if isControl(node) {
		return controlSize
	}
	frame := bm.inlineFrame()
	avail := space.availableInlinePx(lp.icbWidth)
	hasBase := space.AvailableInlineSize.IsDefinite()

	var size float64
	if w, ok := style.Width.Resolve(avail, hasBase); ok {
		size = toBorderBox(style, w, frame)
	} else {
		switch space.AvailableInlineSize.Kind {
		case SizeMinContent:
			size = lp.intrinsicSizes(node).MinContent
		case SizeMaxContent:
			size = lp.intrinsicSizes(node).MaxContent
		default:
			fill := avail - bm.margin.Horizontal()
			if lp.shrinksToFit(style) {
				size = lp.intrinsicSizes(node).ShrinkToFit(fill)
			} else {
				size = fill
			}
		}
	}
	size = clampBorderBox(style, size, frame, style.MinWidth, style.MaxWidth, avail, hasBase)
	return unit.Quantize(size)
}

// shrinksToFit reports boxes whose auto width is the shrink-to-fit width
// instead of the available width.
func (lp *layoutPass) shrinksToFit(style *css.ComputedStyle) bool {
	return style.Display.IsInlineLevel() || style.Float != css.FloatNone || style.Position.IsOutOfFlow()
}

// explicitBlockSize resolves height to a border-box size, when it is
// definite.
func explicitBlockSize(style *css.ComputedStyle, bm boxModel, space ConstraintSpace) (float64, bool) {
	base, hasBase := space.PercentageResolutionBlockSize.Get()
	if h, ok := style.Height.Resolve(base.ToPx(), hasBase); ok {
		return toBorderBox(style, h, bm.blockFrame()), true
	}
	return 0, false
}

// computeBlockSize returns the border-box block size of a box whose
// content is contentHeight tall.
func (lp *layoutPass) computeBlockSize(node *html.Node, style *css.ComputedStyle, bm boxModel, contentHeight float64, space ConstraintSpace) float64 {
	if space.IsFixedBlockSize {
		return space.AvailableBlockSize.Value.ToPx()
	}
	if isControl(node) {
		return controlSize
	}
	frame := bm.blockFrame()
	size, ok := explicitBlockSize(style, bm, space)
	if !ok {
		size = contentHeight + frame
	}
	base, hasBase := space.PercentageResolutionBlockSize.Get()
	size = clampBorderBox(style, size, frame, style.MinHeight, style.MaxHeight, base.ToPx(), hasBase)
	return unit.Quantize(size)
}

// childPercentageBase is the block size children resolve percentage
// heights against: the content height when it is definite.
func childPercentageBase(style *css.ComputedStyle, bm boxModel, space ConstraintSpace) unit.Maybe {
	if space.IsFixedBlockSize {
		return unit.Some(space.AvailableBlockSize.Value.Sub(unit.FromPx(bm.blockFrame())).ClampNonNegative())
	}
	if h, ok := explicitBlockSize(style, bm, space); ok {
		return unit.Some(unit.FromPx(math.Max(h-bm.blockFrame(), 0)))
	}
	return unit.None()
}

// resolveAutoMargins centers a block with auto horizontal margins in the
// space left beside its border box.
func resolveAutoMargins(bm *boxModel, borderBox, avail float64) {
	free := avail - borderBox - bm.margin.Horizontal()
	if free <= 0 {
		return
	}
	switch {
	case bm.autoMarginLeft && bm.autoMarginRight:
		bm.margin.Left += free / 2
		bm.margin.Right += free / 2
	case bm.autoMarginLeft:
		bm.margin.Left += free
	case bm.autoMarginRight:
		bm.margin.Right += free
	}
}
