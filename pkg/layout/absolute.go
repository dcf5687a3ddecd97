package layout

import (
	"l14layout/pkg/html"
	"l14layout/pkg/unit"
)

// layoutAbsoluteChildren lays out the out-of-flow children collected
// during flow, once the container's padding box is known.
func (lp *layoutPass) layoutAbsoluteChildren(fs *flowState, cb logicalRect) {
	for _, sp := range fs.absolute {
		space := ConstraintSpace{
			AvailableInlineSize:           Definite(cb.inlineSize),
			AvailableBlockSize:            Definite(cb.blockSize),
			BfcOffset:                     sp.offset,
			IsNewFormattingContext:        true,
			PercentageResolutionBlockSize: unit.Some(cb.blockSize),
			IsForMeasurementOnly:          fs.measuring,
			containingBlock:               cb,
		}
		lp.layoutNode(sp.node, space)
	}
}

// layoutAbsolute positions an absolutely or fixed positioned box. Only
// the basics are resolved: insets against the containing block's padding
// box, falling back to the static position, and a width that is explicit,
// spans both insets, or shrinks to fit. Fixed boxes use the same
// containing block as absolute ones.
func (lp *layoutPass) layoutAbsolute(node *html.Node, space ConstraintSpace) LayoutResult {
	if space.MarginsAlreadyApplied {
		return lp.layoutInner(node, lp.innerKind(node, KindAbsolute), space)
	}
	style := lp.style(node)
	cb := space.containingBlock
	cbW, cbH := cb.inlineSize.ToPx(), cb.blockSize.ToPx()
	bm := resolveBoxModel(style, cbW)

	left, hasLeft := style.Inset.Left.Resolve(cbW, true)
	right, hasRight := style.Inset.Right.Resolve(cbW, true)
	top, hasTop := style.Inset.Top.Resolve(cbH, true)
	bottom, hasBottom := style.Inset.Bottom.Resolve(cbH, true)

	frame := bm.inlineFrame()
	var width float64
	switch w, ok := style.Width.Resolve(cbW, true); {
	case isControl(node):
		width = controlSize
	case ok:
		width = toBorderBox(style, w, frame)
	case hasLeft && hasRight:
		width = cbW - left - right - bm.margin.Horizontal()
	default:
		offer := cbW - bm.margin.Horizontal()
		if hasLeft {
			offer -= left
		} else if hasRight {
			offer -= right
		}
		width = lp.intrinsicSizes(node).ShrinkToFit(offer)
	}
	width = unit.Quantize(clampBorderBox(style, width, frame, style.MinWidth, style.MaxWidth, cbW, true))

	height, fixedHeight := explicitBlockSize(style, bm, space)
	if !fixedHeight && hasTop && hasBottom && style.Height.IsAuto() {
		height = cbH - top - bottom - bm.margin.Vertical()
		fixedHeight = true
	}
	if fixedHeight {
		height = unit.Quantize(clampBorderBox(style, height, bm.blockFrame(), style.MinHeight, style.MaxHeight, cbH, true))
	}

	x := space.BfcOffset.InlineOffset.Add(unit.FromPx(bm.margin.Left))
	switch {
	case hasLeft:
		x = cb.inlineOffset.Add(unit.FromPx(left + bm.margin.Left))
	case hasRight:
		x = cb.inlineOffset.Add(cb.inlineSize).Sub(unit.FromPx(right + bm.margin.Right + width))
	}
	y := space.BfcOffset.BlockOffset.Or(cb.blockOffset).Add(unit.FromPx(bm.margin.Top))
	switch {
	case hasTop:
		y = cb.blockOffset.Add(unit.FromPx(top + bm.margin.Top))
	case hasBottom && fixedHeight:
		y = cb.blockOffset.Add(cb.blockSize).Sub(unit.FromPx(bottom + bm.margin.Bottom + height))
	}

	placed := space.placedChildSpace(BfcOffset{InlineOffset: x, BlockOffset: unit.Some(y)}, unit.FromPx(width), unit.FromPx(height), fixedHeight)
	res := lp.layoutInner(node, lp.innerKind(node, KindAbsolute), placed)
	if !fixedHeight && hasBottom && !hasTop {
		// The height is only known now; move the box up to meet bottom.
		res.BfcOffset.BlockOffset = unit.Some(cb.blockOffset.Add(cb.blockSize).Sub(unit.FromPx(bottom + bm.margin.Bottom + res.BlockSize)))
	}
	res.Margin = bm.margin
	return res
}
