package layout

import (
	"go.uber.org/zap"

	"l14layout/pkg/html"
	"l14layout/pkg/unit"
)

// Measurement lays a subtree out in a scratch pass rooted at a fresh BFC.
// The scratch results are discarded; only the root's result comes back,
// so nothing reaches the caller's results table or exclusion space.

// measure sizes node given the space offered to its margin box.
func (lp *layoutPass) measure(node *html.Node, inline, block AvailableSize) LayoutResult {
	return lp.measureWith(measureKey{node: node.ID, inline: inline, block: block}, node)
}

// measureBlockAtInline lays node out at a fixed border-box width and
// reports its height.
func (lp *layoutPass) measureBlockAtInline(node *html.Node, width float64) LayoutResult {
	return lp.measureWith(measureKey{node: node.ID, inline: DefinitePx(width), block: Indefinite, fixedInline: true}, node)
}

// measureAtSize lays node out at a fixed border-box size. Its baselines
// are what flex baseline alignment needs.
func (lp *layoutPass) measureAtSize(node *html.Node, width, height float64) LayoutResult {
	return lp.measureWith(measureKey{
		node: node.ID, inline: DefinitePx(width), block: DefinitePx(height), fixedInline: true, fixedBlock: true,
	}, node)
}

// measureNaturalInline is the border-box width node takes when nothing
// constrains it.
func (lp *layoutPass) measureNaturalInline(node *html.Node) float64 {
	return lp.measure(node, MaxContent, Indefinite).InlineSize
}

// measureItem returns the border-box size of node. Text nodes have no box
// and measure 0x0.
func (lp *layoutPass) measureItem(node *html.Node, inline, block AvailableSize) Size {
	if node.Type == html.TextNode {
		return Size{}
	}
	res := lp.measure(node, inline, block)
	return Size{Width: res.InlineSize, Height: res.BlockSize}
}

func (lp *layoutPass) measureWith(key measureKey, node *html.Node) LayoutResult {
	if res, ok := lp.caches.measured[key]; ok {
		return res
	}

	space := ConstraintSpace{
		AvailableInlineSize:    key.inline,
		AvailableBlockSize:     key.block,
		BfcOffset:              RootBfcOffset(),
		IsNewFormattingContext: true,
		IsForMeasurementOnly:   true,
		IsFixedInlineSize:      key.fixedInline,
		IsFixedBlockSize:       key.fixedBlock,
	}
	if key.block.IsDefinite() {
		space.PercentageResolutionBlockSize = unit.Some(key.block.Value)
	}
	if key.fixedInline || key.fixedBlock {
		space.MarginsAlreadyApplied = true
	}

	scratch := lp.child()
	inner := lp.innerKind(node, lp.kindOf(node))
	res := scratch.layoutInner(node, inner, space)
	for attempt := 1; res.NeedsRelayout && attempt < maxRelayoutAttempts; attempt++ {
		res = scratch.layoutInner(node, inner, space)
	}
	res.clampSizes()
	lp.caches.measured[key] = res

	if ce := lp.logger.Check(zap.DebugLevel, "measured"); ce != nil {
		ce.Write(
			zap.Int("node", int(node.ID)),
			zap.Stringer("inline", key.inline),
			zap.Float64("width", res.InlineSize),
			zap.Float64("height", res.BlockSize))
	}
	return res
}
