package flexbox

import (
	"math"

	"l14layout/pkg/css"
)

// effectiveAlign resolves an item's align-self against the container's
// align-items.
func effectiveAlign(ctx CrossContext, in CrossInput) css.AlignItems {
	if in.Align == "" || in.Align == css.AlignAuto {
		return ctx.AlignItems
	}
	return in.Align
}

func isBaselineAlign(a css.AlignItems) bool {
	return a == css.AlignBaseline || a == css.AlignLastBaseline
}

// AlignSingleLineCross places one item within a line of lineCross. The
// item's cross margins are subtracted from the line before aligning and
// the returned offset includes the start margin.
//
// stretch grows items without an explicit cross size to fill the line,
// clamped by their min/max. center never pushes an item above the line.
// flex-end and last baseline align to the end edge; baseline offsets are
// adjusted separately by AdjustCrossForBaseline.
func AlignSingleLineCross(align css.AlignItems, lineCross float64, in CrossInput, marginStart, marginEnd float64) CrossPlacement {
	avail := lineCross - marginStart - marginEnd
	size := Clamp(in.Size.Size, in.Min, in.Max)

	switch align {
	case css.AlignStretch:
		if in.Size.Stretch {
			return CrossPlacement{CrossSize: Clamp(avail, in.Min, in.Max), CrossOffset: marginStart}
		}
		return CrossPlacement{CrossSize: size, CrossOffset: marginStart}
	case css.AlignCenter:
		return CrossPlacement{CrossSize: size, CrossOffset: marginStart + math.Max((avail-size)/2, 0)}
	case css.AlignFlexEnd, css.AlignLastBaseline:
		return CrossPlacement{CrossSize: size, CrossOffset: marginStart + math.Max(avail-size, 0)}
	}
	return CrossPlacement{CrossSize: size, CrossOffset: marginStart}
}

// LineBaselineRef is the baseline every baseline-aligned item in a line
// lines up with: the largest first (or last) baseline among them, measured
// from the line's cross-start edge including the item's start margin.
func LineBaselineRef(ctx CrossContext, items []FlexChild, inputs []CrossInput, baselines []*Baseline) (first, last float64) {
	for i := range inputs {
		if i >= len(baselines) || baselines[i] == nil {
			continue
		}
		switch effectiveAlign(ctx, inputs[i]) {
		case css.AlignBaseline:
			first = math.Max(first, items[i].MarginCrossStart+baselines[i].First)
		case css.AlignLastBaseline:
			last = math.Max(last, items[i].MarginCrossStart+baselines[i].Last)
		}
	}
	return first, last
}

// AdjustCrossForBaseline moves a baseline-aligned item so its baseline sits
// at ref within the line, without letting it leave the line. accum is the
// line's offset from the container's cross-start edge.
func AdjustCrossForBaseline(p CrossPlacement, baseline, marginStart, ref, lineCross, accum float64) CrossPlacement {
	desired := math.Max(ref-baseline, marginStart)
	limit := math.Max(lineCross-p.CrossSize, 0)
	p.CrossOffset = accum + math.Min(desired, limit)
	return p
}

// lineCrossSize is the largest clamped outer cross size in a line.
func lineCrossSize(items []FlexChild, inputs []CrossInput) float64 {
	max := 0.0
	for i, in := range inputs {
		outer := Clamp(in.Size.Size, in.Min, in.Max) + items[i].MarginCrossStart + items[i].MarginCrossEnd
		max = math.Max(max, outer)
	}
	return max
}

// placeLine aligns every item of one line and lifts it by accum.
func placeLine(ctx CrossContext, items []FlexChild, inputs []CrossInput, baselines []*Baseline, lineCross, accum float64) []CrossPlacement {
	firstRef, lastRef := LineBaselineRef(ctx, items, inputs, baselines)
	out := make([]CrossPlacement, len(items))
	for i, it := range items {
		align := effectiveAlign(ctx, inputs[i])
		p := AlignSingleLineCross(align, lineCross, inputs[i], it.MarginCrossStart, it.MarginCrossEnd)
		p.CrossOffset += accum

		if isBaselineAlign(align) && i < len(baselines) && baselines[i] != nil {
			if align == css.AlignBaseline {
				p = AdjustCrossForBaseline(p, baselines[i].First, it.MarginCrossStart, firstRef, lineCross, accum)
			} else {
				p = AdjustCrossForBaseline(p, baselines[i].Last, it.MarginCrossStart, lastRef, lineCross, accum)
			}
		}
		out[i] = p
	}
	return out
}

// LayoutSingleLineWithCross lays out a nowrap container: main placements
// from LayoutSingleLine, cross placements within the container's cross
// size treated as one line.
func LayoutSingleLineWithCross(container Container, justify css.JustifyContent, ctx CrossContext, items []FlexChild, inputs []CrossInput, baselines []*Baseline) []ItemPlacement {
	main := LayoutSingleLine(container, justify, items)
	cross := placeLine(ctx, items, inputs, baselines, ctx.ContainerCrossSize, 0)
	out := make([]ItemPlacement, len(items))
	for i := range items {
		out[i] = ItemPlacement{Main: main[i], Cross: cross[i]}
	}
	return out
}
