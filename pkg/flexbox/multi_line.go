package flexbox

import (
	"math"

	"go.uber.org/zap"

	"l14layout/pkg/css"
	"l14layout/pkg/unit"
)

// BreakIntoLines splits items into lines by accumulating hypothetical outer
// main sizes. Gap counts only after a preceding non-empty item of the same
// line. The first item of a line always fits, so no line is ever empty.
func BreakIntoLines(containerMain, gap float64, items []FlexChild) []LineRange {
	if len(items) == 0 {
		return nil
	}
	gap = math.Max(gap, 0)

	var lines []LineRange
	start := 0
	cursor := 0.0
	lastNonZero := -1
	for i, it := range items {
		size := Clamp(it.FlexBasis, it.MinMain, it.MaxMain) + math.Max(it.MarginStart, 0) + math.Max(it.MarginEnd, 0)

		g := 0.0
		if lastNonZero >= start && size > 0 {
			g = gap
		}
		next := cursor + g + size

		if next <= containerMain || i == start {
			cursor = next
		} else {
			lines = append(lines, LineRange{Start: start, End: i})
			start = i
			cursor = size
		}
		if size > 0 {
			lastNonZero = i
		}
	}
	return append(lines, LineRange{Start: start, End: len(items)})
}

// AlignContentParams computes the leading offset and between-line spacing
// for align-content. Unlike justify-content, negative free space is never
// distributed. stretch packs like flex-start; the lines themselves grow in
// StretchLineCrosses.
func AlignContentParams(align css.AlignContent, containerCross, used float64, lines int) JustifyPlan {
	free := math.Max(containerCross-used, 0)
	var start, between float64
	switch align {
	case css.AlignContentFlexEnd:
		start = free
	case css.AlignContentCenter:
		start = free / 2
	case css.AlignContentSpaceBetween:
		if lines > 1 {
			between = free / float64(lines-1)
		}
	case css.AlignContentSpaceAround:
		if lines > 0 {
			between = free / float64(lines)
			start = between / 2
		}
	case css.AlignContentSpaceEvenly:
		if lines > 0 {
			between = free / float64(lines+1)
			start = between
		}
	}
	return JustifyPlan{Start: unit.Quantize(start), Between: unit.QuantizeFloor(between)}
}

// StretchLineCrosses shares the free cross space equally among lines when
// align-content is stretch. Other modes return the sizes unchanged.
func StretchLineCrosses(ctx CrossContext, lineCross []float64) []float64 {
	out := make([]float64, len(lineCross))
	copy(out, lineCross)
	if ctx.AlignContent != css.AlignContentStretch || len(out) == 0 {
		return out
	}
	used := crossGaps(ctx, len(out))
	for _, c := range out {
		used += c
	}
	each := math.Max(ctx.ContainerCrossSize-used, 0) / float64(len(out))
	for i := range out {
		out[i] += each
	}
	return out
}

func crossGaps(ctx CrossContext, lines int) float64 {
	if lines < 2 {
		return 0
	}
	return math.Max(ctx.CrossGap, 0) * float64(lines-1)
}

// PackLines returns each line's offset from the container's cross-start
// edge after align-content and cross gaps.
func PackLines(ctx CrossContext, lineCross []float64) []float64 {
	used := crossGaps(ctx, len(lineCross))
	for _, c := range lineCross {
		used += c
	}
	plan := AlignContentParams(ctx.AlignContent, ctx.ContainerCrossSize, used, len(lineCross))

	offsets := make([]float64, len(lineCross))
	accum := plan.Start
	for i, c := range lineCross {
		offsets[i] = accum
		accum += c + plan.Between
		if i < len(lineCross)-1 {
			accum += math.Max(ctx.CrossGap, 0)
		}
	}
	return offsets
}

// LayoutMultiLineWithCross lays out a wrapping container: break into
// lines, run the single-line main algorithm per line, size and stretch the
// lines, pack them, then align items within their line.
func LayoutMultiLineWithCross(container Container, justify css.JustifyContent, ctx CrossContext, items []FlexChild, inputs []CrossInput, baselines []*Baseline) MultiLineResult {
	lines := BreakIntoLines(container.MainSize, container.MainGap, items)

	crosses := make([]float64, len(lines))
	for i, r := range lines {
		crosses[i] = lineCrossSize(items[r.Start:r.End], inputs[r.Start:r.End])
	}
	crosses = StretchLineCrosses(ctx, crosses)
	offsets := PackLines(ctx, crosses)
	if ce := log().Check(zap.DebugLevel, "lines packed"); ce != nil {
		ce.Write(zap.Int("lines", len(lines)), zap.Float64s("cross", crosses), zap.Float64s("offsets", offsets))
	}

	res := MultiLineResult{
		Placements:     make([]ItemPlacement, len(items)),
		Lines:          lines,
		LineCrossSizes: crosses,
	}
	for li, r := range lines {
		lineItems := items[r.Start:r.End]
		var lineBaselines []*Baseline
		if r.End <= len(baselines) {
			lineBaselines = baselines[r.Start:r.End]
		}
		main := LayoutSingleLine(container, justify, lineItems)
		cross := placeLine(ctx, lineItems, inputs[r.Start:r.End], lineBaselines, crosses[li], offsets[li])
		for i := range lineItems {
			res.Placements[r.Start+i] = ItemPlacement{Main: main[i], Cross: cross[i]}
		}
	}
	return res
}
