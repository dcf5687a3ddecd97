package flexbox

import (
	"math"

	"go.uber.org/zap"

	"l14layout/pkg/css"
	"l14layout/pkg/unit"
)

// JustifyPlan is the leading offset and the extra space inserted between
// adjacent items for one line.
type JustifyPlan struct {
	Start   float64
	Between float64
}

// JustifyParams computes the justify-content plan for n items occupying
// used of the container's main size. Negative free space is treated as
// zero except for flex-end and center, which may push items past the start.
func JustifyParams(justify css.JustifyContent, containerMain, used float64, n int) JustifyPlan {
	remaining := containerMain - used
	free := math.Max(remaining, 0)
	var start, between float64
	switch justify {
	case css.JustifyFlexEnd:
		start = remaining
	case css.JustifyCenter:
		start = remaining / 2
	case css.JustifySpaceBetween:
		if n > 1 {
			between = free / float64(n-1)
		}
	case css.JustifySpaceAround:
		if n > 0 {
			between = free / float64(n)
			start = between / 2
		}
	case css.JustifySpaceEvenly:
		if n > 0 {
			between = free / float64(n+1)
			start = between
		}
	}
	return JustifyPlan{Start: unit.Quantize(start), Between: unit.QuantizeFloor(between)}
}

// AccumulateMainOffsets lays outer sizes end to end. Gap and the plan's
// between space go only between adjacent items. In reverse the first item
// sits against the main-end edge and the rest run toward main-start; the
// returned offsets are always measured from main-start.
func AccumulateMainOffsets(plan JustifyPlan, outer []float64, containerMain, gap float64, reverse bool) []float64 {
	offsets := make([]float64, len(outer))
	if !reverse {
		cursor := plan.Start
		for i, size := range outer {
			if i > 0 {
				cursor = unit.Quantize(cursor + gap + plan.Between)
			}
			offsets[i] = unit.Quantize(cursor)
			cursor = unit.Quantize(cursor + size)
		}
		return offsets
	}

	cursor := containerMain - plan.Start
	for i, size := range outer {
		if i > 0 {
			cursor = unit.Quantize(cursor - gap - plan.Between)
		}
		cursor = unit.Quantize(cursor - size)
		offsets[i] = cursor
	}
	return offsets
}

// ClampFirstOffset pins the first item to main-start for flex-start and
// space-between on a forward axis. Overflowing content then spills past the
// end edge instead of being shifted.
func ClampFirstOffset(justify css.JustifyContent, reverse bool, offsets []float64) {
	if reverse || len(offsets) == 0 {
		return
	}
	if justify == css.JustifyFlexStart || justify == css.JustifySpaceBetween {
		offsets[0] = 0
	}
}

// autoMargins is the result of resolving auto main-axis margins.
type autoMargins struct {
	outer      []float64
	marginLead []float64
	slots      int
}

// resolveAutoMargins splits the space left after sizes, fixed margins and
// gaps equally among auto main-axis margins. Each auto margin gets at
// least zero.
func resolveAutoMargins(items []FlexChild, sizes []float64, containerMain, gap float64) autoMargins {
	slots := 0
	used := 0.0
	for i, it := range items {
		used += sizes[i]
		if it.MarginStartAuto {
			slots++
		} else {
			used += it.MarginStart
		}
		if it.MarginEndAuto {
			slots++
		} else {
			used += it.MarginEnd
		}
	}
	if len(items) > 1 {
		used += gap * float64(len(items)-1)
	}

	each := 0.0
	if slots > 0 {
		each = unit.QuantizeFloor(math.Max(containerMain-used, 0) / float64(slots))
	}

	res := autoMargins{
		outer:      make([]float64, len(items)),
		marginLead: make([]float64, len(items)),
		slots:      slots,
	}
	for i, it := range items {
		start, end := it.MarginStart, it.MarginEnd
		if it.MarginStartAuto {
			start = each
		}
		if it.MarginEndAuto {
			end = each
		}
		res.outer[i] = sizes[i] + start + end
		res.marginLead[i] = start
	}
	return res
}

// ResolveAutoMargins returns each item's outer size and effective
// main-start margin once auto margins have absorbed the free space.
func ResolveAutoMargins(items []FlexChild, sizes []float64, containerMain, gap float64) (outer, marginStart []float64) {
	res := resolveAutoMargins(items, sizes, containerMain, gap)
	return res.outer, res.marginLead
}

// LayoutSingleLine resolves main sizes and offsets for one line of items.
// Items are flexed from their clamped bases, auto margins absorb any space
// left, and the remainder is distributed by justify-content.
func LayoutSingleLine(container Container, justify css.JustifyContent, items []FlexChild) []FlexPlacement {
	if len(items) == 0 {
		return nil
	}
	axes := ResolveAxes(container.Direction, container.WritingMode)

	sizes := make([]float64, len(items))
	sumOuter := 0.0
	for i, it := range items {
		sizes[i] = Clamp(it.FlexBasis, it.MinMain, it.MaxMain)
		sumOuter += sizes[i]
		if !it.MarginStartAuto {
			sumOuter += it.MarginStart
		}
		if !it.MarginEndAuto {
			sumOuter += it.MarginEnd
		}
	}
	gaps := container.MainGap * float64(len(items)-1)

	free := container.MainSize - sumOuter - gaps
	if free > 0 {
		DistributeGrow(free, items, sizes)
	} else if free < 0 {
		DistributeShrink(free, items, sizes)
	}
	for i := range sizes {
		sizes[i] = unit.Quantize(sizes[i])
	}
	if ce := log().Check(zap.DebugLevel, "line flexed"); ce != nil {
		ce.Write(zap.Int("items", len(items)), zap.Float64("free", free), zap.Float64s("sizes", sizes))
	}

	margins := resolveAutoMargins(items, sizes, container.MainSize, container.MainGap)
	used := gaps
	for _, o := range margins.outer {
		used += o
	}

	plan := JustifyPlan{}
	if margins.slots == 0 {
		plan = JustifyParams(justify, container.MainSize, used, len(items))
	}

	offsets := AccumulateMainOffsets(plan, margins.outer, container.MainSize, container.MainGap, axes.MainReverse)
	ClampFirstOffset(justify, axes.MainReverse, offsets)

	out := make([]FlexPlacement, len(items))
	for i, it := range items {
		out[i] = FlexPlacement{
			Handle:     it.Handle,
			MainSize:   sizes[i],
			MainOffset: unit.Quantize(offsets[i] + margins.marginLead[i]),
		}
	}
	return out
}
