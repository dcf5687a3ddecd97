// Package flexbox implements the flex layout algorithm on plain numbers:
// axis resolution, order sorting, main-axis distribution and justification,
// cross-axis alignment, and multi-line wrapping.
//
// Nothing here knows about boxes or trees. The layout package measures the
// items, feeds sizes in, and applies the placements that come back. All
// sizes are float64 pixels snapped to the 1/64px layout grid as they
// accumulate.
package flexbox

import "l14layout/pkg/css"

// Handle identifies an item to the caller. The algorithm never interprets it.
type Handle int

// FlexChild is one flex item as the algorithm sees it. Sizes are along the
// main axis except the Cross margins. Margins are physical: MarginStart is
// left (row) or top (column) whatever the direction.
type FlexChild struct {
	Handle     Handle
	FlexBasis  float64
	FlexGrow   float64
	FlexShrink float64
	MinMain    float64
	MaxMain    float64

	MarginStart      float64
	MarginEnd        float64
	MarginCrossStart float64
	MarginCrossEnd   float64

	MarginStartAuto bool
	MarginEndAuto   bool
}

// FlexPlacement is an item's resolved main size and its offset from the
// container's main-start content edge.
type FlexPlacement struct {
	Handle     Handle
	MainSize   float64
	MainOffset float64
}

// CrossPlacement is an item's resolved cross size and offset.
type CrossPlacement struct {
	CrossSize   float64
	CrossOffset float64
}

// ItemPlacement pairs the two halves of an item's placement.
type ItemPlacement struct {
	Main  FlexPlacement
	Cross CrossPlacement
}

// Container holds the container-level main-axis inputs.
type Container struct {
	Direction   css.FlexDirection
	WritingMode css.WritingMode
	MainSize    float64
	MainGap     float64
}

// CrossSize is an item's cross size before alignment. Stretch marks an
// item without an explicit cross size, which align-items: stretch may
// grow to fill its line.
type CrossSize struct {
	Size    float64
	Stretch bool
}

// CrossInput is the cross-axis input for one item. Align overrides the
// container's align-items when set to something other than auto.
type CrossInput struct {
	Size  CrossSize
	Min   float64
	Max   float64
	Align css.AlignItems
}

// Baseline holds an item's first and last baselines, measured from its
// cross-start border edge. Items without baselines pass nil.
type Baseline struct {
	First float64
	Last  float64
}

// CrossContext holds the container-level cross-axis inputs.
type CrossContext struct {
	AlignItems         css.AlignItems
	AlignContent       css.AlignContent
	ContainerCrossSize float64
	CrossGap           float64
}

// LineRange is the half-open item index range [Start, End) of one line.
type LineRange struct {
	Start int
	End   int
}

func (r LineRange) Len() int { return r.End - r.Start }

// MultiLineResult is the output of LayoutMultiLineWithCross. Placements are
// in item order; LineCrossSizes are after align-content stretching.
type MultiLineResult struct {
	Placements     []ItemPlacement
	Lines          []LineRange
	LineCrossSizes []float64
}
