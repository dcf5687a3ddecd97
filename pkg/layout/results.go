package layout

import (
	"l14layout/pkg/css"
	"l14layout/pkg/html"
	"l14layout/pkg/unit"
)

// LayoutResult is the per-node output of a layout pass.
//
// BfcOffset is the top-left of the border box relative to the content
// origin of the node's formatting-context root; Snapshot flattens it to
// page coordinates. Sizes are border-box pixels on the 1/64px grid.
type LayoutResult struct {
	Kind BoxKind

	InlineSize float64
	BlockSize  float64

	BfcOffset      BfcOffset
	ExclusionSpace ExclusionSpace
	EndMarginStrut MarginStrut

	// Baseline and LastBaseline are measured from the border-box top.
	Baseline     unit.Maybe
	LastBaseline unit.Maybe

	// NeedsRelayout asks the parent to lay the box out again: its block
	// offset was estimated, or a descendant's clearance invalidated the
	// margins it was positioned with.
	NeedsRelayout bool

	Margin  css.BoxEdge
	Border  css.BoxEdge
	Padding css.BoxEdge

	// Placed holds one entry per in-flow block-level child, in order.
	Placed []PlacedBlock

	// Lines holds the line fragments of a text node, in the same
	// coordinates as BfcOffset.
	Lines []TextLine

	collapseThrough bool
	cleared         bool
}

// PlacedBlock records how block layout placed one child.
type PlacedBlock struct {
	NodeID html.NodeID

	// Y is the child's border-box top relative to the parent's content
	// top. Margins collapsing through the parent can make it negative.
	Y             float64
	ContentHeight float64

	OutgoingBottomMargin float64

	// CollapsedTop is the collapsed margin applied above the child.
	CollapsedTop float64

	ClearLifted           bool
	ParentEdgeCollapsible bool

	// LeadingCollapseContrib is the part of the child's margins that
	// collapsed into the parent's top margin. It is zero whenever the
	// parent edge is not collapsible or clearance fired.
	LeadingCollapseContrib float64
}

// TextLine is one fragment of a text node on one line.
type TextLine struct {
	NodeID   html.NodeID
	Text     string
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Baseline float64
	FontSize float64
}

// MinMaxSizes are the min-content and max-content border-box inline sizes
// of a box.
type MinMaxSizes struct {
	MinContent float64
	MaxContent float64
}

// ShrinkToFit is min(max(min-content, available), max-content).
func (m MinMaxSizes) ShrinkToFit(available float64) float64 {
	return min(max(m.MinContent, available), m.MaxContent)
}

// Size is a border-box size in pixels.
type Size struct {
	Width  float64
	Height float64
}

// clampSizes caps the sizes at the largest LayoutUnit, the limit every
// offset and child size is already held to.
func (r *LayoutResult) clampSizes() {
	r.InlineSize = unit.FromPx(r.InlineSize).ToPx()
	r.BlockSize = unit.FromPx(r.BlockSize).ToPx()
}

// borderBox is the border-box rectangle of a result in its own
// coordinates.
func (r LayoutResult) borderBox() (x, y, w, h float64) {
	return r.BfcOffset.InlineOffset.ToPx(), r.BfcOffset.BlockOffset.Or(unit.Zero).ToPx(), r.InlineSize, r.BlockSize
}
