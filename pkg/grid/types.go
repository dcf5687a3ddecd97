// Package grid implements CSS grid item placement and track sizing on plain
// numbers. The layout package supplies per-item content sizes and applies
// the resulting positions; nothing here walks a box tree.
package grid

import "fmt"

// Handle identifies an item to the caller.
type Handle int

// BreadthKind selects the variant of a TrackBreadth.
type BreadthKind int

const (
	BreadthAuto BreadthKind = iota
	BreadthLength
	BreadthPercentage
	BreadthFlex
	BreadthMinContent
	BreadthMaxContent
)

// TrackBreadth is one side of a track sizing function. Value holds pixels
// for BreadthLength, a fraction (0.5 for 50%) for BreadthPercentage and the
// fr factor for BreadthFlex.
type TrackBreadth struct {
	Kind  BreadthKind
	Value float64
}

func Length(px float64) TrackBreadth    { return TrackBreadth{Kind: BreadthLength, Value: px} }
func Percentage(f float64) TrackBreadth { return TrackBreadth{Kind: BreadthPercentage, Value: f} }
func Flex(fr float64) TrackBreadth      { return TrackBreadth{Kind: BreadthFlex, Value: fr} }
func Auto() TrackBreadth                { return TrackBreadth{Kind: BreadthAuto} }
func MinContent() TrackBreadth          { return TrackBreadth{Kind: BreadthMinContent} }
func MaxContent() TrackBreadth          { return TrackBreadth{Kind: BreadthMaxContent} }

func (b TrackBreadth) IsFlexible() bool { return b.Kind == BreadthFlex }

// IsIntrinsic reports whether the breadth depends on item content.
func (b TrackBreadth) IsIntrinsic() bool {
	switch b.Kind {
	case BreadthAuto, BreadthMinContent, BreadthMaxContent:
		return true
	}
	return false
}

func (b TrackBreadth) FlexFactor() float64 {
	if b.Kind == BreadthFlex {
		return b.Value
	}
	return 0
}

func (b TrackBreadth) String() string {
	switch b.Kind {
	case BreadthLength:
		return fmt.Sprintf("%gpx", b.Value)
	case BreadthPercentage:
		return fmt.Sprintf("%g%%", b.Value*100)
	case BreadthFlex:
		return fmt.Sprintf("%gfr", b.Value)
	case BreadthMinContent:
		return "min-content"
	case BreadthMaxContent:
		return "max-content"
	}
	return "auto"
}

// TrackSizeKind selects the variant of a GridTrackSize.
type TrackSizeKind int

const (
	SizeBreadth TrackSizeKind = iota
	SizeMinMax
	SizeFitContent
)

// GridTrackSize is a track sizing function: a single breadth, minmax(), or
// fit-content(). For SizeBreadth Min and Max are equal; for SizeFitContent
// Max holds the limit.
type GridTrackSize struct {
	Kind TrackSizeKind
	Min  TrackBreadth
	Max  TrackBreadth
}

func Breadth(b TrackBreadth) GridTrackSize { return GridTrackSize{Kind: SizeBreadth, Min: b, Max: b} }
func MinMax(lo, hi TrackBreadth) GridTrackSize {
	return GridTrackSize{Kind: SizeMinMax, Min: lo, Max: hi}
}
func FitContent(limit TrackBreadth) GridTrackSize {
	return GridTrackSize{Kind: SizeFitContent, Min: Auto(), Max: limit}
}

// MinBreadth is the breadth used as the track's base size.
func (s GridTrackSize) MinBreadth() TrackBreadth { return s.Min }

// MaxBreadth is the breadth used as the track's growth limit.
func (s GridTrackSize) MaxBreadth() TrackBreadth { return s.Max }

func (s GridTrackSize) String() string {
	switch s.Kind {
	case SizeMinMax:
		return fmt.Sprintf("minmax(%s, %s)", s.Min, s.Max)
	case SizeFitContent:
		return fmt.Sprintf("fit-content(%s)", s.Max)
	}
	return s.Min.String()
}

// RepeatKind distinguishes repeat(N, …) from the auto repetitions.
type RepeatKind int

const (
	RepeatCount RepeatKind = iota
	RepeatAutoFill
	RepeatAutoFit
)

// TrackRepeat is a repeat() pattern.
type TrackRepeat struct {
	Kind   RepeatKind
	Count  int
	Tracks []GridTrackSize
}

// TrackListType says whether a track came from grid-template-* or was
// added to hold items placed outside the explicit grid.
type TrackListType int

const (
	Explicit TrackListType = iota
	Implicit
)

// GridTrack is one track in an axis. FromAutoRepeat marks tracks produced
// by an auto-fill or auto-fit repetition.
type GridTrack struct {
	Size           GridTrackSize
	Type           TrackListType
	FromAutoRepeat bool
}

// Axis names the axis being sized. Row tracks stack along the block axis
// and are sized from item heights; column tracks from item widths.
type Axis int

const (
	AxisRow Axis = iota
	AxisColumn
)

func (a Axis) String() string {
	if a == AxisRow {
		return "row"
	}
	return "column"
}

// AxisTracks is the parsed track list of one axis. AutoRepeat, when set,
// is expanded after the explicit Tracks once the available size is known.
type AxisTracks struct {
	Tracks     []GridTrack
	Gap        float64
	AutoRepeat *TrackRepeat
}

// Count is the number of explicit tracks before auto-repeat expansion.
func (at AxisTracks) Count() int { return len(at.Tracks) }

// IsAutoFit reports whether the axis carries a repeat(auto-fit, …).
func (at AxisTracks) IsAutoFit() bool {
	return at.AutoRepeat != nil && at.AutoRepeat.Kind == RepeatAutoFit
}

// Line is a grid-row-start style placement value. Index 0 with Span 0 is
// auto. Negative indices count back from the last explicit line.
type Line struct {
	Index int
	Span  int
}

func (l Line) IsAuto() bool { return l.Index == 0 && l.Span == 0 }

// IsDefinite reports whether the line names a specific grid line.
func (l Line) IsDefinite() bool { return l.Index != 0 }

// GridItem is one grid item: its placement properties and the content
// sizes the track sizing algorithm needs.
type GridItem struct {
	Handle   Handle
	RowStart Line
	RowEnd   Line
	ColStart Line
	ColEnd   Line

	MinContentWidth  float64
	MaxContentWidth  float64
	MinContentHeight float64
	MaxContentHeight float64

	// Width and Height are explicit border-box sizes. An item with an
	// explicit size is not stretched.
	Width     float64
	Height    float64
	HasWidth  bool
	HasHeight bool

	JustifySelf Alignment
	AlignSelf   Alignment
}

func NewItem(h Handle) GridItem { return GridItem{Handle: h} }

func (it GridItem) HasExplicitRowPlacement() bool {
	return it.RowStart.IsDefinite() || it.RowEnd.IsDefinite()
}

func (it GridItem) HasExplicitColPlacement() bool {
	return it.ColStart.IsDefinite() || it.ColEnd.IsDefinite()
}

// GridArea is the region an item occupies. Lines are 1-indexed and the end
// lines are exclusive.
type GridArea struct {
	RowStart int
	RowEnd   int
	ColStart int
	ColEnd   int
}

func (a GridArea) RowSpan() int { return max(a.RowEnd-a.RowStart, 0) }
func (a GridArea) ColSpan() int { return max(a.ColEnd-a.ColStart, 0) }

// Overlaps reports whether the two areas share at least one cell.
func (a GridArea) Overlaps(b GridArea) bool {
	return a.RowStart < b.RowEnd && a.RowEnd > b.RowStart &&
		a.ColStart < b.ColEnd && a.ColEnd > b.ColStart
}

// span returns the start and end lines of the area along axis.
func (a GridArea) span(axis Axis) (int, int) {
	if axis == AxisRow {
		return a.RowStart, a.RowEnd
	}
	return a.ColStart, a.ColEnd
}

// covers reports whether the area occupies track idx (0-based) on axis.
func (a GridArea) covers(axis Axis, idx int) bool {
	start, end := a.span(axis)
	line := idx + 1
	return start <= line && end > line
}

func (a GridArea) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", a.RowStart, a.RowEnd, a.ColStart, a.ColEnd)
}

// Alignment positions an item inside its grid area along one axis.
// AlignmentAuto defers to the container's justify-items or align-items.
type Alignment int

const (
	AlignmentAuto Alignment = iota
	AlignmentStart
	AlignmentEnd
	AlignmentCenter
	AlignmentStretch
)
