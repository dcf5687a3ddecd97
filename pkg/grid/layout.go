package grid

import (
	"math"

	"go.uber.org/zap"

	"l14layout/pkg/css"
	"l14layout/pkg/unit"
)

// ContainerInputs describes a grid container to Layout. AvailableWidth is
// the container's content-box width; it is treated as definite unless
// WidthIndefinite is set, as it is when the container is being measured
// for its max-content size. Rows see a definite size only when
// HasExplicitHeight is set, and only then does leftover row space go to
// auto rows.
type ContainerInputs struct {
	Rows     AxisTracks
	Columns  AxisTracks
	AutoFlow css.GridAutoFlow

	AvailableWidth    float64
	AvailableHeight   float64
	WidthIndefinite   bool
	HasExplicitHeight bool

	AlignItems   Alignment
	JustifyItems Alignment
}

// PlacedItem is an item's final border-box rectangle relative to the
// container's content box, plus the area it occupies.
type PlacedItem struct {
	Handle Handle
	X      float64
	Y      float64
	Width  float64
	Height float64
	Area   GridArea

	// AreaWidth and AreaHeight are the size of the item's grid area.
	AreaWidth  float64
	AreaHeight float64
}

// LayoutResult is the output of Layout.
type LayoutResult struct {
	Items       []PlacedItem
	TotalWidth  float64
	TotalHeight float64
	Columns     ResolvedTrackSizes
	Rows        ResolvedTrackSizes
}

// Layout places items, sizes columns then rows, and positions every item
// inside its area with justify-items and align-items.
func Layout(items []GridItem, in ContainerInputs) (*LayoutResult, error) {
	colAvail := in.AvailableWidth
	if in.WidthIndefinite {
		colAvail = 0
	}
	rowAvail := 0.0
	if in.HasExplicitHeight {
		rowAvail = in.AvailableHeight
	}

	// Auto repetitions must be expanded before placement, otherwise the
	// cursor wraps against the unexpanded track count.
	colTracks := ExpandAutoRepeat(in.Columns, colAvail)
	rowTracks := ExpandAutoRepeat(in.Rows, rowAvail)

	placements, err := PlaceItems(items, len(rowTracks), len(colTracks), in.AutoFlow)
	if err != nil {
		return nil, err
	}

	colTracks = AddImplicitTracks(colTracks, placements, AxisColumn)
	rowTracks = AddImplicitTracks(rowTracks, placements, AxisRow)
	if in.Columns.IsAutoFit() {
		colTracks, placements = CollapseAutoFit(colTracks, placements, AxisColumn)
	}
	if in.Rows.IsAutoFit() {
		rowTracks, placements = CollapseAutoFit(rowTracks, placements, AxisRow)
	}

	cols := ResolveTrackSizes(SizingInput{
		Tracks:     colTracks,
		Gap:        in.Columns.Gap,
		Available:  colAvail,
		Definite:   !in.WidthIndefinite,
		Items:      items,
		Placements: placements,
		Axis:       AxisColumn,
	})
	rows := ResolveTrackSizes(SizingInput{
		Tracks:         rowTracks,
		Gap:            in.Rows.Gap,
		Available:      rowAvail,
		Definite:       in.HasExplicitHeight,
		Items:          items,
		Placements:     placements,
		Axis:           AxisRow,
		DistributeAuto: in.HasExplicitHeight,
	})

	if ce := log().Check(zap.DebugLevel, "tracks sized"); ce != nil {
		ce.Write(
			zap.Int("items", len(items)),
			zap.Int("columns", cols.Count()),
			zap.Int("rows", rows.Count()),
			zap.Float64("width", cols.Total(in.Columns.Gap)),
			zap.Float64("height", rows.Total(in.Rows.Gap)))
	}

	res := &LayoutResult{
		Items:       make([]PlacedItem, len(items)),
		TotalWidth:  cols.Total(in.Columns.Gap),
		TotalHeight: rows.Total(in.Rows.Gap),
		Columns:     cols,
		Rows:        rows,
	}
	for i, it := range items {
		area := placements[i]
		areaX := cols.LineOffset(area.ColStart, in.Columns.Gap)
		areaW := cols.SpanSize(area.ColStart, area.ColEnd, in.Columns.Gap)
		areaY := rows.LineOffset(area.RowStart, in.Rows.Gap)
		areaH := rows.SpanSize(area.RowStart, area.RowEnd, in.Rows.Gap)

		justify := resolveAlignment(it.JustifySelf, in.JustifyItems)
		x, w := alignInArea(justify, areaW, it.HasWidth, it.Width, it.MinContentWidth, it.MaxContentWidth)
		align := resolveAlignment(it.AlignSelf, in.AlignItems)
		y, h := alignInArea(align, areaH, it.HasHeight, it.Height, it.MaxContentHeight, it.MaxContentHeight)

		res.Items[i] = PlacedItem{
			Handle:     it.Handle,
			X:          unit.Quantize(areaX + x),
			Y:          unit.Quantize(areaY + y),
			Width:      unit.Quantize(w),
			Height:     unit.Quantize(h),
			Area:       area,
			AreaWidth:  areaW,
			AreaHeight: areaH,
		}
	}
	return res, nil
}

func resolveAlignment(self, container Alignment) Alignment {
	if self != AlignmentAuto {
		return self
	}
	if container == AlignmentAuto {
		return AlignmentStretch
	}
	return container
}

// alignInArea returns the item's offset within its area and its size along
// one axis. Stretch fills the area unless the item has an explicit size;
// other alignments size the item to fit-content and move it.
func alignInArea(a Alignment, area float64, hasFixed bool, fixed, minContent, maxContent float64) (float64, float64) {
	var size float64
	switch {
	case hasFixed:
		size = fixed
	case a == AlignmentStretch:
		return 0, area
	default:
		size = math.Min(maxContent, math.Max(minContent, area))
	}

	switch a {
	case AlignmentEnd:
		return area - size, size
	case AlignmentCenter:
		return (area - size) / 2, size
	}
	return 0, size
}

// AlignmentFromCSS maps justify-items/align-items style values onto grid
// alignment. Baseline values align like start.
func AlignmentFromCSS(a css.AlignItems) Alignment {
	switch a {
	case css.AlignAuto:
		return AlignmentAuto
	case css.AlignStretch:
		return AlignmentStretch
	case css.AlignCenter:
		return AlignmentCenter
	case css.AlignFlexEnd, css.AlignLastBaseline:
		return AlignmentEnd
	}
	return AlignmentStart
}
