package grid

import "l14layout/pkg/css"

// PlaceItems assigns every item a grid area, in source order.
//
// An item with any definite row or column line is placed there; a missing
// end line defaults to start+1 (or start+span), and the other axis, if
// auto, takes the auto-flow cursor's position without moving it. Every
// other item goes at the cursor, which then advances by the item's span
// along the flow direction and wraps past the last explicit track. Dense
// flows are packed like their sparse counterparts.
//
// The error return is reserved; placement currently always succeeds.
func PlaceItems(items []GridItem, explicitRows, explicitCols int, flow css.GridAutoFlow) ([]GridArea, error) {
	// The cursor wraps after at least one track; negative lines count from
	// the real explicit end.
	rowCount := max(explicitRows, 1)
	colCount := max(explicitCols, 1)
	columnFlow := flow == css.GridAutoFlowColumn || flow == css.GridAutoFlowColumnDense

	placements := make([]GridArea, 0, len(items))
	cursorRow, cursorCol := 1, 1
	for _, it := range items {
		if it.HasExplicitRowPlacement() || it.HasExplicitColPlacement() {
			rs, re := resolveLines(it.RowStart, it.RowEnd, explicitRows, cursorRow)
			cs, ce := resolveLines(it.ColStart, it.ColEnd, explicitCols, cursorCol)
			placements = append(placements, GridArea{RowStart: rs, RowEnd: re, ColStart: cs, ColEnd: ce})
			continue
		}

		rowSpan := autoSpan(it.RowStart, it.RowEnd)
		colSpan := autoSpan(it.ColStart, it.ColEnd)
		if columnFlow {
			if cursorRow > 1 && cursorRow+rowSpan-1 > rowCount {
				cursorRow, cursorCol = 1, cursorCol+1
			}
		} else if cursorCol > 1 && cursorCol+colSpan-1 > colCount {
			cursorRow, cursorCol = cursorRow+1, 1
		}

		placements = append(placements, GridArea{
			RowStart: cursorRow,
			RowEnd:   cursorRow + rowSpan,
			ColStart: cursorCol,
			ColEnd:   cursorCol + colSpan,
		})

		if columnFlow {
			cursorRow += rowSpan
			if cursorRow > rowCount {
				cursorRow, cursorCol = 1, cursorCol+1
			}
		} else {
			cursorCol += colSpan
			if cursorCol > colCount {
				cursorRow, cursorCol = cursorRow+1, 1
			}
		}
	}
	return placements, nil
}

// resolveLines turns a start/end pair into concrete lines. An axis with no
// definite line starts at fallback. The result always spans at least one
// track and never starts before line 1.
func resolveLines(start, end Line, explicitCount, fallback int) (int, int) {
	var s, e int
	switch {
	case start.IsDefinite():
		s = resolveIndex(start.Index, explicitCount)
		switch {
		case end.IsDefinite():
			e = resolveIndex(end.Index, explicitCount)
		case end.Span > 0:
			e = s + end.Span
		default:
			e = s + 1
		}
	case end.IsDefinite():
		e = resolveIndex(end.Index, explicitCount)
		s = e - max(start.Span, 1)
	default:
		s = fallback
		e = s + autoSpan(start, end)
	}
	s = max(s, 1)
	e = max(e, s+1)
	return s, e
}

// resolveIndex maps a line number to a positive line; -1 is the last
// explicit line.
func resolveIndex(idx, explicitCount int) int {
	if idx < 0 {
		idx = explicitCount + 2 + idx
	}
	return max(idx, 1)
}

func autoSpan(start, end Line) int {
	return max(start.Span, end.Span, 1)
}
