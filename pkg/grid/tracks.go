package grid

import "math"

// ExpandAutoRepeat materializes the axis's explicit track list. A
// repeat(auto-fill|auto-fit, …) pattern is copied as many whole times as
// fit in available, with one gap per repetition, and at least once. The
// repetition's size is the sum of its tracks' minimum breadths, with
// intrinsic and flexible minimums counting as zero.
func ExpandAutoRepeat(at AxisTracks, available float64) []GridTrack {
	expanded := make([]GridTrack, len(at.Tracks), len(at.Tracks)+1)
	copy(expanded, at.Tracks)

	rep := at.AutoRepeat
	if rep == nil || len(rep.Tracks) == 0 {
		return expanded
	}
	if rep.Kind == RepeatCount {
		for range max(rep.Count, 1) {
			for _, size := range rep.Tracks {
				expanded = append(expanded, GridTrack{Size: size, Type: Explicit})
			}
		}
		return expanded
	}

	repeatSize := 0.0
	for _, size := range rep.Tracks {
		switch b := size.MinBreadth(); b.Kind {
		case BreadthLength:
			repeatSize += b.Value
		case BreadthPercentage:
			repeatSize += b.Value * available
		}
	}

	repetitions := 1
	if repeatSize > 0 {
		repetitions = max(int(math.Floor((available+at.Gap)/(repeatSize+at.Gap))), 1)
	}
	for range repetitions {
		for _, size := range rep.Tracks {
			expanded = append(expanded, GridTrack{Size: size, Type: Explicit, FromAutoRepeat: true})
		}
	}
	return expanded
}

// AddImplicitTracks appends auto tracks until the list covers the highest
// end line of any placement on axis.
func AddImplicitTracks(tracks []GridTrack, placements []GridArea, axis Axis) []GridTrack {
	maxLine := 1
	for _, a := range placements {
		_, end := a.span(axis)
		maxLine = max(maxLine, end)
	}
	for len(tracks) < maxLine-1 {
		tracks = append(tracks, GridTrack{Size: Breadth(Auto()), Type: Implicit})
	}
	return tracks
}

// CollapseAutoFit removes auto-fit tracks that no item occupies and
// renumbers placements to the surviving tracks. At least one track always
// remains. Placements are returned unchanged when nothing collapses.
func CollapseAutoFit(tracks []GridTrack, placements []GridArea, axis Axis) ([]GridTrack, []GridArea) {
	kept := make([]GridTrack, 0, len(tracks))
	// lineMap[i] is the new number of old line i+1.
	lineMap := make([]int, len(tracks)+1)
	collapsed := false
	for i, tr := range tracks {
		lineMap[i] = len(kept) + 1
		if tr.FromAutoRepeat && !occupied(placements, axis, i) {
			collapsed = true
			continue
		}
		kept = append(kept, tr)
	}
	lineMap[len(tracks)] = len(kept) + 1

	if !collapsed {
		return tracks, placements
	}
	if len(kept) == 0 {
		kept = append(kept, GridTrack{Size: Breadth(Auto()), Type: Explicit})
	}

	remap := func(line int) int {
		if line-1 < len(lineMap) {
			return lineMap[line-1]
		}
		return line - (len(tracks) - len(kept))
	}
	out := make([]GridArea, len(placements))
	for i, a := range placements {
		if axis == AxisRow {
			a.RowStart, a.RowEnd = remap(a.RowStart), remap(a.RowEnd)
		} else {
			a.ColStart, a.ColEnd = remap(a.ColStart), remap(a.ColEnd)
		}
		out[i] = a
	}
	return kept, out
}

func occupied(placements []GridArea, axis Axis, idx int) bool {
	for _, a := range placements {
		if a.covers(axis, idx) {
			return true
		}
	}
	return false
}
