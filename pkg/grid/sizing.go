package grid

import "math"

// ResolvedTrackSizes holds the outcome of track sizing for one axis.
type ResolvedTrackSizes struct {
	BaseSizes    []float64
	GrowthLimits []float64
}

func newResolved(n int) ResolvedTrackSizes {
	r := ResolvedTrackSizes{BaseSizes: make([]float64, n), GrowthLimits: make([]float64, n)}
	for i := range r.GrowthLimits {
		r.GrowthLimits[i] = math.Inf(1)
	}
	return r
}

func (r ResolvedTrackSizes) Count() int { return len(r.BaseSizes) }

// FinalSize is the used size of track i: its base size, capped by its
// growth limit. Out-of-range tracks are zero.
func (r ResolvedTrackSizes) FinalSize(i int) float64 {
	if i < 0 || i >= len(r.BaseSizes) {
		return 0
	}
	return math.Min(r.BaseSizes[i], r.GrowthLimits[i])
}

// Total is the sum of all tracks plus the gaps between them.
func (r ResolvedTrackSizes) Total(gap float64) float64 {
	total := 0.0
	for i := range r.BaseSizes {
		total += r.FinalSize(i)
	}
	if n := len(r.BaseSizes); n > 1 {
		total += gap * float64(n-1)
	}
	return total
}

// LineOffset is the position of grid line (1-indexed) from the start of
// the first track.
func (r ResolvedTrackSizes) LineOffset(line int, gap float64) float64 {
	pos := 0.0
	for i := 0; i < line-1 && i < len(r.BaseSizes); i++ {
		pos += r.FinalSize(i) + gap
	}
	return pos
}

// SpanSize is the size of the tracks between lines start and end,
// including the gaps inside the span.
func (r ResolvedTrackSizes) SpanSize(start, end int, gap float64) float64 {
	size := 0.0
	for i := start - 1; i < end-1 && i < len(r.BaseSizes); i++ {
		if i < 0 {
			continue
		}
		if i > start-1 {
			size += gap
		}
		size += r.FinalSize(i)
	}
	return size
}

// SizingInput is everything ResolveTrackSizes needs for one axis. Tracks is
// the final track list: expanded, extended with implicit tracks and
// collapsed. Definite is false when the axis has no definite available
// size; percentages then behave as auto and fr tracks size to content.
type SizingInput struct {
	Tracks         []GridTrack
	Gap            float64
	Available      float64
	Definite       bool
	Items          []GridItem
	Placements     []GridArea
	Axis           Axis
	DistributeAuto bool
}

// FlexTrack is an fr track waiting for leftover space. Min is the
// minmax() minimum it may not shrink below.
type FlexTrack struct {
	Index  int
	Factor float64
	Min    float64
}

// ResolveTrackSizes runs the track sizing algorithm for one axis:
//  1. resolve every non-flexible track and collect the flexible ones;
//  2. grow tracks with a finite growth limit toward it;
//  3. share what is left among fr tracks by flex factor;
//  4. with DistributeAuto and no fr tracks, stretch auto tracks evenly.
func ResolveTrackSizes(in SizingInput) ResolvedTrackSizes {
	resolved := newResolved(len(in.Tracks))
	gaps := 0.0
	if n := len(in.Tracks); n > 1 {
		gaps = in.Gap * float64(n-1)
	}
	forTracks := in.Available - gaps

	remaining := forTracks
	flex, auto := ResolveNonFlexTracks(in, forTracks, &resolved, &remaining)
	if !in.Definite {
		return resolved
	}

	if remaining > 0 {
		remaining -= maximizeTracks(&resolved, remaining)
	}
	if len(flex) > 0 {
		distributeFlexSpace(&resolved, flex, remaining)
		return resolved
	}
	if in.DistributeAuto && remaining > 0 {
		distributeAutoSpace(&resolved, auto, remaining)
	}
	return resolved
}

// ResolveNonFlexTracks sizes every track whose size does not depend on
// leftover space and subtracts it from *remaining. It returns the fr
// tracks, deferred for distribution, and the content-sized tracks.
// A minmax() track with an fr maximum starts at its minimum but does not
// reduce *remaining; its share of the fr space replaces the minimum.
func ResolveNonFlexTracks(in SizingInput, forTracks float64, resolved *ResolvedTrackSizes, remaining *float64) ([]FlexTrack, []int) {
	var flex []FlexTrack
	var auto []int

	for idx, tr := range in.Tracks {
		size := tr.Size
		switch size.Kind {
		case SizeFitContent:
			content := contribution(in, idx, BreadthMaxContent)
			limit := content
			if l, ok := definiteBreadth(size.Max, forTracks, in.Definite); ok {
				limit = math.Min(content, math.Max(contribution(in, idx, BreadthMinContent), l))
			}
			resolved.BaseSizes[idx] = limit
			resolved.GrowthLimits[idx] = limit
			*remaining -= limit
			auto = append(auto, idx)

		case SizeMinMax:
			base := minBreadthSize(in, idx, size.Min, forTracks)
			resolved.BaseSizes[idx] = base
			if size.Max.IsFlexible() {
				if in.Definite {
					flex = append(flex, FlexTrack{Index: idx, Factor: size.Max.Value, Min: base})
				} else {
					resolved.BaseSizes[idx] = math.Max(base, contribution(in, idx, BreadthMaxContent))
					resolved.GrowthLimits[idx] = resolved.BaseSizes[idx]
				}
				continue
			}
			resolved.GrowthLimits[idx] = math.Max(maxBreadthSize(in, idx, size.Max, forTracks), base)
			*remaining -= base

		default:
			b := size.Min
			if b.IsFlexible() {
				if in.Definite {
					flex = append(flex, FlexTrack{Index: idx, Factor: b.Value})
				} else {
					content := contribution(in, idx, BreadthMaxContent)
					resolved.BaseSizes[idx] = content
					resolved.GrowthLimits[idx] = content
				}
				continue
			}
			if v, ok := definiteBreadth(b, forTracks, in.Definite); ok {
				resolved.BaseSizes[idx] = v
				resolved.GrowthLimits[idx] = v
				*remaining -= v
				continue
			}
			content := contribution(in, idx, b.Kind)
			resolved.BaseSizes[idx] = content
			resolved.GrowthLimits[idx] = content
			*remaining -= content
			auto = append(auto, idx)
		}
	}
	return flex, auto
}

// definiteBreadth resolves fixed and percentage breadths. Percentages
// against an indefinite size are not definite.
func definiteBreadth(b TrackBreadth, forTracks float64, definite bool) (float64, bool) {
	switch b.Kind {
	case BreadthLength:
		return b.Value, true
	case BreadthPercentage:
		if definite {
			return b.Value * forTracks, true
		}
	}
	return 0, false
}

func minBreadthSize(in SizingInput, idx int, b TrackBreadth, forTracks float64) float64 {
	if v, ok := definiteBreadth(b, forTracks, in.Definite); ok {
		return v
	}
	switch b.Kind {
	case BreadthAuto, BreadthMaxContent, BreadthMinContent:
		return contribution(in, idx, b.Kind)
	}
	return 0
}

func maxBreadthSize(in SizingInput, idx int, b TrackBreadth, forTracks float64) float64 {
	if v, ok := definiteBreadth(b, forTracks, in.Definite); ok {
		return v
	}
	return contribution(in, idx, b.Kind)
}

// contribution is the largest content size among items occupying track
// idx, with items that span several tracks contributing an equal share to
// each. min-content tracks use the items' min-content sizes; auto and
// max-content tracks use max-content.
func contribution(in SizingInput, idx int, kind BreadthKind) float64 {
	best := 0.0
	for i, area := range in.Placements {
		if i >= len(in.Items) || !area.covers(in.Axis, idx) {
			continue
		}
		it := in.Items[i]
		var size float64
		switch {
		case in.Axis == AxisRow && kind == BreadthMinContent:
			size = it.MinContentHeight
		case in.Axis == AxisRow:
			size = it.MaxContentHeight
		case kind == BreadthMinContent:
			size = it.MinContentWidth
		default:
			size = it.MaxContentWidth
		}
		start, end := area.span(in.Axis)
		if span := end - start; span > 1 {
			size /= float64(span)
		}
		best = math.Max(best, size)
	}
	return best
}

// maximizeTracks shares free space equally among tracks whose growth
// limit exceeds their base size, never past the limit. It returns the
// space used.
func maximizeTracks(resolved *ResolvedTrackSizes, free float64) float64 {
	used := 0.0
	for free-used > 1e-9 {
		var growable []int
		for i := range resolved.BaseSizes {
			lim := resolved.GrowthLimits[i]
			if !math.IsInf(lim, 1) && lim > resolved.BaseSizes[i] {
				growable = append(growable, i)
			}
		}
		if len(growable) == 0 {
			break
		}
		share := (free - used) / float64(len(growable))
		for _, i := range growable {
			grow := math.Min(share, resolved.GrowthLimits[i]-resolved.BaseSizes[i])
			resolved.BaseSizes[i] += grow
			used += grow
		}
	}
	return used
}

// distributeFlexSpace sizes fr tracks from the space left over. A track
// whose share would fall below its minmax() minimum is frozen at that
// minimum and the rest is shared again among the others.
func distributeFlexSpace(resolved *ResolvedTrackSizes, flex []FlexTrack, remaining float64) {
	active := flex
	for len(active) > 0 {
		total := 0.0
		for _, f := range active {
			total += f.Factor
		}
		if total <= 0 || remaining <= 0 {
			for _, f := range active {
				resolved.BaseSizes[f.Index] = f.Min
				resolved.GrowthLimits[f.Index] = f.Min
			}
			return
		}
		// Factors summing below 1 leave part of the space unused.
		perFr := remaining / math.Max(total, 1)

		var next []FlexTrack
		for _, f := range active {
			if f.Factor*perFr < f.Min {
				resolved.BaseSizes[f.Index] = f.Min
				resolved.GrowthLimits[f.Index] = f.Min
				remaining -= f.Min
				continue
			}
			next = append(next, f)
		}
		if len(next) == len(active) {
			for _, f := range active {
				resolved.BaseSizes[f.Index] = f.Factor * perFr
				resolved.GrowthLimits[f.Index] = f.Factor * perFr
			}
			return
		}
		active = next
	}
}

// distributeAutoSpace adds an equal share of free space to each auto track.
func distributeAutoSpace(resolved *ResolvedTrackSizes, auto []int, free float64) {
	if len(auto) == 0 || free <= 0 {
		return
	}
	each := free / float64(len(auto))
	for _, idx := range auto {
		resolved.BaseSizes[idx] += each
		resolved.GrowthLimits[idx] += each
	}
}
