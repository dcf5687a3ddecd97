package flexbox

import "math"

// epsilon is the tolerance for deciding an item has hit its clamp.
const epsilon = 1e-6

// Clamp limits v to [lo, hi]. An inverted range yields its midpoint rather
// than favoring either bound.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Min(math.Max(v, lo), hi)
}

// DistributeGrow hands freeSpace (>= 0) to items in proportion to their
// flex-grow factors. An item that reaches its max is frozen and the space
// it could not take is shared among the rest on the next round. sizes is
// updated in place.
func DistributeGrow(freeSpace float64, items []FlexChild, sizes []float64) {
	remaining := freeSpace
	frozen := make([]bool, len(items))
	for range items {
		sumGrow := 0.0
		for i, it := range items {
			if !frozen[i] {
				sumGrow += math.Max(it.FlexGrow, 0)
			}
		}
		if sumGrow <= 0 || remaining <= 0 {
			return
		}

		share := remaining / sumGrow
		anyFrozen := false
		applied := 0.0
		for i, it := range items {
			if frozen[i] {
				continue
			}
			grown := sizes[i] + math.Max(it.FlexGrow, 0)*share
			clamped := Clamp(grown, it.MinMain, it.MaxMain)
			applied += clamped - sizes[i]
			sizes[i] = clamped
			if math.Abs(clamped-it.MaxMain) < epsilon {
				frozen[i] = true
				anyFrozen = true
			}
		}
		remaining -= applied
		if !anyFrozen {
			return
		}
	}
}

// DistributeShrink removes -freeSpace (freeSpace <= 0) from items, each
// giving up space in proportion to flex-shrink times its current size.
// Items that bottom out at their min are frozen and the rest absorb the
// remainder on the next round. sizes is updated in place.
func DistributeShrink(freeSpace float64, items []FlexChild, sizes []float64) {
	remaining := -freeSpace
	frozen := make([]bool, len(items))
	for range items {
		sumWeight := 0.0
		for i, it := range items {
			if !frozen[i] {
				sumWeight += math.Max(sizes[i], 0) * math.Max(it.FlexShrink, 0)
			}
		}
		if sumWeight <= 0 || remaining <= 0 {
			return
		}

		anyFrozen := false
		applied := 0.0
		for i, it := range items {
			if frozen[i] {
				continue
			}
			weight := math.Max(sizes[i], 0) * math.Max(it.FlexShrink, 0)
			shrunk := math.Max(sizes[i]-remaining*(weight/sumWeight), 0)
			clamped := Clamp(shrunk, it.MinMain, it.MaxMain)
			applied += sizes[i] - clamped
			sizes[i] = clamped
			if math.Abs(clamped-it.MinMain) < epsilon {
				frozen[i] = true
				anyFrozen = true
			}
		}
		remaining -= applied
		if !anyFrozen {
			return
		}
	}
}
