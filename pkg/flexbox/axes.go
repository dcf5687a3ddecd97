package flexbox

import (
	"sort"

	"l14layout/pkg/css"
)

// Axes says which logical axis the main axis runs along and whether items
// run against it.
type Axes struct {
	MainIsInline bool
	MainReverse  bool
}

// ResolveAxes maps flex-direction and writing mode to axes. Row directions
// always run along the inline axis. Column directions run along the block
// axis in horizontal writing modes and along the inline axis in vertical
// ones. The -reverse variants only flip the iteration direction.
func ResolveAxes(direction css.FlexDirection, wm css.WritingMode) Axes {
	reverse := direction == css.FlexDirectionRowReverse || direction == css.FlexDirectionColumnReverse
	switch direction {
	case css.FlexDirectionColumn, css.FlexDirectionColumnReverse:
		return Axes{MainIsInline: wm.IsVertical(), MainReverse: reverse}
	}
	return Axes{MainIsInline: true, MainReverse: reverse}
}

// OrderedItem is an item handle with its order property.
type OrderedItem struct {
	Handle Handle
	Order  int
}

// SortByOrder returns handles sorted by (order, input index). Items with
// equal order keep their input order.
func SortByOrder(items []OrderedItem) []Handle {
	sorted := make([]OrderedItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	out := make([]Handle, len(sorted))
	for i, it := range sorted {
		out[i] = it.Handle
	}
	return out
}
