package layout

import (
	"l14layout/pkg/css"
	"l14layout/pkg/html"
	"l14layout/pkg/unit"
)

// FloatExclusion is the margin box of one placed float, in BFC coordinates.
type FloatExclusion struct {
	NodeID      html.NodeID
	InlineStart unit.LayoutUnit
	InlineEnd   unit.LayoutUnit
	BlockStart  unit.LayoutUnit
	BlockEnd    unit.LayoutUnit
	Side        css.FloatType
}

// FloatSize is the margin-box size of a float being registered.
type FloatSize struct {
	InlineSize unit.LayoutUnit
	BlockSize  unit.LayoutUnit
	Side       css.FloatType
}

// ExclusionSpace tracks the floats of one block formatting context.
//
// Floats are appended per side in placement order and never re-sorted;
// lastShelfOffset is the running maximum of every float's BlockEnd. The
// type has value semantics: AddFloat returns a new space and leaves the
// receiver untouched, so a sibling only ever sees its predecessors' floats.
type ExclusionSpace struct {
	left            []FloatExclusion
	right           []FloatExclusion
	lastShelfOffset unit.LayoutUnit
}

// AddFloat returns a copy of the space with the float registered. The
// offset is the top-left of the float's margin box.
func (es ExclusionSpace) AddFloat(node html.NodeID, offset BfcOffset, size FloatSize) ExclusionSpace {
	blockStart := offset.BlockOffset.Or(unit.Zero)
	excl := FloatExclusion{
		NodeID:      node,
		InlineStart: offset.InlineOffset,
		InlineEnd:   offset.InlineOffset.Add(size.InlineSize),
		BlockStart:  blockStart,
		BlockEnd:    blockStart.Add(size.BlockSize),
		Side:        size.Side,
	}

	next := ExclusionSpace{
		left:            es.left,
		right:           es.right,
		lastShelfOffset: unit.MaxOf(es.lastShelfOffset, excl.BlockEnd),
	}
	// Full slice expressions force append to copy instead of writing into
	// a backing array a sibling space may share.
	switch size.Side {
	case css.FloatLeft:
		next.left = append(es.left[:len(es.left):len(es.left)], excl)
	case css.FloatRight:
		next.right = append(es.right[:len(es.right):len(es.right)], excl)
	}
	return next
}

// AvailableInlineSizeAtOffset returns the start offset and width of the
// space left between floats at blockOffset, for a container spanning
// [0, containerInlineSize). Only floats with start <= y < end count.
func (es ExclusionSpace) AvailableInlineSizeAtOffset(blockOffset, containerInlineSize unit.LayoutUnit) (unit.LayoutUnit, unit.LayoutUnit) {
	return es.spanAt(blockOffset, unit.Zero, containerInlineSize)
}

// spanAt is AvailableInlineSizeAtOffset for a container spanning
// [start, end) of the formatting context.
func (es ExclusionSpace) spanAt(y, start, end unit.LayoutUnit) (unit.LayoutUnit, unit.LayoutUnit) {
	leftEdge := start
	for _, f := range es.left {
		if straddles(f, y) {
			leftEdge = unit.MaxOf(leftEdge, f.InlineEnd)
		}
	}
	rightEdge := end
	for _, f := range es.right {
		if straddles(f, y) {
			rightEdge = unit.MinOf(rightEdge, f.InlineStart)
		}
	}
	return leftEdge, rightEdge.Sub(leftEdge).ClampNonNegative()
}

func straddles(f FloatExclusion, y unit.LayoutUnit) bool {
	return f.BlockStart.LessEqual(y) && y.Less(f.BlockEnd)
}

// ClearanceOffset returns the block offset a box with the given clear value
// must start at or below.
func (es ExclusionSpace) ClearanceOffset(clear css.ClearType) unit.LayoutUnit {
	switch clear {
	case css.ClearLeft:
		return maxBlockEnd(es.left)
	case css.ClearRight:
		return maxBlockEnd(es.right)
	case css.ClearBoth:
		return es.lastShelfOffset
	}
	return unit.Zero
}

func maxBlockEnd(floats []FloatExclusion) unit.LayoutUnit {
	end := unit.Zero
	for _, f := range floats {
		end = unit.MaxOf(end, f.BlockEnd)
	}
	return end
}

// HasFloatsAfter reports whether any float extends below blockOffset.
func (es ExclusionSpace) HasFloatsAfter(blockOffset unit.LayoutUnit) bool {
	for _, f := range es.AllFloats() {
		if f.BlockEnd.Greater(blockOffset) {
			return true
		}
	}
	return false
}

// LastFloatBottom is the lowest float bottom edge seen so far.
func (es ExclusionSpace) LastFloatBottom() unit.LayoutUnit {
	return es.lastShelfOffset
}

// AllFloats returns left floats then right floats, each in placement order.
func (es ExclusionSpace) AllFloats() []FloatExclusion {
	all := make([]FloatExclusion, 0, len(es.left)+len(es.right))
	all = append(all, es.left...)
	return append(all, es.right...)
}

func (es ExclusionSpace) IsEmpty() bool {
	return len(es.left) == 0 && len(es.right) == 0
}

// highestFloatTop is the largest BlockStart of any float. A new float may
// not be placed above an earlier one.
func (es ExclusionSpace) highestFloatTop() unit.LayoutUnit {
	top := unit.Zero
	for _, f := range es.AllFloats() {
		top = unit.MaxOf(top, f.BlockStart)
	}
	return top
}

// FloatDropOffset returns the first block offset at or below y where a float
// with the given margin-box inline size fits beside the existing floats. It
// steps through float bottom edges; once no float remains below the cursor
// the float fits by definition.
func (es ExclusionSpace) FloatDropOffset(y, inlineSize, containerInlineSize unit.LayoutUnit) unit.LayoutUnit {
	return es.dropOffset(y, inlineSize, unit.Zero, containerInlineSize)
}

func (es ExclusionSpace) dropOffset(y, inlineSize, start, end unit.LayoutUnit) unit.LayoutUnit {
	if !end.Greater(start) {
		return y
	}
	for {
		_, avail := es.spanAt(y, start, end)
		if inlineSize.LessEqual(avail) || !es.HasFloatsAfter(y) {
			return y
		}
		next := unit.Max
		for _, f := range es.AllFloats() {
			if f.BlockEnd.Greater(y) {
				next = unit.MinOf(next, f.BlockEnd)
			}
		}
		y = next
	}
}
