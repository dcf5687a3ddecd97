package layout

import (
	"fmt"

	"l14layout/pkg/unit"
)

// AvailableSizeKind tags an AvailableSize.
type AvailableSizeKind int

const (
	SizeDefinite AvailableSizeKind = iota
	SizeIndefinite
	SizeMinContent
	SizeMaxContent
)

// AvailableSize is the space a parent offers a child along one axis. Only
// Definite sizes carry a value.
type AvailableSize struct {
	Kind  AvailableSizeKind
	Value unit.LayoutUnit
}

// Definite returns a definite available size.
func Definite(v unit.LayoutUnit) AvailableSize {
	return AvailableSize{Kind: SizeDefinite, Value: v}
}

// DefinitePx is Definite for a pixel value.
func DefinitePx(px float64) AvailableSize {
	return Definite(unit.FromPx(px))
}

var (
	Indefinite = AvailableSize{Kind: SizeIndefinite}
	MinContent = AvailableSize{Kind: SizeMinContent}
	MaxContent = AvailableSize{Kind: SizeMaxContent}
)

func (a AvailableSize) IsDefinite() bool { return a.Kind == SizeDefinite }

// Resolve returns the definite value, or fallback for every other kind.
func (a AvailableSize) Resolve(fallback unit.LayoutUnit) unit.LayoutUnit {
	if a.Kind == SizeDefinite {
		return a.Value
	}
	return fallback
}

func (a AvailableSize) String() string {
	switch a.Kind {
	case SizeDefinite:
		return fmt.Sprintf("definite(%s)", a.Value)
	case SizeMinContent:
		return "min-content"
	case SizeMaxContent:
		return "max-content"
	}
	return "indefinite"
}

// BfcOffset is a position inside a block formatting context. A None block
// offset has not been resolved by margin collapsing yet.
type BfcOffset struct {
	InlineOffset unit.LayoutUnit
	BlockOffset  unit.Maybe
}

// RootBfcOffset is the origin of a formatting context, (0, Some 0).
func RootBfcOffset() BfcOffset {
	return BfcOffset{BlockOffset: unit.Some(unit.Zero)}
}

func (o BfcOffset) IsResolved() bool { return o.BlockOffset.IsSome() }

func (o BfcOffset) String() string {
	return fmt.Sprintf("(%s, %s)", o.InlineOffset, o.BlockOffset)
}

// ConstraintSpace carries everything a box may read about its surroundings.
// Parents build one per child; a box never looks past it at ancestor state.
// Spaces are values: copying one copies its exclusion space too.
type ConstraintSpace struct {
	AvailableInlineSize AvailableSize
	AvailableBlockSize  AvailableSize

	BfcOffset      BfcOffset
	ExclusionSpace ExclusionSpace
	MarginStrut    MarginStrut

	IsNewFormattingContext bool

	PercentageResolutionBlockSize unit.Maybe
	FragmentainerBlockSize        unit.Maybe
	FragmentainerOffset           unit.LayoutUnit

	// IsForMeasurementOnly marks spaces used to size a subtree without
	// publishing anything from it.
	IsForMeasurementOnly bool

	// MarginsAlreadyApplied is set by containers that place a child
	// themselves: flex and grid items, and formatting-context roots in
	// block flow. BfcOffset is then the child's border-box position.
	MarginsAlreadyApplied bool

	// IsFixedInlineSize and IsFixedBlockSize mark available sizes that are
	// the box's used border-box size rather than room to size into.
	IsFixedInlineSize bool
	IsFixedBlockSize  bool

	// containingBlock is the padding box absolutely positioned children
	// resolve their insets against, in BfcOffset coordinates.
	containingBlock logicalRect
}

// logicalRect is a rectangle in formatting-context coordinates.
type logicalRect struct {
	inlineOffset unit.LayoutUnit
	blockOffset  unit.LayoutUnit
	inlineSize   unit.LayoutUnit
	blockSize    unit.LayoutUnit
}

// NewRootSpace returns the space for the root box: the initial containing
// block, at the origin of a fresh formatting context.
func NewRootSpace(icbWidth, icbHeight unit.LayoutUnit) ConstraintSpace {
	return ConstraintSpace{
		AvailableInlineSize:           Definite(icbWidth),
		AvailableBlockSize:            Definite(icbHeight),
		BfcOffset:                     RootBfcOffset(),
		IsNewFormattingContext:        true,
		PercentageResolutionBlockSize: unit.Some(icbHeight),
	}
}

// CreateChildSpace derives a child's space. A child that establishes a new
// BFC starts from an unresolved offset with an empty strut; otherwise both
// are inherited so margins can collapse through it.
func (cs ConstraintSpace) CreateChildSpace(inline, block AvailableSize, establishesBFC bool) ConstraintSpace {
	child := ConstraintSpace{
		AvailableInlineSize:           inline,
		AvailableBlockSize:            block,
		BfcOffset:                     cs.BfcOffset,
		ExclusionSpace:                cs.ExclusionSpace,
		MarginStrut:                   cs.MarginStrut,
		IsNewFormattingContext:        establishesBFC,
		PercentageResolutionBlockSize: cs.PercentageResolutionBlockSize,
		FragmentainerBlockSize:        cs.FragmentainerBlockSize,
		FragmentainerOffset:           cs.FragmentainerOffset,
		IsForMeasurementOnly:          cs.IsForMeasurementOnly,
	}
	if establishesBFC {
		child.BfcOffset = BfcOffset{BlockOffset: unit.None()}
		child.MarginStrut = MarginStrut{}
	}
	return child
}

// availableInlinePx is the available inline size in pixels, falling back to
// the initial containing block when the parent offered none.
func (cs ConstraintSpace) availableInlinePx(icb unit.LayoutUnit) float64 {
	return cs.AvailableInlineSize.Resolve(icb).ToPx()
}

// placedChildSpace derives the space for a child its container has
// already sized and positioned: offset is the border-box top-left and
// the sizes are its border box.
func (cs ConstraintSpace) placedChildSpace(offset BfcOffset, inline, block unit.LayoutUnit, fixedBlock bool) ConstraintSpace {
	blockSize := Indefinite
	if fixedBlock {
		blockSize = Definite(block)
	}
	child := cs.CreateChildSpace(Definite(inline), blockSize, true)
	child.BfcOffset = offset
	child.MarginsAlreadyApplied = true
	child.IsFixedInlineSize = true
	child.IsFixedBlockSize = fixedBlock
	return child
}
