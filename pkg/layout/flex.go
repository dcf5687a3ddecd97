package layout

import (
	"math"

	"go.uber.org/zap"

	"l14layout/pkg/css"
	"l14layout/pkg/flexbox"
	"l14layout/pkg/html"
	"l14layout/pkg/unit"
)

// flexItem carries what the container knows about one item between the
// main-axis and cross-axis rounds.
type flexItem struct {
	node  *html.Node
	style *css.ComputedStyle
	bm    boxModel
	// crossWidth is the border-box width a column item is measured at.
	crossWidth float64
}

// layoutFlex lays out a flex container.
//
// Items are collected in order-modified document order. Their bases come
// from flex-basis, the main-axis size, or their content. The main axis is
// resolved line by line; then each item is measured at its final main
// size for its cross size and baseline, aligned, and laid out for real.
func (lp *layoutPass) layoutFlex(node *html.Node, space ConstraintSpace) LayoutResult {
	cb := lp.openContainer(node, space)
	defer lp.enterRoot(node.ID)()
	style := cb.style
	axes := flexbox.ResolveAxes(style.FlexDirection, style.WritingMode)
	row := axes.MainIsInline

	children := lp.flexItems(node)
	ordered := make([]flexbox.OrderedItem, len(children))
	for i, child := range children {
		ordered[i] = flexbox.OrderedItem{Handle: flexbox.Handle(i), Order: lp.itemStyle(child).Order}
	}
	order := flexbox.SortByOrder(ordered)

	columnGap := style.ColumnGap.ResolveOr(cb.contentWidth, true, 0)
	rowGap := style.RowGap.ResolveOr(cb.contentHeight, cb.hasHeight, 0)
	mainGap, crossGap := columnGap, rowGap
	mainSize, mainDefinite := cb.contentWidth, true
	if !row {
		mainGap, crossGap = rowGap, columnGap
		mainSize, mainDefinite = cb.contentHeight, cb.hasHeight
	}

	items := make([]flexItem, len(order))
	flexChildren := make([]flexbox.FlexChild, len(order))
	for idx, h := range order {
		child := children[h]
		cs := lp.itemStyle(child)
		it := flexItem{node: child, style: cs, bm: resolveBoxModel(cs, cb.contentWidth)}
		if !row {
			it.crossWidth = lp.columnItemWidth(it, style, cb.contentWidth)
		}
		items[idx] = it
		flexChildren[idx] = lp.flexChild(idx, it, row, mainSize, mainDefinite, cb)
	}

	if !mainDefinite {
		mainSize = 0
		for i, fc := range flexChildren {
			if i > 0 {
				mainSize += mainGap
			}
			mainSize += flexbox.Clamp(fc.FlexBasis, fc.MinMain, fc.MaxMain) + fc.MarginStart + fc.MarginEnd
		}
		mainSize = lp.clampColumnMain(style, cb, mainSize)
	}

	container := flexbox.Container{
		Direction:   style.FlexDirection,
		WritingMode: style.WritingMode,
		MainSize:    mainSize,
		MainGap:     mainGap,
	}
	wrap := style.FlexWrap != css.FlexWrapNowrap
	lines := []flexbox.LineRange{{Start: 0, End: len(flexChildren)}}
	if wrap {
		lines = flexbox.BreakIntoLines(mainSize, mainGap, flexChildren)
	}
	mainSizes := make([]float64, len(flexChildren))
	for _, r := range lines {
		for i, p := range flexbox.LayoutSingleLine(container, style.JustifyContent, flexChildren[r.Start:r.End]) {
			mainSizes[r.Start+i] = p.MainSize
		}
	}

	inputs := make([]flexbox.CrossInput, len(items))
	baselines := make([]*flexbox.Baseline, len(items))
	for i, it := range items {
		inputs[i], baselines[i] = lp.flexCrossInput(it, row, mainSizes[i], cb)
	}

	crossSize := cb.contentWidth
	if row {
		crossSize = cb.contentHeight
		if !cb.hasHeight {
			crossSize = 0
			for li, r := range lines {
				if li > 0 {
					crossSize += crossGap
				}
				crossSize += outerLineCross(flexChildren[r.Start:r.End], inputs[r.Start:r.End])
			}
		}
	}
	ctx := flexbox.CrossContext{
		AlignItems:         style.AlignItems,
		AlignContent:       style.AlignContent,
		ContainerCrossSize: crossSize,
		CrossGap:           crossGap,
	}

	var placements []flexbox.ItemPlacement
	if wrap {
		placements = flexbox.LayoutMultiLineWithCross(container, style.JustifyContent, ctx, flexChildren, inputs, baselines).Placements
	} else {
		placements = flexbox.LayoutSingleLineWithCross(container, style.JustifyContent, ctx, flexChildren, inputs, baselines)
	}

	base := cb.itemSpace(space)
	var baseline unit.Maybe
	for i, p := range placements {
		x, y := p.Main.MainOffset, p.Cross.CrossOffset
		w, h := p.Main.MainSize, p.Cross.CrossSize
		if !row {
			x, y = y, x
			w, h = h, w
		}
		offset := BfcOffset{InlineOffset: unit.FromPx(x), BlockOffset: unit.Some(unit.FromPx(y))}
		res := lp.layoutNode(items[i].node, base.placedChildSpace(offset, unit.FromPx(w), unit.FromPx(h), true))
		if b, ok := res.Baseline.Get(); ok && baseline.IsNone() {
			baseline = unit.Some(unit.FromPx(y).Add(b))
		}
	}

	contentHeight := crossSize
	if !row {
		contentHeight = mainSize
	}
	if ce := lp.logger.Check(zap.DebugLevel, "flex container laid out"); ce != nil {
		ce.Write(
			zap.Int("node", int(node.ID)),
			zap.Int("items", len(items)),
			zap.Int("lines", len(lines)),
			zap.Float64("main", mainSize),
			zap.Float64("cross", crossSize))
	}
	return lp.closeContainer(node, space, cb, contentHeight, baseline)
}

// flexChild builds the main-axis input for one item.
func (lp *layoutPass) flexChild(idx int, it flexItem, row bool, mainSize float64, mainDefinite bool, cb containerBox) flexbox.FlexChild {
	cs, bm := it.style, it.bm
	fc := flexbox.FlexChild{
		Handle:     flexbox.Handle(idx),
		FlexGrow:   cs.FlexGrow,
		FlexShrink: cs.FlexShrink,
	}
	if row {
		fc.MarginStart, fc.MarginEnd = bm.margin.Left, bm.margin.Right
		fc.MarginCrossStart, fc.MarginCrossEnd = bm.margin.Top, bm.margin.Bottom
		fc.MarginStartAuto, fc.MarginEndAuto = cs.Margin.Left.IsAuto(), cs.Margin.Right.IsAuto()
	} else {
		fc.MarginStart, fc.MarginEnd = bm.margin.Top, bm.margin.Bottom
		fc.MarginCrossStart, fc.MarginCrossEnd = bm.margin.Left, bm.margin.Right
		fc.MarginStartAuto, fc.MarginEndAuto = cs.Margin.Top.IsAuto(), cs.Margin.Bottom.IsAuto()
	}

	frame, mainLen, minLen, maxLen := bm.inlineFrame(), cs.Width, cs.MinWidth, cs.MaxWidth
	lenBase, lenDefinite := cb.contentWidth, true
	if !row {
		frame, mainLen, minLen, maxLen = bm.blockFrame(), cs.Height, cs.MinHeight, cs.MaxHeight
		lenBase, lenDefinite = cb.contentHeight, cb.hasHeight
	}

	specified, hasSpecified := 0.0, false
	if v, ok := mainLen.Resolve(lenBase, lenDefinite); ok {
		specified, hasSpecified = toBorderBox(cs, v, frame), true
	}
	if isControl(it.node) {
		specified, hasSpecified = controlSize, true
	}

	content := func() float64 {
		if row {
			return lp.intrinsicSizes(it.node).MaxContent
		}
		return lp.measureBlockAtInline(it.node, it.crossWidth).BlockSize
	}

	switch v, ok := cs.FlexBasis.Resolve(mainSize, mainDefinite); {
	case ok:
		fc.FlexBasis = toBorderBox(cs, v, frame)
	case hasSpecified:
		fc.FlexBasis = specified
	default:
		fc.FlexBasis = content()
	}

	fc.MaxMain = math.Inf(1)
	if v, ok := maxLen.Resolve(lenBase, lenDefinite); ok {
		fc.MaxMain = toBorderBox(cs, v, frame)
	}
	if v, ok := minLen.Resolve(lenBase, lenDefinite); ok {
		fc.MinMain = toBorderBox(cs, v, frame)
	} else if cs.Overflow == css.OverflowVisible {
		// Automatic minimum: the content size, capped by a specified size.
		auto := lp.contentSizes(it.node, cs).MinContent
		if !row {
			auto = content()
		}
		if hasSpecified {
			auto = math.Min(auto, specified)
		}
		fc.MinMain = math.Min(auto, fc.MaxMain)
	}
	fc.FlexBasis = unit.Quantize(fc.FlexBasis)
	return fc
}

// columnItemWidth is the border-box width of an item in a column
// container: its width, the container's when it stretches, or its
// shrink-to-fit width.
func (lp *layoutPass) columnItemWidth(it flexItem, container *css.ComputedStyle, contentWidth float64) float64 {
	cs, bm := it.style, it.bm
	frame := bm.inlineFrame()
	if isControl(it.node) {
		return controlSize
	}
	avail := contentWidth - bm.margin.Horizontal()
	var w float64
	if v, ok := cs.Width.Resolve(contentWidth, true); ok {
		w = toBorderBox(cs, v, frame)
	} else if stretches(container, cs) {
		w = avail
	} else {
		w = lp.intrinsicSizes(it.node).ShrinkToFit(avail)
	}
	return unit.Quantize(clampBorderBox(cs, w, frame, cs.MinWidth, cs.MaxWidth, contentWidth, true))
}

// stretches reports an item whose cross size align-items: stretch fills:
// auto size and no auto cross margins.
func stretches(container, item *css.ComputedStyle) bool {
	align := item.AlignSelf
	if align == css.AlignAuto || align == "" {
		align = container.AlignItems
	}
	return align == css.AlignStretch
}

// flexCrossInput measures one item at its resolved main size.
func (lp *layoutPass) flexCrossInput(it flexItem, row bool, mainSize float64, cb containerBox) (flexbox.CrossInput, *flexbox.Baseline) {
	cs, bm := it.style, it.bm
	in := flexbox.CrossInput{Align: cs.AlignSelf, Max: math.Inf(1)}

	if !row {
		in.Size = flexbox.CrossSize{Size: it.crossWidth, Stretch: cs.Width.IsAuto() && !cs.Margin.Left.IsAuto() && !cs.Margin.Right.IsAuto()}
		frame := bm.inlineFrame()
		if v, ok := cs.MinWidth.Resolve(cb.contentWidth, true); ok {
			in.Min = toBorderBox(cs, v, frame)
		}
		if v, ok := cs.MaxWidth.Resolve(cb.contentWidth, true); ok {
			in.Max = toBorderBox(cs, v, frame)
		}
		if isControl(it.node) {
			in.Size.Stretch = false
		}
		return in, nil
	}

	frame := bm.blockFrame()
	measured := lp.measureBlockAtInline(it.node, mainSize)
	size := measured.BlockSize
	explicit := false
	if v, ok := cs.Height.Resolve(cb.contentHeight, cb.hasHeight); ok {
		size, explicit = toBorderBox(cs, v, frame), true
	}
	if isControl(it.node) {
		size, explicit = controlSize, true
	}
	in.Size = flexbox.CrossSize{Size: size, Stretch: !explicit && !cs.Margin.Top.IsAuto() && !cs.Margin.Bottom.IsAuto()}
	if v, ok := cs.MinHeight.Resolve(cb.contentHeight, cb.hasHeight); ok {
		in.Min = toBorderBox(cs, v, frame)
	}
	if v, ok := cs.MaxHeight.Resolve(cb.contentHeight, cb.hasHeight); ok {
		in.Max = toBorderBox(cs, v, frame)
	}

	// Items without a baseline have one synthesized from their border box.
	b := &flexbox.Baseline{First: size, Last: size}
	if v, ok := measured.Baseline.Get(); ok {
		b.First = v.ToPx()
		b.Last = measured.LastBaseline.Or(v).ToPx()
	}
	return in, b
}

// outerLineCross is the tallest clamped outer cross size in a line.
func outerLineCross(items []flexbox.FlexChild, inputs []flexbox.CrossInput) float64 {
	cross := 0.0
	for i, in := range inputs {
		outer := flexbox.Clamp(in.Size.Size, in.Min, in.Max) + items[i].MarginCrossStart + items[i].MarginCrossEnd
		cross = math.Max(cross, outer)
	}
	return cross
}

// clampColumnMain applies the container's min-height and max-height to a
// content-derived main size.
func (lp *layoutPass) clampColumnMain(style *css.ComputedStyle, cb containerBox, size float64) float64 {
	frame := cb.bm.blockFrame()
	return clampBorderBox(style, size+frame, frame, style.MinHeight, style.MaxHeight, 0, false) - frame
}
