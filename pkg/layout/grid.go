package layout

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"l14layout/pkg/css"
	"l14layout/pkg/grid"
	"l14layout/pkg/html"
	"l14layout/pkg/unit"
)

// gridTemplate parses a track list with its gap resolved against base.
func gridTemplate(template string, gap css.Length, base float64, hasBase bool) grid.AxisTracks {
	return grid.ParseTemplate(template, gap.ResolveOr(base, hasBase, 0))
}

// gridItem describes child to the grid algorithm. Sizes are margin-box
// sizes: the algorithm places margin boxes and the container insets them.
func (lp *layoutPass) gridItem(child *html.Node, idx int, containerWidth float64) grid.GridItem {
	cs := lp.itemStyle(child)
	bm := resolveBoxModel(cs, containerWidth)
	it := grid.NewItem(grid.Handle(idx))
	it.RowStart, it.RowEnd = grid.ParseLine(cs.GridRowStart), grid.ParseLine(cs.GridRowEnd)
	it.ColStart, it.ColEnd = grid.ParseLine(cs.GridColumnStart), grid.ParseLine(cs.GridColumnEnd)
	it.JustifySelf = grid.AlignmentFromCSS(cs.JustifySelf)
	it.AlignSelf = grid.AlignmentFromCSS(cs.AlignSelf)

	m := lp.outerIntrinsic(child)
	it.MinContentWidth, it.MaxContentWidth = m.MinContent, m.MaxContent

	switch {
	case isControl(child):
		it.Width, it.HasWidth = controlSize+bm.margin.Horizontal(), true
		it.Height, it.HasHeight = controlSize+bm.margin.Vertical(), true
	case child.Type == html.ElementNode:
		if w, ok := cs.Width.Resolve(containerWidth, containerWidth > 0); ok {
			it.Width, it.HasWidth = toBorderBox(cs, w, bm.inlineFrame())+bm.margin.Horizontal(), true
		}
		if h, ok := cs.Height.Resolve(0, false); ok {
			it.Height, it.HasHeight = toBorderBox(cs, h, bm.blockFrame())+bm.margin.Vertical(), true
		}
	}
	if it.HasHeight {
		it.MinContentHeight, it.MaxContentHeight = it.Height, it.Height
	}
	return it
}

// layoutGrid lays out a grid container. Tracks are sized twice: once to
// find the column widths, and again after each item has been measured at
// its column width so rows fit their content.
func (lp *layoutPass) layoutGrid(node *html.Node, space ConstraintSpace) LayoutResult {
	cb := lp.openContainer(node, space)
	defer lp.enterRoot(node.ID)()
	style := cb.style

	columns := style.GridTemplateColumns
	if strings.TrimSpace(columns) == "" {
		// The implicit single column fills the container.
		columns = "1fr"
	}
	in := grid.ContainerInputs{
		Columns:           gridTemplate(columns, style.ColumnGap, cb.contentWidth, true),
		Rows:              gridTemplate(style.GridTemplateRows, style.RowGap, cb.contentHeight, cb.hasHeight),
		AutoFlow:          style.GridAutoFlow,
		AvailableWidth:    cb.contentWidth,
		AvailableHeight:   cb.contentHeight,
		HasExplicitHeight: cb.hasHeight,
		AlignItems:        grid.AlignmentFromCSS(style.AlignItems),
		JustifyItems:      grid.AlignmentFromCSS(style.JustifyItems),
	}

	children := lp.flexItems(node)
	items := make([]grid.GridItem, len(children))
	boxes := make([]boxModel, len(children))
	for i, child := range children {
		items[i] = lp.gridItem(child, i, cb.contentWidth)
		boxes[i] = resolveBoxModel(lp.itemStyle(child), cb.contentWidth)
	}

	res, err := grid.Layout(items, in)
	if err != nil {
		lp.logger.Warn("grid layout failed", zap.Int("node", int(node.ID)), zap.Error(err))
		return lp.closeContainer(node, space, cb, 0, unit.None())
	}
	for _, p := range res.Items {
		it := &items[p.Handle]
		if it.HasHeight {
			continue
		}
		bm := boxes[p.Handle]
		w := math.Max(p.Width-bm.margin.Horizontal(), 0)
		h := lp.measureBlockAtInline(children[p.Handle], w).BlockSize + bm.margin.Vertical()
		it.MinContentHeight, it.MaxContentHeight = h, h
	}
	if res, err = grid.Layout(items, in); err != nil {
		lp.logger.Warn("grid layout failed", zap.Int("node", int(node.ID)), zap.Error(err))
		return lp.closeContainer(node, space, cb, 0, unit.None())
	}

	base := cb.itemSpace(space)
	var baseline unit.Maybe
	firstRow := math.MaxInt
	for _, p := range res.Items {
		bm := boxes[p.Handle]
		x, y := p.X+bm.margin.Left, p.Y+bm.margin.Top
		w := math.Max(p.Width-bm.margin.Horizontal(), 0)
		h := math.Max(p.Height-bm.margin.Vertical(), 0)
		offset := BfcOffset{InlineOffset: unit.FromPx(x), BlockOffset: unit.Some(unit.FromPx(y))}
		placed := lp.layoutNode(children[p.Handle], base.placedChildSpace(offset, unit.FromPx(w), unit.FromPx(h), true))
		if b, ok := placed.Baseline.Get(); ok && p.Area.RowStart < firstRow {
			firstRow = p.Area.RowStart
			baseline = unit.Some(unit.FromPx(y).Add(b))
		}
	}

	if ce := lp.logger.Check(zap.DebugLevel, "grid container laid out"); ce != nil {
		ce.Write(
			zap.Int("node", int(node.ID)),
			zap.Int("items", len(items)),
			zap.Int("columns", res.Columns.Count()),
			zap.Int("rows", res.Rows.Count()),
			zap.Float64("width", res.TotalWidth),
			zap.Float64("height", res.TotalHeight))
	}
	return lp.closeContainer(node, space, cb, res.TotalHeight, baseline)
}
