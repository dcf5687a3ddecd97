package layout

import (
	"math"
	"strings"
	"unicode"

	"l14layout/pkg/css"
	"l14layout/pkg/flexbox"
	"l14layout/pkg/grid"
	"l14layout/pkg/html"
	"l14layout/pkg/text"
	"l14layout/pkg/unit"
)

// intrinsicSizes returns node's min-content and max-content border-box
// widths, computed from the tree without laying anything out.
func (lp *layoutPass) intrinsicSizes(node *html.Node) MinMaxSizes {
	if m, ok := lp.caches.intrinsic[node.ID]; ok {
		return m
	}
	m := lp.computeIntrinsic(node)
	lp.caches.intrinsic[node.ID] = m
	return m
}

func (lp *layoutPass) computeIntrinsic(node *html.Node) MinMaxSizes {
	style := lp.style(node)
	if node.Type == html.TextNode {
		return MinMaxSizes{
			MinContent: text.MinContentWidth(lp.measurer, node.Text, style.FontSize),
			MaxContent: text.MaxContentWidth(lp.measurer, node.Text, style.FontSize),
		}
	}
	if isControl(node) {
		return MinMaxSizes{MinContent: controlSize, MaxContent: controlSize}
	}

	if w, ok := style.Width.Resolve(0, false); ok {
		size := toBorderBox(style, w, resolveBoxModel(style, 0).inlineFrame())
		return MinMaxSizes{MinContent: size, MaxContent: size}
	}
	return lp.contentSizes(node, style)
}

// contentSizes is computeIntrinsic ignoring a specified width: the sizes
// the box's content asks for, clamped by min-width and max-width.
func (lp *layoutPass) contentSizes(node *html.Node, style *css.ComputedStyle) MinMaxSizes {
	if node.Type == html.TextNode || isControl(node) {
		return lp.intrinsicSizes(node)
	}
	frame := resolveBoxModel(style, 0).inlineFrame()
	var content MinMaxSizes
	switch {
	case style.Display.IsFlex():
		content = lp.flexIntrinsic(node, style)
	case style.Display.IsGrid():
		content = lp.gridIntrinsic(node, style)
	default:
		content = lp.blockIntrinsic(node)
	}

	m := MinMaxSizes{MinContent: content.MinContent + frame, MaxContent: content.MaxContent + frame}
	m.MinContent = clampBorderBox(style, m.MinContent, frame, style.MinWidth, style.MaxWidth, 0, false)
	m.MaxContent = clampBorderBox(style, m.MaxContent, frame, style.MinWidth, style.MaxWidth, 0, false)
	m.MaxContent = math.Max(m.MaxContent, m.MinContent)
	return m
}

// outerIntrinsic adds a child's horizontal margins.
func (lp *layoutPass) outerIntrinsic(child *html.Node) MinMaxSizes {
	m := lp.intrinsicSizes(child)
	if child.Type == html.TextNode {
		return m
	}
	margins := resolveBoxModel(lp.style(child), 0).margin.Horizontal()
	return MinMaxSizes{MinContent: m.MinContent + margins, MaxContent: m.MaxContent + margins}
}

// blockIntrinsic is the widest line or child. An inline run contributes
// its longest word to min-content and its unbroken width to max-content.
// Floats sit side by side at max-content.
func (lp *layoutPass) blockIntrinsic(node *html.Node) MinMaxSizes {
	var m MinMaxSizes
	var floats float64
	var run MinMaxSizes
	endRun := func() {
		m.MinContent = math.Max(m.MinContent, run.MinContent)
		m.MaxContent = math.Max(m.MaxContent, run.MaxContent)
		run = MinMaxSizes{}
	}

	for _, child := range node.Children {
		kind := lp.kindOf(child)
		switch {
		case kind == KindNone || kind == KindAbsolute:
			continue
		case lp.isInlineLevel(child, kind):
			r := lp.inlineIntrinsic(child)
			run.MinContent = math.Max(run.MinContent, r.MinContent)
			run.MaxContent += r.MaxContent
		case kind == KindFloat:
			c := lp.outerIntrinsic(child)
			m.MinContent = math.Max(m.MinContent, c.MinContent)
			floats += c.MaxContent
		default:
			endRun()
			c := lp.outerIntrinsic(child)
			m.MinContent = math.Max(m.MinContent, c.MinContent)
			m.MaxContent = math.Max(m.MaxContent, c.MaxContent)
		}
	}
	endRun()
	m.MaxContent = math.Max(m.MaxContent, floats)
	return m
}

// inlineIntrinsic walks an inline-level child of a run.
func (lp *layoutPass) inlineIntrinsic(n *html.Node) MinMaxSizes {
	if n.Type == html.TextNode {
		style := lp.style(n)
		m := lp.intrinsicSizes(n)
		if strings.TrimRightFunc(n.Text, unicode.IsSpace) != n.Text {
			m.MaxContent += lp.measurer.Measure(" ", style.FontSize)
		}
		return m
	}
	if lp.kindOf(n) != KindInline {
		return lp.outerIntrinsic(n)
	}
	var m MinMaxSizes
	for _, c := range n.Children {
		kind := lp.kindOf(c)
		if kind == KindNone || kind == KindFloat || kind == KindAbsolute {
			continue
		}
		r := lp.inlineIntrinsic(c)
		m.MinContent = math.Max(m.MinContent, r.MinContent)
		m.MaxContent += r.MaxContent
	}
	return m
}

// flexItems returns the children a flex container lays out as items.
func (lp *layoutPass) flexItems(node *html.Node) []*html.Node {
	var items []*html.Node
	for _, child := range node.Children {
		kind := lp.kindOf(child)
		if kind == KindNone || kind == KindAbsolute || lp.isCollapsibleWhitespace(child) {
			continue
		}
		items = append(items, child)
	}
	return items
}

// flexIntrinsic sums items along a row and takes the widest in a column.
// A wrapping row can break between any two items, so its min-content is
// the widest item's.
func (lp *layoutPass) flexIntrinsic(node *html.Node, style *css.ComputedStyle) MinMaxSizes {
	items := lp.flexItems(node)
	axes := flexbox.ResolveAxes(style.FlexDirection, style.WritingMode)
	gap := style.ColumnGap.ResolveOr(0, false, 0)

	var m MinMaxSizes
	for i, child := range items {
		c := lp.outerIntrinsic(child)
		if !axes.MainIsInline {
			m.MinContent = math.Max(m.MinContent, c.MinContent)
			m.MaxContent = math.Max(m.MaxContent, c.MaxContent)
			continue
		}
		if i > 0 {
			m.MaxContent += gap
		}
		m.MaxContent += c.MaxContent
		if style.FlexWrap == css.FlexWrapNowrap {
			if i > 0 {
				m.MinContent += gap
			}
			m.MinContent += c.MinContent
		} else {
			m.MinContent = math.Max(m.MinContent, c.MinContent)
		}
	}
	return m
}

// gridIntrinsic runs track sizing with an indefinite width, once with the
// items at their max-content width and once at their min-content width.
func (lp *layoutPass) gridIntrinsic(node *html.Node, style *css.ComputedStyle) MinMaxSizes {
	children := lp.flexItems(node)
	if len(children) == 0 {
		return MinMaxSizes{}
	}
	columns := gridTemplate(style.GridTemplateColumns, style.ColumnGap, 0, false)
	rows := gridTemplate(style.GridTemplateRows, style.RowGap, 0, false)

	run := func(useMin bool) float64 {
		items := make([]grid.GridItem, len(children))
		for i, child := range children {
			it := lp.gridItem(child, i, 0)
			if useMin {
				it.MaxContentWidth = it.MinContentWidth
			}
			items[i] = it
		}
		res, err := grid.Layout(items, grid.ContainerInputs{
			Rows:            rows,
			Columns:         columns,
			AutoFlow:        style.GridAutoFlow,
			WidthIndefinite: true,
		})
		if err != nil {
			return 0
		}
		return res.TotalWidth
	}
	return MinMaxSizes{MinContent: unit.Quantize(run(true)), MaxContent: unit.Quantize(run(false))}
}
