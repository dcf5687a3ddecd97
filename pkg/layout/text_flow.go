package layout

import (
	"math"
	"strings"
	"unicode"

	"l14layout/pkg/css"
	"l14layout/pkg/html"
	"l14layout/pkg/unit"
)

// inlineItem is one unbreakable piece of an inline run: a word of a text
// node or an atomic inline-level box.
type inlineItem struct {
	owner *html.Node
	text  string
	width float64
	// space is the width of the collapsed space before the item, zero
	// when the item is glued to its predecessor.
	space float64

	fontSize   float64
	lineHeight float64

	atomic bool
	box    LayoutResult
	margin css.BoxEdge
}

func (it inlineItem) breakable() bool { return it.space > 0 || it.atomic }

// ascentDescent splits the item's line-height contribution around the
// baseline. Text uses half-leading; atomic boxes sit on their baseline or,
// lacking one, on their bottom margin edge.
func (lp *layoutPass) ascentDescent(it inlineItem) (float64, float64) {
	if it.atomic {
		total := it.box.BlockSize + it.margin.Vertical()
		if b, ok := it.box.Baseline.Get(); ok {
			above := it.margin.Top + b.ToPx()
			return above, total - above
		}
		return total, 0
	}
	m := lp.measurer.Metrics(it.fontSize)
	half := (it.lineHeight - (m.Ascent + m.Descent)) / 2
	return m.Ascent + half, m.Descent + half
}

// collectInlineItems flattens nodes into words and atomic boxes. pending
// carries collapsed whitespace across node boundaries.
func (lp *layoutPass) collectInlineItems(nodes []*html.Node, available float64, items []inlineItem, pending *bool) []inlineItem {
	for _, n := range nodes {
		if n.Type == html.TextNode {
			items = lp.collectWords(n, items, pending)
			continue
		}
		switch kind := lp.kindOf(n); kind {
		case KindNone, KindFloat, KindAbsolute:
			continue
		case KindInline:
			items = lp.collectInlineItems(n.Children, available, items, pending)
			continue
		}

		style := lp.style(n)
		it := inlineItem{
			owner:  n,
			atomic: true,
			box:    lp.measure(n, DefinitePx(available), Indefinite),
			margin: resolveBoxModel(style, available).margin,
		}
		it.width = it.box.InlineSize + it.margin.Horizontal()
		if *pending && len(items) > 0 {
			it.space = lp.measurer.Measure(" ", style.FontSize)
		}
		*pending = false
		items = append(items, it)
	}
	return items
}

func (lp *layoutPass) collectWords(n *html.Node, items []inlineItem, pending *bool) []inlineItem {
	if n.Text == "" {
		return items
	}
	style := lp.style(n)
	if unicode.IsSpace(rune(n.Text[0])) {
		*pending = true
	}
	space := lp.measurer.Measure(" ", style.FontSize)
	for _, word := range strings.Fields(n.Text) {
		it := inlineItem{
			owner:      n,
			text:       word,
			width:      lp.measurer.Measure(word, style.FontSize),
			fontSize:   style.FontSize,
			lineHeight: style.LineHeight,
		}
		if *pending && len(items) > 0 {
			it.space = space
		}
		items = append(items, it)
		*pending = true
	}
	*pending = unicode.IsSpace(rune(n.Text[len(n.Text)-1]))
	return items
}

// layoutInlineRun breaks a run of inline-level children into lines at the
// current flow position. Each line takes the space left beside floats at
// its top; a line whose first piece does not fit there moves below them.
func (lp *layoutPass) layoutInlineRun(nodes []*html.Node, fs *flowState) {
	blank := true
	for _, n := range nodes {
		if !lp.isCollapsibleWhitespace(n) {
			blank = false
			break
		}
	}
	if blank {
		return
	}

	pending := false
	items := lp.collectInlineItems(nodes, fs.inlineSize.ToPx(), nil, &pending)
	if len(items) == 0 {
		return
	}

	y := fs.position()
	end := fs.inlineStart.Add(fs.inlineSize)
	frags := make(map[html.NodeID][]TextLine)
	var firstBaseline, lastBaseline unit.LayoutUnit

	for i, line := 0, 0; i < len(items); line++ {
		start, span := fs.es.spanAt(y, fs.inlineStart, end)
		j, used := i, 0.0
		for j < len(items) {
			k := j + 1
			for k < len(items) && !items[k].breakable() {
				k++
			}
			w := chunkWidth(items[j:k], j > i)
			if j == i {
				if drop := fs.es.dropOffset(y, unit.FromPx(w), fs.inlineStart, end); drop.Greater(y) {
					y = drop
					start, span = fs.es.spanAt(y, fs.inlineStart, end)
				}
			} else if used+w > span.ToPx() {
				break
			}
			used += w
			j = k
		}

		above, below := 0.0, 0.0
		for _, it := range items[i:j] {
			a, b := lp.ascentDescent(it)
			above = math.Max(above, a)
			below = math.Max(below, b)
		}
		baseline := y.Add(unit.FromPx(above))
		lp.placeLine(items[i:j], start, baseline, fs, frags)

		if line == 0 {
			firstBaseline = baseline
		}
		lastBaseline = baseline
		y = y.Add(unit.FromPx(above + below))
		i = j
	}

	lp.recordInlineResults(nodes, frags)
	fs.noteBaselines(unit.Zero, unit.Some(firstBaseline), unit.Some(lastBaseline))
	fs.advance(y)
}

func chunkWidth(chunk []inlineItem, withSpace bool) float64 {
	w := 0.0
	for i, it := range chunk {
		if i > 0 || withSpace {
			w += it.space
		}
		w += it.width
	}
	return w
}

// placeLine emits the text fragments of one line and lays out its atomic
// boxes on the baseline.
func (lp *layoutPass) placeLine(items []inlineItem, start, baseline unit.LayoutUnit, fs *flowState, frags map[html.NodeID][]TextLine) {
	x := start.ToPx()
	var cur *TextLine
	flush := func() {
		if cur != nil {
			frags[cur.NodeID] = append(frags[cur.NodeID], *cur)
			cur = nil
		}
	}

	for i, it := range items {
		if i > 0 {
			x += it.space
		}
		if it.atomic {
			flush()
			above, _ := lp.ascentDescent(it)
			pos := BfcOffset{
				InlineOffset: unit.FromPx(x + it.margin.Left),
				BlockOffset:  unit.Some(baseline.Sub(unit.FromPx(above)).Add(unit.FromPx(it.margin.Top))),
			}
			space := fs.childSpace().placedChildSpace(pos, unit.FromPx(it.box.InlineSize), unit.FromPx(it.box.BlockSize), false)
			lp.layoutNode(it.owner, space)
			x += it.width
			continue
		}

		if cur != nil && cur.NodeID == it.owner.ID {
			if it.space > 0 && i > 0 {
				cur.Text += " "
			}
			cur.Text += it.text
			cur.Width = unit.Quantize(x + it.width - cur.X)
		} else {
			flush()
			above, _ := lp.ascentDescent(it)
			cur = &TextLine{
				NodeID:   it.owner.ID,
				Text:     it.text,
				X:        unit.Quantize(x),
				Y:        baseline.Sub(unit.FromPx(above)).ToPx(),
				Width:    unit.Quantize(it.width),
				Height:   it.lineHeight,
				Baseline: baseline.ToPx(),
				FontSize: it.fontSize,
			}
		}
		x += it.width
	}
	flush()
}

// recordInlineResults gives every text node and inline box of the run a
// result covering its fragments. Inline boxes are the union of their
// descendants.
func (lp *layoutPass) recordInlineResults(nodes []*html.Node, frags map[html.NodeID][]TextLine) {
	for _, n := range nodes {
		lp.recordInlineNode(n, frags)
	}
}

func (lp *layoutPass) recordInlineNode(n *html.Node, frags map[html.NodeID][]TextLine) (rect Rect, ok bool) {
	if n.Type == html.TextNode {
		lines := frags[n.ID]
		if len(lines) == 0 {
			return Rect{}, false
		}
		for _, l := range lines {
			rect, ok = unionRect(rect, ok, Rect{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height})
		}
		res := lineBoxResult(rect)
		res.Kind = KindText
		res.Lines = lines
		res.Baseline = unit.Some(unit.FromPx(lines[0].Baseline - rect.Y))
		res.LastBaseline = unit.Some(unit.FromPx(lines[len(lines)-1].Baseline - rect.Y))
		lp.record(n.ID, res)
		return rect, true
	}

	switch lp.kindOf(n) {
	case KindInline:
	case KindNone, KindFloat, KindAbsolute:
		return Rect{}, false
	default:
		res, placed := lp.results[n.ID]
		if !placed {
			return Rect{}, false
		}
		x, y, w, h := res.borderBox()
		return Rect{X: x, Y: y, Width: w, Height: h}, true
	}

	for _, c := range n.Children {
		if r, cok := lp.recordInlineNode(c, frags); cok {
			rect, ok = unionRect(rect, ok, r)
		}
	}
	if ok {
		res := lineBoxResult(rect)
		res.Kind = KindInline
		lp.record(n.ID, res)
	}
	return rect, ok
}

func lineBoxResult(r Rect) LayoutResult {
	return LayoutResult{
		InlineSize: r.Width,
		BlockSize:  r.Height,
		BfcOffset:  BfcOffset{InlineOffset: unit.FromPx(r.X), BlockOffset: unit.Some(unit.FromPx(r.Y))},
	}
}

func unionRect(acc Rect, ok bool, r Rect) (Rect, bool) {
	if !ok {
		return r, true
	}
	x0, y0 := math.Min(acc.X, r.X), math.Min(acc.Y, r.Y)
	x1 := math.Max(acc.X+acc.Width, r.X+r.Width)
	y1 := math.Max(acc.Y+acc.Height, r.Y+r.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

// layoutAnonymousText lays out a text node that its container treats as
// a box of its own, such as a flex item or the root of a measurement.
func (lp *layoutPass) layoutAnonymousText(node *html.Node, space ConstraintSpace) LayoutResult {
	width := space.availableInlinePx(lp.icbWidth)
	switch space.AvailableInlineSize.Kind {
	case SizeMinContent:
		width = lp.intrinsicSizes(node).MinContent
	case SizeMaxContent:
		width = lp.intrinsicSizes(node).MaxContent
	}
	top := space.BfcOffset.BlockOffset.Or(unit.Zero)
	fs := &flowState{
		parent:      node.ID,
		inlineStart: space.BfcOffset.InlineOffset,
		inlineSize:  unit.FromPx(width),
		contentTop:  top,
		base:        top,
		measuring:   space.IsForMeasurementOnly,
	}
	lp.layoutInlineRun([]*html.Node{node}, fs)

	res := LayoutResult{
		InlineSize: unit.Quantize(width),
		BlockSize:  fs.base.Sub(top).ToPx(),
		BfcOffset:  BfcOffset{InlineOffset: fs.inlineStart, BlockOffset: unit.Some(top)},
	}
	if prev, ok := lp.results[node.ID]; ok {
		res.Lines = prev.Lines
	}
	if b, ok := fs.baseline.Get(); ok {
		res.Baseline = unit.Some(b.Sub(top))
	}
	if b, ok := fs.lastBaseline.Get(); ok {
		res.LastBaseline = unit.Some(b.Sub(top))
	}
	return res
}
