package layout

import (
	"math"

	"go.uber.org/zap"

	"l14layout/pkg/css"
	"l14layout/pkg/html"
	"l14layout/pkg/unit"
)

// minAutoFloatWidth is the smallest width an auto-width float gets.
const minAutoFloatWidth = 100.0

// floatInlineSize returns a float's border-box width. An auto width is
// half the container's, but never under minAutoFloatWidth, taken as the
// specified size so box-sizing applies to it like an explicit width.
func floatInlineSize(node *html.Node, style *css.ComputedStyle, bm boxModel, available float64) float64 {
	if isControl(node) {
		return controlSize
	}
	frame := bm.inlineFrame()
	w, ok := style.Width.Resolve(available, true)
	if !ok {
		w = math.Max(available/2, minAutoFloatWidth)
	}
	size := toBorderBox(style, w, frame)
	size = clampBorderBox(style, size, frame, style.MinWidth, style.MaxWidth, available, true)
	return unit.Quantize(size)
}

// placeFloat positions a float in its parent's flow and registers its
// margin box.
//
// A float never sits above the current line, above an earlier float, or
// beside floats it clears. When the space beside earlier floats is too
// narrow it moves down to the next float bottom. Left floats then align
// to the start of the remaining space and right floats to its end.
func (lp *layoutPass) placeFloat(child *html.Node, fs *flowState) {
	cs := lp.style(child)
	available := fs.inlineSize.ToPx()
	cbm := resolveBoxModel(cs, available)
	width := floatInlineSize(child, cs, cbm, available)
	outer := unit.FromPx(width + cbm.margin.Horizontal())
	containerEnd := fs.inlineStart.Add(fs.inlineSize)

	y := unit.MaxOf(fs.position(), fs.es.highestFloatTop())
	if cs.Clear != css.ClearNone {
		y = unit.MaxOf(y, fs.es.ClearanceOffset(cs.Clear))
	}
	y = fs.es.dropOffset(y, outer, fs.inlineStart, containerEnd)
	start, span := fs.es.spanAt(y, fs.inlineStart, containerEnd)

	var x unit.LayoutUnit
	if cs.Float == css.FloatRight {
		x = start.Add(span).Sub(unit.FromPx(cbm.margin.Right)).Sub(unit.FromPx(width))
	} else {
		x = start.Add(unit.FromPx(cbm.margin.Left))
	}
	top := y.Add(unit.FromPx(cbm.margin.Top))

	space := fs.childSpace().placedChildSpace(BfcOffset{InlineOffset: x, BlockOffset: unit.Some(top)}, unit.FromPx(width), unit.Zero, false)
	res := lp.layoutNode(child, space)

	marginBox := FloatSize{
		InlineSize: outer,
		BlockSize:  unit.FromPx(res.BlockSize + cbm.margin.Vertical()).ClampNonNegative(),
		Side:       cs.Float,
	}
	fs.es = fs.es.AddFloat(child.ID, BfcOffset{InlineOffset: x.Sub(unit.FromPx(cbm.margin.Left)), BlockOffset: unit.Some(y)}, marginBox)

	res.ExclusionSpace = fs.es
	res.Margin = cbm.margin
	lp.results[child.ID] = res

	if ce := lp.logger.Check(zap.DebugLevel, "float placed"); ce != nil {
		ce.Write(
			zap.Int("node", int(child.ID)),
			zap.String("side", string(cs.Float)),
			zap.Stringer("x", x),
			zap.Stringer("y", top),
			zap.Float64("width", width))
	}
}
