// Package render paints a layout snapshot for debugging: every box is
// outlined in a colour chosen by its kind, floats are tinted, and text
// fragments are drawn with the built-in bitmap face.
package render

import (
	"errors"
	"image"
	"image/color"
	"sort"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"l14layout/pkg/layout"
)

// ErrNoSnapshot is returned by Render when given nothing to paint.
var ErrNoSnapshot = errors.New("render: nil snapshot")

// Options tune what the renderer draws.
type Options struct {
	// Text draws line fragments as well as boxes.
	Text bool
	// LineWidth is the outline stroke width. Zero selects 1px.
	LineWidth float64
}

type Renderer struct {
	context *gg.Context
	opts    Options
}

func NewRenderer(width, height int, opts Options) *Renderer {
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}
	return &Renderer{context: gg.NewContext(width, height), opts: opts}
}

// outline colours per kind. Kinds not listed are not painted.
var outlines = map[layout.BoxKind]color.RGBA{
	layout.KindBlock:    {R: 0x40, G: 0x40, B: 0x40, A: 0xff},
	layout.KindInline:   {R: 0x20, G: 0x90, B: 0x20, A: 0xff},
	layout.KindFloat:    {R: 0xd0, G: 0x60, B: 0x00, A: 0xff},
	layout.KindFlex:     {R: 0x10, G: 0x50, B: 0xd0, A: 0xff},
	layout.KindGrid:     {R: 0x80, G: 0x20, B: 0xc0, A: 0xff},
	layout.KindAbsolute: {R: 0xd0, G: 0x10, B: 0x30, A: 0xff},
}

var floatFill = color.RGBA{R: 0xff, G: 0xe0, B: 0xc0, A: 0xff}

// paintLevel orders painting within the page: blocks first, then floats,
// then everything positioned or inline.
func paintLevel(k layout.BoxKind) int {
	switch k {
	case layout.KindFloat:
		return 1
	case layout.KindInline, layout.KindAbsolute:
		return 2
	}
	return 0
}

// Render clears the canvas and paints snap onto it.
func (r *Renderer) Render(snap *layout.Snapshot) error {
	if snap == nil {
		return ErrNoSnapshot
	}
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	rects := snap.Rects()
	sort.SliceStable(rects, func(i, j int) bool {
		return paintLevel(rects[i].Kind) < paintLevel(rects[j].Kind)
	})
	for _, nr := range rects {
		r.drawBox(nr)
	}
	if r.opts.Text {
		r.drawText(snap.Lines())
	}
	return nil
}

func (r *Renderer) drawBox(nr layout.NodeRect) {
	c, ok := outlines[nr.Kind]
	if !ok || nr.Width <= 0 || nr.Height <= 0 {
		return
	}
	if nr.Kind == layout.KindFloat {
		r.context.SetColor(floatFill)
		r.context.DrawRectangle(nr.X, nr.Y, nr.Width, nr.Height)
		r.context.Fill()
	}
	// Strokes are centred on the path, so inset by half the width to keep
	// the outline inside the border box.
	half := r.opts.LineWidth / 2
	r.context.SetColor(c)
	r.context.SetLineWidth(r.opts.LineWidth)
	r.context.DrawRectangle(nr.X+half, nr.Y+half, nr.Width-r.opts.LineWidth, nr.Height-r.opts.LineWidth)
	r.context.Stroke()
}

func (r *Renderer) drawText(lines []layout.TextLine) {
	r.context.Push()
	defer r.context.Pop()
	r.context.SetFontFace(basicfont.Face7x13)
	r.context.SetRGB(0, 0, 0)
	for _, l := range lines {
		if l.Text == "" {
			continue
		}
		r.context.DrawString(l.Text, l.X, l.Baseline)
	}
}

// Image returns the painted canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}
