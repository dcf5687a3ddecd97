package text

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrFontLoad is returned when a font file cannot be loaded.
var ErrFontLoad = errors.New("font load failed")

// Metrics are vertical font metrics at a given size, in pixels.
type Metrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64
}

// Measurer is the pure text measurement function layout consumes. It never
// shapes text; widths are sums of glyph advances.
type Measurer interface {
	Measure(text string, fontSize float64) float64
	Metrics(fontSize float64) Metrics
}

// FaceMeasurer measures with a TrueType face loaded through gg, or with the
// 7x13 bitmap face from x/image scaled to the requested size when no font
// file is configured. It is safe for concurrent use.
type FaceMeasurer struct {
	fontPath string

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFaceMeasurer returns a measurer for fontPath. An empty path selects the
// built-in bitmap face. The font is loaded once up front so a bad path is
// reported here rather than during layout.
func NewFaceMeasurer(fontPath string) (*FaceMeasurer, error) {
	m := &FaceMeasurer{fontPath: fontPath, faces: make(map[float64]font.Face)}
	if fontPath != "" {
		if _, err := m.face(16); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// face returns a cached face for size. Callers hold m.mu or are in the
// constructor.
func (m *FaceMeasurer) face(size float64) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := gg.LoadFontFace(m.fontPath, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFontLoad, m.fontPath, err)
	}
	m.faces[size] = f
	return f, nil
}

const bitmapFaceHeight = 13.0

func (m *FaceMeasurer) Measure(s string, fontSize float64) float64 {
	if s == "" || fontSize <= 0 {
		return 0
	}
	if m.fontPath == "" {
		return fixedToPx(font.MeasureString(basicfont.Face7x13, s)) * fontSize / bitmapFaceHeight
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.face(fontSize)
	if err != nil {
		// Same rough estimate the renderer has always used for missing fonts.
		return float64(utf8.RuneCountInString(s)) * fontSize * 0.6
	}
	return fixedToPx(font.MeasureString(f, s))
}

func (m *FaceMeasurer) Metrics(fontSize float64) Metrics {
	if m.fontPath == "" {
		scale := fontSize / bitmapFaceHeight
		fm := basicfont.Face7x13.Metrics()
		return Metrics{
			Ascent:     fixedToPx(fm.Ascent) * scale,
			Descent:    fixedToPx(fm.Descent) * scale,
			LineHeight: fixedToPx(fm.Height) * scale,
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.face(fontSize)
	if err != nil {
		return Metrics{Ascent: fontSize * 0.8, Descent: fontSize * 0.2, LineHeight: fontSize * 1.2}
	}
	fm := f.Metrics()
	return Metrics{
		Ascent:     fixedToPx(fm.Ascent),
		Descent:    fixedToPx(fm.Descent),
		LineHeight: fixedToPx(fm.Height),
	}
}

func fixedToPx(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// FixedMeasurer gives every rune the same advance, Advance × font size.
// Results are exact and platform independent, which makes it the measurer
// of choice for tests.
type FixedMeasurer struct {
	Advance float64
}

func (m FixedMeasurer) Measure(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s)) * fontSize * m.Advance
}

func (m FixedMeasurer) Metrics(fontSize float64) Metrics {
	return Metrics{Ascent: fontSize * 0.8, Descent: fontSize * 0.2, LineHeight: fontSize * 1.2}
}
