package render

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14layout/pkg/html"
	"l14layout/pkg/layout"
	"l14layout/pkg/text"
)

func paintFloat(t *testing.T) *Renderer {
	t.Helper()
	root := html.Element("div", "",
		html.Element("div", "float: left; width: 40px; height: 20px"))
	e := layout.NewLayoutEngine(layout.Options{ICBWidth: 100, ICBHeight: 50, Measurer: text.FixedMeasurer{Advance: 1}})
	snap, err := e.Layout(html.NewDocumentWithRoot(root))
	require.NoError(t, err)

	r := NewRenderer(100, 50, Options{})
	require.NoError(t, r.Render(snap))
	return r
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestRender_FloatIsTintedAndOutlined(t *testing.T) {
	img := paintFloat(t).Image()

	if got := rgba(img.At(20, 10)); got != floatFill {
		t.Errorf("Expected float fill inside the float, got %v", got)
	}
	edge := rgba(img.At(0, 10))
	if edge.B > 0x80 || edge.R < 0x80 {
		t.Errorf("Expected the orange float outline on its left edge, got %v", edge)
	}
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, rgba(img.At(60, 40)))
}

func TestRender_NilSnapshot(t *testing.T) {
	r := NewRenderer(10, 10, Options{})
	assert.ErrorIs(t, r.Render(nil), ErrNoSnapshot)
}

func TestRender_SavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, paintFloat(t).SavePNG(path))
	assert.FileExists(t, path)
}

func TestPaintLevel(t *testing.T) {
	assert.Less(t, paintLevel(layout.KindBlock), paintLevel(layout.KindFloat))
	assert.Less(t, paintLevel(layout.KindFloat), paintLevel(layout.KindAbsolute))
}
