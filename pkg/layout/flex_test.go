package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"l14layout/pkg/html"
)

func TestFlex_RowGrowsIntoFreeSpace(t *testing.T) {
	a := html.Element("div", "flex-grow: 1; height: 20px")
	b := html.Element("div", "width: 100px; height: 40px")
	root := html.Element("div", "display: flex; width: 400px", a, b)
	snap := layoutRoot(t, root)

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 300, Height: 20}, rectOf(t, snap, a))
	assert.Equal(t, Rect{X: 300, Y: 0, Width: 100, Height: 40}, rectOf(t, snap, b))
	assert.Equal(t, 40.0, rectOf(t, snap, root).Height)
}

func TestFlex_StretchFillsLine(t *testing.T) {
	tall := html.Element("div", "width: 100px; height: 40px")
	auto := html.Element("div", "width: 50px")
	centered := html.Element("div", "width: 50px; height: 10px; align-self: center")
	snap := layoutRoot(t, html.Element("div", "display: flex; width: 400px", tall, auto, centered))

	assert.Equal(t, 40.0, rectOf(t, snap, auto).Height)
	assert.Equal(t, Rect{X: 150, Y: 15, Width: 50, Height: 10}, rectOf(t, snap, centered))
}

func TestFlex_ShrinkRespectsContentMinimum(t *testing.T) {
	a := html.Element("div", "width: 200px", html.Text("aaaaaaaaaaaa"))
	b := html.Element("div", "width: 200px")
	snap := layoutRoot(t, html.Element("div", "display: flex; width: 200px; font-size: 10px", a, b))

	// a cannot shrink below its 120px word.
	assert.Equal(t, 120.0, rectOf(t, snap, a).Width)
	assert.Equal(t, 80.0, rectOf(t, snap, b).Width)
}

func TestFlex_Wrap(t *testing.T) {
	var items []*html.Node
	for range 3 {
		items = append(items, html.Element("div", "width: 80px; height: 10px"))
	}
	root := html.Element("div", "display: flex; flex-wrap: wrap; width: 200px", items...)
	snap := layoutRoot(t, root)

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 80, Height: 10}, rectOf(t, snap, items[0]))
	assert.Equal(t, Rect{X: 80, Y: 0, Width: 80, Height: 10}, rectOf(t, snap, items[1]))
	assert.Equal(t, Rect{X: 0, Y: 10, Width: 80, Height: 10}, rectOf(t, snap, items[2]))
	assert.Equal(t, 20.0, rectOf(t, snap, root).Height)
}

func TestFlex_Column(t *testing.T) {
	a := html.Element("div", "height: 30px")
	b := html.Element("div", "height: 20px; width: 100px")
	root := html.Element("div", "display: flex; flex-direction: column; width: 400px", a, b)
	snap := layoutRoot(t, root)

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 400, Height: 30}, rectOf(t, snap, a))
	assert.Equal(t, Rect{X: 0, Y: 30, Width: 100, Height: 20}, rectOf(t, snap, b))
	assert.Equal(t, 50.0, rectOf(t, snap, root).Height)
}

func TestFlex_JustifyContentAndGap(t *testing.T) {
	a := html.Element("div", "width: 100px; height: 10px")
	b := html.Element("div", "width: 100px; height: 10px")
	snap := layoutRoot(t, html.Element("div", "display: flex; justify-content: center; column-gap: 20px; width: 400px", a, b))

	assert.Equal(t, 90.0, rectOf(t, snap, a).X)
	assert.Equal(t, 210.0, rectOf(t, snap, b).X)
}

func TestFlex_OrderReordersItems(t *testing.T) {
	a := html.Element("div", "order: 2; width: 10px")
	b := html.Element("div", "width: 20px")
	snap := layoutRoot(t, html.Element("div", "display: flex; width: 400px", a, b))

	assert.Equal(t, 0.0, rectOf(t, snap, b).X)
	assert.Equal(t, 20.0, rectOf(t, snap, a).X)
}

func TestFlex_BaselineAlignment(t *testing.T) {
	small := html.Element("div", "", html.Text("aa"))
	large := html.Element("div", "font-size: 20px", html.Text("bb"))
	root := html.Element("div", "display: flex; align-items: baseline; width: 400px; font-size: 10px", small, large)
	snap := layoutRoot(t, root)

	// Baselines at 9px and 18px line up.
	assert.Equal(t, 9.0, rectOf(t, snap, small).Y)
	assert.Equal(t, 0.0, rectOf(t, snap, large).Y)
	assert.Equal(t, 24.0, rectOf(t, snap, root).Height)

	res, _ := snap.Result(root.ID)
	assert.Equal(t, "18px", res.Baseline.String())
}

func TestFlex_NestedInBlockFlow(t *testing.T) {
	item := html.Element("div", "width: 30px; height: 30px")
	flex := html.Element("div", "display: flex; margin-top: 10px; padding: 5px", item)
	root := html.Element("div", "width: 400px", html.Element("div", "height: 20px"), flex)
	snap := layoutRoot(t, root)

	assert.Equal(t, Rect{X: 0, Y: 30, Width: 400, Height: 40}, rectOf(t, snap, flex))
	assert.Equal(t, Rect{X: 5, Y: 35, Width: 30, Height: 30}, rectOf(t, snap, item))
}

func TestFlex_FloatedContainerLaysOutItems(t *testing.T) {
	a := html.Element("div", "width: 50px")
	b := html.Element("div", "width: 70px; height: 30px")
	box := html.Element("div", "float: left; display: flex; width: 200px", a, b)
	snap := layoutRoot(t, html.Element("div", "width: 400px", box))

	assert.Equal(t, Rect{X: 50, Y: 0, Width: 70, Height: 30}, rectOf(t, snap, b))
	assert.Equal(t, 30.0, rectOf(t, snap, a).Height, "items stretch to the line")
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 200, Height: 30}, rectOf(t, snap, box))
	for _, nr := range snap.Rects() {
		if nr.ID == box.ID {
			assert.Equal(t, KindFloat, nr.Kind)
		}
	}
}

func TestFlex_AbsoluteChildIsNotAnItem(t *testing.T) {
	abs := html.Element("div", "position: absolute; top: 5px; left: 5px; width: 10px; height: 10px")
	item := html.Element("div", "width: 30px; height: 30px")
	snap := layoutRoot(t, html.Element("div", "display: flex; width: 400px", abs, item))

	assert.Equal(t, 0.0, rectOf(t, snap, item).X)
	assert.Equal(t, Rect{X: 5, Y: 5, Width: 10, Height: 10}, rectOf(t, snap, abs))
}
