package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14layout/pkg/html"
)

func TestBlock_SiblingMarginsCollapse(t *testing.T) {
	a := html.Element("div", "height: 50px; margin-bottom: 20px")
	b := html.Element("div", "height: 50px; margin-top: 30px")
	root := html.Element("div", "width: 400px", a, b)
	snap := layoutRoot(t, root)

	if r := rectOf(t, snap, b); r.Y != 80 {
		t.Errorf("Expected second block at y=80, got %v", r.Y)
	}
	if r := rectOf(t, snap, root); r.Height != 130 {
		t.Errorf("Expected root height 130, got %v", r.Height)
	}
}

func TestBlock_NegativeMarginsCollapse(t *testing.T) {
	a := html.Element("div", "height: 50px; margin-bottom: 20px")
	b := html.Element("div", "height: 50px; margin-top: -30px")
	snap := layoutRoot(t, html.Element("div", "", a, b))

	if r := rectOf(t, snap, b); r.Y != 40 {
		t.Errorf("Expected 50 + (20 - 30) = 40, got %v", r.Y)
	}
}

func TestBlock_ParentAndFirstChildMarginsCollapse(t *testing.T) {
	inner := html.Element("div", "margin-top: 20px; height: 10px")
	outer := html.Element("div", "margin-top: 10px", inner)
	snap := layoutRoot(t, html.Element("div", "", outer))

	assert.Equal(t, Rect{Y: 20, Width: 800, Height: 10}, rectOf(t, snap, outer))
	assert.Equal(t, Rect{Y: 20, Width: 800, Height: 10}, rectOf(t, snap, inner))
}

func TestBlock_BorderSeparatesParentAndChildMargins(t *testing.T) {
	inner := html.Element("div", "margin-top: 20px; height: 10px")
	outer := html.Element("div", "margin-top: 10px; border-top: 1px solid black", inner)
	snap := layoutRoot(t, html.Element("div", "", outer))

	assert.Equal(t, 10.0, rectOf(t, snap, outer).Y)
	assert.Equal(t, 31.0, rectOf(t, snap, inner).Y)
	assert.Equal(t, 31.0, rectOf(t, snap, outer).Height)
}

func TestBlock_EmptyBlockCollapsesThrough(t *testing.T) {
	a := html.Element("div", "height: 10px")
	empty := html.Element("div", "margin-top: 10px; margin-bottom: 30px")
	c := html.Element("div", "margin-top: 20px; height: 10px")
	snap := layoutRoot(t, html.Element("div", "", a, empty, c))

	if r := rectOf(t, snap, c); r.Y != 40 {
		t.Errorf("Expected margins 10, 30 and 20 to collapse to 30, got y=%v", r.Y)
	}
	res, ok := snap.Result(empty.ID)
	require.True(t, ok)
	assert.Zero(t, res.BlockSize)
}

func TestBlock_PlacedBlocksDescribeFlow(t *testing.T) {
	a := html.Element("div", "height: 10px; margin-bottom: 5px")
	b := html.Element("div", "height: 20px; margin-top: 15px")
	root := html.Element("div", "padding-top: 4px", a, b)
	snap := layoutRoot(t, root)

	res, _ := snap.Result(root.ID)
	want := []PlacedBlock{
		{NodeID: a.ID, Y: 0, ContentHeight: 10, OutgoingBottomMargin: 5},
		{NodeID: b.ID, Y: 25, ContentHeight: 20, CollapsedTop: 15},
	}
	if diff := cmp.Diff(want, res.Placed); diff != "" {
		t.Errorf("placed blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestBlock_AutoMarginsCenter(t *testing.T) {
	child := html.Element("div", "width: 200px; height: 10px; margin: 0 auto")
	snap := layoutRoot(t, html.Element("div", "width: 600px", child))

	assert.Equal(t, 200.0, rectOf(t, snap, child).X)
}

func TestBlock_BoxSizing(t *testing.T) {
	content := html.Element("div", "width: 100px; padding: 10px; border: 2px solid black")
	border := html.Element("div", "width: 100px; padding: 10px; border: 2px solid black; box-sizing: border-box")
	snap := layoutRoot(t, html.Element("div", "", content, border))

	assert.Equal(t, 124.0, rectOf(t, snap, content).Width)
	assert.Equal(t, 100.0, rectOf(t, snap, border).Width)
}

func TestBlock_MinMaxWidth(t *testing.T) {
	capped := html.Element("div", "max-width: 150px")
	raised := html.Element("div", "width: 10px; min-width: 50px")
	snap := layoutRoot(t, html.Element("div", "width: 400px", capped, raised))

	assert.Equal(t, 150.0, rectOf(t, snap, capped).Width)
	assert.Equal(t, 50.0, rectOf(t, snap, raised).Width)
}

func TestBlock_PercentageHeight(t *testing.T) {
	child := html.Element("div", "height: 25%")
	indefinite := html.Element("div", "", html.Element("div", "height: 50%"))
	snap := layoutRoot(t, html.Element("div", "height: 200px", child, indefinite))

	assert.Equal(t, 50.0, rectOf(t, snap, child).Height)
	assert.Equal(t, 0.0, rectOf(t, snap, indefinite).Height)
}

func TestBlock_DisplayNoneTakesNoSpace(t *testing.T) {
	hidden := html.Element("div", "display: none; height: 100px")
	after := html.Element("div", "height: 10px")
	snap := layoutRoot(t, html.Element("div", "", hidden, after))

	assert.Equal(t, 0.0, rectOf(t, snap, after).Y)
}

func TestFloat_LeftAndRight(t *testing.T) {
	left := html.Element("div", "float: left; width: 100px; height: 50px")
	right := html.Element("div", "float: right; width: 80px; height: 30px")
	root := html.Element("div", "width: 400px", left, right)
	snap := layoutRoot(t, root)

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 100, Height: 50}, rectOf(t, snap, left))
	assert.Equal(t, Rect{X: 320, Y: 0, Width: 80, Height: 30}, rectOf(t, snap, right))
	assert.Equal(t, 50.0, rectOf(t, snap, root).Height, "a formatting-context root contains its floats")
}

func TestFloat_DropsBelowNarrowSpace(t *testing.T) {
	left := html.Element("div", "float: left; width: 100px; height: 50px")
	right := html.Element("div", "float: right; width: 80px; height: 30px")
	wide := html.Element("div", "float: left; width: 250px; height: 10px")
	snap := layoutRoot(t, html.Element("div", "width: 400px", left, right, wide))

	assert.Equal(t, Rect{X: 100, Y: 30, Width: 250, Height: 10}, rectOf(t, snap, wide))
}

func TestFloat_NeverAboveEarlierFloat(t *testing.T) {
	tall := html.Element("div", "float: left; width: 300px; height: 40px")
	small := html.Element("div", "float: right; width: 200px; height: 10px")
	later := html.Element("div", "float: right; width: 50px; height: 10px")
	snap := layoutRoot(t, html.Element("div", "width: 400px", tall, small, later))

	assert.Equal(t, 40.0, rectOf(t, snap, small).Y)
	assert.Equal(t, 40.0, rectOf(t, snap, later).Y)
	assert.Equal(t, 150.0, rectOf(t, snap, later).X)
}

func TestFloat_AutoWidthIsHalfTheContainer(t *testing.T) {
	wide := html.Element("div", "float: left; height: 10px")
	narrow := html.Element("div", "float: left; height: 10px")
	snap := layoutRoot(t, html.Element("div", "", html.Element("div", "width: 400px", wide),
		html.Element("div", "width: 150px; clear: both", narrow)))

	assert.Equal(t, 200.0, rectOf(t, snap, wide).Width)
	assert.Equal(t, 100.0, rectOf(t, snap, narrow).Width)
}

func TestFloat_MarginsOffsetTheBox(t *testing.T) {
	f := html.Element("div", "float: right; width: 50px; height: 10px; margin: 5px 7px")
	snap := layoutRoot(t, html.Element("div", "width: 200px", f))

	assert.Equal(t, Rect{X: 143, Y: 5, Width: 50, Height: 10}, rectOf(t, snap, f))
}

func TestClear_MovesBelowFloats(t *testing.T) {
	f := html.Element("div", "float: left; width: 100px; height: 50px")
	cleared := html.Element("div", "clear: left; height: 10px; margin-top: 10px")
	notCleared := html.Element("div", "clear: right; height: 10px")
	snap := layoutRoot(t, html.Element("div", "width: 400px", f, notCleared, cleared))

	assert.Equal(t, 0.0, rectOf(t, snap, notCleared).Y)
	assert.Equal(t, 50.0, rectOf(t, snap, cleared).Y)
}

func TestClear_MarginAlreadyBelowFloat(t *testing.T) {
	f := html.Element("div", "float: left; width: 100px; height: 20px")
	cleared := html.Element("div", "clear: both; height: 10px; margin-top: 40px")
	snap := layoutRoot(t, html.Element("div", "width: 400px", f, cleared))

	assert.Equal(t, 40.0, rectOf(t, snap, cleared).Y)
}

func TestClear_InsideCollapsingParent(t *testing.T) {
	f := html.Element("div", "float: left; width: 100px; height: 50px")
	cleared := html.Element("div", "clear: both; height: 10px; margin-top: 20px")
	wrapper := html.Element("div", "margin-top: 5px", cleared)
	root := html.Element("div", "width: 400px", f, wrapper)
	snap := layoutRoot(t, root)

	assert.Equal(t, 50.0, rectOf(t, snap, cleared).Y)
	res, _ := snap.Result(wrapper.ID)
	require.Len(t, res.Placed, 1)
	assert.True(t, res.Placed[0].ClearLifted)
	assert.Zero(t, res.Placed[0].LeadingCollapseContrib)
}

func TestFlowRoot_NarrowsBesideFloat(t *testing.T) {
	f := html.Element("div", "float: left; width: 100px; height: 50px")
	bfc := html.Element("div", "overflow: hidden; height: 20px")
	snap := layoutRoot(t, html.Element("div", "width: 400px", f, bfc))

	assert.Equal(t, Rect{X: 100, Y: 0, Width: 300, Height: 20}, rectOf(t, snap, bfc))
}

func TestFlowRoot_DropsWhenTooWide(t *testing.T) {
	f := html.Element("div", "float: left; width: 100px; height: 50px")
	bfc := html.Element("div", "overflow: hidden; width: 350px; height: 20px")
	snap := layoutRoot(t, html.Element("div", "width: 400px", f, bfc))

	assert.Equal(t, Rect{X: 0, Y: 50, Width: 350, Height: 20}, rectOf(t, snap, bfc))
}

func TestText_WrapsAtAvailableWidth(t *testing.T) {
	words := html.Text("aaaa bbbb cccc")
	p := html.Element("div", "", words)
	snap := layoutRoot(t, html.Element("div", "width: 100px; font-size: 10px", p))

	lines := snap.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "aaaa bbbb", lines[0].Text)
	assert.Equal(t, 90.0, lines[0].Width)
	assert.Equal(t, "cccc", lines[1].Text)
	assert.Equal(t, 12.0, lines[1].Y)
	assert.Equal(t, 24.0, rectOf(t, snap, p).Height)

	res, _ := snap.Result(p.ID)
	assert.Equal(t, "9px", res.Baseline.String())
	assert.Equal(t, "21px", res.LastBaseline.String())
}

func TestText_WrapsBesideFloat(t *testing.T) {
	f := html.Element("div", "float: left; width: 60px; height: 12px")
	words := html.Text("aaaa bbbb")
	snap := layoutRoot(t, html.Element("div", "width: 100px; font-size: 10px", f, html.Element("div", "", words)))

	lines := snap.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 60.0, lines[0].X)
	assert.Equal(t, "aaaa", lines[0].Text)
	assert.Equal(t, 0.0, lines[1].X)
	assert.Equal(t, 12.0, lines[1].Y)
}

func TestText_InlineBoxesShareLines(t *testing.T) {
	span := html.Element("span", "", html.Text("bb"))
	p := html.Element("div", "", html.Text("aa "), span, html.Text(" cc"))
	snap := layoutRoot(t, html.Element("div", "width: 400px; font-size: 10px", p))

	lines := snap.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, []float64{0, 30, 60}, []float64{lines[0].X, lines[1].X, lines[2].X})
	assert.Equal(t, Rect{X: 30, Y: 0, Width: 20, Height: 12}, rectOf(t, snap, span))
	assert.Equal(t, 12.0, rectOf(t, snap, p).Height)
}

func TestText_InlineBlockSitsOnBaseline(t *testing.T) {
	box := html.Element("div", "display: inline-block; width: 30px; height: 20px")
	p := html.Element("div", "", html.Text("aa "), box)
	snap := layoutRoot(t, html.Element("div", "width: 400px; font-size: 10px", p))

	r := rectOf(t, snap, box)
	assert.Equal(t, 30.0, r.X)
	assert.Equal(t, 0.0, r.Y)
	// The box's bottom edge is on the baseline, 20px down; the text's
	// descent hangs 3px below it.
	assert.Equal(t, 23.0, rectOf(t, snap, p).Height)
}

func TestAbsolute_InsetsFromContainingBlock(t *testing.T) {
	abs := html.Element("div", "position: absolute; left: 10px; top: 20px; width: 50px; height: 30px")
	root := html.Element("div", "width: 400px; height: 300px", html.Element("div", "height: 40px"), abs)
	snap := layoutRoot(t, root)

	assert.Equal(t, Rect{X: 10, Y: 20, Width: 50, Height: 30}, rectOf(t, snap, abs))
	assert.Equal(t, 300.0, rectOf(t, snap, root).Height)
}

func TestAbsolute_StaticPositionAndStretch(t *testing.T) {
	static := html.Element("div", "position: absolute; width: 10px; height: 10px")
	stretched := html.Element("div", "position: absolute; left: 10px; right: 30px; top: 0; bottom: 0")
	bottom := html.Element("div", "position: absolute; bottom: 5px; right: 5px; width: 20px; height: 20px")
	root := html.Element("div", "width: 400px; height: 100px",
		html.Element("div", "height: 40px"), static, stretched, bottom)
	snap := layoutRoot(t, root)

	assert.Equal(t, Rect{X: 0, Y: 40, Width: 10, Height: 10}, rectOf(t, snap, static))
	assert.Equal(t, Rect{X: 10, Y: 0, Width: 360, Height: 100}, rectOf(t, snap, stretched))
	assert.Equal(t, Rect{X: 375, Y: 75, Width: 20, Height: 20}, rectOf(t, snap, bottom))
}

func TestCheckPlacedBlock_NoPanicOnConsistentFlow(t *testing.T) {
	root := html.Element("div", "",
		html.Element("div", "margin: 10px 0", html.Element("div", "margin: 20px 0; height: 5px")),
		html.Element("div", "clear: both; margin-top: 50px"),
	)
	assert.NotPanics(t, func() { layoutRoot(t, root) })
}
