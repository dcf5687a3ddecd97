package flexbox

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14layout/pkg/css"
)

func threeItems50() []FlexChild {
	return []FlexChild{item(1, 50), item(2, 50), item(3, 50)}
}

func TestBreakIntoLines_GapCountsOnlyWithinLine(t *testing.T) {
	got := BreakIntoLines(120, 10, threeItems50())
	want := []LineRange{{0, 2}, {2, 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBreakIntoLines_OversizedItemGetsOwnLine(t *testing.T) {
	got := BreakIntoLines(100, 0, []FlexChild{item(1, 150), item(2, 150), item(3, 20)})
	want := []LineRange{{0, 1}, {1, 2}, {2, 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBreakIntoLines_ZeroSizedItemsSkipGap(t *testing.T) {
	got := BreakIntoLines(100, 10, []FlexChild{item(1, 0), item(2, 50), item(3, 0), item(4, 40)})
	// 0 + 50 + 0 + (10 + 40) = 100
	assert.Equal(t, []LineRange{{0, 4}}, got)
}

func TestBreakIntoLines_Empty(t *testing.T) {
	assert.Empty(t, BreakIntoLines(100, 10, nil))
}

func TestLayoutMultiLineWithCross_TwoLines(t *testing.T) {
	inputs := []CrossInput{explicit(20), explicit(20), explicit(20)}
	ctx := CrossContext{AlignItems: css.AlignCenter, AlignContent: css.AlignContentFlexStart, ContainerCrossSize: 100}

	res := LayoutMultiLineWithCross(row(120, 10), css.JustifyFlexStart, ctx, threeItems50(), inputs, nil)
	require.Len(t, res.Placements, 3)

	type pos struct{ Main, Cross float64 }
	got := make([]pos, len(res.Placements))
	for i, p := range res.Placements {
		got[i] = pos{p.Main.MainOffset, p.Cross.CrossOffset}
	}
	want := []pos{{0, 0}, {60, 0}, {0, 20}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []float64{20, 20}, res.LineCrossSizes)
}

func TestLayoutMultiLineWithCross_AutoMarginPerLine(t *testing.T) {
	items := []FlexChild{item(1, 50), item(2, 50), item(3, 50), item(4, 50)}
	items[0].MarginStartAuto = true
	inputs := []CrossInput{explicit(20), explicit(20), explicit(20), explicit(20)}
	ctx := CrossContext{AlignItems: css.AlignCenter, AlignContent: css.AlignContentFlexStart, ContainerCrossSize: 100}

	res := LayoutMultiLineWithCross(row(120, 10), css.JustifyFlexStart, ctx, items, inputs, nil)
	assert.Equal(t, 10.0, res.Placements[0].Main.MainOffset)
	assert.Equal(t, 0.0, res.Placements[2].Main.MainOffset)
}

func TestLayoutMultiLineWithCross_StretchLines(t *testing.T) {
	inputs := []CrossInput{
		{Size: CrossSize{Size: 20, Stretch: true}, Max: 1000},
		{Size: CrossSize{Size: 20, Stretch: true}, Max: 1000},
		{Size: CrossSize{Size: 20, Stretch: true}, Max: 1000},
	}
	ctx := CrossContext{AlignItems: css.AlignStretch, AlignContent: css.AlignContentStretch, ContainerCrossSize: 100}

	res := LayoutMultiLineWithCross(row(120, 10), css.JustifyFlexStart, ctx, threeItems50(), inputs, nil)
	assert.Equal(t, []float64{50, 50}, res.LineCrossSizes)
	assert.Equal(t, 50.0, res.Placements[0].Cross.CrossSize)
	assert.Equal(t, 50.0, res.Placements[2].Cross.CrossOffset)
}

func TestLayoutMultiLineWithCross_BaselinePerLine(t *testing.T) {
	items := []FlexChild{item(1, 80), item(2, 80), item(3, 80), item(4, 80)}
	inputs := []CrossInput{explicit(24), explicit(30), explicit(18), explicit(26)}
	baselines := []*Baseline{{6, 20}, {10, 26}, {5, 15}, {8, 22}}
	ctx := CrossContext{AlignItems: css.AlignBaseline, AlignContent: css.AlignContentFlexStart, ContainerCrossSize: 60, CrossGap: 4}

	res := LayoutMultiLineWithCross(row(170, 10), css.JustifyFlexStart, ctx, items, inputs, baselines)
	require.Len(t, res.Lines, 2)

	for li, r := range res.Lines {
		ref, _ := LineBaselineRef(ctx, items[r.Start:r.End], inputs[r.Start:r.End], baselines[r.Start:r.End])
		top := res.Placements[r.Start].Cross.CrossOffset
		for i := r.Start; i < r.End; i++ {
			top = min(top, res.Placements[i].Cross.CrossOffset)
		}
		for i := r.Start; i < r.End; i++ {
			assert.InDelta(t, top+ref, res.Placements[i].Cross.CrossOffset+baselines[i].First, 1.0/64, "line %d item %d", li, i)
		}
	}
}

func TestPackLines_AlignContentModes(t *testing.T) {
	lines := []float64{20, 20}
	tests := []struct {
		align css.AlignContent
		want  []float64
	}{
		{css.AlignContentFlexStart, []float64{0, 30}},
		{css.AlignContentFlexEnd, []float64{50, 80}},
		{css.AlignContentCenter, []float64{25, 55}},
		{css.AlignContentSpaceBetween, []float64{0, 80}},
		{css.AlignContentSpaceAround, []float64{12.5, 67.5}},
	}
	for _, tt := range tests {
		ctx := CrossContext{AlignContent: tt.align, ContainerCrossSize: 100, CrossGap: 10}
		got := PackLines(ctx, lines)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tt.align, diff)
		}
	}
}

func TestAlignContentParams_NeverNegative(t *testing.T) {
	plan := AlignContentParams(css.AlignContentCenter, 50, 80, 2)
	assert.Equal(t, JustifyPlan{}, plan)
}
