package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_NilStyleUsesDefaults(t *testing.T) {
	cs := Compute(nil)
	assert.Equal(t, DefaultComputedStyle(), cs)
	assert.Equal(t, DisplayBlock, cs.Display)
	assert.True(t, cs.Width.IsAuto())
	assert.True(t, cs.MaxWidth.IsNone())
	assert.Equal(t, 1.0, cs.FlexShrink)
	assert.InDelta(t, 19.2, cs.LineHeight, 1e-9)
}

func TestCompute_Keywords(t *testing.T) {
	cs := Compute(ParseInlineStyle(
		"display: inline-flex; float: right; clear: both; box-sizing: border-box; " +
			"flex-direction: column-reverse; flex-wrap: wrap; justify-content: space-between; " +
			"align-items: center; align-self: end; align-content: space-around; writing-mode: vertical-rl; " +
			"position: sticky; grid-auto-flow: column"))

	assert.Equal(t, DisplayInlineFlex, cs.Display)
	assert.Equal(t, FloatRight, cs.Float)
	assert.Equal(t, ClearBoth, cs.Clear)
	assert.Equal(t, BoxSizingBorderBox, cs.BoxSizing)
	assert.Equal(t, FlexDirectionColumnReverse, cs.FlexDirection)
	assert.Equal(t, FlexWrapWrap, cs.FlexWrap)
	assert.Equal(t, JustifySpaceBetween, cs.JustifyContent)
	assert.Equal(t, AlignCenter, cs.AlignItems)
	assert.Equal(t, AlignFlexEnd, cs.AlignSelf)
	assert.Equal(t, AlignContentSpaceAround, cs.AlignContent)
	assert.True(t, cs.WritingMode.IsVertical())
	assert.Equal(t, PositionRelative, cs.Position)
	assert.Equal(t, GridAutoFlowColumn, cs.GridAutoFlow)
}

func TestCompute_UnknownKeywordKeepsDefault(t *testing.T) {
	cs := Compute(ParseInlineStyle("display: weird; float: sideways; width: banana"))
	assert.Equal(t, DisplayBlock, cs.Display)
	assert.Equal(t, FloatNone, cs.Float)
	assert.True(t, cs.Width.IsAuto())
}

func TestCompute_BoxModel(t *testing.T) {
	cs := Compute(ParseInlineStyle("margin: 5px auto; padding: 10%; border: 2px solid; border-right-style: none"))
	assert.Equal(t, Px(5), cs.Margin.Top)
	assert.True(t, cs.Margin.Left.IsAuto())
	assert.Equal(t, Percent(10), cs.Padding.Left)
	assert.Equal(t, BoxEdge{Top: 2, Right: 0, Bottom: 2, Left: 2}, cs.Border)

	resolved := cs.Padding.Resolve(200, true)
	assert.Equal(t, 20.0, resolved.Top)
}

func TestCompute_BorderStyleWithoutWidth(t *testing.T) {
	cs := Compute(ParseInlineStyle("border-top-style: solid"))
	assert.Equal(t, 3.0, cs.Border.Top, "medium border width applies when only a style is given")
	assert.Equal(t, 0.0, cs.Border.Left)
}

func TestCompute_FlexAndGrid(t *testing.T) {
	cs := Compute(ParseInlineStyle(
		"flex: 2 0 30px; order: -1; gap: 6px; grid-template-columns: repeat(2, 1fr); grid-column: 2 / span 2"))
	assert.Equal(t, 2.0, cs.FlexGrow)
	assert.Equal(t, 0.0, cs.FlexShrink)
	assert.Equal(t, Px(30), cs.FlexBasis)
	assert.Equal(t, -1, cs.Order)
	assert.Equal(t, Px(6), cs.RowGap)
	assert.Equal(t, Px(6), cs.ColumnGap)
	assert.Equal(t, "repeat(2, 1fr)", cs.GridTemplateColumns)
	assert.Equal(t, "2", cs.GridColumnStart)
	assert.Equal(t, "span 2", cs.GridColumnEnd)
	assert.Equal(t, "auto", cs.GridRowStart)
}

func TestCompute_LineHeight(t *testing.T) {
	assert.Equal(t, 30.0, Compute(ParseInlineStyle("font-size: 20px; line-height: 1.5")).LineHeight)
	assert.Equal(t, 12.0, Compute(ParseInlineStyle("line-height: 12px")).LineHeight)
}

func TestEstablishesFlowRoot(t *testing.T) {
	tests := map[string]bool{
		"":                      false,
		"float: left":           true,
		"overflow: hidden":      true,
		"overflow-y: auto":      true,
		"display: flex":         true,
		"display: inline-block": true,
		"position: absolute":    true,
		"position: relative":    false,
	}
	for decl, expected := range tests {
		cs := Compute(ParseInlineStyle(decl))
		assert.Equal(t, expected, cs.EstablishesFlowRoot(), decl)
	}
}
