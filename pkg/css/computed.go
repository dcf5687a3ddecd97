package css

import (
	"strconv"
	"strings"
)

// DisplayType represents the display property value
type DisplayType string

const (
	DisplayBlock       DisplayType = "block"
	DisplayInline      DisplayType = "inline"
	DisplayInlineBlock DisplayType = "inline-block"
	DisplayFlex        DisplayType = "flex"
	DisplayInlineFlex  DisplayType = "inline-flex"
	DisplayGrid        DisplayType = "grid"
	DisplayInlineGrid  DisplayType = "inline-grid"
	DisplayContents    DisplayType = "contents"
	DisplayNone        DisplayType = "none"
)

// IsFlex reports flex and inline-flex.
func (d DisplayType) IsFlex() bool { return d == DisplayFlex || d == DisplayInlineFlex }

// IsGrid reports grid and inline-grid.
func (d DisplayType) IsGrid() bool { return d == DisplayGrid || d == DisplayInlineGrid }

// IsInlineLevel reports the inline-* outer display types.
func (d DisplayType) IsInlineLevel() bool {
	return d == DisplayInline || d == DisplayInlineBlock || d == DisplayInlineFlex || d == DisplayInlineGrid
}

// PositionType represents the position property value
type PositionType string

const (
	PositionStatic   PositionType = "static"
	PositionRelative PositionType = "relative"
	PositionAbsolute PositionType = "absolute"
	PositionFixed    PositionType = "fixed"
)

// IsOutOfFlow reports absolute and fixed positioning.
func (p PositionType) IsOutOfFlow() bool { return p == PositionAbsolute || p == PositionFixed }

// FloatType represents the float property value
type FloatType string

const (
	FloatNone  FloatType = "none"
	FloatLeft  FloatType = "left"
	FloatRight FloatType = "right"
)

// ClearType represents the clear property value
type ClearType string

const (
	ClearNone  ClearType = "none"
	ClearLeft  ClearType = "left"
	ClearRight ClearType = "right"
	ClearBoth  ClearType = "both"
)

type BoxSizing string

const (
	BoxSizingContentBox BoxSizing = "content-box"
	BoxSizingBorderBox  BoxSizing = "border-box"
)

type Overflow string

const (
	OverflowVisible Overflow = "visible"
	OverflowHidden  Overflow = "hidden"
	OverflowScroll  Overflow = "scroll"
	OverflowAuto    Overflow = "auto"
	OverflowClip    Overflow = "clip"
)

type WritingMode string

const (
	WritingModeHorizontalTB WritingMode = "horizontal-tb"
	WritingModeVerticalRL   WritingMode = "vertical-rl"
	WritingModeVerticalLR   WritingMode = "vertical-lr"
)

// IsVertical reports the vertical writing modes.
func (w WritingMode) IsVertical() bool { return w == WritingModeVerticalRL || w == WritingModeVerticalLR }

type FlexDirection string

const (
	FlexDirectionRow           FlexDirection = "row"
	FlexDirectionRowReverse    FlexDirection = "row-reverse"
	FlexDirectionColumn        FlexDirection = "column"
	FlexDirectionColumnReverse FlexDirection = "column-reverse"
)

type FlexWrap string

const (
	FlexWrapNowrap      FlexWrap = "nowrap"
	FlexWrapWrap        FlexWrap = "wrap"
	FlexWrapWrapReverse FlexWrap = "wrap-reverse"
)

type JustifyContent string

const (
	JustifyFlexStart    JustifyContent = "flex-start"
	JustifyFlexEnd      JustifyContent = "flex-end"
	JustifyCenter       JustifyContent = "center"
	JustifySpaceBetween JustifyContent = "space-between"
	JustifySpaceAround  JustifyContent = "space-around"
	JustifySpaceEvenly  JustifyContent = "space-evenly"
)

// AlignItems is used for align-items, align-self, justify-items and
// justify-self. AlignAuto only appears on the *-self properties.
type AlignItems string

const (
	AlignAuto         AlignItems = "auto"
	AlignStretch      AlignItems = "stretch"
	AlignFlexStart    AlignItems = "flex-start"
	AlignFlexEnd      AlignItems = "flex-end"
	AlignCenter       AlignItems = "center"
	AlignBaseline     AlignItems = "baseline"
	AlignLastBaseline AlignItems = "last baseline"
)

type AlignContent string

const (
	AlignContentStretch      AlignContent = "stretch"
	AlignContentFlexStart    AlignContent = "flex-start"
	AlignContentFlexEnd      AlignContent = "flex-end"
	AlignContentCenter       AlignContent = "center"
	AlignContentSpaceBetween AlignContent = "space-between"
	AlignContentSpaceAround  AlignContent = "space-around"
	AlignContentSpaceEvenly  AlignContent = "space-evenly"
)

type GridAutoFlow string

const (
	GridAutoFlowRow         GridAutoFlow = "row"
	GridAutoFlowColumn      GridAutoFlow = "column"
	GridAutoFlowRowDense    GridAutoFlow = "row dense"
	GridAutoFlowColumnDense GridAutoFlow = "column dense"
)

// ComputedStyle is the typed per-node style record the layout core reads.
// Every field has a CSS initial value, so a missing Style computes to
// DefaultComputedStyle.
type ComputedStyle struct {
	Display     DisplayType
	Position    PositionType
	Float       FloatType
	Clear       ClearType
	BoxSizing   BoxSizing
	Overflow    Overflow
	WritingMode WritingMode

	Width, Height       Length
	MinWidth, MinHeight Length
	MaxWidth, MaxHeight Length

	Margin  LengthEdges
	Padding LengthEdges
	Border  BoxEdge
	Inset   LengthEdges

	FontSize   float64
	LineHeight float64

	FlexDirection  FlexDirection
	FlexWrap       FlexWrap
	FlexGrow       float64
	FlexShrink     float64
	FlexBasis      Length
	Order          int
	JustifyContent JustifyContent
	AlignItems     AlignItems
	AlignSelf      AlignItems
	AlignContent   AlignContent
	RowGap         Length
	ColumnGap      Length

	GridTemplateColumns string
	GridTemplateRows    string
	GridAutoFlow        GridAutoFlow
	GridRowStart        string
	GridRowEnd          string
	GridColumnStart     string
	GridColumnEnd       string
	JustifyItems        AlignItems
	JustifySelf         AlignItems
}

// DefaultComputedStyle returns CSS initial values.
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Display:         DisplayBlock,
		Position:        PositionStatic,
		Float:           FloatNone,
		Clear:           ClearNone,
		BoxSizing:       BoxSizingContentBox,
		Overflow:        OverflowVisible,
		WritingMode:     WritingModeHorizontalTB,
		Width:           Auto,
		Height:          Auto,
		MinWidth:        Auto,
		MinHeight:       Auto,
		MaxWidth:        NoneLength,
		MaxHeight:       NoneLength,
		Margin:          LengthEdges{Top: Px(0), Right: Px(0), Bottom: Px(0), Left: Px(0)},
		Padding:         LengthEdges{Top: Px(0), Right: Px(0), Bottom: Px(0), Left: Px(0)},
		Inset:           LengthEdges{Top: Auto, Right: Auto, Bottom: Auto, Left: Auto},
		FontSize:        defaultFontSize,
		LineHeight:      defaultFontSize * 1.2,
		FlexDirection:   FlexDirectionRow,
		FlexWrap:        FlexWrapNowrap,
		FlexShrink:      1,
		FlexBasis:       Auto,
		JustifyContent:  JustifyFlexStart,
		AlignItems:      AlignStretch,
		AlignSelf:       AlignAuto,
		AlignContent:    AlignContentStretch,
		RowGap:          Px(0),
		ColumnGap:       Px(0),
		GridAutoFlow:    GridAutoFlowRow,
		GridRowStart:    "auto",
		GridRowEnd:      "auto",
		GridColumnStart: "auto",
		GridColumnEnd:   "auto",
		JustifyItems:    AlignStretch,
		JustifySelf:     AlignAuto,
	}
}

// Compute resolves a declared Style into a ComputedStyle. Unknown keywords
// and unparsable values keep the initial value.
func Compute(s *Style) ComputedStyle {
	cs := DefaultComputedStyle()
	if s == nil {
		return cs
	}

	cs.Display = DisplayType(keyword(s, "display", string(cs.Display), map[string]string{
		"list-item": "block", "table": "block", "table-row": "block", "table-cell": "block",
		"flow-root": "block", "inline-table": "inline-block",
	}, "block", "inline", "inline-block", "flex", "inline-flex", "grid", "inline-grid", "contents", "none"))
	cs.Position = PositionType(keyword(s, "position", string(cs.Position), nil,
		"static", "relative", "absolute", "fixed", "sticky"))
	if cs.Position == "sticky" {
		cs.Position = PositionRelative
	}
	cs.Float = FloatType(keyword(s, "float", string(cs.Float), map[string]string{
		"inline-start": "left", "inline-end": "right",
	}, "none", "left", "right"))
	cs.Clear = ClearType(keyword(s, "clear", string(cs.Clear), map[string]string{
		"inline-start": "left", "inline-end": "right",
	}, "none", "left", "right", "both"))
	cs.BoxSizing = BoxSizing(keyword(s, "box-sizing", string(cs.BoxSizing), nil, "content-box", "border-box"))
	cs.Overflow = Overflow(keyword(s, "overflow", string(cs.Overflow), nil,
		"visible", "hidden", "scroll", "auto", "clip"))
	if cs.Overflow == OverflowVisible {
		// overflow-x/y set individually still establish a BFC when not visible.
		for _, p := range []string{"overflow-x", "overflow-y"} {
			if v := Overflow(keyword(s, p, "visible", nil, "visible", "hidden", "scroll", "auto", "clip")); v != OverflowVisible {
				cs.Overflow = v
			}
		}
	}
	cs.WritingMode = WritingMode(keyword(s, "writing-mode", string(cs.WritingMode), map[string]string{
		"tb-rl": "vertical-rl", "lr": "horizontal-tb", "sideways-rl": "vertical-rl", "sideways-lr": "vertical-lr",
	}, "horizontal-tb", "vertical-rl", "vertical-lr"))

	cs.Width = lengthProp(s, "width", cs.Width)
	cs.Height = lengthProp(s, "height", cs.Height)
	cs.MinWidth = lengthProp(s, "min-width", cs.MinWidth)
	cs.MinHeight = lengthProp(s, "min-height", cs.MinHeight)
	cs.MaxWidth = lengthProp(s, "max-width", cs.MaxWidth)
	cs.MaxHeight = lengthProp(s, "max-height", cs.MaxHeight)

	cs.Margin = edgesProp(s, "margin-", "", cs.Margin)
	cs.Padding = edgesProp(s, "padding-", "", cs.Padding)
	cs.Inset = edgesProp(s, "", "", cs.Inset)
	cs.Border = borderWidths(s)

	if fs, ok := s.Get("font-size"); ok {
		if l := ParseLengthValue(fs); l.IsFixed() && l.Value > 0 {
			cs.FontSize = l.Value
		}
	}
	cs.LineHeight = cs.FontSize * 1.2
	if lh, ok := s.Get("line-height"); ok {
		lh = strings.TrimSpace(lh)
		if n, err := strconv.ParseFloat(lh, 64); err == nil {
			cs.LineHeight = n * cs.FontSize
		} else if l := ParseLengthValue(lh); l.IsFixed() {
			cs.LineHeight = l.Value
		} else if l.IsPercent() {
			cs.LineHeight = cs.FontSize * l.Value / 100
		}
	}

	cs.FlexDirection = FlexDirection(keyword(s, "flex-direction", string(cs.FlexDirection), nil,
		"row", "row-reverse", "column", "column-reverse"))
	cs.FlexWrap = FlexWrap(keyword(s, "flex-wrap", string(cs.FlexWrap), nil, "nowrap", "wrap", "wrap-reverse"))
	cs.FlexGrow = numberProp(s, "flex-grow", cs.FlexGrow)
	cs.FlexShrink = numberProp(s, "flex-shrink", cs.FlexShrink)
	if v, ok := s.Get("flex-basis"); ok && strings.TrimSpace(v) != "content" {
		cs.FlexBasis = ParseLengthValue(v)
	}
	cs.Order = int(numberProp(s, "order", 0))
	cs.JustifyContent = JustifyContent(keyword(s, "justify-content", string(cs.JustifyContent), map[string]string{
		"start": "flex-start", "end": "flex-end", "left": "flex-start", "right": "flex-end", "normal": "flex-start",
		"stretch": "flex-start",
	}, "flex-start", "flex-end", "center", "space-between", "space-around", "space-evenly"))
	cs.AlignItems = alignProp(s, "align-items", cs.AlignItems)
	cs.AlignSelf = alignProp(s, "align-self", cs.AlignSelf)
	cs.JustifyItems = alignProp(s, "justify-items", cs.JustifyItems)
	cs.JustifySelf = alignProp(s, "justify-self", cs.JustifySelf)
	cs.AlignContent = AlignContent(keyword(s, "align-content", string(cs.AlignContent), map[string]string{
		"start": "flex-start", "end": "flex-end", "normal": "stretch",
	}, "stretch", "flex-start", "flex-end", "center", "space-between", "space-around", "space-evenly"))
	cs.RowGap = lengthProp(s, "row-gap", cs.RowGap)
	cs.ColumnGap = lengthProp(s, "column-gap", cs.ColumnGap)
	if cs.RowGap.IsAuto() {
		cs.RowGap = Px(0)
	}
	if cs.ColumnGap.IsAuto() {
		cs.ColumnGap = Px(0)
	}

	if v, ok := s.Get("grid-template-columns"); ok {
		cs.GridTemplateColumns = strings.TrimSpace(v)
	}
	if v, ok := s.Get("grid-template-rows"); ok {
		cs.GridTemplateRows = strings.TrimSpace(v)
	}
	cs.GridAutoFlow = GridAutoFlow(keyword(s, "grid-auto-flow", string(cs.GridAutoFlow), map[string]string{
		"dense": "row dense", "dense row": "row dense", "dense column": "column dense",
	}, "row", "column", "row dense", "column dense"))
	for prop, dst := range map[string]*string{
		"grid-row-start":    &cs.GridRowStart,
		"grid-row-end":      &cs.GridRowEnd,
		"grid-column-start": &cs.GridColumnStart,
		"grid-column-end":   &cs.GridColumnEnd,
	} {
		if v, ok := s.Get(prop); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	return cs
}

// EstablishesFlowRoot reports whether the style on its own starts a new
// block formatting context. The root element is handled by the caller.
func (cs *ComputedStyle) EstablishesFlowRoot() bool {
	if cs.Float != FloatNone || cs.Position.IsOutOfFlow() {
		return true
	}
	if cs.Overflow != OverflowVisible && cs.Overflow != OverflowClip {
		return true
	}
	switch cs.Display {
	case DisplayInlineBlock, DisplayFlex, DisplayInlineFlex, DisplayGrid, DisplayInlineGrid:
		return true
	}
	return false
}

// keyword reads an enumerated property. aliases map legacy or logical
// spellings onto allowed values.
func keyword(s *Style, property, def string, aliases map[string]string, allowed ...string) string {
	v, ok := s.Get(property)
	if !ok {
		return def
	}
	v = strings.ToLower(strings.Join(strings.Fields(v), " "))
	if a, ok := aliases[v]; ok {
		v = a
	}
	for _, candidate := range allowed {
		if v == candidate {
			return v
		}
	}
	return def
}

func alignProp(s *Style, property string, def AlignItems) AlignItems {
	return AlignItems(keyword(s, property, string(def), map[string]string{
		"start": "flex-start", "end": "flex-end", "self-start": "flex-start", "self-end": "flex-end",
		"normal": "stretch", "first baseline": "baseline",
	}, "auto", "stretch", "flex-start", "flex-end", "center", "baseline", "last baseline"))
}

func lengthProp(s *Style, property string, def Length) Length {
	v, ok := s.Get(property)
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	switch v {
	case "min-content", "max-content", "fit-content":
		return Auto
	}
	return ParseLengthValue(v)
}

func numberProp(s *Style, property string, def float64) float64 {
	v, ok := s.Get(property)
	if !ok {
		return def
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return n
}

func edgesProp(s *Style, prefix, suffix string, def LengthEdges) LengthEdges {
	return LengthEdges{
		Top:    lengthProp(s, prefix+"top"+suffix, def.Top),
		Right:  lengthProp(s, prefix+"right"+suffix, def.Right),
		Bottom: lengthProp(s, prefix+"bottom"+suffix, def.Bottom),
		Left:   lengthProp(s, prefix+"left"+suffix, def.Left),
	}
}

// borderWidths resolves border-*-width, honoring border-*-style: none.
// A width declared without any style counts, which keeps "border-width: 2px"
// fixtures meaningful.
func borderWidths(s *Style) BoxEdge {
	side := func(name string) float64 {
		if st, ok := s.Get("border-" + name + "-style"); ok && (st == "none" || st == "hidden") {
			return 0
		}
		l := ParseLengthValue(valueOr(s, "border-"+name+"-width", ""))
		if !l.IsFixed() {
			if _, hasStyle := s.Get("border-" + name + "-style"); hasStyle {
				return 3
			}
			return 0
		}
		if l.Value < 0 {
			return 0
		}
		return l.Value
	}
	return BoxEdge{Top: side("top"), Right: side("right"), Bottom: side("bottom"), Left: side("left")}
}

func valueOr(s *Style, property, def string) string {
	if v, ok := s.Get(property); ok {
		return v
	}
	return def
}
