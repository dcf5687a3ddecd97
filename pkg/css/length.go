package css

import (
	"strconv"
	"strings"
)

// LengthUnit classifies a Length.
type LengthUnit int

const (
	UnitAuto LengthUnit = iota
	UnitPx
	UnitPercent
	UnitNone // max-width: none
)

// Length is a computed length-percentage, or auto/none.
type Length struct {
	Value float64
	Unit  LengthUnit
}

// Auto is the "auto" keyword.
var Auto = Length{Unit: UnitAuto}

// NoneLength is the "none" keyword for max-* properties.
var NoneLength = Length{Unit: UnitNone}

func Px(v float64) Length      { return Length{Value: v, Unit: UnitPx} }
func Percent(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

func (l Length) IsAuto() bool    { return l.Unit == UnitAuto }
func (l Length) IsNone() bool    { return l.Unit == UnitNone }
func (l Length) IsPercent() bool { return l.Unit == UnitPercent }

// IsFixed reports whether l is an absolute pixel value.
func (l Length) IsFixed() bool { return l.Unit == UnitPx }

// Resolve returns the pixel value of l against base. Percentages need a
// definite base (hasBase); auto and none never resolve.
func (l Length) Resolve(base float64, hasBase bool) (float64, bool) {
	switch l.Unit {
	case UnitPx:
		return l.Value, true
	case UnitPercent:
		if !hasBase {
			return 0, false
		}
		return base * l.Value / 100, true
	}
	return 0, false
}

// ResolveOr resolves l or returns fallback.
func (l Length) ResolveOr(base float64, hasBase bool, fallback float64) float64 {
	if v, ok := l.Resolve(base, hasBase); ok {
		return v
	}
	return fallback
}

const defaultFontSize = 16.0

// ParseLengthValue parses a CSS length-percentage. Supported units are px,
// %, em/rem (against 16px), pt and unitless numbers. Unknown input is auto.
func ParseLengthValue(val string) Length {
	val = strings.ToLower(strings.TrimSpace(val))
	switch val {
	case "", "auto":
		return Auto
	case "none":
		return NoneLength
	case "0":
		return Px(0)
	case "thin":
		return Px(1)
	case "medium":
		return Px(3)
	case "thick":
		return Px(5)
	}

	if strings.HasSuffix(val, "%") {
		if n, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64); err == nil {
			return Percent(n)
		}
		return Auto
	}

	scale, divisor := 1.0, 1.0
	switch {
	case strings.HasSuffix(val, "rem"):
		val, scale = strings.TrimSuffix(val, "rem"), defaultFontSize
	case strings.HasSuffix(val, "em"):
		val, scale = strings.TrimSuffix(val, "em"), defaultFontSize
	case strings.HasSuffix(val, "pt"):
		val, scale, divisor = strings.TrimSuffix(val, "pt"), 4, 3
	case strings.HasSuffix(val, "px"):
		val = strings.TrimSuffix(val, "px")
	}
	n, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return Auto
	}
	return Px(n * scale / divisor)
}

// BoxEdge represents the four sides of a box (top, right, bottom, left)
type BoxEdge struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (e BoxEdge) Horizontal() float64 { return e.Left + e.Right }
func (e BoxEdge) Vertical() float64   { return e.Top + e.Bottom }

// LengthEdges holds four side lengths that may be auto (margins, insets).
type LengthEdges struct {
	Top    Length
	Right  Length
	Bottom Length
	Left   Length
}

// Resolve converts the edges to pixels against the containing inline size.
// Auto sides resolve to zero.
func (e LengthEdges) Resolve(inlineBase float64, hasBase bool) BoxEdge {
	return BoxEdge{
		Top:    e.Top.ResolveOr(inlineBase, hasBase, 0),
		Right:  e.Right.ResolveOr(inlineBase, hasBase, 0),
		Bottom: e.Bottom.ResolveOr(inlineBase, hasBase, 0),
		Left:   e.Left.ResolveOr(inlineBase, hasBase, 0),
	}
}
