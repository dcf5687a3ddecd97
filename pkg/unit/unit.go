// Package unit provides the fixed-point coordinate type used by layout.
//
// A LayoutUnit stores 1/64th of a CSS pixel in an int32. All arithmetic stays
// in raw integer units and saturates at the int32 range, so deep trees never
// accumulate floating-point drift.
package unit

import (
	"fmt"
	"math"
)

const (
	// FractionalBits is the number of sub-pixel bits.
	FractionalBits = 6
	// Scale is the number of raw units in one pixel.
	Scale = 1 << FractionalBits

	rawMax = math.MaxInt32
	rawMin = math.MinInt32
)

// LayoutUnit is a sub-pixel coordinate in 1/64px.
type LayoutUnit struct {
	raw int32
}

// Zero is the zero unit.
var Zero = LayoutUnit{}

// Max and Min are the saturation bounds.
var (
	Max = LayoutUnit{raw: rawMax}
	Min = LayoutUnit{raw: rawMin}
)

func saturate(v int64) LayoutUnit {
	if v > rawMax {
		return Max
	}
	if v < rawMin {
		return Min
	}
	return LayoutUnit{raw: int32(v)}
}

// FromRaw wraps a raw 1/64px value.
func FromRaw(raw int32) LayoutUnit {
	return LayoutUnit{raw: raw}
}

// FromPx converts float pixels to the nearest 1/64px.
// NaN maps to zero; infinities saturate.
func FromPx(px float64) LayoutUnit {
	if math.IsNaN(px) {
		return Zero
	}
	v := math.Round(px * Scale)
	if v >= rawMax {
		return Max
	}
	if v <= rawMin {
		return Min
	}
	return LayoutUnit{raw: int32(v)}
}

// FromInt converts whole pixels.
func FromInt(px int) LayoutUnit {
	return saturate(int64(px) * Scale)
}

// Raw returns the underlying 1/64px integer.
func (u LayoutUnit) Raw() int32 {
	return u.raw
}

// ToPx returns the value in float pixels.
func (u LayoutUnit) ToPx() float64 {
	return float64(u.raw) / Scale
}

// FloorPx returns the largest whole pixel <= u.
func (u LayoutUnit) FloorPx() int32 {
	// Arithmetic shift is floor division for negative values too.
	return u.raw >> FractionalBits
}

// CeilPx returns the smallest whole pixel >= u.
func (u LayoutUnit) CeilPx() int32 {
	return int32(-((-int64(u.raw)) >> FractionalBits))
}

// RoundPx rounds half up to a whole pixel.
func (u LayoutUnit) RoundPx() int32 {
	return int32((int64(u.raw) + Scale/2) >> FractionalBits)
}

// Floor snaps u down to a whole pixel.
func (u LayoutUnit) Floor() LayoutUnit {
	return saturate(int64(u.FloorPx()) * Scale)
}

// Ceil snaps u up to a whole pixel.
func (u LayoutUnit) Ceil() LayoutUnit {
	return saturate(int64(u.CeilPx()) * Scale)
}

// Round snaps u to the nearest whole pixel.
func (u LayoutUnit) Round() LayoutUnit {
	return saturate(int64(u.RoundPx()) * Scale)
}

// Add returns u+v, saturating.
func (u LayoutUnit) Add(v LayoutUnit) LayoutUnit {
	return saturate(int64(u.raw) + int64(v.raw))
}

// Sub returns u-v, saturating.
func (u LayoutUnit) Sub(v LayoutUnit) LayoutUnit {
	return saturate(int64(u.raw) - int64(v.raw))
}

// Neg returns -u, saturating.
func (u LayoutUnit) Neg() LayoutUnit {
	return saturate(-int64(u.raw))
}

// MulInt scales by an integer factor.
func (u LayoutUnit) MulInt(n int) LayoutUnit {
	return saturate(int64(u.raw) * int64(n))
}

// MulFloat scales by a float factor, rounding once in raw units.
func (u LayoutUnit) MulFloat(f float64) LayoutUnit {
	v := math.Round(float64(u.raw) * f)
	if math.IsNaN(v) {
		return Zero
	}
	if v >= rawMax {
		return Max
	}
	if v <= rawMin {
		return Min
	}
	return LayoutUnit{raw: int32(v)}
}

// DivInt divides by an integer, truncating toward zero. Division by zero
// returns zero.
func (u LayoutUnit) DivInt(n int) LayoutUnit {
	if n == 0 {
		return Zero
	}
	return saturate(int64(u.raw) / int64(n))
}

// ClampNonNegative returns max(u, 0).
func (u LayoutUnit) ClampNonNegative() LayoutUnit {
	if u.raw < 0 {
		return Zero
	}
	return u
}

func (u LayoutUnit) IsZero() bool { return u.raw == 0 }

// Equal reports raw equality. go-cmp picks it up when diffing layout output.
func (u LayoutUnit) Equal(v LayoutUnit) bool { return u.raw == v.raw }

func (u LayoutUnit) Less(v LayoutUnit) bool { return u.raw < v.raw }

func (u LayoutUnit) LessEqual(v LayoutUnit) bool { return u.raw <= v.raw }

func (u LayoutUnit) Greater(v LayoutUnit) bool { return u.raw > v.raw }

func (u LayoutUnit) GreaterEqual(v LayoutUnit) bool { return u.raw >= v.raw }

// MaxOf returns the larger of a and b.
func MaxOf(a, b LayoutUnit) LayoutUnit {
	if a.raw >= b.raw {
		return a
	}
	return b
}

// MinOf returns the smaller of a and b.
func MinOf(a, b LayoutUnit) LayoutUnit {
	if a.raw <= b.raw {
		return a
	}
	return b
}

// Clamp bounds v to [lo, hi]. When lo > hi, lo wins.
func Clamp(v, lo, hi LayoutUnit) LayoutUnit {
	return MaxOf(lo, MinOf(v, hi))
}

func (u LayoutUnit) String() string {
	return fmt.Sprintf("%gpx", u.ToPx())
}

// Quantize snaps a float pixel value to the nearest 1/64px.
func Quantize(px float64) float64 {
	return math.Round(px*Scale) / Scale
}

// QuantizeFloor snaps a float pixel value down to the 1/64px grid.
func QuantizeFloor(px float64) float64 {
	return math.Floor(px*Scale) / Scale
}
