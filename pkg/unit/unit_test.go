package unit

import (
	"math"
	"testing"
)

func TestFromPx_KnownRaw(t *testing.T) {
	if raw := FromPx(8.328125).Raw(); raw != 533 {
		t.Errorf("Expected raw 533 for 8.328125px, got %d", raw)
	}
	if raw := FromPx(1).Raw(); raw != 64 {
		t.Errorf("Expected raw 64 for 1px, got %d", raw)
	}
}

func TestFromPx_RoundTrip(t *testing.T) {
	values := []float64{0, 0.5, 1.0 / 3, 12.34, -7.77, 1000.015625, 99999.9, -0.0078125}
	for _, v := range values {
		got := FromPx(v).ToPx()
		if math.Abs(got-v) > 1.0/64 {
			t.Errorf("Round trip of %f drifted to %f", v, got)
		}
	}
}

func TestFloorCeil_IntegerDivision(t *testing.T) {
	tests := []struct {
		raw         int32
		floor, ceil int32
	}{
		{0, 0, 0},
		{64, 1, 1},
		{65, 1, 2},
		{127, 1, 2},
		{-1, -1, 0},
		{-64, -1, -1},
		{-65, -2, -1},
	}
	for _, tt := range tests {
		u := FromRaw(tt.raw)
		if got := u.FloorPx(); got != tt.floor {
			t.Errorf("FloorPx(raw %d) = %d, expected %d", tt.raw, got, tt.floor)
		}
		if got := u.CeilPx(); got != tt.ceil {
			t.Errorf("CeilPx(raw %d) = %d, expected %d", tt.raw, got, tt.ceil)
		}
	}
}

func TestRound(t *testing.T) {
	if got := FromPx(10.5).RoundPx(); got != 11 {
		t.Errorf("Expected 10.5 to round to 11, got %d", got)
	}
	if got := FromPx(10.49).RoundPx(); got != 10 {
		t.Errorf("Expected 10.49 to round to 10, got %d", got)
	}
	if got := FromPx(3.7).Round(); got != FromInt(4) {
		t.Errorf("Expected Round(3.7) = 4px, got %s", got)
	}
}

func TestSaturation(t *testing.T) {
	if got := Max.Add(FromInt(1)); got != Max {
		t.Errorf("Expected Max+1 to saturate, got %s", got)
	}
	if got := Min.Sub(FromInt(1)); got != Min {
		t.Errorf("Expected Min-1 to saturate, got %s", got)
	}
	if got := Min.Neg(); got != Max {
		t.Errorf("Expected -Min to saturate to Max, got %s", got)
	}
	if got := FromPx(math.Inf(1)); got != Max {
		t.Errorf("Expected +Inf to saturate, got %s", got)
	}
	if got := FromPx(math.NaN()); got != Zero {
		t.Errorf("Expected NaN to map to zero, got %s", got)
	}
	if got := FromInt(1 << 30); got != Max {
		t.Errorf("Expected huge int to saturate, got %s", got)
	}
}

func TestArithmetic(t *testing.T) {
	a := FromPx(10.25)
	b := FromPx(2.5)
	if got := a.Add(b).ToPx(); got != 12.75 {
		t.Errorf("Expected 12.75, got %f", got)
	}
	if got := a.Sub(b).ToPx(); got != 7.75 {
		t.Errorf("Expected 7.75, got %f", got)
	}
	if got := b.MulInt(3).ToPx(); got != 7.5 {
		t.Errorf("Expected 7.5, got %f", got)
	}
	if got := b.MulFloat(0.5).ToPx(); got != 1.25 {
		t.Errorf("Expected 1.25, got %f", got)
	}
	if got := a.DivInt(0); got != Zero {
		t.Errorf("Expected division by zero to yield zero, got %s", got)
	}
	if got := Clamp(FromInt(50), FromInt(10), FromInt(40)); got != FromInt(40) {
		t.Errorf("Expected clamp to 40, got %s", got)
	}
	if got := FromInt(-5).ClampNonNegative(); got != Zero {
		t.Errorf("Expected negative clamp to zero, got %s", got)
	}
}

func TestQuantize(t *testing.T) {
	if got := Quantize(1.0 / 3); got != 21.0/64 {
		t.Errorf("Expected 21/64, got %f", got)
	}
	if got := QuantizeFloor(0.999); got != 63.0/64 {
		t.Errorf("Expected 63/64, got %f", got)
	}
}

func TestMaybe(t *testing.T) {
	var m Maybe
	if m.IsSome() {
		t.Error("Expected zero Maybe to be None")
	}
	if got := m.Add(FromInt(3)); got.IsSome() {
		t.Error("Expected None + 3 to stay None")
	}
	s := Some(FromInt(2)).Add(FromInt(3))
	if v, ok := s.Get(); !ok || v != FromInt(5) {
		t.Errorf("Expected Some(5px), got %s", s)
	}
	if got := None().Or(FromInt(7)); got != FromInt(7) {
		t.Errorf("Expected fallback 7px, got %s", got)
	}
}
