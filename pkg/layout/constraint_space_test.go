package layout

import (
	"testing"

	"l14layout/pkg/css"
	"l14layout/pkg/unit"
)

func TestConstraintSpace_NewRootSpace(t *testing.T) {
	cs := NewRootSpace(px(800), px(600))

	if !cs.AvailableInlineSize.IsDefinite() || !cs.AvailableInlineSize.Value.Equal(px(800)) {
		t.Errorf("Expected definite inline size 800, got %s", cs.AvailableInlineSize)
	}
	if !cs.BfcOffset.IsResolved() || !cs.BfcOffset.BlockOffset.Or(px(-1)).IsZero() {
		t.Errorf("Expected root offset (0, 0), got %s", cs.BfcOffset)
	}
	if !cs.IsNewFormattingContext {
		t.Error("Expected root space to establish a formatting context")
	}
	if !cs.ExclusionSpace.IsEmpty() || !cs.MarginStrut.IsEmpty() {
		t.Error("Expected empty exclusion space and strut")
	}
	if v, ok := cs.PercentageResolutionBlockSize.Get(); !ok || !v.Equal(px(600)) {
		t.Errorf("Expected percentage base 600, got %s", cs.PercentageResolutionBlockSize)
	}
}

func TestConstraintSpace_ChildInheritsFlowState(t *testing.T) {
	parent := NewRootSpace(px(800), px(600))
	parent.ExclusionSpace = parent.ExclusionSpace.AddFloat(1, at(0, 0),
		FloatSize{InlineSize: px(100), BlockSize: px(50), Side: css.FloatLeft})
	parent.MarginStrut.Append(px(20))
	parent.IsForMeasurementOnly = true

	child := parent.CreateChildSpace(DefinitePx(400), Indefinite, false)

	if child.IsNewFormattingContext {
		t.Error("Expected child to stay in the parent's formatting context")
	}
	if len(child.ExclusionSpace.AllFloats()) != 1 {
		t.Errorf("Expected inherited float, got %d", len(child.ExclusionSpace.AllFloats()))
	}
	if !child.MarginStrut.Collapse().Equal(px(20)) {
		t.Errorf("Expected inherited strut 20, got %s", child.MarginStrut.Collapse())
	}
	if !child.IsForMeasurementOnly {
		t.Error("Expected measurement flag to be inherited")
	}
	if child.BfcOffset != parent.BfcOffset {
		t.Errorf("Expected offset %s, got %s", parent.BfcOffset, child.BfcOffset)
	}
}

func TestConstraintSpace_NewFormattingContextResets(t *testing.T) {
	parent := NewRootSpace(px(800), px(600))
	parent.MarginStrut.Append(px(20))

	child := parent.CreateChildSpace(DefinitePx(400), Indefinite, true)

	if child.BfcOffset.IsResolved() {
		t.Errorf("Expected unresolved offset, got %s", child.BfcOffset)
	}
	if !child.MarginStrut.IsEmpty() {
		t.Error("Expected empty strut in a new formatting context")
	}
}

func TestConstraintSpace_PlacedChildSpace(t *testing.T) {
	parent := NewRootSpace(px(800), px(600))
	child := parent.placedChildSpace(at(10, 20), px(100), px(50), true)

	if !child.MarginsAlreadyApplied || !child.IsFixedInlineSize || !child.IsFixedBlockSize {
		t.Error("Expected a fixed, already-placed space")
	}
	if child.BfcOffset != at(10, 20) {
		t.Errorf("Expected offset (10, 20), got %s", child.BfcOffset)
	}
	if !child.AvailableBlockSize.Value.Equal(px(50)) {
		t.Errorf("Expected block size 50, got %s", child.AvailableBlockSize)
	}

	loose := parent.placedChildSpace(at(0, 0), px(100), px(50), false)
	if loose.IsFixedBlockSize || loose.AvailableBlockSize.IsDefinite() {
		t.Errorf("Expected indefinite block size, got %s", loose.AvailableBlockSize)
	}
}

func TestAvailableSize_Resolve(t *testing.T) {
	tests := []struct {
		size AvailableSize
		want unit.LayoutUnit
		str  string
	}{
		{DefinitePx(120), px(120), "definite(120px)"},
		{Indefinite, px(800), "indefinite"},
		{MinContent, px(800), "min-content"},
		{MaxContent, px(800), "max-content"},
	}
	for _, tt := range tests {
		if got := tt.size.Resolve(px(800)); !got.Equal(tt.want) {
			t.Errorf("%s: Expected %s, got %s", tt.str, tt.want, got)
		}
		if got := tt.size.String(); got != tt.str {
			t.Errorf("Expected %q, got %q", tt.str, got)
		}
	}
}

func TestMarginStrut_Collapse(t *testing.T) {
	tests := []struct {
		name    string
		margins []float64
		want    float64
	}{
		{"empty", nil, 0},
		{"positive max", []float64{10, 30, 20}, 30},
		{"negative min", []float64{-10, -30}, -30},
		{"mixed", []float64{30, -10, 20, -5}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s MarginStrut
			for _, m := range tt.margins {
				s.Append(px(m))
			}
			if got := s.Collapse(); !got.Equal(px(tt.want)) {
				t.Errorf("Expected %v, got %s", tt.want, got)
			}
		})
	}
}

func TestMarginStrut_AppendStrutIsIdempotent(t *testing.T) {
	var a MarginStrut
	a.Append(px(20))
	a.Append(px(-5))

	b := a
	b.AppendStrut(a)
	b.AppendStrut(a)
	if b != a {
		t.Errorf("Expected merging a strut into itself to change nothing, got %+v", b)
	}

	var c MarginStrut
	c.Append(px(40))
	c.AppendStrut(a)
	if !c.Collapse().Equal(px(35)) {
		t.Errorf("Expected 35, got %s", c.Collapse())
	}
}
