package layout

import "l14layout/pkg/unit"

// MarginStrut accumulates adjoining vertical margins that have not been
// collapsed yet. The collapsed value is the largest positive margin plus the
// most negative one.
type MarginStrut struct {
	PositiveMargin unit.LayoutUnit
	NegativeMargin unit.LayoutUnit
}

// Append adds margin m to the strut.
func (s *MarginStrut) Append(m unit.LayoutUnit) {
	if m.Greater(unit.Zero) {
		s.PositiveMargin = unit.MaxOf(s.PositiveMargin, m)
	} else {
		s.NegativeMargin = unit.MinOf(s.NegativeMargin, m)
	}
}

// Collapse returns the resolved margin.
func (s MarginStrut) Collapse() unit.LayoutUnit {
	return s.PositiveMargin.Add(s.NegativeMargin)
}

func (s MarginStrut) IsEmpty() bool {
	return s.PositiveMargin.IsZero() && s.NegativeMargin.IsZero()
}

// AppendStrut merges every margin held by o into the strut. Merging is
// idempotent, so a margin already present does not count twice.
func (s *MarginStrut) AppendStrut(o MarginStrut) {
	s.PositiveMargin = unit.MaxOf(s.PositiveMargin, o.PositiveMargin)
	s.NegativeMargin = unit.MinOf(s.NegativeMargin, o.NegativeMargin)
}
