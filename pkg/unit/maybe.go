package unit

// Maybe is an optional LayoutUnit. The zero value is None.
type Maybe struct {
	v  LayoutUnit
	ok bool
}

// Some wraps a present value.
func Some(v LayoutUnit) Maybe {
	return Maybe{v: v, ok: true}
}

// None returns an absent value.
func None() Maybe {
	return Maybe{}
}

// Get returns the value and whether it is present.
func (m Maybe) Get() (LayoutUnit, bool) {
	return m.v, m.ok
}

func (m Maybe) IsSome() bool { return m.ok }

func (m Maybe) IsNone() bool { return !m.ok }

func (m Maybe) Equal(o Maybe) bool { return m.ok == o.ok && (!m.ok || m.v == o.v) }

// Or returns the value or the fallback when absent.
func (m Maybe) Or(fallback LayoutUnit) LayoutUnit {
	if m.ok {
		return m.v
	}
	return fallback
}

// Add shifts a present value by d; None stays None.
func (m Maybe) Add(d LayoutUnit) Maybe {
	if !m.ok {
		return m
	}
	return Some(m.v.Add(d))
}

func (m Maybe) String() string {
	if !m.ok {
		return "none"
	}
	return m.v.String()
}
