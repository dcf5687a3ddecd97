package css

import "testing"

func TestParseInlineStyle_MultipleProperties(t *testing.T) {
	style := ParseInlineStyle("color: red; WIDTH: 100px !important;;")
	color, _ := style.Get("color")
	width, _ := style.Get("width")
	if color != "red" || width != "100px" {
		t.Errorf("expected both properties to parse, got color=%q width=%q", color, width)
	}
}

func TestGetLength_PixelValue(t *testing.T) {
	style := ParseInlineStyle("width: 100px")
	width, ok := style.GetLength("width")
	if !ok || width != 100.0 {
		t.Errorf("expected width=100.0, got %f", width)
	}
}

func TestParseInlineStyle_BoxShorthands(t *testing.T) {
	tests := []struct {
		decl                     string
		top, right, bottom, left string
	}{
		{"margin: 10px", "10px", "10px", "10px", "10px"},
		{"margin: 10px 20px", "10px", "20px", "10px", "20px"},
		{"margin: 1px 2px 3px", "1px", "2px", "3px", "2px"},
		{"margin: 1px 2px 3px 4px", "1px", "2px", "3px", "4px"},
	}
	for _, tt := range tests {
		style := ParseInlineStyle(tt.decl)
		got := [4]string{}
		got[0], _ = style.Get("margin-top")
		got[1], _ = style.Get("margin-right")
		got[2], _ = style.Get("margin-bottom")
		got[3], _ = style.Get("margin-left")
		if got != [4]string{tt.top, tt.right, tt.bottom, tt.left} {
			t.Errorf("%s: got %v", tt.decl, got)
		}
	}
}

func TestParseInlineStyle_BorderShorthand(t *testing.T) {
	style := ParseInlineStyle("border: 2px solid black; border-left: none")
	if w, _ := style.Get("border-top-width"); w != "2px" {
		t.Errorf("expected border-top-width 2px, got %q", w)
	}
	if s, _ := style.Get("border-left-style"); s != "none" {
		t.Errorf("expected border-left-style none, got %q", s)
	}
}

func TestParseInlineStyle_FlexShorthand(t *testing.T) {
	tests := []struct {
		value                string
		grow, shrink, basis string
	}{
		{"1", "1", "1", "0%"},
		{"2 3", "2", "3", "0%"},
		{"1 0 100px", "1", "0", "100px"},
		{"100px", "1", "1", "100px"},
		{"none", "0", "0", "auto"},
		{"auto", "1", "1", "auto"},
	}
	for _, tt := range tests {
		style := ParseInlineStyle("flex: " + tt.value)
		g, _ := style.Get("flex-grow")
		s, _ := style.Get("flex-shrink")
		b, _ := style.Get("flex-basis")
		if g != tt.grow || s != tt.shrink || b != tt.basis {
			t.Errorf("flex: %s => (%s, %s, %s), expected (%s, %s, %s)", tt.value, g, s, b, tt.grow, tt.shrink, tt.basis)
		}
	}
}

func TestParseInlineStyle_GapAndGridLines(t *testing.T) {
	style := ParseInlineStyle("gap: 4px 8px; grid-column: 1 / span 2; grid-row: 3")
	if v, _ := style.Get("row-gap"); v != "4px" {
		t.Errorf("expected row-gap 4px, got %q", v)
	}
	if v, _ := style.Get("column-gap"); v != "8px" {
		t.Errorf("expected column-gap 8px, got %q", v)
	}
	if v, _ := style.Get("grid-column-end"); v != "span 2" {
		t.Errorf("expected grid-column-end 'span 2', got %q", v)
	}
	if _, ok := style.Get("grid-row-end"); ok {
		t.Error("grid-row without slash should not set an end")
	}
}

func TestParseLengthValue(t *testing.T) {
	tests := []struct {
		in       string
		expected Length
	}{
		{"10px", Px(10)},
		{"0", Px(0)},
		{"50%", Percent(50)},
		{"auto", Auto},
		{"none", NoneLength},
		{"2em", Px(32)},
		{"12pt", Px(16)},
		{"garbage", Auto},
	}
	for _, tt := range tests {
		if got := ParseLengthValue(tt.in); got != tt.expected {
			t.Errorf("ParseLengthValue(%q) = %+v, expected %+v", tt.in, got, tt.expected)
		}
	}
}

func TestLengthResolve(t *testing.T) {
	if v, ok := Percent(25).Resolve(200, true); !ok || v != 50 {
		t.Errorf("expected 50, got %f (%v)", v, ok)
	}
	if _, ok := Percent(25).Resolve(0, false); ok {
		t.Error("percent against indefinite base must not resolve")
	}
	if _, ok := Auto.Resolve(100, true); ok {
		t.Error("auto must not resolve")
	}
}
