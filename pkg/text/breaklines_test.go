package text

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBreakLines(t *testing.T) {
	// Every rune is 10px at size 10.
	m := FixedMeasurer{Advance: 1}

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		expected []string
	}{
		{"fits on one line", "ab cd", 50, []string{"ab cd"}},
		{"wraps at word boundary", "ab cd ef", 50, []string{"ab cd", "ef"}},
		{"long word on its own line", "a abcdefgh b", 50, []string{"a", "abcdefgh", "b"}},
		{"whitespace collapsed", "  ab \n  cd  ", 100, []string{"ab cd"}},
		{"empty", "   ", 100, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BreakLines(m, tt.text, 10, tt.maxWidth)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("BreakLines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContentWidths(t *testing.T) {
	m := FixedMeasurer{Advance: 1}
	if got := MinContentWidth(m, "a bbb cc", 10); got != 30 {
		t.Errorf("Expected min-content 30, got %f", got)
	}
	if got := MaxContentWidth(m, "a  bbb cc", 10); got != 80 {
		t.Errorf("Expected max-content 80, got %f", got)
	}
	if !IsCollapsibleWhitespace(" \n\t") || IsCollapsibleWhitespace(" x ") {
		t.Error("IsCollapsibleWhitespace misclassified input")
	}
}
