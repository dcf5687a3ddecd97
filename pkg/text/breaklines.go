package text

import "strings"

// BreakLines greedily wraps text into lines no wider than maxWidth. A word
// wider than maxWidth sits on its own line. Whitespace is collapsed.
func BreakLines(m Measurer, s string, fontSize, maxWidth float64) []string {
	words := splitIntoWords(s)
	if len(words) == 0 {
		return nil
	}
	if m.Measure(strings.Join(words, " "), fontSize) <= maxWidth {
		return []string{strings.Join(words, " ")}
	}

	lines := make([]string, 0)
	currentLine := ""
	for _, word := range words {
		testLine := word
		if currentLine != "" {
			testLine = currentLine + " " + word
		}
		if m.Measure(testLine, fontSize) <= maxWidth {
			currentLine = testLine
			continue
		}
		// Word doesn't fit, start new line
		if currentLine != "" {
			lines = append(lines, currentLine)
		}
		currentLine = word
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// MinContentWidth is the widest single word: the narrowest the text can be
// without overflowing.
func MinContentWidth(m Measurer, s string, fontSize float64) float64 {
	widest := 0.0
	for _, word := range splitIntoWords(s) {
		if w := m.Measure(word, fontSize); w > widest {
			widest = w
		}
	}
	return widest
}

// MaxContentWidth is the width of the text on one line with whitespace
// collapsed.
func MaxContentWidth(m Measurer, s string, fontSize float64) float64 {
	words := splitIntoWords(s)
	if len(words) == 0 {
		return 0
	}
	return m.Measure(strings.Join(words, " "), fontSize)
}

// IsCollapsibleWhitespace reports text that renders as nothing.
func IsCollapsibleWhitespace(s string) bool {
	return strings.TrimSpace(s) == ""
}

// splitIntoWords splits text on whitespace
func splitIntoWords(s string) []string {
	return strings.Fields(s)
}
