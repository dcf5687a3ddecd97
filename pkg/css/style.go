package css

import (
	"strconv"
	"strings"
)

// Style is the raw declared property map for one node, after shorthand
// expansion. Compute turns it into the typed record layout consumes.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	if s == nil {
		return "", false
	}
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

// Merge copies every property of other into s, overwriting.
func (s *Style) Merge(other *Style) {
	if other == nil {
		return
	}
	for k, v := range other.Properties {
		s.Properties[k] = v
	}
}

func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// ParseLength parses a pixel length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// ParseInlineStyle parses the body of a style attribute.
func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	for _, decl := range strings.Split(styleAttr, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		property := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(parts[1])
		value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		if property == "" || value == "" {
			continue
		}
		expandShorthand(style, property, value)
	}
	return style
}

// expandShorthand expands shorthand CSS properties into longhands
func expandShorthand(style *Style, property, value string) {
	switch property {
	case "margin", "padding":
		expandBoxProperty(style, property, "", value)
	case "border":
		expandBorderProperty(style, []string{"top", "right", "bottom", "left"}, value)
	case "border-top", "border-right", "border-bottom", "border-left":
		expandBorderProperty(style, []string{strings.TrimPrefix(property, "border-")}, value)
	case "border-width":
		expandBoxProperty(style, "border", "-width", value)
	case "inset":
		expandBoxProperty(style, "", "", value)
	case "flex":
		expandFlex(style, value)
	case "flex-flow":
		for _, part := range strings.Fields(value) {
			switch part {
			case "row", "row-reverse", "column", "column-reverse":
				style.Set("flex-direction", part)
			default:
				style.Set("flex-wrap", part)
			}
		}
	case "gap", "grid-gap":
		parts := strings.Fields(value)
		if len(parts) == 0 {
			return
		}
		style.Set("row-gap", parts[0])
		if len(parts) > 1 {
			style.Set("column-gap", parts[1])
		} else {
			style.Set("column-gap", parts[0])
		}
	case "grid-row-gap":
		style.Set("row-gap", value)
	case "grid-column-gap":
		style.Set("column-gap", value)
	case "grid-row", "grid-column":
		start, end := splitSlash(value)
		style.Set(property+"-start", start)
		if end != "" {
			style.Set(property+"-end", end)
		}
	case "place-items":
		parts := strings.Fields(value)
		if len(parts) == 0 {
			return
		}
		style.Set("align-items", parts[0])
		if len(parts) > 1 {
			style.Set("justify-items", parts[1])
		} else {
			style.Set("justify-items", parts[0])
		}
	default:
		style.Set(property, value)
	}
}

// expandBoxProperty expands a 1-4 value box shorthand.
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
// "10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l)
func expandBoxProperty(style *Style, prefix, suffix, value string) {
	parts := strings.Fields(value)
	var top, right, bottom, left string
	switch len(parts) {
	case 1:
		top, right, bottom, left = parts[0], parts[0], parts[0], parts[0]
	case 2:
		top, right, bottom, left = parts[0], parts[1], parts[0], parts[1]
	case 3:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[1]
	case 4:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[3]
	default:
		return
	}
	name := func(side string) string {
		if prefix == "" {
			return side + suffix
		}
		return prefix + "-" + side + suffix
	}
	style.Set(name("top"), top)
	style.Set(name("right"), right)
	style.Set(name("bottom"), bottom)
	style.Set(name("left"), left)
}

// expandBorderProperty expands border shorthand for the given sides.
// Format: "1px solid black" or "2px dotted #FF0000"
func expandBorderProperty(style *Style, sides []string, value string) {
	for _, part := range strings.Fields(value) {
		switch {
		case isBorderStyle(part):
			for _, side := range sides {
				style.Set("border-"+side+"-style", part)
			}
		case isLengthToken(part):
			for _, side := range sides {
				style.Set("border-"+side+"-width", part)
			}
		default:
			for _, side := range sides {
				style.Set("border-"+side+"-color", part)
			}
		}
	}
}

func isBorderStyle(s string) bool {
	switch s {
	case "none", "hidden", "solid", "dotted", "dashed", "double", "groove", "ridge", "inset", "outset":
		return true
	}
	return false
}

func isLengthToken(s string) bool {
	switch s {
	case "thin", "medium", "thick":
		return true
	}
	_, ok := ParseLength(s)
	return ok
}

// expandFlex expands the flex shorthand:
// "none", "auto", "<grow>", "<grow> <shrink>", "<grow> <basis>",
// "<grow> <shrink> <basis>", or "<basis>".
func expandFlex(style *Style, value string) {
	switch strings.TrimSpace(value) {
	case "none":
		style.Set("flex-grow", "0")
		style.Set("flex-shrink", "0")
		style.Set("flex-basis", "auto")
		return
	case "auto":
		style.Set("flex-grow", "1")
		style.Set("flex-shrink", "1")
		style.Set("flex-basis", "auto")
		return
	case "initial":
		style.Set("flex-grow", "0")
		style.Set("flex-shrink", "1")
		style.Set("flex-basis", "auto")
		return
	}

	grow, shrink, basis := "", "1", "0%"
	for _, part := range strings.Fields(value) {
		if _, err := strconv.ParseFloat(part, 64); err == nil {
			if grow == "" {
				grow = part
			} else {
				shrink = part
			}
			continue
		}
		basis = part
	}
	if grow == "" {
		grow = "1"
	}
	style.Set("flex-grow", grow)
	style.Set("flex-shrink", shrink)
	style.Set("flex-basis", basis)
}

func splitSlash(value string) (string, string) {
	parts := strings.SplitN(value, "/", 2)
	start := strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return start, ""
	}
	return start, strings.TrimSpace(parts[1])
}
