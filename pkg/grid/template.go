package grid

import (
	"strconv"
	"strings"
)

// ParseTemplate parses a grid-template-columns or grid-template-rows value.
// It understands lengths in px, percentages, fr, the content keywords,
// minmax(), fit-content(), repeat(N, …) and repeat(auto-fill|auto-fit, …).
// Parsing stops at the first token it cannot read. An empty or unreadable
// template yields a single auto track.
func ParseTemplate(template string, gap float64) AxisTracks {
	at := AxisTracks{Gap: gap}
	for _, tok := range splitTopLevel(strings.TrimSpace(template), ' ') {
		name, args, isFunc := splitFunction(tok)
		if isFunc && name == "repeat" {
			rep, ok := parseRepeat(args)
			if !ok {
				break
			}
			if rep.Kind == RepeatCount {
				for range rep.Count {
					for _, size := range rep.Tracks {
						at.Tracks = append(at.Tracks, GridTrack{Size: size, Type: Explicit})
					}
				}
				continue
			}
			at.AutoRepeat = &rep
			continue
		}
		size, ok := parseTrackSize(tok)
		if !ok {
			break
		}
		at.Tracks = append(at.Tracks, GridTrack{Size: size, Type: Explicit})
	}

	if len(at.Tracks) == 0 && at.AutoRepeat == nil {
		at.Tracks = []GridTrack{{Size: Breadth(Auto()), Type: Explicit}}
	}
	return at
}

func parseRepeat(args string) (TrackRepeat, bool) {
	parts := splitTopLevel(args, ',')
	if len(parts) != 2 {
		return TrackRepeat{}, false
	}
	var rep TrackRepeat
	switch first := strings.ToLower(strings.TrimSpace(parts[0])); first {
	case "auto-fill":
		rep.Kind = RepeatAutoFill
	case "auto-fit":
		rep.Kind = RepeatAutoFit
	default:
		n, err := strconv.Atoi(first)
		if err != nil || n <= 0 {
			return TrackRepeat{}, false
		}
		rep.Kind = RepeatCount
		rep.Count = n
	}

	for _, tok := range splitTopLevel(strings.TrimSpace(parts[1]), ' ') {
		size, ok := parseTrackSize(tok)
		if !ok {
			break
		}
		rep.Tracks = append(rep.Tracks, size)
	}
	return rep, len(rep.Tracks) > 0
}

func parseTrackSize(tok string) (GridTrackSize, bool) {
	name, args, isFunc := splitFunction(tok)
	if !isFunc {
		b, ok := parseBreadth(tok)
		return Breadth(b), ok
	}
	switch name {
	case "minmax":
		parts := splitTopLevel(args, ',')
		if len(parts) != 2 {
			return GridTrackSize{}, false
		}
		lo, ok1 := parseBreadth(parts[0])
		hi, ok2 := parseBreadth(parts[1])
		return MinMax(lo, hi), ok1 && ok2
	case "fit-content":
		limit, ok := parseBreadth(args)
		return FitContent(limit), ok
	}
	return GridTrackSize{}, false
}

func parseBreadth(tok string) (TrackBreadth, bool) {
	tok = strings.ToLower(strings.TrimSpace(tok))
	switch tok {
	case "auto":
		return Auto(), true
	case "min-content":
		return MinContent(), true
	case "max-content":
		return MaxContent(), true
	case "0":
		return Length(0), true
	}

	var suffix string
	for _, s := range []string{"px", "fr", "%"} {
		if strings.HasSuffix(tok, s) {
			suffix = s
			break
		}
	}
	if suffix == "" {
		return TrackBreadth{}, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(tok, suffix), 64)
	if err != nil || v < 0 {
		return TrackBreadth{}, false
	}
	switch suffix {
	case "fr":
		return Flex(v), true
	case "%":
		return Percentage(v / 100), true
	}
	return Length(v), true
}

// splitFunction splits "name(args)" into its parts.
func splitFunction(tok string) (string, string, bool) {
	open := strings.IndexByte(tok, '(')
	if open <= 0 || !strings.HasSuffix(tok, ")") {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(tok[:open])), tok[open+1 : len(tok)-1], true
}

// splitTopLevel splits s on sep outside parentheses, dropping empty
// pieces. Splitting on a space treats any run of whitespace as one
// separator.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth, start := 0, 0
	flush := func(end int) {
		if piece := strings.TrimSpace(s[start:end]); piece != "" {
			out = append(out, piece)
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '(':
			depth++
		case c == ')':
			depth = max(depth-1, 0)
		case depth == 0 && (c == sep || sep == ' ' && isSpace(c)):
			flush(i)
			start = i + 1
		}
	}
	flush(len(s))
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// ParseLine parses a grid-row-start style value: an integer line number,
// "span N", or "auto". Anything else is auto.
func ParseLine(value string) Line {
	fields := strings.Fields(strings.ToLower(value))
	switch {
	case len(fields) == 1 && fields[0] == "span":
		return Line{Span: 1}
	case len(fields) == 1:
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return Line{}
		}
		return Line{Index: n}
	case len(fields) == 2 && (fields[0] == "span" || fields[1] == "span"):
		num := fields[1]
		if fields[1] == "span" {
			num = fields[0]
		}
		n, err := strconv.Atoi(num)
		if err != nil || n <= 0 {
			return Line{}
		}
		return Line{Span: n}
	}
	return Line{}
}

// ParsePlacement parses a grid-row or grid-column shorthand such as
// "1 / 3" or "2 / span 2". A lone value sets the start only.
func ParsePlacement(value string) (Line, Line) {
	start, end, found := strings.Cut(value, "/")
	if !found {
		return ParseLine(value), Line{}
	}
	return ParseLine(start), ParseLine(end)
}
