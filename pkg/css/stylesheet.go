package css

import (
	"fmt"
	"strings"
)

// Combinator joins two compound selectors.
type Combinator int

const (
	DescendantCombinator Combinator = iota // "a b"
	ChildCombinator                        // "a > b"
)

// SelectorPart is one compound selector: tag, #id and .classes.
type SelectorPart struct {
	Element string // "" or "*" matches any tag
	ID      string
	Classes []string
}

// Selector is a complex selector read left to right.
// Combinators[i] joins Parts[i] and Parts[i+1].
type Selector struct {
	Raw         string
	Parts       []SelectorPart
	Combinators []Combinator
	Specificity int
}

// Rule represents a CSS rule (selector + declarations)
type Rule struct {
	Selector     Selector
	Declarations map[string]string // property -> value, shorthands expanded
	Order        int               // source order within the stylesheet
}

// Stylesheet represents a parsed CSS stylesheet
type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet parses CSS text into rules. A selector list becomes one
// rule per selector. Malformed rules, @-rules and comments are skipped.
func ParseStylesheet(css string) (*Stylesheet, error) {
	stylesheet := &Stylesheet{Rules: make([]Rule, 0)}
	css = stripComments(css)

	for _, ruleStr := range splitRules(css) {
		brace := strings.Index(ruleStr, "{")
		if brace == -1 {
			continue
		}
		prelude := strings.TrimSpace(ruleStr[:brace])
		if prelude == "" || strings.HasPrefix(prelude, "@") {
			continue
		}
		end := strings.LastIndex(ruleStr, "}")
		if end < brace {
			end = len(ruleStr)
		}
		decls := parseDeclarations(ruleStr[brace+1 : end])

		for _, selStr := range strings.Split(prelude, ",") {
			sel, err := parseSelector(selStr)
			if err != nil {
				continue
			}
			stylesheet.Rules = append(stylesheet.Rules, Rule{
				Selector:     sel,
				Declarations: decls,
				Order:        len(stylesheet.Rules),
			})
		}
	}
	return stylesheet, nil
}

func stripComments(css string) string {
	var sb strings.Builder
	for {
		start := strings.Index(css, "/*")
		if start == -1 {
			sb.WriteString(css)
			return sb.String()
		}
		sb.WriteString(css[:start])
		end := strings.Index(css[start+2:], "*/")
		if end == -1 {
			return sb.String()
		}
		css = css[start+2+end+2:]
	}
}

// splitRules splits CSS into top-level "prelude { ... }" chunks.
func splitRules(css string) []string {
	rules := make([]string, 0)
	depth := 0
	start := 0
	for i, ch := range css {
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				if r := strings.TrimSpace(css[start : i+1]); r != "" {
					rules = append(rules, r)
				}
				start = i + 1
			}
			if depth < 0 {
				depth = 0
				start = i + 1
			}
		}
	}
	return rules
}

func parseSelector(raw string) (Selector, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selector{}, fmt.Errorf("empty selector")
	}
	if strings.ContainsAny(raw, ":[+~") {
		return Selector{}, fmt.Errorf("unsupported selector %q", raw)
	}

	sel := Selector{Raw: raw}
	tokens := strings.Fields(strings.ReplaceAll(raw, ">", " > "))
	pendingChild := false
	for _, tok := range tokens {
		if tok == ">" {
			pendingChild = true
			continue
		}
		part, weight := parseCompound(tok)
		if len(sel.Parts) > 0 {
			if pendingChild {
				sel.Combinators = append(sel.Combinators, ChildCombinator)
			} else {
				sel.Combinators = append(sel.Combinators, DescendantCombinator)
			}
		}
		pendingChild = false
		sel.Parts = append(sel.Parts, part)
		sel.Specificity += weight
	}
	if len(sel.Parts) == 0 || pendingChild {
		return Selector{}, fmt.Errorf("dangling combinator in %q", raw)
	}
	return sel, nil
}

// parseCompound splits "div#a.b.c" into its pieces and returns its
// specificity (100 per id, 10 per class, 1 per tag).
func parseCompound(tok string) (SelectorPart, int) {
	var part SelectorPart
	weight := 0
	i := 0
	for i < len(tok) && tok[i] != '#' && tok[i] != '.' {
		i++
	}
	part.Element = strings.ToLower(tok[:i])
	if part.Element != "" && part.Element != "*" {
		weight++
	}
	for i < len(tok) {
		kind := tok[i]
		j := i + 1
		for j < len(tok) && tok[j] != '#' && tok[j] != '.' {
			j++
		}
		name := tok[i+1 : j]
		if kind == '#' {
			part.ID = name
			weight += 100
		} else {
			part.Classes = append(part.Classes, name)
			weight += 10
		}
		i = j
	}
	return part, weight
}

// parseDeclarations parses CSS declarations into a map
func parseDeclarations(declStr string) map[string]string {
	style := ParseInlineStyle(declStr)
	return style.Properties
}
