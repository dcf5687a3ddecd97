package css

import (
	"strings"

	"l14layout/pkg/html"
)

// MatchesSelector returns true if the node matches the complex selector
func MatchesSelector(node *html.Node, selector Selector) bool {
	if !isMatchable(node) || len(selector.Parts) == 0 {
		return false
	}
	// Match right to left, starting from the target element.
	return matchesFrom(node, selector, len(selector.Parts)-1)
}

func matchesFrom(node *html.Node, selector Selector, partIndex int) bool {
	if !matchesPart(node, selector.Parts[partIndex]) {
		return false
	}
	if partIndex == 0 {
		return true
	}
	switch selector.Combinators[partIndex-1] {
	case ChildCombinator:
		parent := node.Parent
		return isMatchable(parent) && matchesFrom(parent, selector, partIndex-1)
	default:
		for anc := node.Parent; isMatchable(anc); anc = anc.Parent {
			if matchesFrom(anc, selector, partIndex-1) {
				return true
			}
		}
	}
	return false
}

// The synthetic document root never matches.
func isMatchable(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.TagName != "document"
}

func matchesPart(node *html.Node, part SelectorPart) bool {
	if part.Element != "" && part.Element != "*" && node.TagName != part.Element {
		return false
	}
	if part.ID != "" {
		if id, ok := node.GetAttribute("id"); !ok || id != part.ID {
			return false
		}
	}
	if len(part.Classes) > 0 {
		classAttr, _ := node.GetAttribute("class")
		have := strings.Fields(classAttr)
		for _, want := range part.Classes {
			found := false
			for _, c := range have {
				if c == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// FindMatchingRules returns the stylesheet rules matching node, in source order.
func FindMatchingRules(node *html.Node, stylesheet *Stylesheet) []Rule {
	var matches []Rule
	for _, rule := range stylesheet.Rules {
		if MatchesSelector(node, rule.Selector) {
			matches = append(matches, rule)
		}
	}
	return matches
}
