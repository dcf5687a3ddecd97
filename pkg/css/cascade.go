package css

import (
	"sort"

	"l14layout/pkg/html"
)

// userAgentStyles holds the default browser styles that affect geometry.
var userAgentStyles = map[string]string{
	"body":       "margin: 8px",
	"p":          "margin-top: 16px; margin-bottom: 16px",
	"h1":         "margin-top: 21.44px; margin-bottom: 21.44px; font-size: 32px",
	"h2":         "margin-top: 19.92px; margin-bottom: 19.92px; font-size: 24px",
	"h3":         "margin-top: 18.72px; margin-bottom: 18.72px; font-size: 18.72px",
	"ul":         "margin-top: 16px; margin-bottom: 16px; padding-left: 40px",
	"ol":         "margin-top: 16px; margin-bottom: 16px; padding-left: 40px",
	"blockquote": "margin: 16px 40px",
	"br":         "display: none",
	"span":       "display: inline",
	"a":          "display: inline",
	"b":          "display: inline",
	"i":          "display: inline",
	"em":         "display: inline",
	"strong":     "display: inline",
	"code":       "display: inline",
	"small":      "display: inline",
	"label":      "display: inline",
	"img":        "display: inline-block",
	"input":      "display: inline-block",
	"button":     "display: inline-block",
}

// applyUserAgentStyles applies default browser styles based on element type
func applyUserAgentStyles(node *html.Node, style *Style) {
	if node.Type != html.ElementNode {
		return
	}
	if decls, ok := userAgentStyles[node.TagName]; ok {
		style.Merge(ParseInlineStyle(decls))
	}
}

// ComputeStyle computes the declared style for a node: user agent defaults,
// then matching rules by ascending specificity (source order breaks ties),
// then the style attribute.
func ComputeStyle(node *html.Node, stylesheets []*Stylesheet) *Style {
	finalStyle := NewStyle()
	applyUserAgentStyles(node, finalStyle)

	type ranked struct {
		rule  Rule
		sheet int
	}
	var all []ranked
	for i, stylesheet := range stylesheets {
		for _, r := range FindMatchingRules(node, stylesheet) {
			all = append(all, ranked{rule: r, sheet: i})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].rule.Selector.Specificity != all[j].rule.Selector.Specificity {
			return all[i].rule.Selector.Specificity < all[j].rule.Selector.Specificity
		}
		if all[i].sheet != all[j].sheet {
			return all[i].sheet < all[j].sheet
		}
		return all[i].rule.Order < all[j].rule.Order
	})
	for _, r := range all {
		for property, value := range r.rule.Declarations {
			finalStyle.Set(property, value)
		}
	}

	if styleAttr, ok := node.GetAttribute("style"); ok {
		finalStyle.Merge(ParseInlineStyle(styleAttr))
	}
	return finalStyle
}

// ApplyStylesToDocument computes the declared style of every element in doc.
func ApplyStylesToDocument(doc *html.Document) map[*html.Node]*Style {
	styles := make(map[*html.Node]*Style)
	stylesheets := make([]*Stylesheet, 0, len(doc.Stylesheets))
	for _, cssText := range doc.Stylesheets {
		if stylesheet, err := ParseStylesheet(cssText); err == nil {
			stylesheets = append(stylesheets, stylesheet)
		}
	}

	html.Walk(doc.Root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			styles[n] = ComputeStyle(n, stylesheets)
		}
		return true
	})
	return styles
}
