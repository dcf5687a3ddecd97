package layout

import (
	"l14layout/pkg/css"
	"l14layout/pkg/html"
)

// computeStyles resolves the computed style of every node in doc, indexed
// by NodeID. Text nodes share their parent's style. font-size, line-height
// and writing-mode inherit when an element does not declare them.
func computeStyles(doc *html.Document) []*css.ComputedStyle {
	declared := css.ApplyStylesToDocument(doc)
	out := make([]*css.ComputedStyle, doc.Len())

	html.Walk(doc.Root, func(n *html.Node) bool {
		if n.ID < 0 || int(n.ID) >= len(out) {
			return false
		}
		var parent *css.ComputedStyle
		if n.Parent != nil && n.Parent.ID >= 0 && int(n.Parent.ID) < len(out) {
			parent = out[n.Parent.ID]
		}

		if n.Type == html.TextNode {
			out[n.ID] = parent
			return true
		}

		s := declared[n]
		cs := css.Compute(s)
		if parent != nil {
			inheritText(&cs, s, parent)
		}
		out[n.ID] = &cs
		return true
	})
	return out
}

func inheritText(cs *css.ComputedStyle, declared *css.Style, parent *css.ComputedStyle) {
	has := func(property string) bool {
		if declared == nil {
			return false
		}
		_, ok := declared.Get(property)
		return ok
	}
	fontSizeSet := has("font-size")
	if !fontSizeSet {
		cs.FontSize = parent.FontSize
	}
	if !has("line-height") {
		if fontSizeSet {
			cs.LineHeight = cs.FontSize * 1.2
		} else {
			cs.LineHeight = parent.LineHeight
		}
	}
	if !has("writing-mode") {
		cs.WritingMode = parent.WritingMode
	}
}

var defaultStyle = css.DefaultComputedStyle()

// style returns the computed style of node, or CSS initial values when the
// node has none.
func (lp *layoutPass) style(node *html.Node) *css.ComputedStyle {
	if node != nil && node.ID >= 0 && int(node.ID) < len(lp.styles) {
		if cs := lp.styles[node.ID]; cs != nil {
			return cs
		}
	}
	return &defaultStyle
}
