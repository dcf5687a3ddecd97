package layout

import (
	"l14layout/pkg/css"
	"l14layout/pkg/html"
	"l14layout/pkg/text"
)

// BoxKind selects the algorithm a node is laid out with. It is decided once
// per node by classify; layoutNode and layoutInner dispatch on it.
type BoxKind int

const (
	KindBlock BoxKind = iota
	KindText
	KindNone
	KindInline
	KindFloat
	KindFlex
	KindGrid
	KindAbsolute
)

var kindNames = [...]string{
	KindBlock:    "block",
	KindText:     "text",
	KindNone:     "none",
	KindInline:   "inline",
	KindFloat:    "float",
	KindFlex:     "flex",
	KindGrid:     "grid",
	KindAbsolute: "absolute",
}

func (k BoxKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// classify picks the algorithm for node. Out-of-flow positioning wins over
// floating, which wins over the display type. An inline element only stays
// inline while everything under it is inline content too; otherwise it is
// laid out as a block.
func classify(node *html.Node, style *css.ComputedStyle) BoxKind {
	if node.Type == html.TextNode {
		return KindText
	}
	switch {
	case style.Display == css.DisplayNone:
		return KindNone
	case style.Position.IsOutOfFlow():
		return KindAbsolute
	case style.Float != css.FloatNone:
		return KindFloat
	}
	return displayKind(style)
}

// displayKind is the kind an element's display type selects on its own.
func displayKind(style *css.ComputedStyle) BoxKind {
	switch {
	case style.Display.IsFlex():
		return KindFlex
	case style.Display.IsGrid():
		return KindGrid
	case style.Display == css.DisplayInline:
		return KindInline
	}
	return KindBlock
}

// innerKind maps an outer kind to the algorithm that lays out the box's
// contents. Floats and out-of-flow boxes keep their display type's.
func (lp *layoutPass) innerKind(node *html.Node, kind BoxKind) BoxKind {
	if kind == KindFloat || kind == KindAbsolute {
		return displayKind(lp.style(node))
	}
	return kind
}

func (lp *layoutPass) kindOf(node *html.Node) BoxKind {
	k := classify(node, lp.style(node))
	if k == KindInline && !lp.hasOnlyInlineContent(node) {
		return KindBlock
	}
	return k
}

// hasOnlyInlineContent reports whether every in-flow descendant of node is
// text or an inline-level box.
func (lp *layoutPass) hasOnlyInlineContent(node *html.Node) bool {
	for _, child := range node.Children {
		if child.Type == html.TextNode {
			continue
		}
		cs := lp.style(child)
		switch classify(child, cs) {
		case KindNone, KindFloat, KindAbsolute:
			continue
		case KindInline:
			if !lp.hasOnlyInlineContent(child) {
				return false
			}
			continue
		}
		if !cs.Display.IsInlineLevel() {
			return false
		}
	}
	return true
}

// isInlineLevel reports children that join an inline run: text, inline
// boxes, and atomic inline-level boxes such as inline-block.
func (lp *layoutPass) isInlineLevel(node *html.Node, kind BoxKind) bool {
	switch kind {
	case KindText, KindInline:
		return true
	case KindBlock, KindFlex, KindGrid:
		return lp.style(node).Display.IsInlineLevel()
	}
	return false
}

// isCollapsibleWhitespace reports text, or inline boxes holding only
// text, that renders as nothing.
func (lp *layoutPass) isCollapsibleWhitespace(node *html.Node) bool {
	if node.Type == html.TextNode {
		return text.IsCollapsibleWhitespace(node.Text)
	}
	if lp.kindOf(node) != KindInline {
		return false
	}
	for _, child := range node.Children {
		if !lp.isCollapsibleWhitespace(child) && lp.kindOf(child) != KindNone {
			return false
		}
	}
	return true
}
