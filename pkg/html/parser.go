package html

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse builds a Document from markup. The tree is rooted at a synthetic
// "document" element holding the contents of <body>; <style> text is
// collected into Stylesheets and non-rendered elements are dropped.
func Parse(markup string) (*Document, error) {
	return ParseReader(strings.NewReader(markup))
}

// ParseReader is Parse over an io.Reader.
func ParseReader(r io.Reader) (*Document, error) {
	root, err := nethtml.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := NewDocument()
	collectStyles(root, doc)

	body := findElement(root, atom.Body)
	if body == nil {
		// Parse always synthesizes a body; an empty document is not an error.
		doc.Renumber()
		return doc, nil
	}

	bodyNode := &Node{ID: InvalidNodeID, Type: ElementNode, TagName: "body", Attributes: attributes(body)}
	doc.Root.AddChild(bodyNode)
	convertChildren(body, bodyNode)
	doc.Renumber()
	return doc, nil
}

func convertChildren(src *nethtml.Node, dst *Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case nethtml.ElementNode:
			if skipElement(c.DataAtom) {
				continue
			}
			el := &Node{
				ID:         InvalidNodeID,
				Type:       ElementNode,
				TagName:    strings.ToLower(c.Data),
				Attributes: attributes(c),
				Children:   make([]*Node, 0),
			}
			dst.AddChild(el)
			convertChildren(c, el)
		case nethtml.TextNode:
			if text := normalizeWhitespace(c.Data); text != "" {
				dst.AppendText(text)
			}
		}
	}
}

func skipElement(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Head, atom.Title, atom.Meta, atom.Link, atom.Template, atom.Noscript:
		return true
	}
	return false
}

func attributes(n *nethtml.Node) map[string]string {
	if len(n.Attr) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[strings.ToLower(a.Key)] = a.Val
	}
	return attrs
}

func collectStyles(n *nethtml.Node, doc *Document) {
	if n.Type == nethtml.ElementNode && n.DataAtom == atom.Style {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == nethtml.TextNode {
				sb.WriteString(c.Data)
			}
		}
		if css := strings.TrimSpace(sb.String()); css != "" {
			doc.Stylesheets = append(doc.Stylesheets, css)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectStyles(c, doc)
	}
}

func findElement(n *nethtml.Node, a atom.Atom) *nethtml.Node {
	if n.Type == nethtml.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// normalizeWhitespace collapses runs of whitespace to a single space,
// preserving a single space at boundaries. All-whitespace input collapses
// to " " so word boundaries between inline siblings survive.
func normalizeWhitespace(s string) string {
	if s == "" {
		return ""
	}
	hasLeading := unicode.IsSpace(rune(s[0]))
	hasTrailing := unicode.IsSpace(rune(s[len(s)-1]))

	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}

	result := strings.Join(fields, " ")
	if hasLeading {
		result = " " + result
	}
	if hasTrailing {
		result = result + " "
	}
	return result
}
