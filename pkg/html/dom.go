package html

import "strings"

// NodeID is a node's pre-order index in its Document. Layout results are
// keyed by it.
type NodeID int

// InvalidNodeID marks a node that has not been numbered.
const InvalidNodeID NodeID = -1

type Node struct {
	ID         NodeID
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

type Document struct {
	Root        *Node
	Stylesheets []string // CSS from <style> tags

	nodes []*Node
}

// NewDocument creates a document with an empty synthetic root element.
func NewDocument() *Document {
	return &Document{
		Root: &Node{
			ID:       InvalidNodeID,
			Type:     ElementNode,
			TagName:  "document",
			Children: make([]*Node, 0),
		},
		Stylesheets: make([]string, 0),
	}
}

// NewDocumentWithRoot wraps an already-built tree and numbers it.
func NewDocumentWithRoot(root *Node) *Document {
	doc := &Document{Root: root, Stylesheets: make([]string, 0)}
	doc.Renumber()
	return doc
}

// Renumber assigns pre-order IDs to every node under Root. It must be
// called after the tree is mutated.
func (d *Document) Renumber() {
	d.nodes = d.nodes[:0]
	if d.Root == nil {
		return
	}
	d.Root.Parent = nil
	Walk(d.Root, func(n *Node) bool {
		n.ID = NodeID(len(d.nodes))
		d.nodes = append(d.nodes, n)
		return true
	})
}

// IsNumbered reports whether the node table is current for Root.
func (d *Document) IsNumbered() bool {
	return d.Root != nil && len(d.nodes) > 0 && d.nodes[0] == d.Root && d.Root.ID == 0
}

// Numbered returns d if it is numbered, otherwise a numbered deep copy.
// d itself is never modified.
func (d *Document) Numbered() *Document {
	if d.IsNumbered() {
		return d
	}
	cp := &Document{Root: cloneNode(d.Root, nil), Stylesheets: append([]string(nil), d.Stylesheets...)}
	cp.Renumber()
	return cp
}

func cloneNode(n *Node, parent *Node) *Node {
	if n == nil {
		return nil
	}
	c := &Node{ID: n.ID, Type: n.Type, TagName: n.TagName, Text: n.Text, Parent: parent}
	if n.Attributes != nil {
		c.Attributes = make(map[string]string, len(n.Attributes))
		for k, v := range n.Attributes {
			c.Attributes[k] = v
		}
	}
	c.Children = make([]*Node, len(n.Children))
	for i, child := range n.Children {
		c.Children[i] = cloneNode(child, c)
	}
	return c
}

// Len returns the number of numbered nodes.
func (d *Document) Len() int {
	return len(d.nodes)
}

// ByID returns the node with the given ID, or nil.
func (d *Document) ByID(id NodeID) *Node {
	if id < 0 || int(id) >= len(d.nodes) {
		return nil
	}
	return d.nodes[id]
}

// FindByAttribute returns the first element whose attribute equals value.
func (d *Document) FindByAttribute(name, value string) *Node {
	var found *Node
	Walk(d.Root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if v, ok := n.GetAttribute(name); ok && v == value {
			found = n
			return false
		}
		return true
	})
	return found
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// AddChild adds a child node and sets up the parent relationship
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.AddChild(&Node{ID: InvalidNodeID, Type: TextNode, Text: text})
}

// IsElement reports whether n is an element with the given tag.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Type == ElementNode && n.TagName == tag
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	var sb strings.Builder
	Walk(n, func(c *Node) bool {
		if c.Type == TextNode {
			sb.WriteString(c.Text)
		}
		return true
	})
	return sb.String()
}

// Element builds an element node for programmatic trees. style, when not
// empty, becomes the style attribute.
func Element(tag, style string, children ...*Node) *Node {
	n := &Node{ID: InvalidNodeID, Type: ElementNode, TagName: tag, Children: make([]*Node, 0, len(children))}
	if style != "" {
		n.Attributes = map[string]string{"style": style}
	}
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

// Text builds a text node.
func Text(s string) *Node {
	return &Node{ID: InvalidNodeID, Type: TextNode, Text: s}
}

// WithAttr sets an attribute and returns n for chaining.
func (n *Node) WithAttr(name, value string) *Node {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
	return n
}
