package html

import "testing"

func makeTree() *Node {
	// <div id="parent"><span>hello</span><p>world</p></div>
	return Element("div", "",
		Element("span", "", Text("hello")),
		Element("p", "width: 10px", Text("world")),
	).WithAttr("id", "parent")
}

func TestNewDocumentWithRoot(t *testing.T) {
	doc := NewDocumentWithRoot(makeTree())
	if doc.Len() != 5 {
		t.Fatalf("expected 5 nodes, got %d", doc.Len())
	}
	if doc.Root.ID != 0 {
		t.Errorf("expected root ID 0, got %d", doc.Root.ID)
	}
	p := doc.ByID(3)
	if !p.IsElement("p") {
		t.Fatalf("expected node 3 to be <p>")
	}
	if style, _ := p.GetAttribute("style"); style != "width: 10px" {
		t.Errorf("expected style attribute, got %q", style)
	}
	if p.Parent != doc.Root {
		t.Error("expected <p> parent to be root")
	}
}

func TestRenumberAfterMutation(t *testing.T) {
	doc := NewDocumentWithRoot(makeTree())
	doc.Root.AddChild(Element("em", ""))
	doc.Renumber()
	if doc.Len() != 6 {
		t.Fatalf("expected 6 nodes after append, got %d", doc.Len())
	}
	if !doc.ByID(5).IsElement("em") {
		t.Error("expected appended element to take the last ID")
	}
}

func TestNumberedLeavesOriginalUntouched(t *testing.T) {
	root := makeTree()
	doc := &Document{Root: root}
	if doc.IsNumbered() {
		t.Fatal("expected hand-built document to be unnumbered")
	}

	cp := doc.Numbered()
	if cp == doc || cp.Len() != 5 {
		t.Fatalf("expected a numbered copy of 5 nodes, got %d", cp.Len())
	}
	if doc.Len() != 0 || root.ID != InvalidNodeID {
		t.Errorf("expected original to stay unnumbered, got len %d root ID %d", doc.Len(), root.ID)
	}
	if cp.ByID(3).Parent != cp.Root {
		t.Error("expected copied <p> to point at the copied root")
	}
	if cp.ByID(3).TagName != "p" || root.Children[1].ID != InvalidNodeID {
		t.Error("expected copy to mirror the tree without renumbering it")
	}

	numbered := NewDocumentWithRoot(makeTree())
	if numbered.Numbered() != numbered {
		t.Error("expected a numbered document to be returned as is")
	}
}

func TestFindByAttribute(t *testing.T) {
	doc := NewDocumentWithRoot(makeTree())
	if n := doc.FindByAttribute("id", "parent"); n != doc.Root {
		t.Error("expected to find root by id")
	}
	if n := doc.FindByAttribute("id", "missing"); n != nil {
		t.Error("expected nil for missing id")
	}
}

func TestTextContent(t *testing.T) {
	if got := makeTree().TextContent(); got != "helloworld" {
		t.Errorf("expected 'helloworld', got %q", got)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	var visited []string
	Walk(makeTree(), func(n *Node) bool {
		if n.Type == ElementNode {
			visited = append(visited, n.TagName)
		}
		return n.TagName != "span"
	})
	if len(visited) != 3 {
		t.Errorf("expected div, span, p; got %v", visited)
	}
}
