package css

import (
	"testing"

	"l14layout/pkg/html"
)

func TestComputeStyle_ElementSelector(t *testing.T) {
	stylesheet, _ := ParseStylesheet(`div { width: 50px; }`)
	node := html.Element("div", "")

	style := ComputeStyle(node, []*Stylesheet{stylesheet})

	if w, ok := style.Get("width"); !ok || w != "50px" {
		t.Errorf("expected width='50px', got '%s'", w)
	}
}

func TestComputeStyle_SpecificityOverride(t *testing.T) {
	stylesheet, _ := ParseStylesheet(`
		#header { width: 3px; }
		.highlight { width: 2px; }
		div { width: 1px; }
	`)
	node := html.Element("div", "").WithAttr("class", "highlight").WithAttr("id", "header")

	style := ComputeStyle(node, []*Stylesheet{stylesheet})

	if w, _ := style.Get("width"); w != "3px" {
		t.Errorf("expected id rule to win, got '%s'", w)
	}
}

func TestComputeStyle_SourceOrderBreaksTies(t *testing.T) {
	stylesheet, _ := ParseStylesheet(`.a { height: 1px } .b { height: 2px }`)
	node := html.Element("div", "").WithAttr("class", "b a")

	style := ComputeStyle(node, []*Stylesheet{stylesheet})

	if h, _ := style.Get("height"); h != "2px" {
		t.Errorf("expected later rule to win, got '%s'", h)
	}
}

func TestComputeStyle_InlineWins(t *testing.T) {
	stylesheet, _ := ParseStylesheet(`#x { width: 1px }`)
	node := html.Element("div", "width: 9px").WithAttr("id", "x")

	style := ComputeStyle(node, []*Stylesheet{stylesheet})

	if w, _ := style.Get("width"); w != "9px" {
		t.Errorf("expected inline style to win, got '%s'", w)
	}
}

func TestComputeStyle_UserAgentBodyMargin(t *testing.T) {
	style := ComputeStyle(html.Element("body", ""), nil)
	if m, _ := style.Get("margin-top"); m != "8px" {
		t.Errorf("expected body margin 8px, got '%s'", m)
	}
}

func TestMatchesSelector_Combinators(t *testing.T) {
	span := html.Element("span", "")
	card := html.Element("div", "", span).WithAttr("class", "card")
	root := html.Element("section", "", card)
	html.NewDocumentWithRoot(root)

	child, _ := parseSelector("div > span")
	if !MatchesSelector(span, child) {
		t.Error("expected child combinator to match")
	}
	desc, _ := parseSelector("section span")
	if !MatchesSelector(span, desc) {
		t.Error("expected descendant combinator to match")
	}
	direct, _ := parseSelector("section > span")
	if MatchesSelector(span, direct) {
		t.Error("child combinator must not skip a level")
	}
}

func TestApplyStylesToDocument(t *testing.T) {
	doc, err := html.Parse(`<style>.w { width: 40px }</style><div class="w"></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	styles := ApplyStylesToDocument(doc)
	div := doc.Root.Children[0].Children[0]
	if w, _ := styles[div].Get("width"); w != "40px" {
		t.Errorf("expected stylesheet width, got '%s'", w)
	}
}
