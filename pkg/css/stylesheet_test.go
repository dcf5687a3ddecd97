package css

import "testing"

func TestParseStylesheet_SingleRule(t *testing.T) {
	stylesheet, err := ParseStylesheet(`div { width: 10px; }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stylesheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(stylesheet.Rules))
	}
	rule := stylesheet.Rules[0]
	if len(rule.Selector.Parts) != 1 || rule.Selector.Parts[0].Element != "div" {
		t.Errorf("expected selector 'div', got %+v", rule.Selector)
	}
	if rule.Selector.Specificity != 1 {
		t.Errorf("expected specificity 1, got %d", rule.Selector.Specificity)
	}
	if rule.Declarations["width"] != "10px" {
		t.Errorf("expected width='10px', got '%s'", rule.Declarations["width"])
	}
}

func TestParseStylesheet_SelectorListAndComments(t *testing.T) {
	stylesheet, err := ParseStylesheet(`
		/* header */
		h1, .a { margin: 4px }
		@media print { div { width: 1px } }
		p { padding: 2px }
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stylesheet.Rules) != 3 {
		t.Fatalf("expected 3 rules (list expanded, @media skipped), got %d", len(stylesheet.Rules))
	}
	if stylesheet.Rules[1].Declarations["margin-left"] != "4px" {
		t.Error("expected margin shorthand to expand inside a rule")
	}
}

func TestParseSelector_CompoundAndCombinators(t *testing.T) {
	sel, err := parseSelector("div#main > .card.big span")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sel.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(sel.Parts))
	}
	if sel.Parts[0].Element != "div" || sel.Parts[0].ID != "main" {
		t.Errorf("unexpected first part %+v", sel.Parts[0])
	}
	if len(sel.Parts[1].Classes) != 2 {
		t.Errorf("expected two classes, got %v", sel.Parts[1].Classes)
	}
	if sel.Combinators[0] != ChildCombinator || sel.Combinators[1] != DescendantCombinator {
		t.Errorf("unexpected combinators %v", sel.Combinators)
	}
	// 1 + 100 + 20 + 1
	if sel.Specificity != 122 {
		t.Errorf("expected specificity 122, got %d", sel.Specificity)
	}
}

func TestParseSelector_Unsupported(t *testing.T) {
	for _, raw := range []string{"", "a:hover", "a + b", "div >"} {
		if _, err := parseSelector(raw); err == nil {
			t.Errorf("expected %q to be rejected", raw)
		}
	}
}
