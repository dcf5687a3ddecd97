package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"l14layout/pkg/html"
)

func TestKind_OuterAndInner(t *testing.T) {
	floatFlex := html.Element("div", "float: left; display: flex")
	absGrid := html.Element("div", "position: absolute; display: grid")
	blockInInline := html.Element("span", "display: inline", html.Element("div", ""))
	inline := html.Element("span", "display: inline", html.Text("a"))
	hidden := html.Element("div", "display: none; float: left")
	words := html.Text("x")
	doc := html.NewDocumentWithRoot(html.Element("div", "",
		floatFlex, absGrid, blockInInline, inline, hidden, words))
	lp := testEngine().newPass(doc)

	tests := []struct {
		name         string
		node         *html.Node
		outer, inner BoxKind
	}{
		{"floated flex container", floatFlex, KindFloat, KindFlex},
		{"positioned grid container", absGrid, KindAbsolute, KindGrid},
		{"inline holding a block", blockInInline, KindBlock, KindBlock},
		{"inline holding text", inline, KindInline, KindInline},
		{"display none beats float", hidden, KindNone, KindNone},
		{"text", words, KindText, KindText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outer := lp.kindOf(tt.node)
			if outer != tt.outer {
				t.Errorf("Expected outer kind %v, got %v", tt.outer, outer)
			}
			assert.Equal(t, tt.inner, lp.innerKind(tt.node, outer))
		})
	}
}
