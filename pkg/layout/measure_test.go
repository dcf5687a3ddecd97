package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"l14layout/pkg/html"
)

func TestMeasure_PublishesNothing(t *testing.T) {
	f := html.Element("div", "float: left; width: 40px; height: 40px")
	inner := html.Element("div", "", f, html.Text("some text here"))
	doc := html.NewDocumentWithRoot(html.Element("div", "font-size: 10px", inner))
	lp := testEngine().newPass(doc)

	res := lp.measureBlockAtInline(inner, 100)

	assert.Empty(t, lp.results, "measurement must not write the pass results")
	assert.Empty(t, lp.roots)
	assert.True(t, res.ExclusionSpace.IsEmpty(), "floats stay inside the measured subtree")
	assert.Equal(t, 100.0, res.InlineSize)
	assert.Equal(t, 40.0, res.BlockSize)
}

func TestMeasure_IsCached(t *testing.T) {
	node := html.Element("div", "height: 10px")
	doc := html.NewDocumentWithRoot(html.Element("div", "", node))
	lp := testEngine().newPass(doc)

	first := lp.measure(node, DefinitePx(200), Indefinite)
	assert.Len(t, lp.caches.measured, 1)
	second := lp.measure(node, DefinitePx(200), Indefinite)
	assert.Len(t, lp.caches.measured, 1)
	assert.Equal(t, first, second)

	lp.measure(node, DefinitePx(300), Indefinite)
	assert.Len(t, lp.caches.measured, 2)
}

func TestIntrinsicSizes(t *testing.T) {
	words := html.Element("div", "", html.Text("aa bbbb c"))
	padded := html.Element("div", "padding: 0 5px; width: 30px")
	row := html.Element("div", "display: flex; column-gap: 4px",
		html.Element("div", "width: 10px"), html.Element("div", "width: 20px"))
	doc := html.NewDocumentWithRoot(html.Element("div", "font-size: 10px", words, padded, row))
	lp := testEngine().newPass(doc)

	tests := []struct {
		name string
		node *html.Node
		want MinMaxSizes
	}{
		{"text run", words, MinMaxSizes{MinContent: 40, MaxContent: 90}},
		{"explicit width", padded, MinMaxSizes{MinContent: 40, MaxContent: 40}},
		{"flex row", row, MinMaxSizes{MinContent: 34, MaxContent: 34}},
		{"block", doc.Root, MinMaxSizes{MinContent: 40, MaxContent: 90}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lp.intrinsicSizes(tt.node))
		})
	}
}
