package q_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/q"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func id(n *html.Node) string {
	return dom.AttrOr(n, "id", "")
}

func TestParentAndChildren(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	qe, _ := setup(t)
	lis := qe.Q("li")
	parent := lis.Parent()
	require.Equal(t, 1, parent.Len())
	assert.Equal(t, "list", id(parent.Get(0)))
	assert.Equal(t, 0, lis.Parent("div").Len())
	children := qe.Q("#list").Children()
	assert.Equal(t, 10, children.Len())
	assert.Equal(t, []string{"1", "3"}, texts(qe.Q("#list").Children("@nth(odd)", "@nth(-n+2)")))
	assert.Equal(t, 4, qe.Q("#main").Children().Len())
	assert.Equal(t, 3, qe.Q("#main").Children("p").Len())
}

func TestClosest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	qe, _ := setup(t)
	span := qe.Q("span.x")
	assert.Equal(t, "main", id(span.Closest("div").Get(0)))
	assert.Equal(t, span.Get(0), span.Closest("span").Get(0), "closest includes the node itself")
	assert.Equal(t, "main", id(span.Closest(".outer").Get(0)))
	assert.Equal(t, 0, span.Closest("table").Len())
	// a text node starts at its parent element
	text := qe.Q("p.note").Get(1).FirstChild
	require.Equal(t, html.TextNode, text.Type)
	assert.Equal(t, "p", qe.Q(text).Closest("p").Get(0).Data)
}

func TestSiblings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	qe, _ := setup(t)
	lis := qe.Q("li")
	assert.Equal(t, 0, lis.First().Prev().Len())
	assert.Equal(t, []string{"2"}, texts(lis.First().Next()))
	assert.Equal(t, 9, lis.Next().Len())
	assert.Equal(t, []string{"3"}, texts(lis.Next("@contains(3)")))
	assert.Equal(t, 0, lis.First().Next("@contains(3)").Len(), "only the immediate sibling is considered")
	first := qe.Q(".first")
	sibs := first.Siblings()
	assert.Equal(t, 3, sibs.Len())
	assertDocumentOrder(t, sibs.Nodes())
	assert.Equal(t, 2, first.Siblings("p").Len())
	assert.Equal(t, 0, lis.Siblings().Len(), "members of the collection are no siblings")
	assert.Equal(t, 8, lis.Eq(2).Add(lis.Get(5)).Siblings().Len())
}

func TestOffsetParent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	qe, doc := setup(t)
	assert.Equal(t, "rel", id(qe.Q("#abs").OffsetParent().Get(0)))
	assert.Equal(t, "body", qe.Q("#cb").OffsetParent().Get(0).Data)
	assert.Equal(t, doc.DocumentElement(), qe.Q("#fix").OffsetParent().Get(0))
	assert.Equal(t, 0, qe.Q("<div></div>").OffsetParent().Len())
	ops := qe.Q("#abs, #cb, li").OffsetParent()
	assert.Equal(t, 2, ops.Len())
	assertDocumentOrder(t, ops.Nodes())
}

func TestEngineOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	tens := func(n *html.Node, _ int, _ []*html.Node, _ *q.Param) bool {
		return len(dom.TextContent(n)) == 2
	}
	qe := q.New(doc, q.WithFilters(map[string]q.NamedFilter{"tens": tens}))
	assert.Equal(t, doc, qe.Document())
	assert.Equal(t, []string{"10"}, texts(qe.Q("li").Filter("@tens")))
	assert.Equal(t, qe, qe.Q("li").Engine())
}
