package q

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyq"
	"github.com/npillmayer/tinyq/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const listPage = `<html><body>
<ul id="list"><li>1</li><li>2</li><li class="x">3</li><li>4</li><li class="x">5</li><li>6</li><li>7</li><li>8</li><li>9</li><li>10</li></ul>
<p class="empty"></p><p>  </p><p>text</p>
<form><input name="a" disabled><fieldset disabled><input name="b"></fieldset><input type="checkbox" name="c" checked></form>
</body></html>`

func listEngine(t *testing.T) *Engine {
	doc, err := dom.ParseString(listPage)
	require.NoError(t, err)
	return New(doc)
}

func textsOf(c *Collection) []string {
	var r []string
	for _, n := range c.nodes {
		r = append(r, dom.TextContent(n))
	}
	return r
}

func TestParseNth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	valid := []struct {
		in   string
		a, b int
	}{
		{"odd", 2, 1},
		{"even", 2, 0},
		{" EVEN ", 2, 0},
		{"3", 0, 3},
		{"-2", 0, -2},
		{"n", 1, 0},
		{"+n", 1, 0},
		{"-n+3", -1, 3},
		{"2n", 2, 0},
		{"2n+1", 2, 1},
		{"3n-1", 3, -1},
		{"3n - 1", 3, -1},
		{"010", 0, 10},
	}
	for _, c := range valid {
		a, b, err := parseNth(c.in)
		if assert.NoError(t, err, c.in) {
			assert.Equal(t, c.a, a, "a of %q", c.in)
			assert.Equal(t, c.b, b, "b of %q", c.in)
		}
	}
	for _, in := range []string{"", "2x", "n+", "2n1", "++n", "n+-1", "odd1"} {
		_, _, err := parseNth(in)
		assert.True(t, errors.Is(err, tinyq.ErrSyntax), "expected syntax error for %q", in)
	}
}

func TestNthMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	var r []int
	for i := 0; i < 10; i++ {
		if nthMatch(2, 1, i) {
			r = append(r, i)
		}
	}
	assert.Equal(t, []int{0, 2, 4, 6, 8}, r)
	r = r[:0]
	for i := 0; i < 10; i++ {
		if nthMatch(-1, 3, i) {
			r = append(r, i)
		}
	}
	assert.Equal(t, []int{0, 1, 2}, r)
	assert.True(t, nthMatch(0, 4, 3))
	assert.False(t, nthMatch(0, 4, 4))
}

func TestParseTag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	tag := parseTag("@has(li:not(.x))")
	require.NoError(t, tag.err)
	assert.Equal(t, "has", tag.name)
	assert.Equal(t, "li:not(.x)", tag.param)
	assert.True(t, tag.has)
	tag = parseTag("@first")
	require.NoError(t, tag.err)
	assert.False(t, tag.has)
	for _, in := range []string{"@nth(2n+", "@nth(1)x", "@", "@no name"} {
		tag = parseTag(in)
		assert.True(t, errors.Is(tag.err, tinyq.ErrSyntax), "expected syntax error for %q", in)
	}
}

func TestNthFilter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	e := listEngine(t)
	lis := e.Q("li")
	require.Equal(t, 10, lis.Len())
	assert.Equal(t, []string{"1", "3", "5", "7", "9"}, textsOf(lis.Filter("@nth(2n+1)")))
	assert.Equal(t, []string{"1", "3", "5", "7", "9"}, textsOf(lis.Filter("@odd")))
	assert.Equal(t, []string{"2", "4", "6", "8", "10"}, textsOf(lis.Filter("@even")))
	assert.Equal(t, []string{"1", "2", "3"}, textsOf(lis.Filter("@nth(-n+3)")))
	assert.Equal(t, []string{"4"}, textsOf(lis.Filter("@nth(4)")))
	assert.Equal(t, []string{"1"}, textsOf(lis.Filter("@first")))
	assert.Equal(t, []string{"10"}, textsOf(lis.Filter("@last")))
	// nth-child counts siblings, nth counts the list
	assert.Equal(t, []string{"3", "5"}, textsOf(lis.Filter(".x")))
	assert.Equal(t, []string{"3"}, textsOf(lis.Filter(".x", "@nth(1)")))
	assert.Equal(t, []string{"3", "5"}, textsOf(lis.Filter(".x", "@nth-child(odd)")))
	_, err := lis.Filter("@nth(2x)").Result()
	assert.True(t, errors.Is(err, tinyq.ErrSyntax))
	_, err = lis.Filter("@nth").Result()
	assert.True(t, errors.Is(err, tinyq.ErrSyntax))
}

func TestFilterComposition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	e := listEngine(t)
	lis := e.Q("li")
	pairs := [][2]any{
		{"@odd", "@contains(1)"},
		{".x", "@last"},
		{"@nth(-n+6)", "@even"},
		{"li:not(.x)", FilterFunc(func(_ *html.Node, i int, _ []*html.Node) bool { return i%3 == 0 })},
	}
	for _, p := range pairs {
		assert.Equal(t, lis.Filter(p[0]).Filter(p[1]).Nodes(), lis.Filter(p[0], p[1]).Nodes())
	}
	assert.Equal(t, []string{"10"}, textsOf(lis.Filter("@contains(1)", "@last")))
	assert.Equal(t, []string{"5"}, textsOf(lis.Filter(".x", "@last")))
	// positions count within the list left by the preceding filters
	assert.Equal(t, []string{"2"}, textsOf(lis.Filter("@even", "@nth(1)")))
}

func TestFilterKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	e := listEngine(t)
	lis := e.Q("li")
	pred := func(n *html.Node) bool { return strings.HasSuffix(dom.TextContent(n), "0") }
	assert.Equal(t, []string{"10"}, textsOf(lis.Filter(pred)))
	assert.Equal(t, []string{"10"}, textsOf(lis.Filter(dom.NodePredicate(pred))))
	raw := func(_ *html.Node, i int, _ []*html.Node) bool { return i == 1 }
	assert.Equal(t, []string{"2"}, textsOf(lis.Filter(raw)))
	assert.Same(t, lis, lis.Filter(""))
	assert.Same(t, lis, lis.Filter())
	_, err := lis.Filter(42).Result()
	assert.True(t, errors.Is(err, tinyq.ErrType))
	_, err = lis.Filter("@unknown").Result()
	assert.True(t, errors.Is(err, tinyq.ErrSyntax))
	_, err = lis.Filter("li:bogus(").Result()
	assert.True(t, errors.Is(err, tinyq.ErrSyntax))
	assert.Equal(t, 8, lis.Not(".x").Len())
	assert.True(t, lis.Is("@contains(7)"))
	assert.False(t, lis.Is("@contains(11)"))
}

func TestBuiltinFilters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	e := listEngine(t)
	ps := e.Q("p")
	assert.Equal(t, 2, ps.Filter("@blank").Len())
	assert.Equal(t, 1, ps.Filter("@empty").Len())
	assert.Equal(t, []string{"text"}, textsOf(ps.Filter("@contains(ex)")))
	assert.Equal(t, 1, e.Q("ul").Filter("@has(.x)").Len())
	assert.Equal(t, 0, e.Q("ul").Filter("@has(p)").Len())
	assert.Equal(t, 8, e.Q("li").Filter("@not(.x)").Len())
	assert.Equal(t, 2, e.Q("li").Filter("@matches(.x)").Len())
	inputs := e.Q("input")
	assert.Equal(t, 2, inputs.Filter("@disabled").Len())
	assert.Equal(t, 1, inputs.Filter("@enabled").Len())
	assert.Equal(t, 1, inputs.Filter("@checked").Len())
	assert.Equal(t, 1, e.Q("li").Filter("@first-child").Len())
	assert.Equal(t, 1, e.Q("li").Filter("@last-child").Len())
	assert.Equal(t, 0, e.Q("li").Filter("@only-child").Len())
	_, err := ps.Filter("@contains").Result()
	assert.True(t, errors.Is(err, tinyq.ErrSyntax))
	_, err = ps.Filter("@has(::)").Result()
	assert.True(t, errors.Is(err, tinyq.ErrSyntax))
}

func TestFilterRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	longer := func(n *html.Node, _ int, _ []*html.Node, p *Param) bool {
		l, err := strconv.Atoi(p.Raw)
		return err == nil && len(dom.TextContent(n)) > l
	}
	doc, err := dom.ParseString(listPage)
	require.NoError(t, err)
	e := New(doc, WithFilter("longer", longer))
	assert.Equal(t, []string{"10"}, textsOf(e.Q("li").Filter("@longer(1)")))
	assert.True(t, errors.Is(e.RegisterFilter("bad name", longer), tinyq.ErrSyntax))
	assert.True(t, errors.Is(e.RegisterFilter("nil", nil), tinyq.ErrType))
	require.NoError(t, e.RegisterFilter("short", func(n *html.Node, _ int, _ []*html.Node, _ *Param) bool {
		return len(dom.TextContent(n)) == 1
	}))
	assert.Equal(t, 9, e.Q("li").Filter("@short").Len())
	other := New(doc)
	_, err = other.Q("li").Filter("@short").Result()
	assert.Error(t, err, "registries are per engine")
}
