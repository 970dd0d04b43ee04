package cssom_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/dom/style"
	"github.com/npillmayer/tinyq/dom/style/css"
	"github.com/npillmayer/tinyq/dom/style/cssom"
	"github.com/npillmayer/tinyq/dom/style/cssom/douceuradapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const styled = `<html><head>
<style>
p { color: blue; margin: 4px }
.note { color: green }
#n1 { color: red }
p { color: purple }
.strong { font-size: 20px !important }
:: broken { color: black }
@media print { p { color: gray } }
</style>
</head><body>
<p id="n1" class="note">one</p>
<p class="note strong" style="color: orange; font-size: 10px">two</p>
<p>three <span>inner</span></p>
</body></html>`

func styleTree(t *testing.T) (*html.Node, *cssom.Styler) {
	root, err := html.Parse(strings.NewReader(styled))
	require.NoError(t, err)
	sheets := douceuradapter.ExtractStyleElements(root)
	require.Len(t, sheets, 1)
	styler := cssom.NewStyler(douceuradapter.ParseInline, sheets[0])
	return root, styler
}

func TestCascade(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.style")
	defer teardown()
	//
	root, styler := styleTree(t)
	assert.Equal(t, 5, styler.RuleCount(), "broken selectors and at-rules are skipped")
	st := styler.Style(root)
	ps := dom.ElementsByTagName(root, "p", false)
	require.Len(t, ps, 3)
	color := func(n *html.Node) style.Property {
		return css.GetProperty(st.Lookup(n), "color")
	}
	assert.Equal(t, style.Property("red"), color(ps[0]), "id beats class and later type selectors")
	assert.Equal(t, style.Property("orange"), color(ps[1]), "inline beats sheets")
	assert.Equal(t, style.Property("purple"), color(ps[2]), "later rules win at equal specificity")
	span := dom.ElementsByTagName(root, "span", true)[0]
	assert.Equal(t, style.Property("purple"), color(span), "color is inherited")
	fs := css.GetProperty(st.Lookup(ps[1]), "font-size")
	assert.Equal(t, style.Property("20px"), fs, "!important beats inline")
	m := css.GetProperty(st.Lookup(ps[2]), "margin-left")
	assert.Equal(t, style.Property("4px"), m, "shorthands are split")
	assert.Equal(t, style.Property("0"), css.GetProperty(st.Lookup(span), "margin-left"), "margins do not inherit")
}

func TestUserStyleSheets(t *testing.T) {
	root, styler := styleTree(t)
	user, err := douceuradapter.Parse(`p#n1.note { color: teal; border: 2px solid }`)
	require.NoError(t, err)
	styler.AddStyleSheet(user)
	st := styler.Style(root)
	n1 := dom.ElementByID(root, "n1")
	assert.Equal(t, style.Property("teal"), css.GetProperty(st.Lookup(n1), "color"))
	assert.Equal(t, style.Property("solid"), css.GetProperty(st.Lookup(n1), "border-top-style"))
	assert.Equal(t, style.Property("2px"), css.GetProperty(st.Lookup(n1), "border-left-width"))
}

func TestInlineParser(t *testing.T) {
	r, err := douceuradapter.ParseInline("width: 10px; width: 20px; color: Red !important")
	require.NoError(t, err)
	assert.Equal(t, style.Property("20px"), r.Value("width"), "last declaration wins")
	assert.True(t, r.IsImportant("color"))
	assert.False(t, r.IsImportant("width"))
	assert.Equal(t, "", r.Selector())
}

func TestLonghands(t *testing.T) {
	kv := cssom.Longhands("padding", "1px 2px")
	assert.Len(t, kv, 4)
	kv = cssom.Longhands("color", "red")
	assert.Equal(t, []style.KeyValue{{Key: "color", Value: "red"}}, kv)
	assert.Empty(t, cssom.Longhands("margin", ""))
}
