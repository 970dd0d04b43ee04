package format

import (
	"errors"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyq"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nav = "ul#nav.menu\n" +
	"\tli.item > a[href=/home]: Home\n" +
	"\tli.item > a[href=/about,target=_blank]: About\n" +
	"\tli: plain\n" +
	"p: Hello <b>world</b>\n" +
	".box\n" +
	"\t: text only\n" +
	"\timg[src=a.png,alt=A]\n" +
	"\tbr\n"

func TestExpandGolden(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.format")
	defer teardown()
	//
	out, err := NewExpander().Expand(nav)
	require.NoError(t, err)
	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "nav", []byte(out))
}

func TestExpandLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.format")
	defer teardown()
	//
	for _, c := range []struct{ src, html string }{
		{"div", "<div></div>"},
		{"#x", `<div id="x"></div>`},
		{".a.b", `<div class="a b"></div>`},
		{"SPAN.x hello world", `<span class="x">hello world</span>`},
		{"p > em > b: deep", "<p><em><b>deep</b></em></p>"},
		{"input[type=checkbox,checked]", `<input type="checkbox" checked>`},
		{`a[title="a&b"]`, `<a title="a&amp;b"></a>`},
		{"a[id=k,class=c d]", `<a id="k" class="c d"></a>`},
		{": just text", "just text"},
		{"<b>raw</b>", "<b>raw</b>"},
		{"\t\tul\n\t\t\tli: 1\n\t\tp", "<ul><li>1</li></ul><p></p>"},
		{"hr\n\tp: after", "<hr><p>after</p>"},
		{"img: alt text", "<img>alt text"},
		{"\n\n", ""},
	} {
		out, err := NewExpander().Expand(c.src)
		require.NoError(t, err, c.src)
		assert.Equal(t, c.html, out, c.src)
	}
}

func TestExpandErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.format")
	defer teardown()
	//
	x := NewExpander()
	_, err := x.Expand("ul\n\tli[href=x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, tinyq.ErrSyntax))
	var e *tinyq.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 6, e.Pos)
	// errors are cached like results
	_, err = x.Expand("ul\n\tli[href=x")
	assert.Error(t, err)
	assert.Equal(t, int64(1), x.Parses())
}

func TestExpandCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.format")
	defer teardown()
	//
	x := NewExpander()
	var wg sync.WaitGroup
	results := make([]string, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = x.Expand(nav)
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
	assert.Equal(t, int64(1), x.Parses())
	assert.Equal(t, 1, x.CacheSize())
	_, err := x.Expand("p: other")
	require.NoError(t, err)
	assert.Equal(t, int64(2), x.Parses())
	assert.Equal(t, 2, x.CacheSize())
	//
	out, err := Expand("b: package level")
	require.NoError(t, err)
	assert.Equal(t, "<b>package level</b>", out)
}
