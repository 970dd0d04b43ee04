package format

import (
	"errors"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyq"
	"github.com/npillmayer/tinyq/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type templates map[string]string

func (ts templates) TemplateByID(id string) (string, bool) {
	t, ok := ts[id]
	return t, ok
}

type person struct {
	Name  string `json:"name"`
	Email string
	Age   int
}

func render(t *testing.T, r *Renderer, tmpl string, data any) string {
	t.Helper()
	out, err := r.Render(tmpl, data)
	require.NoError(t, err, tmpl)
	return out
}

func TestRenderTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.format")
	defer teardown()
	//
	r := NewRenderer(WithLang(map[string]string{"hi": "Hello"}))
	data := map[string]any{
		"name":  "<b>Tom & Jerry</b>",
		"user":  map[string]any{"name": "Ann", "tags": []string{"a", "b"}},
		"p":     person{Name: "Bob", Email: "bob@example.com", Age: 7},
		"ok":    true,
		"none":  nil,
		"count": 42,
	}
	for _, c := range []struct{ tmpl, out string }{
		{"<p>{name}</p>", "<p>&lt;b&gt;Tom &amp; Jerry&lt;/b&gt;</p>"},
		{"{missing}", "{missing}"},
		{"[{*missing}]", "[]"},
		{"{$hi}, {$nope}", "Hello, {$nope}"},
		{"{user.name}", "Ann"},
		{"{user.tags.1}", "b"},
		{"[{user.age}]", "[]"},
		{"{p.name} {p.email} {p.Age}", "Bob bob@example.com 7"},
		{"{ok}", "true"},
		{"[{none}]", "[]"},
		{"{count}", "42"},
		{"{ count }", "{ count }"},
		{"a { b } {}", "a { b } {}"},
		{"{[{name}]}", "{name}"},
		{"{user.tags}", "[&#34;a&#34;,&#34;b&#34;]"},
	} {
		assert.Equal(t, c.out, render(t, r, c.tmpl, data), c.tmpl)
	}
}

func TestRenderFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.format")
	defer teardown()
	//
	r := NewRenderer()
	data := map[string]any{
		"s":    "Hello World",
		"x":    1234.5678,
		"d":    time.Date(2022, 1, 23, 10, 0, 0, 0, time.UTC),
		"md":   "*hi*",
		"html": "<b>x</b>",
	}
	for _, c := range []struct{ tmpl, out string }{
		{"{s|5}", "Hello"},
		{"{s|5.}", "Hello…"},
		{"{s|-5}", "World"},
		{"{s|-5.}", "…World"},
		{"{s|50.}", "Hello World"},
		{"{x|2}", "1,234.57"},
		{"{x|0}", "1,235"},
		{"{d}", "2022-01-23"},
		{"{d|Jan 2, 2006}", "Jan 23, 2022"},
		{"{md|md}", "<p><em>hi</em></p>"},
		{"{html|!html}", "<b>x</b>"},
		{"{html}", "&lt;b&gt;x&lt;/b&gt;"},
	} {
		assert.Equal(t, c.out, render(t, r, c.tmpl, data), c.tmpl)
	}
	de := NewRenderer(WithLanguage(language.German), WithDateLayout("02.01.2006"))
	assert.Equal(t, "1.234,57 23.01.2022", render(t, de, "{x|2} {d}", data))
}

func TestRenderBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.format")
	defer teardown()
	//
	r := NewRenderer()
	data := map[string]any{
		"name":   "Top",
		"items":  []string{"a", "<b>"},
		"empty":  []string{},
		"people": []map[string]any{{"name": "A"}, {"name": "B"}},
		"user":   map[string]any{"name": "Ann"},
		"list": []any{
			map[string]any{"list": []string{"x", "y"}},
			map[string]any{"list": []string{}},
		},
	}
	for _, c := range []struct{ tmpl, out string }{
		{"{?items}<li>{.}</li>{/?items}", "<li>a</li><li>&lt;b&gt;</li>"},
		{"{?empty}x{/?empty}", ""},
		{"{!empty}none{/!empty}", "none"},
		{"{!items}none{/!items}", ""},
		{"{!missing}{name}{/!missing}", "Top"},
		{"{?user}{name}{/?user}", "Ann"},
		{"{name}|{?people}{name},{/?people}|{name}", "Top|A,B,|Top"},
		{"{?list}[{?list}{.}{/?list}]{/?list}", "[xy][]"},
	} {
		assert.Equal(t, c.out, render(t, r, c.tmpl, data), c.tmpl)
	}
}

func TestRenderIncludes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.format")
	defer teardown()
	//
	r := NewRenderer(WithSource(templates{
		"list": "<ul>{?items}{#item}{/?items}</ul>",
		"item": "<li>{.}</li>",
	}))
	data := map[string]any{"items": []string{"a", "b"}}
	assert.Equal(t, "<ul><li>a</li><li>b</li></ul>", render(t, r, "#list", data))
	assert.Equal(t, "<li>z</li>", render(t, r, "{#item}", "z"))
	//
	doc, err := dom.ParseString(`<html><body>
<script type="text/template" id="row"><tr><td>{name}</td></tr></script>
</body></html>`)
	require.NoError(t, err)
	r = NewRenderer(WithSource(doc))
	assert.Equal(t, "<table><tr><td>A</td></tr></table>",
		render(t, r, "<table>{#row}</table>", map[string]string{"name": "A"}))
}

func TestRenderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.format")
	defer teardown()
	//
	r := NewRenderer(WithSource(templates{
		"self": "x{#self}",
		"a":    "{#b}",
		"b":    "{?x}{#a}{/?x}",
		"ok":   "ok",
	}))
	for _, tmpl := range []string{"#nope", "{#nope}", "#self", "{#a}", "{#ok}{#b}"} {
		_, err := r.Render(tmpl, nil)
		assert.True(t, errors.Is(err, tinyq.ErrReference), "%s: %v", tmpl, err)
	}
	_, err := NewRenderer().Render("{#x}", nil)
	assert.True(t, errors.Is(err, tinyq.ErrReference))
	//
	for _, tmpl := range []string{"{name", "{[abc", "{?x}abc", "{?x}{?x}{/?x}", "a{/?x}"} {
		_, err := r.Render(tmpl, map[string]any{"x": true})
		assert.True(t, errors.Is(err, tinyq.ErrSyntax), "%s: %v", tmpl, err)
	}
	_, err = r.Render("{[literal]}", nil)
	assert.NoError(t, err)
}

func TestRenderObjects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.format")
	defer teardown()
	//
	data := map[string]any{"user": map[string]any{"n": 1}}
	r := NewRenderer()
	assert.Equal(t, "{&#34;user&#34;:{&#34;n&#34;:1}}", render(t, r, "{user}", data))
	r = NewRenderer(WithObjectFallback(ValueJSON))
	assert.Equal(t, "{&#34;n&#34;:1}", render(t, r, "{user}", data))
}

func TestRenderLang(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.format")
	defer teardown()
	//
	r := NewRenderer(
		WithLang(map[string]string{"a": "1", "b": "2"}),
		WithLang(map[string]string{"b": "<3>"}),
	)
	assert.Equal(t, "1 &lt;3&gt;", render(t, r, "{$a} {$b}", nil))
}

func TestRenderRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.format")
	defer teardown()
	//
	r := NewRenderer()
	assert.Equal(t, "Hello World!", render(t, r, "Hello {name}!", map[string]any{"name": "World"}))
	assert.Equal(t, "Hello {name}!", render(t, r, "Hello {name}!", map[string]any{}))
	assert.Equal(t, "Hello &lt;b&gt;!", render(t, r, "Hello {name}!", map[string]any{"name": "<b>"}))
	assert.Equal(t, "Hello <b>!", render(t, r, "Hello {name|!html}!", map[string]any{"name": "<b>"}))
	//
	tmpl := "{?items}{name} {/?items}"
	items := []map[string]string{{"name": "A"}, {"name": "B"}}
	assert.Equal(t, "A B ", render(t, r, tmpl, map[string]any{"items": items}))
	assert.Equal(t, "", render(t, r, tmpl, map[string]any{"items": []any{}}))
}
