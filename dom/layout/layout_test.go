package layout_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/dom/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><style>
body { margin: 0 }
#a { width: 200px; height: 100px; padding: 10px; border: 5px solid black; margin: 20px }
#b { box-sizing: border-box; width: 200px; padding: 10px; border: 5px solid }
#rel { position: relative; top: 10px; left: 5px; height: 50px }
#abs { position: absolute; top: 7px; left: 3px; width: 20px; height: 20px }
#fix { position: fixed; right: 0; bottom: 0; width: 100px; height: 40px }
.hidden { display: none }
</style></head><body>
<div id="a"></div>
<div id="b"></div>
<div id="rel"><div id="abs"></div></div>
<div id="fix"></div>
<p class="hidden">invisible</p>
<div id="t">Hello <span>world</span></div>
</body></html>`

func parse(t *testing.T, opts ...dom.Option) *dom.Document {
	doc, err := dom.ParseString(page, opts...)
	require.NoError(t, err)
	return doc
}

func byID(t *testing.T, doc *dom.Document, id string) *layout.Rect {
	n := dom.ElementByID(doc.Root(), id)
	require.NotNil(t, n, "element #%s", id)
	r := layout.For(doc).PageRect(n)
	return &r
}

func TestBlockLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.layout")
	defer teardown()
	//
	doc := parse(t)
	assert.Equal(t, layout.NewRect(20, 20, 230, 130), *byID(t, doc, "a"))
	assert.Equal(t, layout.NewRect(0, 170, 200, 30), *byID(t, doc, "b"))
	assert.Equal(t, layout.NewRect(5, 210, 1024, 50), *byID(t, doc, "rel"))
	assert.Equal(t, layout.NewRect(8, 217, 20, 20), *byID(t, doc, "abs"))
	assert.Equal(t, layout.NewRect(924, 728, 100, 40), *byID(t, doc, "fix"))
	text := byID(t, doc, "t")
	assert.Equal(t, 250.0, text.Top)
	assert.InDelta(t, 38.4, text.Height, 0.001)
}

func TestHiddenElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.layout")
	defer teardown()
	//
	doc := parse(t)
	host := layout.For(doc)
	p := dom.ElementsByTagName(doc.Root(), "p", true)[0]
	assert.False(t, host.Rendered(p))
	assert.Equal(t, layout.Rect{}, host.BoundingClientRect(p))
	assert.Nil(t, host.OffsetParent(p))
	assert.Equal(t, "none", host.ComputedStyle(p, "display"))
	assert.Equal(t, "auto", host.ComputedStyle(p, "width"))
}

func TestOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.layout")
	defer teardown()
	//
	doc := parse(t)
	host := layout.For(doc)
	a := dom.ElementByID(doc.Root(), "a")
	assert.Equal(t, doc.Body(), host.OffsetParent(a))
	left, top := host.Offset(a)
	assert.Equal(t, [2]float64{20, 20}, [2]float64{left, top})
	abs := dom.ElementByID(doc.Root(), "abs")
	assert.Equal(t, dom.ElementByID(doc.Root(), "rel"), host.OffsetParent(abs))
	left, top = host.Offset(abs)
	assert.Equal(t, [2]float64{3, 7}, [2]float64{left, top})
	assert.Nil(t, host.OffsetParent(dom.ElementByID(doc.Root(), "fix")))
	assert.Nil(t, host.OffsetParent(doc.Body()))
	w, h := host.OffsetSize(a)
	assert.Equal(t, [2]float64{230, 130}, [2]float64{w, h})
}

func TestClientAndScrollSizes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.layout")
	defer teardown()
	//
	doc := parse(t)
	host := layout.For(doc)
	a := dom.ElementByID(doc.Root(), "a")
	assert.Equal(t, layout.NewRect(5, 5, 220, 120), host.ClientRect(a))
	w, h := host.ScrollSize(a)
	assert.Equal(t, [2]float64{220, 120}, [2]float64{w, h})
}

func TestScrolling(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.layout")
	defer teardown()
	//
	doc := parse(t, dom.WithPageScroll(0, 100))
	host := layout.For(doc)
	a := dom.ElementByID(doc.Root(), "a")
	assert.Equal(t, -80.0, host.BoundingClientRect(a).Top)
	fix := dom.ElementByID(doc.Root(), "fix")
	assert.Equal(t, 728.0, host.BoundingClientRect(fix).Top, "fixed elements stick to the viewport")
	rel := dom.ElementByID(doc.Root(), "rel")
	doc.ScrollTo(rel, 0, 20)
	abs := dom.ElementByID(doc.Root(), "abs")
	assert.Equal(t, 197.0, layout.For(doc).PageRect(abs).Top)
	doc.ScrollPageTo(0, 0)
	assert.Equal(t, 20.0, layout.For(doc).BoundingClientRect(a).Top)
}

func TestComputedStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.layout")
	defer teardown()
	//
	doc := parse(t)
	host := layout.For(doc)
	a := dom.ElementByID(doc.Root(), "a")
	b := dom.ElementByID(doc.Root(), "b")
	assert.Equal(t, "200px", host.ComputedStyle(a, "width"))
	assert.Equal(t, "200px", host.ComputedStyle(b, "width"))
	assert.Equal(t, "20px", host.ComputedStyle(a, "margin-top"))
	assert.Equal(t, "5px", host.ComputedStyle(a, "border-left-width"))
	assert.Equal(t, "black", host.ComputedStyle(a, "color"))
	assert.Equal(t, "16px", host.ComputedStyle(a, "font-size"))
	assert.Equal(t, "relative", host.ComputedStyle(dom.ElementByID(doc.Root(), "rel"), "position"))
	margin, border, padding := host.Edges(a)
	assert.Equal(t, 40.0, margin.Horizontal())
	assert.Equal(t, 10.0, border.Vertical())
	assert.Equal(t, 20.0, padding.Horizontal())
}

func TestDetachedStyling(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.layout")
	defer teardown()
	//
	doc := parse(t)
	host := layout.For(doc)
	div := dom.CreateElement("div")
	dom.AddClass(div, "hidden")
	assert.False(t, host.Rendered(div))
	assert.Equal(t, "none", host.ComputedStyle(div, "display"))
	assert.Equal(t, layout.Rect{}, host.PageRect(div))
}

func TestHostIsCachedPerGeneration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.layout")
	defer teardown()
	//
	doc := parse(t)
	h1 := layout.For(doc)
	assert.Same(t, h1, layout.For(doc))
	doc.Touch()
	assert.NotSame(t, h1, layout.For(doc))
}
