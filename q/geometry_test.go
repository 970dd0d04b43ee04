package q_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyq"
	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/maybe"
	"github.com/npillmayer/tinyq/q"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	qe, _ := setup(t)
	cb := qe.Q("#cb")
	sizes := map[string][2]float64{
		"":        {230, 130},
		"outer":   {230, 130},
		"border":  {230, 130},
		"margin":  {270, 170},
		"padding": {220, 120},
		"inner":   {220, 120},
		"content": {200, 100},
		"client":  {220, 120},
	}
	for kind, size := range sizes {
		r, err := cb.Box(kind, false)
		require.NoError(t, err, kind)
		assert.Equal(t, size[0], r.Width, "width of %q box", kind)
		assert.Equal(t, size[1], r.Height, "height of %q box", kind)
	}
	bb := qe.Q("#bb")
	r, err := bb.Box("content", false)
	require.NoError(t, err)
	assert.Equal(t, 170.0, r.Width)
	assert.Equal(t, 70.0, r.Height)
	assert.Equal(t, 200.0, bb.Width())
	assert.Equal(t, 100.0, bb.Height())
	border, _ := cb.Box("border", true)
	content, _ := cb.Box("content", true)
	assert.Equal(t, border.Left+15, content.Left)
	assert.Equal(t, border.Top+15, content.Top)
	_, err = cb.Box("frame", false)
	assert.True(t, errors.Is(err, tinyq.ErrType))
	r, err = qe.Q("#gone").Box("border", false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Width)
}

func TestSetBoxRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	for _, sel := range []string{"#cb", "#bb"} {
		for _, kind := range []string{"margin", "border", "padding", "content"} {
			qe, _ := setup(t)
			c := qe.Q(sel)
			c.SetBox(kind, q.Size{Width: maybe.Just(100.0), Height: maybe.Just(80.0)})
			require.NoError(t, c.Err())
			r, err := c.Box(kind, false)
			require.NoError(t, err)
			assert.Equal(t, 100.0, r.Width, "width of %s %s box", sel, kind)
			assert.Equal(t, 80.0, r.Height, "height of %s %s box", sel, kind)
		}
	}
}

func TestSetBoxDetails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	qe, _ := setup(t)
	cb := qe.Q("#cb")
	cb.SetBox("padding", q.Size{Width: maybe.Just(100.0)})
	v, _ := cb.Attr("style")
	assert.Equal(t, "width: 80px;", v)
	assert.Equal(t, 100.0, cb.Height(), "height is unchanged")
	cb.SetWidth(5)
	assert.Equal(t, 30.0, cb.Width(), "negative sizes are clamped")
	both := qe.Q("#cb, #bb").SetHeight(60)
	require.NoError(t, both.Err())
	assert.Equal(t, 60.0, qe.Q("#cb").Height())
	assert.Equal(t, 60.0, qe.Q("#bb").Height())
	_, err := cb.SetBox("client", q.Size{Width: maybe.Just(10.0)}).Result()
	assert.True(t, errors.Is(err, tinyq.ErrType))
	_, err = cb.SetBox("scroll", q.Size{}).Result()
	assert.True(t, errors.Is(err, tinyq.ErrType))
}

func TestSetPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	qe, _ := setup(t)
	abs := qe.Q("#abs")
	assert.Equal(t, dom.Point{X: 5, Y: 9}, abs.Position(false))
	abs.SetPosition(maybe.Just(50.0), maybe.Just(60.0), false)
	assert.Equal(t, dom.Point{X: 50, Y: 60}, abs.Position(false))
	abs.SetPosition(maybe.Just(100.0), maybe.Nothing[float64](), true)
	p := abs.Position(true)
	assert.Equal(t, 100.0, p.X)
	cb := qe.Q("#cb")
	before := cb.Position(true)
	cb.SetPosition(maybe.Just(40.0), maybe.Just(before.Y+10), true)
	require.NoError(t, cb.Err())
	assert.Equal(t, "relative", cb.Style("position"))
	assert.Equal(t, dom.Point{X: 40, Y: before.Y + 10}, cb.Position(true))
	assert.Equal(t, 20.0, qe.Q("#bb").Position(true).X, "relative shifts keep the flow")
}

func TestFixedPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.q")
	defer teardown()
	//
	qe, doc := setup(t)
	fix := qe.Q("#fix")
	assert.Equal(t, dom.Point{X: 924, Y: 728}, fix.Position(false))
	doc.ScrollPageTo(0, 100)
	assert.Equal(t, dom.Point{X: 924, Y: 828}, fix.Position(true))
	assert.Equal(t, fix.Position(true), fix.Position(false))
	fix.SetPosition(maybe.Just(10.0), maybe.Just(200.0), true)
	assert.Equal(t, dom.Point{X: 10, Y: 200}, fix.Position(true))
	assert.Equal(t, dom.Point{}, qe.Q("#gone").Position(true))
}
