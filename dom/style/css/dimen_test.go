package css_test

import (
	"testing"

	"github.com/npillmayer/tinyq/dom/style"
	"github.com/npillmayer/tinyq/dom/style/css"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimen(t *testing.T) {
	ctx := css.Context{Percent: 200, FontSize: 10, RootFontSize: 16, Viewport: [2]float64{1000, 500}}
	for _, tc := range []struct {
		in  string
		px  float64
		abs bool
	}{
		{"12px", 12, true},
		{"12", 12, true},
		{"1in", 96, true},
		{"12pt", 16, true},
		{"thin", 1, true},
		{"50%", 100, false},
		{"2em", 20, false},
		{"2rem", 32, false},
		{"10vw", 100, false},
		{"10vh", 50, false},
		{"10vmin", 50, false},
		{"10vmax", 100, false},
		{"-4.5px", -4.5, true},
	} {
		d, err := css.ParseDimen(style.Property(tc.in))
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.abs, d.IsAbsolute(), tc.in)
		assert.Equal(t, !tc.abs, d.IsRelative(), tc.in)
		assert.InDelta(t, tc.px, d.ResolvePx(ctx, -1), 0.01, tc.in)
	}
}

func TestParseDimenKeywords(t *testing.T) {
	d, err := css.ParseDimen("auto")
	require.NoError(t, err)
	assert.True(t, d.IsAuto())
	_, ok := d.Resolve(css.Context{})
	assert.False(t, ok, "auto has no fixed value")
	d, err = css.ParseDimen("")
	require.NoError(t, err)
	assert.True(t, d.IsNone())
	_, err = css.ParseDimen("12furlongs")
	assert.Error(t, err)
	_, err = css.ParseDimen("px")
	assert.Error(t, err)
	assert.True(t, css.DimenOrAuto("wide").IsAuto())
}

func TestDimenString(t *testing.T) {
	assert.Equal(t, "12px", css.JustDimen(css.Px(12)).String())
	assert.Equal(t, "50%", css.Percentage(50).String())
	assert.Equal(t, "auto", css.Auto().String())
	d, _ := css.ParseDimen("1.5em")
	assert.Equal(t, "1.5em", d.String())
}

func TestDimenMatch(t *testing.T) {
	d := css.JustDimen(10 * dimen.PT)
	var du dimen.DU
	switch m := d.Match(); m {
	case m.IsKind(css.Auto()):
		t.Errorf("fixed dimension matched auto")
	case m.Just(&du):
		assert.Equal(t, 10*dimen.PT, du)
	default:
		t.Errorf("expected fixed dimension to match, didn't")
	}
	var p float64
	switch m := css.Percentage(25).Match(); m {
	case m.Percentage(&p):
		assert.Equal(t, 25.0, p)
	default:
		t.Errorf("expected percentage to match, didn't")
	}
	x := css.DimenPattern[string](css.Auto()).OneOf(css.DimenPatterns[string]{
		Auto:    "auto",
		Just:    "just",
		Default: "?",
	})
	assert.Equal(t, "auto", x)
}

func TestBoxSizingAndEdges(t *testing.T) {
	assert.Equal(t, css.BorderBox, css.ParseBoxSizing(" Border-Box"))
	assert.Equal(t, css.ContentBox, css.ParseBoxSizing("padding-box"))
	e := css.Edges{Top: 1, Right: 2, Bottom: 3, Left: 4}
	assert.Equal(t, 6.0, e.Horizontal())
	assert.Equal(t, 4.0, e.Vertical())
	assert.Equal(t, css.Edges{}, e.Add(e.Neg()))
}

func TestParseDisplay(t *testing.T) {
	d, err := css.ParseDisplay("none")
	require.NoError(t, err)
	assert.True(t, d.IsNone())
	d, err = css.ParseDisplay("block")
	require.NoError(t, err)
	assert.True(t, d.IsBlockLevel())
	d, err = css.ParseDisplay("contents")
	require.NoError(t, err)
	assert.True(t, d.Contains(css.ContentsMode))
	_, err = css.ParseDisplay("sideways")
	assert.Error(t, err)
}
