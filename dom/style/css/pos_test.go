package css_test

import (
	"testing"

	"github.com/npillmayer/tinyq/dom/style"
	"github.com/npillmayer/tinyq/dom/style/css"
	"github.com/stretchr/testify/assert"
)

func TestPositionKinds(t *testing.T) {
	for _, tc := range []struct {
		in                     string
		str                    string
		positioned, out, fixed bool
	}{
		{"static", "static", false, false, false},
		{"Relative", "relative", true, false, false},
		{"sticky", "relative", true, false, false},
		{"absolute", "absolute", true, true, false},
		{" fixed ", "fixed", true, true, true},
		{"floating", "unset", false, false, false},
	} {
		pos := css.Position(style.Property(tc.in))
		assert.Equal(t, tc.str, pos.String(), tc.in)
		assert.Equal(t, tc.positioned, pos.IsPositioned(), tc.in)
		assert.Equal(t, tc.out, pos.OutOfFlow(), tc.in)
		assert.Equal(t, tc.fixed, pos.IsFixed(), tc.in)
	}
	assert.True(t, css.Position("floating").IsUnset())
	assert.True(t, css.Static().IsStatic())
	assert.True(t, css.Position("absolute").Offset(css.Top).IsAuto())
}

func TestPositionWithOffsets(t *testing.T) {
	props := map[string]style.Property{
		"top":  "10px",
		"left": "50%",
	}
	get := func(key string) style.Property { return props[key] }
	pos := css.PositionWithOffsets("Absolute", get)
	if !pos.IsAbsolute() || !pos.IsPositioned() || !pos.OutOfFlow() {
		t.Fatalf("expected absolute position, have %v", pos)
	}
	if !pos.Offset(css.Right).IsAuto() {
		t.Errorf("expected right offset to be auto, is %v", pos.Offset(css.Right))
	}
	if x := pos.Offset(css.Top).ResolvePx(css.Context{}, -1); x != 10 {
		t.Errorf("expected top offset of 10px, have %g", x)
	}
	if x := pos.Offset(css.Left).ResolvePx(css.Context{Percent: 300}, -1); x != 150 {
		t.Errorf("expected left offset of 150px, have %g", x)
	}
	static := css.PositionWithOffsets("static", get)
	if !static.IsStatic() || !static.Offset(css.Top).IsAuto() {
		t.Errorf("static positions ignore offsets, have %v", static.Offset(css.Top))
	}
	if sticky := css.Position("sticky"); !sticky.IsRelative() {
		t.Errorf("expected sticky to be treated as relative, is %v", sticky)
	}
}
