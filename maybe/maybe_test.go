package maybe_test

import (
	"strconv"
	"testing"

	"github.com/npillmayer/tinyq/maybe"
	"github.com/stretchr/testify/assert"
)

func TestMaybeMatch(t *testing.T) {
	x := maybe.Just(7) // infers type
	y := maybe.Nothing[int]()
	var v int
	switch m := x.Match(); m {
	case m.Just(&v):
		t.Logf("Just(%d)", v)
	case m.Nothing():
		t.Errorf("expected Just(7) not to match Nothing")
	}
	assert.Equal(t, 7, v)
	var w int
	switch m := y.Match(); m {
	case m.Just(&w):
		t.Errorf("expected Nothing not to match Just")
	case m.Nothing():
		w = 99
	}
	assert.Equal(t, 99, w)
}

func TestMaybeWithDefault(t *testing.T) {
	assert.Equal(t, 7, maybe.Just(7).WithDefault(100))
	assert.Equal(t, 100, maybe.Nothing[int]().WithDefault(100))
	var zero maybe.Maybe[float64]
	assert.False(t, zero.IsJust(), "zero value is Nothing")
}

func TestMaybeConstructors(t *testing.T) {
	n, err := strconv.Atoi("12")
	assert.Equal(t, maybe.Just(12), maybe.Of(n, err == nil))
	assert.False(t, maybe.Of(0, false).IsJust())
	f := 1.5
	v, ok := maybe.FromPointer(&f).Get()
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)
	assert.False(t, maybe.FromPointer[float64](nil).IsJust())
}

func TestMaybeMap(t *testing.T) {
	double := func(n int) int { return n * 2 }
	assert.Equal(t, 14, maybe.Just(7).Map(double).WithDefault(0))
	assert.False(t, maybe.Nothing[int]().Map(double).IsJust())
}

func TestMaybeAndThen(t *testing.T) {
	positive := func(n int) maybe.Maybe[bool] {
		if n > 0 {
			return maybe.Just(true)
		}
		return maybe.Nothing[bool]()
	}
	assert.True(t, maybe.AndThen(positive, maybe.Just(7)).WithDefault(false))
	assert.False(t, maybe.AndThen(positive, maybe.Just(-7)).IsJust())
	assert.False(t, maybe.AndThen(positive, maybe.Nothing[int]()).IsJust())
}
