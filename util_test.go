package tinyq_test

import (
	"errors"
	"testing"
	"time"

	"github.com/npillmayer/tinyq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashIsStable(t *testing.T) {
	h1 := tinyq.Hash("div.box > p: hello")
	h2 := tinyq.Hash("div.box > p: hello")
	if h1 != h2 {
		t.Errorf("expected identical hashes, have %x and %x", h1, h2)
	}
	if tinyq.Hash("a") == tinyq.Hash("b") {
		t.Errorf("expected hash of 'a' and 'b' to differ")
	}
}

func TestExtend(t *testing.T) {
	dst := map[string]string{"class": "a", "id": "x"}
	require.NoError(t, tinyq.Extend(dst, map[string]string{"class": "b", "title": "t"}, false))
	assert.Equal(t, "a", dst["class"])
	assert.Equal(t, "t", dst["title"])
	require.NoError(t, tinyq.Extend(dst, map[string]string{"class": "b"}, true))
	assert.Equal(t, "b", dst["class"])
}

func TestTypeOf(t *testing.T) {
	var nilmap map[string]int
	cases := []struct {
		v    interface{}
		want string
	}{
		{nil, tinyq.TypeNull},
		{"x", tinyq.TypeString},
		{3, tinyq.TypeNumber},
		{3.5, tinyq.TypeNumber},
		{true, tinyq.TypeBoolean},
		{time.Now(), tinyq.TypeDate},
		{[]int{1}, tinyq.TypeArray},
		{map[string]int{}, tinyq.TypeObject},
		{nilmap, tinyq.TypeObject},
		{func() {}, tinyq.TypeFunction},
		{(*int)(nil), tinyq.TypeNull},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tinyq.TypeOf(c.v), "TypeOf(%#v)", c.v)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	err := tinyq.SyntaxError("filter", 4, "missing ')' in %q", "@nth(2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, tinyq.ErrSyntax))
	assert.False(t, errors.Is(err, tinyq.ErrType))
	assert.Equal(t, tinyq.SyntaxErrorKind, tinyq.KindOf(err))
	assert.Contains(t, err.Error(), "position 4")

	err = tinyq.TypeError("q", "unsupported input %T", 42)
	assert.True(t, errors.Is(err, tinyq.ErrType))
	var e *tinyq.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "q", e.Op)
	assert.NotEmpty(t, tinyq.ErrorStack(err))

	assert.Equal(t, tinyq.NoKind, tinyq.KindOf(errors.New("other")))
}
