package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

func TestInvalid(t *testing.T) {
	t.Run("seeded from options", func(t *testing.T) {
		i := NewInvalid(map[string]any{"a": 1, "b": nil})

		assert.True(t, i.Test("a"))
		assert.True(t, i.Test("b"))
		assert.False(t, i.Test("c"))
		assert.Equal(t, []string{"a", "b"}, i.Pending())
	})

	t.Run("validate clears", func(t *testing.T) {
		i := NewInvalid(map[string]any{"a": 1, "b": 2})

		assert.True(t, i.Validate("a", "c"))
		assert.False(t, i.Validate("a"))
		assert.True(t, i.Test("b"))
		assert.Equal(t, []string{"b"}, i.Pending())
	})

	t.Run("validate clears every given key", func(t *testing.T) {
		i := NewInvalid(map[string]any{"a": 1, "b": 2})

		assert.True(t, i.Validate("a", "b"))
		assert.Empty(t, i.Pending())
	})

	t.Run("mark", func(t *testing.T) {
		i := NewInvalid(nil)
		assert.Empty(t, i.Pending())

		i.Mark("x", "y")
		assert.True(t, i.Test("y", "z"))
		assert.Equal(t, []string{"x", "y"}, i.Pending())
	})
}

func TestCheckType(t *testing.T) {
	node := &html.Node{Type: html.ElementNode, Data: "div"}

	for _, tt := range []struct {
		tag  string
		v    any
		want bool
	}{
		{TypeNumber, 1, true},
		{TypeNumber, 1.5, true},
		{TypeNumber, "1", false},
		{TypeInt, 1, true},
		{TypeInt, 1.5, false},
		{TypeString, "a", true},
		{TypeString, true, false},
		{TypeBoolean, false, true},
		{TypeArray, []int{1}, true},
		{TypeArray, map[string]any{}, false},
		{TypeObject, map[string]any{}, true},
		{TypeObject, node, true},
		{TypeFunction, func() {}, true},
		{TypeElement, node, true},
		{TypeElement, "div", false},
		{TypeAny, struct{}{}, true},
		{"number|string", "a", true},
		{"number | boolean", true, true},
		{"number|string", false, false},
		{TypeString, nil, true},
		{"", 1, true},
		{"gradient", 1, true},
	} {
		assert.Equal(t, tt.want, CheckType(tt.tag, tt.v), "%s %#v", tt.tag, tt.v)
	}
}

func TestSameValue(t *testing.T) {
	m := map[string]any{}
	s := []int{1, 2}

	assert.True(t, sameValue(1, 1))
	assert.False(t, sameValue(1, 1.0))
	assert.True(t, sameValue(math.NaN(), math.NaN()))
	assert.True(t, sameValue(nil, nil))
	assert.False(t, sameValue(nil, 0))
	assert.True(t, sameValue(m, m))
	assert.False(t, sameValue(m, map[string]any{}))
	assert.True(t, sameValue(s, s))
	assert.False(t, sameValue(s, s[:1]))
	assert.False(t, sameValue(s, []int{1, 2}))
	assert.True(t, sameValue("a", "a"))
}
