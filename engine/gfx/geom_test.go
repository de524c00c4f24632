package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContainsEdges(t *testing.T) {
	r := R(10, 10, 20, 20)
	assert.True(t, r.Contains(V(10, 10)))
	assert.True(t, r.Contains(V(29.9, 29.9)))
	assert.False(t, r.Contains(V(30, 15)))
	assert.False(t, r.Contains(V(15, 30)))
	assert.False(t, r.Contains(V(9.9, 15)))

	// neighbours never share a pixel
	right := R(30, 10, 20, 20)
	p := V(30, 20)
	assert.NotEqual(t, r.Contains(p), right.Contains(p))
}

func TestRectIntersect(t *testing.T) {
	a := R(0, 0, 10, 10)
	assert.Equal(t, R(5, 5, 5, 5), a.Intersect(R(5, 5, 10, 10)))
	assert.True(t, a.Intersect(R(20, 20, 5, 5)).Empty())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(5), Clamp(10, 0, 5))
	assert.Equal(t, float32(0), Clamp(-3, 0, 5))
	// inverted bounds fall back to the lower bound
	assert.Equal(t, float32(0), Clamp(3, 0, -10))
}
