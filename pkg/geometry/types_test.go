package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntEdgesAndContains(t *testing.T) {
	r := NewRectInt(10, 20, 5, 6)

	assert.Equal(t, 15, r.Right())
	assert.Equal(t, 26, r.Bottom())
	assert.True(t, r.Contains(10, 20))
	assert.True(t, r.Contains(14, 25))
	assert.False(t, r.Contains(15, 20), "right edge is exclusive")
	assert.False(t, r.Contains(10, 26), "bottom edge is exclusive")
}

func TestRectIntUnion(t *testing.T) {
	a := NewRectInt(0, 0, 10, 10)
	b := NewRectInt(20, 5, 10, 10)

	assert.Equal(t, NewRectInt(0, 0, 30, 15), a.Union(b))
	assert.Equal(t, a, a.Union(RectInt{}), "empty rect is the union identity")
	assert.Equal(t, b, RectInt{}.Union(b))
}

func TestBoundingBox(t *testing.T) {
	pts := []PointInt{{X: 3, Y: 7}, {X: 1, Y: 9}, {X: 5, Y: 2}}

	assert.Equal(t, NewRectInt(1, 2, 5, 8), BoundingBox(pts))
	assert.Equal(t, RectInt{}, BoundingBox(nil))
	assert.Equal(t, NewRectInt(4, 4, 1, 1), BoundingBox([]PointInt{{X: 4, Y: 4}}))
}

func TestCentroid(t *testing.T) {
	cx, cy := Centroid([]PointInt{{X: 0, Y: 0}, {X: 4, Y: 2}})
	assert.Equal(t, 2.0, cx)
	assert.Equal(t, 1.0, cy)

	cx, cy = Centroid(nil)
	assert.Zero(t, cx)
	assert.Zero(t, cy)
}
