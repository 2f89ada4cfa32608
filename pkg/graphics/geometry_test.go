package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContains_HalfOpen(t *testing.T) {
	r := RectFromLTWH(10, 10, 20, 20)

	assert.True(t, r.Contains(Offset{X: 10, Y: 10}), "top-left corner is inside")
	assert.True(t, r.Contains(Offset{X: 29.9, Y: 29.9}))
	assert.False(t, r.Contains(Offset{X: 30, Y: 15}), "right edge is outside")
	assert.False(t, r.Contains(Offset{X: 15, Y: 30}), "bottom edge is outside")
	assert.False(t, r.Contains(Offset{X: 9, Y: 15}))
}

func TestRectContains_AdjacentRectsShareNoPoint(t *testing.T) {
	a := RectFromLTWH(0, 0, 10, 10)
	b := RectFromLTWH(0, 10, 10, 10)
	p := Offset{X: 5, Y: 10}

	assert.False(t, a.Contains(p) && b.Contains(p))
	assert.True(t, b.Contains(p))
}

func TestRectIntersect(t *testing.T) {
	a := RectFromLTWH(0, 0, 10, 10)
	b := RectFromLTWH(5, 5, 10, 10)

	assert.True(t, a.Intersect(b).Equal(Rect{Left: 5, Top: 5, Right: 10, Bottom: 10}))
	assert.True(t, a.Intersect(RectFromLTWH(20, 20, 1, 1)).IsEmpty())
}

func TestRectDeflate(t *testing.T) {
	r := RectFromLTWH(0, 0, 10, 4)

	got := r.Deflate(3)
	assert.Equal(t, 4.0, got.Width())
	assert.Equal(t, 0.0, got.Height(), "over-deflated axis collapses")
	assert.Equal(t, 2.0, got.Top)
}

func TestOffsetDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Offset{X: 3, Y: -4}.Distance(), 1e-9)
	assert.Equal(t, Offset{X: 2, Y: 3}, Offset{X: 5, Y: 5}.Sub(Offset{X: 3, Y: 2}))
}

func TestColorNRGBA(t *testing.T) {
	c := RGBA(0x10, 0x20, 0x30, 0.4)

	got := c.NRGBA()
	assert.Equal(t, uint8(0x10), got.R)
	assert.Equal(t, uint8(0x20), got.G)
	assert.Equal(t, uint8(0x30), got.B)
	assert.Equal(t, uint8(102), got.A)
	assert.InDelta(t, 1.0, ColorBlack.Alpha(), 1e-9)
	assert.Equal(t, ColorTransparent, ColorBlack.WithAlpha(0))
}
