package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := XYWH(10, 10, 20, 20)
	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"right edge", 30, 15, false},
		{"bottom edge", 15, 30, false},
		{"outside", 5, 15, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.x, tt.y))
		})
	}
}

func TestRectOps(t *testing.T) {
	a := XYWH(0, 0, 10, 10)
	b := XYWH(5, 5, 10, 10)

	assert.Equal(t, Rect{5, 5, 10, 10}, a.Intersect(b))
	assert.Equal(t, Rect{0, 0, 15, 15}, a.Union(b))
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(XYWH(20, 20, 1, 1)))
	assert.Equal(t, Rect{}, a.Intersect(XYWH(20, 20, 1, 1)))
	assert.Equal(t, b, Rect{}.Union(b))
	assert.Equal(t, Rect{2, 2, 12, 12}, a.Offset(2, 2))

	p := Padding{Start: 1, Top: 2, End: 3, Bottom: 4}
	assert.Equal(t, Rect{1, 2, 7, 6}, a.Inset(p))
	assert.Equal(t, a, a.Inset(p).Outset(p))
	assert.Equal(t, float32(4), p.Horizontal())
	assert.Equal(t, float32(6), p.Vertical())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0), Clamp(-1, 0, 5))
	assert.Equal(t, float32(5), Clamp(9, 0, 5))
	assert.Equal(t, float32(3), Clamp(3, 0, 5))
}

func TestColorRoundTripsUint32(t *testing.T) {
	for _, v := range []uint32{0x00000000, 0xFFFFFFFF, 0x336699CC, 0x12345678} {
		assert.Equal(t, v, RGBA(v).Uint32())
	}
}

func TestColorLerpEndpoints(t *testing.T) {
	red, blue := RGBA(0xFF0000FF), RGBA(0x0000FF00)
	assert.Equal(t, red, red.Lerp(blue, 0))
	assert.Equal(t, blue, red.Lerp(blue, 1))

	mid := red.Lerp(blue, 0.5)
	assert.InDelta(t, 0.5, mid.A, 1e-6)
	assert.Greater(t, mid.R, float32(0))
	assert.Greater(t, mid.B, float32(0))
}
