package geom

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a non-premultiplied RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
)

// RGBA builds a color from 0xRRGGBBAA.
func RGBA(v uint32) Color {
	return Color{
		R: float32((v>>24)&0xFF) / 255,
		G: float32((v>>16)&0xFF) / 255,
		B: float32((v>>8)&0xFF) / 255,
		A: float32(v&0xFF) / 255,
	}
}

// Uint32 returns the color as 0xRRGGBBAA.
func (c Color) Uint32() uint32 {
	to8 := func(f float32) uint32 {
		return uint32(Clamp(f, 0, 1)*255 + 0.5)
	}
	return to8(c.R)<<24 | to8(c.G)<<16 | to8(c.B)<<8 | to8(c.A)
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float32) Color {
	c.A *= a
	return c
}

// Lerp blends c toward to by t in CIE L*a*b* space, which keeps the
// midpoints of color animations from going muddy. Alpha blends linearly.
func (c Color) Lerp(to Color, t float32) Color {
	switch {
	case t <= 0:
		return c
	case t >= 1:
		return to
	}
	from := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
	dest := colorful.Color{R: float64(to.R), G: float64(to.G), B: float64(to.B)}
	mixed := from.BlendLab(dest, float64(t)).Clamped()
	return Color{
		R: float32(mixed.R),
		G: float32(mixed.G),
		B: float32(mixed.B),
		A: c.A + (to.A-c.A)*t,
	}
}

func (c Color) String() string {
	return fmt.Sprintf("#%08x", c.Uint32())
}
