// Package geom provides the plain value types shared by the toolkit:
// points, sizes, rectangles, paddings and colors.
//
// Coordinates are float32 device independent pixels. Rectangles are
// half-open: a point on the right or bottom edge is outside.
package geom

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Point is a position.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float32 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math32.Sqrt(dx*dx + dy*dy)
}

// Size is a width and height.
type Size struct {
	Width, Height float32
}

// Sz is shorthand for Size{w, h}.
func Sz(w, h float32) Size { return Size{Width: w, Height: h} }

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool { return s.Width <= 0 || s.Height <= 0 }

// Rect is an axis aligned rectangle.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// XYWH builds a rectangle from its origin and size.
func XYWH(x, y, w, h float32) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns Right - Left.
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// Size returns the rectangle dimensions.
func (r Rect) Size() Size { return Size{r.Width(), r.Height()} }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{r.Left, r.Top} }

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.Left >= r.Left && o.Top >= r.Top && o.Right <= r.Right && o.Bottom <= r.Bottom
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{r.Left + dx, r.Top + dy, r.Right + dx, r.Bottom + dy}
}

// Intersect returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Left:   math32.Max(r.Left, o.Left),
		Top:    math32.Max(r.Top, o.Top),
		Right:  math32.Min(r.Right, o.Right),
		Bottom: math32.Min(r.Bottom, o.Bottom),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool { return !r.Intersect(o).Empty() }

// Union returns the smallest rectangle containing r and o.
// Empty operands are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		Left:   math32.Min(r.Left, o.Left),
		Top:    math32.Min(r.Top, o.Top),
		Right:  math32.Max(r.Right, o.Right),
		Bottom: math32.Max(r.Bottom, o.Bottom),
	}
}

// Inset shrinks r by p on each side.
func (r Rect) Inset(p Padding) Rect {
	return Rect{r.Left + p.Start, r.Top + p.Top, r.Right - p.End, r.Bottom - p.Bottom}
}

// Outset grows r by p on each side.
func (r Rect) Outset(p Padding) Rect {
	return Rect{r.Left - p.Start, r.Top - p.Top, r.Right + p.End, r.Bottom + p.Bottom}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.Left, r.Top, r.Right, r.Bottom)
}

// Padding is the space inside a view's bounds reserved around its content.
type Padding struct {
	Start, Top, End, Bottom float32
}

// Margin is the space a container keeps around a child.
type Margin = Padding

// Uniform returns a padding with the same value on all sides.
func Uniform(v float32) Padding { return Padding{v, v, v, v} }

// Horizontal returns Start + End.
func (p Padding) Horizontal() float32 { return p.Start + p.End }

// Vertical returns Top + Bottom.
func (p Padding) Vertical() float32 { return p.Top + p.Bottom }

// Clamp restricts v to [lo, hi]. When lo > hi, lo wins.
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}
