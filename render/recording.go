package render

import (
	"image"

	"github.com/agiangrant/viewkit/geom"
	"github.com/chewxy/math32"
)

type canvasState struct {
	tx, ty   float32
	sx, sy   float32
	rotation float32
	opacity  float32
	clips    int
}

// RecordingCanvas records drawing as Commands in window coordinates.
// Translation and scale are applied to the recorded geometry; rotation is
// carried on the commands that support it.
type RecordingCanvas struct {
	cmds  []Command
	state canvasState
	stack []canvasState
}

// NewRecordingCanvas returns an empty canvas with identity transform.
func NewRecordingCanvas() *RecordingCanvas {
	return &RecordingCanvas{state: canvasState{sx: 1, sy: 1, opacity: 1}}
}

// Commands returns the recorded commands.
func (c *RecordingCanvas) Commands() []Command { return c.cmds }

// Reset drops recorded commands and restores the initial state.
func (c *RecordingCanvas) Reset() {
	c.cmds = c.cmds[:0]
	c.stack = c.stack[:0]
	c.state = canvasState{sx: 1, sy: 1, opacity: 1}
}

func (c *RecordingCanvas) Save() {
	c.stack = append(c.stack, c.state)
	c.state.clips = 0
}

// Restore pops the state pushed by the matching Save, closing any clips
// opened since. Unbalanced calls are ignored.
func (c *RecordingCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	for range c.state.clips {
		c.cmds = append(c.cmds, Command{PopClip: &struct{}{}})
	}
	prev := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	if prev.opacity != c.state.opacity {
		c.emitOpacity(prev.opacity)
	}
	c.state = prev
}

func (c *RecordingCanvas) Translate(dx, dy float32) {
	c.state.tx += dx * c.state.sx
	c.state.ty += dy * c.state.sy
}

func (c *RecordingCanvas) Scale(sx, sy float32) {
	c.state.sx *= sx
	c.state.sy *= sy
}

func (c *RecordingCanvas) Rotate(deg float32) {
	c.state.rotation = math32.Mod(c.state.rotation+deg, 360)
}

func (c *RecordingCanvas) SetOpacity(alpha float32) {
	next := c.state.opacity * geom.Clamp(alpha, 0, 1)
	if next == c.state.opacity {
		return
	}
	c.state.opacity = next
	c.emitOpacity(next)
}

func (c *RecordingCanvas) Opacity() float32 { return c.state.opacity }

func (c *RecordingCanvas) ClipRect(r geom.Rect) {
	c.state.clips++
	c.cmds = append(c.cmds, Command{PushClip: &PushClipCmd{Rect: c.mapRect(r)}})
}

func (c *RecordingCanvas) ClipCircle(center geom.Point, radius float32) {
	p := c.mapPoint(center)
	r := radius * math32.Max(c.state.sx, c.state.sy)
	c.state.clips++
	c.cmds = append(c.cmds, Command{PushClip: &PushClipCmd{
		Rect:   geom.Rect{Left: p.X - r, Top: p.Y - r, Right: p.X + r, Bottom: p.Y + r},
		Center: p,
		Radius: r,
	}})
}

func (c *RecordingCanvas) FillRect(r geom.Rect, col geom.Color) {
	c.FillRoundRect(r, 0, col)
}

func (c *RecordingCanvas) FillRoundRect(r geom.Rect, radius float32, col geom.Color) {
	if r.Empty() || col.A == 0 {
		return
	}
	c.cmds = append(c.cmds, Command{FillRect: &FillRectCmd{
		Rect:     c.mapRect(r),
		Color:    col.Uint32(),
		Radius:   radius * c.state.sx,
		Rotation: c.state.rotation,
	}})
}

func (c *RecordingCanvas) FillCircle(center geom.Point, radius float32, col geom.Color) {
	if radius <= 0 || col.A == 0 {
		return
	}
	c.cmds = append(c.cmds, Command{FillCircle: &FillCircleCmd{
		Center: c.mapPoint(center),
		Radius: radius * c.state.sx,
		Color:  col.Uint32(),
	}})
}

func (c *RecordingCanvas) StrokeRect(r geom.Rect, width float32, col geom.Color) {
	if width <= 0 || col.A == 0 {
		return
	}
	c.cmds = append(c.cmds, Command{StrokeRect: &StrokeRectCmd{
		Rect:     c.mapRect(r),
		Width:    width * c.state.sx,
		Color:    col.Uint32(),
		Rotation: c.state.rotation,
	}})
}

func (c *RecordingCanvas) DrawText(s string, origin geom.Point, size float32, col geom.Color) {
	if s == "" {
		return
	}
	p := c.mapPoint(origin)
	c.cmds = append(c.cmds, Command{DrawText: &DrawTextCmd{
		X: p.X, Y: p.Y, Text: s, Size: size * c.state.sy, Color: col.Uint32(),
	}})
}

func (c *RecordingCanvas) DrawImage(img image.Image, dst geom.Rect) {
	if img == nil || dst.Empty() {
		return
	}
	c.cmds = append(c.cmds, Command{DrawImage: &DrawImageCmd{Rect: c.mapRect(dst), Image: img}})
}

func (c *RecordingCanvas) emitOpacity(v float32) {
	c.cmds = append(c.cmds, Command{SetOpacity: &v})
}

func (c *RecordingCanvas) mapPoint(p geom.Point) geom.Point {
	return geom.Point{X: c.state.tx + p.X*c.state.sx, Y: c.state.ty + p.Y*c.state.sy}
}

func (c *RecordingCanvas) mapRect(r geom.Rect) geom.Rect {
	a := c.mapPoint(geom.Point{X: r.Left, Y: r.Top})
	b := c.mapPoint(geom.Point{X: r.Right, Y: r.Bottom})
	return geom.Rect{
		Left:   math32.Min(a.X, b.X),
		Top:    math32.Min(a.Y, b.Y),
		Right:  math32.Max(a.X, b.X),
		Bottom: math32.Max(a.Y, b.Y),
	}
}

var _ Canvas = (*RecordingCanvas)(nil)
