// Package render defines what views draw into.
//
// Views only see the Canvas interface. RecordingCanvas turns the calls into
// a flat list of Commands in window coordinates, the form a GPU backend
// consumes. Rasterization itself lives outside this module.
package render

import (
	"image"

	"github.com/agiangrant/viewkit/geom"
)

// Canvas is the drawing surface handed to views.
// Translate, Scale, Rotate, opacity and clips are scoped by Save/Restore.
type Canvas interface {
	Save()
	Restore()

	Translate(dx, dy float32)
	Scale(sx, sy float32)
	// Rotate rotates subsequent drawing by deg degrees clockwise around the
	// current origin.
	Rotate(deg float32)

	// SetOpacity multiplies the current opacity by alpha.
	SetOpacity(alpha float32)
	Opacity() float32

	ClipRect(r geom.Rect)
	ClipCircle(center geom.Point, radius float32)

	FillRect(r geom.Rect, c geom.Color)
	FillRoundRect(r geom.Rect, radius float32, c geom.Color)
	FillCircle(center geom.Point, radius float32, c geom.Color)
	StrokeRect(r geom.Rect, width float32, c geom.Color)
	DrawText(s string, origin geom.Point, size float32, c geom.Color)
	DrawImage(img image.Image, dst geom.Rect)
}
