package retained

import (
	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/render"
)

// Element is a drawable decoration such as a view background.
type Element interface {
	Draw(c render.Canvas, bounds geom.Rect)
}

// ColorElement fills its bounds with a color, optionally rounded and
// outlined.
type ColorElement struct {
	Color       geom.Color
	Radius      float32
	BorderWidth float32
	BorderColor geom.Color
}

// NewColorElement returns a solid fill.
func NewColorElement(c geom.Color) *ColorElement { return &ColorElement{Color: c} }

func (e *ColorElement) Draw(c render.Canvas, bounds geom.Rect) {
	if e.Radius > 0 {
		c.FillRoundRect(bounds, e.Radius, e.Color)
	} else {
		c.FillRect(bounds, e.Color)
	}
	if e.BorderWidth > 0 {
		c.StrokeRect(bounds, e.BorderWidth, e.BorderColor)
	}
}
