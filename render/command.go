package render

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/agiangrant/viewkit/geom"
)

// Command is a single rendering operation. Exactly one field is set.
type Command struct {
	FillRect   *FillRectCmd   `json:"FillRect,omitempty"`
	FillCircle *FillCircleCmd `json:"FillCircle,omitempty"`
	StrokeRect *StrokeRectCmd `json:"StrokeRect,omitempty"`
	DrawText   *DrawTextCmd   `json:"DrawText,omitempty"`
	DrawImage  *DrawImageCmd  `json:"DrawImage,omitempty"`
	PushClip   *PushClipCmd   `json:"PushClip,omitempty"`
	PopClip    *struct{}      `json:"PopClip,omitempty"`
	SetOpacity *float32       `json:"SetOpacity,omitempty"`
}

type FillRectCmd struct {
	Rect     geom.Rect `json:"rect"`
	Color    uint32    `json:"color"`
	Radius   float32   `json:"radius,omitempty"`
	Rotation float32   `json:"rotation,omitempty"`
}

type FillCircleCmd struct {
	Center geom.Point `json:"center"`
	Radius float32    `json:"radius"`
	Color  uint32     `json:"color"`
}

type StrokeRectCmd struct {
	Rect     geom.Rect `json:"rect"`
	Width    float32   `json:"width"`
	Color    uint32    `json:"color"`
	Rotation float32   `json:"rotation,omitempty"`
}

type DrawTextCmd struct {
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Text  string  `json:"text"`
	Size  float32 `json:"size"`
	Color uint32  `json:"color"`
}

type DrawImageCmd struct {
	Rect  geom.Rect   `json:"rect"`
	Image image.Image `json:"-"`
}

// PushClipCmd clips to a rectangle, or to a circle when Radius > 0.
type PushClipCmd struct {
	Rect   geom.Rect  `json:"rect"`
	Center geom.Point `json:"center,omitempty"`
	Radius float32    `json:"radius,omitempty"`
}

// Name returns the name of the operation.
func (c Command) Name() string {
	switch {
	case c.FillRect != nil:
		return "FillRect"
	case c.FillCircle != nil:
		return "FillCircle"
	case c.StrokeRect != nil:
		return "StrokeRect"
	case c.DrawText != nil:
		return "DrawText"
	case c.DrawImage != nil:
		return "DrawImage"
	case c.PushClip != nil:
		return "PushClip"
	case c.PopClip != nil:
		return "PopClip"
	case c.SetOpacity != nil:
		return "SetOpacity"
	}
	return "Empty"
}

func (c Command) String() string {
	switch {
	case c.FillRect != nil:
		return fmt.Sprintf("FillRect %v #%08x", c.FillRect.Rect, c.FillRect.Color)
	case c.FillCircle != nil:
		return fmt.Sprintf("FillCircle (%g,%g) r=%g", c.FillCircle.Center.X, c.FillCircle.Center.Y, c.FillCircle.Radius)
	case c.StrokeRect != nil:
		return fmt.Sprintf("StrokeRect %v w=%g", c.StrokeRect.Rect, c.StrokeRect.Width)
	case c.DrawText != nil:
		return fmt.Sprintf("DrawText (%g,%g) %q", c.DrawText.X, c.DrawText.Y, c.DrawText.Text)
	case c.DrawImage != nil:
		return fmt.Sprintf("DrawImage %v", c.DrawImage.Rect)
	case c.PushClip != nil:
		return fmt.Sprintf("PushClip %v", c.PushClip.Rect)
	case c.SetOpacity != nil:
		return fmt.Sprintf("SetOpacity %g", *c.SetOpacity)
	}
	return c.Name()
}

// Encode serializes commands for a backend.
func Encode(cmds []Command) ([]byte, error) {
	data, err := json.Marshal(cmds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode render commands: %w", err)
	}
	return data, nil
}
