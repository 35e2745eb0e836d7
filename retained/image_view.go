package retained

import (
	"image"

	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/render"
)

// ScaleMode says how an ImageView fits its image into its content area.
type ScaleMode uint8

const (
	// ScaleFit keeps the aspect ratio and shows the whole image.
	ScaleFit ScaleMode = iota
	// ScaleFill keeps the aspect ratio and covers the whole area.
	ScaleFill
	// ScaleStretch ignores the aspect ratio.
	ScaleStretch
)

// ImageView shows an image. Its content size is the image's pixel size.
type ImageView struct {
	View
	img  image.Image
	mode ScaleMode
}

// NewImageView returns a view showing img, which may be nil.
func NewImageView(c Context, img image.Image) *ImageView {
	v := &ImageView{img: img}
	v.Init(c, v)
	return v
}

func (v *ImageView) Image() image.Image { return v.img }

// SetImage replaces the image.
func (v *ImageView) SetImage(img image.Image) {
	v.img = img
	v.RequestLayout()
	v.RequestDraw()
}

func (v *ImageView) ScaleMode() ScaleMode { return v.mode }

func (v *ImageView) SetScaleMode(m ScaleMode) {
	v.mode = m
	v.RequestDraw()
}

func (v *ImageView) imageSize() geom.Size {
	if v.img == nil {
		return geom.Size{}
	}
	b := v.img.Bounds()
	return geom.Sz(float32(b.Dx()), float32(b.Dy()))
}

func (v *ImageView) OnDetermineSize(info SizeInfo) geom.Size {
	sz := v.imageSize()
	return geom.Size{
		Width:  ResolveSize(sz.Width+v.padding.Horizontal(), info.Width),
		Height: ResolveSize(sz.Height+v.padding.Vertical(), info.Height),
	}
}

// ImageRect returns where the image is drawn, in local coordinates.
func (v *ImageView) ImageRect() geom.Rect {
	area := v.ContentBounds()
	sz := v.imageSize()
	if sz.Empty() || area.Empty() || v.mode == ScaleStretch {
		return area
	}
	sx, sy := area.Width()/sz.Width, area.Height()/sz.Height
	k := min(sx, sy)
	if v.mode == ScaleFill {
		k = max(sx, sy)
	}
	w, h := sz.Width*k, sz.Height*k
	c := area.Center()
	return geom.XYWH(c.X-w/2, c.Y-h/2, w, h)
}

func (v *ImageView) OnDraw(c render.Canvas) {
	if v.img == nil {
		return
	}
	if v.mode == ScaleFill {
		c.Save()
		defer c.Restore()
		c.ClipRect(v.ContentBounds())
	}
	c.DrawImage(v.img, v.ImageRect())
}
