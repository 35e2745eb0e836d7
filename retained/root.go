package retained

import "github.com/agiangrant/viewkit/geom"

// RootLayout is the top of every window's tree. It holds a content layer
// for the application's views and an overlay layer above it where
// levitators (menus, tooltips) float.
type RootLayout struct {
	LayoutView

	content *LayoutView
	overlay *OverlayLayer
}

func newRootLayout(c Context) *RootLayout {
	r := &RootLayout{}
	r.Init(c, r)
	r.content = NewLayoutView(c)
	r.content.SetLayoutSize(Fill, Fill)
	r.overlay = newOverlayLayer(c)
	r.overlay.SetLayoutSize(Fill, Fill)
	r.AddView(r.content)
	r.AddView(r.overlay)
	return r
}

// Content returns the layer holding the application's views.
func (r *RootLayout) Content() *LayoutView { return r.content }

// Overlay returns the layer holding levitators.
func (r *RootLayout) Overlay() *OverlayLayer { return r.overlay }

// OverlayInfo places a child of the overlay layer at Origin, in window
// coordinates.
type OverlayInfo struct {
	Origin geom.Point
}

// OverlayLayer positions its children at absolute window coordinates,
// pushed back inside the window when they would overflow it.
type OverlayLayer struct {
	LayoutView
}

func newOverlayLayer(c Context) *OverlayLayer {
	o := &OverlayLayer{}
	o.Init(c, o)
	return o
}

func (o *OverlayLayer) OnLayout(changed bool, bounds geom.Rect) {
	w, h := bounds.Width(), bounds.Height()
	for _, c := range o.children {
		v := c.AsView()
		if v.visibility == Vanished {
			continue
		}
		sz := v.Measure(SizeInfo{
			Width:  ChildSizeValue(AtMost(w), v.margin.Horizontal(), v.width),
			Height: ChildSizeValue(AtMost(h), v.margin.Vertical(), v.height),
		})
		var at geom.Point
		if info, ok := v.layoutInfo.(*OverlayInfo); ok && info != nil {
			at = info.Origin
		}
		x := geom.Clamp(at.X, 0, max(w-sz.Width, 0))
		y := geom.Clamp(at.Y, 0, max(h-sz.Height, 0))
		v.Layout(geom.XYWH(x, y, sz.Width, sz.Height))
	}
}
