package retained

import (
	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/render"
)

// HitArea is the answer to a non-client hit test: which part of the window
// frame lies under a point.
type HitArea uint8

const (
	HitClient HitArea = iota
	HitCaption
	HitNowhere
)

// WindowNative is the platform side of a window. Window calls it; the
// platform calls back through WindowNativeDelegate.
type WindowNative interface {
	// Create builds the platform window and starts delivering callbacks
	// to d, beginning with OnCreate and OnCreated.
	Create(d WindowNativeDelegate) error
	Show()
	Close()
	SetTitle(title string)
	// Bounds returns the client area in screen coordinates.
	Bounds() geom.Rect
	// Invalidate asks for an OnDraw covering dirty.
	Invalidate(dirty geom.Rect)
	// BeginDraw returns the canvas for one frame. It fails with
	// render.ErrDeviceLost when the device must be recreated.
	BeginDraw() (render.Canvas, error)
	EndDraw() error
	// RecreateDevice rebuilds the rendering device after a loss.
	RecreateDevice() error
}

// WindowNativeDelegate receives platform notifications. All calls arrive on
// the UI goroutine.
type WindowNativeDelegate interface {
	OnCreate()
	OnCreated()
	OnShow()
	OnActivate(active bool)
	OnSetFocus()
	OnKillFocus()
	OnMove(x, y float32)
	OnResize(width, height float32)
	// OnClose reports whether the window may close.
	OnClose() bool
	OnDestroy()
	// OnInputEvent receives events in client coordinates.
	OnInputEvent(e *InputEvent) bool
	OnNCHitTest(x, y float32) HitArea
	OnDraw(dirty geom.Rect)
}
