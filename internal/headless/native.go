// Package headless implements retained.WindowNative without a platform
// window. Frames are recorded on a render.RecordingCanvas; tests and the
// CLI inject input and resizes directly.
package headless

import (
	"errors"
	"fmt"
	"slices"

	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/render"
	"github.com/agiangrant/viewkit/retained"
)

// ErrNoDelegate is returned by Create without a delegate.
var ErrNoDelegate = errors.New("headless: nil window delegate")

// Native is an in-memory window.
type Native struct {
	bounds geom.Rect
	d      retained.WindowNativeDelegate
	canvas *render.RecordingCanvas
	last   []render.Command

	title         string
	shown         bool
	closed        bool
	lost          bool
	failRecreate  int
	invalidations int
}

// New returns a window with a client area of width x height at the origin.
func New(width, height float32) *Native {
	return &Native{
		bounds: geom.Rect{Right: width, Bottom: height},
		canvas: render.NewRecordingCanvas(),
	}
}

// Create implements retained.WindowNative.
func (n *Native) Create(d retained.WindowNativeDelegate) error {
	if d == nil {
		return ErrNoDelegate
	}
	if n.d != nil {
		return fmt.Errorf("headless: window %q already created", n.title)
	}
	n.d = d
	d.OnCreate()
	d.OnCreated()
	return nil
}

// Show implements retained.WindowNative. The window becomes active and
// focused as a desktop window would.
func (n *Native) Show() {
	if n.d == nil || n.shown {
		return
	}
	n.shown = true
	n.d.OnShow()
	n.d.OnActivate(true)
	n.d.OnSetFocus()
}

// Close implements retained.WindowNative.
func (n *Native) Close() {
	if n.d == nil || n.closed {
		return
	}
	if !n.d.OnClose() {
		return
	}
	n.closed = true
	n.d.OnDestroy()
}

func (n *Native) SetTitle(title string) { n.title = title }
func (n *Native) Title() string         { return n.title }
func (n *Native) Bounds() geom.Rect     { return n.bounds }
func (n *Native) Closed() bool          { return n.closed }

// Invalidate implements retained.WindowNative by drawing immediately.
func (n *Native) Invalidate(dirty geom.Rect) {
	n.invalidations++
	if n.d != nil && !n.closed {
		n.d.OnDraw(dirty)
	}
}

// Invalidations counts Invalidate calls.
func (n *Native) Invalidations() int { return n.invalidations }

// BeginDraw implements retained.WindowNative.
func (n *Native) BeginDraw() (render.Canvas, error) {
	if n.lost {
		return nil, render.ErrDeviceLost
	}
	n.canvas.Reset()
	return n.canvas, nil
}

// EndDraw implements retained.WindowNative.
func (n *Native) EndDraw() error {
	n.last = slices.Clone(n.canvas.Commands())
	return nil
}

// RecreateDevice implements retained.WindowNative.
func (n *Native) RecreateDevice() error {
	if n.failRecreate > 0 {
		n.failRecreate--
		return errors.New("headless: device unavailable")
	}
	n.lost = false
	return nil
}

// LoseDevice makes the next draw fail with render.ErrDeviceLost. The first
// failures recreation attempts fail too.
func (n *Native) LoseDevice(failures int) {
	n.lost = true
	n.failRecreate = failures
}

// Commands returns the commands of the last completed frame.
func (n *Native) Commands() []render.Command { return n.last }

// Resize changes the client area and notifies the window.
func (n *Native) Resize(width, height float32) {
	n.bounds.Right = n.bounds.Left + width
	n.bounds.Bottom = n.bounds.Top + height
	if n.d != nil {
		n.d.OnResize(width, height)
	}
}

// Send delivers e as if the platform produced it.
func (n *Native) Send(e *retained.InputEvent) bool {
	if n.d == nil || n.closed {
		return false
	}
	return n.d.OnInputEvent(e)
}
