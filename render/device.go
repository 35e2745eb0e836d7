package render

import (
	"errors"

	"github.com/agiangrant/viewkit"
	"github.com/agiangrant/viewkit/internal/observer"
)

// ErrDeviceLost is returned by backends when the rendering device went away
// and must be recreated before the next draw.
var ErrDeviceLost = errors.New("render device lost")

// Rebuildable is implemented by anything holding device resources
// (textures, glyph caches, render targets).
type Rebuildable interface {
	// OnDemolish releases device resources after the device was lost.
	OnDemolish()
	// OnRebuild is called once the device has been recreated, or the
	// attempt failed. Failed rebuilds are retried on the next draw.
	OnRebuild(succeeded bool)
}

// Device tracks the rebuildables of one rendering device and runs the
// recovery sequence after a device loss.
type Device struct {
	recreate     func() error
	rebuildables observer.Registry[Rebuildable]
	lost         bool
	generation   int
}

// NewDevice returns a device whose recovery calls recreate. A nil recreate
// always succeeds.
func NewDevice(recreate func() error) *Device {
	if recreate == nil {
		recreate = func() error { return nil }
	}
	return &Device{recreate: recreate}
}

// Register adds r to the recovery sequence.
func (d *Device) Register(r Rebuildable) observer.Handle { return d.rebuildables.Add(r) }

// Unregister removes a rebuildable.
func (d *Device) Unregister(h observer.Handle) { d.rebuildables.Remove(h) }

// Lost reports whether the device awaits recovery.
func (d *Device) Lost() bool { return d.lost }

// Generation counts successful rebuilds.
func (d *Device) Generation() int { return d.generation }

// MarkLost demolishes every rebuildable. Repeated calls before a successful
// rebuild do nothing.
func (d *Device) MarkLost() {
	if d.lost {
		return
	}
	d.lost = true
	viewkit.Logger().Warn("render device lost", "rebuildables", d.rebuildables.Len())
	d.rebuildables.Each(func(r Rebuildable) { r.OnDemolish() })
}

// EnsureReady is called before drawing. When the device was lost it tries
// to recreate it, notifies the rebuildables and reports whether drawing can
// proceed.
func (d *Device) EnsureReady() bool {
	if !d.lost {
		return true
	}
	err := d.recreate()
	ok := err == nil
	if ok {
		d.lost = false
		d.generation++
	} else {
		viewkit.Logger().Error("render device rebuild failed", "err", err)
	}
	d.rebuildables.Each(func(r Rebuildable) { r.OnRebuild(ok) })
	return ok
}
