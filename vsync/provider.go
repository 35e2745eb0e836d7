// Package vsync schedules work once per display refresh.
//
// A Provider holds the callbacks interested in the next refresh. The platform
// (or the software Source) calls Provider.Tick once per refresh while the
// provider is Active; everything runs on the UI goroutine.
package vsync

import (
	"time"

	"github.com/agiangrant/viewkit"
	"github.com/agiangrant/viewkit/internal/observer"
)

// Callback is invoked once per display refresh while registered.
type Callback interface {
	// OnVSync receives the tick time, the display refresh rate in Hz and
	// the measured time since the previous tick.
	OnVSync(start time.Time, displayFreq float64, realInterval time.Duration)
}

// Func adapts a function to a Callback. Use a *Func so the callback has a
// stable identity for Add and Remove.
type Func struct {
	fn func(start time.Time, displayFreq float64, realInterval time.Duration)
}

// NewFunc wraps fn.
func NewFunc(fn func(start time.Time, displayFreq float64, realInterval time.Duration)) *Func {
	return &Func{fn: fn}
}

// OnVSync implements Callback.
func (f *Func) OnVSync(start time.Time, displayFreq float64, realInterval time.Duration) {
	f.fn(start, displayFreq, realInterval)
}

// Provider is the registry of VSync callbacks.
//
// Callbacks fire in registration order. A callback added during a tick first
// fires on the following tick; a callback removed during a tick is not
// called for the rest of it.
type Provider struct {
	callbacks observer.Registry[Callback]
	handles   map[Callback]observer.Handle
	requested bool
	ticks     uint64
}

// NewProvider returns an empty provider.
func NewProvider() *Provider {
	return &Provider{handles: make(map[Callback]observer.Handle)}
}

// Add registers cb. Adding a registered callback again does nothing.
func (p *Provider) Add(cb Callback) {
	if cb == nil {
		return
	}
	if _, ok := p.handles[cb]; ok {
		return
	}
	p.handles[cb] = p.callbacks.Add(cb)
}

// Remove unregisters cb. It reports whether cb was registered.
func (p *Provider) Remove(cb Callback) bool {
	h, ok := p.handles[cb]
	if !ok {
		return false
	}
	delete(p.handles, cb)
	return p.callbacks.Remove(h)
}

// Has reports whether cb is registered.
func (p *Provider) Has(cb Callback) bool {
	_, ok := p.handles[cb]
	return ok
}

// Len returns the number of registered callbacks.
func (p *Provider) Len() int { return len(p.handles) }

// Request asks for one more tick even when nothing is registered.
func (p *Provider) Request() { p.requested = true }

// Active reports whether the next refresh should produce a tick.
func (p *Provider) Active() bool {
	return p.requested || len(p.handles) > 0
}

// Ticks returns the number of ticks delivered so far.
func (p *Provider) Ticks() uint64 { return p.ticks }

// Tick runs every registered callback once.
func (p *Provider) Tick(start time.Time, displayFreq float64, realInterval time.Duration) {
	p.requested = false
	p.ticks++
	viewkit.Logger().Debug("vsync tick",
		"n", p.ticks,
		"callbacks", len(p.handles),
		"interval", realInterval)

	p.callbacks.Each(func(cb Callback) {
		cb.OnVSync(start, displayFreq, realInterval)
	})
}
