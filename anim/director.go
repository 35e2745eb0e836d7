package anim

import (
	"time"

	"github.com/agiangrant/viewkit/internal/observer"
	"github.com/agiangrant/viewkit/vsync"
)

// Director drives a batch of animators keyed by caller-chosen ids
// (ALPHA, SCALE_X, ...). It registers itself with the VSync provider while
// any of its animators runs.
type Director struct {
	provider  *vsync.Provider
	order     []int
	animators map[int]*Animator
	listeners observer.Registry[Listener]

	// inFlight is set by Start and cleared once the batch finished,
	// stopped or reset, so the director-level finished fires once.
	inFlight bool
}

// NewDirector returns an empty director ticking through p.
// p may be nil when the caller drives Update itself.
func NewDirector(p *vsync.Provider) *Director {
	return &Director{
		provider:  p,
		animators: make(map[int]*Animator),
	}
}

// Add creates an animator under id, replacing any previous one.
func (d *Director) Add(id int, from, to float32, duration time.Duration, easing EasingFunc) *Animator {
	a := NewAnimator(id, from, to, duration, easing)
	d.Put(a)
	return a
}

// Put adds an existing animator under its id, replacing any previous one.
func (d *Director) Put(a *Animator) {
	if old, ok := d.animators[a.id]; ok {
		old.director = nil
	} else {
		d.order = append(d.order, a.id)
	}
	a.director = d
	a.provider = nil
	d.animators[a.id] = a
}

// Animator returns the animator registered under id, or nil.
func (d *Director) Animator(id int) *Animator { return d.animators[id] }

// Has reports whether id is registered.
func (d *Director) Has(id int) bool {
	_, ok := d.animators[id]
	return ok
}

// IDs returns the registered ids in insertion order.
func (d *Director) IDs() []int { return append([]int(nil), d.order...) }

// Len returns the number of animators.
func (d *Director) Len() int { return len(d.order) }

// Remove drops the animator under id without firing events.
func (d *Director) Remove(id int) bool {
	a, ok := d.animators[id]
	if !ok {
		return false
	}
	a.director = nil
	delete(d.animators, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	if !d.IsRunning() {
		d.unregister()
	}
	return true
}

// Clear stops and drops every animator.
func (d *Director) Clear() {
	d.Stop()
	for _, a := range d.animators {
		a.director = nil
	}
	d.order = nil
	d.animators = make(map[int]*Animator)
}

// AddListener registers l for every animator's events and the
// director-level finished event.
func (d *Director) AddListener(l Listener) observer.Handle { return d.listeners.Add(l) }

// RemoveListener unregisters a listener.
func (d *Director) RemoveListener(h observer.Handle) { d.listeners.Remove(h) }

// Value returns the current value of the animator under id, or 0.
func (d *Director) Value(id int) float32 {
	if a := d.animators[id]; a != nil {
		return a.cur
	}
	return 0
}

// Start starts every READY animator.
func (d *Director) Start() {
	started := false
	d.each(func(a *Animator) {
		if a.state == Ready {
			a.Start()
			started = true
		}
	})
	if started {
		d.inFlight = true
		if d.provider != nil {
			d.provider.Add(d)
		}
	}
}

// Stop stops every running animator. No finished event fires.
func (d *Director) Stop() {
	d.inFlight = false
	d.unregister()
	d.each(func(a *Animator) { a.Stop() })
}

// Reset resets every animator to its initial value.
func (d *Director) Reset() {
	d.inFlight = false
	d.unregister()
	d.each(func(a *Animator) { a.Reset() })
}

// IsRunning reports whether any animator runs.
func (d *Director) IsRunning() bool {
	for _, a := range d.animators {
		if a.state == Running {
			return true
		}
	}
	return false
}

// IsFinished reports whether every animator has finished.
func (d *Director) IsFinished() bool {
	if len(d.animators) == 0 {
		return false
	}
	for _, a := range d.animators {
		if a.state != Finished {
			return false
		}
	}
	return true
}

// Update advances every running animator, then fires the director-level
// finished event once the last of them finishes. A batch in which some
// animator was stopped or reset on its own ends without the event. It
// returns whether any animator is still running.
func (d *Director) Update(start time.Time, displayFreq float64) bool {
	d.each(func(a *Animator) { a.Update(start, displayFreq) })

	if d.IsRunning() {
		return true
	}
	d.unregister()
	if d.inFlight {
		d.inFlight = false
		if d.IsFinished() {
			d.emit(evFinished, nil)
		}
	}
	return false
}

// OnVSync implements vsync.Callback.
func (d *Director) OnVSync(start time.Time, displayFreq float64, _ time.Duration) {
	d.Update(start, displayFreq)
}

// each visits animators in insertion order over a snapshot, so listeners
// may add or remove animators while it runs.
func (d *Director) each(fn func(a *Animator)) {
	for _, id := range append([]int(nil), d.order...) {
		if a := d.animators[id]; a != nil {
			fn(a)
		}
	}
}

func (d *Director) unregister() {
	if d.provider != nil {
		d.provider.Remove(d)
	}
}

func (d *Director) emit(ev event, a *Animator) {
	d.listeners.Each(func(l Listener) { deliver(l, ev, a) })
}
