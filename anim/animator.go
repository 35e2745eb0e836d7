// Package anim interpolates values over time, one VSync tick at a time.
//
// An Animator moves a single float32 from an initial to a final value.
// A Director groups animators under caller-chosen ids and drives them as a
// batch. Neither blocks: time only advances when Update (or OnVSync) is
// called with a new tick time.
package anim

import (
	"time"

	"github.com/agiangrant/viewkit/internal/observer"
	"github.com/agiangrant/viewkit/vsync"
)

// State is the lifecycle state of an Animator.
type State int

const (
	Ready State = iota
	Running
	Finished
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Listener receives animator lifecycle events. The director-level finished
// event is delivered to OnAnimFinished with a nil animator.
type Listener interface {
	OnAnimStarted(a *Animator)
	OnAnimProgress(a *Animator)
	OnAnimStopped(a *Animator)
	OnAnimFinished(a *Animator)
	OnAnimReset(a *Animator)
}

// ListenerFuncs implements Listener with optional funcs.
type ListenerFuncs struct {
	Started  func(a *Animator)
	Progress func(a *Animator)
	Stopped  func(a *Animator)
	Finished func(a *Animator)
	Reset    func(a *Animator)
}

func (l *ListenerFuncs) OnAnimStarted(a *Animator) {
	if l.Started != nil {
		l.Started(a)
	}
}

func (l *ListenerFuncs) OnAnimProgress(a *Animator) {
	if l.Progress != nil {
		l.Progress(a)
	}
}

func (l *ListenerFuncs) OnAnimStopped(a *Animator) {
	if l.Stopped != nil {
		l.Stopped(a)
	}
}

func (l *ListenerFuncs) OnAnimFinished(a *Animator) {
	if l.Finished != nil {
		l.Finished(a)
	}
}

func (l *ListenerFuncs) OnAnimReset(a *Animator) {
	if l.Reset != nil {
		l.Reset(a)
	}
}

type event int

const (
	evStarted event = iota
	evProgress
	evStopped
	evFinished
	evReset
)

func deliver(l Listener, ev event, a *Animator) {
	switch ev {
	case evStarted:
		l.OnAnimStarted(a)
	case evProgress:
		l.OnAnimProgress(a)
	case evStopped:
		l.OnAnimStopped(a)
	case evFinished:
		l.OnAnimFinished(a)
	case evReset:
		l.OnAnimReset(a)
	}
}

// Animator interpolates one value.
type Animator struct {
	id       int
	init     float32
	final    float32
	cur      float32
	duration time.Duration
	easing   EasingFunc
	repeat   int // extra cycles; negative repeats forever
	cycles   int
	state    State

	origin    time.Time
	hasOrigin bool

	listeners observer.Registry[Listener]
	director  *Director
	provider  *vsync.Provider // standalone mode
}

// NewAnimator returns a READY animator from init to final.
// A nil easing is linear.
func NewAnimator(id int, init, final float32, duration time.Duration, easing EasingFunc) *Animator {
	if easing == nil {
		easing = EaseLinear
	}
	return &Animator{
		id:       id,
		init:     init,
		final:    final,
		cur:      init,
		duration: duration,
		easing:   easing,
	}
}

func (a *Animator) ID() int                 { return a.id }
func (a *Animator) Value() float32          { return a.cur }
func (a *Animator) InitValue() float32      { return a.init }
func (a *Animator) FinalValue() float32     { return a.final }
func (a *Animator) Duration() time.Duration { return a.duration }
func (a *Animator) State() State            { return a.state }
func (a *Animator) IsRunning() bool         { return a.state == Running }
func (a *Animator) IsFinished() bool        { return a.state == Finished }

// Progress returns how far the current value is between init and final.
func (a *Animator) Progress() float32 {
	if a.final == a.init {
		if a.state == Finished {
			return 1
		}
		return 0
	}
	return (a.cur - a.init) / (a.final - a.init)
}

// SetValues changes the endpoints. Only allowed while READY.
func (a *Animator) SetValues(init, final float32) {
	if a.state != Ready {
		return
	}
	a.init, a.final, a.cur = init, final, init
}

// SetDuration changes the duration. Only allowed while READY.
func (a *Animator) SetDuration(d time.Duration) {
	if a.state == Ready {
		a.duration = d
	}
}

// SetEasing changes the interpolator. Only allowed while READY.
func (a *Animator) SetEasing(fn EasingFunc) {
	if a.state == Ready && fn != nil {
		a.easing = fn
	}
}

// SetRepeat sets how many extra cycles run after the first; n < 0 loops
// until stopped.
func (a *Animator) SetRepeat(n int) { a.repeat = n }

// AddListener registers l for this animator's events.
func (a *Animator) AddListener(l Listener) observer.Handle { return a.listeners.Add(l) }

// RemoveListener unregisters a listener.
func (a *Animator) RemoveListener(h observer.Handle) { a.listeners.Remove(h) }

// Bind makes the animator standalone: it registers with p when started and
// unregisters once finished, stopped or reset.
func (a *Animator) Bind(p *vsync.Provider) { a.provider = p }

// Start moves a READY animator to RUNNING. The time origin is the first
// Update that follows. Starting a running or finished animator does nothing.
func (a *Animator) Start() {
	if a.state != Ready {
		return
	}
	a.state = Running
	a.hasOrigin = false
	a.cycles = 0
	a.cur = a.init
	if a.provider != nil {
		a.provider.Add(a)
	}
}

// Stop cancels a running animator. It returns to READY keeping its current
// value and fires stopped, never finished.
func (a *Animator) Stop() {
	if a.state != Running {
		return
	}
	a.state = Ready
	a.unbind()
	a.emit(evStopped)
}

// Reset returns the animator to READY at its initial value.
func (a *Animator) Reset() {
	a.state = Ready
	a.cur = a.init
	a.hasOrigin = false
	a.unbind()
	a.emit(evReset)
}

// Update advances the animator to tick time start. It returns whether the
// animator is still running afterwards.
func (a *Animator) Update(start time.Time, displayFreq float64) bool {
	if a.state != Running {
		return false
	}
	if !a.hasOrigin {
		a.origin = start
		a.hasOrigin = true
		a.emit(evStarted)
	}

	elapsed := start.Sub(a.origin)
	remaining := a.duration - elapsed

	var halfFrame time.Duration
	if displayFreq > 0 {
		halfFrame = time.Duration(float64(time.Second) / displayFreq / 2)
	}

	if remaining <= 0 || remaining < halfFrame {
		if a.repeat < 0 || a.cycles < a.repeat {
			a.cycles++
			a.origin = start
			a.cur = a.final
			a.emit(evProgress)
			a.cur = a.init
			return true
		}
		a.cur = a.final
		a.state = Finished
		a.emit(evProgress)
		a.unbind()
		a.emit(evFinished)
		return false
	}

	t := float64(elapsed) / float64(a.duration)
	a.cur = a.init + (a.final-a.init)*float32(a.easing(t))
	a.emit(evProgress)
	return true
}

// OnVSync implements vsync.Callback for standalone animators.
func (a *Animator) OnVSync(start time.Time, displayFreq float64, _ time.Duration) {
	a.Update(start, displayFreq)
}

func (a *Animator) unbind() {
	if a.provider != nil {
		a.provider.Remove(a)
	}
}

func (a *Animator) emit(ev event) {
	a.listeners.Each(func(l Listener) { deliver(l, ev, a) })
	if a.director != nil {
		a.director.emit(ev, a)
	}
}
