package retained

import (
	"time"

	"github.com/agiangrant/viewkit/anim"
	"github.com/agiangrant/viewkit/geom"
)

// Animator ids used by ViewAnimator.
const (
	AnimAlpha = iota + 1
	AnimScaleX
	AnimScaleY
	AnimTranslateX
	AnimTranslateY
	AnimRotate
	AnimRevealRadius
	AnimRevealWidth
	AnimRevealHeight
	AnimBackground
)

var revealIDs = [...]int{AnimRevealRadius, AnimRevealWidth, AnimRevealHeight}

// ViewAnimator animates a view's paint parameters.
//
// Builder calls each add one animator starting from the view's current
// value; nothing moves until Start. Calls made after a batch ended begin a
// new batch.
//
//	v.Animate().Alpha(0).TranslateY(20).Start()
type ViewAnimator struct {
	view     *View
	director *anim.Director
	duration time.Duration
	easing   anim.EasingFunc

	building bool
	bgFrom   geom.Color
	bgTo     geom.Color
	onEnd    func()
}

func newViewAnimator(v *View) *ViewAnimator {
	cfg := v.ctx.Config()
	easing, ok := anim.EasingByName(cfg.Animation.Easing)
	if !ok {
		easing = anim.EaseOutQuad
	}
	va := &ViewAnimator{
		view:     v,
		director: anim.NewDirector(v.ctx.Provider()),
		duration: cfg.AnimationDuration(),
		easing:   easing,
	}
	va.director.AddListener(&anim.ListenerFuncs{
		Progress: va.apply,
		Stopped:  va.stopped,
		Finished: va.finished,
	})
	return va
}

// Director exposes the underlying director, e.g. to add listeners.
func (va *ViewAnimator) Director() *anim.Director { return va.director }

// Duration sets the duration of the batch being built.
func (va *ViewAnimator) Duration(d time.Duration) *ViewAnimator {
	va.begin()
	va.duration = d
	for _, id := range va.director.IDs() {
		va.director.Animator(id).SetDuration(d)
	}
	return va
}

// Easing sets the easing of the batch being built.
func (va *ViewAnimator) Easing(fn anim.EasingFunc) *ViewAnimator {
	va.begin()
	va.easing = fn
	for _, id := range va.director.IDs() {
		va.director.Animator(id).SetEasing(fn)
	}
	return va
}

func (va *ViewAnimator) Alpha(to float32) *ViewAnimator {
	return va.add(AnimAlpha, va.view.params.Alpha, geom.Clamp(to, 0, 1))
}

func (va *ViewAnimator) ScaleX(to float32) *ViewAnimator {
	return va.add(AnimScaleX, va.view.params.ScaleX, to)
}

func (va *ViewAnimator) ScaleY(to float32) *ViewAnimator {
	return va.add(AnimScaleY, va.view.params.ScaleY, to)
}

// Scale animates both scale factors.
func (va *ViewAnimator) Scale(to float32) *ViewAnimator { return va.ScaleX(to).ScaleY(to) }

func (va *ViewAnimator) TranslateX(to float32) *ViewAnimator {
	return va.add(AnimTranslateX, va.view.params.TranslateX, to)
}

func (va *ViewAnimator) TranslateY(to float32) *ViewAnimator {
	return va.add(AnimTranslateY, va.view.params.TranslateY, to)
}

// Rotate animates the rotation, in degrees.
func (va *ViewAnimator) Rotate(to float32) *ViewAnimator {
	return va.add(AnimRotate, va.view.params.Rotate, to)
}

// Background animates a solid background to c.
func (va *ViewAnimator) Background(c geom.Color) *ViewAnimator {
	va.bgFrom = geom.Transparent
	if e, ok := va.view.background.(*ColorElement); ok {
		va.bgFrom = e.Color
	}
	va.bgTo = c
	return va.add(AnimBackground, 0, 1)
}

// RectReveal grows or shrinks a rectangular clip centered at (cx, cy).
func (va *ViewAnimator) RectReveal(cx, cy, fromW, fromH, toW, toH float32) *ViewAnimator {
	va.view.params.RevealShape = RevealRect
	va.view.params.RevealX, va.view.params.RevealY = cx, cy
	va.view.params.RevealWidth, va.view.params.RevealHeight = fromW, fromH
	va.add(AnimRevealWidth, fromW, toW)
	return va.add(AnimRevealHeight, fromH, toH)
}

// CircleReveal grows or shrinks a circular clip centered at (cx, cy).
func (va *ViewAnimator) CircleReveal(cx, cy, fromR, toR float32) *ViewAnimator {
	va.view.params.RevealShape = RevealCircle
	va.view.params.RevealX, va.view.params.RevealY = cx, cy
	va.view.params.RevealRadius = fromR
	return va.add(AnimRevealRadius, fromR, toR)
}

// OnEnd sets a callback run when the batch finishes (not when cancelled).
func (va *ViewAnimator) OnEnd(fn func()) *ViewAnimator {
	va.onEnd = fn
	return va
}

// Start runs the batch.
func (va *ViewAnimator) Start() {
	va.building = false
	if va.director.Len() == 0 {
		return
	}
	if va.hasReveal() {
		va.view.params.HasReveal = true
	}
	va.director.Start()
	va.view.RequestDraw()
}

// Cancel stops every animator where it is. OnEnd does not run.
func (va *ViewAnimator) Cancel() {
	va.building = false
	va.director.Stop()
}

// IsRunning reports whether the batch is animating.
func (va *ViewAnimator) IsRunning() bool { return va.director.IsRunning() }

// begin clears a finished or cancelled batch before new builder calls.
func (va *ViewAnimator) begin() {
	if va.building || va.director.IsRunning() {
		return
	}
	va.director.Clear()
	va.building = true
}

func (va *ViewAnimator) add(id int, from, to float32) *ViewAnimator {
	va.begin()
	va.director.Add(id, from, to, va.duration, va.easing)
	return va
}

func (va *ViewAnimator) hasReveal() bool {
	for _, id := range revealIDs {
		if va.director.Has(id) {
			return true
		}
	}
	return false
}

func (va *ViewAnimator) revealRunning() bool {
	for _, id := range revealIDs {
		if a := va.director.Animator(id); a != nil && a.IsRunning() {
			return true
		}
	}
	return false
}

func (va *ViewAnimator) apply(a *anim.Animator) {
	p := &va.view.params
	v := a.Value()
	switch a.ID() {
	case AnimAlpha:
		p.Alpha = v
	case AnimScaleX:
		p.ScaleX = v
	case AnimScaleY:
		p.ScaleY = v
	case AnimTranslateX:
		p.TranslateX = v
	case AnimTranslateY:
		p.TranslateY = v
	case AnimRotate:
		p.Rotate = v
	case AnimRevealRadius:
		p.RevealRadius = v
	case AnimRevealWidth:
		p.RevealWidth = v
	case AnimRevealHeight:
		p.RevealHeight = v
	case AnimBackground:
		c := va.bgFrom.Lerp(va.bgTo, v)
		if e, ok := va.view.background.(*ColorElement); ok {
			e.Color = c
		} else {
			va.view.background = NewColorElement(c)
		}
	}
	va.view.RequestDraw()
}

func (va *ViewAnimator) clearReveal() {
	if va.view.params.HasReveal && !va.revealRunning() {
		va.view.params.HasReveal = false
		va.view.RequestDraw()
	}
}

func (va *ViewAnimator) stopped(*anim.Animator) { va.clearReveal() }

func (va *ViewAnimator) finished(a *anim.Animator) {
	va.clearReveal()
	if a == nil && va.onEnd != nil {
		va.onEnd()
	}
}
