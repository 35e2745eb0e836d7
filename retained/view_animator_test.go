package retained_test

import (
	"testing"
	"time"

	"github.com/agiangrant/viewkit/anim"
	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/retained"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func animatedView(t *testing.T) (*harness, *retained.View) {
	h := newHarness(t, 200, 100)
	v := retained.NewView(h.ctx())
	place(v, 0, 0, 50, 50)
	h.win.SetContent(v)
	h.frame(16 * time.Millisecond)
	return h, v
}

func TestViewAnimatorRunsToTheEnd(t *testing.T) {
	h, v := animatedView(t)
	ended := 0
	v.Animate().
		Alpha(0).
		Duration(100 * time.Millisecond).
		Easing(anim.EaseLinear).
		OnEnd(func() { ended++ }).
		Start()
	require.True(t, v.Animate().IsRunning())

	h.frame(50 * time.Millisecond) // origin
	h.frame(50 * time.Millisecond)
	assert.InDelta(t, 0.5, v.AnimeParams().Alpha, 1e-4)
	assert.Zero(t, ended)

	h.frame(16 * time.Millisecond)
	assert.Equal(t, float32(0), v.AnimeParams().Alpha)
	assert.Equal(t, 1, ended)
	assert.False(t, v.Animate().IsRunning())

	h.frame(16 * time.Millisecond)
	assert.Equal(t, 1, ended)
}

func TestViewAnimatorCancelKeepsValue(t *testing.T) {
	h, v := animatedView(t)
	ended := false
	v.Animate().
		TranslateX(100).
		Duration(100 * time.Millisecond).
		Easing(anim.EaseLinear).
		OnEnd(func() { ended = true }).
		Start()

	h.frame(50 * time.Millisecond)
	h.frame(50 * time.Millisecond)
	v.Animate().Cancel()
	assert.False(t, v.Animate().IsRunning())

	h.frame(100 * time.Millisecond)
	assert.InDelta(t, 50, v.AnimeParams().TranslateX, 1e-3)
	assert.False(t, ended)
}

func TestViewAnimatorStartsNewBatchAfterFinish(t *testing.T) {
	h, v := animatedView(t)
	va := v.Animate().Duration(32 * time.Millisecond)
	va.ScaleX(2).Start()
	for range 4 {
		h.frame(16 * time.Millisecond)
	}
	require.Equal(t, float32(2), v.AnimeParams().ScaleX)

	va.TranslateY(10).Start()
	assert.Equal(t, []int{retained.AnimTranslateY}, va.Director().IDs())
	for range 4 {
		h.frame(16 * time.Millisecond)
	}
	assert.Equal(t, float32(10), v.AnimeParams().TranslateY)
	assert.Equal(t, float32(2), v.AnimeParams().ScaleX)
}

func TestViewAnimatorRevealFlag(t *testing.T) {
	h, v := animatedView(t)
	v.Animate().CircleReveal(25, 25, 0, 40).Duration(32 * time.Millisecond).Start()

	p := v.AnimeParams()
	assert.True(t, p.HasReveal)
	assert.Equal(t, retained.RevealCircle, p.RevealShape)

	for range 4 {
		h.frame(16 * time.Millisecond)
	}
	p = v.AnimeParams()
	assert.False(t, p.HasReveal)
	assert.Equal(t, float32(40), p.RevealRadius)
}

func TestViewAnimatorRevealStartsFromInitialClip(t *testing.T) {
	h, v := animatedView(t)
	v.Animate().CircleReveal(25, 25, 0, 40).Duration(32 * time.Millisecond).Start()
	for range 4 {
		h.frame(16 * time.Millisecond)
	}

	// Drawn before the first tick, the clip already uses the start values.
	v.Animate().CircleReveal(25, 25, 30, 0).Start()
	p := v.AnimeParams()
	assert.True(t, p.HasReveal)
	assert.Equal(t, float32(30), p.RevealRadius)
	v.Animate().Cancel()

	v.Animate().RectReveal(25, 25, 10, 20, 50, 50).Start()
	p = v.AnimeParams()
	assert.Equal(t, retained.RevealRect, p.RevealShape)
	assert.Equal(t, float32(10), p.RevealWidth)
	assert.Equal(t, float32(20), p.RevealHeight)
}

func TestViewAnimatorBackground(t *testing.T) {
	h, v := animatedView(t)
	v.SetBackground(retained.NewColorElement(geom.Black))
	v.Animate().Background(geom.White).Duration(32 * time.Millisecond).Start()
	for range 4 {
		h.frame(16 * time.Millisecond)
	}
	bg, ok := v.Background().(*retained.ColorElement)
	require.True(t, ok)
	assert.Equal(t, geom.White, bg.Color)
}
