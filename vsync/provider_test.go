package vsync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name string
	log  *[]string
	hook func()
}

func (r *recorder) OnVSync(time.Time, float64, time.Duration) {
	*r.log = append(*r.log, r.name)
	if r.hook != nil {
		r.hook()
	}
}

func tick(p *Provider) { p.Tick(time.Now(), 60, time.Second/60) }

func TestProviderFiresInRegistrationOrder(t *testing.T) {
	var log []string
	p := NewProvider()
	a, b, c := &recorder{name: "a", log: &log}, &recorder{name: "b", log: &log}, &recorder{name: "c", log: &log}
	p.Add(b)
	p.Add(a)
	p.Add(c)
	p.Add(a) // idempotent

	assert.Equal(t, 3, p.Len())
	tick(p)
	assert.Equal(t, []string{"b", "a", "c"}, log)
}

func TestProviderAddDuringTickFiresNextTick(t *testing.T) {
	var log []string
	p := NewProvider()
	late := &recorder{name: "late", log: &log}
	early := &recorder{name: "early", log: &log, hook: func() { p.Add(late) }}
	p.Add(early)

	tick(p)
	assert.Equal(t, []string{"early"}, log)

	tick(p)
	assert.Equal(t, []string{"early", "early", "late"}, log)
}

func TestProviderRemoveDuringTickIsImmediate(t *testing.T) {
	var log []string
	p := NewProvider()
	second := &recorder{name: "second", log: &log}
	first := &recorder{name: "first", log: &log}
	first.hook = func() {
		p.Remove(second)
		p.Remove(first)
	}
	p.Add(first)
	p.Add(second)

	tick(p)
	assert.Equal(t, []string{"first"}, log)
	assert.False(t, p.Active())
	assert.False(t, p.Has(first))
}

func TestProviderRequestProducesOneTick(t *testing.T) {
	p := NewProvider()
	assert.False(t, p.Active())

	p.Request()
	require.True(t, p.Active())
	tick(p)
	assert.False(t, p.Active())
	assert.Equal(t, uint64(1), p.Ticks())
}

func TestFuncCallback(t *testing.T) {
	var got float64
	p := NewProvider()
	f := NewFunc(func(_ time.Time, freq float64, _ time.Duration) { got = freq })
	p.Add(f)
	p.Tick(time.Now(), 144, 0)
	assert.Equal(t, 144.0, got)
	assert.True(t, p.Remove(f))
	assert.False(t, p.Remove(f))
}

func TestSourceProducesFramesUntilCancelled(t *testing.T) {
	s := NewSource(200)
	assert.Equal(t, 5*time.Millisecond, s.Interval())
	assert.InDelta(t, 200.0, s.Freq(), 0.001)

	ctx, cancel := context.WithCancel(context.Background())
	frames := s.Frames(ctx)

	select {
	case f := <-frames:
		assert.Greater(t, f.Interval, time.Duration(0))
	case <-time.After(2 * time.Second):
		t.Fatal("no frame produced")
	}

	cancel()
	for range frames {
	}
}
