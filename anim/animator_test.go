package anim

import (
	"testing"
	"time"

	"github.com/agiangrant/viewkit/vsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

type eventLog struct {
	events []string
}

func (l *eventLog) listener() *ListenerFuncs {
	name := func(kind string) func(a *Animator) {
		return func(a *Animator) {
			if a == nil {
				l.events = append(l.events, kind+":director")
				return
			}
			l.events = append(l.events, kind)
		}
	}
	return &ListenerFuncs{
		Started:  name("started"),
		Stopped:  name("stopped"),
		Finished: name("finished"),
		Reset:    name("reset"),
	}
}

func TestEasingEndpoints(t *testing.T) {
	for _, name := range EasingNames() {
		fn, ok := EasingByName(name)
		require.True(t, ok, name)
		assert.InDelta(t, 0, fn(0), 1e-9, name)
		assert.InDelta(t, 1, fn(1), 1e-9, name)
	}
	_, ok := EasingByName("wobble")
	assert.False(t, ok)
}

func TestAnimatorLifecycle(t *testing.T) {
	var log eventLog
	a := NewAnimator(1, 0, 100, 100*time.Millisecond, EaseLinear)
	a.AddListener(log.listener())

	assert.Equal(t, Ready, a.State())
	assert.False(t, a.Update(at(0), 60), "not started")

	a.Start()
	assert.Equal(t, Running, a.State())

	// First update records the origin.
	assert.True(t, a.Update(at(1000), 60))
	assert.Equal(t, float32(0), a.Value())

	assert.True(t, a.Update(at(1050), 60))
	assert.InDelta(t, 50, a.Value(), 0.01)

	assert.False(t, a.Update(at(1200), 60))
	assert.Equal(t, float32(100), a.Value())
	assert.Equal(t, Finished, a.State())
	assert.Equal(t, []string{"started", "finished"}, log.events)
}

func TestAnimatorSnapsWithinHalfFrame(t *testing.T) {
	a := NewAnimator(1, 0, 1, 100*time.Millisecond, EaseLinear)
	a.Start()
	a.Update(at(0), 60)
	// 95ms elapsed leaves 5ms, less than half of a 16.6ms frame.
	assert.False(t, a.Update(at(95), 60))
	assert.Equal(t, float32(1), a.Value())
}

func TestAnimatorStartTwiceIsNoop(t *testing.T) {
	a := NewAnimator(1, 0, 10, 100*time.Millisecond, nil)
	a.Start()
	a.Update(at(0), 60)
	a.Update(at(40), 60)
	v := a.Value()

	a.Start()
	assert.Equal(t, Running, a.State())
	assert.Equal(t, v, a.Value())
}

func TestAnimatorResetRestoresInit(t *testing.T) {
	var log eventLog
	a := NewAnimator(1, 3, 10, 100*time.Millisecond, nil)
	a.AddListener(log.listener())
	a.Start()
	a.Update(at(0), 60)
	a.Update(at(50), 60)

	a.Reset()
	assert.Equal(t, float32(3), a.Value())
	assert.Equal(t, Ready, a.State())
	a.Reset()
	assert.Equal(t, float32(3), a.Value())
	assert.Equal(t, []string{"started", "reset", "reset"}, log.events)
}

func TestAnimatorStopKeepsValue(t *testing.T) {
	var log eventLog
	a := NewAnimator(1, 0, 100, 100*time.Millisecond, EaseLinear)
	a.AddListener(log.listener())
	a.Start()
	a.Update(at(0), 60)
	a.Update(at(30), 60)

	a.Stop()
	assert.Equal(t, Ready, a.State())
	assert.InDelta(t, 30, a.Value(), 0.01)
	assert.Equal(t, []string{"started", "stopped"}, log.events)
}

func TestAnimatorRepeat(t *testing.T) {
	a := NewAnimator(1, 0, 1, 100*time.Millisecond, EaseLinear)
	a.SetRepeat(1)
	a.Start()
	a.Update(at(0), 60)
	assert.True(t, a.Update(at(100), 60), "second cycle begins")
	assert.Equal(t, float32(0), a.Value())
	assert.True(t, a.Update(at(150), 60))
	assert.InDelta(t, 0.5, a.Value(), 0.01)
	assert.False(t, a.Update(at(200), 60))
}

func TestStandaloneAnimatorRegistersWhileRunning(t *testing.T) {
	p := vsync.NewProvider()
	a := NewAnimator(1, 0, 1, 50*time.Millisecond, nil)
	a.Bind(p)

	a.Start()
	assert.True(t, p.Has(a))

	p.Tick(at(0), 60, 0)
	p.Tick(at(60), 60, 0)
	assert.True(t, a.IsFinished())
	assert.False(t, p.Active(), "finished animator unregisters")
}

func TestDirectorBatch(t *testing.T) {
	var log eventLog
	p := vsync.NewProvider()
	d := NewDirector(p)
	d.AddListener(log.listener())

	d.Add(1, 0, 1, 100*time.Millisecond, nil)
	d.Add(2, 10, 20, 200*time.Millisecond, nil)
	assert.Equal(t, []int{1, 2}, d.IDs())

	d.Start()
	assert.True(t, p.Has(d))
	assert.True(t, d.IsRunning())

	p.Tick(at(0), 60, 0)
	p.Tick(at(100), 60, 0)
	assert.True(t, d.Animator(1).IsFinished())
	assert.True(t, d.IsRunning())

	p.Tick(at(150), 60, 0)
	assert.InDelta(t, 17.5, d.Value(2), 0.01)

	p.Tick(at(200), 60, 0)
	assert.True(t, d.IsFinished())
	assert.False(t, p.Active())

	assert.Equal(t, []string{
		"started", "started",
		"finished", "finished",
		"finished:director",
	}, log.events)

	// Further updates do not fire the director-level event again.
	d.Update(at(300), 60)
	assert.Len(t, log.events, 5)
}

func TestDirectorStopFiresNoFinished(t *testing.T) {
	var log eventLog
	d := NewDirector(nil)
	d.AddListener(log.listener())
	d.Add(1, 0, 1, 100*time.Millisecond, nil)
	d.Add(2, 0, 1, 100*time.Millisecond, nil)

	d.Start()
	d.Update(at(0), 60)
	d.Stop()

	assert.False(t, d.IsRunning())
	assert.Equal(t, []string{"started", "started", "stopped", "stopped"}, log.events)
	assert.False(t, d.Update(at(500), 60))
	assert.Len(t, log.events, 4)
}

func TestDirectorBatchWithStoppedAnimatorDoesNotFinish(t *testing.T) {
	var log eventLog
	p := vsync.NewProvider()
	d := NewDirector(p)
	d.AddListener(log.listener())
	d.Add(1, 0, 1, 100*time.Millisecond, nil)
	d.Add(2, 0, 1, 100*time.Millisecond, nil)

	d.Start()
	p.Tick(at(0), 60, 0)
	d.Animator(1).Stop()

	p.Tick(at(200), 60, 0)
	assert.True(t, d.Animator(2).IsFinished())
	assert.False(t, d.IsFinished())
	assert.False(t, p.Active())
	assert.Equal(t, []string{"started", "started", "stopped", "finished"}, log.events)

	// The stopped animator can be restarted into a new batch.
	d.Start()
	p.Tick(at(300), 60, 0)
	p.Tick(at(400), 60, 0)
	assert.Equal(t, "finished:director", log.events[len(log.events)-1])
}

func TestDirectorRemoveAndReplace(t *testing.T) {
	d := NewDirector(nil)
	first := d.Add(1, 0, 1, time.Second, nil)
	second := d.Add(1, 5, 6, time.Second, nil)

	assert.Equal(t, 1, d.Len())
	assert.Same(t, second, d.Animator(1))
	assert.Nil(t, first.director)

	assert.True(t, d.Remove(1))
	assert.False(t, d.Has(1))
	assert.False(t, d.Remove(1))
	assert.Equal(t, float32(0), d.Value(1))
}
