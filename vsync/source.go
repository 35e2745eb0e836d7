package vsync

import (
	"context"
	"time"
)

// Frame is one refresh produced by a Source.
type Frame struct {
	Start    time.Time
	Freq     float64
	Interval time.Duration // measured since the previous frame
}

// Source is a software refresh clock used when the platform does not
// provide display callbacks.
type Source struct {
	interval time.Duration
}

// NewSource returns a source ticking at rate frames per second.
func NewSource(rate int) *Source {
	if rate < 1 {
		rate = 60
	}
	return &Source{interval: time.Second / time.Duration(rate)}
}

// Interval returns the nominal frame period.
func (s *Source) Interval() time.Duration { return s.interval }

// Freq returns the nominal refresh rate in Hz.
func (s *Source) Freq() float64 { return float64(time.Second) / float64(s.interval) }

// Frames starts the clock. The channel is closed once ctx is done.
// Frames are dropped rather than queued when the consumer falls behind.
func (s *Source) Frames(ctx context.Context) <-chan Frame {
	out := make(chan Frame, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				frame := Frame{Start: now, Freq: s.Freq(), Interval: now.Sub(last)}
				last = now
				select {
				case out <- frame:
				default:
				}
			}
		}
	}()
	return out
}
