// Package thumb decodes thumbnails on a background goroutine and hands the
// results back to the UI goroutine.
package thumb

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/agiangrant/viewkit"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotImage is returned for content that is not a supported image.
	ErrNotImage = errors.New("thumb: not an image")
	// ErrShutdown is returned by Add once the fetcher stopped.
	ErrShutdown = errors.New("thumb: fetcher shut down")
	// ErrDropped is delivered to requests pushed out of a full queue.
	ErrDropped = errors.New("thumb: request dropped")
)

// Poster runs functions on the UI goroutine. retained.Application
// implements it.
type Poster interface {
	Post(fn func()) bool
}

// Result is the outcome of one request.
type Result struct {
	Path  string
	Image image.Image
	Err   error
}

// Callback receives a result on the UI goroutine.
type Callback func(Result)

type request struct {
	path      string
	done      Callback
	cancelled atomic.Bool
}

// Fetcher decodes images one at a time on a worker goroutine. Requests are
// served in the order they were added. Results are never written from the
// worker: they are posted to the Poster and the callback runs there.
//
// Remove and Shutdown are cooperative. A request being decoded finishes,
// but its callback is skipped.
type Fetcher struct {
	poster     Poster
	maxEdge    int
	maxPending int
	log        *slog.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	pending  []*request
	inflight *request
	launched bool
	group    *errgroup.Group
	stopCtx  func() bool

	shutdown atomic.Bool
}

// New returns a fetcher posting to p, sized by cfg.
func New(p Poster, cfg viewkit.ThumbnailConfig) *Fetcher {
	f := &Fetcher{
		poster:     p,
		maxEdge:    cfg.MaxEdge,
		maxPending: max(cfg.MaxPending, 1),
		log:        viewkit.Logger().With("component", "thumb"),
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Add queues path. When the queue is full the oldest request is dropped
// and its callback receives ErrDropped.
func (f *Fetcher) Add(path string, fn Callback) error {
	if f.shutdown.Load() {
		return ErrShutdown
	}
	req := &request{path: path, done: fn}

	f.mu.Lock()
	var dropped *request
	if len(f.pending) >= f.maxPending {
		dropped = f.pending[0]
		f.pending = f.pending[1:]
	}
	f.pending = append(f.pending, req)
	f.cond.Signal()
	f.mu.Unlock()

	if dropped != nil {
		f.log.Warn("thumbnail queue full", "dropped", dropped.path)
		f.deliver(dropped, Result{Path: dropped.path, Err: ErrDropped})
	}
	return nil
}

// Remove cancels every request for path. It reports whether any was found.
func (f *Fetcher) Remove(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	found := false
	kept := f.pending[:0]
	for _, r := range f.pending {
		if r.path == path {
			r.cancelled.Store(true)
			found = true
			continue
		}
		kept = append(kept, r)
	}
	clear(f.pending[len(kept):])
	f.pending = kept

	if f.inflight != nil && f.inflight.path == path {
		f.inflight.cancelled.Store(true)
		found = true
	}
	return found
}

// Pending returns the number of queued requests, excluding the one being
// decoded.
func (f *Fetcher) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Launch starts the worker. It stops when ctx is done or on Shutdown.
// Launching twice does nothing.
func (f *Fetcher) Launch(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launched || f.shutdown.Load() {
		return
	}
	f.launched = true

	g, ctx := errgroup.WithContext(ctx)
	f.group = g
	f.stopCtx = context.AfterFunc(ctx, f.stop)
	g.Go(f.run)
}

// Shutdown stops the worker, drops the queued requests and waits for the
// worker to exit. It is safe to call more than once.
func (f *Fetcher) Shutdown() error {
	f.stop()

	f.mu.Lock()
	g, stopCtx := f.group, f.stopCtx
	f.mu.Unlock()
	if stopCtx != nil {
		stopCtx()
	}
	if g == nil {
		return nil
	}
	return g.Wait()
}

func (f *Fetcher) stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.shutdown.Swap(true) {
		return
	}
	for _, r := range f.pending {
		r.cancelled.Store(true)
	}
	if f.inflight != nil {
		f.inflight.cancelled.Store(true)
	}
	f.pending = nil
	f.cond.Broadcast()
}

// next blocks until a request is queued or the fetcher stops.
func (f *Fetcher) next() *request {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.pending) == 0 && !f.shutdown.Load() {
		f.cond.Wait()
	}
	if f.shutdown.Load() {
		return nil
	}
	req := f.pending[0]
	f.pending[0] = nil
	f.pending = f.pending[1:]
	f.inflight = req
	return req
}

func (f *Fetcher) run() error {
	f.log.Debug("thumbnail worker started")
	defer f.log.Debug("thumbnail worker stopped")

	for {
		req := f.next()
		if req == nil {
			return nil
		}
		img, err := DecodeFile(req.path, f.maxEdge)
		if err != nil {
			f.log.Error("thumbnail decode failed", "path", req.path, "err", err)
		}

		f.mu.Lock()
		f.inflight = nil
		f.mu.Unlock()

		if f.shutdown.Load() {
			return nil
		}
		f.deliver(req, Result{Path: req.path, Image: img, Err: err})
	}
}

// deliver posts the callback of req unless it was cancelled, checking again
// on the UI goroutine since Remove or Shutdown may run in between.
func (f *Fetcher) deliver(req *request, res Result) {
	if req.done == nil || req.cancelled.Load() {
		return
	}
	if !f.poster.Post(func() {
		if !req.cancelled.Load() && !f.shutdown.Load() {
			req.done(res)
		}
	}) {
		f.log.Warn("thumbnail result dropped, poster closed", "path", req.path)
	}
}
