package retained

import "sync"

// Cycler is the message queue of the UI goroutine. Other goroutines Post
// functions to it; the UI goroutine runs them in order from Drain.
type Cycler struct {
	mu     sync.Mutex
	queue  []func()
	notify chan struct{}
	closed bool
}

// NewCycler returns an empty queue.
func NewCycler() *Cycler {
	return &Cycler{notify: make(chan struct{}, 1)}
}

// Post queues fn. It reports false once the cycler is closed. Safe for
// concurrent use.
func (c *Cycler) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.queue = append(c.queue, fn)
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
	return true
}

// Notify receives a value after Post while work is pending.
func (c *Cycler) Notify() <-chan struct{} { return c.notify }

// Pending returns the number of queued functions.
func (c *Cycler) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Drain runs the queued functions and returns how many ran. Functions
// posted while draining run on the next Drain.
func (c *Cycler) Drain() int {
	c.mu.Lock()
	batch := c.queue
	c.queue = nil
	c.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Close rejects further posts. Queued functions are dropped.
func (c *Cycler) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.queue = nil
}
