// Package observer provides a listener registry keyed by stable handles.
//
// Listeners may add or remove themselves (or others) while a notification is
// being delivered: a listener removed mid-dispatch is not called afterwards,
// and a listener added mid-dispatch is first called on the next notification.
package observer

// Handle identifies a registered listener. The zero Handle is never issued.
type Handle uint64

type entry[T any] struct {
	handle  Handle
	value   T
	removed bool
}

// Registry holds listeners of type T in registration order.
// It is not safe for concurrent use; all calls happen on the UI goroutine.
type Registry[T any] struct {
	entries []*entry[T]
	next    Handle
	depth   int // nesting level of Each calls in progress
	dirty   bool
}

// Add registers v and returns its handle.
func (r *Registry[T]) Add(v T) Handle {
	r.next++
	r.entries = append(r.entries, &entry[T]{handle: r.next, value: v})
	return r.next
}

// Remove unregisters the listener with handle h.
// It reports whether the handle was registered.
func (r *Registry[T]) Remove(h Handle) bool {
	for i, e := range r.entries {
		if e.handle != h || e.removed {
			continue
		}
		if r.depth > 0 {
			e.removed = true
			r.dirty = true
		} else {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
		}
		return true
	}
	return false
}

// RemoveFunc unregisters every listener for which match returns true.
func (r *Registry[T]) RemoveFunc(match func(T) bool) int {
	var handles []Handle
	for _, e := range r.entries {
		if !e.removed && match(e.value) {
			handles = append(handles, e.handle)
		}
	}
	for _, h := range handles {
		r.Remove(h)
	}
	return len(handles)
}

// Len returns the number of live listeners.
func (r *Registry[T]) Len() int {
	n := 0
	for _, e := range r.entries {
		if !e.removed {
			n++
		}
	}
	return n
}

// Each calls fn for each listener registered when Each started, in
// registration order, skipping those removed in the meantime.
func (r *Registry[T]) Each(fn func(T)) {
	snapshot := r.entries[:len(r.entries):len(r.entries)]

	r.depth++
	for _, e := range snapshot {
		if !e.removed {
			fn(e.value)
		}
	}
	r.depth--

	if r.depth == 0 && r.dirty {
		r.compact()
	}
}

// Clear removes all listeners.
func (r *Registry[T]) Clear() {
	if r.depth > 0 {
		for _, e := range r.entries {
			e.removed = true
		}
		r.dirty = true
		return
	}
	r.entries = nil
}

func (r *Registry[T]) compact() {
	live := r.entries[:0]
	for _, e := range r.entries {
		if !e.removed {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(r.entries); i++ {
		r.entries[i] = nil
	}
	r.entries = live
	r.dirty = false
}
