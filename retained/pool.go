package retained

import "sync"

// ============================================================================
// Child Snapshot Pooling
// ============================================================================
//
// Dispatch and drawing iterate over a snapshot of a container's children so
// handlers may add or remove views while the walk is in progress. Pointer
// moves dispatch many times per frame, so the snapshots are pooled.
//
// Usage:
//   children := acquireWidgetSlice(len(l.children))
//   copy(children, l.children)
//   ... use children ...
//   releaseWidgetSlice(children)

var widgetSlicePool = sync.Pool{
	New: func() any {
		return make([]Widget, 0, 16)
	},
}

// acquireWidgetSlice gets a widget slice from the pool with len == n.
// Caller must call releaseWidgetSlice when done.
func acquireWidgetSlice(n int) []Widget {
	slice := widgetSlicePool.Get().([]Widget)
	if cap(slice) < n {
		widgetSlicePool.Put(slice[:0])
		return make([]Widget, n, n*2)
	}
	return slice[:n]
}

// releaseWidgetSlice returns a widget slice to the pool.
// The slice should not be used after calling this.
func releaseWidgetSlice(slice []Widget) {
	if slice == nil {
		return
	}
	// Clear the slice to avoid holding references
	for i := range slice {
		slice[i] = nil
	}
	if cap(slice) <= 256 {
		widgetSlicePool.Put(slice[:0])
	}
}

// snapshotChildren copies the children of l into a pooled slice.
func snapshotChildren(l *LayoutView) []Widget {
	s := acquireWidgetSlice(len(l.children))
	copy(s, l.children)
	return s
}
