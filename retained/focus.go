package retained

// FocusManager moves keyboard focus through the tree of one window at a
// time. Each Application owns one, rebound with FocusOn when a window is
// activated.
//
// Traversal is a pre-order walk of the window's tree that skips subtrees
// whose root is not shown. It stops at either end: Next on the last
// focusable view and Prev on the first return false and leave focus where
// it is.
type FocusManager struct {
	win *Window
}

// FocusOn binds the manager to w. A nil w unbinds it.
func (f *FocusManager) FocusOn(w *Window) { f.win = w }

// Window returns the bound window.
func (f *FocusManager) Window() *Window { return f.win }

// Focused returns the current keyboard holder of the bound window.
func (f *FocusManager) Focused() Widget {
	if f.win == nil {
		return nil
	}
	return f.win.keyboardHolder
}

// First focuses the first focusable view.
func (f *FocusManager) First() bool {
	var found Widget
	f.walk(func(w Widget) bool {
		if w.AsView().CanGetFocus() {
			found = w
			return false
		}
		return true
	})
	return f.focus(found)
}

// Last focuses the last focusable view.
func (f *FocusManager) Last() bool {
	var found Widget
	f.walk(func(w Widget) bool {
		if w.AsView().CanGetFocus() {
			found = w
		}
		return true
	})
	return f.focus(found)
}

// Next focuses the first focusable view after the focused one. Without a
// focused view it behaves like First.
func (f *FocusManager) Next() bool {
	cur := f.Focused()
	if cur == nil {
		return f.First()
	}
	var found Widget
	seen := false
	f.walk(func(w Widget) bool {
		if seen && w.AsView().CanGetFocus() {
			found = w
			return false
		}
		if w == cur {
			seen = true
		}
		return true
	})
	if !seen {
		return f.First()
	}
	return f.focus(found)
}

// Prev focuses the last focusable view before the focused one. Without a
// focused view it behaves like Last.
func (f *FocusManager) Prev() bool {
	cur := f.Focused()
	if cur == nil {
		return f.Last()
	}
	var found Widget
	seen := false
	f.walk(func(w Widget) bool {
		if w == cur {
			seen = true
			return false
		}
		if w.AsView().CanGetFocus() {
			found = w
		}
		return true
	})
	if !seen {
		return f.Last()
	}
	return f.focus(found)
}

func (f *FocusManager) focus(w Widget) bool {
	if w == nil {
		return false
	}
	return w.AsView().RequestFocus()
}

// walk visits the bound window's tree in pre-order until fn returns false.
func (f *FocusManager) walk(fn func(Widget) bool) {
	if f.win == nil || f.win.root == nil {
		return
	}
	walkShown(f.win.root, fn)
}

func walkShown(w Widget, fn func(Widget) bool) bool {
	if w.AsView().visibility != Show {
		return true
	}
	if !fn(w) {
		return false
	}
	if c, ok := w.(container); ok {
		for _, child := range c.Children() {
			if !walkShown(child, fn) {
				return false
			}
		}
	}
	return true
}
