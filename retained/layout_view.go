package retained

import (
	"slices"

	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/internal/diag"
	"github.com/agiangrant/viewkit/render"
)

// LayoutInfo is per-child data owned by the child and read by its
// container (RestraintLayoutInfo, SequenceLayoutInfo, ...).
type LayoutInfo = any

type hookState uint8

const (
	notHooked hookState = iota
	hooked
)

// LayoutView is a container. Children are kept in insertion order, which is
// paint order and default focus order; hit testing walks them in reverse.
//
// The base LayoutView stacks its children at the top-left of its content
// area, each sized by its own LayoutSize.
type LayoutView struct {
	View

	children     []Widget
	hook         hookState
	hookDelegate func(e *InputEvent) bool
	hovered      []Widget // children under the mouse, topmost first
	pressed      Widget   // child that consumed the current down
	clipChildren bool
}

// NewLayoutView returns an empty frame container.
func NewLayoutView(c Context) *LayoutView {
	l := &LayoutView{}
	l.Init(c, l)
	return l
}

// Children returns the children in paint order. The slice must not be
// modified.
func (l *LayoutView) Children() []Widget { return l.children }

// ChildCount returns the number of children.
func (l *LayoutView) ChildCount() int { return len(l.children) }

// ChildAt returns the i-th child.
func (l *LayoutView) ChildAt(i int) Widget { return l.children[i] }

// FindViewByID returns the direct child with id, or nil.
func (l *LayoutView) FindViewByID(id int) Widget {
	if id == NoID {
		return nil
	}
	for _, c := range l.children {
		if c.AsView().id == id {
			return c
		}
	}
	return nil
}

// FindDescendant searches the subtree depth first for id.
func (l *LayoutView) FindDescendant(id int) Widget {
	if w := l.FindViewByID(id); w != nil {
		return w
	}
	for _, c := range l.children {
		if sub, ok := c.(interface{ FindDescendant(int) Widget }); ok {
			if w := sub.FindDescendant(id); w != nil {
				return w
			}
		}
	}
	return nil
}

// IndexOf returns the position of w, or -1.
func (l *LayoutView) IndexOf(w Widget) int {
	for i, c := range l.children {
		if c == w {
			return i
		}
	}
	return -1
}

// SetClipChildren clips children to the container's bounds when drawing.
func (l *LayoutView) SetClipChildren(on bool) { l.clipChildren = on }

// SetHookDelegate installs a callback consulted with OnHookInputEvent.
func (l *LayoutView) SetHookDelegate(fn func(e *InputEvent) bool) { l.hookDelegate = fn }

// IsHooked reports whether the container owns the current gesture.
func (l *LayoutView) IsHooked() bool { return l.hook == hooked }

// AddView appends w. Nil views and views that already have a parent are
// rejected.
func (l *LayoutView) AddView(w Widget) bool {
	return l.AddViewAt(len(l.children), w)
}

// AddViewAt inserts w at index i (clamped).
func (l *LayoutView) AddViewAt(i int, w Widget) bool {
	if !diag.Check(w != nil && w.AsView() != nil, "nil child insertion", "parent", l.id) {
		return false
	}
	v := w.AsView()
	if !diag.Check(v.parent == nil, "child already has a parent", "parent", l.id, "child", v.id) {
		return false
	}
	if !diag.Check(!v.isAncestorOf(&l.View), "child is an ancestor of its container", "child", v.id) {
		return false
	}
	i = max(0, min(i, len(l.children)))
	l.children = append(l.children, nil)
	copy(l.children[i+1:], l.children[i:])
	l.children[i] = w
	v.parent = l
	v.destroyed = false
	if l.window != nil {
		v.attach(l.window)
	}
	l.RequestLayout()
	l.RequestDraw()
	return true
}

// DetachView removes w from the container without destroying it, so it can
// be added elsewhere.
func (l *LayoutView) DetachView(w Widget) bool {
	i := l.IndexOf(w)
	if i < 0 {
		return false
	}
	l.detachAt(i)
	return true
}

// RemoveView removes and destroys w.
func (l *LayoutView) RemoveView(w Widget) bool {
	i := l.IndexOf(w)
	if i < 0 {
		return false
	}
	l.detachAt(i)
	w.AsView().destroy()
	return true
}

// RemoveAllViews removes and destroys every child.
func (l *LayoutView) RemoveAllViews() {
	for len(l.children) > 0 {
		w := l.children[len(l.children)-1]
		l.detachAt(len(l.children) - 1)
		w.AsView().destroy()
	}
}

func (l *LayoutView) detachAt(i int) {
	w := l.children[i]
	v := w.AsView()
	v.detach()
	copy(l.children[i:], l.children[i+1:])
	l.children[len(l.children)-1] = nil
	l.children = l.children[:len(l.children)-1]
	v.parent = nil
	l.hovered = slices.DeleteFunc(l.hovered, func(h Widget) bool { return h == w })
	if l.pressed == w {
		l.pressed = nil
	}
	l.RequestLayout()
	l.RequestDraw()
}

// --- default frame layout ---

// OnDetermineSize measures children and wraps them.
func (l *LayoutView) OnDetermineSize(info SizeInfo) geom.Size {
	var content geom.Size
	for _, c := range l.children {
		v := c.AsView()
		if v.visibility == Vanished {
			continue
		}
		sz := l.measureChild(v, info)
		content.Width = max(content.Width, sz.Width+v.margin.Horizontal())
		content.Height = max(content.Height, sz.Height+v.margin.Vertical())
	}
	return geom.Size{
		Width:  ResolveSize(content.Width+l.padding.Horizontal(), info.Width),
		Height: ResolveSize(content.Height+l.padding.Vertical(), info.Height),
	}
}

// OnLayout places every child at the top-left of the content area.
func (l *LayoutView) OnLayout(changed bool, bounds geom.Rect) {
	info := SizeInfo{Width: Exactly(bounds.Width()), Height: Exactly(bounds.Height())}
	for _, c := range l.children {
		v := c.AsView()
		if v.visibility == Vanished {
			continue
		}
		sz := l.measureChild(v, info)
		x := l.padding.Start + v.margin.Start
		y := l.padding.Top + v.margin.Top
		v.Layout(geom.XYWH(x, y, sz.Width, sz.Height))
	}
}

// measureChild measures v against the container constraint info.
func (l *LayoutView) measureChild(v *View, info SizeInfo) geom.Size {
	return v.Measure(SizeInfo{
		Width:  ChildSizeValue(info.Width, l.padding.Horizontal()+v.margin.Horizontal(), v.width),
		Height: ChildSizeValue(info.Height, l.padding.Vertical()+v.margin.Vertical(), v.height),
	})
}

// --- drawing ---

func (l *LayoutView) drawChildren(c render.Canvas) {
	if len(l.children) == 0 {
		return
	}
	if l.clipChildren {
		c.Save()
		defer c.Restore()
		c.ClipRect(l.LocalBounds())
	}
	children := snapshotChildren(l)
	defer releaseWidgetSlice(children)
	for _, child := range children {
		child.AsView().Draw(c)
	}
}

// --- input ---

func (l *LayoutView) invokeHook(e *InputEvent) bool {
	if h, ok := l.this.(InputHooker); ok && h.OnHookInputEvent(e) {
		return true
	}
	return l.hookDelegate != nil && l.hookDelegate(e)
}

// dispatchInput implements the container side of pointer routing.
//
// While hooked, the container receives the whole gesture itself. Otherwise
// children are hit tested topmost first and the first child that consumes
// the event ends the search; children asking for outside input get a copy
// when missed; and the container's own handler runs last.
func (l *LayoutView) dispatchInput(e *InputEvent) bool {
	if e.IsKeyboard() || e.Outside {
		return l.deliver(e)
	}

	if l.hook == hooked {
		consumed := l.deliver(e)
		if e.EndsGesture() {
			l.hook = notHooked
		}
		return consumed
	}

	if e.Type == EventLeaveView || e.Type == EventLeaveWindow || e.Type == EventCancel {
		l.forwardEnd(e)
		l.deliver(e)
		return true
	}

	if l.invokeHook(e) {
		if !e.EndsGesture() {
			l.hook = hooked
		}
		l.cancelChildren(e)
		l.deliver(e)
		return true
	}

	children := snapshotChildren(l)
	defer releaseWidgetSlice(children)

	var target Widget
	var hits []Widget
	for i := len(children) - 1; i >= 0; i-- {
		child := children[i]
		cv := child.AsView()
		if !cv.receivesPointer() || !cv.hitBounds().Contains(e.X, e.Y) {
			continue
		}
		hits = append(hits, child)
		if l.dispatchTo(child, e) {
			target = child
			break
		}
	}

	if e.IsMouse() {
		for _, old := range l.hovered {
			if !slices.Contains(hits, old) {
				l.sendTo(old, e, EventLeaveView)
			}
		}
		l.hovered = hits
	}

	switch e.Type {
	case EventDown:
		l.pressed = target
	case EventUp:
		l.pressed = nil
	}

	for _, child := range children {
		cv := child.AsView()
		if child == target || !cv.receiveOutside || !cv.receivesPointer() {
			continue
		}
		if cv.hitBounds().Contains(e.X, e.Y) {
			continue
		}
		out := e.Copy()
		out.Outside = true
		out.Offset(cv.bounds.Left+cv.params.TranslateX, cv.bounds.Top+cv.params.TranslateY)
		child.AsView().DispatchInputEvent(out)
	}

	if target != nil {
		return true
	}
	return l.deliver(e)
}

// dispatchTo hands e to child in the child's coordinates.
func (l *LayoutView) dispatchTo(child Widget, e *InputEvent) bool {
	cv := child.AsView()
	x, y := e.X, e.Y
	e.Offset(cv.bounds.Left+cv.params.TranslateX, cv.bounds.Top+cv.params.TranslateY)
	consumed := cv.DispatchInputEvent(e)
	e.X, e.Y = x, y
	return consumed
}

// sendTo delivers a synthesized event of type t derived from e.
func (l *LayoutView) sendTo(child Widget, e *InputEvent, t EventType) {
	ev := e.Copy()
	ev.Type = t
	l.dispatchTo(child, ev)
}

// forwardEnd passes gesture-ending events to the children tracking a
// gesture and resets the tracking.
func (l *LayoutView) forwardEnd(e *InputEvent) {
	if l.pressed != nil {
		l.dispatchTo(l.pressed, e)
	}
	for _, h := range l.hovered {
		if h != l.pressed {
			l.sendTo(h, e, EventLeaveView)
		}
	}
	l.pressed = nil
	l.hovered = nil
}

// cancelChildren tells children a hooked gesture was taken from them.
func (l *LayoutView) cancelChildren(e *InputEvent) {
	if l.pressed != nil {
		l.sendTo(l.pressed, e, EventCancel)
	}
	for _, h := range l.hovered {
		if h != l.pressed {
			l.sendTo(h, e, EventLeaveView)
		}
	}
	l.pressed = nil
	l.hovered = nil
}
