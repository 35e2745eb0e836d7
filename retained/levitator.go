package retained

import "github.com/agiangrant/viewkit/geom"

// Levitator is a container floating in a window's overlay layer above the
// content. It closes itself when a press lands outside of it.
type Levitator struct {
	LayoutView

	win              *Window
	dismissOnOutside bool
	blockInside      bool
	onDismiss        func()
}

// NewLevitator returns an empty levitator.
func NewLevitator(c Context) *Levitator {
	l := &Levitator{}
	l.initLevitator(c, l)
	return l
}

func (l *Levitator) initLevitator(c Context, this Widget) {
	l.Init(c, this)
	l.receiveOutside = true
	l.dismissOnOutside = true
	l.blockInside = true
}

// IsShowing reports whether the levitator is in a window.
func (l *Levitator) IsShowing() bool { return l.win != nil }

// SetOnDismiss sets a callback run whenever the levitator closes.
func (l *Levitator) SetOnDismiss(fn func()) { l.onDismiss = fn }

// SetDismissOnOutside controls closing on presses outside the levitator.
func (l *Levitator) SetDismissOnOutside(on bool) { l.dismissOnOutside = on }

// ShowAt places the levitator in w's overlay at p (window coordinates).
func (l *Levitator) ShowAt(w *Window, p geom.Point) { l.show(w, p) }

func (l *Levitator) show(w *Window, p geom.Point) {
	if l.parent != nil {
		l.win = nil
		l.parent.DetachView(l.this)
	}
	l.layoutInfo = &OverlayInfo{Origin: p}
	if w.root.overlay.AddView(l.this) {
		l.win = w
	}
}

// Dismiss removes the levitator from its window.
func (l *Levitator) Dismiss() {
	w := l.win
	if w == nil {
		return
	}
	l.win = nil
	if l.parent != nil {
		l.parent.DetachView(l.this)
	}
	w.forgetLevitator(l)
	if l.onDismiss != nil {
		l.onDismiss()
	}
}

func (l *Levitator) OnAttachedToWindow(*Window) {}

// OnDetachedFromWindow covers removal by anything other than Dismiss.
func (l *Levitator) OnDetachedFromWindow() {
	if w := l.win; w != nil {
		l.win = nil
		w.forgetLevitator(l)
		if l.onDismiss != nil {
			l.onDismiss()
		}
	}
}

func (l *Levitator) OnInputEvent(e *InputEvent) bool {
	if e.Outside {
		if e.Type == EventDown && l.dismissOnOutside {
			l.Dismiss()
		}
		return false
	}
	return l.blockInside && e.IsPointer()
}

// ContextMenu is a levitator listing clickable items.
type ContextMenu struct {
	Levitator
	list *SequenceLayout
}

// NewContextMenu returns an empty menu.
func NewContextMenu(c Context) *ContextMenu {
	m := &ContextMenu{}
	m.initLevitator(c, m)
	m.SetBackground(&ColorElement{Color: geom.White, Radius: 4, BorderWidth: 1, BorderColor: geom.RGBA(0xc0c0c0ff)})
	m.SetPadding(geom.Padding{Top: 4, Bottom: 4})
	m.list = NewSequenceLayout(c, Vertical)
	m.AddView(m.list)
	return m
}

// AddItem appends an item running fn after the menu closes.
func (m *ContextMenu) AddItem(label string, fn func()) *TextView {
	item := NewTextView(m.ctx, label)
	item.SetEditable(false)
	item.SetSelectable(false)
	item.SetPadding(geom.Padding{Start: 12, Top: 4, End: 12, Bottom: 4})
	item.SetLayoutInfo(&SequenceLayoutInfo{Gravity: GravityStretch})
	item.SetOnClick(func() {
		m.Dismiss()
		if fn != nil {
			fn()
		}
	})
	m.list.AddView(item)
	return item
}

// Items returns the menu items.
func (m *ContextMenu) Items() []*TextView {
	items := make([]*TextView, 0, m.list.ChildCount())
	for _, c := range m.list.Children() {
		if tv, ok := c.(*TextView); ok {
			items = append(items, tv)
		}
	}
	return items
}

// Tooltip is a non-interactive levitator showing a line of text. Pointer
// events pass through it, and any press closes it.
type Tooltip struct {
	Levitator
	label *TextView
}

// NewTooltip returns a tooltip showing s.
func NewTooltip(c Context, s string) *Tooltip {
	t := &Tooltip{}
	t.initLevitator(c, t)
	t.blockInside = false
	t.SetBackground(&ColorElement{Color: geom.RGBA(0x333333ee), Radius: 3})
	t.SetPadding(geom.Padding{Start: 6, Top: 3, End: 6, Bottom: 3})
	t.label = NewTextView(c, s)
	t.label.SetEditable(false)
	t.label.SetSelectable(false)
	t.label.SetTextColor(geom.White)
	t.AddView(t.label)
	return t
}

// Text returns the tooltip text.
func (t *Tooltip) Text() string { return t.label.Text() }

func (t *Tooltip) OnInputEvent(e *InputEvent) bool {
	if e.Type == EventDown {
		t.Dismiss()
	}
	return false
}
