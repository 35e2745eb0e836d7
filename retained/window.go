package retained

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/internal/diag"
	"github.com/agiangrant/viewkit/render"
	"github.com/agiangrant/viewkit/vsync"
	"github.com/chewxy/math32"
)

// Window connects one platform window to a view tree. It owns the tree's
// RootLayout, the capture and focus holders and the open levitators, and
// schedules layout and drawing on VSync.
type Window struct {
	app    *Application
	ctx    Context
	native WindowNative
	root   *RootLayout
	device *render.Device
	frame  *vsync.Func
	log    *slog.Logger

	title   string
	origin  geom.Point
	size    geom.Size
	created bool
	shown   bool
	active  bool
	focused bool
	closed  bool

	keyboardHolder Widget
	mouseHolder    Widget
	touchHolder    Widget

	contextMenu    *ContextMenu
	textActionMenu *ContextMenu
	tooltip        *Tooltip

	layoutPending bool
	drawPending   bool
	draws         uint64
	clicks        clickTracker

	onClose func() bool
}

type clickTracker struct {
	at     time.Time
	x, y   float32
	button MouseButton
	count  int
}

func newWindow(app *Application, native WindowNative, title string) *Window {
	w := &Window{
		app:    app,
		ctx:    app.Context(),
		native: native,
		title:  title,
	}
	w.log = w.ctx.Logger().With("window", title)
	w.frame = vsync.NewFunc(w.onFrame)
	w.device = render.NewDevice(native.RecreateDevice)
	w.root = newRootLayout(w.ctx)
	w.root.attach(w)
	return w
}

// Create asks the platform to build the window.
func (w *Window) Create() error {
	if err := w.native.Create(w); err != nil {
		return fmt.Errorf("failed to create window %q: %w", w.title, err)
	}
	w.native.SetTitle(w.title)
	return nil
}

// Show makes the window visible.
func (w *Window) Show() { w.native.Show() }

// Close asks the platform to close the window.
func (w *Window) Close() { w.native.Close() }

func (w *Window) App() *Application   { return w.app }
func (w *Window) Native() WindowNative { return w.native }

// Root returns the window's root layout.
func (w *Window) Root() *RootLayout { return w.root }

// Device returns the rendering device whose loss the window recovers from.
func (w *Window) Device() *render.Device { return w.device }

func (w *Window) Title() string { return w.title }

func (w *Window) SetTitle(title string) {
	w.title = title
	w.native.SetTitle(title)
}

// Size returns the client area size.
func (w *Window) Size() geom.Size { return w.size }

// Origin returns the client area position on screen.
func (w *Window) Origin() geom.Point { return w.origin }

func (w *Window) IsActive() bool  { return w.active }
func (w *Window) IsFocused() bool { return w.focused }
func (w *Window) IsClosed() bool  { return w.closed }

// Draws counts completed frames.
func (w *Window) Draws() uint64 { return w.draws }

// SetContent replaces the application views with v.
func (w *Window) SetContent(v Widget) {
	w.root.content.RemoveAllViews()
	if v != nil {
		w.root.content.AddView(v)
	}
}

// SetOnClose installs a callback deciding whether the window may close.
func (w *Window) SetOnClose(fn func() bool) { w.onClose = fn }

// Focused returns the keyboard holder.
func (w *Window) Focused() Widget { return w.keyboardHolder }

// MouseHolder returns the view capturing the mouse, if any.
func (w *Window) MouseHolder() Widget { return w.mouseHolder }

// TouchHolder returns the view capturing touches, if any.
func (w *Window) TouchHolder() Widget { return w.touchHolder }

// --- holders ---

func (w *Window) setKeyboardHolder(h Widget) {
	if w.keyboardHolder == h {
		return
	}
	old := w.keyboardHolder
	w.keyboardHolder = h
	if old != nil {
		if l, ok := old.(FocusListener); ok {
			l.OnFocusChanged(false)
		}
		old.AsView().RequestDraw()
	}
	if h != nil {
		if l, ok := h.(FocusListener); ok {
			l.OnFocusChanged(true)
		}
		h.AsView().RequestDraw()
	}
}

func (w *Window) setMouseHolder(h Widget) {
	diag.Check(h == nil || w.mouseHolder == nil || w.mouseHolder == h,
		"mouse captured twice", "holder", holderID(w.mouseHolder), "new", holderID(h))
	w.mouseHolder = h
}

func (w *Window) setTouchHolder(h Widget) {
	diag.Check(h == nil || w.touchHolder == nil || w.touchHolder == h,
		"touch captured twice", "holder", holderID(w.touchHolder), "new", holderID(h))
	w.touchHolder = h
}

func holderID(h Widget) int {
	if h == nil {
		return NoID
	}
	return h.AsView().id
}

// dropStateFor releases every holder inside v's subtree. Views losing a
// capture get a cancel.
func (w *Window) dropStateFor(v *View) {
	if h := w.keyboardHolder; h != nil && v.isAncestorOf(h.AsView()) {
		w.setKeyboardHolder(nil)
	}
	if h := w.mouseHolder; h != nil && v.isAncestorOf(h.AsView()) {
		w.mouseHolder = nil
		h.AsView().handleInput(&InputEvent{Type: EventCancel, Pointer: PointerMouse})
	}
	if h := w.touchHolder; h != nil && v.isAncestorOf(h.AsView()) {
		w.touchHolder = nil
		h.AsView().handleInput(&InputEvent{Type: EventCancel, Pointer: PointerTouch})
	}
}

// --- scheduling ---

func (w *Window) scheduleLayout() {
	w.layoutPending = true
	w.requestFrame()
}

func (w *Window) scheduleDraw() {
	w.drawPending = true
	w.requestFrame()
}

func (w *Window) requestFrame() {
	if w.created && !w.closed {
		w.ctx.Provider().Add(w.frame)
	}
}

// onFrame runs once per VSync while layout or drawing is pending. Draw
// requests made during a tick are coalesced into one invalidation.
func (w *Window) onFrame(time.Time, float64, time.Duration) {
	w.ctx.Provider().Remove(w.frame)
	if w.closed {
		return
	}
	if w.layoutPending {
		w.doLayout()
	}
	if w.drawPending {
		w.drawPending = false
		w.native.Invalidate(geom.Rect{Right: w.size.Width, Bottom: w.size.Height})
	}
}

// LayoutNow runs a pending layout pass immediately.
func (w *Window) LayoutNow() {
	if w.layoutPending {
		w.doLayout()
	}
}

func (w *Window) doLayout() {
	w.layoutPending = false
	w.root.Measure(SizeInfo{Width: Exactly(w.size.Width), Height: Exactly(w.size.Height)})
	w.root.Layout(geom.Rect{Right: w.size.Width, Bottom: w.size.Height})
	w.drawPending = true
	w.log.Debug("layout pass", "width", w.size.Width, "height", w.size.Height)
}

func (w *Window) draw() {
	if w.layoutPending {
		w.doLayout()
	}
	if !w.device.EnsureReady() {
		w.scheduleDraw()
		return
	}
	c, err := w.native.BeginDraw()
	if err != nil {
		w.drawFailed(err)
		return
	}
	w.root.Draw(c)
	if err := w.native.EndDraw(); err != nil {
		w.drawFailed(err)
		return
	}
	w.drawPending = false
	w.draws++
}

func (w *Window) drawFailed(err error) {
	if errors.Is(err, render.ErrDeviceLost) {
		w.device.MarkLost()
		w.scheduleDraw()
		return
	}
	w.log.Error("draw failed", "err", err)
}

// --- levitators ---

// ShowContextMenu opens m at p (window coordinates), closing the previous
// context menu.
func (w *Window) ShowContextMenu(m *ContextMenu, p geom.Point) {
	if w.contextMenu != nil && w.contextMenu != m {
		w.contextMenu.Dismiss()
	}
	w.contextMenu = m
	m.show(w, p)
}

// ShowTextActionMenu opens the cut/copy/paste menu at p.
func (w *Window) ShowTextActionMenu(m *ContextMenu, p geom.Point) {
	if w.textActionMenu != nil && w.textActionMenu != m {
		w.textActionMenu.Dismiss()
	}
	w.textActionMenu = m
	m.show(w, p)
}

// ShowTooltip opens t at p.
func (w *Window) ShowTooltip(t *Tooltip, p geom.Point) {
	if w.tooltip != nil && w.tooltip != t {
		w.tooltip.Dismiss()
	}
	w.tooltip = t
	t.show(w, p)
}

func (w *Window) ContextMenu() *ContextMenu    { return w.contextMenu }
func (w *Window) TextActionMenu() *ContextMenu { return w.textActionMenu }
func (w *Window) Tooltip() *Tooltip            { return w.tooltip }

// DismissLevitators closes every open menu and tooltip.
func (w *Window) DismissLevitators() {
	if w.contextMenu != nil {
		w.contextMenu.Dismiss()
	}
	if w.textActionMenu != nil {
		w.textActionMenu.Dismiss()
	}
	if w.tooltip != nil {
		w.tooltip.Dismiss()
	}
}

func (w *Window) forgetLevitator(l *Levitator) {
	switch {
	case w.contextMenu != nil && &w.contextMenu.Levitator == l:
		w.contextMenu = nil
	case w.textActionMenu != nil && &w.textActionMenu.Levitator == l:
		w.textActionMenu = nil
	case w.tooltip != nil && &w.tooltip.Levitator == l:
		w.tooltip = nil
	}
}

// --- WindowNativeDelegate ---

func (w *Window) OnCreate() { w.log.Info("window creating") }

func (w *Window) OnCreated() {
	w.created = true
	b := w.native.Bounds()
	w.origin = geom.Pt(b.Left, b.Top)
	w.size = b.Size()
	w.scheduleLayout()
	w.log.Info("window created", "width", w.size.Width, "height", w.size.Height)
}

func (w *Window) OnShow() {
	w.shown = true
	w.scheduleDraw()
}

func (w *Window) OnActivate(active bool) {
	w.active = active
	if active {
		w.app.focus.FocusOn(w)
	}
}

func (w *Window) OnSetFocus() { w.focused = true }

func (w *Window) OnKillFocus() {
	w.focused = false
	if h := w.mouseHolder; h != nil {
		w.mouseHolder = nil
		h.AsView().handleInput(&InputEvent{Type: EventCancel, Pointer: PointerMouse})
	}
	if w.tooltip != nil {
		w.tooltip.Dismiss()
	}
}

func (w *Window) OnMove(x, y float32) { w.origin = geom.Pt(x, y) }

func (w *Window) OnResize(width, height float32) {
	size := geom.Sz(width, height)
	if size == w.size {
		return
	}
	w.size = size
	if w.tooltip != nil {
		w.tooltip.Dismiss()
	}
	w.root.RequestLayout()
}

func (w *Window) OnClose() bool {
	if w.onClose != nil {
		return w.onClose()
	}
	return true
}

func (w *Window) OnDestroy() {
	if w.closed {
		return
	}
	w.DismissLevitators()
	w.root.detach()
	w.root.destroy()
	w.closed = true
	w.ctx.Provider().Remove(w.frame)
	w.app.removeWindow(w)
	w.log.Info("window destroyed")
}

func (w *Window) OnNCHitTest(x, y float32) HitArea {
	if x < 0 || y < 0 || x >= w.size.Width || y >= w.size.Height {
		return HitNowhere
	}
	return HitClient
}

func (w *Window) OnDraw(dirty geom.Rect) { w.draw() }

// OnInputEvent routes a platform event into the tree. Keyboard events go to
// the keyboard holder; captured pointer events go straight to their holder;
// everything else is hit tested from the root.
func (w *Window) OnInputEvent(e *InputEvent) bool {
	if w.closed {
		return false
	}
	if e.Time.IsZero() {
		e.Time = w.app.Now()
	}
	if e.IsKeyboard() {
		return w.dispatchKey(e)
	}

	e.RawX, e.RawY = e.X, e.Y
	if e.Type == EventDown && e.IsMouse() {
		e.Clicks = w.countClick(e)
	}

	var holder Widget
	var release func()
	switch {
	case e.IsMouse() && w.mouseHolder != nil:
		holder, release = w.mouseHolder, func() { w.mouseHolder = nil }
	case e.IsTouch() && w.touchHolder != nil:
		holder, release = w.touchHolder, func() { w.touchHolder = nil }
	}
	if holder != nil {
		hv := holder.AsView()
		o := hv.WindowOrigin()
		e.Offset(o.X, o.Y)
		consumed := hv.deliver(e)
		if e.EndsGesture() {
			release()
		}
		return consumed
	}
	return w.root.DispatchInputEvent(e)
}

func (w *Window) dispatchKey(e *InputEvent) bool {
	if h := w.keyboardHolder; h != nil && h.AsView().DispatchInputEvent(e) {
		return true
	}
	if e.Type != EventKeyDown {
		return false
	}
	switch e.Key {
	case KeyTab:
		w.app.focus.FocusOn(w)
		return w.app.focus.Next()
	case KeyEscape:
		if w.contextMenu != nil || w.textActionMenu != nil || w.tooltip != nil {
			w.DismissLevitators()
			return true
		}
	}
	return false
}

func (w *Window) countClick(e *InputEvent) int {
	cfg := w.ctx.Config()
	c := &w.clicks
	dx, dy := e.X-c.x, e.Y-c.y
	near := math32.Sqrt(dx*dx+dy*dy) <= cfg.Input.DoubleClickDistance
	if c.count > 0 && e.Button == c.button && near && e.Time.Sub(c.at) <= cfg.DoubleClickTime() {
		c.count++
	} else {
		c.count = 1
	}
	c.at, c.x, c.y, c.button = e.Time, e.X, e.Y, e.Button
	return c.count
}
