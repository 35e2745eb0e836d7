package retained

import (
	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/internal/diag"
	"github.com/agiangrant/viewkit/render"
	"github.com/agiangrant/viewkit/vsync"
)

// Widget is implemented by every node of the view tree. Concrete widgets
// embed View (or LayoutView) and AsView returns the embedded View.
type Widget interface {
	AsView() *View
}

// Optional capabilities. A widget implements only the ones it needs; the
// View base supplies the default behavior for the rest.
type (
	// Measurer computes the widget's size under a constraint.
	Measurer interface {
		OnDetermineSize(info SizeInfo) geom.Size
	}

	// Layouter positions the widget's content after its bounds are set.
	// bounds is in parent-local coordinates.
	Layouter interface {
		OnLayout(changed bool, bounds geom.Rect)
	}

	// Drawer paints the widget's content in local coordinates.
	Drawer interface {
		OnDraw(c render.Canvas)
	}

	// InputTarget handles input delivered to the widget itself.
	// Returning true consumes the event.
	InputTarget interface {
		OnInputEvent(e *InputEvent) bool
	}

	// InputHooker lets a container claim a gesture before its children
	// see it. Returning true hooks the rest of the gesture.
	InputHooker interface {
		OnHookInputEvent(e *InputEvent) bool
	}

	// FocusListener is told when keyboard focus arrives or leaves.
	FocusListener interface {
		OnFocusChanged(focused bool)
	}

	// AttachListener is told when the widget joins or leaves a window.
	AttachListener interface {
		OnAttachedToWindow(w *Window)
		OnDetachedFromWindow()
	}

	// Destroyer releases resources when the widget is removed for good.
	Destroyer interface {
		OnDestroy()
	}
)

// Internal dispatch hooks implemented by LayoutView and promoted to every
// container embedding it.
type (
	inputDispatcher interface{ dispatchInput(e *InputEvent) bool }
	childDrawer     interface{ drawChildren(c render.Canvas) }
	container       interface{ Children() []Widget }
)

// Visibility of a view.
type Visibility uint8

const (
	// Show draws the view and lets it receive input.
	Show Visibility = iota
	// Hide keeps the view's space but neither draws nor hit-tests it.
	Hide
	// Vanished removes the view from layout entirely.
	Vanished
)

// NoID is the id of views nobody refers to.
const NoID = 0

// RevealShape is the clip shape of a reveal animation.
type RevealShape uint8

const (
	RevealRect RevealShape = iota
	RevealCircle
)

// AnimeParams are the paint-time transforms animations act on.
type AnimeParams struct {
	Alpha      float32
	ScaleX     float32
	ScaleY     float32
	TranslateX float32
	TranslateY float32
	Rotate     float32 // degrees

	HasReveal    bool
	RevealShape  RevealShape
	RevealX      float32 // center, local coordinates
	RevealY      float32
	RevealWidth  float32
	RevealHeight float32
	RevealRadius float32
}

// DefaultAnimeParams returns the identity transform.
func DefaultAnimeParams() AnimeParams {
	return AnimeParams{Alpha: 1, ScaleX: 1, ScaleY: 1}
}

// InputHandler is a callback alternative to implementing InputTarget.
type InputHandler func(e *InputEvent) bool

// View is the base node of the UI tree.
type View struct {
	this Widget
	ctx  Context

	id       int
	bounds   geom.Rect // parent-local, written by the layout pass only
	measured geom.Size
	padding  geom.Padding
	margin   geom.Margin
	width    LayoutSize
	height   LayoutSize

	visibility       Visibility
	enabled          bool
	focusable        bool
	mouseCapturable  bool
	touchCapturable  bool
	receiveOutside   bool
	background       Element
	layoutInfo       LayoutInfo
	params           AnimeParams
	animator         *ViewAnimator
	layoutRequested  bool
	destroyed        bool
	parent           *LayoutView
	window           *Window
	handler          InputHandler
	onClick          func()
	pressed          bool
	vsyncSubscribers []vsync.Callback
}

// NewView returns a plain view.
func NewView(c Context) *View {
	v := &View{}
	v.Init(c, v)
	return v
}

// Init prepares an embedded View. this is the outermost widget, whose
// optional capability methods the view dispatches to.
func (v *View) Init(c Context, this Widget) {
	diag.Check(c.Valid(), "view created without an application context")
	v.this = this
	v.ctx = c
	v.width = Auto
	v.height = Auto
	v.enabled = true
	v.params = DefaultAnimeParams()
}

// AsView implements Widget.
func (v *View) AsView() *View { return v }

// This returns the outermost widget embedding v.
func (v *View) This() Widget { return v.this }

// Context returns the widget's context.
func (v *View) Context() Context { return v.ctx }

func (v *View) ID() int             { return v.id }
func (v *View) SetID(id int)        { v.id = id }
func (v *View) Parent() *LayoutView { return v.parent }

// Window returns the window the view is attached to, or nil.
func (v *View) Window() *Window { return v.window }

// IsAttached reports whether the view belongs to a window.
func (v *View) IsAttached() bool { return v.window != nil }

// Bounds returns the view's rectangle in its parent's coordinates.
func (v *View) Bounds() geom.Rect { return v.bounds }
func (v *View) Width() float32    { return v.bounds.Width() }
func (v *View) Height() float32   { return v.bounds.Height() }

// LocalBounds returns the view's rectangle in its own coordinates.
func (v *View) LocalBounds() geom.Rect {
	return geom.Rect{Right: v.bounds.Width(), Bottom: v.bounds.Height()}
}

// ContentBounds returns the local rectangle inside the padding.
func (v *View) ContentBounds() geom.Rect { return v.LocalBounds().Inset(v.padding) }

// WindowOrigin returns the view's top-left corner in window coordinates.
func (v *View) WindowOrigin() geom.Point {
	var p geom.Point
	for cur := v; cur != nil; {
		p.X += cur.bounds.Left + cur.params.TranslateX
		p.Y += cur.bounds.Top + cur.params.TranslateY
		if cur.parent == nil {
			break
		}
		cur = &cur.parent.View
	}
	return p
}

// MeasuredSize returns the result of the last Measure.
func (v *View) MeasuredSize() geom.Size { return v.measured }

func (v *View) Padding() geom.Padding { return v.padding }
func (v *View) Margin() geom.Margin   { return v.margin }

func (v *View) SetPadding(p geom.Padding) {
	if v.padding != p {
		v.padding = p
		v.RequestLayout()
	}
}

func (v *View) SetMargin(m geom.Margin) {
	if v.margin != m {
		v.margin = m
		v.RequestLayout()
	}
}

// LayoutSize returns the requested width and height.
func (v *View) LayoutSize() (width, height LayoutSize) { return v.width, v.height }

// SetLayoutSize sets the requested width and height.
func (v *View) SetLayoutSize(width, height LayoutSize) {
	if v.width != width || v.height != height {
		v.width, v.height = width, height
		v.RequestLayout()
	}
}

func (v *View) layoutSizeAlong(a Axis) LayoutSize {
	if a == Horizontal {
		return v.width
	}
	return v.height
}

func (v *View) Visibility() Visibility { return v.visibility }

// SetVisibility changes visibility. Hiding a view drops its focus and
// captures.
func (v *View) SetVisibility(vis Visibility) {
	if v.visibility == vis {
		return
	}
	old := v.visibility
	v.visibility = vis
	if vis != Show && v.window != nil {
		v.window.dropStateFor(v)
	}
	if old == Vanished || vis == Vanished {
		v.RequestLayout()
	}
	v.RequestDraw()
}

func (v *View) IsEnabled() bool { return v.enabled }

func (v *View) SetEnabled(enabled bool) {
	if v.enabled == enabled {
		return
	}
	v.enabled = enabled
	if !enabled && v.window != nil {
		v.window.dropStateFor(v)
	}
	v.RequestDraw()
}

func (v *View) IsFocusable() bool           { return v.focusable }
func (v *View) SetFocusable(focusable bool) { v.focusable = focusable }

// SetMouseCapturable makes the view grab the mouse when it consumes a down.
func (v *View) SetMouseCapturable(on bool) { v.mouseCapturable = on }

// SetTouchCapturable makes the view grab touches when it consumes a down.
func (v *View) SetTouchCapturable(on bool) { v.touchCapturable = on }

// SetReceiveOutsideInput asks the parent to also deliver pointer events
// that miss the view, marked Outside.
func (v *View) SetReceiveOutsideInput(on bool) { v.receiveOutside = on }

func (v *View) Background() Element { return v.background }

func (v *View) SetBackground(e Element) {
	v.background = e
	v.RequestDraw()
}

// LayoutInfo returns the container-specific layout data.
func (v *View) LayoutInfo() LayoutInfo { return v.layoutInfo }

// SetLayoutInfo moves info into the view, replacing previous data.
func (v *View) SetLayoutInfo(info LayoutInfo) {
	v.layoutInfo = info
	v.RequestLayout()
}

// AnimeParams returns the paint-time transforms.
func (v *View) AnimeParams() AnimeParams { return v.params }

// SetAnimeParams replaces the paint-time transforms.
func (v *View) SetAnimeParams(p AnimeParams) {
	v.params = p
	v.RequestDraw()
}

// SetInputHandler installs a callback consulted after InputTarget.
func (v *View) SetInputHandler(h InputHandler) { v.handler = h }

// SetOnClick makes the view consume presses and call fn when a press is
// released inside it.
func (v *View) SetOnClick(fn func()) { v.onClick = fn }

// Animate returns the view's animator.
func (v *View) Animate() *ViewAnimator {
	if v.animator == nil {
		v.animator = newViewAnimator(v)
	}
	return v.animator
}

// --- layout ---

// Measure computes the view's size under info and records it.
func (v *View) Measure(info SizeInfo) geom.Size {
	if v.visibility == Vanished {
		v.measured = geom.Size{}
		return v.measured
	}
	if m, ok := v.this.(Measurer); ok {
		v.measured = m.OnDetermineSize(info)
	} else {
		v.measured = geom.Size{
			Width:  ResolveSize(v.padding.Horizontal(), info.Width),
			Height: ResolveSize(v.padding.Vertical(), info.Height),
		}
	}
	return v.measured
}

// Layout assigns the view's bounds and lays out its content.
func (v *View) Layout(r geom.Rect) {
	changed := r != v.bounds
	v.bounds = r
	v.layoutRequested = false
	if l, ok := v.this.(Layouter); ok {
		l.OnLayout(changed, r)
	}
}

// RequestLayout schedules a layout pass for the view's window.
func (v *View) RequestLayout() {
	v.layoutRequested = true
	switch {
	case v.parent != nil:
		v.parent.RequestLayout()
	case v.window != nil:
		v.window.scheduleLayout()
	}
}

// RequestDraw schedules a redraw. Draws are coalesced to the next VSync.
func (v *View) RequestDraw() {
	if v.window != nil {
		v.window.scheduleDraw()
	}
}

// --- drawing ---

// Draw paints the view and its subtree. The canvas origin is the parent's
// top-left corner.
func (v *View) Draw(c render.Canvas) {
	p := v.params
	if v.visibility != Show || p.Alpha <= 0 {
		return
	}
	c.Save()
	defer c.Restore()

	c.Translate(v.bounds.Left+p.TranslateX, v.bounds.Top+p.TranslateY)
	if p.Alpha < 1 {
		c.SetOpacity(p.Alpha)
	}
	cx, cy := v.bounds.Width()/2, v.bounds.Height()/2
	if p.ScaleX != 1 || p.ScaleY != 1 {
		c.Translate(cx, cy)
		c.Scale(p.ScaleX, p.ScaleY)
		c.Translate(-cx, -cy)
	}
	if p.Rotate != 0 {
		c.Translate(cx, cy)
		c.Rotate(p.Rotate)
		c.Translate(-cx, -cy)
	}
	if p.HasReveal {
		switch p.RevealShape {
		case RevealRect:
			c.ClipRect(geom.Rect{
				Left:   p.RevealX - p.RevealWidth/2,
				Top:    p.RevealY - p.RevealHeight/2,
				Right:  p.RevealX + p.RevealWidth/2,
				Bottom: p.RevealY + p.RevealHeight/2,
			})
		case RevealCircle:
			c.ClipCircle(geom.Pt(p.RevealX, p.RevealY), p.RevealRadius)
		}
	}

	if v.background != nil {
		v.background.Draw(c, v.LocalBounds())
	}
	if d, ok := v.this.(Drawer); ok {
		d.OnDraw(c)
	}
	if d, ok := v.this.(childDrawer); ok {
		d.drawChildren(c)
	}
}

// --- input ---

// DispatchInputEvent routes e into the view. Containers forward pointer
// events to their children first; leaves handle it themselves.
func (v *View) DispatchInputEvent(e *InputEvent) bool {
	if d, ok := v.this.(inputDispatcher); ok {
		return d.dispatchInput(e)
	}
	return v.deliver(e)
}

// deliver offers e to the view itself and applies capture on down.
func (v *View) deliver(e *InputEvent) bool {
	consumed := v.handleInput(e)
	if consumed && e.Type == EventDown && !e.Outside && v.window != nil {
		switch {
		case e.IsMouse() && v.mouseCapturable:
			v.CaptureMouse()
		case e.IsTouch() && v.touchCapturable:
			v.CaptureTouch()
		}
	}
	return consumed
}

func (v *View) handleInput(e *InputEvent) bool {
	if t, ok := v.this.(InputTarget); ok && t.OnInputEvent(e) {
		return true
	}
	if v.handler != nil && v.handler(e) {
		return true
	}
	if v.onClick != nil && !e.Outside {
		return v.handleClick(e)
	}
	return false
}

func (v *View) handleClick(e *InputEvent) bool {
	switch e.Type {
	case EventDown:
		v.pressed = true
		return true
	case EventUp:
		was := v.pressed
		v.pressed = false
		if was && v.LocalBounds().Contains(e.X, e.Y) {
			v.onClick()
		}
		return was
	case EventCancel, EventLeaveView:
		v.pressed = false
	}
	return false
}

// receivesPointer reports whether hit testing may pick the view.
func (v *View) receivesPointer() bool {
	return v.visibility == Show && v.enabled && !v.destroyed
}

// hitBounds is the parent-local rectangle used for hit testing.
func (v *View) hitBounds() geom.Rect {
	return v.bounds.Offset(v.params.TranslateX, v.params.TranslateY)
}

// --- focus and capture ---

// CanGetFocus reports whether keyboard focus may move to the view.
func (v *View) CanGetFocus() bool {
	if !v.focusable || !v.enabled || v.window == nil {
		return false
	}
	for cur := v; cur != nil; {
		if cur.visibility != Show {
			return false
		}
		if cur.parent == nil {
			break
		}
		cur = &cur.parent.View
	}
	return true
}

// RequestFocus makes the view the keyboard holder of its window.
func (v *View) RequestFocus() bool {
	if !v.CanGetFocus() {
		return false
	}
	v.window.setKeyboardHolder(v.this)
	return true
}

// DiscardFocus drops keyboard focus if the view holds it.
func (v *View) DiscardFocus() {
	if v.HasFocus() {
		v.window.setKeyboardHolder(nil)
	}
}

// HasFocus reports whether the view is its window's keyboard holder.
func (v *View) HasFocus() bool {
	return v.window != nil && v.window.keyboardHolder != nil && v.window.keyboardHolder.AsView() == v
}

// CaptureMouse routes all mouse events to the view until released.
func (v *View) CaptureMouse() bool {
	if !diag.Check(v.window != nil, "mouse capture by detached view", "id", v.id) {
		return false
	}
	v.window.setMouseHolder(v.this)
	return true
}

// ReleaseMouse ends a mouse capture held by the view.
func (v *View) ReleaseMouse() {
	if v.IsMouseCaptured() {
		v.window.setMouseHolder(nil)
	}
}

func (v *View) IsMouseCaptured() bool {
	return v.window != nil && v.window.mouseHolder != nil && v.window.mouseHolder.AsView() == v
}

// CaptureTouch routes all touch events to the view until released.
func (v *View) CaptureTouch() bool {
	if !diag.Check(v.window != nil, "touch capture by detached view", "id", v.id) {
		return false
	}
	v.window.setTouchHolder(v.this)
	return true
}

// ReleaseTouch ends a touch capture held by the view.
func (v *View) ReleaseTouch() {
	if v.IsTouchCaptured() {
		v.window.setTouchHolder(nil)
	}
}

func (v *View) IsTouchCaptured() bool {
	return v.window != nil && v.window.touchHolder != nil && v.window.touchHolder.AsView() == v
}

// --- vsync ---

// StartVSync registers cb with the application's provider until StopVSync
// or the view is detached.
func (v *View) StartVSync(cb vsync.Callback) {
	p := v.ctx.Provider()
	if p.Has(cb) {
		return
	}
	p.Add(cb)
	v.vsyncSubscribers = append(v.vsyncSubscribers, cb)
}

// StopVSync unregisters cb.
func (v *View) StopVSync(cb vsync.Callback) {
	v.ctx.Provider().Remove(cb)
	for i, s := range v.vsyncSubscribers {
		if s == cb {
			v.vsyncSubscribers = append(v.vsyncSubscribers[:i], v.vsyncSubscribers[i+1:]...)
			break
		}
	}
}

// --- attachment ---

func (v *View) attach(w *Window) {
	if v.window == w {
		return
	}
	v.window = w
	if c, ok := v.this.(container); ok {
		for _, child := range c.Children() {
			child.AsView().attach(w)
		}
	}
	if l, ok := v.this.(AttachListener); ok {
		l.OnAttachedToWindow(w)
	}
	if v.layoutRequested {
		v.layoutRequested = false
		v.RequestLayout()
	}
}

func (v *View) detach() {
	if v.window == nil {
		return
	}
	if c, ok := v.this.(container); ok {
		for _, child := range c.Children() {
			child.AsView().detach()
		}
	}
	v.window.dropStateFor(v)
	if v.animator != nil {
		v.animator.Cancel()
	}
	for _, cb := range v.vsyncSubscribers {
		v.ctx.Provider().Remove(cb)
	}
	v.vsyncSubscribers = nil
	v.window = nil
	v.pressed = false
	if l, ok := v.this.(AttachListener); ok {
		l.OnDetachedFromWindow()
	}
}

func (v *View) destroy() {
	if c, ok := v.this.(container); ok {
		for _, child := range c.Children() {
			child.AsView().destroy()
		}
	}
	v.destroyed = true
	if d, ok := v.this.(Destroyer); ok {
		d.OnDestroy()
	}
}

// isAncestorOf reports whether v is w or one of w's ancestors.
func (v *View) isAncestorOf(w *View) bool {
	for cur := w; cur != nil; {
		if cur == v {
			return true
		}
		if cur.parent == nil {
			return false
		}
		cur = &cur.parent.View
	}
	return false
}
