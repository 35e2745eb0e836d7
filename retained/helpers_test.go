package retained_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/agiangrant/viewkit"
	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/internal/headless"
	"github.com/agiangrant/viewkit/retained"
	"github.com/stretchr/testify/require"
)

var t0 = time.Unix(1_700_000_000, 0)

// harness is an application with one shown headless window and a clock
// the test advances by hand.
type harness struct {
	app    *retained.Application
	win    *retained.Window
	native *headless.Native
	now    time.Time
}

func newHarness(t *testing.T, width, height float32) *harness {
	t.Helper()
	h := &harness{now: t0}
	h.app = retained.NewApplication(viewkit.DefaultConfig(), retained.WithClock(func() time.Time { return h.now }))
	h.native = headless.New(width, height)
	win, err := h.app.NewWindow(h.native, t.Name())
	require.NoError(t, err)
	h.win = win
	h.native.Show()
	return h
}

func (h *harness) ctx() retained.Context { return h.app.Context() }

// frame runs one VSync tick at the current clock, then advances it by d.
func (h *harness) frame(d time.Duration) {
	h.app.Tick(h.now)
	h.now = h.now.Add(d)
}

func (h *harness) send(e *retained.InputEvent) bool { return h.native.Send(e) }

func (h *harness) mouse(t retained.EventType, x, y float32) bool {
	return h.send(&retained.InputEvent{Type: t, Pointer: retained.PointerMouse, Button: retained.MouseButtonLeft, X: x, Y: y})
}

func (h *harness) touch(t retained.EventType, x, y float32) bool {
	return h.send(&retained.InputEvent{Type: t, Pointer: retained.PointerTouch, X: x, Y: y})
}

func (h *harness) key(k retained.Key, mods retained.Modifiers) bool {
	return h.send(&retained.InputEvent{Type: retained.EventKeyDown, Key: k, Mods: mods})
}

func (h *harness) char(r rune) bool {
	return h.send(&retained.InputEvent{Type: retained.EventChar, Char: r})
}

// recorder records the events delivered to it.
type recorder struct {
	retained.View
	name    string
	log     *[]string
	consume bool
	points  []geom.Point
	focused bool
}

func newRecorder(c retained.Context, name string, log *[]string, consume bool) *recorder {
	p := &recorder{name: name, log: log, consume: consume}
	p.Init(c, p)
	return p
}

func (p *recorder) OnInputEvent(e *retained.InputEvent) bool {
	entry := p.name + ":" + e.Type.String()
	if e.Outside {
		entry += "(outside)"
	}
	*p.log = append(*p.log, entry)
	p.points = append(p.points, geom.Pt(e.X, e.Y))
	return p.consume
}

func (p *recorder) OnFocusChanged(focused bool) { p.focused = focused }

// place sizes v and puts it at (x, y) inside a frame LayoutView.
func place(v retained.Widget, x, y, w, h float32) {
	vv := v.AsView()
	vv.SetLayoutSize(retained.LayoutSize(w), retained.LayoutSize(h))
	vv.SetMargin(geom.Margin{Start: x, Top: y})
}

func center(w retained.Widget) geom.Point {
	v := w.AsView()
	o := v.WindowOrigin()
	return geom.Pt(o.X+v.Width()/2, o.Y+v.Height()/2)
}

func boundsOf(w retained.Widget) string {
	b := w.AsView().Bounds()
	return fmt.Sprintf("%g,%g,%g,%g", b.Left, b.Top, b.Right, b.Bottom)
}
