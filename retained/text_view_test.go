package retained_test

import (
	"testing"
	"time"

	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/retained"
	"github.com/agiangrant/viewkit/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTextHarness(t *testing.T, s string) (*harness, *retained.TextView) {
	h := newHarness(t, 200, 100)
	tv := retained.NewTextView(h.ctx(), s)
	h.win.SetContent(tv)
	h.frame(16 * time.Millisecond)
	return h, tv
}

func sel(tv *retained.TextView) text.Selection { return tv.Editable().Selection() }

func TestTextViewMeasuresLines(t *testing.T) {
	_, tv := newTextHarness(t, "hello world\nhi")
	assert.Equal(t, "0,0,77,26", boundsOf(tv))
	assert.Equal(t, 2, tv.OffsetAt(geom.Pt(14, 3)))
	assert.Equal(t, 14, tv.OffsetAt(geom.Pt(13, 20)))
	assert.Equal(t, 14, tv.OffsetAt(geom.Pt(190, 90)), "points past the end clamp to the last line")
}

func TestTextViewClickAndDragSelects(t *testing.T) {
	h, tv := newTextHarness(t, "hello world")

	h.mouse(retained.EventDown, 14, 5)
	assert.Equal(t, tv, h.win.Focused())
	assert.Equal(t, text.Selection{Start: 2, End: 2}, sel(tv))
	assert.Equal(t, tv, h.win.MouseHolder())

	h.mouse(retained.EventMove, 35, 5)
	h.mouse(retained.EventUp, 35, 5)
	assert.Equal(t, text.Selection{Start: 2, End: 5}, sel(tv))
	assert.Nil(t, h.win.MouseHolder())

	// dragging keeps working outside the view while captured
	h.now = h.now.Add(time.Second)
	h.mouse(retained.EventDown, 35, 5)
	h.mouse(retained.EventMove, 7, 60)
	h.mouse(retained.EventUp, 7, 60)
	assert.Equal(t, text.Selection{Start: 1, End: 5}, sel(tv))
}

func TestTextViewShiftClickExtends(t *testing.T) {
	h, tv := newTextHarness(t, "hello world")
	h.mouse(retained.EventDown, 14, 5)
	h.mouse(retained.EventUp, 14, 5)
	h.now = h.now.Add(time.Second)

	h.send(&retained.InputEvent{
		Type: retained.EventDown, Pointer: retained.PointerMouse, Button: retained.MouseButtonLeft,
		X: 63, Y: 5, Mods: retained.ModShift,
	})
	assert.Equal(t, text.Selection{Start: 2, End: 9}, sel(tv))
}

func TestTextViewDoubleClickSelectsWord(t *testing.T) {
	h, tv := newTextHarness(t, "hello world")
	h.mouse(retained.EventDown, 56, 5)
	h.mouse(retained.EventUp, 56, 5)
	h.mouse(retained.EventDown, 56, 5)
	h.mouse(retained.EventUp, 56, 5)
	assert.Equal(t, text.Selection{Start: 6, End: 11}, sel(tv))
	assert.Equal(t, "world", tv.Editable().SelectedText())
}

func TestTextViewTyping(t *testing.T) {
	h, tv := newTextHarness(t, "hello")
	h.mouse(retained.EventDown, 34, 5)
	h.mouse(retained.EventUp, 34, 5)

	assert.True(t, h.char('!'))
	assert.Equal(t, "hello!", tv.Text())
	assert.False(t, h.char('\t'))

	assert.True(t, h.key(retained.KeyLeft, 0))
	assert.True(t, h.key(retained.KeyBackspace, 0))
	assert.Equal(t, "hell!", tv.Text())
	assert.True(t, h.key(retained.KeyDelete, 0))
	assert.Equal(t, "hell", tv.Text())

	assert.True(t, h.key(retained.KeyHome, retained.ModShift))
	assert.Equal(t, text.Selection{Start: 0, End: 4}, sel(tv))
	assert.True(t, h.char('J'))
	assert.Equal(t, "J", tv.Text())

	assert.True(t, h.key(retained.KeyZ, retained.ModCtrl))
	assert.Equal(t, "hell", tv.Text())
	assert.True(t, h.key(retained.KeyY, retained.ModCtrl))
	assert.Equal(t, "J", tv.Text())

	assert.True(t, h.key(retained.KeyEnter, 0))
	assert.Equal(t, "J\n", tv.Text())
	tv.SetMultiline(false)
	assert.False(t, h.key(retained.KeyEnter, 0))
}

func TestTextViewClipboard(t *testing.T) {
	h, tv := newTextHarness(t, "hello world")
	h.mouse(retained.EventDown, 14, 5)
	h.mouse(retained.EventMove, 35, 5)
	h.mouse(retained.EventUp, 35, 5)

	assert.True(t, h.key(retained.KeyC, retained.ModCtrl))
	assert.Equal(t, "llo", h.app.Clipboard())

	assert.True(t, h.key(retained.KeyEnd, 0))
	assert.True(t, h.key(retained.KeyV, retained.ModCtrl))
	assert.Equal(t, "hello worldllo", tv.Text())

	assert.True(t, h.key(retained.KeyA, retained.ModCtrl))
	assert.True(t, h.key(retained.KeyX, retained.ModCtrl))
	assert.Empty(t, tv.Text())
	assert.Equal(t, "hello worldllo", h.app.Clipboard())
}

func TestReadOnlyTextView(t *testing.T) {
	h, tv := newTextHarness(t, "fixed")
	tv.SetEditable(false)

	h.mouse(retained.EventDown, 7, 5)
	h.mouse(retained.EventMove, 28, 5)
	h.mouse(retained.EventUp, 28, 5)
	assert.Equal(t, text.Selection{Start: 1, End: 4}, sel(tv), "still selectable")
	assert.Nil(t, h.win.Focused())
	assert.False(t, tv.Paste())
	assert.False(t, tv.Cut())
	assert.True(t, tv.Copy())
	assert.Equal(t, "fixed", tv.Text())
}

func TestTextViewCaretBlinks(t *testing.T) {
	h, tv := newTextHarness(t, "hello")
	h.mouse(retained.EventDown, 14, 5)
	h.mouse(retained.EventUp, 14, 5)
	require.True(t, tv.CaretVisible())
	assert.Equal(t, geom.XYWH(14, 0, 1, 13), tv.CaretRect())

	h.frame(250 * time.Millisecond)
	h.frame(250 * time.Millisecond)
	assert.True(t, tv.CaretVisible())
	h.frame(250 * time.Millisecond) // 500ms since the click
	assert.False(t, tv.CaretVisible())
	h.frame(250 * time.Millisecond)
	h.frame(250 * time.Millisecond)
	assert.True(t, tv.CaretVisible())

	// typing shows the caret again immediately
	h.frame(250 * time.Millisecond)
	h.frame(0)
	require.False(t, tv.CaretVisible())
	h.char('x')
	assert.True(t, tv.CaretVisible())

	tv.DiscardFocus()
	assert.False(t, tv.CaretVisible())
}

func TestTextViewActionMenu(t *testing.T) {
	h, tv := newTextHarness(t, "hello world")
	h.mouse(retained.EventDown, 14, 5)
	h.mouse(retained.EventMove, 35, 5)
	h.mouse(retained.EventUp, 35, 5)
	require.Equal(t, text.Selection{Start: 2, End: 5}, sel(tv))

	h.send(&retained.InputEvent{
		Type: retained.EventDown, Pointer: retained.PointerMouse, Button: retained.MouseButtonRight, X: 30, Y: 5,
	})
	h.send(&retained.InputEvent{
		Type: retained.EventUp, Pointer: retained.PointerMouse, Button: retained.MouseButtonRight, X: 30, Y: 5,
	})
	m := h.win.TextActionMenu()
	require.NotNil(t, m)
	items := m.Items()
	require.Len(t, items, 4)
	assert.True(t, items[0].IsEnabled(), "cut")
	assert.True(t, items[1].IsEnabled(), "copy")
	assert.False(t, items[2].IsEnabled(), "paste with an empty clipboard")
	h.frame(16 * time.Millisecond)

	p := center(items[1])
	h.mouse(retained.EventDown, p.X, p.Y)
	h.mouse(retained.EventUp, p.X, p.Y)
	assert.Equal(t, "llo", h.app.Clipboard())
	assert.Nil(t, h.win.TextActionMenu())
}
