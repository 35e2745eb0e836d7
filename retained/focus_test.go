package retained_test

import (
	"testing"
	"time"

	"github.com/agiangrant/viewkit/retained"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func focusable(h *harness, name string, log *[]string) *recorder {
	p := newRecorder(h.ctx(), name, log, false)
	p.SetFocusable(true)
	return p
}

func TestFocusTraversalStopsAtEnds(t *testing.T) {
	h := newHarness(t, 200, 100)
	var log []string
	frame := retained.NewLayoutView(h.ctx())
	v1, v2, v3 := focusable(h, "v1", &log), focusable(h, "v2", &log), focusable(h, "v3", &log)
	frame.AddView(v1)
	frame.AddView(v2)
	frame.AddView(v3)
	h.win.SetContent(frame)

	fm := h.app.Focus()
	require.Equal(t, h.win, fm.Window())
	assert.Nil(t, fm.Focused())

	assert.True(t, fm.Next(), "next without focus starts at the first view")
	assert.Equal(t, v1, fm.Focused())
	assert.True(t, v1.focused)

	assert.True(t, fm.Next())
	assert.True(t, fm.Next())
	assert.Equal(t, v3, fm.Focused())
	assert.False(t, fm.Next())
	assert.Equal(t, v3, fm.Focused())

	assert.True(t, fm.Prev())
	assert.Equal(t, v2, fm.Focused())
	assert.False(t, v3.focused)
	assert.True(t, fm.Prev())
	assert.False(t, fm.Prev())
	assert.Equal(t, v1, fm.Focused())

	assert.True(t, fm.Last())
	assert.Equal(t, v3, fm.Focused())
}

func TestFocusSkipsHiddenSubtree(t *testing.T) {
	h := newHarness(t, 200, 100)
	var log []string
	frame := retained.NewLayoutView(h.ctx())
	group := retained.NewLayoutView(h.ctx())
	v1, v2, v3 := focusable(h, "v1", &log), focusable(h, "v2", &log), focusable(h, "v3", &log)
	group.AddView(v2)
	frame.AddView(v1)
	frame.AddView(group)
	frame.AddView(v3)
	h.win.SetContent(frame)

	group.SetVisibility(retained.Hide)
	fm := h.app.Focus()
	require.True(t, fm.First())
	require.True(t, fm.Next())
	assert.Equal(t, v3, fm.Focused())
	assert.False(t, v2.RequestFocus())
}

func TestFocusLostWhenHolderHidden(t *testing.T) {
	h := newHarness(t, 200, 100)
	var log []string
	v := focusable(h, "v", &log)
	h.win.SetContent(v)

	require.True(t, v.RequestFocus())
	v.SetVisibility(retained.Hide)
	assert.Nil(t, h.win.Focused())
	assert.False(t, v.focused)
}

func TestFocusWithoutCandidates(t *testing.T) {
	h := newHarness(t, 200, 100)
	h.win.SetContent(retained.NewView(h.ctx()))
	fm := h.app.Focus()
	assert.False(t, fm.First())
	assert.False(t, fm.Last())
	assert.False(t, fm.Next())
	assert.Nil(t, fm.Focused())
}

func TestTabMovesFocus(t *testing.T) {
	h := newHarness(t, 200, 100)
	var log []string
	frame := retained.NewLayoutView(h.ctx())
	v1, v2 := focusable(h, "v1", &log), focusable(h, "v2", &log)
	frame.AddView(v1)
	frame.AddView(v2)
	h.win.SetContent(frame)
	h.frame(16 * time.Millisecond)

	require.True(t, v1.RequestFocus())
	assert.True(t, h.key(retained.KeyTab, 0))
	assert.Equal(t, v2, h.win.Focused())
	assert.Equal(t, []string{"v1:key-down"}, log)
}
