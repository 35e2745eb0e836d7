package retained_test

import (
	"testing"
	"time"

	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/retained"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withBackdrop fills the window content with a recorder that consumes presses.
func withBackdrop(t *testing.T) (*harness, *[]string) {
	h := newHarness(t, 200, 200)
	var log []string
	bg := newRecorder(h.ctx(), "bg", &log, true)
	bg.SetLayoutSize(retained.Fill, retained.Fill)
	h.win.SetContent(bg)
	return h, &log
}

func TestContextMenuItemRunsAfterDismiss(t *testing.T) {
	h, log := withBackdrop(t)
	ran := false
	m := retained.NewContextMenu(h.ctx())
	item := m.AddItem("Copy", func() {
		ran = true
		assert.Nil(t, h.win.ContextMenu(), "menu closes before the action runs")
	})
	h.win.ShowContextMenu(m, geom.Pt(20, 20))
	h.frame(16 * time.Millisecond)

	require.True(t, m.IsShowing())
	assert.Equal(t, "20,20,72,49", boundsOf(m))
	assert.Equal(t, float32(52), item.Width())

	p := center(item)
	h.mouse(retained.EventDown, p.X, p.Y)
	assert.False(t, ran)
	h.mouse(retained.EventUp, p.X, p.Y)

	assert.True(t, ran)
	assert.False(t, m.IsShowing())
	assert.Empty(t, *log)
}

func TestContextMenuDismissedByOutsidePress(t *testing.T) {
	h, log := withBackdrop(t)
	dismissed := 0
	m := retained.NewContextMenu(h.ctx())
	m.AddItem("Paste", nil)
	m.SetOnDismiss(func() { dismissed++ })
	h.win.ShowContextMenu(m, geom.Pt(20, 20))
	h.frame(16 * time.Millisecond)

	h.mouse(retained.EventDown, 150, 150)
	assert.False(t, m.IsShowing())
	assert.Nil(t, h.win.ContextMenu())
	assert.Equal(t, 1, dismissed)
	assert.Equal(t, []string{"bg:down"}, *log)
}

func TestContextMenuBlocksPressesInside(t *testing.T) {
	h, log := withBackdrop(t)
	m := retained.NewContextMenu(h.ctx())
	m.AddItem("Copy", nil)
	h.win.ShowContextMenu(m, geom.Pt(20, 20))
	h.frame(16 * time.Millisecond)

	// inside the menu padding, not on an item
	h.mouse(retained.EventDown, 30, 21)
	assert.True(t, m.IsShowing())
	assert.Empty(t, *log)
}

func TestShowingAMenuReplacesThePreviousOne(t *testing.T) {
	h, _ := withBackdrop(t)
	first := retained.NewContextMenu(h.ctx())
	second := retained.NewContextMenu(h.ctx())
	h.win.ShowContextMenu(first, geom.Pt(0, 0))
	h.win.ShowContextMenu(second, geom.Pt(10, 10))

	assert.False(t, first.IsShowing())
	assert.True(t, second.IsShowing())
	assert.Equal(t, second, h.win.ContextMenu())
}

func TestEscapeDismissesLevitators(t *testing.T) {
	h, _ := withBackdrop(t)
	m := retained.NewContextMenu(h.ctx())
	tip := retained.NewTooltip(h.ctx(), "tip")
	h.win.ShowContextMenu(m, geom.Pt(20, 20))
	h.win.ShowTooltip(tip, geom.Pt(100, 100))

	assert.True(t, h.key(retained.KeyEscape, 0))
	assert.False(t, m.IsShowing())
	assert.False(t, tip.IsShowing())
	assert.False(t, h.key(retained.KeyEscape, 0))
}

func TestTooltipLetsPressesThrough(t *testing.T) {
	h, log := withBackdrop(t)
	tip := retained.NewTooltip(h.ctx(), "tip")
	h.win.ShowTooltip(tip, geom.Pt(10, 10))
	h.frame(16 * time.Millisecond)
	require.Equal(t, "tip", tip.Text())

	p := center(tip)
	h.mouse(retained.EventDown, p.X, p.Y)
	assert.False(t, tip.IsShowing())
	assert.Nil(t, h.win.Tooltip())
	assert.Equal(t, []string{"bg:down"}, *log)
}

func TestOverlayKeepsLevitatorInsideWindow(t *testing.T) {
	h, _ := withBackdrop(t)
	m := retained.NewContextMenu(h.ctx())
	m.AddItem("Copy", nil)
	h.win.ShowContextMenu(m, geom.Pt(190, 190))
	h.frame(16 * time.Millisecond)
	assert.Equal(t, "148,171,200,200", boundsOf(m))
}

func TestResizeDismissesTooltip(t *testing.T) {
	h, _ := withBackdrop(t)
	tip := retained.NewTooltip(h.ctx(), "tip")
	h.win.ShowTooltip(tip, geom.Pt(10, 10))
	h.native.Resize(150, 150)
	assert.False(t, tip.IsShowing())
}
