package render

import (
	"errors"
	"image"
	"testing"

	"github.com/agiangrant/viewkit/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingCanvasTransforms(t *testing.T) {
	c := NewRecordingCanvas()
	red := geom.RGBA(0xFF0000FF)

	c.Save()
	c.Translate(10, 20)
	c.FillRect(geom.XYWH(0, 0, 5, 5), red)
	c.Scale(2, 2)
	c.FillRect(geom.XYWH(1, 1, 5, 5), red)
	c.Restore()
	c.FillRect(geom.XYWH(0, 0, 1, 1), red)

	cmds := c.Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, geom.Rect{Left: 10, Top: 20, Right: 15, Bottom: 25}, cmds[0].FillRect.Rect)
	assert.Equal(t, geom.Rect{Left: 12, Top: 22, Right: 22, Bottom: 32}, cmds[1].FillRect.Rect)
	assert.Equal(t, geom.Rect{Left: 0, Top: 0, Right: 1, Bottom: 1}, cmds[2].FillRect.Rect)
	assert.Equal(t, uint32(0xFF0000FF), cmds[0].FillRect.Color)
}

func TestRecordingCanvasRestoreClosesClipsAndOpacity(t *testing.T) {
	c := NewRecordingCanvas()
	c.Save()
	c.SetOpacity(0.5)
	c.ClipRect(geom.XYWH(0, 0, 10, 10))
	c.ClipCircle(geom.Pt(5, 5), 3)
	c.Restore()
	c.Restore() // unbalanced

	var names []string
	for _, cmd := range c.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Equal(t, []string{"SetOpacity", "PushClip", "PushClip", "PopClip", "PopClip", "SetOpacity"}, names)
	assert.Equal(t, float32(1), c.Opacity())

	circle := c.Commands()[2].PushClip
	assert.Equal(t, float32(3), circle.Radius)
	assert.Equal(t, geom.Rect{Left: 2, Top: 2, Right: 8, Bottom: 8}, circle.Rect)
}

func TestRecordingCanvasSkipsInvisible(t *testing.T) {
	c := NewRecordingCanvas()
	c.FillRect(geom.XYWH(0, 0, 10, 10), geom.Transparent)
	c.FillRect(geom.Rect{}, geom.Black)
	c.DrawText("", geom.Pt(0, 0), 12, geom.Black)
	c.DrawImage(nil, geom.XYWH(0, 0, 1, 1))
	assert.Empty(t, c.Commands())

	c.DrawImage(image.NewRGBA(image.Rect(0, 0, 2, 2)), geom.XYWH(0, 0, 2, 2))
	assert.Len(t, c.Commands(), 1)

	c.Reset()
	assert.Empty(t, c.Commands())
}

func TestEncodeCommands(t *testing.T) {
	c := NewRecordingCanvas()
	c.DrawText("hi", geom.Pt(1, 2), 13, geom.Black)
	data, err := Encode(c.Commands())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"DrawText":{"x":1,"y":2,"text":"hi"`)
}

type rebuildLog struct {
	events []string
}

func (r *rebuildLog) OnDemolish() { r.events = append(r.events, "demolish") }
func (r *rebuildLog) OnRebuild(ok bool) {
	if ok {
		r.events = append(r.events, "rebuild")
	} else {
		r.events = append(r.events, "rebuild-failed")
	}
}

func TestDeviceRecovery(t *testing.T) {
	fail := true
	d := NewDevice(func() error {
		if fail {
			return errors.New("no adapter")
		}
		return nil
	})
	var r rebuildLog
	d.Register(&r)

	assert.True(t, d.EnsureReady())
	d.MarkLost()
	d.MarkLost()
	assert.False(t, d.EnsureReady())

	fail = false
	assert.True(t, d.EnsureReady())
	assert.False(t, d.Lost())
	assert.Equal(t, 1, d.Generation())
	assert.Equal(t, []string{"demolish", "rebuild-failed", "rebuild"}, r.events)
}
