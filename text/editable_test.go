package text

import (
	"testing"

	"github.com/agiangrant/viewkit/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSelectionClampsAndNormalizes(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       Selection
	}{
		{"end past length", 3, 100, Selection{3, 5}},
		{"reversed", 100, 3, Selection{3, 5}},
		{"negative", -4, 2, Selection{0, 2}},
		{"caret", 2, 2, Selection{2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditable("hello")
			e.SetSelection(tt.start, tt.end)
			assert.Equal(t, tt.want, e.Selection())
		})
	}
}

func TestMutationsNotifyOnce(t *testing.T) {
	e := NewEditable("hello")
	var changes []Change
	e.AddWatcher(WatcherFunc(func(_ *Editable, c Change) { changes = append(changes, c) }))

	e.Insert(5, " world")
	require.Len(t, changes, 1)
	assert.Equal(t, RangeChg{Pos: 5, OldEnd: 5, NewEnd: 11}, changes[0].Range)
	assert.True(t, changes[0].Reason.Has(ReasonText))
	assert.Equal(t, "hello world", e.String())

	e.Remove(0, 6)
	require.Len(t, changes, 2)
	assert.Equal(t, RangeChg{Pos: 0, OldEnd: 6, NewEnd: 0}, changes[1].Range)
	assert.Equal(t, "world", e.String())

	e.Replace(0, 1, "W")
	assert.Equal(t, "World", e.String())
	assert.Equal(t, 0, changes[2].Range.Delta())

	e.Append("!")
	assert.Equal(t, "World!", e.String())

	e.Clear()
	assert.Equal(t, 0, e.Len())
	assert.Len(t, changes, 5)

	// No-op edits are silent.
	e.Insert(0, "")
	e.Remove(0, 0)
	assert.Len(t, changes, 5)
}

func TestSelectionFollowsEdits(t *testing.T) {
	e := NewEditable("hello world")
	e.SetSelection(6, 11)

	e.Insert(0, ">> ")
	assert.Equal(t, Selection{9, 14}, e.Selection())
	assert.Equal(t, "world", e.SelectedText())

	e.Remove(0, 3)
	assert.Equal(t, Selection{6, 11}, e.Selection())

	e.Remove(8, 100)
	assert.Equal(t, "hello wo", e.String())
	assert.Equal(t, Selection{6, 8}, e.Selection())
}

func TestSelectionOperations(t *testing.T) {
	e := NewEditable("hello world")
	e.SetSelection(0, 5)

	e.ReplaceSelection("howdy")
	assert.Equal(t, "howdy world", e.String())
	assert.Equal(t, Selection{5, 5}, e.Selection())

	e.InsertAtSelection(",")
	assert.Equal(t, "howdy, world", e.String())
	assert.Equal(t, Selection{6, 6}, e.Selection())

	e.SetSelection(6, 12)
	e.RemoveSelection()
	assert.Equal(t, "howdy,", e.String())
	assert.Equal(t, Selection{6, 6}, e.Selection())

	e.RemoveSelection()
	assert.Equal(t, "howdy,", e.String())
}

func TestSpansAdjustAcrossEdits(t *testing.T) {
	red := EffectAttr{Color: geom.RGBA(0xFF0000FF)}
	e := NewEditable("hello world")
	require.True(t, e.AddSpan(Span{Start: 6, End: 11, Attr: red}))
	assert.False(t, e.AddSpan(Span{Start: 4, End: 4, Attr: red}), "empty span")

	// Insert at the span start stays outside it.
	e.Insert(6, "big ")
	assert.Equal(t, []Span{{Start: 10, End: 15, Attr: red}}, e.Spans())

	// Insert at the span end extends it.
	e.Insert(15, "s")
	assert.Equal(t, []Span{{Start: 10, End: 16, Attr: red}}, e.Spans())
	assert.Equal(t, "worlds", e.Slice(10, 16))

	// Removing a range overlapping the start trims it.
	e.Remove(8, 12)
	assert.Equal(t, []Span{{Start: 8, End: 12, Attr: red}}, e.Spans())
	assert.Equal(t, "rlds", e.Slice(8, 12))

	// Removing all of it drops it.
	var reason Reason
	e.AddWatcher(WatcherFunc(func(_ *Editable, c Change) { reason = c.Reason }))
	e.Remove(8, 12)
	assert.Empty(t, e.Spans())
	assert.True(t, reason.Has(ReasonSpans))
}

func TestSpanQueries(t *testing.T) {
	e := NewEditable("click here")
	var clicked int
	link := Interactable{OnClick: func(_ *Editable, pos int) { clicked = pos }}
	e.AddSpan(Span{Start: 6, End: 10, Attr: link})
	e.AddSpan(Span{Start: 0, End: 100, Attr: FontAttr{Weight: 700}})

	spans := e.SpansAt(7)
	require.Len(t, spans, 2)
	assert.Equal(t, KindInteractable, spans[0].Kind())
	assert.Equal(t, 10, spans[1].End, "clamped to text length")

	spans[0].Attr.(Interactable).OnClick(e, 7)
	assert.Equal(t, 7, clicked)

	assert.Equal(t, 1, e.RemoveSpans(func(s Span) bool { return s.Kind() == KindFont }))
	e.ClearSpans()
	assert.Empty(t, e.Spans())
}

func TestWatcherRemovesItselfDuringDispatch(t *testing.T) {
	e := NewEditable("")
	var first, second int
	var h1 = e.AddWatcher(WatcherFunc(func(e *Editable, _ Change) {
		first++
	}))
	e.AddWatcher(WatcherFunc(func(e *Editable, _ Change) {
		second++
		e.RemoveWatcher(h1)
	}))

	e.Append("a")
	e.Append("b")
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestUndoRedo(t *testing.T) {
	e := NewEditable("abc")
	e.Append("def")
	e.Remove(0, 1)
	assert.Equal(t, "bcdef", e.String())

	require.True(t, e.Undo())
	assert.Equal(t, "abcdef", e.String())
	require.True(t, e.Undo())
	assert.Equal(t, "abc", e.String())
	assert.False(t, e.Undo())

	require.True(t, e.Redo())
	assert.Equal(t, "abcdef", e.String())

	e.Append("!")
	assert.False(t, e.CanRedo(), "a new edit clears redo")

	e.SetMaxUndo(0)
	e.Append("?")
	assert.False(t, e.CanUndo())
}

func TestSurrogatesCountAsTwoUnits(t *testing.T) {
	e := NewEditable("A\U0001F600B")
	assert.Equal(t, 4, e.Len())
	assert.Equal(t, "\U0001F600", e.Slice(1, 3))
}
