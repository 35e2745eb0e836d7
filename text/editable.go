// Package text holds the editable text model and the breakers that move a
// caret through it.
//
// Offsets are UTF-16 code unit indices, the unit the platform text stacks
// measure in. An offset is always within [0, Len()].
package text

import (
	"unicode/utf16"

	"github.com/agiangrant/viewkit/internal/observer"
)

// Selection is the range [Start, End) with Start <= End. An empty
// selection is a caret at Start.
type Selection struct {
	Start, End int
}

// Empty reports whether the selection is a caret.
func (s Selection) Empty() bool { return s.Start == s.End }

// Len returns the selected length.
func (s Selection) Len() int { return s.End - s.Start }

// RangeChg describes one edit: [Pos, OldEnd) was replaced by [Pos, NewEnd).
type RangeChg struct {
	Pos, OldEnd, NewEnd int
}

// Delta returns the change in length.
func (c RangeChg) Delta() int { return c.NewEnd - c.OldEnd }

// Reason flags what a Change touched.
type Reason uint8

const (
	ReasonText Reason = 1 << iota
	ReasonSelection
	ReasonSpans
)

// Has reports whether all bits of o are set.
func (r Reason) Has(o Reason) bool { return r&o == o }

// Change is delivered to watchers once per mutating call.
type Change struct {
	Reason       Reason
	Range        RangeChg // valid when Reason has ReasonText
	OldSelection Selection
}

// Watcher observes edits.
type Watcher interface {
	OnEditChanged(e *Editable, c Change)
}

// WatcherFunc adapts a function to a Watcher.
type WatcherFunc func(e *Editable, c Change)

func (f WatcherFunc) OnEditChanged(e *Editable, c Change) { f(e, c) }

type snapshot struct {
	units     []uint16
	selection Selection
	spans     []Span
}

const defaultMaxUndo = 100

// Editable is a mutable UTF-16 string with a selection and spans.
// Out of range offsets are clamped; nothing here returns an error.
type Editable struct {
	units     []uint16
	selection Selection
	spans     []Span
	watchers  observer.Registry[Watcher]

	undo    []snapshot
	redo    []snapshot
	maxUndo int
}

// NewEditable returns an Editable holding s with the caret at the end.
func NewEditable(s string) *Editable {
	e := &Editable{maxUndo: defaultMaxUndo}
	e.units = utf16.Encode([]rune(s))
	e.selection = Selection{len(e.units), len(e.units)}
	return e
}

// String returns the text.
func (e *Editable) String() string { return string(utf16.Decode(e.units)) }

// Units returns a copy of the UTF-16 buffer.
func (e *Editable) Units() []uint16 { return append([]uint16(nil), e.units...) }

// Len returns the length in code units.
func (e *Editable) Len() int { return len(e.units) }

// Slice returns the text in [start, end).
func (e *Editable) Slice(start, end int) string {
	start, end = e.clampRange(start, end)
	return string(utf16.Decode(e.units[start:end]))
}

// Selection returns the current selection.
func (e *Editable) Selection() Selection { return e.selection }

// SelectedText returns the text under the selection.
func (e *Editable) SelectedText() string {
	return e.Slice(e.selection.Start, e.selection.End)
}

// AddWatcher registers w and returns its handle.
func (e *Editable) AddWatcher(w Watcher) observer.Handle { return e.watchers.Add(w) }

// RemoveWatcher unregisters a watcher. It is safe to call from inside
// OnEditChanged.
func (e *Editable) RemoveWatcher(h observer.Handle) { e.watchers.Remove(h) }

// SetMaxUndo bounds the undo history; 0 disables it.
func (e *Editable) SetMaxUndo(n int) {
	e.maxUndo = n
	if len(e.undo) > n {
		e.undo = e.undo[len(e.undo)-n:]
	}
}

// SetText replaces the whole text and moves the caret to the end.
func (e *Editable) SetText(s string) {
	e.replace(0, len(e.units), s, true)
}

// Insert inserts s at pos.
func (e *Editable) Insert(pos int, s string) {
	pos = e.clamp(pos)
	e.replace(pos, pos, s, false)
}

// Append inserts s at the end.
func (e *Editable) Append(s string) { e.Insert(len(e.units), s) }

// Remove deletes [start, end).
func (e *Editable) Remove(start, end int) {
	start, end = e.clampRange(start, end)
	e.replace(start, end, "", false)
}

// Replace replaces [start, end) with s.
func (e *Editable) Replace(start, end int, s string) {
	start, end = e.clampRange(start, end)
	e.replace(start, end, s, false)
}

// Clear removes all text and spans.
func (e *Editable) Clear() {
	e.replace(0, len(e.units), "", true)
}

// InsertAtSelection inserts s at the end of the selection and places the
// caret after it.
func (e *Editable) InsertAtSelection(s string) {
	pos := e.selection.End
	e.replace(pos, pos, s, true)
}

// ReplaceSelection replaces the selected text with s and places the caret
// after it.
func (e *Editable) ReplaceSelection(s string) {
	e.replace(e.selection.Start, e.selection.End, s, true)
}

// RemoveSelection deletes the selected text.
func (e *Editable) RemoveSelection() {
	if e.selection.Empty() {
		return
	}
	e.replace(e.selection.Start, e.selection.End, "", true)
}

// SetSelection selects [start, end). Both ends are clamped to [0, Len()]
// and swapped if reversed.
func (e *Editable) SetSelection(start, end int) {
	sel := e.normalize(start, end)
	if sel == e.selection {
		return
	}
	old := e.selection
	e.selection = sel
	e.notify(Change{Reason: ReasonSelection, OldSelection: old})
}

// SetCaret collapses the selection to pos.
func (e *Editable) SetCaret(pos int) { e.SetSelection(pos, pos) }

// SelectAll selects the whole text.
func (e *Editable) SelectAll() { e.SetSelection(0, len(e.units)) }

// Spans returns a copy of the spans in insertion order.
func (e *Editable) Spans() []Span { return append([]Span(nil), e.spans...) }

// SpansAt returns the spans covering pos.
func (e *Editable) SpansAt(pos int) []Span {
	var out []Span
	for _, s := range e.spans {
		if s.Contains(pos) {
			out = append(out, s)
		}
	}
	return out
}

// AddSpan clamps s to the text and adds it. Empty spans are ignored.
func (e *Editable) AddSpan(s Span) bool {
	if s.Attr == nil {
		return false
	}
	sel := e.normalize(s.Start, s.End)
	s.Start, s.End = sel.Start, sel.End
	if s.Empty() {
		return false
	}
	e.spans = append(e.spans, s)
	e.notify(Change{Reason: ReasonSpans, OldSelection: e.selection})
	return true
}

// RemoveSpans removes every span for which match returns true.
func (e *Editable) RemoveSpans(match func(Span) bool) int {
	kept := e.spans[:0]
	for _, s := range e.spans {
		if !match(s) {
			kept = append(kept, s)
		}
	}
	n := len(e.spans) - len(kept)
	for i := len(kept); i < len(e.spans); i++ {
		e.spans[i] = Span{}
	}
	e.spans = kept
	if n > 0 {
		e.notify(Change{Reason: ReasonSpans, OldSelection: e.selection})
	}
	return n
}

// ClearSpans removes all spans.
func (e *Editable) ClearSpans() {
	e.RemoveSpans(func(Span) bool { return true })
}

// CanUndo reports whether Undo has anything to restore.
func (e *Editable) CanUndo() bool { return len(e.undo) > 0 }

// CanRedo reports whether Redo has anything to restore.
func (e *Editable) CanRedo() bool { return len(e.redo) > 0 }

// Undo restores the state before the last text edit.
func (e *Editable) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	prev := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, e.snapshot())
	e.restore(prev)
	return true
}

// Redo reapplies the last undone edit.
func (e *Editable) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	next := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, e.snapshot())
	e.restore(next)
	return true
}

func (e *Editable) snapshot() snapshot {
	return snapshot{
		units:     append([]uint16(nil), e.units...),
		selection: e.selection,
		spans:     append([]Span(nil), e.spans...),
	}
}

func (e *Editable) restore(s snapshot) {
	old := e.selection
	c := RangeChg{Pos: 0, OldEnd: len(e.units), NewEnd: len(s.units)}
	e.units = s.units
	e.selection = s.selection
	e.spans = s.spans
	e.notify(Change{Reason: ReasonText | ReasonSelection | ReasonSpans, Range: c, OldSelection: old})
}

func (e *Editable) pushUndo() {
	if e.maxUndo <= 0 {
		return
	}
	e.undo = append(e.undo, e.snapshot())
	if len(e.undo) > e.maxUndo {
		e.undo = e.undo[1:]
	}
	e.redo = nil
}

// replace is the single mutation path. start and end are already valid.
// When caret is set the selection collapses after the inserted text;
// otherwise it is carried across the edit like the spans.
func (e *Editable) replace(start, end int, s string, caret bool) {
	ins := utf16.Encode([]rune(s))
	if start == end && len(ins) == 0 {
		return
	}
	e.pushUndo()

	c := RangeChg{Pos: start, OldEnd: end, NewEnd: start + len(ins)}
	units := make([]uint16, 0, len(e.units)-(end-start)+len(ins))
	units = append(units, e.units[:start]...)
	units = append(units, ins...)
	units = append(units, e.units[end:]...)
	e.units = units

	old := e.selection
	reason := ReasonText
	if caret {
		e.selection = Selection{c.NewEnd, c.NewEnd}
	} else {
		e.selection = e.normalize(mapOffset(old.Start, c, false), mapOffset(old.End, c, false))
	}
	if e.selection != old {
		reason |= ReasonSelection
	}
	before := len(e.spans)
	e.spans = adjustSpans(e.spans, c)
	if len(e.spans) != before {
		reason |= ReasonSpans
	}
	e.notify(Change{Reason: reason, Range: c, OldSelection: old})
}

func (e *Editable) notify(c Change) {
	e.watchers.Each(func(w Watcher) { w.OnEditChanged(e, c) })
}

func (e *Editable) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(e.units) {
		return len(e.units)
	}
	return pos
}

func (e *Editable) clampRange(start, end int) (int, int) {
	s := e.normalize(start, end)
	return s.Start, s.End
}

func (e *Editable) normalize(start, end int) Selection {
	start, end = e.clamp(start), e.clamp(end)
	if start > end {
		start, end = end, start
	}
	return Selection{start, end}
}
