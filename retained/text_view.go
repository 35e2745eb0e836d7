package retained

import (
	"time"
	"unicode"

	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/internal/observer"
	"github.com/agiangrant/viewkit/render"
	"github.com/agiangrant/viewkit/text"
	"github.com/agiangrant/viewkit/vsync"
	"github.com/chewxy/math32"
)

// textLine is one line of a TextView in code units. end excludes the line
// terminator.
type textLine struct {
	start, end int
}

// TextView shows an Editable and, when editable, lets the user change it
// with the mouse and keyboard.
type TextView struct {
	View

	editable *text.Editable
	watch    observer.Handle
	lines    []textLine

	size       float32
	color      geom.Color
	selColor   geom.Color
	caretColor geom.Color

	editableOn bool
	selectable bool
	multiline  bool

	anchor   int // fixed end of the selection
	cursor   int // moving end of the selection
	dragging bool

	caretOn bool
	blinkAt time.Time
	blink   *vsync.Func

	chars text.CharacterBreaker
	words text.WordBreaker

	actionMenu *ContextMenu
}

// NewTextView returns an editable, multi-line text view showing s.
func NewTextView(c Context, s string) *TextView {
	t := &TextView{
		editable:   text.NewEditable(s),
		size:       DefaultTextSize,
		color:      geom.Black,
		selColor:   geom.RGBA(0x3390ff66),
		caretColor: geom.Black,
		editableOn: true,
		selectable: true,
		multiline:  true,
	}
	t.Init(c, t)
	t.focusable = true
	t.mouseCapturable = true
	t.blink = vsync.NewFunc(t.onBlink)
	t.watch = t.editable.AddWatcher(text.WatcherFunc(t.onEditChanged))
	t.anchor = t.editable.Selection().Start
	t.cursor = t.editable.Selection().End
	return t
}

// Editable returns the text model.
func (t *TextView) Editable() *text.Editable { return t.editable }

func (t *TextView) Text() string      { return t.editable.String() }
func (t *TextView) SetText(s string)  { t.editable.SetText(s) }
func (t *TextView) TextSize() float32 { return t.size }

func (t *TextView) SetTextSize(size float32) {
	if size > 0 && size != t.size {
		t.size = size
		t.RequestLayout()
	}
}

func (t *TextView) SetTextColor(c geom.Color) {
	t.color = c
	t.RequestDraw()
}

func (t *TextView) IsEditable() bool { return t.editableOn }

// SetEditable turns editing on or off. Read-only views are not focusable.
func (t *TextView) SetEditable(on bool) {
	t.editableOn = on
	t.focusable = on
	if !on {
		t.DiscardFocus()
	}
}

// SetSelectable controls mouse selection. Views that are neither editable
// nor selectable leave pointer events to their click handler.
func (t *TextView) SetSelectable(on bool) {
	t.selectable = on
	t.mouseCapturable = on
}

// SetMultiline controls whether Enter inserts a line break.
func (t *TextView) SetMultiline(on bool) { t.multiline = on }

// CaretVisible reports whether the blinking caret is currently drawn.
func (t *TextView) CaretVisible() bool {
	return t.caretOn && t.editableOn && t.HasFocus() && t.editable.Selection().Empty()
}

// --- layout ---

func (t *TextView) textLines() []textLine {
	if t.lines != nil {
		return t.lines
	}
	units := t.editable.Units()
	start := 0
	for i := 0; i < len(units); i++ {
		switch units[i] {
		case '\r':
			t.lines = append(t.lines, textLine{start, i})
			if i+1 < len(units) && units[i+1] == '\n' {
				i++
			}
			start = i + 1
		case '\n':
			t.lines = append(t.lines, textLine{start, i})
			start = i + 1
		}
	}
	t.lines = append(t.lines, textLine{start, len(units)})
	return t.lines
}

func (t *TextView) lineHeight() float32 { return t.ctx.Measurer().LineHeight(t.size) }

func (t *TextView) widthOf(start, end int) float32 {
	if end <= start {
		return 0
	}
	return t.ctx.Measurer().MeasureText(t.editable.Slice(start, end), t.size).Width
}

func (t *TextView) OnDetermineSize(info SizeInfo) geom.Size {
	var w float32
	lines := t.textLines()
	for _, l := range lines {
		w = max(w, t.widthOf(l.start, l.end))
	}
	h := float32(len(lines)) * t.lineHeight()
	return geom.Size{
		Width:  ResolveSize(math32.Ceil(w)+t.padding.Horizontal(), info.Width),
		Height: ResolveSize(h+t.padding.Vertical(), info.Height),
	}
}

// lineOf returns the index of the line holding offset pos.
func (t *TextView) lineOf(pos int) int {
	lines := t.textLines()
	for i, l := range lines {
		if pos <= l.end {
			return i
		}
	}
	return len(lines) - 1
}

// OffsetAt returns the character boundary nearest to p, in local
// coordinates.
func (t *TextView) OffsetAt(p geom.Point) int {
	lines := t.textLines()
	i := int(math32.Floor((p.Y - t.padding.Top) / t.lineHeight()))
	i = max(0, min(i, len(lines)-1))
	return t.offsetInLine(lines[i], p.X-t.padding.Start)
}

func (t *TextView) offsetInLine(l textLine, x float32) int {
	t.chars.SetText(t.editable.Units())
	t.chars.SetPos(l.start)
	best, bestDist := l.start, math32.Abs(x)
	for t.chars.Next() && t.chars.Pos() <= l.end {
		pos := t.chars.Pos()
		d := math32.Abs(x - t.widthOf(l.start, pos))
		if d < bestDist {
			best, bestDist = pos, d
		}
	}
	return best
}

// CaretRect returns the caret rectangle in local coordinates.
func (t *TextView) CaretRect() geom.Rect {
	lines := t.textLines()
	i := t.lineOf(t.cursor)
	x := t.padding.Start + t.widthOf(lines[i].start, t.cursor)
	y := t.padding.Top + float32(i)*t.lineHeight()
	return geom.XYWH(x, y, 1, t.lineHeight())
}

// --- drawing ---

func (t *TextView) OnDraw(c render.Canvas) {
	lh := t.lineHeight()
	sel := t.editable.Selection()
	for i, l := range t.textLines() {
		y := t.padding.Top + float32(i)*lh
		if !sel.Empty() {
			s, e := max(sel.Start, l.start), min(sel.End, l.end)
			if s < e || (s == e && sel.Start <= l.start && sel.End > l.end) {
				x0 := t.padding.Start + t.widthOf(l.start, s)
				x1 := t.padding.Start + t.widthOf(l.start, e)
				if s == e {
					x1 = x0 + lh/3 // selected line break
				}
				c.FillRect(geom.Rect{Left: x0, Top: y, Right: x1, Bottom: y + lh}, t.selColor)
			}
		}
		if l.end > l.start {
			c.DrawText(t.editable.Slice(l.start, l.end), geom.Pt(t.padding.Start, y), t.size, t.color)
		}
	}
	if t.CaretVisible() {
		c.FillRect(t.CaretRect(), t.caretColor)
	}
}

// --- editing model ---

func (t *TextView) onEditChanged(_ *text.Editable, ch text.Change) {
	if ch.Reason.Has(text.ReasonText) {
		t.lines = nil
		t.RequestLayout()
	}
	sel := t.editable.Selection()
	t.anchor, t.cursor = sel.Start, sel.End
	t.resetBlink()
	t.RequestDraw()
}

// moveTo moves the cursor to pos, extending the selection from the anchor
// when extend is set.
func (t *TextView) moveTo(pos int, extend bool) {
	anchor := pos
	if extend {
		anchor = t.anchor
	}
	t.editable.SetSelection(anchor, pos)
	t.anchor, t.cursor = anchor, pos
	t.resetBlink()
}

func (t *TextView) stepChar(from int, forward bool) int {
	t.chars.SetText(t.editable.Units())
	t.chars.SetPos(from)
	if forward {
		t.chars.Next()
	} else {
		t.chars.Prev()
	}
	return t.chars.Pos()
}

func (t *TextView) stepWord(from int, forward bool) int {
	t.words.SetText(t.editable.Units())
	t.words.SetPos(from)
	if forward {
		t.words.Next()
	} else {
		t.words.Prev()
	}
	return t.words.Pos()
}

func (t *TextView) step(from int, forward, word bool) int {
	if word {
		return t.stepWord(from, forward)
	}
	return t.stepChar(from, forward)
}

// SelectWordAt selects the word around pos.
func (t *TextView) SelectWordAt(pos int) {
	t.words.SetText(t.editable.Units())
	s, e := t.words.WordAt(pos)
	t.editable.SetSelection(s, e)
	t.anchor, t.cursor = s, e
}

// Copy puts the selection on the application clipboard.
func (t *TextView) Copy() bool {
	s := t.editable.SelectedText()
	if s == "" {
		return false
	}
	t.ctx.App().SetClipboard(s)
	return true
}

// Cut copies and removes the selection.
func (t *TextView) Cut() bool {
	if !t.editableOn || !t.Copy() {
		return false
	}
	t.editable.RemoveSelection()
	return true
}

// Paste replaces the selection with the clipboard.
func (t *TextView) Paste() bool {
	clip := t.ctx.App().Clipboard()
	if !t.editableOn || clip == "" {
		return false
	}
	t.editable.ReplaceSelection(clip)
	return true
}

// --- caret blink ---

func (t *TextView) resetBlink() {
	t.caretOn = true
	t.blinkAt = t.ctx.App().Now()
}

func (t *TextView) onBlink(start time.Time, _ float64, _ time.Duration) {
	if start.Sub(t.blinkAt) < t.ctx.Config().CaretBlinkInterval() {
		return
	}
	t.caretOn = !t.caretOn
	t.blinkAt = start
	t.RequestDraw()
}

func (t *TextView) OnFocusChanged(focused bool) {
	if focused && t.editableOn {
		t.resetBlink()
		t.StartVSync(t.blink)
		return
	}
	t.StopVSync(t.blink)
	t.caretOn = false
	t.dragging = false
}

func (t *TextView) OnDestroy() {
	t.editable.RemoveWatcher(t.watch)
}

// --- input ---

func (t *TextView) OnInputEvent(e *InputEvent) bool {
	if e.IsKeyboard() {
		return t.onKey(e)
	}
	if !t.selectable || e.Outside {
		return false
	}
	switch e.Type {
	case EventDown:
		t.RequestFocus()
		if e.Button == MouseButtonRight {
			t.ShowActionMenu(geom.Pt(e.RawX, e.RawY))
			return true
		}
		pos := t.OffsetAt(geom.Pt(e.X, e.Y))
		if e.Clicks >= 2 {
			t.SelectWordAt(pos)
		} else {
			t.moveTo(pos, e.Mods.Shift())
		}
		t.dragging = true
		return true
	case EventMove:
		if !t.dragging {
			return false
		}
		t.moveTo(t.OffsetAt(geom.Pt(e.X, e.Y)), true)
		return true
	case EventUp:
		was := t.dragging
		t.dragging = false
		return was
	case EventCancel:
		t.dragging = false
	}
	return false
}

func (t *TextView) onKey(e *InputEvent) bool {
	switch e.Type {
	case EventChar:
		if !t.editableOn || e.Mods.Ctrl() || !unicode.IsPrint(e.Char) {
			return false
		}
		t.editable.ReplaceSelection(string(e.Char))
		return true
	case EventKeyDown:
	default:
		return false
	}

	sel := t.editable.Selection()
	shift, ctrl := e.Mods.Shift(), e.Mods.Ctrl()
	switch e.Key {
	case KeyLeft, KeyRight:
		forward := e.Key == KeyRight
		switch {
		case !shift && !sel.Empty():
			if forward {
				t.moveTo(sel.End, false)
			} else {
				t.moveTo(sel.Start, false)
			}
		default:
			t.moveTo(t.step(t.cursor, forward, ctrl), shift)
		}
	case KeyUp, KeyDown:
		lines := t.textLines()
		i := t.lineOf(t.cursor)
		j := i - 1
		if e.Key == KeyDown {
			j = i + 1
		}
		if j < 0 || j >= len(lines) {
			return true
		}
		x := t.widthOf(lines[i].start, t.cursor)
		t.moveTo(t.offsetInLine(lines[j], x), shift)
	case KeyHome:
		t.moveTo(t.textLines()[t.lineOf(t.cursor)].start, shift)
	case KeyEnd:
		t.moveTo(t.textLines()[t.lineOf(t.cursor)].end, shift)
	case KeyBackspace, KeyDelete:
		if !t.editableOn {
			return false
		}
		if !sel.Empty() {
			t.editable.RemoveSelection()
			return true
		}
		other := t.step(t.cursor, e.Key == KeyDelete, ctrl)
		t.editable.Remove(min(other, t.cursor), max(other, t.cursor))
	case KeyEnter:
		if !t.editableOn || !t.multiline {
			return false
		}
		t.editable.ReplaceSelection("\n")
	case KeyA:
		if !ctrl {
			return false
		}
		t.editable.SelectAll()
	case KeyC:
		return ctrl && t.Copy()
	case KeyX:
		return ctrl && t.Cut()
	case KeyV:
		return ctrl && t.Paste()
	case KeyZ:
		return ctrl && t.editableOn && t.editable.Undo()
	case KeyY:
		return ctrl && t.editableOn && t.editable.Redo()
	default:
		return false
	}
	return true
}

// --- text action menu ---

// ShowActionMenu opens the cut/copy/paste menu at p (window coordinates).
func (t *TextView) ShowActionMenu(p geom.Point) bool {
	w := t.Window()
	if w == nil {
		return false
	}
	if t.actionMenu == nil {
		t.actionMenu = NewTextActionMenu(t)
	}
	items := t.actionMenu.Items()
	hasSel := !t.editable.Selection().Empty()
	items[0].SetEnabled(t.editableOn && hasSel)
	items[1].SetEnabled(hasSel)
	items[2].SetEnabled(t.editableOn && t.ctx.App().Clipboard() != "")
	items[3].SetEnabled(t.editable.Len() > 0)
	w.ShowTextActionMenu(t.actionMenu, p)
	return true
}

// NewTextActionMenu returns the Cut, Copy, Paste, Select All menu of tv.
func NewTextActionMenu(tv *TextView) *ContextMenu {
	m := NewContextMenu(tv.ctx)
	m.AddItem("Cut", func() { tv.Cut() })
	m.AddItem("Copy", func() { tv.Copy() })
	m.AddItem("Paste", func() { tv.Paste() })
	m.AddItem("Select All", func() { tv.editable.SelectAll() })
	return m
}
