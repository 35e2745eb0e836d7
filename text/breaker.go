package text

import (
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/rivo/uniseg"
)

// Breaker moves a position through UTF-16 text by some unit.
// Positions never land inside a surrogate pair or between CR and LF.
type Breaker interface {
	SetText(units []uint16)
	// SetPos moves to pos, clamped and snapped back to a unit boundary.
	SetPos(pos int)
	Pos() int
	// Next moves forward one unit and reports whether it moved.
	Next() bool
	// Prev moves back one unit and reports whether it moved.
	Prev() bool
}

func isHigh(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLow(u uint16) bool  { return u >= 0xDC00 && u <= 0xDFFF }

// atomicPair reports whether units[i-1] and units[i] must not be split.
func atomicPair(units []uint16, i int) bool {
	if i <= 0 || i >= len(units) {
		return false
	}
	a, b := units[i-1], units[i]
	return (isHigh(a) && isLow(b)) || (a == '\r' && b == '\n')
}

func snap(units []uint16, pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(units) {
		return len(units)
	}
	if atomicPair(units, pos) {
		return pos - 1
	}
	return pos
}

// CharacterBreaker steps one character at a time. A surrogate pair or a
// CRLF sequence counts as one character.
type CharacterBreaker struct {
	units []uint16
	pos   int
}

func (b *CharacterBreaker) SetText(units []uint16) {
	b.units = units
	b.pos = snap(units, b.pos)
}

func (b *CharacterBreaker) SetPos(pos int) { b.pos = snap(b.units, pos) }
func (b *CharacterBreaker) Pos() int       { return b.pos }

func (b *CharacterBreaker) Next() bool {
	if b.pos >= len(b.units) {
		return false
	}
	b.pos++
	if atomicPair(b.units, b.pos) {
		b.pos++
	}
	return true
}

func (b *CharacterBreaker) Prev() bool {
	if b.pos <= 0 {
		return false
	}
	b.pos--
	if atomicPair(b.units, b.pos) {
		b.pos--
	}
	return true
}

// segment is a [start, end) range in code units.
type segment struct {
	start, end int
	space      bool
}

// boundaryBreaker walks precomputed segments.
type boundaryBreaker struct {
	units    []uint16
	segments []segment
	pos      int
	split    func(s string) []segStr
}

type segStr struct {
	text  string
	space bool
}

func (b *boundaryBreaker) setText(units []uint16) {
	b.units = units
	b.segments = b.segments[:0]
	start := 0
	for _, seg := range b.split(string(utf16.Decode(units))) {
		n := 0
		for _, r := range seg.text {
			n += utf16.RuneLen(r)
		}
		b.segments = append(b.segments, segment{start: start, end: start + n, space: seg.space})
		start += n
	}
	b.pos = snap(units, b.pos)
}

func (b *boundaryBreaker) SetPos(pos int) { b.pos = snap(b.units, pos) }
func (b *boundaryBreaker) Pos() int       { return b.pos }

// WordBreaker steps between words following UAX #29. Next moves to the
// end of the next word and Prev to the start of the previous one, skipping
// whitespace between them.
type WordBreaker struct {
	boundaryBreaker
}

func (b *WordBreaker) SetText(units []uint16) {
	b.split = splitWords
	b.setText(units)
}

func (b *WordBreaker) Next() bool {
	for _, s := range b.segments {
		if s.end <= b.pos || s.space {
			continue
		}
		b.pos = s.end
		return true
	}
	if b.pos < len(b.units) {
		b.pos = len(b.units)
		return true
	}
	return false
}

func (b *WordBreaker) Prev() bool {
	for i := len(b.segments) - 1; i >= 0; i-- {
		s := b.segments[i]
		if s.start >= b.pos || s.space {
			continue
		}
		b.pos = s.start
		return true
	}
	if b.pos > 0 {
		b.pos = 0
		return true
	}
	return false
}

// WordAt returns the word segment containing pos, for double-click
// selection. A position between words selects the following segment.
func (b *WordBreaker) WordAt(pos int) (start, end int) {
	pos = snap(b.units, pos)
	for _, s := range b.segments {
		if pos >= s.start && pos < s.end {
			return s.start, s.end
		}
	}
	return pos, pos
}

func splitWords(s string) []segStr {
	var out []segStr
	state := -1
	for len(s) > 0 {
		var word string
		word, s, state = uniseg.FirstWordInString(s, state)
		out = append(out, segStr{text: word, space: isSpace(word)})
	}
	return out
}

func isSpace(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// ParagraphBreaker steps between paragraphs, the text between mandatory
// line breaks (LF, CR, CRLF, NEL, LS, PS).
type ParagraphBreaker struct {
	boundaryBreaker
}

func (b *ParagraphBreaker) SetText(units []uint16) {
	b.split = splitParagraphs
	b.setText(units)
}

// Next moves to the start of the next paragraph, or to the end of text.
func (b *ParagraphBreaker) Next() bool {
	for _, s := range b.segments {
		if s.end > b.pos {
			b.pos = s.end
			return true
		}
	}
	return false
}

// Prev moves to the start of the current paragraph, or of the previous one
// when already at a paragraph start.
func (b *ParagraphBreaker) Prev() bool {
	for i := len(b.segments) - 1; i >= 0; i-- {
		if s := b.segments[i]; s.start < b.pos {
			b.pos = s.start
			return true
		}
	}
	return false
}

// Paragraph returns the [start, end) range of the paragraph containing pos,
// including its trailing break.
func (b *ParagraphBreaker) Paragraph(pos int) (start, end int) {
	pos = snap(b.units, pos)
	for _, s := range b.segments {
		if pos >= s.start && pos < s.end {
			return s.start, s.end
		}
	}
	if n := len(b.segments); n > 0 {
		return b.segments[n-1].start, b.segments[n-1].end
	}
	return 0, 0
}

func splitParagraphs(s string) []segStr {
	var out []segStr
	var para string
	state := -1
	for len(s) > 0 {
		var seg string
		var mustBreak bool
		seg, s, mustBreak, state = uniseg.FirstLineSegmentInString(s, state)
		para += seg
		if mustBreak && len(s) > 0 {
			out = append(out, segStr{text: para})
			para = ""
		}
	}
	if para != "" {
		out = append(out, segStr{text: para})
	}
	return out
}

var (
	_ Breaker = (*CharacterBreaker)(nil)
	_ Breaker = (*WordBreaker)(nil)
	_ Breaker = (*ParagraphBreaker)(nil)
)
