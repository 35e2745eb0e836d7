package text

import "github.com/agiangrant/viewkit/geom"

// SpanKind classifies span attributes.
type SpanKind int

const (
	KindFont SpanKind = iota
	KindEffect
	KindInlineObject
	KindInteractable
)

func (k SpanKind) String() string {
	switch k {
	case KindFont:
		return "font"
	case KindEffect:
		return "effect"
	case KindInlineObject:
		return "inline-object"
	case KindInteractable:
		return "interactable"
	}
	return "unknown"
}

// Attr is the payload of a Span. It is one of FontAttr, EffectAttr,
// InlineObject or Interactable.
type Attr interface {
	Kind() SpanKind
}

// FontAttr overrides font attributes for a range. Zero fields inherit.
type FontAttr struct {
	Family    string
	Size      float32
	Weight    int
	Italic    bool
	Underline bool
	Strike    bool
}

func (FontAttr) Kind() SpanKind { return KindFont }

// EffectAttr overrides drawing colors for a range.
type EffectAttr struct {
	Color      geom.Color
	Background geom.Color
}

func (EffectAttr) Kind() SpanKind { return KindEffect }

// InlineObject reserves space for a non-text object laid out inline.
type InlineObject struct {
	Size     geom.Size
	Baseline float32
}

func (InlineObject) Kind() SpanKind { return KindInlineObject }

// Interactable makes a range respond to clicks, like a link.
type Interactable struct {
	OnClick func(e *Editable, pos int)
}

func (Interactable) Kind() SpanKind { return KindInteractable }

// Span annotates the character range [Start, End).
type Span struct {
	Start, End int
	Attr       Attr
}

// Kind returns the kind of the span's attribute.
func (s Span) Kind() SpanKind { return s.Attr.Kind() }

// Contains reports whether pos lies in the span.
func (s Span) Contains(pos int) bool { return pos >= s.Start && pos < s.End }

// Empty reports whether the span covers nothing.
func (s Span) Empty() bool { return s.End <= s.Start }

// mapOffset moves an offset across an edit. Text inserted exactly at a
// span's start is outside the span; text inserted at its end is inside.
// Offsets inside a replaced region move to its edges.
func mapOffset(x int, c RangeChg, isEnd bool) int {
	switch {
	case x < c.Pos:
		return x
	case x >= c.OldEnd:
		return x + c.NewEnd - c.OldEnd
	case isEnd:
		return c.Pos
	default:
		return c.NewEnd
	}
}

func adjustSpans(spans []Span, c RangeChg) []Span {
	out := spans[:0]
	for _, s := range spans {
		s.Start = mapOffset(s.Start, c, false)
		s.End = mapOffset(s.End, c, true)
		if !s.Empty() {
			out = append(out, s)
		}
	}
	return out
}
