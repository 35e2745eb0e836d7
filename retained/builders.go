package retained

import (
	"image"

	"github.com/agiangrant/viewkit/geom"
)

// Builder helpers for common view patterns.
// These provide a fluent way to construct view trees in code:
//
//	VStack(c,
//		Sized(Label(c, "Title"), Fill, Auto),
//		Weighted(Sized(NewView(c), Fill, Fill), 1),
//	)

// VStack returns a vertical SequenceLayout holding children.
func VStack(c Context, children ...Widget) *SequenceLayout {
	s := NewSequenceLayout(c, Vertical)
	addAll(&s.LayoutView, children)
	return s
}

// HStack returns a horizontal SequenceLayout holding children.
func HStack(c Context, children ...Widget) *SequenceLayout {
	s := NewSequenceLayout(c, Horizontal)
	addAll(&s.LayoutView, children)
	return s
}

// Frame returns a LayoutView stacking children at its top-left corner,
// offset by their margins.
func Frame(c Context, children ...Widget) *LayoutView {
	l := NewLayoutView(c)
	addAll(l, children)
	return l
}

// Restraint returns a RestraintLayout filling its parent. Handles are
// attached with Restrain.
func Restraint(c Context, children ...Widget) *RestraintLayout {
	r := NewRestraintLayout(c)
	r.SetLayoutSize(Fill, Fill)
	addAll(&r.LayoutView, children)
	return r
}

func addAll(l *LayoutView, children []Widget) {
	for _, child := range children {
		l.AddView(child)
	}
}

// Label returns a read-only, single line TextView.
func Label(c Context, s string) *TextView {
	t := NewTextView(c, s)
	t.SetEditable(false)
	t.SetMultiline(false)
	return t
}

// Field returns an editable, single line TextView.
func Field(c Context, s string) *TextView {
	t := NewTextView(c, s)
	t.SetMultiline(false)
	return t
}

// Picture returns an ImageView scaling img to fit.
func Picture(c Context, img image.Image) *ImageView {
	return NewImageView(c, img)
}

// WithID sets w's id and returns w.
func WithID[W Widget](w W, id int) W {
	w.AsView().SetID(id)
	return w
}

// Sized sets w's layout size and returns w.
func Sized[W Widget](w W, width, height LayoutSize) W {
	w.AsView().SetLayoutSize(width, height)
	return w
}

// Padded sets the same padding on every side of w and returns w.
func Padded[W Widget](w W, p float32) W {
	w.AsView().SetPadding(geom.Uniform(p))
	return w
}

// Spaced sets w's margin and returns w.
func Spaced[W Widget](w W, m geom.Margin) W {
	w.AsView().SetMargin(m)
	return w
}

// Colored gives w a solid background and returns w.
func Colored[W Widget](w W, c geom.Color) W {
	w.AsView().SetBackground(NewColorElement(c))
	return w
}

// Weighted sets w's share of a SequenceLayout's leftover space and returns w.
func Weighted[W Widget](w W, weight float32) W {
	v := w.AsView()
	info := sequenceInfo(v)
	info.Weight = weight
	v.SetLayoutInfo(&info)
	return w
}

// Aligned sets w's cross axis gravity in a SequenceLayout and returns w.
func Aligned[W Widget](w W, g Gravity) W {
	v := w.AsView()
	info := sequenceInfo(v)
	info.Gravity = g
	v.SetLayoutInfo(&info)
	return w
}

// Restrain attaches handles to w through fn and returns w. w must already
// be a child of r.
func Restrain[W Widget](r *RestraintLayout, w W, fn func(ri *RestraintLayoutInfo)) W {
	fn(r.Info(w))
	r.RequestLayout()
	return w
}
