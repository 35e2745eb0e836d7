package retained

import "github.com/agiangrant/viewkit/geom"

// LayoutSize is a view's requested size along one axis. Non-negative values
// are a defined size in pixels; the negative constants select a policy.
type LayoutSize float32

const (
	// Auto sizes the view to its content.
	Auto LayoutSize = -1
	// Fill takes all the space the container offers.
	Fill LayoutSize = -2
	// Free measures the view without any bound.
	Free LayoutSize = -3
)

// IsDefined reports whether s is a size in pixels.
func (s LayoutSize) IsDefined() bool { return s >= 0 }

func (s LayoutSize) String() string {
	switch s {
	case Auto:
		return "auto"
	case Fill:
		return "fill"
	case Free:
		return "free"
	}
	if s.IsDefined() {
		return "defined"
	}
	return "invalid"
}

// SizeMode is how a SizeValue constrains measurement.
type SizeMode uint8

const (
	// Defined demands exactly Val.
	Defined SizeMode = iota
	// Content allows at most Val, sized to content.
	Content
	// Freedom imposes no bound.
	Freedom
)

// SizeValue constrains one axis of a measurement.
type SizeValue struct {
	Val  float32
	Mode SizeMode
}

// Exactly returns a Defined constraint.
func Exactly(v float32) SizeValue { return SizeValue{Val: max(v, 0), Mode: Defined} }

// AtMost returns a Content constraint.
func AtMost(v float32) SizeValue { return SizeValue{Val: max(v, 0), Mode: Content} }

// Unbounded returns a Freedom constraint.
func Unbounded() SizeValue { return SizeValue{Mode: Freedom} }

// SizeInfo is the constraint a container passes to a child's Measure.
type SizeInfo struct {
	Width, Height SizeValue
}

// Axis returns the constraint along axis a.
func (s SizeInfo) Axis(a Axis) SizeValue {
	if a == Horizontal {
		return s.Width
	}
	return s.Height
}

// Axis selects horizontal or vertical.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// ResolveSize picks the final size for content measured at content under
// constraint sv.
func ResolveSize(content float32, sv SizeValue) float32 {
	switch sv.Mode {
	case Defined:
		return sv.Val
	case Content:
		return min(content, sv.Val)
	}
	return content
}

// ChildSizeValue derives a child's constraint from its container's
// constraint sv, the space used around the child (paddings and margins),
// and the child's requested size.
func ChildSizeValue(sv SizeValue, used float32, ls LayoutSize) SizeValue {
	avail := max(sv.Val-used, 0)
	switch {
	case ls.IsDefined():
		return Exactly(float32(ls))
	case ls == Fill:
		switch sv.Mode {
		case Defined:
			return Exactly(avail)
		case Content:
			return AtMost(avail)
		}
		return Unbounded()
	case ls == Auto:
		if sv.Mode == Freedom {
			return Unbounded()
		}
		return AtMost(avail)
	}
	return Unbounded()
}

func axisPadding(p geom.Padding, a Axis) (lead, trail float32) {
	if a == Horizontal {
		return p.Start, p.End
	}
	return p.Top, p.Bottom
}

func rectSpan(r geom.Rect, a Axis) (lo, hi float32) {
	if a == Horizontal {
		return r.Left, r.Right
	}
	return r.Top, r.Bottom
}

func sizeAlong(s geom.Size, a Axis) float32 {
	if a == Horizontal {
		return s.Width
	}
	return s.Height
}
