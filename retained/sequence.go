package retained

import (
	"github.com/agiangrant/viewkit/geom"
)

// Gravity aligns a child on a SequenceLayout's cross axis.
type Gravity uint8

const (
	GravityStart Gravity = iota
	GravityCenter
	GravityEnd
	// GravityStretch sizes an Auto child to the full cross extent once the
	// layout knows it.
	GravityStretch
)

// SequenceLayoutInfo is the per-child data of a SequenceLayout.
type SequenceLayoutInfo struct {
	// Weight shares the space left over on the main axis among weighted
	// children, in proportion. A Fill child without weight counts as 1.
	Weight  float32
	Gravity Gravity
}

// SequenceLayout stacks children one after another along an axis.
type SequenceLayout struct {
	LayoutView

	orientation Axis
	gap         float32

	sizes []geom.Size // per child, from the last arrange
}

// NewSequenceLayout returns a layout stacking along orientation.
func NewSequenceLayout(c Context, orientation Axis) *SequenceLayout {
	s := &SequenceLayout{orientation: orientation}
	s.Init(c, s)
	return s
}

func (s *SequenceLayout) Orientation() Axis { return s.orientation }

func (s *SequenceLayout) SetOrientation(a Axis) {
	if s.orientation != a {
		s.orientation = a
		s.RequestLayout()
	}
}

// Gap returns the space between consecutive children.
func (s *SequenceLayout) Gap() float32 { return s.gap }

func (s *SequenceLayout) SetGap(gap float32) {
	gap = max(gap, 0)
	if s.gap != gap {
		s.gap = gap
		s.RequestLayout()
	}
}

func sequenceInfo(v *View) SequenceLayoutInfo {
	if si, ok := v.layoutInfo.(*SequenceLayoutInfo); ok && si != nil {
		return *si
	}
	return SequenceLayoutInfo{}
}

func (si SequenceLayoutInfo) weightFor(ls LayoutSize) float32 {
	if si.Weight > 0 {
		return si.Weight
	}
	if ls == Fill {
		return 1
	}
	return 0
}

func (s *SequenceLayout) OnDetermineSize(info SizeInfo) geom.Size {
	mainTotal, crossMax := s.arrange(info)
	var size [2]float32
	size[s.orientation] = mainTotal
	size[s.cross()] = crossMax
	return geom.Size{
		Width:  ResolveSize(size[Horizontal]+s.padding.Horizontal(), info.Width),
		Height: ResolveSize(size[Vertical]+s.padding.Vertical(), info.Height),
	}
}

func (s *SequenceLayout) OnLayout(changed bool, bounds geom.Rect) {
	s.arrange(SizeInfo{Width: Exactly(bounds.Width()), Height: Exactly(bounds.Height())})

	a, b := s.orientation, s.cross()
	crossLead, crossTrail := axisPadding(s.padding, b)
	crossExtent := sizeAlong(bounds.Size(), b) - crossLead - crossTrail
	cursor, _ := axisPadding(s.padding, a)

	first := true
	for i, c := range s.children {
		v := c.AsView()
		if v.visibility == Vanished {
			continue
		}
		if !first {
			cursor += s.gap
		}
		first = false

		mLead, mTrail := axisPadding(v.margin, a)
		cmLead, cmTrail := axisPadding(v.margin, b)
		sz := s.sizes[i]
		main, cross := sizeAlong(sz, a), sizeAlong(sz, b)

		free := crossExtent - cmLead - cmTrail - cross
		var off float32
		switch sequenceInfo(v).Gravity {
		case GravityCenter:
			off = free / 2
		case GravityEnd:
			off = free
		}
		cursor += mLead
		crossPos := crossLead + cmLead + max(off, 0)

		var r geom.Rect
		if a == Horizontal {
			r = geom.XYWH(cursor, crossPos, main, cross)
		} else {
			r = geom.XYWH(crossPos, cursor, cross, main)
		}
		v.Layout(r)
		cursor += main + mTrail
	}
}

func (s *SequenceLayout) cross() Axis {
	if s.orientation == Horizontal {
		return Vertical
	}
	return Horizontal
}

// arrange measures every child under info, distributing leftover main axis
// space to weighted children. It returns the content extent on both axes.
func (s *SequenceLayout) arrange(info SizeInfo) (mainTotal, crossMax float32) {
	a, b := s.orientation, s.cross()
	mainSV, crossSV := info.Axis(a), info.Axis(b)
	padMain := s.padding.Horizontal()
	padCross := s.padding.Vertical()
	if a == Vertical {
		padMain, padCross = padCross, padMain
	}

	if cap(s.sizes) < len(s.children) {
		s.sizes = make([]geom.Size, len(s.children))
	}
	s.sizes = s.sizes[:len(s.children)]
	clear(s.sizes)

	measure := func(v *View, main SizeValue) geom.Size {
		mLead, mTrail := axisPadding(v.margin, b)
		cross := ChildSizeValue(crossSV, padCross+mLead+mTrail, v.layoutSizeAlong(b))
		if sequenceInfo(v).Gravity == GravityStretch && v.layoutSizeAlong(b) == Auto && crossSV.Mode == Defined {
			cross = Exactly(cross.Val)
		}
		if a == Horizontal {
			return v.Measure(SizeInfo{Width: main, Height: cross})
		}
		return v.Measure(SizeInfo{Width: cross, Height: main})
	}

	distribute := mainSV.Mode != Freedom
	var used, totalWeight float32
	visible := 0
	for i, c := range s.children {
		v := c.AsView()
		if v.visibility == Vanished {
			continue
		}
		visible++
		mLead, mTrail := axisPadding(v.margin, a)
		used += mLead + mTrail
		ls := v.layoutSizeAlong(a)
		if w := sequenceInfo(v).weightFor(ls); w > 0 && distribute {
			totalWeight += w
			continue
		}
		main := ChildSizeValue(mainSV, padMain+mLead+mTrail, ls)
		if ls == Fill {
			main = Unbounded()
		}
		s.sizes[i] = measure(v, main)
		used += sizeAlong(s.sizes[i], a)
	}
	if visible > 1 {
		used += s.gap * float32(visible-1)
	}

	if totalWeight > 0 {
		remaining := max(mainSV.Val-padMain-used, 0)
		for i, c := range s.children {
			v := c.AsView()
			if v.visibility == Vanished {
				continue
			}
			w := sequenceInfo(v).weightFor(v.layoutSizeAlong(a))
			if w <= 0 {
				continue
			}
			share := remaining * w / totalWeight
			s.sizes[i] = measure(v, Exactly(share))
			used += share
		}
	}

	for i, c := range s.children {
		v := c.AsView()
		if v.visibility == Vanished {
			continue
		}
		mLead, mTrail := axisPadding(v.margin, b)
		crossMax = max(crossMax, sizeAlong(s.sizes[i], b)+mLead+mTrail)
	}
	return used, crossMax
}
