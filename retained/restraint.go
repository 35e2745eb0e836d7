package retained

import (
	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/internal/diag"
)

// Edge names one side of a view.
type Edge uint8

const (
	EdgeStart Edge = iota
	EdgeTop
	EdgeEnd
	EdgeBottom
)

func (e Edge) axis() Axis {
	if e == EdgeStart || e == EdgeEnd {
		return Horizontal
	}
	return Vertical
}

func (e Edge) isLead() bool { return e == EdgeStart || e == EdgeTop }

func (e Edge) String() string {
	switch e {
	case EdgeStart:
		return "start"
	case EdgeTop:
		return "top"
	case EdgeEnd:
		return "end"
	case EdgeBottom:
		return "bottom"
	}
	return "unknown"
}

func leadEdge(a Axis) Edge {
	if a == Horizontal {
		return EdgeStart
	}
	return EdgeTop
}

func trailEdge(a Axis) Edge {
	if a == Horizontal {
		return EdgeEnd
	}
	return EdgeBottom
}

// ParentID refers to the RestraintLayout itself in a Handle.
const ParentID = -1

// Handle anchors one edge of a view to an edge of a sibling or of the
// container.
type Handle struct {
	ID   int
	Edge Edge
}

// RestraintLayoutInfo holds a child's handles for a RestraintLayout.
//
// A child anchored on both edges of an axis is coupled on that axis: a
// Fill size spans the anchors, other sizes are placed between them by the
// bias (0 start, 1 end). Coupled Fill siblings sharing the same anchor pair
// and a positive weight split the span by weight.
type RestraintLayoutInfo struct {
	handles [4]*Handle
	bias    [2]float32
	weight  [2]float32

	// Per-pass state, reset at the start of every pass.
	determined [2]bool
	resolving  [2]bool
	lo, hi     [2]float32
}

// NewRestraintLayoutInfo returns info without handles and centered bias.
func NewRestraintLayoutInfo() *RestraintLayoutInfo {
	return &RestraintLayoutInfo{bias: [2]float32{0.5, 0.5}}
}

func (ri *RestraintLayoutInfo) set(own Edge, id int, target Edge) *RestraintLayoutInfo {
	ri.handles[own] = &Handle{ID: id, Edge: target}
	return ri
}

// StartHandle anchors the start edge to target edge of view id.
func (ri *RestraintLayoutInfo) StartHandle(id int, target Edge) *RestraintLayoutInfo {
	return ri.set(EdgeStart, id, target)
}

// TopHandle anchors the top edge to target edge of view id.
func (ri *RestraintLayoutInfo) TopHandle(id int, target Edge) *RestraintLayoutInfo {
	return ri.set(EdgeTop, id, target)
}

// EndHandle anchors the end edge to target edge of view id.
func (ri *RestraintLayoutInfo) EndHandle(id int, target Edge) *RestraintLayoutInfo {
	return ri.set(EdgeEnd, id, target)
}

// BottomHandle anchors the bottom edge to target edge of view id.
func (ri *RestraintLayoutInfo) BottomHandle(id int, target Edge) *RestraintLayoutInfo {
	return ri.set(EdgeBottom, id, target)
}

// ClearHandle removes the handle on own.
func (ri *RestraintLayoutInfo) ClearHandle(own Edge) *RestraintLayoutInfo {
	ri.handles[own] = nil
	return ri
}

// Handle returns the handle on own, if any.
func (ri *RestraintLayoutInfo) Handle(own Edge) (Handle, bool) {
	if h := ri.handles[own]; h != nil {
		return *h, true
	}
	return Handle{}, false
}

// SetBias sets the placement of a coupled child between its anchors.
func (ri *RestraintLayoutInfo) SetBias(a Axis, bias float32) *RestraintLayoutInfo {
	ri.bias[a] = geom.Clamp(bias, 0, 1)
	return ri
}

// SetWeight sets the share of a coupled Fill child among its siblings.
func (ri *RestraintLayoutInfo) SetWeight(a Axis, w float32) *RestraintLayoutInfo {
	ri.weight[a] = max(w, 0)
	return ri
}

func (ri *RestraintLayoutInfo) Bias(a Axis) float32   { return ri.bias[a] }
func (ri *RestraintLayoutInfo) Weight(a Axis) float32 { return ri.weight[a] }

// IsDetermined reports whether the last pass resolved axis a.
func (ri *RestraintLayoutInfo) IsDetermined(a Axis) bool { return ri.determined[a] }

// Resolved returns the bounds computed by the last pass.
func (ri *RestraintLayoutInfo) Resolved() geom.Rect {
	return geom.Rect{Left: ri.lo[Horizontal], Top: ri.lo[Vertical], Right: ri.hi[Horizontal], Bottom: ri.hi[Vertical]}
}

func (ri *RestraintLayoutInfo) reset() {
	ri.determined = [2]bool{}
	ri.resolving = [2]bool{}
	ri.lo = [2]float32{}
	ri.hi = [2]float32{}
}

func (ri *RestraintLayoutInfo) sameAnchors(o *RestraintLayoutInfo, a Axis) bool {
	for _, e := range []Edge{leadEdge(a), trailEdge(a)} {
		x, y := ri.handles[e], o.handles[e]
		if x == nil || y == nil || *x != *y {
			return false
		}
	}
	return true
}

// RestraintLayout positions children relative to each other's edges or to
// its own. Constraints that cannot be resolved (dangling ids, cycles,
// reversed anchors) collapse the child to zero size; they never fail the
// pass.
type RestraintLayout struct {
	LayoutView

	// current pass
	extent  [2]float32
	bounded [2]bool
	cross   SizeInfo
}

// NewRestraintLayout returns an empty RestraintLayout.
func NewRestraintLayout(c Context) *RestraintLayout {
	r := &RestraintLayout{}
	r.Init(c, r)
	return r
}

// Info returns the RestraintLayoutInfo of w, attaching an empty one if the
// child has none.
func (r *RestraintLayout) Info(w Widget) *RestraintLayoutInfo {
	v := w.AsView()
	if ri, ok := v.layoutInfo.(*RestraintLayoutInfo); ok {
		return ri
	}
	diag.Check(v.layoutInfo == nil, "foreign layout info in restraint layout", "id", v.id)
	ri := NewRestraintLayoutInfo()
	v.layoutInfo = ri
	return ri
}

func (r *RestraintLayout) OnDetermineSize(info SizeInfo) geom.Size {
	r.solve(info)

	var content [2]float32
	for _, c := range r.children {
		v := c.AsView()
		if v.visibility == Vanished {
			continue
		}
		ri := r.Info(c)
		content[Horizontal] = max(content[Horizontal], ri.hi[Horizontal]+v.margin.End)
		content[Vertical] = max(content[Vertical], ri.hi[Vertical]+v.margin.Bottom)
	}
	return geom.Size{
		Width:  ResolveSize(content[Horizontal]+r.padding.End, info.Width),
		Height: ResolveSize(content[Vertical]+r.padding.Bottom, info.Height),
	}
}

func (r *RestraintLayout) OnLayout(changed bool, bounds geom.Rect) {
	r.solve(SizeInfo{Width: Exactly(bounds.Width()), Height: Exactly(bounds.Height())})
	for _, c := range r.children {
		v := c.AsView()
		if v.visibility == Vanished {
			continue
		}
		v.Layout(r.Info(c).Resolved())
	}
}

// solve resolves every child, widths first, then heights.
func (r *RestraintLayout) solve(info SizeInfo) {
	r.cross = info
	for _, a := range []Axis{Horizontal, Vertical} {
		sv := info.Axis(a)
		r.extent[a] = sv.Val
		r.bounded[a] = sv.Mode != Freedom
	}
	for _, c := range r.children {
		r.Info(c).reset()
	}
	for _, a := range []Axis{Horizontal, Vertical} {
		for _, c := range r.children {
			r.resolve(c, a)
		}
	}
}

func (r *RestraintLayout) isParent(id int) bool {
	return id == ParentID || (id != NoID && id == r.id)
}

// anchor returns the coordinate a handle points at. soft is set for the
// container's trailing edge on an unbounded axis, which the caller treats
// as if the handle were absent.
func (r *RestraintLayout) anchor(v *View, h Handle, a Axis) (pos float32, ok, soft bool) {
	if !diag.Check(h.Edge.axis() == a, "restraint handle targets an edge on the other axis",
		"id", v.id, "target", h.ID, "edge", h.Edge.String()) {
		return 0, false, false
	}
	if r.isParent(h.ID) {
		lead, trail := axisPadding(r.padding, a)
		if h.Edge.isLead() {
			return lead, true, false
		}
		if !r.bounded[a] {
			return 0, false, true
		}
		return r.extent[a] - trail, true, false
	}

	target := r.FindViewByID(h.ID)
	if !diag.Check(target != nil, "dangling restraint handle", "id", v.id, "target", h.ID) {
		return 0, false, false
	}
	if !diag.Check(target.AsView() != v, "view restrained against itself", "id", v.id) {
		return 0, false, false
	}
	if !r.resolve(target, a) {
		return 0, false, false
	}
	ti := r.Info(target)
	if h.Edge.isLead() {
		return ti.lo[a], true, false
	}
	return ti.hi[a], true, false
}

// resolve computes the child's extent along a. It reports false when the
// child is part of a cycle still being resolved.
func (r *RestraintLayout) resolve(w Widget, a Axis) bool {
	v := w.AsView()
	ri := r.Info(w)
	if ri.determined[a] {
		return true
	}
	if !diag.Check(!ri.resolving[a], "restraint cycle", "id", v.id) {
		return false
	}
	ri.resolving[a] = true
	defer func() { ri.resolving[a] = false }()

	padLead, padTrail := axisPadding(r.padding, a)
	mLead, mTrail := axisPadding(v.margin, a)
	ls := v.layoutSizeAlong(a)

	var sa, ea float32
	var hasLead, hasTrail bool
	collapse := false
	if h := ri.handles[leadEdge(a)]; h != nil {
		pos, ok, soft := r.anchor(v, *h, a)
		sa, hasLead = pos, ok
		collapse = collapse || (!ok && !soft)
	}
	if h := ri.handles[trailEdge(a)]; h != nil {
		pos, ok, soft := r.anchor(v, *h, a)
		ea, hasTrail = pos, ok
		collapse = collapse || (!ok && !soft)
	}

	var lo, size float32
	switch {
	case collapse:
		lo = padLead + mLead
		if hasLead {
			lo = sa + mLead
		} else if hasTrail {
			lo = ea - mTrail
		}
		r.measureAxis(v, a, Exactly(0))

	case hasLead && hasTrail:
		span := ea - sa - mLead - mTrail
		if !diag.Check(span >= 0, "restraint anchors reversed or overlapping",
			"id", v.id, "axis", a, "span", span) {
			lo = sa + mLead
			r.measureAxis(v, a, Exactly(0))
			break
		}
		if ls == Fill && ri.weight[a] > 0 {
			r.resolveWeighted(w, a, sa, ea)
			return true
		}
		if ls == Fill {
			size = span
			r.measureAxis(v, a, Exactly(span))
		} else {
			size = r.measureAxis(v, a, coupledSizeValue(ls, span))
			if ls == Auto {
				size = min(size, span)
			}
		}
		lo = sa + mLead + (span-size)*ri.bias[a]

	case hasTrail:
		hi := ea - mTrail
		avail := hi - padLead - mLead
		size = r.measureAxis(v, a, r.openSizeValue(a, ls, avail, true))
		lo = hi - size

	default:
		start := padLead
		if hasLead {
			start = sa
		}
		lo = start + mLead
		avail := r.extent[a] - padTrail - mTrail - lo
		size = r.measureAxis(v, a, r.openSizeValue(a, ls, avail, hasLead || ri.handles[trailEdge(a)] != nil))
	}

	if v.visibility == Vanished {
		size = 0
	}
	ri.lo[a] = lo
	ri.hi[a] = lo + size
	ri.determined[a] = true
	return true
}

// resolveWeighted lays out every Fill sibling sharing w's anchor pair.
func (r *RestraintLayout) resolveWeighted(w Widget, a Axis, sa, ea float32) {
	ri := r.Info(w)
	var group []*View
	var total, margins float32
	for _, c := range r.children {
		v := c.AsView()
		ci := r.Info(c)
		if v.visibility == Vanished || v.layoutSizeAlong(a) != Fill || ci.weight[a] <= 0 {
			continue
		}
		if c != w && !ci.sameAnchors(ri, a) {
			continue
		}
		lead, trail := axisPadding(v.margin, a)
		group = append(group, v)
		total += ci.weight[a]
		margins += lead + trail
	}

	avail := max(ea-sa-margins, 0)
	cursor := sa
	for _, v := range group {
		ci := r.Info(v.this)
		lead, trail := axisPadding(v.margin, a)
		share := avail * ci.weight[a] / total
		cursor += lead
		ci.lo[a] = cursor
		ci.hi[a] = cursor + share
		ci.determined[a] = true
		r.measureAxis(v, a, Exactly(share))
		cursor += share + trail
	}
}

// coupledSizeValue is the constraint for a non-Fill child between anchors.
func coupledSizeValue(ls LayoutSize, span float32) SizeValue {
	switch {
	case ls.IsDefined():
		return Exactly(float32(ls))
	case ls == Auto:
		return AtMost(span)
	}
	return Unbounded()
}

// openSizeValue is the constraint for a child anchored on at most one
// edge. Without any handle an Auto child is measured unconstrained.
func (r *RestraintLayout) openSizeValue(a Axis, ls LayoutSize, avail float32, anchored bool) SizeValue {
	bounded := r.bounded[a]
	avail = max(avail, 0)
	switch {
	case ls.IsDefined():
		return Exactly(float32(ls))
	case ls == Fill && bounded:
		return Exactly(avail)
	case ls == Auto && bounded && anchored:
		return AtMost(avail)
	}
	return Unbounded()
}

// measureAxis measures v with sv along a. The other axis uses the resolved
// size when known, or the container's constraint otherwise. It returns the
// measured size along a.
func (r *RestraintLayout) measureAxis(v *View, a Axis, sv SizeValue) float32 {
	other := Vertical
	if a == Vertical {
		other = Horizontal
	}
	ri := r.Info(v.this)

	var osv SizeValue
	if ri.determined[other] {
		osv = Exactly(ri.hi[other] - ri.lo[other])
	} else {
		pl, pt := axisPadding(r.padding, other)
		ml, mt := axisPadding(v.margin, other)
		osv = ChildSizeValue(r.cross.Axis(other), pl+pt+ml+mt, v.layoutSizeAlong(other))
	}

	info := SizeInfo{Width: sv, Height: osv}
	if a == Vertical {
		info = SizeInfo{Width: osv, Height: sv}
	}
	return sizeAlong(v.Measure(info), a)
}
