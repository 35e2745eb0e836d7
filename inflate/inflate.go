// Package inflate builds view trees from TOML layout documents.
//
// A document is one node; containers list their children as arrays of
// tables:
//
//	type = "restraint"
//	width = "fill"
//	height = "fill"
//
//	[[children]]
//	type = "text"
//	id = 1
//	text = "Name"
//	start = "parent.start"
//	top = "parent.top"
//
//	[[children]]
//	type = "view"
//	id = 2
//	width = "fill"
//	height = 20
//	class = "bg-blue-500 rounded"
//	start = "1.end"
//	end = "parent.end"
package inflate

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agiangrant/viewkit"
	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/retained"
	"github.com/agiangrant/viewkit/thumb"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrUnknownType is returned for a node whose type names no widget.
	ErrUnknownType = errors.New("inflate: unknown view type")
	// ErrInvalidDocument is returned for attribute values that cannot be
	// applied.
	ErrInvalidDocument = errors.New("inflate: invalid document")
)

// Node is one view in a layout document. Width and Height take a number
// of pixels or one of "auto", "fill" and "free".
type Node struct {
	Type string `toml:"type"`
	ID   int    `toml:"id"`

	Width   any       `toml:"width"`
	Height  any       `toml:"height"`
	Padding []float32 `toml:"padding"`
	Margin  []float32 `toml:"margin"`
	Class   string    `toml:"class"`

	Visibility string  `toml:"visibility"`
	Focusable  bool    `toml:"focusable"`
	Background string  `toml:"background"`
	Radius     float32 `toml:"radius"`

	// text
	Text      string  `toml:"text"`
	TextSize  float32 `toml:"text_size"`
	TextColor string  `toml:"text_color"`
	Editable  *bool   `toml:"editable"`
	Multiline *bool   `toml:"multiline"`

	// image
	Image string `toml:"image"`
	Scale string `toml:"scale"`

	// sequence container, and its children
	Orientation string  `toml:"orientation"`
	Gap         float32 `toml:"gap"`
	Weight      float32 `toml:"weight"`
	Gravity     string  `toml:"gravity"`

	// restraint children
	Start   string   `toml:"start"`
	Top     string   `toml:"top"`
	End     string   `toml:"end"`
	Bottom  string   `toml:"bottom"`
	BiasX   *float32 `toml:"bias_x"`
	BiasY   *float32 `toml:"bias_y"`
	WeightX float32  `toml:"weight_x"`
	WeightY float32  `toml:"weight_y"`

	Children []Node `toml:"children"`
}

// Parse decodes a layout document. Unknown keys are rejected.
func Parse(data []byte) (*Node, error) {
	var n Node
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&n); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	return &n, nil
}

// ReadFile parses the document at path ("~" is expanded).
func ReadFile(path string) (*Node, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand %s: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", expanded, err)
	}
	n, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expanded, err)
	}
	return n, nil
}

// Entry is one built view, in document order.
type Entry struct {
	Widget retained.Widget
	Type   string
	Depth  int
}

// Tree is the result of a build.
type Tree struct {
	Root    retained.Widget
	Entries []Entry
	ids     map[int]retained.Widget
}

// ByID returns the view built for id, or nil.
func (t *Tree) ByID(id int) retained.Widget { return t.ids[id] }

// Inflater builds documents against one application.
type Inflater struct {
	ctx     retained.Context
	baseDir string
	log     *slog.Logger
}

// New returns an inflater creating views in c.
func New(c retained.Context) *Inflater {
	return &Inflater{ctx: c, log: viewkit.Logger().With("component", "inflate")}
}

// SetBaseDir sets the directory relative image paths are resolved against.
func (in *Inflater) SetBaseDir(dir string) { in.baseDir = dir }

// Load reads and builds the document at path. Images are resolved
// relative to the document.
func (in *Inflater) Load(path string) (*Tree, error) {
	n, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	if in.baseDir == "" {
		expanded, _ := homedir.Expand(path)
		in.baseDir = filepath.Dir(expanded)
	}
	return in.Build(n)
}

// Build creates the views of n and its descendants. Nothing is attached to
// a window.
func (in *Inflater) Build(n *Node) (*Tree, error) {
	t := &Tree{ids: map[int]retained.Widget{}}
	root, err := in.build(t, n, nil, 0, "root")
	if err != nil {
		return nil, err
	}
	t.Root = root
	in.log.Debug("layout inflated", "views", len(t.Entries))
	return t, nil
}

func (in *Inflater) build(t *Tree, n *Node, parent retained.Widget, depth int, path string) (retained.Widget, error) {
	w, err := in.create(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if n.ID != retained.NoID {
		if n.ID < 0 {
			return nil, fmt.Errorf("%s: %w: id %d must be positive", path, ErrInvalidDocument, n.ID)
		}
		if _, dup := t.ids[n.ID]; dup {
			return nil, fmt.Errorf("%s: %w: duplicate id %d", path, ErrInvalidDocument, n.ID)
		}
		t.ids[n.ID] = w
		w.AsView().SetID(n.ID)
	}
	style := ParseClasses(n.Class)
	if err := in.apply(w, n, style); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := in.place(w, n, style, parent); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.Entries = append(t.Entries, Entry{Widget: w, Type: n.Type, Depth: depth})

	if len(n.Children) == 0 {
		return w, nil
	}
	lv, ok := w.(interface{ AddView(retained.Widget) bool })
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s cannot have children", path, ErrInvalidDocument, n.Type)
	}
	for i := range n.Children {
		child, err := in.build(t, &n.Children[i], w, depth+1, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		lv.AddView(child)
		if r, ok := w.(*retained.RestraintLayout); ok {
			in.restrain(r, child, &n.Children[i])
		}
	}
	return w, nil
}

func (in *Inflater) create(n *Node) (retained.Widget, error) {
	switch n.Type {
	case "view":
		return retained.NewView(in.ctx), nil
	case "frame":
		return retained.NewLayoutView(in.ctx), nil
	case "sequence":
		s := retained.NewSequenceLayout(in.ctx, retained.Horizontal)
		if n.Orientation != "" {
			a, err := parseOrientation(n.Orientation)
			if err != nil {
				return nil, err
			}
			s.SetOrientation(a)
		}
		s.SetGap(n.Gap)
		return s, nil
	case "restraint":
		return retained.NewRestraintLayout(in.ctx), nil
	case "text":
		tv := retained.NewTextView(in.ctx, n.Text)
		if n.TextSize > 0 {
			tv.SetTextSize(n.TextSize)
		}
		if n.Editable != nil {
			tv.SetEditable(*n.Editable)
		}
		if n.Multiline != nil {
			tv.SetMultiline(*n.Multiline)
		}
		return tv, nil
	case "image":
		iv := retained.NewImageView(in.ctx, nil)
		if n.Image != "" {
			img, err := thumb.DecodeFile(in.resolve(n.Image), in.ctx.Config().Thumbnail.MaxEdge)
			if err != nil {
				return nil, err
			}
			iv.SetImage(img)
		}
		if n.Scale != "" {
			m, ok := scaleModes[n.Scale]
			if !ok {
				return nil, fmt.Errorf("%w: scale %q", ErrInvalidDocument, n.Scale)
			}
			iv.SetScaleMode(m)
		}
		return iv, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownType, n.Type)
}

func (in *Inflater) resolve(p string) string {
	if filepath.IsAbs(p) || strings.HasPrefix(p, "~") || in.baseDir == "" {
		return p
	}
	return filepath.Join(in.baseDir, p)
}

// apply sets the attributes shared by every view. Explicit attributes win
// over the class string.
func (in *Inflater) apply(w retained.Widget, n *Node, style Style) error {
	v := w.AsView()

	width, height := retained.Auto, retained.Auto
	if style.Width != nil {
		width = *style.Width
	}
	if style.Height != nil {
		height = *style.Height
	}
	var err error
	if n.Width != nil {
		if width, err = parseLayoutSize(n.Width); err != nil {
			return fmt.Errorf("width: %w", err)
		}
	}
	if n.Height != nil {
		if height, err = parseLayoutSize(n.Height); err != nil {
			return fmt.Errorf("height: %w", err)
		}
	}
	v.SetLayoutSize(width, height)

	padding := geom.Padding{
		Start:  deref(style.PaddingStart),
		Top:    deref(style.PaddingTop),
		End:    deref(style.PaddingEnd),
		Bottom: deref(style.PaddingBottom),
	}
	if n.Padding != nil {
		if padding, err = parseSides(n.Padding); err != nil {
			return fmt.Errorf("padding: %w", err)
		}
	}
	v.SetPadding(padding)

	margin := geom.Margin{
		Start:  deref(style.MarginStart),
		Top:    deref(style.MarginTop),
		End:    deref(style.MarginEnd),
		Bottom: deref(style.MarginBottom),
	}
	if n.Margin != nil {
		if margin, err = parseSides(n.Margin); err != nil {
			return fmt.Errorf("margin: %w", err)
		}
	}
	v.SetMargin(margin)

	if style.Visibility != nil {
		v.SetVisibility(*style.Visibility)
	}
	if n.Visibility != "" {
		vis, ok := visibilities[n.Visibility]
		if !ok {
			return fmt.Errorf("%w: visibility %q", ErrInvalidDocument, n.Visibility)
		}
		v.SetVisibility(vis)
	}
	if n.Focusable {
		v.SetFocusable(true)
	}
	if style.Opacity != nil {
		p := v.AnimeParams()
		p.Alpha = *style.Opacity
		v.SetAnimeParams(p)
	}

	if err := in.applyBackground(v, n, style); err != nil {
		return err
	}
	if err := applyText(w, n, style); err != nil {
		return err
	}
	if s, ok := w.(*retained.SequenceLayout); ok {
		if style.Orientation != nil && n.Orientation == "" {
			s.SetOrientation(*style.Orientation)
		}
		if style.Gap != nil && n.Gap == 0 {
			s.SetGap(*style.Gap)
		}
	}
	return nil
}

func (in *Inflater) applyBackground(v *retained.View, n *Node, style Style) error {
	bg := style.Background
	if n.Background != "" {
		c, err := ParseColor(n.Background)
		if err != nil {
			return fmt.Errorf("%w: background: %w", ErrInvalidDocument, err)
		}
		bg = &c
	}
	if bg == nil {
		return nil
	}
	e := retained.NewColorElement(*bg)
	e.Radius = n.Radius
	if n.Radius == 0 && style.Radius != nil {
		e.Radius = *style.Radius
	}
	v.SetBackground(e)
	return nil
}

func applyText(w retained.Widget, n *Node, style Style) error {
	tv, ok := w.(*retained.TextView)
	if !ok {
		if n.Text != "" || n.TextColor != "" || n.TextSize != 0 {
			return fmt.Errorf("%w: text attributes on %s", ErrInvalidDocument, n.Type)
		}
		return nil
	}
	if style.TextSize != nil && n.TextSize == 0 {
		tv.SetTextSize(*style.TextSize)
	}
	color := style.TextColor
	if n.TextColor != "" {
		c, err := ParseColor(n.TextColor)
		if err != nil {
			return fmt.Errorf("%w: text_color: %w", ErrInvalidDocument, err)
		}
		color = &c
	}
	if color != nil {
		tv.SetTextColor(*color)
	}
	return nil
}

// place sets the layout info the parent container reads. Attributes for a
// different kind of container are an error.
func (in *Inflater) place(w retained.Widget, n *Node, style Style, parent retained.Widget) error {
	_, inSequence := parent.(*retained.SequenceLayout)
	_, inRestraint := parent.(*retained.RestraintLayout)

	if !inRestraint && (n.Start != "" || n.Top != "" || n.End != "" || n.Bottom != "" ||
		n.BiasX != nil || n.BiasY != nil || n.WeightX != 0 || n.WeightY != 0) {
		return fmt.Errorf("%w: handles outside a restraint layout", ErrInvalidDocument)
	}
	if !inSequence && (n.Weight != 0 || n.Gravity != "") {
		return fmt.Errorf("%w: weight or gravity outside a sequence layout", ErrInvalidDocument)
	}

	if inSequence {
		info := &retained.SequenceLayoutInfo{Weight: n.Weight}
		if info.Weight == 0 && style.Grow != nil {
			info.Weight = *style.Grow
		}
		if style.Gravity != nil {
			info.Gravity = *style.Gravity
		}
		if n.Gravity != "" {
			g, ok := gravities[n.Gravity]
			if !ok {
				return fmt.Errorf("%w: gravity %q", ErrInvalidDocument, n.Gravity)
			}
			info.Gravity = g
		}
		w.AsView().SetLayoutInfo(info)
	}
	if inRestraint {
		for _, h := range []string{n.Start, n.Top, n.End, n.Bottom} {
			if h == "" {
				continue
			}
			if _, err := ParseHandle(h); err != nil {
				return err
			}
		}
	}
	return nil
}

// restrain attaches handles once the child is in its restraint layout.
// The handles were validated by place.
func (in *Inflater) restrain(r *retained.RestraintLayout, child retained.Widget, n *Node) {
	ri := r.Info(child)
	setters := []struct {
		handle string
		set    func(int, retained.Edge) *retained.RestraintLayoutInfo
	}{
		{n.Start, ri.StartHandle},
		{n.Top, ri.TopHandle},
		{n.End, ri.EndHandle},
		{n.Bottom, ri.BottomHandle},
	}
	for _, s := range setters {
		if s.handle == "" {
			continue
		}
		h, _ := ParseHandle(s.handle)
		s.set(h.ID, h.Edge)
	}
	if n.BiasX != nil {
		ri.SetBias(retained.Horizontal, *n.BiasX)
	}
	if n.BiasY != nil {
		ri.SetBias(retained.Vertical, *n.BiasY)
	}
	ri.SetWeight(retained.Horizontal, n.WeightX)
	ri.SetWeight(retained.Vertical, n.WeightY)
}

// ParseHandle reads "parent.<edge>" or "<id>.<edge>", where edge is one
// of start, top, end and bottom.
func ParseHandle(s string) (retained.Handle, error) {
	target, edge, ok := strings.Cut(s, ".")
	if !ok {
		return retained.Handle{}, fmt.Errorf("%w: handle %q", ErrInvalidDocument, s)
	}
	e, ok := edges[edge]
	if !ok {
		return retained.Handle{}, fmt.Errorf("%w: handle %q: unknown edge", ErrInvalidDocument, s)
	}
	if target == "parent" {
		return retained.Handle{ID: retained.ParentID, Edge: e}, nil
	}
	id, err := strconv.Atoi(target)
	if err != nil || id <= 0 {
		return retained.Handle{}, fmt.Errorf("%w: handle %q: bad id", ErrInvalidDocument, s)
	}
	return retained.Handle{ID: id, Edge: e}, nil
}

func parseLayoutSize(v any) (retained.LayoutSize, error) {
	switch x := v.(type) {
	case int64:
		if x >= 0 {
			return retained.LayoutSize(x), nil
		}
	case float64:
		if x >= 0 {
			return retained.LayoutSize(x), nil
		}
	case string:
		switch x {
		case "auto":
			return retained.Auto, nil
		case "fill":
			return retained.Fill, nil
		case "free":
			return retained.Free, nil
		}
	}
	return 0, fmt.Errorf("%w: size %v", ErrInvalidDocument, v)
}

// parseSides reads one value for every side, two for vertical and
// horizontal, or four in top, end, bottom, start order.
func parseSides(vals []float32) (geom.Padding, error) {
	switch len(vals) {
	case 1:
		return geom.Uniform(vals[0]), nil
	case 2:
		return geom.Padding{Start: vals[1], Top: vals[0], End: vals[1], Bottom: vals[0]}, nil
	case 4:
		return geom.Padding{Start: vals[3], Top: vals[0], End: vals[1], Bottom: vals[2]}, nil
	}
	return geom.Padding{}, fmt.Errorf("%w: %d values for sides", ErrInvalidDocument, len(vals))
}

func parseOrientation(s string) (retained.Axis, error) {
	switch s {
	case "horizontal":
		return retained.Horizontal, nil
	case "vertical":
		return retained.Vertical, nil
	}
	return 0, fmt.Errorf("%w: orientation %q", ErrInvalidDocument, s)
}

func deref(p *float32) float32 {
	if p == nil {
		return 0
	}
	return *p
}

var (
	edges = map[string]retained.Edge{
		"start":  retained.EdgeStart,
		"top":    retained.EdgeTop,
		"end":    retained.EdgeEnd,
		"bottom": retained.EdgeBottom,
	}
	visibilities = map[string]retained.Visibility{
		"show":     retained.Show,
		"hide":     retained.Hide,
		"vanished": retained.Vanished,
	}
	scaleModes = map[string]retained.ScaleMode{
		"fit":     retained.ScaleFit,
		"fill":    retained.ScaleFill,
		"stretch": retained.ScaleStretch,
	}
)
