package inflate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agiangrant/viewkit"
	"github.com/agiangrant/viewkit/geom"
	"github.com/agiangrant/viewkit/retained"
	"github.com/lucasb-eyer/go-colorful"
)

// Style is the result of parsing a class string. Nil fields were not set
// by any class; Merge lets later classes win.
type Style struct {
	Width, Height *retained.LayoutSize

	PaddingStart, PaddingTop, PaddingEnd, PaddingBottom *float32
	MarginStart, MarginTop, MarginEnd, MarginBottom     *float32

	Background *geom.Color
	TextColor  *geom.Color
	TextSize   *float32
	Radius     *float32
	Opacity    *float32

	Visibility  *retained.Visibility
	Orientation *retained.Axis
	Gap         *float32
	Grow        *float32
	Gravity     *retained.Gravity
}

// Merge copies the fields set in src over s.
func (s *Style) Merge(src Style) {
	mergePtr(&s.Width, src.Width)
	mergePtr(&s.Height, src.Height)
	mergePtr(&s.PaddingStart, src.PaddingStart)
	mergePtr(&s.PaddingTop, src.PaddingTop)
	mergePtr(&s.PaddingEnd, src.PaddingEnd)
	mergePtr(&s.PaddingBottom, src.PaddingBottom)
	mergePtr(&s.MarginStart, src.MarginStart)
	mergePtr(&s.MarginTop, src.MarginTop)
	mergePtr(&s.MarginEnd, src.MarginEnd)
	mergePtr(&s.MarginBottom, src.MarginBottom)
	mergePtr(&s.Background, src.Background)
	mergePtr(&s.TextColor, src.TextColor)
	mergePtr(&s.TextSize, src.TextSize)
	mergePtr(&s.Radius, src.Radius)
	mergePtr(&s.Opacity, src.Opacity)
	mergePtr(&s.Visibility, src.Visibility)
	mergePtr(&s.Orientation, src.Orientation)
	mergePtr(&s.Gap, src.Gap)
	mergePtr(&s.Grow, src.Grow)
	mergePtr(&s.Gravity, src.Gravity)
}

func mergePtr[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func ptr[T any](v T) *T { return &v }

// spacingUnit is the pixel size of one step of the spacing scale, so p-4
// is 16 px.
const spacingUnit = 4

var textSizes = map[string]float32{
	"xs":   12,
	"sm":   14,
	"base": 16,
	"lg":   18,
	"xl":   20,
	"2xl":  24,
	"3xl":  30,
	"4xl":  36,
}

var radii = map[string]float32{
	"none": 0,
	"sm":   2,
	"":     4,
	"md":   6,
	"lg":   8,
	"xl":   12,
	"2xl":  16,
	"full": 9999,
}

// hues are the 500 shades; other shades are derived from them.
var hues = map[string]string{
	"slate":  "#64748b",
	"gray":   "#6b7280",
	"red":    "#ef4444",
	"orange": "#f97316",
	"amber":  "#f59e0b",
	"yellow": "#eab308",
	"green":  "#22c55e",
	"teal":   "#14b8a6",
	"cyan":   "#06b6d4",
	"blue":   "#3b82f6",
	"indigo": "#6366f1",
	"purple": "#a855f7",
	"pink":   "#ec4899",
}

// ParseClasses parses a whitespace separated list of utility classes such
// as "p-4 bg-blue-500 w-[120px] hidden". Unknown classes and classes with
// variant prefixes (hover:, md:) are ignored, the way a stylesheet ignores
// rules it does not understand.
func ParseClasses(classStr string) Style {
	var style Style
	for _, class := range strings.Fields(classStr) {
		partial, ok := parseClass(class)
		if !ok {
			viewkit.Logger().Debug("ignoring class", "class", class)
			continue
		}
		style.Merge(partial)
	}
	return style
}

// parseClass turns one utility into a partial style.
// "w-[33px]" splits into property "w" and arbitrary value "33px";
// "bg-blue-500" into property "bg" and value "blue-500".
func parseClass(class string) (Style, bool) {
	var s Style
	if strings.Contains(class, ":") {
		return s, false
	}

	switch class {
	case "hidden":
		s.Visibility = ptr(retained.Vanished)
		return s, true
	case "invisible":
		s.Visibility = ptr(retained.Hide)
		return s, true
	case "visible":
		s.Visibility = ptr(retained.Show)
		return s, true
	case "flex-row":
		s.Orientation = ptr(retained.Horizontal)
		return s, true
	case "flex-col":
		s.Orientation = ptr(retained.Vertical)
		return s, true
	case "grow":
		s.Grow = ptr[float32](1)
		return s, true
	case "rounded":
		s.Radius = ptr(radii[""])
		return s, true
	}

	prop, value, arbitrary := splitClass(class)
	switch prop {
	case "w", "h":
		ls, ok := parseSize(value, arbitrary)
		if !ok {
			return s, false
		}
		if prop == "w" {
			s.Width = &ls
		} else {
			s.Height = &ls
		}
	case "p", "px", "py", "pt", "pr", "pb", "pl":
		v, ok := parseSpacing(value, arbitrary)
		if !ok {
			return s, false
		}
		setSides(prop[1:], v, &s.PaddingStart, &s.PaddingTop, &s.PaddingEnd, &s.PaddingBottom)
	case "m", "mx", "my", "mt", "mr", "mb", "ml":
		v, ok := parseSpacing(value, arbitrary)
		if !ok {
			return s, false
		}
		setSides(prop[1:], v, &s.MarginStart, &s.MarginTop, &s.MarginEnd, &s.MarginBottom)
	case "gap":
		v, ok := parseSpacing(value, arbitrary)
		if !ok {
			return s, false
		}
		s.Gap = &v
	case "bg":
		c, ok := parseColor(value, arbitrary)
		if !ok {
			return s, false
		}
		s.Background = &c
	case "text":
		if size, ok := parseTextSize(value, arbitrary); ok {
			s.TextSize = &size
		} else if c, ok := parseColor(value, arbitrary); ok {
			s.TextColor = &c
		} else {
			return s, false
		}
	case "rounded":
		r, ok := radii[value]
		if arbitrary {
			r, ok = parseDimension(value)
		}
		if !ok {
			return s, false
		}
		s.Radius = &r
	case "opacity":
		v, err := strconv.ParseFloat(value, 32)
		if err != nil || v < 0 || v > 100 {
			return s, false
		}
		s.Opacity = ptr(float32(v) / 100)
	case "grow":
		v, err := strconv.ParseFloat(value, 32)
		if err != nil || v < 0 {
			return s, false
		}
		s.Grow = ptr(float32(v))
	case "self":
		g, ok := gravities[value]
		if !ok {
			return s, false
		}
		s.Gravity = &g
	default:
		return s, false
	}
	return s, true
}

// splitClass separates the property from its value at the first dash.
// Values in brackets are arbitrary: "w-[120px]" gives ("w", "120px", true).
func splitClass(class string) (prop, value string, arbitrary bool) {
	prop, value, _ = strings.Cut(class, "-")
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		return prop, value[1 : len(value)-1], true
	}
	return prop, value, false
}

func setSides(side string, v float32, start, top, end, bottom **float32) {
	switch side {
	case "":
		*start, *top, *end, *bottom = &v, &v, &v, &v
	case "x":
		*start, *end = &v, &v
	case "y":
		*top, *bottom = &v, &v
	case "l":
		*start = &v
	case "t":
		*top = &v
	case "r":
		*end = &v
	case "b":
		*bottom = &v
	}
}

func parseSize(value string, arbitrary bool) (retained.LayoutSize, bool) {
	if arbitrary {
		v, ok := parseDimension(value)
		return retained.LayoutSize(v), ok
	}
	switch value {
	case "full":
		return retained.Fill, true
	case "auto", "fit":
		return retained.Auto, true
	case "max":
		return retained.Free, true
	}
	v, ok := parseSpacing(value, false)
	return retained.LayoutSize(v), ok
}

func parseSpacing(value string, arbitrary bool) (float32, bool) {
	if arbitrary {
		return parseDimension(value)
	}
	n, err := strconv.ParseFloat(value, 32)
	if err != nil || n < 0 {
		return 0, false
	}
	return float32(n) * spacingUnit, true
}

func parseTextSize(value string, arbitrary bool) (float32, bool) {
	if arbitrary {
		if strings.HasPrefix(value, "#") {
			return 0, false
		}
		return parseDimension(value)
	}
	size, ok := textSizes[value]
	return size, ok
}

// parseDimension reads a pixel length ("12", "12px", "1.5rem").
func parseDimension(value string) (float32, bool) {
	value = strings.TrimSpace(value)
	multiplier := float32(1)
	switch {
	case strings.HasSuffix(value, "px"):
		value = strings.TrimSuffix(value, "px")
	case strings.HasSuffix(value, "rem"):
		value = strings.TrimSuffix(value, "rem")
		multiplier = 16
	}
	n, err := strconv.ParseFloat(value, 32)
	if err != nil || n < 0 {
		return 0, false
	}
	return float32(n) * multiplier, true
}

// parseColor accepts black, white, transparent, a palette color with shade
// ("blue-500") or an arbitrary hex value ("[#1da1f2]").
func parseColor(value string, arbitrary bool) (geom.Color, bool) {
	if arbitrary {
		c, err := ParseColor(value)
		return c, err == nil
	}
	switch value {
	case "black":
		return geom.Black, true
	case "white":
		return geom.White, true
	case "transparent":
		return geom.Transparent, true
	}
	name, shade, ok := strings.Cut(value, "-")
	if !ok {
		return geom.Color{}, false
	}
	base, ok := hues[name]
	if !ok {
		return geom.Color{}, false
	}
	n, err := strconv.Atoi(shade)
	if err != nil || n < 50 || n > 950 {
		return geom.Color{}, false
	}
	c, _ := colorful.Hex(base)
	return fromColorful(shadeOf(c, n), 1), true
}

// shadeOf lightens c toward white below 500 and darkens it toward black
// above, in L*a*b* space.
func shadeOf(c colorful.Color, shade int) colorful.Color {
	switch {
	case shade < 500:
		return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, float64(500-shade)/500*0.95).Clamped()
	case shade > 500:
		return c.BlendLab(colorful.Color{}, float64(shade-500)/500*0.9).Clamped()
	}
	return c
}

// ParseColor reads "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (geom.Color, error) {
	s = strings.TrimSpace(s)
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return geom.Color{}, fmt.Errorf("invalid color %q", s)
		}
		c, err := colorful.Hex("#" + hex[:6])
		if err != nil {
			return geom.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return fromColorful(c, float32(a)/255), nil
	default:
		return geom.Color{}, fmt.Errorf("invalid color %q", s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return geom.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return fromColorful(c, 1), nil
}

func fromColorful(c colorful.Color, alpha float32) geom.Color {
	return geom.Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: alpha}
}

var gravities = map[string]retained.Gravity{
	"start":   retained.GravityStart,
	"center":  retained.GravityCenter,
	"end":     retained.GravityEnd,
	"stretch": retained.GravityStretch,
}
