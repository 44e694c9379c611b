package geometry

import (
	"math"

	"github.com/jsvensson/colorpicker/internal/color"
)

// Point is a canvas position in pixels.
type Point struct {
	X, Y float64
}

// Mapper converts between canvas coordinates and color channels for one
// layout scheme.
type Mapper interface {
	Config() Config
	Layout() Layout
	// Classify returns the control under (x, y), or None.
	Classify(x, y float64) Region
	// Apply returns c with the channels of region r set from (x, y).
	// Coordinates outside the control are clamped to its edge.
	Apply(r Region, x, y float64, c color.Color) color.Color
	// Marker returns where the indicator for region r sits for color c.
	Marker(r Region, c color.Color) Point
}

// New validates cfg and returns the mapper for its scheme.
func New(cfg Config) (Mapper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := mapper{cfg: cfg, layout: cfg.Layout()}
	if cfg.Scheme == SchemePolar {
		return &Polar{mapper: base}, nil
	}
	return &Rect{mapper: base}, nil
}

// mapper holds what both schemes share: the layout and the strip mappings.
type mapper struct {
	cfg    Config
	layout Layout
}

func (m *mapper) Config() Config { return m.cfg }

func (m *mapper) Layout() Layout { return m.layout }

// span is the pixel distance between the first and last row or column of the
// field, the denominator of every linear mapping.
func (m *mapper) span() float64 {
	return float64(m.cfg.FieldSize - 1)
}

// stripPos converts a canvas y to a strip position in [0, 1], top to bottom.
func (m *mapper) stripPos(y float64) float64 {
	return clamp01((y - float64(m.layout.Field.Min.Y)) / m.span())
}

func (m *mapper) applyStrip(r Region, y float64, c color.Color) color.Color {
	t := m.stripPos(y)
	switch r {
	case Hue:
		c.H = t * 360
	case Value:
		c.V = 1 - t
	case Opacity:
		c.A = 1 - t
	}
	return c.Normalize()
}

func (m *mapper) stripMarker(r Region, c color.Color) Point {
	rect := m.layout.Rect(r)
	var t float64
	switch r {
	case Hue:
		t = color.NormalizeHue(c.H) / 360
	case Value:
		t = 1 - c.V
	case Opacity:
		t = 1 - c.A
	}
	return Point{
		X: float64(rect.Min.X) + float64(rect.Dx())/2,
		Y: float64(rect.Min.Y) + clamp01(t)*m.span(),
	}
}

// Rect is the square field scheme.
type Rect struct {
	mapper
}

func (m *Rect) Classify(x, y float64) Region {
	return m.layout.hit(x, y)
}

// Apply keeps the current hue when the field drives saturation to zero, so
// dragging back out of the gray edge returns to the same hue.
func (m *Rect) Apply(r Region, x, y float64, c color.Color) color.Color {
	switch r {
	case Field:
		origin := m.layout.Field.Min
		c.S = clamp01((x - float64(origin.X)) / m.span())
		c.V = 1 - clamp01((y-float64(origin.Y))/m.span())
		return c.Normalize()
	case Hue, Value, Opacity:
		return m.applyStrip(r, y, c)
	}
	return c
}

func (m *Rect) Marker(r Region, c color.Color) Point {
	if r != Field {
		return m.stripMarker(r, c)
	}
	c = c.Normalize()
	origin := m.layout.Field.Min
	return Point{
		X: float64(origin.X) + c.S*m.span(),
		Y: float64(origin.Y) + (1-c.V)*m.span(),
	}
}

// Polar is the disc field scheme. Hue is the angle from the center, measured
// clockwise from the positive x axis in screen coordinates; saturation is the
// distance from the center over the radius.
type Polar struct {
	mapper
}

// Radius is half the field size.
func (m *Polar) Radius() float64 {
	return float64(m.cfg.FieldSize) / 2
}

// Center returns the disc center in canvas coordinates.
func (m *Polar) Center() Point {
	r := m.Radius()
	origin := m.layout.Field.Min
	return Point{X: float64(origin.X) + r, Y: float64(origin.Y) + r}
}

// Classify tests the closed disc first, so the rim belongs to the field even
// where it touches the padding of the first strip.
func (m *Polar) Classify(x, y float64) Region {
	c := m.Center()
	if math.Hypot(x-c.X, y-c.Y) <= m.Radius() {
		return Field
	}
	if r := m.layout.hit(x, y); r != Field {
		return r
	}
	return None
}

// HueSat returns the hue and saturation at (x, y). The center has hue 0 and
// saturation 0; points beyond the rim saturate at 1.
func (m *Polar) HueSat(x, y float64) (h, s float64) {
	c := m.Center()
	dx, dy := x-c.X, y-c.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 0, 0
	}
	h = color.NormalizeHue(math.Atan2(dy, dx) * 180 / math.Pi)
	return h, math.Min(dist/m.Radius(), 1)
}

func (m *Polar) Apply(r Region, x, y float64, c color.Color) color.Color {
	switch r {
	case Field:
		c.H, c.S = m.HueSat(x, y)
		return c.Normalize()
	case Hue, Value, Opacity:
		return m.applyStrip(r, y, c)
	}
	return c
}

func (m *Polar) Marker(r Region, c color.Color) Point {
	if r != Field {
		return m.stripMarker(r, c)
	}
	c = c.Normalize()
	center := m.Center()
	rad := c.H * math.Pi / 180
	dist := c.S * m.Radius()
	return Point{
		X: center.X + dist*math.Cos(rad),
		Y: center.Y + dist*math.Sin(rad),
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
