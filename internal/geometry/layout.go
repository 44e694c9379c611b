package geometry

import "image"

// Region identifies the control under a pointer.
type Region int

const (
	None Region = iota
	Field
	Hue
	Value
	Opacity
)

func (r Region) String() string {
	switch r {
	case Field:
		return "field"
	case Hue:
		return "hue"
	case Value:
		return "value"
	case Opacity:
		return "opacity"
	default:
		return "none"
	}
}

// Strip is one vertical slider.
type Strip struct {
	Region Region
	Rect   image.Rectangle
}

// Layout holds the drawing rectangles of every control, left to right:
// preview, field, then the strips.
type Layout struct {
	Bounds  image.Rectangle
	Preview image.Rectangle
	Field   image.Rectangle
	Strips  []Strip
}

// Layout places the controls on the canvas. The canvas is as tall as the field.
func (c Config) Layout() Layout {
	s, w, pad := c.FieldSize, c.SliderWidth, c.Padding

	l := Layout{
		Preview: image.Rect(0, 0, c.PreviewSize, min(c.PreviewSize, s)),
	}
	x := c.PreviewSize + pad
	l.Field = image.Rect(x, 0, x+s, s)
	x += s + pad

	first := Hue
	if c.Scheme == SchemePolar {
		first = Value
	}
	l.Strips = append(l.Strips, Strip{Region: first, Rect: image.Rect(x, 0, x+w, s)})
	x += w

	if c.Opacity {
		x += pad
		l.Strips = append(l.Strips, Strip{Region: Opacity, Rect: image.Rect(x, 0, x+w, s)})
		x += w
	}

	l.Bounds = image.Rect(0, 0, x, s)
	return l
}

// Rect returns the drawing rectangle of r, or the empty rectangle when the
// layout has no such control.
func (l Layout) Rect(r Region) image.Rectangle {
	if r == Field {
		return l.Field
	}
	for _, s := range l.Strips {
		if s.Region == r {
			return s.Rect
		}
	}
	return image.Rectangle{}
}

// hit classifies a point by x interval alone. The padding in front of a
// strip belongs to that strip.
func (l Layout) hit(x, y float64) Region {
	if y < 0 || y >= float64(l.Field.Dy()) {
		return None
	}
	if x >= float64(l.Field.Min.X) && x < float64(l.Field.Max.X) {
		return Field
	}
	left := l.Field.Max.X
	for _, s := range l.Strips {
		if x >= float64(left) && x < float64(s.Rect.Max.X) {
			return s.Region
		}
		left = s.Rect.Max.X
	}
	return None
}
