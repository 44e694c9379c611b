package render

import (
	"fmt"
	"image"
	imgcolor "image/color"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/jsvensson/colorpicker/internal/color"
	"github.com/jsvensson/colorpicker/internal/geometry"
	"golang.org/x/image/draw"
)

const markerInset = 6

var (
	markerOuter = imgcolor.NRGBA{R: 255, G: 255, B: 255, A: 255}
	markerInner = imgcolor.NRGBA{A: 255}
)

// NewCanvas allocates a transparent canvas the size of l.
func NewCanvas(l geometry.Layout) *image.NRGBA {
	return image.NewNRGBA(l.Bounds)
}

// Marker draws the position indicator at p: a white ring of radius 6 and
// width 2 under a black ring of radius 5 and width 1. The center is kept 6px
// inside bounds and nothing is drawn outside bounds.
func Marker(dst draw.Image, p geometry.Point, bounds image.Rectangle) {
	clip := bounds.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	cx := clampInset(p.X, bounds.Min.X, bounds.Max.X)
	cy := clampInset(p.Y, bounds.Min.Y, bounds.Max.Y)

	x0 := max(clip.Min.X, int(math.Floor(cx))-7)
	x1 := min(clip.Max.X, int(math.Ceil(cx))+8)
	y0 := max(clip.Min.Y, int(math.Floor(cy))-7)
	y1 := min(clip.Max.Y, int(math.Ceil(cy))+8)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			switch {
			case math.Abs(d-5) <= 0.5:
				dst.Set(x, y, markerInner)
			case math.Abs(d-6) <= 1:
				dst.Set(x, y, markerOuter)
			}
		}
	}
}

// clampInset keeps v markerInset pixels inside [lo, hi). Spans too narrow for
// the inset pin v to their middle.
func clampInset(v float64, lo, hi int) float64 {
	low, high := float64(lo+markerInset), float64(hi-1-markerInset)
	if low > high {
		return float64(lo+hi-1) / 2
	}
	return math.Max(low, math.Min(high, v))
}

// Draw composites the whole picker for c onto dst: preview, field, strips
// and their markers. dst must have exactly the bounds of the mapper's layout.
func Draw(dst *image.NRGBA, m geometry.Mapper, c color.Color) error {
	l := m.Layout()
	if dst == nil {
		return &geometry.Error{Op: "drawing picker", Err: fmt.Errorf("%w: no canvas", geometry.ErrCanvasSize)}
	}
	if dst.Bounds() != l.Bounds {
		return &geometry.Error{
			Op:  "drawing picker",
			Err: fmt.Errorf("%w: canvas is %v, layout needs %v", geometry.ErrCanvasSize, dst.Bounds(), l.Bounds),
		}
	}
	c = c.Normalize()

	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	place(dst, l.Preview, Preview(l.Preview.Dx(), l.Preview.Dy(), c))

	size := l.Field.Dx()
	if m.Config().Scheme == geometry.SchemePolar {
		place(dst, l.Field, Disc(size, c.V))
	} else {
		place(dst, l.Field, Field(size, c.H))
	}

	for _, s := range l.Strips {
		w, h := s.Rect.Dx(), s.Rect.Dy()
		switch s.Region {
		case geometry.Hue:
			place(dst, s.Rect, HueStrip(w, h))
		case geometry.Value:
			place(dst, s.Rect, ValueStrip(w, h, c))
		case geometry.Opacity:
			place(dst, s.Rect, OpacityStrip(w, h, c))
		}
	}

	Marker(dst, m.Marker(geometry.Field, c), l.Field)
	for _, s := range l.Strips {
		Marker(dst, m.Marker(s.Region, c), s.Rect)
	}
	return nil
}

func place(dst draw.Image, r image.Rectangle, src image.Image) {
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Src)
}

// Scale enlarges img by an integer factor without smoothing.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// EncodePNG writes img as PNG with a 1px black frame stroked around frame,
// usually the preview swatch. An empty frame is not stroked.
func EncodePNG(w io.Writer, img image.Image, frame image.Rectangle) error {
	dc := gg.NewContextForImage(img)
	defer dc.Close()

	if !frame.Empty() {
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(1)
		dc.DrawRectangle(
			float64(frame.Min.X)+0.5, float64(frame.Min.Y)+0.5,
			float64(frame.Dx()-1), float64(frame.Dy()-1),
		)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroking preview frame: %w", err)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
