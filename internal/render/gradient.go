// Package render rasterizes the picker controls into straight-alpha RGBA
// buffers.
package render

import (
	"image"
	imgcolor "image/color"
	"math"

	"github.com/jsvensson/colorpicker/internal/color"
	"golang.org/x/image/draw"
)

var (
	checkerLight = imgcolor.NRGBA{R: 255, G: 255, B: 255, A: 255}
	checkerDark  = imgcolor.NRGBA{R: 220, G: 220, B: 220, A: 255}

	previewLight = imgcolor.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 255}
	previewDark  = imgcolor.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 255}
)

func nrgba(rgb color.RGB, a float64) imgcolor.NRGBA {
	return imgcolor.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: alphaByte(a)}
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
}

// ratio is i/(n-1), or 0 for a single row.
func ratio(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// Field renders the saturation/value square at hue: saturation grows left to
// right, value falls top to bottom.
func Field(size int, hue float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		v := 1 - ratio(y, size)
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, nrgba(color.HSVToRGB(hue, ratio(x, size), v), 1))
		}
	}
	return img
}

// Disc renders the hue/saturation wheel at value. Pixels beyond the radius
// stay transparent.
func Disc(size int, value float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	r := float64(size) / 2
	for y := 0; y < size; y++ {
		dy := float64(y) - r
		for x := 0; x < size; x++ {
			dx := float64(x) - r
			dist := math.Hypot(dx, dy)
			if dist > r {
				continue
			}
			var h float64
			if dist > 0 {
				h = color.NormalizeHue(math.Atan2(dy, dx) * 180 / math.Pi)
			}
			img.SetNRGBA(x, y, nrgba(color.HSVToRGB(h, dist/r, value), 1))
		}
	}
	return img
}

// HueStrip renders fully saturated hues from 0 at the top to 360 at the bottom.
func HueStrip(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		fillRow(img, y, nrgba(color.HSVToRGB(ratio(y, h)*360, 1, 1), 1))
	}
	return img
}

// ValueStrip renders c's hue and saturation from value 1 at the top to 0 at
// the bottom.
func ValueStrip(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		fillRow(img, y, nrgba(color.HSVToRGB(c.H, c.S, 1-ratio(y, h)), 1))
	}
	return img
}

// OpacityStrip renders c's RGB over a 5px checkerboard, opaque at the top and
// fully transparent at the bottom.
func OpacityStrip(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	checkerboard(img, 5, checkerLight, checkerDark)

	rgb := c.RGB()
	for y := 0; y < h; y++ {
		tint := image.NewUniform(nrgba(rgb, 1-ratio(y, h)))
		draw.Draw(img, image.Rect(0, y, w, y+1), tint, image.Point{}, draw.Over)
	}
	return img
}

// Preview renders c at its alpha over a 10px checkerboard.
func Preview(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	checkerboard(img, 10, previewLight, previewDark)
	draw.Draw(img, img.Bounds(), image.NewUniform(nrgba(c.RGB(), c.A)), image.Point{}, draw.Over)
	return img
}

func checkerboard(img *image.NRGBA, tile int, light, dark imgcolor.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := light
			if (x/tile+y/tile)%2 == 1 {
				c = dark
			}
			img.SetNRGBA(x, y, c)
		}
	}
}

func fillRow(img *image.NRGBA, y int, c imgcolor.NRGBA) {
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		img.SetNRGBA(x, y, c)
	}
}
