package color

import (
	"fmt"
	"math"
	"strconv"
)

// Formats holds every text representation shown by the picker's input fields.
type Formats struct {
	Hex  string // #rrggbb or #rrggbbaa
	RGB  string // rgb(r, g, b)
	RGBA string // rgba(r, g, b, a)
	HSL  string // hsl(h, s%, l%)
	HSLA string // hsla(h, s%, l%, a)
	HSV  string // h, s, v (percent)
	CMYK string // c, m, y, k (percent)
}

// Formats renders c in every supported text format in one pass. HSL, HSV
// and CMYK are derived from the rounded RGB channels.
func (c Color) Formats() Formats {
	c = c.Normalize()
	rgb := c.RGB()
	hsl := RGBToHSL(rgb.R, rgb.G, rgb.B)
	cmyk := RGBToCMYK(rgb)
	alpha := FormatAlpha(c.A)

	h, s, l := degrees(hsl.H), percent(hsl.S), percent(hsl.L)

	return Formats{
		Hex:  RGBToHex(rgb, c.A),
		RGB:  fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B),
		RGBA: fmt.Sprintf("rgba(%d, %d, %d, %s)", rgb.R, rgb.G, rgb.B, alpha),
		HSL:  fmt.Sprintf("hsl(%d, %d%%, %d%%)", h, s, l),
		HSLA: fmt.Sprintf("hsla(%d, %d%%, %d%%, %s)", h, s, l, alpha),
		HSV:  fmt.Sprintf("%d, %d, %d", degrees(c.H), percent(c.S), percent(c.V)),
		CMYK: fmt.Sprintf("%d, %d, %d, %d", cmyk.C, cmyk.M, cmyk.Y, cmyk.K),
	}
}

// CSS returns the shortest CSS-compatible forms: the opaque variants for
// opaque colors and the alpha variants otherwise.
func (f Formats) CSS() (hex, rgb, hsl string) {
	if len(f.Hex) == 9 {
		return f.Hex, f.RGBA, f.HSLA
	}
	return f.Hex, f.RGB, f.HSL
}

// FormatAlpha rounds a to two decimals and prints it in shortest form,
// e.g. "0.5" or "1".
func FormatAlpha(a float64) string {
	return strconv.FormatFloat(RoundAlpha(a), 'f', -1, 64)
}

// degrees rounds a hue to an integer degree in [0, 360).
func degrees(h float64) int {
	d := int(math.Round(h))
	if d >= 360 {
		d -= 360
	}
	return d
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}
