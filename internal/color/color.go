package color

import "math"

// Color is the canonical picker color: HSV plus alpha. Every other
// representation is derived from it on demand.
type Color struct {
	H float64 // hue in degrees, [0, 360)
	S float64 // saturation, [0, 1]
	V float64 // value, [0, 1]
	A float64 // alpha, [0, 1]
}

// RGB is an 8-bit-per-channel color without alpha.
type RGB struct {
	R, G, B uint8
}

// HSV holds hue in degrees and saturation/value in [0, 1].
type HSV struct {
	H, S, V float64
}

// HSL holds hue in degrees and saturation/lightness in [0, 1].
type HSL struct {
	H, S, L float64
}

// CMYK holds ink percentages in [0, 100]. CMYK never carries alpha.
type CMYK struct {
	C, M, Y, K int
}

// White is the color an empty picker starts from.
var White = Color{H: 0, S: 0, V: 1, A: 1}

// New returns a normalized Color.
func New(h, s, v, a float64) Color {
	return Color{H: h, S: s, V: v, A: a}.Normalize()
}

// FromRGB builds a Color from 8-bit channels and an alpha value.
func FromRGB(c RGB, a float64) Color {
	hsv := RGBToHSV(c.R, c.G, c.B)
	return New(hsv.H, hsv.S, hsv.V, a)
}

// FromHSL builds a Color from HSL without quantizing to 8 bits first.
func FromHSL(c HSL, a float64) Color {
	hsv := HSLToHSV(c.H, c.S, c.L)
	return New(hsv.H, hsv.S, hsv.V, a)
}

// FromCMYK builds an opaque Color from CMYK percentages.
func FromCMYK(c CMYK) Color {
	return FromRGB(CMYKToRGB(c), 1)
}

// Normalize reduces the hue into [0, 360) and clamps the other channels
// into [0, 1]. NaN channels become 0.
func (c Color) Normalize() Color {
	return Color{
		H: NormalizeHue(c.H),
		S: clamp01(c.S),
		V: clamp01(c.V),
		A: clamp01(c.A),
	}
}

// HSV returns the color channels without alpha.
func (c Color) HSV() HSV {
	return HSV{H: c.H, S: c.S, V: c.V}
}

// RGB returns the color as rounded 8-bit channels.
func (c Color) RGB() RGB {
	return HSVToRGB(c.H, c.S, c.V)
}

// HSL returns the HSL view of the rounded RGB channels, so that it
// describes exactly the swatch shown on screen.
func (c Color) HSL() HSL {
	rgb := c.RGB()
	return RGBToHSL(rgb.R, rgb.G, rgb.B)
}

// CMYK returns the CMYK view of the rounded RGB channels.
func (c Color) CMYK() CMYK {
	return RGBToCMYK(c.RGB())
}

// Hex returns the color as #rrggbb, or #rrggbbaa when it is translucent.
func (c Color) Hex() string {
	return RGBToHex(c.RGB(), c.A)
}

// Opaque reports whether alpha rounds to 1 at two decimals.
func (c Color) Opaque() bool {
	return RoundAlpha(c.A) >= 1
}

// NormalizeHue reduces h into [0, 360).
func NormalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// RoundAlpha clamps a into [0, 1] and rounds it to two decimals.
func RoundAlpha(a float64) float64 {
	return math.Round(clamp01(a)*100) / 100
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
