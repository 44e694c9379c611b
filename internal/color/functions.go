package color

// Brighten raises the HSL lightness of c by percentage (a fraction, so 0.1
// is ten points), clamped to white. Alpha is kept.
func Brighten(c Color, percentage float64) Color {
	return adjustLightness(c, percentage)
}

// Darken lowers the HSL lightness of c by percentage, clamped to black.
func Darken(c Color, percentage float64) Color {
	return adjustLightness(c, -percentage)
}

func adjustLightness(c Color, delta float64) Color {
	c = c.Normalize()
	hsl := HSVToHSL(c.H, c.S, c.V)
	hsl.L = clamp01(hsl.L + delta)
	hsv := HSLToHSV(hsl.H, hsl.S, hsl.L)
	// Lightness 0 or 1 loses the hue; keep the original so further
	// adjustments stay on it.
	if hsv.S == 0 && hsl.S > 0 {
		hsv.H = c.H
	}
	return New(hsv.H, hsv.S, hsv.V, c.A)
}
