package color

import "math"

// HSVToRGB converts hue in degrees and saturation/value in [0, 1] to 8-bit
// channels.
func HSVToRGB(h, s, v float64) RGB {
	h = NormalizeHue(h)
	s, v = clamp01(s), clamp01(v)

	i := math.Floor(h / 60)
	f := h/60 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return RGB{R: to255(r), G: to255(g), B: to255(b)}
}

// RGBToHSV converts 8-bit channels to HSV. Grays get hue 0.
func RGBToHSV(r, g, b uint8) HSV {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	max := math.Max(math.Max(rf, gf), bf)
	min := math.Min(math.Min(rf, gf), bf)
	d := max - min

	var s float64
	if max != 0 {
		s = d / max
	}

	return HSV{H: hueOf(rf, gf, bf, max, d), S: s, V: max}
}

// RGBToHSL converts 8-bit channels to HSL. Grays get hue and saturation 0.
func RGBToHSL(r, g, b uint8) HSL {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	max := math.Max(math.Max(rf, gf), bf)
	min := math.Min(math.Min(rf, gf), bf)
	l := (max + min) / 2
	d := max - min

	if d == 0 {
		return HSL{H: 0, S: 0, L: l}
	}

	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	return HSL{H: hueOf(rf, gf, bf, max, d), S: s, L: l}
}

// HSLToRGB converts hue in degrees and saturation/lightness in [0, 1] to
// 8-bit channels.
func HSLToRGB(h, s, l float64) RGB {
	h = NormalizeHue(h) / 360
	s, l = clamp01(s), clamp01(l)

	if s == 0 {
		return RGB{R: to255(l), G: to255(l), B: to255(l)}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: to255(hueToRGB(p, q, h+1.0/3.0)),
		G: to255(hueToRGB(p, q, h)),
		B: to255(hueToRGB(p, q, h-1.0/3.0)),
	}
}

// HSLToHSV converts between the two cylindrical models without going
// through 8-bit RGB.
func HSLToHSV(h, s, l float64) HSV {
	s, l = clamp01(s), clamp01(l)
	v := l + s*math.Min(l, 1-l)
	var sv float64
	if v != 0 {
		sv = 2 * (1 - l/v)
	}
	if sv == 0 {
		h = 0
	}
	return HSV{H: NormalizeHue(h), S: clamp01(sv), V: v}
}

// HSVToHSL is the inverse of HSLToHSV.
func HSVToHSL(h, s, v float64) HSL {
	s, v = clamp01(s), clamp01(v)
	l := v * (1 - s/2)
	var sl float64
	if l != 0 && l != 1 {
		sl = (v - l) / math.Min(l, 1-l)
	}
	return HSL{H: NormalizeHue(h), S: clamp01(sl), L: l}
}

// RGBToCMYK converts 8-bit channels to CMYK percentages. Pure black is
// reported as {0, 0, 0, 100}.
func RGBToCMYK(c RGB) CMYK {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	k := 1 - math.Max(math.Max(r, g), b)
	if k == 1 {
		return CMYK{K: 100}
	}
	return CMYK{
		C: int(math.Round((1 - r - k) / (1 - k) * 100)),
		M: int(math.Round((1 - g - k) / (1 - k) * 100)),
		Y: int(math.Round((1 - b - k) / (1 - k) * 100)),
		K: int(math.Round(k * 100)),
	}
}

// CMYKToRGB converts CMYK percentages to 8-bit channels. Values outside
// [0, 100] are clamped.
func CMYKToRGB(c CMYK) RGB {
	cf := clamp01(float64(c.C) / 100)
	mf := clamp01(float64(c.M) / 100)
	yf := clamp01(float64(c.Y) / 100)
	kf := clamp01(float64(c.K) / 100)
	return RGB{
		R: to255((1 - cf) * (1 - kf)),
		G: to255((1 - mf) * (1 - kf)),
		B: to255((1 - yf) * (1 - kf)),
	}
}

// hueOf computes the hue in degrees from normalized channels, their maximum
// and the chroma d. It returns 0 for grays.
func hueOf(r, g, b, max, d float64) float64 {
	if d == 0 {
		return 0
	}
	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return NormalizeHue(h * 60)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1.0
	}
	if t > 1 {
		t -= 1.0
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6.0*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6.0
	}
	return p
}

// to255 scales a [0, 1] channel to a rounded byte.
func to255(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
