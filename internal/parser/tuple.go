package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jsvensson/colorpicker/internal/color"
)

// Format tags which text field produced an edit.
type Format string

const (
	FormatHex  Format = "hex"
	FormatRGBA Format = "rgba"
	FormatHSV  Format = "hsv"
	FormatHSLA Format = "hsla"
	FormatCMYK Format = "cmyk"
)

// Formats lists every tuple format in display order.
var Formats = []Format{FormatHex, FormatRGBA, FormatCMYK, FormatHSV, FormatHSLA}

// ParseFormat maps a format name, including the common aliases rgb and hsl,
// to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hex":
		return FormatHex, nil
	case "rgb", "rgba":
		return FormatRGBA, nil
	case "hsv", "hsb":
		return FormatHSV, nil
	case "hsl", "hsla":
		return FormatHSLA, nil
	case "cmyk":
		return FormatCMYK, nil
	}
	return "", fmt.Errorf("unknown color format %q (valid: hex, rgba, hsv, hsla, cmyk)", s)
}

// ParseTuple converts the text of a field whose format is already known,
// skipping auto-detection. Components are comma separated; a functional
// wrapper such as "rgba(...)" and percent signs are tolerated. When the tuple
// carries no alpha component, alpha is used.
func (p *Parser) ParseTuple(f Format, s string, alpha float64) (color.Color, error) {
	c, err := parseTuple(f, strings.TrimSpace(s), alpha)
	if err != nil {
		return color.Color{}, &ParseError{Input: s, Err: err}
	}
	return c, nil
}

func parseTuple(f Format, s string, alpha float64) (color.Color, error) {
	if f == FormatHex {
		if !strings.HasPrefix(s, "#") {
			s = "#" + s
		}
		return parseHex(s)
	}

	v, err := splitNumbers(s)
	if err != nil {
		return color.Color{}, err
	}

	switch f {
	case FormatRGBA:
		if err := arity(v, 3, 4); err != nil {
			return color.Color{}, err
		}
		if err := within(v[:3], 0, 255, "rgb"); err != nil {
			return color.Color{}, err
		}
		a, err := tupleAlpha(v, 3, alpha)
		if err != nil {
			return color.Color{}, err
		}
		rgb := color.RGB{R: uint8(math.Round(v[0])), G: uint8(math.Round(v[1])), B: uint8(math.Round(v[2]))}
		return color.FromRGB(rgb, a), nil

	case FormatHSV:
		if err := arity(v, 3, 4); err != nil {
			return color.Color{}, err
		}
		if err := hueAndPercents(v); err != nil {
			return color.Color{}, err
		}
		a, err := tupleAlpha(v, 3, alpha)
		if err != nil {
			return color.Color{}, err
		}
		return color.New(v[0], v[1]/100, v[2]/100, a), nil

	case FormatHSLA:
		if err := arity(v, 3, 4); err != nil {
			return color.Color{}, err
		}
		if err := hueAndPercents(v); err != nil {
			return color.Color{}, err
		}
		a, err := tupleAlpha(v, 3, alpha)
		if err != nil {
			return color.Color{}, err
		}
		return color.FromHSL(color.HSL{H: v[0], S: v[1] / 100, L: v[2] / 100}, a), nil

	case FormatCMYK:
		if err := arity(v, 4, 4); err != nil {
			return color.Color{}, err
		}
		if err := within(v, 0, 100, "cmyk"); err != nil {
			return color.Color{}, err
		}
		cmyk := color.CMYK{
			C: int(math.Round(v[0])),
			M: int(math.Round(v[1])),
			Y: int(math.Round(v[2])),
			K: int(math.Round(v[3])),
		}
		return color.FromCMYK(cmyk), nil
	}

	return color.Color{}, fmt.Errorf("%w: unknown format %q", ErrSyntax, f)
}

// splitNumbers strips an optional "name(" ... ")" wrapper and percent signs
// and parses the comma-separated components.
func splitNumbers(s string) ([]float64, error) {
	if open := strings.IndexByte(s, '('); open >= 0 && strings.HasSuffix(s, ")") {
		s = s[open+1 : len(s)-1]
	}
	if s == "" {
		return nil, ErrSyntax
	}

	parts := strings.Split(s, ",")
	v := make([]float64, len(parts))
	for i, part := range parts {
		part = strings.TrimSuffix(strings.TrimSpace(part), "%")
		n, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("%w: component %d %q is not a number", ErrSyntax, i+1, part)
		}
		v[i] = n
	}
	return v, nil
}

func arity(v []float64, min, max int) error {
	if len(v) < min || len(v) > max {
		if min == max {
			return fmt.Errorf("%w: want %d components, got %d", ErrSyntax, min, len(v))
		}
		return fmt.Errorf("%w: want %d or %d components, got %d", ErrSyntax, min, max, len(v))
	}
	return nil
}

func within(v []float64, lo, hi float64, names string) error {
	for i, n := range v {
		if n < lo || n > hi {
			return fmt.Errorf("%w: %s component %v must be within [%v, %v]", ErrRange, names[i:i+1], n, lo, hi)
		}
	}
	return nil
}

// hueAndPercents validates h in [0, 360] followed by two percentages.
func hueAndPercents(v []float64) error {
	if v[0] < 0 || v[0] > 360 {
		return fmt.Errorf("%w: hue %v must be within [0, 360]", ErrRange, v[0])
	}
	for _, n := range v[1:3] {
		if n < 0 || n > 100 {
			return fmt.Errorf("%w: %v must be within [0, 100]", ErrRange, n)
		}
	}
	return nil
}

func tupleAlpha(v []float64, i int, fallback float64) (float64, error) {
	if len(v) <= i {
		return fallback, nil
	}
	if v[i] < 0 || v[i] > 1 {
		return 0, fmt.Errorf("%w: alpha %v must be within [0, 1]", ErrRange, v[i])
	}
	return v[i], nil
}
