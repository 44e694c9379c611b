package color

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidHex is returned for hex strings with a bad length or a non-hex digit.
var ErrInvalidHex = errors.New("invalid hex color")

// RGBToHex formats channels as #rrggbb. An alpha pair is appended only when
// a, rounded to two decimals, is below 1; its byte is round(a*255).
func RGBToHex(c RGB, a float64) string {
	a = RoundAlpha(a)
	if a < 1 {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, uint8(math.Round(a*255)))
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexToRGBA parses 3, 4, 6 or 8 hex digits with an optional leading #.
// Short forms are expanded by duplicating each digit. The alpha byte, when
// present, is scaled to [0, 1] and rounded to two decimals.
func HexToRGBA(s string) (RGB, float64, error) {
	digits, err := ExpandHex(s)
	if err != nil {
		return RGB{}, 0, err
	}

	var b [4]uint8
	b[3] = 0xff
	for i := 0; i < len(digits)/2; i++ {
		b[i] = nibble(digits[2*i])<<4 | nibble(digits[2*i+1])
	}

	a := 1.0
	if len(digits) == 8 {
		a = math.Round(float64(b[3])/255*100) / 100
	}
	return RGB{R: b[0], G: b[1], B: b[2]}, a, nil
}

// ExpandHex validates a hex color and returns its 6 or 8 lowercase digits
// without the leading #.
func ExpandHex(s string) (string, error) {
	digits := strings.TrimPrefix(s, "#")
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return "", fmt.Errorf("%w %q: %q is not a hex digit", ErrInvalidHex, s, digits[i])
		}
	}
	digits = strings.ToLower(digits)

	switch len(digits) {
	case 3, 4:
		var sb strings.Builder
		for i := 0; i < len(digits); i++ {
			sb.WriteByte(digits[i])
			sb.WriteByte(digits[i])
		}
		return sb.String(), nil
	case 6, 8:
		return digits, nil
	default:
		return "", fmt.Errorf("%w %q: must be 3, 4, 6 or 8 hex digits", ErrInvalidHex, s)
	}
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// nibble decodes a lowercase hex digit.
func nibble(c byte) uint8 {
	if c <= '9' {
		return c - '0'
	}
	return c - 'a' + 10
}
