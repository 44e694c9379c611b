package parser

import (
	"fmt"
	"math"

	"github.com/jsvensson/colorpicker/internal/color"
	"github.com/mazznoer/csscolorparser"
	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
)

// NameTable maps color names to hex strings.
type NameTable interface {
	// Lookup returns the hex value for name, or false if name is unknown.
	Lookup(name string) (string, bool)
}

// Resolver computes the effective color of an arbitrary color string, the
// way a browser's computed style would. It returns s unchanged when it cannot
// resolve it.
type Resolver interface {
	Resolve(s string) string
}

// foldName case-folds a color name. Casers are stateful, so each call gets
// its own.
func foldName(name string) string {
	return cases.Fold().String(name)
}

// CSSNames is the table of the 147 CSS/SVG named colors.
type CSSNames struct{}

func (CSSNames) Lookup(name string) (string, bool) {
	c, ok := colornames.Map[foldName(name)]
	if !ok {
		return "", false
	}
	return color.RGBToHex(color.RGB{R: c.R, G: c.G, B: c.B}, float64(c.A)/255), true
}

// MapNames is a NameTable over a fixed map, e.g. swatches from a picker file.
type MapNames map[string]string

// NewMapNames case-folds the keys of m.
func NewMapNames(m map[string]string) MapNames {
	names := make(MapNames, len(m))
	for k, v := range m {
		names[foldName(k)] = v
	}
	return names
}

func (m MapNames) Lookup(name string) (string, bool) {
	hex, ok := m[foldName(name)]
	return hex, ok
}

// Chain consults each table in order and returns the first hit.
type Chain []NameTable

func (c Chain) Lookup(name string) (string, bool) {
	for _, t := range c {
		if hex, ok := t.Lookup(name); ok {
			return hex, true
		}
	}
	return "", false
}

// CSSResolver resolves any CSS Color Level 4 string (hwb(), hsv(), percentages,
// "transparent", ...) to an rgba() string.
type CSSResolver struct{}

func (CSSResolver) Resolve(s string) string {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return s
	}
	r, g, b, _ := c.RGBA255()
	a := math.Round(c.A*100) / 100
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, color.FormatAlpha(a))
}
