package config

import (
	"math"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/colorpicker/internal/color"
	"github.com/jsvensson/colorpicker/internal/parser"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// EvalContext returns the evaluation context for picker files: the color
// constructor functions and, when swatches is non-nil, a swatch object
// mapping each swatch name to its hex string.
func EvalContext(p *parser.Parser, swatches map[string]color.Color) *hcl.EvalContext {
	ctx := &hcl.EvalContext{
		Functions: Functions(p),
	}
	if swatches != nil {
		ctx.Variables = map[string]cty.Value{
			"swatch": swatchesToCty(swatches),
		}
	}
	return ctx
}

// Functions returns the color functions available in picker files. Each
// returns a canonical hex string.
func Functions(p *parser.Parser) map[string]function.Function {
	return map[string]function.Function{
		"rgb":      makeColorFunc("Builds a color from 0-255 channels", []string{"r", "g", "b"}, rgbColor),
		"rgba":     makeColorFunc("Builds a color from 0-255 channels and an alpha in [0, 1]", []string{"r", "g", "b", "a"}, rgbColor),
		"hsl":      makeColorFunc("Builds a color from hue degrees and saturation/lightness percentages", []string{"h", "s", "l"}, hslColor),
		"hsla":     makeColorFunc("Builds a color from HSL and an alpha in [0, 1]", []string{"h", "s", "l", "a"}, hslColor),
		"hsv":      makeColorFunc("Builds a color from hue degrees and saturation/value percentages", []string{"h", "s", "v"}, hsvColor),
		"cmyk":     makeColorFunc("Builds an opaque color from ink percentages", []string{"c", "m", "y", "k"}, cmykColor),
		"brighten": makeAdjustFunc(p, "Brightens a color by the given fraction of lightness", color.Brighten),
		"darken":   makeAdjustFunc(p, "Darkens a color by the given fraction of lightness", color.Darken),
	}
}

func swatchesToCty(swatches map[string]color.Color) cty.Value {
	names := make([]string, 0, len(swatches))
	for name := range swatches {
		names = append(names, name)
	}
	sort.Strings(names)

	vals := make(map[string]cty.Value, len(names))
	for _, name := range names {
		vals[name] = cty.StringVal(swatches[name].Hex())
	}
	return cty.ObjectVal(vals)
}

// makeColorFunc creates an HCL function over numeric parameters.
// Usage: rgb(255, 128, 0) or hsla(210, 60, 50, 0.5)
func makeColorFunc(desc string, names []string, build func(v []float64) (color.Color, error)) function.Function {
	params := make([]function.Parameter, len(names))
	for i, name := range names {
		params[i] = function.Parameter{Name: name, Type: cty.Number}
	}

	return function.New(&function.Spec{
		Description: desc,
		Params:      params,
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			v := make([]float64, len(args))
			for i, arg := range args {
				v[i], _ = arg.AsBigFloat().Float64()
			}
			c, err := build(v)
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(c.Hex()), nil
		},
	})
}

// makeAdjustFunc creates an HCL function that shifts the lightness of a color.
// Usage: brighten("#hex", 0.1) or darken(swatch.brand, 0.2)
func makeAdjustFunc(p *parser.Parser, desc string, adjust func(color.Color, float64) color.Color) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
			{
				Name: "percentage",
				Type: cty.Number,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := p.Parse(args[0].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			pct, _ := args[1].AsBigFloat().Float64()
			return cty.StringVal(adjust(c, pct).Hex()), nil
		},
	})
}

func inRange(v []float64, i int, lo, hi float64) error {
	if math.IsNaN(v[i]) || v[i] < lo || v[i] > hi {
		return function.NewArgErrorf(i, "must be within [%v, %v], got %v", lo, hi, v[i])
	}
	return nil
}

// optionalAlpha validates the fourth argument when present.
func optionalAlpha(v []float64) (float64, error) {
	if len(v) < 4 {
		return 1, nil
	}
	if err := inRange(v, 3, 0, 1); err != nil {
		return 0, err
	}
	return v[3], nil
}

func rgbColor(v []float64) (color.Color, error) {
	for i := 0; i < 3; i++ {
		if err := inRange(v, i, 0, 255); err != nil {
			return color.Color{}, err
		}
	}
	a, err := optionalAlpha(v)
	if err != nil {
		return color.Color{}, err
	}
	rgb := color.RGB{R: uint8(math.Round(v[0])), G: uint8(math.Round(v[1])), B: uint8(math.Round(v[2]))}
	return color.FromRGB(rgb, a), nil
}

func hueAndPercents(v []float64) error {
	if err := inRange(v, 0, 0, 360); err != nil {
		return err
	}
	for i := 1; i < 3; i++ {
		if err := inRange(v, i, 0, 100); err != nil {
			return err
		}
	}
	return nil
}

func hslColor(v []float64) (color.Color, error) {
	if err := hueAndPercents(v); err != nil {
		return color.Color{}, err
	}
	a, err := optionalAlpha(v)
	if err != nil {
		return color.Color{}, err
	}
	return color.FromHSL(color.HSL{H: v[0], S: v[1] / 100, L: v[2] / 100}, a), nil
}

func hsvColor(v []float64) (color.Color, error) {
	if err := hueAndPercents(v); err != nil {
		return color.Color{}, err
	}
	return color.New(v[0], v[1]/100, v[2]/100, 1), nil
}

func cmykColor(v []float64) (color.Color, error) {
	for i := range v {
		if err := inRange(v, i, 0, 100); err != nil {
			return color.Color{}, err
		}
	}
	return color.FromCMYK(color.CMYK{
		C: int(math.Round(v[0])),
		M: int(math.Round(v[1])),
		Y: int(math.Round(v[2])),
		K: int(math.Round(v[3])),
	}), nil
}
