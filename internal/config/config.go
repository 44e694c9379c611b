// Package config loads picker definition files written in HCL.
package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/colorpicker/internal/color"
	"github.com/jsvensson/colorpicker/internal/geometry"
	"github.com/jsvensson/colorpicker/internal/parser"
	"github.com/zclconf/go-cty/cty"
)

// Picker is a fully-resolved picker definition.
type Picker struct {
	Geometry geometry.Config
	Initial  color.Color
	Swatches map[string]color.Color
}

// SwatchNames returns the swatch names in sorted order.
func (p *Picker) SwatchNames() []string {
	names := make([]string, 0, len(p.Swatches))
	for name := range p.Swatches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SwatchTable returns the swatches as a name table for the color parser.
func (p *Picker) SwatchTable() parser.MapNames {
	m := make(map[string]string, len(p.Swatches))
	for name, c := range p.Swatches {
		m[name] = c.Hex()
	}
	return parser.NewMapNames(m)
}

// SwatchBlock wraps the swatches block for gohcl decoding.
type SwatchBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// RawConfig captures the swatches block first, since the rest of the file
// may reference it.
type RawConfig struct {
	Swatches *SwatchBlock `hcl:"swatches,block"`
	Remain   hcl.Body     `hcl:",remain"`
}

// GeometryBlock holds the optional size overrides.
type GeometryBlock struct {
	FieldSize   *int `hcl:"field_size,optional"`
	SliderWidth *int `hcl:"slider_width,optional"`
	Padding     *int `hcl:"padding,optional"`
	PreviewSize *int `hcl:"preview_size,optional"`
}

// ResolvedConfig decodes everything that may reference swatches.
type ResolvedConfig struct {
	Scheme   string         `hcl:"scheme,optional"`
	Opacity  *bool          `hcl:"opacity,optional"`
	Initial  *string        `hcl:"initial,optional"`
	Geometry *GeometryBlock `hcl:"geometry,block"`
}

// Load reads and resolves a picker file.
func Load(path string) (*Picker, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading picker file: %w", err)
	}
	return Parse(src, path)
}

// Parse resolves picker source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Picker, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	p := parser.New()

	// First pass: swatches, which may use the color functions but not each other.
	var raw RawConfig
	if diags := gohcl.DecodeBody(file.Body, EvalContext(p, nil), &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding swatches: %s", diags.Error())
	}

	swatches := make(map[string]color.Color)
	if raw.Swatches != nil {
		strs, err := decodeBodyToMap(raw.Swatches.Entries, EvalContext(p, nil))
		if err != nil {
			return nil, fmt.Errorf("parsing swatches: %w", err)
		}
		for name, s := range strs {
			c, err := p.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("swatches.%s: %w", name, err)
			}
			swatches[name] = c
		}
	}

	// Second pass: everything else, with swatch.<name> in scope.
	var resolved ResolvedConfig
	if diags := gohcl.DecodeBody(raw.Remain, EvalContext(p, swatches), &resolved); diags.HasErrors() {
		return nil, fmt.Errorf("decoding picker: %s", diags.Error())
	}

	cfg, err := geometryConfig(&resolved)
	if err != nil {
		return nil, err
	}

	initial := color.White
	if resolved.Initial != nil {
		initial, err = p.Parse(*resolved.Initial)
		if err != nil {
			return nil, fmt.Errorf("initial: %w", err)
		}
	}

	return &Picker{
		Geometry: cfg,
		Initial:  initial,
		Swatches: swatches,
	}, nil
}

func geometryConfig(r *ResolvedConfig) (geometry.Config, error) {
	cfg := geometry.DefaultConfig()

	scheme, err := geometry.ParseScheme(r.Scheme)
	if err != nil {
		return cfg, fmt.Errorf("scheme: %w", err)
	}
	cfg.Scheme = scheme

	if r.Opacity != nil {
		cfg.Opacity = *r.Opacity
	}
	if g := r.Geometry; g != nil {
		setIfPresent(&cfg.FieldSize, g.FieldSize)
		setIfPresent(&cfg.SliderWidth, g.SliderWidth)
		setIfPresent(&cfg.Padding, g.Padding)
		setIfPresent(&cfg.PreviewSize, g.PreviewSize)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("geometry: %w", err)
	}
	return cfg, nil
}

func setIfPresent(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// decodeBodyToMap evaluates every attribute of body as a string.
func decodeBodyToMap(body hcl.Body, ctx *hcl.EvalContext) (map[string]string, error) {
	if body == nil {
		return make(map[string]string), nil
	}

	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("getting attributes: %s", diags.Error())
	}

	result := make(map[string]string, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating %s: %s", name, diags.Error())
		}
		if val.IsNull() || val.Type() != cty.String {
			return nil, fmt.Errorf("%s: expected a color string, got %s", name, val.Type().FriendlyName())
		}
		result[name] = val.AsString()
	}
	return result, nil
}
