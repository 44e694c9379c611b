// Package engine renders the swatches of a picker file through user
// templates, e.g. to emit CSS custom properties or editor palettes.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/jsvensson/colorpicker/internal/color"
	"github.com/jsvensson/colorpicker/internal/config"
	"github.com/jsvensson/colorpicker/internal/geometry"
)

// Engine loads and executes Go templates against a resolved picker.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Apps         []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the picker's swatches, and writes output files.
func (e *Engine) Run(picker *config.Picker) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(picker)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	// If no apps are specified, render all.
	if len(e.Apps) == 0 {
		return true
	}

	return slices.Contains(e.Apps, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// Swatch is one named color, for ranging over swatches in name order.
type Swatch struct {
	Name  string
	Color color.Color
}

// templateData is the data passed to templates.
type templateData struct {
	Initial  color.Color
	Swatches []Swatch
	Swatch   map[string]color.Color
	Geometry geometry.Config
	FuncMap  template.FuncMap
}

// resolveColorPath resolves "initial" or "swatch.<name>" to a color.
func resolveColorPath(path string, data templateData) (color.Color, error) {
	if path == "initial" {
		return data.Initial, nil
	}

	name, ok := strings.CutPrefix(path, "swatch.")
	if !ok || name == "" || strings.Contains(name, ".") {
		return color.Color{}, fmt.Errorf("invalid path %q: must be initial or swatch.<name>", path)
	}
	c, ok := data.Swatch[name]
	if !ok {
		return color.Color{}, fmt.Errorf("swatch not found: %s", name)
	}
	return c, nil
}

func buildTemplateData(picker *config.Picker) templateData {
	data := templateData{
		Initial:  picker.Initial,
		Swatch:   picker.Swatches,
		Geometry: picker.Geometry,
	}
	for _, name := range picker.SwatchNames() {
		data.Swatches = append(data.Swatches, Swatch{Name: name, Color: picker.Swatches[name]})
	}

	data.FuncMap = template.FuncMap{
		"hex": func(c color.Color) string {
			return c.Hex()
		},
		"hexBare": func(c color.Color) string {
			return strings.TrimPrefix(c.Hex(), "#")
		},
		"rgb": func(c color.Color) string {
			_, rgb, _ := c.Formats().CSS()
			return rgb
		},
		"hsl": func(c color.Color) string {
			_, _, hsl := c.Formats().CSS()
			return hsl
		},
		"hsv": func(c color.Color) string {
			return c.Formats().HSV
		},
		"cmyk": func(c color.Color) string {
			return c.Formats().CMYK
		},
		"alpha": func(c color.Color) string {
			return color.FormatAlpha(c.A)
		},
		"color": func(path string) (color.Color, error) {
			return resolveColorPath(path, data)
		},
		"brighten": func(pct float64, c color.Color) color.Color {
			return color.Brighten(c, pct)
		},
		"darken": func(pct float64, c color.Color) color.Color {
			return color.Darken(c, pct)
		},
	}
	return data
}
