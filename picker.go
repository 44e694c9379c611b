// Package colorpicker assembles a headless color picker: the geometry,
// parser and interaction controller configured by a picker file.
package colorpicker

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/jsvensson/colorpicker/internal/color"
	"github.com/jsvensson/colorpicker/internal/config"
	"github.com/jsvensson/colorpicker/internal/engine"
	"github.com/jsvensson/colorpicker/internal/geometry"
	"github.com/jsvensson/colorpicker/internal/interaction"
	"github.com/jsvensson/colorpicker/internal/parser"
	"github.com/jsvensson/colorpicker/internal/render"
)

// Picker is a ready-to-drive picker built from a resolved definition.
type Picker struct {
	Config     *config.Picker
	Controller *interaction.Controller
}

// Load reads a picker file and builds a Picker from it.
func Load(path string) (*Picker, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading picker: %w", err)
	}
	return New(cfg)
}

// Default returns a Picker with the default geometry, starting from white.
func Default() (*Picker, error) {
	return New(&config.Picker{
		Geometry: geometry.DefaultConfig(),
		Initial:  color.White,
	})
}

// New builds a Picker. Swatch names resolve in typed text ahead of the CSS
// named colors.
func New(cfg *config.Picker) (*Picker, error) {
	m, err := geometry.New(cfg.Geometry)
	if err != nil {
		return nil, err
	}

	names := parser.Chain{cfg.SwatchTable(), parser.CSSNames{}}
	ctrl := interaction.New(m,
		interaction.WithParser(parser.New(parser.WithNames(names))),
		interaction.WithColor(cfg.Initial),
	)

	return &Picker{Config: cfg, Controller: ctrl}, nil
}

// WritePNG encodes the current canvas, enlarged by scale, with the preview
// swatch framed.
func (p *Picker) WritePNG(w io.Writer, scale int) error {
	if scale < 1 {
		scale = 1
	}
	r := p.Controller.Mapper().Layout().Preview
	frame := image.Rectangle{Min: r.Min.Mul(scale), Max: r.Max.Mul(scale)}
	return render.EncodePNG(w, render.Scale(p.Controller.Canvas(), scale), frame)
}

// Export renders the picker's swatches through the .tmpl files in
// templatesDir. A non-empty apps limits which templates run.
func (p *Picker) Export(templatesDir, outputDir string, apps []string) error {
	e := &engine.Engine{
		TemplatesDir: templatesDir,
		OutputDir:    outputDir,
		Apps:         apps,
	}
	if err := e.Run(p.Config); err != nil {
		return fmt.Errorf("exporting swatches: %w", err)
	}
	return nil
}

// Watch exports once, then re-loads the picker file and exports again
// whenever it or a template changes, until ctx is done. Failed reloads are
// logged and the previous output is left in place.
func Watch(ctx context.Context, pickerPath, templatesDir, outputDir string, apps []string) error {
	export := func() error {
		p, err := Load(pickerPath)
		if err != nil {
			return err
		}
		return p.Export(templatesDir, outputDir, apps)
	}
	if err := export(); err != nil {
		return err
	}

	w, err := engine.NewWatcher(pickerPath, templatesDir, export)
	if err != nil {
		return err
	}
	w.Start()
	<-ctx.Done()
	return w.Stop()
}
