package colorpicker

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsvensson/colorpicker/internal/color"
	"github.com/jsvensson/colorpicker/internal/geometry"
)

const pickerFile = `
scheme  = "polar"
initial = swatch.brand

swatches {
  brand = "#eb6f92"
  sky   = rgb(135, 206, 235)
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	p, err := Load(writeFile(t, t.TempDir(), "picker.hcl", pickerFile))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := p.Controller.Color().Hex(); got != "#eb6f92" {
		t.Errorf("initial color = %s, want #eb6f92", got)
	}
	if _, ok := p.Controller.Mapper().(*geometry.Polar); !ok {
		t.Errorf("mapper = %T, want *geometry.Polar", p.Controller.Mapper())
	}

	tests := []struct {
		text string
		want string
	}{
		{"sky", "#87ceeb"},
		{"SKY", "#87ceeb"},
		{"teal", "#008080"},
		{"#fff", "#ffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if err := p.Controller.SetText(tt.text); err != nil {
				t.Fatalf("SetText(%q) error: %v", tt.text, err)
			}
			if got := p.Controller.Formats().Hex; got != tt.want {
				t.Errorf("SetText(%q) hex = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.hcl")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
	if _, err := Load(writeFile(t, dir, "bad.hcl", `scheme = "triangle"`)); err == nil {
		t.Error("Load() of an invalid scheme succeeded")
	}
}

func TestDefault(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if p.Controller.Color() != color.White {
		t.Errorf("color = %+v, want white", p.Controller.Color())
	}
	if got := p.Controller.Mapper().Layout().Bounds; got != image.Rect(0, 0, 308, 200) {
		t.Errorf("bounds = %v, want (0,0)-(308,200)", got)
	}
}

func TestWritePNG(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	var buf bytes.Buffer
	if err := p.WritePNG(&buf, 2); err != nil {
		t.Fatalf("WritePNG() error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode error: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 616, 400) {
		t.Errorf("bounds = %v, want (0,0)-(616,400)", got)
	}

	// The white preview is 100x100 after scaling; the frame follows it.
	tests := []struct {
		name string
		x, y int
		dark bool
	}{
		{"left frame edge", 0, 50, true},
		{"right frame edge", 99, 50, true},
		{"bottom frame edge", 50, 99, true},
		{"unscaled right edge", 49, 50, false},
		{"preview center", 60, 60, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, _ := img.At(tt.x, tt.y).RGBA()
			dark := r>>8 < 128 && g>>8 < 128 && b>>8 < 128
			if dark != tt.dark {
				t.Errorf("pixel (%d, %d) = (%d, %d, %d), dark = %v, want %v", tt.x, tt.y, r>>8, g>>8, b>>8, dark, tt.dark)
			}
		})
	}
}

func TestExport(t *testing.T) {
	p, err := Load(writeFile(t, t.TempDir(), "picker.hcl", pickerFile))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tmplDir := t.TempDir()
	writeFile(t, tmplDir, "vars.css.tmpl", `{{ range .Swatches }}--{{ .Name }}: {{ hex .Color }};
{{ end }}`)
	outDir := filepath.Join(t.TempDir(), "out")

	if err := p.Export(tmplDir, outDir, nil); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(outDir, "vars.css"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	want := "--brand: #eb6f92;\n--sky: #87ceeb;\n"
	if string(got) != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
