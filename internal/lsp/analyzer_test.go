package lsp

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsvensson/colorpicker/internal/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const pickerForAnalysis = `scheme  = "polar"
initial = swatch.brand

swatches {
  brand = "#eb6f92"
  sky   = rgb(135, 206, 235)
}
`

func literalTexts(lits []literal) []string {
	var texts []string
	for _, lit := range lits {
		texts = append(texts, lit.text)
	}
	return texts
}

func TestScanLiterals(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"css hex", "a { color: #FF0000; }", []string{"#FF0000"}},
		{"all hex lengths", "#abc #abcd #aabbcc #aabbccdd", []string{"#abc", "#abcd", "#aabbcc", "#aabbccdd"}},
		{"five digits is not a color", "see #12345 and #abc", []string{"#abc"}},
		{"too long", "#abcdefab1", nil},
		{"trailing word char", "#abcdefg", nil},
		{"html entity", "&#123;", nil},
		{"inside identifier", "a#fff", nil},
		{"functional", "rgba(255, 0, 0, 0.5) and hsl(120, 100%, 25%)", []string{"rgba(255, 0, 0, 0.5)", "hsl(120, 100%, 25%)"}},
		{"picker file arguments", "hsla(0, 100, 50, 0.5)", []string{"hsla(0, 100, 50, 0.5)"}},
		{"placeholder arguments", "rgb(r, g, b)", nil},
		{"ordered by position", "hsl(0, 100%, 50%) #fff", []string{"hsl(0, 100%, 50%)", "#fff"}},
		{"no colors", "plain text", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := literalTexts(scanLiterals(tt.content))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("scanLiterals(%q) mismatch (-want +got):\n%s", tt.content, diff)
			}
		})
	}
}

func TestScanLiteralColors(t *testing.T) {
	lits := scanLiterals("#F00 rgba(0, 0, 255, 0.5) hsla(120, 100, 25, 1)")
	want := []string{"#ff0000", "#0000ff80", "#008000"}
	var got []string
	for _, lit := range lits {
		got = append(got, lit.color.Hex())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
}

func TestScanOutOfRange(t *testing.T) {
	lits := scanLiterals("rgb(300, 0, 0)")
	if len(lits) != 1 {
		t.Fatalf("got %d literals, want 1", len(lits))
	}
	if !errors.Is(lits[0].err, parser.ErrRange) {
		t.Errorf("err = %v, want ErrRange", lits[0].err)
	}
}

func TestLineIndex(t *testing.T) {
	content := "first\n🎨 #00ff00\n"
	lines := newLineIndex(content)
	start := strings.Index(content, "#")

	got := lines.rangeOf(start, start+len("#00ff00"))
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 3},
		End:   protocol.Position{Line: 1, Character: 10},
	}
	if got != want {
		t.Errorf("rangeOf = %v, want %v", got, want)
	}

	if got := lines.position(0); got != (protocol.Position{}) {
		t.Errorf("position(0) = %v, want origin", got)
	}
}

func TestAnalyzeTextDocument(t *testing.T) {
	content := "body {\n  color: #eb6f92;\n  background: rgb(256, 0, 0);\n}\n"
	result := Analyze("file:///style.css", content)

	if len(result.Colors) != 1 {
		t.Fatalf("got %d colors, want 1", len(result.Colors))
	}
	cl := result.Colors[0]
	if cl.Color.Hex() != "#eb6f92" || cl.IsRef {
		t.Errorf("color = %s (ref %v), want #eb6f92 literal", cl.Color.Hex(), cl.IsRef)
	}
	wantRange := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 9},
		End:   protocol.Position{Line: 1, Character: 16},
	}
	if cl.Range != wantRange {
		t.Errorf("range = %v, want %v", cl.Range, wantRange)
	}

	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
	}
	d := result.Diagnostics[0]
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityWarning {
		t.Errorf("severity = %v, want warning", d.Severity)
	}
	if d.Range.Start != (protocol.Position{Line: 2, Character: 14}) {
		t.Errorf("diagnostic start = %v, want 2:14", d.Range.Start)
	}
	if !strings.Contains(d.Message, "out of range") {
		t.Errorf("message = %q, want it to mention the range", d.Message)
	}
}

func TestAnalyzeTextDocumentIgnoresHCL(t *testing.T) {
	result := Analyze("file:///notes.txt", "scheme = ")
	if len(result.Diagnostics) != 0 {
		t.Errorf("got diagnostics %v for a plain text document", result.Diagnostics)
	}
	if result.Picker != nil {
		t.Error("plain text document resolved as a picker")
	}
}

func TestAnalyzePickerFile(t *testing.T) {
	result := Analyze("file:///picker.hcl", pickerForAnalysis)

	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	if result.Picker == nil {
		t.Fatal("Picker is nil")
	}

	type loc struct {
		Line, Char uint32
		Hex        string
		Ref        bool
	}
	var got []loc
	for _, cl := range result.Colors {
		got = append(got, loc{cl.Range.Start.Line, cl.Range.Start.Character, cl.Color.Hex(), cl.IsRef})
	}
	want := []loc{
		{1, 10, "#eb6f92", true},
		{4, 11, "#eb6f92", false},
		{5, 10, "#87ceeb", false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}

	for _, sym := range []string{"swatch.brand", "swatch.sky"} {
		if _, ok := result.Symbols[sym]; !ok {
			t.Errorf("symbol %s missing", sym)
		}
	}
	if got := result.Symbols["swatch.brand"].Start; got != (protocol.Position{Line: 4, Character: 2}) {
		t.Errorf("swatch.brand defined at %v, want 4:2", got)
	}
}

func TestAnalyzePickerErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"syntax error", "scheme = ", ""},
		{"unknown scheme", `scheme = "triangle"`, "scheme"},
		{"unknown swatch", "initial = swatch.nope\n", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze("file:///picker.hcl", tt.content)
			if len(result.Diagnostics) == 0 {
				t.Fatal("expected diagnostics")
			}
			d := result.Diagnostics[0]
			if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
				t.Errorf("severity = %v, want error", d.Severity)
			}
			if !strings.Contains(d.Message, tt.message) {
				t.Errorf("message = %q, want it to contain %q", d.Message, tt.message)
			}
			if result.Picker != nil {
				t.Error("Picker resolved despite errors")
			}
		})
	}
}
