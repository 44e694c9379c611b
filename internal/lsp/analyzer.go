package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/colorpicker/internal/color"
	"github.com/jsvensson/colorpicker/internal/config"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

const diagSource = "colorpicker"

// AnalysisResult holds everything produced by analyzing one document.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Colors      []ColorLocation
	// Picker is the resolved picker definition, for picker files that load.
	Picker *config.Picker
	// Symbols maps "swatch.<name>" to the range of its definition.
	Symbols map[string]protocol.Range
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Color color.Color
	Text  string
	IsRef bool // true for swatch references, which presentations must not overwrite
}

// isPickerFile reports whether uri names an HCL picker definition.
func isPickerFile(uri string) bool {
	return strings.HasSuffix(strings.ToLower(uri), ".hcl")
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	line, col := pos.Line-1, pos.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{Line: uint32(line), Character: uint32(col)}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze finds the color literals of any text document. Picker files
// additionally get HCL and loader diagnostics, resolved swatch references
// and a swatch symbol table.
func Analyze(uri, content string) *AnalysisResult {
	result := &AnalysisResult{
		Symbols: make(map[string]protocol.Range),
	}

	lines := newLineIndex(content)
	for _, lit := range scanLiterals(content) {
		rng := lines.rangeOf(lit.start, lit.end)
		if lit.err != nil {
			result.addWarning(rng, lit.err.Error())
			continue
		}
		result.Colors = append(result.Colors, ColorLocation{
			Range: rng,
			Color: lit.color,
			Text:  lit.text,
		})
	}

	if isPickerFile(uri) {
		result.analyzePicker(uri, content)
		sortLocations(result.Colors)
	}

	log.Debugf("analyzed %s: %d colors, %d diagnostics", uri, len(result.Colors), len(result.Diagnostics))
	return result
}

func (r *AnalysisResult) analyzePicker(filename, content string) {
	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			r.Diagnostics = append(r.Diagnostics, hclDiagToLSP(d))
		}
		return
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		r.addError(protocol.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return
	}

	for _, block := range body.Blocks {
		if block.Type != "swatches" {
			continue
		}
		for name, attr := range block.Body.Attributes {
			r.Symbols["swatch."+name] = hclRangeToLSP(attr.NameRange)
		}
	}

	picker, err := config.Parse([]byte(content), filename)
	if err != nil {
		r.addError(protocol.Range{}, err.Error())
		return
	}
	r.Picker = picker

	hclsyntax.VisitAll(body, func(node hclsyntax.Node) hcl.Diagnostics {
		expr, ok := node.(*hclsyntax.ScopeTraversalExpr)
		if !ok || expr.Traversal.RootName() != "swatch" || len(expr.Traversal) != 2 {
			return nil
		}
		step, ok := expr.Traversal[1].(hcl.TraverseAttr)
		if !ok {
			return nil
		}
		c, ok := picker.Swatches[step.Name]
		if !ok {
			return nil
		}
		r.Colors = append(r.Colors, ColorLocation{
			Range: hclRangeToLSP(expr.SrcRange),
			Color: c,
			Text:  "swatch." + step.Name,
			IsRef: true,
		})
		return nil
	})
}

func sortLocations(locs []ColorLocation) {
	sort.SliceStable(locs, func(i, j int) bool {
		a, b := locs[i].Range.Start, locs[j].Range.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Character < b.Character
	})
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng protocol.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: &DiagError,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng protocol.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: &DiagWarning,
		Source:   strPtr(diagSource),
		Message:  fmt.Sprintf("invalid color literal: %s", msg),
	})
}

func strPtr(s string) *string {
	return &s
}
