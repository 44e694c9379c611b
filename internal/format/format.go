// Package format rewrites picker files in canonical style.
package format

import (
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/jsvensson/colorpicker/internal/color"
	"github.com/zclconf/go-cty/cty"
)

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)
var blankLineAfterOpenBrace = regexp.MustCompile(`\{\n\s*\n`)
var blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)

// Format takes picker file content and returns it in canonical style: HCL
// canonical layout, at most one blank line in a row, no blank lines hugging
// braces, and hex color literals spelled out as lowercase #rrggbb or
// #rrggbbaa.
//
// Content that does not parse is still laid out; only the hex rewrite is
// skipped, so the formatter stays usable while the user is typing.
func Format(content string) (string, error) {
	src := []byte(content)
	if f, diags := hclwrite.ParseConfig(src, "", hcl.InitialPos); !diags.HasErrors() {
		canonicalizeHex(f.Body())
		src = f.Bytes()
	}

	formatted := hclwrite.Format(src)
	// Collapse multiple consecutive blank lines into a single blank line.
	collapsed := multipleBlankLines.ReplaceAllString(string(formatted), "\n\n")
	// Remove blank lines immediately after opening braces.
	collapsed = blankLineAfterOpenBrace.ReplaceAllString(collapsed, "{\n")
	// Remove blank lines immediately before closing braces.
	collapsed = blankLineBeforeCloseBrace.ReplaceAllString(collapsed, "\n${1}")
	return collapsed, nil
}

// canonicalizeHex rewrites every attribute whose value is a plain quoted hex
// color. Anything else, including invalid hex, is left for the loader to
// report.
func canonicalizeHex(body *hclwrite.Body) {
	for name, attr := range body.Attributes() {
		lit, ok := quotedLiteral(attr.Expr().BuildTokens(nil))
		if !ok || !strings.HasPrefix(lit, "#") {
			continue
		}
		digits, err := color.ExpandHex(lit)
		if err != nil {
			continue
		}
		if canonical := "#" + digits; canonical != lit {
			body.SetAttributeValue(name, cty.StringVal(canonical))
		}
	}
	for _, block := range body.Blocks() {
		canonicalizeHex(block.Body())
	}
}

// quotedLiteral returns the text of an expression that is exactly one
// quoted string without interpolation.
func quotedLiteral(tokens hclwrite.Tokens) (string, bool) {
	if len(tokens) != 3 {
		return "", false
	}
	if tokens[0].Type != hclsyntax.TokenOQuote ||
		tokens[1].Type != hclsyntax.TokenQuotedLit ||
		tokens[2].Type != hclsyntax.TokenCQuote {
		return "", false
	}
	return string(tokens[1].Bytes), true
}
