package lsp

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/jsvensson/colorpicker/internal/color"
	"github.com/jsvensson/colorpicker/internal/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	hexLiteral  = regexp.MustCompile(`#[0-9A-Fa-f]{3,8}\b`)
	funcLiteral = regexp.MustCompile(`(?i)\b(?:rgba?|hsla?)\([^()\n]*\)`)
)

// literalParser accepts only syntactic colors. Bare words are never colors
// in free text.
var literalParser = parser.New(parser.WithNames(nil), parser.WithResolver(nil))

// literal is a span of a document that looks like a color.
type literal struct {
	start, end int // byte offsets
	text       string
	color      color.Color
	err        error
}

// scanLiterals finds hex and rgb(a)/hsl(a) literals in content, ordered by
// position. Functional literals with out-of-range channels are returned with
// err set; anything else that fails to parse is not a color and is skipped.
func scanLiterals(content string) []literal {
	var found []literal

	for _, loc := range hexLiteral.FindAllStringIndex(content, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && (isWordByte(content[start-1]) || content[start-1] == '&') {
			continue
		}
		text := content[start:end]
		c, err := literalParser.Parse(text)
		if err != nil {
			// #12345 and friends
			continue
		}
		found = append(found, literal{start: start, end: end, text: text, color: c})
	}

	for _, loc := range funcLiteral.FindAllStringIndex(content, -1) {
		text := content[loc[0]:loc[1]]
		c, err := parseFunctional(text)
		if err != nil && !errors.Is(err, parser.ErrRange) {
			continue
		}
		found = append(found, literal{start: loc[0], end: loc[1], text: text, color: c, err: err})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].start < found[j].start })
	return found
}

// parseFunctional accepts CSS functional notation and the looser argument
// lists of picker files, where hsl percentages carry no % sign.
func parseFunctional(text string) (color.Color, error) {
	c, err := literalParser.Parse(text)
	if err == nil {
		return c, nil
	}
	f := parser.FormatRGBA
	if strings.HasPrefix(strings.ToLower(text), "hsl") {
		f = parser.FormatHSLA
	}
	return literalParser.ParseTuple(f, text, 1)
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

// lineIndex converts byte offsets into LSP positions, which count UTF-16
// code units within a line.
type lineIndex struct {
	content string
	starts  []int
}

func newLineIndex(content string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{content: content, starts: starts}
}

func (l *lineIndex) position(offset int) protocol.Position {
	line := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	var units uint32
	for _, r := range l.content[l.starts[line]:offset] {
		units += uint32(utf16.RuneLen(r))
	}
	return protocol.Position{Line: uint32(line), Character: units}
}

func (l *lineIndex) rangeOf(start, end int) protocol.Range {
	return protocol.Range{Start: l.position(start), End: l.position(end)}
}
