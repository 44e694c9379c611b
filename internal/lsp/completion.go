package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsvensson/colorpicker/internal/config"
	"github.com/jsvensson/colorpicker/internal/parser"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot     blockContext = iota
	contextGeometry              // inside geometry {}
	contextSwatches              // inside swatches {}
)

// rootAttributes are the valid top-level attributes of a picker file.
var rootAttributes = []string{"scheme", "opacity", "initial"}

// topLevelBlocks are the valid top-level block names.
var topLevelBlocks = []string{"geometry", "swatches"}

// geometryAttributes are the valid attributes inside geometry {}.
var geometryAttributes = []string{"field_size", "slider_width", "padding", "preview_size"}

// complete produces completion items for a picker file given an analysis
// result, document content, and cursor position.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	if items := trySwatchCompletion(result, textBeforeCursor); items != nil {
		return items
	}

	ctx := determineBlockContext(lines, int(pos.Line))

	// Swatch values cannot reference other swatches.
	if isValuePosition(textBeforeCursor) {
		return valueCompletions(ctx != contextSwatches)
	}

	switch ctx {
	case contextGeometry:
		return attributeCompletions(geometryAttributes, lines, int(pos.Line))
	case contextRoot:
		return append(attributeCompletions(rootAttributes, lines, int(pos.Line)), topLevelCompletions()...)
	}

	return nil
}

// trySwatchCompletion offers swatch names when the text before the cursor
// ends in "swatch." or a partial name after it.
func trySwatchCompletion(result *AnalysisResult, textBeforeCursor string) []protocol.CompletionItem {
	if result == nil {
		return nil
	}

	idx := strings.LastIndex(textBeforeCursor, "swatch.")
	if idx == -1 {
		return nil
	}
	if idx > 0 && isWordByte(textBeforeCursor[idx-1]) {
		return nil
	}
	partial := textBeforeCursor[idx+len("swatch."):]
	if strings.ContainsAny(partial, " .,)") {
		return nil
	}

	var names []string
	for sym := range result.Symbols {
		if name, ok := strings.CutPrefix(sym, "swatch."); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	kind := protocol.CompletionItemKindColor
	items := make([]protocol.CompletionItem, 0, len(names))
	for _, name := range names {
		item := protocol.CompletionItem{
			Label: name,
			Kind:  &kind,
		}
		if result.Picker != nil {
			if c, ok := result.Picker.Swatches[name]; ok {
				item.Detail = strPtr(c.Hex())
			}
		}
		items = append(items, item)
	}
	return items
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	afterEq := strings.TrimSpace(trimmed[eqIdx+1:])
	return afterEq == ""
}

// valueCompletions returns a snippet for every picker file function and,
// when allowed, the swatch reference trigger.
func valueCompletions(withSwatches bool) []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	funcs := config.Functions(parser.New())

	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]protocol.CompletionItem, 0, len(names)+1)
	for _, name := range names {
		fn := funcs[name]
		params := fn.Params()
		placeholders := make([]string, len(params))
		args := make([]string, len(params))
		for i, p := range params {
			placeholders[i] = fmt.Sprintf("${%d:%s}", i+1, p.Name)
			args[i] = p.Name
		}
		snippet := fmt.Sprintf("%s(%s)", name, strings.Join(placeholders, ", "))
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))),
			Documentation:    fn.Description(),
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	if withSwatches {
		swatchSnippet := "swatch."
		items = append(items, protocol.CompletionItem{
			Label:      "swatch",
			Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
			Detail:     strPtr("swatch reference"),
			InsertText: &swatchSnippet,
		})
	}
	return items
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		// Process opening braces: extract the block name (first word on the line)
		if opens > 0 {
			parts := strings.Fields(line)
			if len(parts) >= 1 {
				for range opens {
					stack = append(stack, parts[0])
				}
			}
		}

		for range closes {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}

	switch stack[len(stack)-1] {
	case "geometry":
		return contextGeometry
	case "swatches":
		return contextSwatches
	default:
		return contextRoot
	}
}

// attributeCompletions returns the given attribute names, excluding those
// already defined in the block surrounding the cursor.
func attributeCompletions(names []string, lines []string, cursorLine int) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, name := range names {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  &kind,
			})
		}
	}
	return items
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	// Scan backwards to find the opening brace of the current block
	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		closes := strings.Count(line, "}")
		opens := strings.Count(line, "{")
		depth += closes - opens
		if depth < 0 {
			startLine = i
			break
		}
	}

	// Scan forward from startLine to cursorLine, collecting attribute names
	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.ContainsAny(name, " {") {
				defined[name] = true
			}
		}
	}

	return defined
}

// topLevelCompletions returns completion items for top-level block names.
func topLevelCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	var items []protocol.CompletionItem
	for _, name := range topLevelBlocks {
		snippet := name + " {\n  $0\n}"
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             &kind,
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	if !isPickerFile(uri) {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	items := complete(s.getResult(uri), content, params.Position)
	return items, nil
}
