package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// hover produces a Hover response listing every format of the color under
// the cursor. Swatch references are headed by the reference text.
// Returns nil if no color is found at the position.
func hover(result *AnalysisResult, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}

		f := cl.Color.Formats()
		hex, rgb, hsl := f.CSS()

		header := fmt.Sprintf("`%s`", hex)
		if cl.IsRef {
			header = fmt.Sprintf("**%s** · `%s`", cl.Text, hex)
		}
		md := fmt.Sprintf("%s\n\n`%s` · `%s`\n\nHSV `%s` · CMYK `%s`", header, rgb, hsl, f.HSV, f.CMYK)

		rng := cl.Range
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: md,
			},
			Range: &rng,
		}
	}

	return nil
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)
	return hover(s.getResult(uri), params.Position), nil
}
