package lsp

import (
	"github.com/jsvensson/colorpicker/internal/format"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// formatEdits returns a single whole-document edit with the canonical form
// of content, or no edits when it is already canonical.
func formatEdits(content string) ([]protocol.TextEdit, error) {
	formatted, err := format.Format(content)
	if err != nil {
		return nil, err
	}
	if formatted == content {
		return []protocol.TextEdit{}, nil
	}

	lines := newLineIndex(content)
	return []protocol.TextEdit{
		{
			Range:   lines.rangeOf(0, len(content)),
			NewText: formatted,
		},
	}, nil
}

// textDocumentFormatting handles textDocument/formatting requests for picker files.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := string(params.TextDocument.URI)
	if !isPickerFile(uri) {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}
	return formatEdits(content)
}
