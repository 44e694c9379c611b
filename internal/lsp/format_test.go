package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestFormatEdits(t *testing.T) {
	content := "scheme=\"rect\"\nswatches {\n  a = \"#ABC\"\n}\n"

	edits, err := formatEdits(content)
	if err != nil {
		t.Fatalf("formatEdits() error = %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("got %d edits, want 1", len(edits))
	}

	want := "scheme = \"rect\"\nswatches {\n  a = \"#aabbcc\"\n}\n"
	if edits[0].NewText != want {
		t.Errorf("NewText = %q, want %q", edits[0].NewText, want)
	}
	wantRange := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 4, Character: 0},
	}
	if edits[0].Range != wantRange {
		t.Errorf("Range = %v, want %v", edits[0].Range, wantRange)
	}
}

func TestFormatEditsCanonical(t *testing.T) {
	edits, err := formatEdits("scheme = \"rect\"\n")
	if err != nil {
		t.Fatalf("formatEdits() error = %v", err)
	}
	if len(edits) != 0 {
		t.Errorf("got %d edits for canonical content, want none", len(edits))
	}
}
