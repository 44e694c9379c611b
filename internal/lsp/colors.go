package lsp

import (
	"math"

	"github.com/jsvensson/colorpicker/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts a picker color to a protocol.Color (float32 0.0-1.0).
func colorToLSP(c color.Color) protocol.Color {
	rgb := c.RGB()
	return protocol.Color{
		Red:   float32(rgb.R) / 255.0,
		Green: float32(rgb.G) / 255.0,
		Blue:  float32(rgb.B) / 255.0,
		Alpha: float32(color.RoundAlpha(c.A)),
	}
}

// colorFromLSP converts a protocol.Color chosen in the editor back to a
// picker color.
func colorFromLSP(c protocol.Color) color.Color {
	rgb := color.RGB{R: channel(c.Red), G: channel(c.Green), B: channel(c.Blue)}
	return color.FromRGB(rgb, float64(c.Alpha))
}

func channel(v float32) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, float64(v))) * 255))
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// colorPresentation offers hex, rgb and hsl spellings of the chosen color,
// with the alpha variants for translucent colors. Swatch references get no
// presentations so picking a color never replaces a reference with a literal.
func colorPresentation(result *AnalysisResult, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	if result != nil {
		for _, cl := range result.Colors {
			if cl.Range == params.Range && cl.IsRef {
				return []protocol.ColorPresentation{}
			}
		}
	}

	hex, rgb, hsl := colorFromLSP(params.Color).Formats().CSS()

	presentations := make([]protocol.ColorPresentation, 0, 3)
	for _, text := range []string{hex, rgb, hsl} {
		presentations = append(presentations, protocol.ColorPresentation{
			Label: text,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: text,
			},
		})
	}
	return presentations
}

// textDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	return documentColors(result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := string(params.TextDocument.URI)
	return colorPresentation(s.getResult(uri), params), nil
}
