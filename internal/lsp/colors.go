package lsp

import (
	"fmt"
	"math"
	"strings"

	"github.com/jsvensson/rolodex/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts an internal color.Color (uint8 RGB) to a protocol.Color (float32 0.0-1.0).
func colorToLSP(c color.Color) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R) / 255.0,
		Green: float32(c.G) / 255.0,
		Blue:  float32(c.B) / 255.0,
		Alpha: 1.0,
	}
}

// colorFromLSP converts a protocol.Color back to RGB, ignoring alpha.
func colorFromLSP(c protocol.Color) color.Color {
	to8 := func(v float32) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, float64(v))) * 255))
	}
	return color.Color{R: to8(c.Red), G: to8(c.Green), B: to8(c.Blue)}
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

// colorPresentation offers replacements for a picked color: a hex literal,
// quoted unless the replaced text is a bare hex, and an hsl() call. Ranges
// that hold neither a literal nor a color function get no presentations.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	c := colorFromLSP(params.Color)
	hexStr := c.Hex()
	text := extractText(content, params.Range)

	switch {
	case strings.HasPrefix(text, "\""), strings.HasPrefix(text, "#"):
	case isColorCall(text):
	default:
		return []protocol.ColorPresentation{}
	}

	hexText := hexStr
	if !strings.HasPrefix(text, "#") {
		hexText = "\"" + hexStr + "\""
	}

	h := color.ToHSL(c).Rounded()
	hslText := fmt.Sprintf("hsl(%.0f, %.0f, %.0f)", h.H, h.S, h.L)

	presentations := []protocol.ColorPresentation{
		{
			Label:    hexStr,
			TextEdit: &protocol.TextEdit{Range: params.Range, NewText: hexText},
		},
	}
	if !strings.HasPrefix(text, "#") {
		presentations = append(presentations, protocol.ColorPresentation{
			Label:    hslText,
			TextEdit: &protocol.TextEdit{Range: params.Range, NewText: hslText},
		})
	}
	return presentations
}

func isColorCall(text string) bool {
	for _, name := range []string{"hsl(", "brighten(", "darken("} {
		if strings.HasPrefix(text, name) {
			return true
		}
	}
	return false
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	return documentColors(result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
