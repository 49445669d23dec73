package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/rolodex/internal/color"
	"github.com/jsvensson/rolodex/internal/palette"
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

// extractText extracts the source text at a given LSP range from document content.
func extractText(content string, r protocol.Range) string {
	lines := strings.Split(content, "\n")

	startLine := int(r.Start.Line)
	endLine := int(r.End.Line)

	if startLine >= len(lines) {
		return ""
	}
	endLine = min(endLine, len(lines)-1)

	if startLine == endLine {
		line := lines[startLine]
		startChar := min(int(r.Start.Character), len(line))
		endChar := min(int(r.End.Character), len(line))
		return line[startChar:endChar]
	}

	var parts []string
	for i := startLine; i <= endLine; i++ {
		line := lines[i]
		switch i {
		case startLine:
			parts = append(parts, line[min(int(r.Start.Character), len(line)):])
		case endLine:
			parts = append(parts, line[:min(int(r.End.Character), len(line))])
		default:
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// describeColor renders hex, RGB and HSL for a color.
func describeColor(c color.Color) string {
	return fmt.Sprintf("`%s` · `%s` · `%s`", c.Hex(), c.RGB(), color.ToHSL(c).Rounded())
}

// describeSelection renders the harmony and contrast verdict of sel.
func describeSelection(sel palette.Selection, v palette.Verdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", sel.Scheme)
	for _, c := range palette.Harmony(sel.Color, sel.Scheme) {
		fmt.Fprintf(&b, " `%s`", c.Hex())
	}
	fmt.Fprintf(&b, "\n\ncontrast %.2f:1 · %s · text `%s`", v.Ratio, v.Level(), v.Recommended.Hex())
	return b.String()
}

// hover produces a Hover response for the given cursor position. Over a
// color it shows hex, RGB and HSL; over the file's current color it also
// shows the scheme harmony and contrast verdict.
// Returns nil if no color is found at the position.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}

		md := describeColor(cl.Color)
		if cl.IsCall {
			md = fmt.Sprintf("**%s**\n\n%s", extractText(content, cl.Range), md)
		}
		if cl.Current && result.Selection != nil && result.Verdict != nil {
			md += "\n\n" + describeSelection(*result.Selection, *result.Verdict)
		}

		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: md,
			},
			Range: &cl.Range,
		}
	}

	return nil
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return hover(result, content, params.Position), nil
}
