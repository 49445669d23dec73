package lsp

import (
	"github.com/jsvensson/rolodex/internal/format"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// formatEdits returns a single edit replacing the whole document with its
// canonical layout, or no edits when the document is already formatted.
//
// The formatter works even on partial/invalid HCL, making it suitable
// for use while the user is still typing.
func formatEdits(content string) []protocol.TextEdit {
	formatted, unchanged, err := format.Check(content)
	if err != nil || unchanged {
		return []protocol.TextEdit{}
	}
	return []protocol.TextEdit{{
		Range:   wholeDocument(content),
		NewText: formatted,
	}}
}

// wholeDocument returns a range spanning all of content.
func wholeDocument(content string) protocol.Range {
	lines := splitLines(content)
	last := lines[len(lines)-1]
	return protocol.Range{
		Start: protocol.Position{},
		End: protocol.Position{
			Line:      protocol.UInteger(len(lines) - 1),
			Character: protocol.UInteger(len(last)),
		},
	}
}

// textDocumentFormatting handles textDocument/formatting requests.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return formatEdits(content), nil
}
