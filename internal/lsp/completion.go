package lsp

import (
	"fmt"
	"strings"

	"github.com/jsvensson/rolodex/internal/palette"
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
	contextRoot    blockContext = iota
	contextHistory              // inside history {}
	contextOther                // inside an unknown block
)

// complete produces completion items given document content and cursor
// position. This is the core logic, decoupled from the LSP protocol handler
// for testability.
func complete(content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	if strings.Contains(textBeforeCursor, "=") {
		if attr, ok := valuePosition(textBeforeCursor); ok {
			return valueCompletions(attr)
		}
		return nil
	}

	switch determineBlockContext(lines, int(pos.Line)) {
	case contextRoot:
		return rootCompletions(findDefinedAttributes(lines, int(pos.Line)))
	case contextHistory:
		return attributeCompletions(historyAttributes, findDefinedAttributes(lines, int(pos.Line)))
	}
	return nil
}

// valuePosition reports whether the cursor is right after "name =" or
// inside the opening quote of its value, and returns the attribute name.
func valuePosition(textBeforeCursor string) (string, bool) {
	eqIdx := strings.LastIndex(textBeforeCursor, "=")
	if eqIdx == -1 {
		return "", false
	}
	name := strings.TrimSpace(textBeforeCursor[:eqIdx])
	if name == "" || strings.ContainsAny(name, " {\"") {
		return "", false
	}
	afterEq := strings.TrimSpace(textBeforeCursor[eqIdx+1:])
	if afterEq != "" && afterEq != "\"" {
		return "", false
	}
	return name, true
}

// valueCompletions returns completions for the value of the named attribute.
func valueCompletions(attr string) []protocol.CompletionItem {
	switch attr {
	case "scheme":
		kind := protocol.CompletionItemKindEnumMember
		var items []protocol.CompletionItem
		for _, s := range palette.Schemes() {
			insert := "\"" + s.String() + "\""
			items = append(items, protocol.CompletionItem{
				Label:      s.String(),
				Kind:       &kind,
				Detail:     strPtr(schemeDetail(s)),
				InsertText: &insert,
			})
		}
		return items
	case "same_color_text", "mix_it_up":
		kind := protocol.CompletionItemKindValue
		return []protocol.CompletionItem{
			{Label: "true", Kind: &kind},
			{Label: "false", Kind: &kind},
		}
	case "color":
		return functionCompletions()
	}
	return nil
}

func schemeDetail(s palette.Scheme) string {
	if s.Len() == 1 {
		return "1 color"
	}
	return fmt.Sprintf("%d colors", s.Len())
}

// functionCompletions returns snippets for the color functions.
func functionCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	hslSnippet := "hsl(${1:0}, ${2:100}, ${3:50})"
	brightenSnippet := "brighten(${1:color}, ${2:0.1})"
	darkenSnippet := "darken(${1:color}, ${2:0.1})"

	return []protocol.CompletionItem{
		{
			Label:            "hsl",
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr("hsl(hue, saturation, lightness)"),
			InsertText:       &hslSnippet,
			InsertTextFormat: &snippetFormat,
		},
		{
			Label:            "brighten",
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr("brighten(color, percentage)"),
			InsertText:       &brightenSnippet,
			InsertTextFormat: &snippetFormat,
		},
		{
			Label:            "darken",
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr("darken(color, percentage)"),
			InsertText:       &darkenSnippet,
			InsertTextFormat: &snippetFormat,
		},
	}
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		if opens > 0 {
			if parts := strings.Fields(line); len(parts) >= 1 {
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

	switch {
	case len(stack) == 0:
		return contextRoot
	case len(stack) == 1 && stack[0] == "history":
		return contextHistory
	}
	return contextOther
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// directly in it. Attributes of nested blocks are skipped.
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		depth += strings.Count(line, "}") - strings.Count(line, "{")
		if depth < 0 {
			startLine = i + 1
			break
		}
	}

	depth = 0
	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if depth == 0 {
			if eqIdx := strings.Index(line, "="); eqIdx > 0 {
				name := strings.TrimSpace(line[:eqIdx])
				if !strings.ContainsAny(name, " {") {
					defined[name] = true
				}
			}
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
	}

	return defined
}

// attributeCompletions returns the names not yet defined in the block.
func attributeCompletions(names []string, defined map[string]bool) []protocol.CompletionItem {
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, name := range names {
		if defined[name] {
			continue
		}
		insert := name + " = "
		items = append(items, protocol.CompletionItem{
			Label:      name,
			Kind:       &kind,
			InsertText: &insert,
		})
	}
	return items
}

// rootCompletions returns the undefined top-level attributes and a
// history block snippet.
func rootCompletions(defined map[string]bool) []protocol.CompletionItem {
	items := attributeCompletions(topLevelAttributes, defined)

	snippetFormat := protocol.InsertTextFormatSnippet
	snippet := "history {\n  color  = \"$1\"\n  scheme = \"${2:monochrome}\"\n}"
	items = append(items, protocol.CompletionItem{
		Label:            "history",
		Kind:             completionKindPtr(protocol.CompletionItemKindSnippet),
		Detail:           strPtr("history entry"),
		InsertText:       &snippet,
		InsertTextFormat: &snippetFormat,
	})
	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	return complete(content, params.Position), nil
}
