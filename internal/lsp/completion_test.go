package lsp

import (
	"slices"
	"sort"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func completionLabels(items []protocol.CompletionItem) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	sort.Strings(labels)
	return labels
}

func findItem(items []protocol.CompletionItem, label string) *protocol.CompletionItem {
	for i := range items {
		if items[i].Label == label {
			return &items[i]
		}
	}
	return nil
}

func TestCompletion_Root(t *testing.T) {
	tests := []struct {
		name    string
		content string
		pos     protocol.Position
		want    []string
	}{
		{
			name:    "empty file",
			content: "",
			pos:     protocol.Position{Line: 0, Character: 0},
			want:    []string{"color", "history", "mix_it_up", "same_color_text", "scheme", "version"},
		},
		{
			name:    "skips defined attributes",
			content: "version = 2\ncolor = \"#3b82f6\"\n\n",
			pos:     protocol.Position{Line: 2, Character: 0},
			want:    []string{"history", "mix_it_up", "same_color_text", "scheme"},
		},
		{
			name:    "history attributes do not count at root",
			content: "version = 2\n\nhistory {\n  color  = \"#ff0000\"\n  scheme = \"triadic\"\n}\n\n",
			pos:     protocol.Position{Line: 6, Character: 0},
			want:    []string{"color", "history", "mix_it_up", "same_color_text", "scheme"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := completionLabels(complete(tt.content, tt.pos))
			if !slices.Equal(got, tt.want) {
				t.Errorf("labels = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompletion_HistoryBlock(t *testing.T) {
	content := "version = 2\n\nhistory {\n  color = \"#ff0000\"\n  \n}\n"

	got := completionLabels(complete(content, protocol.Position{Line: 4, Character: 2}))
	if want := []string{"scheme"}; !slices.Equal(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}

	got = completionLabels(complete("history {\n  \n}\n", protocol.Position{Line: 1, Character: 2}))
	if want := []string{"color", "scheme"}; !slices.Equal(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestCompletion_UnknownBlock(t *testing.T) {
	items := complete("favorites {\n  \n}\n", protocol.Position{Line: 1, Character: 2})
	if len(items) != 0 {
		t.Errorf("expected no completions inside an unknown block, got %v", completionLabels(items))
	}
}

func TestCompletion_SchemeValues(t *testing.T) {
	for _, line := range []string{"scheme = ", `scheme = "`, `  scheme = `} {
		t.Run(line, func(t *testing.T) {
			items := complete(line, protocol.Position{Line: 0, Character: uint32(len(line))})
			want := []string{"complementary", "monochrome", "rectangular", "split-complementary", "square", "triadic"}
			if got := completionLabels(items); !slices.Equal(got, want) {
				t.Fatalf("labels = %v, want %v", got, want)
			}
			item := findItem(items, "triadic")
			if item.InsertText == nil || *item.InsertText != `"triadic"` {
				t.Errorf("triadic InsertText = %v, want quoted name", item.InsertText)
			}
			if item.Detail == nil || *item.Detail != "3 colors" {
				t.Errorf("triadic Detail = %v, want 3 colors", item.Detail)
			}
			if d := findItem(items, "monochrome").Detail; d == nil || *d != "1 color" {
				t.Errorf("monochrome Detail = %v, want 1 color", d)
			}
		})
	}
}

func TestCompletion_BoolValues(t *testing.T) {
	for _, line := range []string{"same_color_text = ", "mix_it_up = "} {
		items := complete(line, protocol.Position{Line: 0, Character: uint32(len(line))})
		if got, want := completionLabels(items), []string{"false", "true"}; !slices.Equal(got, want) {
			t.Errorf("%q: labels = %v, want %v", line, got, want)
		}
	}
}

func TestCompletion_Functions(t *testing.T) {
	content := "version = 2\n\nhistory {\n  color = \n}\n"
	items := complete(content, protocol.Position{Line: 3, Character: 10})

	if got, want := completionLabels(items), []string{"brighten", "darken", "hsl"}; !slices.Equal(got, want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for _, item := range items {
		if item.Kind == nil || *item.Kind != protocol.CompletionItemKindFunction {
			t.Errorf("%s: expected function kind", item.Label)
		}
		if item.InsertTextFormat == nil || *item.InsertTextFormat != protocol.InsertTextFormatSnippet {
			t.Errorf("%s: expected snippet format", item.Label)
		}
	}
	if hsl := findItem(items, "hsl"); *hsl.InsertText != "hsl(${1:0}, ${2:100}, ${3:50})" {
		t.Errorf("hsl snippet = %q", *hsl.InsertText)
	}
}

func TestCompletion_NoValueCompletions(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"value already typed", `color = "#3b`},
		{"unknown attribute", "colour = "},
		{"version", "version = "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := complete(tt.line, protocol.Position{Line: 0, Character: uint32(len(tt.line))})
			if len(items) != 0 {
				t.Errorf("expected no completions, got %v", completionLabels(items))
			}
		})
	}
}

func TestCompletion_HistorySnippet(t *testing.T) {
	item := findItem(complete("", protocol.Position{}), "history")
	if item == nil {
		t.Fatal("expected history snippet")
	}
	if item.InsertTextFormat == nil || *item.InsertTextFormat != protocol.InsertTextFormatSnippet {
		t.Error("expected snippet format")
	}
	want := "history {\n  color  = \"$1\"\n  scheme = \"${2:monochrome}\"\n}"
	if *item.InsertText != want {
		t.Errorf("InsertText = %q, want %q", *item.InsertText, want)
	}
}

func TestCompletion_PositionPastEnd(t *testing.T) {
	if items := complete("version = 2\n", protocol.Position{Line: 5}); items != nil {
		t.Errorf("expected nil for a line past the end, got %v", completionLabels(items))
	}
}
