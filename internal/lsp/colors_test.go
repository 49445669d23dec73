package lsp

import (
	"testing"

	"github.com/jsvensson/rolodex/internal/color"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestColorToLSP(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  protocol.Color
	}{
		{
			name:  "pure red",
			input: color.Color{R: 255},
			want:  protocol.Color{Red: 1.0, Alpha: 1.0},
		},
		{
			name:  "white",
			input: color.White,
			want:  protocol.Color{Red: 1.0, Green: 1.0, Blue: 1.0, Alpha: 1.0},
		},
		{
			name:  "mid gray",
			input: color.Color{R: 128, G: 128, B: 128},
			want:  protocol.Color{Red: float32(128) / 255.0, Green: float32(128) / 255.0, Blue: float32(128) / 255.0, Alpha: 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colorToLSP(tt.input)
			if got != tt.want {
				t.Errorf("colorToLSP(%s) = %+v, want %+v", tt.input.Hex(), got, tt.want)
			}
		})
	}
}

func TestColorFromLSP(t *testing.T) {
	tests := []struct {
		name  string
		input protocol.Color
		want  string
	}{
		{"amber", colorToLSP(color.MustParseHex("#f59e0b")), "#f59e0b"},
		{"blue", colorToLSP(color.MustParseHex("#3b82f6")), "#3b82f6"},
		{"rounds", protocol.Color{Red: 0.5, Green: 0.5, Blue: 0.5, Alpha: 1}, "#808080"},
		{"clamps", protocol.Color{Red: 1.5, Green: -0.2, Blue: 0, Alpha: 1}, "#ff0000"},
		{"ignores alpha", protocol.Color{Red: 1, Alpha: 0}, "#ff0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := colorFromLSP(tt.input).Hex(); got != tt.want {
				t.Errorf("colorFromLSP(%+v) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDocumentColors(t *testing.T) {
	result := Analyze("prefs.hcl", validPrefs)
	infos := documentColors(result)

	if len(infos) != 3 {
		t.Fatalf("expected 3 ColorInformation items, got %d", len(infos))
	}

	want := []struct {
		line uint32
		hex  string
	}{
		{1, "#3b82f6"},
		{7, "#f59e0b"},
		{12, "#808080"},
	}
	for i, w := range want {
		if infos[i].Range.Start.Line != w.line {
			t.Errorf("item %d: line %d, want %d", i, infos[i].Range.Start.Line, w.line)
		}
		if got := colorFromLSP(infos[i].Color).Hex(); got != w.hex {
			t.Errorf("item %d: color %s, want %s", i, got, w.hex)
		}
		if infos[i].Color.Alpha != 1.0 {
			t.Errorf("item %d: alpha %f, want 1.0", i, infos[i].Color.Alpha)
		}
	}
}

func TestDocumentColors_NilResult(t *testing.T) {
	infos := documentColors(nil)
	if infos == nil {
		t.Fatal("expected non-nil empty slice for nil result")
	}
	if len(infos) != 0 {
		t.Errorf("expected 0 items, got %d", len(infos))
	}
}

func TestColorPresentation(t *testing.T) {
	amber := colorToLSP(color.MustParseHex("#f59e0b"))

	tests := []struct {
		name    string
		content string
		rng     protocol.Range
		want    []string
	}{
		{
			name:    "quoted literal",
			content: `color = "#3b82f6"`,
			rng:     lineRange(0, 8, 17),
			want:    []string{`"#f59e0b"`, "hsl(38, 92, 50)"},
		},
		{
			name:    "bare hex",
			content: `color = "#3b82f6"`,
			rng:     lineRange(0, 9, 16),
			want:    []string{"#f59e0b"},
		},
		{
			name:    "function call",
			content: `color = darken("#3b82f6", 0.1)`,
			rng:     lineRange(0, 8, 30),
			want:    []string{`"#f59e0b"`, "hsl(38, 92, 50)"},
		},
		{
			name:    "not a color",
			content: `scheme = triadic`,
			rng:     lineRange(0, 9, 16),
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colorPresentation(tt.content, &protocol.ColorPresentationParams{
				Color: amber,
				Range: tt.rng,
			})
			if len(got) != len(tt.want) {
				t.Fatalf("got %d presentations, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, p := range got {
				if p.TextEdit == nil {
					t.Fatalf("presentation %d has no text edit", i)
				}
				if p.TextEdit.NewText != tt.want[i] {
					t.Errorf("presentation %d: NewText = %q, want %q", i, p.TextEdit.NewText, tt.want[i])
				}
				if p.TextEdit.Range != tt.rng {
					t.Errorf("presentation %d: range %+v, want %+v", i, p.TextEdit.Range, tt.rng)
				}
			}
		})
	}
}

func TestColorPresentation_LabelIsHex(t *testing.T) {
	got := colorPresentation(`color = "#000000"`, &protocol.ColorPresentationParams{
		Color: protocol.Color{Red: 1, Alpha: 1},
		Range: lineRange(0, 8, 17),
	})
	if len(got) == 0 || got[0].Label != "#ff0000" {
		t.Errorf("expected first label #ff0000, got %+v", got)
	}
}

func lineRange(line, start, end uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: start},
		End:   protocol.Position{Line: line, Character: end},
	}
}
