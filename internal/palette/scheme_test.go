package palette

import (
	"errors"
	"testing"

	"github.com/jsvensson/rolodex/internal/color"
)

func TestHarmonyLength(t *testing.T) {
	base := color.MustParseHex("#f59e0b")
	tests := []struct {
		scheme Scheme
		want   int
	}{
		{Monochrome, 1},
		{Complementary, 2},
		{Triadic, 3},
		{SplitComplementary, 3},
		{Square, 4},
		{Rectangular, 4},
	}

	for _, tt := range tests {
		t.Run(tt.scheme.String(), func(t *testing.T) {
			got := Harmony(base, tt.scheme)
			if len(got) != tt.want {
				t.Fatalf("len(Harmony(%s)) = %d, want %d", tt.scheme, len(got), tt.want)
			}
			if got[0] != base {
				t.Errorf("Harmony(%s)[0] = %s, want %s", tt.scheme, got[0], base)
			}
			if tt.scheme.Len() != tt.want {
				t.Errorf("%s.Len() = %d, want %d", tt.scheme, tt.scheme.Len(), tt.want)
			}
		})
	}
}

func TestHarmonyTriadicAmber(t *testing.T) {
	base := color.MustParseHex("#f59e0b")
	got := Harmony(base, Triadic)
	want := []string{"#f59e0b", "#0bf59e", "#9e0bf5"}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	baseHSL := color.ToHSL(base).Rounded()
	for i, c := range got {
		if c.Hex() != want[i] {
			t.Errorf("Harmony[%d] = %s, want %s", i, c.Hex(), want[i])
		}
		hsl := color.ToHSL(c).Rounded()
		if hsl.S != baseHSL.S || hsl.L != baseHSL.L {
			t.Errorf("Harmony[%d] = %+v, want saturation %v lightness %v", i, hsl, baseHSL.S, baseHSL.L)
		}
	}
}

func TestHarmonyOffsets(t *testing.T) {
	base := color.MustParseHex("#f59e0b")
	tests := []struct {
		scheme Scheme
		want   []string
	}{
		{Complementary, []string{"#0b62f5"}},
		{SplitComplementary, []string{"#0bd7f5", "#290bf5"}},
		{Square, []string{"#0bf529", "#0b62f5", "#f50bd7"}},
		{Rectangular, []string{"#62f50b", "#0b62f5", "#9e0bf5"}},
	}

	for _, tt := range tests {
		t.Run(tt.scheme.String(), func(t *testing.T) {
			got := Harmony(base, tt.scheme)[1:]
			for i := range tt.want {
				if got[i].Hex() != tt.want[i] {
					t.Errorf("Harmony(%s)[%d] = %s, want %s", tt.scheme, i+1, got[i].Hex(), tt.want[i])
				}
			}
		})
	}
}

func TestHarmonyUnknownScheme(t *testing.T) {
	base := color.MustParseHex("#3b82f6")
	got := Harmony(base, Scheme(42))
	if len(got) != 1 || got[0] != base {
		t.Errorf("Harmony(unknown) = %v, want [%s]", got, base)
	}
}

func TestParseScheme(t *testing.T) {
	tests := []struct {
		input   string
		want    Scheme
		wantErr bool
	}{
		{"monochrome", Monochrome, false},
		{"Complementary", Complementary, false},
		{"TRIADIC", Triadic, false},
		{"split-complementary", SplitComplementary, false},
		{"split_complementary", SplitComplementary, false},
		{"splitcomplementary", SplitComplementary, false},
		{" square ", Square, false},
		{"rectangular", Rectangular, false},
		{"tetradic", Monochrome, true},
		{"", Monochrome, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScheme(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScheme(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownScheme) {
				t.Errorf("ParseScheme(%q) error = %v, want ErrUnknownScheme", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseScheme(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestSchemeStringRoundTrip(t *testing.T) {
	for _, s := range Schemes() {
		got, err := ParseScheme(s.String())
		if err != nil {
			t.Fatalf("ParseScheme(%q) error: %v", s.String(), err)
		}
		if got != s {
			t.Errorf("ParseScheme(%q) = %s, want %s", s.String(), got, s)
		}
	}
	if Scheme(99).Valid() {
		t.Error("Scheme(99).Valid() = true, want false")
	}
	if got := Scheme(99).String(); got != "scheme(99)" {
		t.Errorf("Scheme(99).String() = %q", got)
	}
}

func TestOffsetsIsCopy(t *testing.T) {
	offs := Square.Offsets()
	offs[0] = 0
	if Square.Offsets()[0] != 90 {
		t.Error("Offsets() exposed internal table")
	}
}
