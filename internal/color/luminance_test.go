package color

import (
	"math"
	"testing"
)

func TestContrastRatioBlackWhite(t *testing.T) {
	got := ContrastRatio(Black, White)
	if math.Abs(got-21.0) > 1e-9 {
		t.Errorf("ContrastRatio(black, white) = %v, want 21", got)
	}
	if got := ContrastRatio(White, White); got != 1 {
		t.Errorf("ContrastRatio(white, white) = %v, want 1", got)
	}
}

func TestContrastRatioSymmetric(t *testing.T) {
	samples := []Color{
		Black, White,
		MustParseHex("#f59e0b"),
		MustParseHex("#3b82f6"),
		MustParseHex("#191724"),
		MustParseHex("#eb6f92"),
		MustParseHex("#808080"),
	}
	for _, a := range samples {
		for _, b := range samples {
			if ContrastRatio(a, b) != ContrastRatio(b, a) {
				t.Errorf("ContrastRatio(%s, %s) != ContrastRatio(%s, %s)", a, b, b, a)
			}
		}
	}
}

func TestContrastRatioAmber(t *testing.T) {
	amber := MustParseHex("#f59e0b")
	tests := []struct {
		name  string
		other Color
		want  float64
	}{
		{"against black", Black, 9.778},
		{"against white", White, 2.148},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContrastRatio(amber, tt.other)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("ContrastRatio(#f59e0b, %s) = %.4f, want %.3f", tt.other, got, tt.want)
			}
		})
	}
}

func TestLuminanceBounds(t *testing.T) {
	if got := Luminance(Black); got != 0 {
		t.Errorf("Luminance(black) = %v, want 0", got)
	}
	if got := Luminance(White); math.Abs(got-1) > 1e-12 {
		t.Errorf("Luminance(white) = %v, want 1", got)
	}
}

func TestIsLight(t *testing.T) {
	tests := []struct {
		hex  string
		want bool
	}{
		{"#ffffff", true},
		{"#000000", false},
		{"#f59e0b", true},
		{"#191724", false},
		{"#3b82f6", true},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			if got := IsLight(MustParseHex(tt.hex)); got != tt.want {
				t.Errorf("IsLight(%s) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}
