package color

import "math"

// Luminance returns the WCAG 2.x relative luminance of c, between 0 (black)
// and 1 (white).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef
func Luminance(c Color) float64 {
	r := srgbToLinear(float64(c.R) / 255.0)
	g := srgbToLinear(float64(c.G) / 255.0)
	b := srgbToLinear(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio between two colors, from 1
// (identical) to 21 (black on white). Argument order does not matter.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef
func ContrastRatio(a, b Color) float64 {
	l1 := Luminance(a)
	l2 := Luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// IsLight reports whether black text reads at least as well as white text on c.
func IsLight(c Color) bool {
	return ContrastRatio(c, Black) >= ContrastRatio(c, White)
}

// srgbToLinear expands a single gamma-encoded sRGB component in [0,1].
func srgbToLinear(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
