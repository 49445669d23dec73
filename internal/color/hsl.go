package color

import (
	"fmt"
	"math"
)

// HSL is a color in hue/saturation/lightness form. H is in degrees [0, 360),
// S and L are percentages [0, 100]. Components keep full precision so that
// converting back with FromHSL reproduces the original Color.
type HSL struct {
	H, S, L float64
}

// Rounded returns the HSL with each component rounded to the nearest integer,
// hue normalized so that 359.6 becomes 0 rather than 360.
func (h HSL) Rounded() HSL {
	return HSL{
		H: normalizeHue(math.Round(h.H)),
		S: math.Round(h.S),
		L: math.Round(h.L),
	}
}

// String returns the CSS form, e.g. "hsl(38, 92%, 50%)".
func (h HSL) String() string {
	r := h.Rounded()
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", int(r.H), int(r.S), int(r.L))
}

// Color converts back to RGB.
func (h HSL) Color() Color {
	return FromHSL(h.H, h.S, h.L)
}

// ToHSL converts a Color to HSL.
func ToHSL(c Color) HSL {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	l := (maxVal + minVal) / 2.0

	if maxVal == minVal {
		// Achromatic
		return HSL{H: 0, S: 0, L: l * 100}
	}

	d := maxVal - minVal
	var s float64
	if l > 0.5 {
		s = d / (2.0 - maxVal - minVal)
	} else {
		s = d / (maxVal + minVal)
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}

	return HSL{H: normalizeHue(h * 60), S: s * 100, L: l * 100}
}

// FromHSL converts hue (degrees, any range), saturation and lightness
// (percent) to a Color. Hue wraps modulo 360; s and l are clamped to [0, 100].
func FromHSL(h, s, l float64) Color {
	h = normalizeHue(h) / 360.0
	s = clamp(s, 0, 100) / 100.0
	l = clamp(l, 0, 100) / 100.0

	if s == 0 {
		v := to8(l)
		return Color{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1.0 + s)
	} else {
		q = l + s - l*s
	}
	p := 2.0*l - q

	return Color{
		R: to8(hueToRGB(p, q, h+1.0/3.0)),
		G: to8(hueToRGB(p, q, h)),
		B: to8(hueToRGB(p, q, h-1.0/3.0)),
	}
}

// WithLightness returns c with its lightness replaced, keeping hue and saturation.
func WithLightness(c Color, l float64) Color {
	hsl := ToHSL(c)
	return FromHSL(hsl.H, hsl.S, l)
}

// Rotate returns c with its hue shifted by the given degrees.
func Rotate(c Color, degrees float64) Color {
	hsl := ToHSL(c)
	return FromHSL(hsl.H+degrees, hsl.S, hsl.L)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1.0
	}
	if t > 1 {
		t -= 1.0
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6.0*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6.0
	}
	return p
}

func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 1) * 255.0))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
