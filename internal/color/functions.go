package color

// Brighten returns c with its HSL lightness raised by percentage, given as a
// fraction (0.1 adds ten points of lightness). Negative values darken.
func Brighten(c Color, percentage float64) Color {
	hsl := ToHSL(c)
	return FromHSL(hsl.H, hsl.S, hsl.L+percentage*100)
}

// Darken returns c with its HSL lightness lowered by percentage.
func Darken(c Color, percentage float64) Color {
	return Brighten(c, -percentage)
}
