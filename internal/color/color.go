package color

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidHex is returned when a string is not a 6-digit hex color.
var ErrInvalidHex = errors.New("invalid hex color")

// Color represents an RGB color. The R, G, B uint8 fields are the source of truth;
// all output formats are derived from them.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// ParseHex parses a hex color string like "#f59e0b" into a Color.
// The leading # is optional and digits may be in either case.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("%w %q: must be 6 hex digits", ErrInvalidHex, s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return Color{}, fmt.Errorf("%w %q: %v", ErrInvalidHex, s, err)
	}
	return Color{R: r, G: g, B: b}, nil
}

// MustParseHex is like ParseHex but panics on error. Intended for literals.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as a hex string with leading #, e.g. "#f59e0b".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexBare returns the color as a hex string without leading #, e.g. "f59e0b".
func (c Color) HexBare() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// RGB returns the color as an rgb() string, e.g. "rgb(245, 158, 11)".
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}
