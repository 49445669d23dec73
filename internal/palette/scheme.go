// Package palette derives a role-mapped, accessibility-checked theme from a
// single base color and a color-harmony scheme.
package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsvensson/rolodex/internal/color"
)

// ErrUnknownScheme is returned by ParseScheme for unrecognised names.
var ErrUnknownScheme = errors.New("unknown color scheme")

// Scheme is a color-harmony pattern: a fixed list of hue offsets applied to
// the base hue.
type Scheme int

const (
	Monochrome Scheme = iota
	Complementary
	Triadic
	SplitComplementary
	Square
	Rectangular
)

var schemeNames = map[Scheme]string{
	Monochrome:         "monochrome",
	Complementary:      "complementary",
	Triadic:            "triadic",
	SplitComplementary: "split-complementary",
	Square:             "square",
	Rectangular:        "rectangular",
}

var schemeOffsets = map[Scheme][]float64{
	Monochrome:         nil,
	Complementary:      {180},
	Triadic:            {120, 240},
	SplitComplementary: {150, 210},
	Square:             {90, 180, 270},
	Rectangular:        {60, 180, 240},
}

// Schemes lists every scheme in declaration order.
func Schemes() []Scheme {
	return []Scheme{Monochrome, Complementary, Triadic, SplitComplementary, Square, Rectangular}
}

func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("scheme(%d)", int(s))
}

// Valid reports whether s is one of the declared schemes.
func (s Scheme) Valid() bool {
	_, ok := schemeNames[s]
	return ok
}

// Offsets returns the hue offsets in degrees, excluding the base itself.
func (s Scheme) Offsets() []float64 {
	return append([]float64(nil), schemeOffsets[s]...)
}

// Len returns how many colors the scheme produces, base included.
func (s Scheme) Len() int {
	return len(schemeOffsets[s]) + 1
}

// ParseScheme resolves a scheme name. Matching ignores case, and
// underscores or a missing hyphen are accepted for split-complementary.
func ParseScheme(name string) (Scheme, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	if key == "splitcomplementary" {
		key = "split-complementary"
	}
	for s, n := range schemeNames {
		if n == key {
			return s, nil
		}
	}
	return Monochrome, fmt.Errorf("%w %q (valid: %s)", ErrUnknownScheme, name, strings.Join(SchemeNames(), ", "))
}

// SchemeNames returns the canonical names in declaration order.
func SchemeNames() []string {
	names := make([]string, 0, len(schemeNames))
	for _, s := range Schemes() {
		names = append(names, s.String())
	}
	return names
}

// Harmony returns base followed by the scheme's hue-rotated colors, each with
// the saturation and lightness of base. Unknown schemes yield just [base].
func Harmony(base color.Color, s Scheme) []color.Color {
	offsets := schemeOffsets[s]
	out := make([]color.Color, 0, len(offsets)+1)
	out = append(out, base)

	hsl := color.ToHSL(base)
	for _, off := range offsets {
		out = append(out, color.FromHSL(hsl.H+off, hsl.S, hsl.L))
	}
	return out
}
