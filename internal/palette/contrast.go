package palette

import (
	"fmt"
	"math"

	"github.com/jsvensson/rolodex/internal/color"
)

// WCAG 2.x thresholds for normal-size text.
const (
	AAThreshold  = 4.5
	AAAThreshold = 7.0
)

// Pair is one foreground/background combination that was measured.
type Pair struct {
	Background color.Color
	Foreground color.Color
	Ratio      float64
}

// Verdict is the accessibility outcome for a candidate theme. It is
// recomputed on every change and never persisted.
type Verdict struct {
	// Ratio is the worst contrast ratio among the relevant pairs, or the
	// best achievable one when text is plain black or white.
	Ratio    float64
	MeetsAA  bool
	MeetsAAA bool
	// Warning is set only when the theme fails AA.
	Warning string
	// Recommended is the text color to draw on the base color.
	Recommended color.Color
	Pairs       []Pair
}

// CheckContrast evaluates c as a background on its own, without any
// scheme-derived text hue.
func CheckContrast(c color.Color, sameColorText bool) Verdict {
	return Evaluate(Selection{Color: c, Scheme: Monochrome, SameColorText: sameColorText})
}

// Evaluate computes the verdict for a full selection.
//
// With plain text the base color is compared against black and white and
// the better one is reported. With same-color text both lightness-flipped
// surfaces are measured, the light variant under dark text and the dark
// variant under light text, and the worse of the two decides. When MixItUp
// applies the text is tinted with the second scheme color, matching what
// ElementMapping renders.
func Evaluate(sel Selection) Verdict {
	c0 := sel.Color
	var v Verdict

	if !sel.SameColorText {
		onBlack := Pair{Background: c0, Foreground: color.Black, Ratio: color.ContrastRatio(c0, color.Black)}
		onWhite := Pair{Background: c0, Foreground: color.White, Ratio: color.ContrastRatio(c0, color.White)}
		v.Pairs = []Pair{onBlack, onWhite}
		if onBlack.Ratio >= onWhite.Ratio {
			v.Ratio, v.Recommended = onBlack.Ratio, color.Black
		} else {
			v.Ratio, v.Recommended = onWhite.Ratio, color.White
		}
	} else {
		family := c0
		if sel.MixItUp {
			if colors := Harmony(c0, sel.Scheme); len(colors) >= 2 {
				family = colors[1]
			}
		}
		lightBg, darkBg := Light(c0), Dark(c0)
		darkText := color.WithLightness(family, darkTextLightness)
		lightText := color.WithLightness(family, lightTextLightness)
		v.Pairs = []Pair{
			{Background: lightBg, Foreground: darkText, Ratio: color.ContrastRatio(lightBg, darkText)},
			{Background: darkBg, Foreground: lightText, Ratio: color.ContrastRatio(darkBg, lightText)},
		}
		v.Ratio = math.Min(v.Pairs[0].Ratio, v.Pairs[1].Ratio)
		v.Recommended = textColor(c0, family, color.IsLight(c0), true)
	}

	v.MeetsAA = v.Ratio >= AAThreshold
	v.MeetsAAA = v.Ratio >= AAAThreshold
	if !v.MeetsAA {
		v.Warning = fmt.Sprintf("contrast ratio %.2f:1 is below the WCAG AA minimum of %.1f:1", v.Ratio, AAThreshold)
	}
	return v
}

// Level returns "AAA", "AA" or "fail".
func (v Verdict) Level() string {
	switch {
	case v.MeetsAAA:
		return "AAA"
	case v.MeetsAA:
		return "AA"
	default:
		return "fail"
	}
}
