package palette

import (
	"math"

	"github.com/jsvensson/rolodex/internal/color"
)

// Role names a UI surface that receives a color.
type Role string

const (
	RoleBackground       Role = "background"
	RoleText             Role = "text"
	RoleTitle            Role = "title"
	RoleTitleText        Role = "title-text"
	RoleButtonBackground Role = "button-background"
	RoleButtonText       Role = "button-text"
	RoleTagBackground    Role = "tag-background"
	RoleTagText          Role = "tag-text"
	RolePillBackground   Role = "pill-background"
	RolePillText         Role = "pill-text"
	RoleInfoBackground   Role = "info-background"
	RoleInfoText         Role = "info-text"
)

// Roles lists every role in output order.
var Roles = []Role{
	RoleBackground, RoleText,
	RoleTitle, RoleTitleText,
	RoleButtonBackground, RoleButtonText,
	RoleTagBackground, RoleTagText,
	RolePillBackground, RolePillText,
	RoleInfoBackground, RoleInfoText,
}

// surfaces pairs each background role with the text role drawn on it.
var surfaces = []struct {
	bg, text Role
}{
	{RoleBackground, RoleText},
	{RoleTitle, RoleTitleText},
	{RoleButtonBackground, RoleButtonText},
	{RoleTagBackground, RoleTagText},
	{RolePillBackground, RolePillText},
	{RoleInfoBackground, RoleInfoText},
}

// RoleMap assigns a color to every Role.
type RoleMap map[Role]color.Color

// TextOptions controls how text colors are chosen.
type TextOptions struct {
	// SameColorText tints text with a theme hue instead of using pure
	// black or white.
	SameColorText bool
	// MixItUp takes the text hue from the second scheme color. Only
	// meaningful with SameColorText and at least two scheme colors.
	MixItUp bool
}

// Lightness targets for variants and tinted text.
const (
	variantShift       = 20.0
	maxVariant         = 95.0
	minVariant         = 5.0
	darkTextLightness  = 25.0
	lightTextLightness = 90.0
)

// Light returns the light variant of c: same hue and saturation, lightness
// raised by 20 points and capped at 95.
func Light(c color.Color) color.Color {
	hsl := color.ToHSL(c)
	return color.FromHSL(hsl.H, hsl.S, math.Min(hsl.L+variantShift, maxVariant))
}

// Dark returns the dark variant of c: lightness lowered by 20 points, floored at 5.
func Dark(c color.Color) color.Color {
	hsl := color.ToHSL(c)
	return color.FromHSL(hsl.H, hsl.S, math.Max(hsl.L-variantShift, minVariant))
}

// ContrastTextColor returns the text color for the background bg. Without
// sameColorText it is pure black on light backgrounds and pure white on dark
// ones; with it the text shares bg's hue and saturation at lightness 25 on
// light backgrounds and 90 on dark ones.
func ContrastTextColor(bg color.Color, bgIsLight, sameColorText bool) color.Color {
	return textColor(bg, bg, bgIsLight, sameColorText)
}

// textColor is ContrastTextColor with the tint taken from family rather than bg.
func textColor(bg, family color.Color, bgIsLight, sameColorText bool) color.Color {
	if !sameColorText {
		if bgIsLight {
			return color.Black
		}
		return color.White
	}
	if bgIsLight {
		return color.WithLightness(family, darkTextLightness)
	}
	return color.WithLightness(family, lightTextLightness)
}

// ElementMapping assigns scheme colors to UI roles. The more colors the
// scheme has, the more distinct the assignments; the title always takes the
// last color once there are two or more, and with four or more the pill
// background does too. An empty slice is treated as a single black color.
func ElementMapping(colors []color.Color, opts TextOptions) RoleMap {
	if len(colors) == 0 {
		colors = []color.Color{color.Black}
	}
	c0 := colors[0]
	last := colors[len(colors)-1]

	m := make(RoleMap, len(Roles))
	m[RoleBackground] = c0

	switch len(colors) {
	case 1:
		m[RoleTitle] = Dark(c0)
		m[RoleButtonBackground] = Dark(c0)
		m[RoleTagBackground] = Light(c0)
		m[RolePillBackground] = Light(c0)
		m[RoleInfoBackground] = Light(c0)
	case 2:
		c1 := colors[1]
		m[RoleTitle] = last
		m[RoleButtonBackground] = c1
		m[RoleTagBackground] = Light(c1)
		m[RolePillBackground] = Dark(c1)
		m[RoleInfoBackground] = Light(c0)
	case 3:
		c1, c2 := colors[1], colors[2]
		m[RoleTitle] = last
		m[RoleButtonBackground] = c1
		m[RoleTagBackground] = c2
		m[RolePillBackground] = Light(c1)
		m[RoleInfoBackground] = Light(c2)
	default:
		c1, c2 := colors[1], colors[2]
		m[RoleTitle] = last
		m[RoleButtonBackground] = c1
		m[RoleTagBackground] = c2
		m[RolePillBackground] = last
		m[RoleInfoBackground] = Light(c1)
	}

	mix := opts.SameColorText && opts.MixItUp && len(colors) >= 2
	for _, s := range surfaces {
		bg := m[s.bg]
		family := bg
		if mix {
			family = colors[1]
		}
		m[s.text] = textColor(bg, family, color.IsLight(bg), opts.SameColorText)
	}

	return m
}
