package palette

import (
	"fmt"
	"sort"

	"github.com/jsvensson/rolodex/internal/color"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("rolodex.palette")

// Selection is everything the user picks to produce a theme.
type Selection struct {
	Color         color.Color
	Scheme        Scheme
	SameColorText bool
	MixItUp       bool
}

// TextOptions returns the text flags of the selection.
func (s Selection) TextOptions() TextOptions {
	return TextOptions{SameColorText: s.SameColorText, MixItUp: s.MixItUp}
}

// Properties is a flat mapping of CSS custom-property name to color value.
type Properties map[string]string

// Names returns the property names in sorted order.
func (p Properties) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy of p.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Sink receives a complete set of properties, replacing whatever it held.
type Sink interface {
	Apply(Properties)
}

// family is a classic role group that gets base, light and dark variants.
type family struct {
	name  string
	index int
	last  bool // take the last scheme color instead of index
}

var families = []family{
	{name: "primary", index: 0},
	{name: "secondary", index: 1},
	{name: "accent", index: 2},
	{name: "success", index: 1},
	{name: "info", index: 2},
	{name: "warning", index: 3},
	{name: "complementary", last: true},
	{name: "user", index: 0},
}

// pick returns colors[index], or colors[0] when the scheme is too short.
func pick(colors []color.Color, f family) color.Color {
	if f.last {
		return colors[len(colors)-1]
	}
	if f.index < len(colors) {
		return colors[f.index]
	}
	return colors[0]
}

// PropertyName returns the custom-property name for a role.
func PropertyName(r Role) string {
	return "--" + string(r)
}

// Build derives the complete property set for a selection without applying it.
func Build(sel Selection) Properties {
	colors := Harmony(sel.Color, sel.Scheme)
	roles := ElementMapping(colors, sel.TextOptions())

	props := make(Properties, len(roles)+len(families)*4+len(colors))
	for _, r := range Roles {
		props[PropertyName(r)] = roles[r].Hex()
	}

	for _, f := range families {
		c := pick(colors, f)
		props["--"+f.name] = c.Hex()
		props["--"+f.name+"-light"] = Light(c).Hex()
		props["--"+f.name+"-dark"] = Dark(c).Hex()
		props["--"+f.name+"-hsl"] = color.ToHSL(c).String()
	}

	for i, c := range colors {
		props[fmt.Sprintf("--scheme-%d", i+1)] = c.Hex()
	}

	return props
}

// Apply builds the properties for sel and hands them to sink in one call.
// The returned map is the same set the sink received.
func Apply(sink Sink, sel Selection) Properties {
	props := Build(sel)
	log.Debug("applying theme",
		"color", sel.Color.Hex(),
		"scheme", sel.Scheme.String(),
		"sameColorText", sel.SameColorText,
		"mixItUp", sel.MixItUp,
		"properties", len(props))
	if sink != nil {
		sink.Apply(props.Clone())
	}
	return props
}
