package prefs

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/rolodex/internal/color"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// makeHSLFunc creates an HCL function that builds a color from hue,
// saturation and lightness.
// Usage: hsl(38, 92, 50)
func makeHSLFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Returns the hex color for hue (degrees), saturation and lightness (0 to 100)",
		Params: []function.Parameter{
			{Name: "hue", Type: cty.Number},
			{Name: "saturation", Type: cty.Number},
			{Name: "lightness", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			h, _ := args[0].AsBigFloat().Float64()
			s, _ := args[1].AsBigFloat().Float64()
			l, _ := args[2].AsBigFloat().Float64()
			return cty.StringVal(color.FromHSL(h, s, l).Hex()), nil
		},
	})
}

// makeShiftFunc creates an HCL function that moves a color's lightness.
// Usage: brighten("#hex", 0.1), darken("#hex", 0.1)
func makeShiftFunc(description string, shift func(color.Color, float64) color.Color) function.Function {
	return function.New(&function.Spec{
		Description: description,
		Params: []function.Parameter{
			{Name: "color", Type: cty.String},
			{Name: "percentage", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := color.ParseHex(args[0].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			pct, _ := args[1].AsBigFloat().Float64()
			return cty.StringVal(shift(c, pct).Hex()), nil
		},
	})
}

// Functions returns the color functions available in preference files.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"hsl":      makeHSLFunc(),
		"brighten": makeShiftFunc("Brightens a color by the given percentage (-1.0 to 1.0)", color.Brighten),
		"darken":   makeShiftFunc("Darkens a color by the given percentage (0.0 to 1.0)", color.Darken),
	}
}

// EvalContext returns the HCL evaluation context used to decode
// preference files.
func EvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{Functions: Functions()}
}
