package lsp

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/rolodex/internal/color"
	"github.com/jsvensson/rolodex/internal/palette"
	"github.com/jsvensson/rolodex/internal/prefs"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
	DiagInfo    = protocol.DiagnosticSeverityInformation
)

const diagSource = "rolodex"

// Attributes allowed at the top level and inside history blocks.
var (
	topLevelAttributes = []string{"version", "color", "scheme", "same_color_text", "mix_it_up"}
	historyAttributes  = []string{"color", "scheme"}
)

// AnalysisResult holds everything learned from one preference file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Colors      []ColorLocation
	Version     int

	// Selection is the file's current preferences, set when the top-level
	// color and scheme resolved without error.
	Selection *palette.Selection
	Verdict   *palette.Verdict
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range   protocol.Range
	Color   color.Color
	IsCall  bool // produced by hsl(), brighten() or darken() rather than a literal
	Current bool // the top-level color attribute
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze parses a preference file from memory and produces diagnostics,
// color locations and the contrast verdict of the file's selection. It
// collects all problems rather than stopping at the first.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
		}
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(hcl.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	ctx := prefs.EvalContext()
	result.Version = result.analyzeVersion(body)

	sel := palette.Selection{Color: prefs.DefaultColor, Scheme: prefs.DefaultScheme}
	resolved := true

	for _, attr := range sortedAttributes(body) {
		switch attr.Name {
		case "version":
		case "color":
			c, ok := result.analyzeColor(attr, ctx, true)
			if ok {
				sel.Color = c
			}
			resolved = resolved && ok
		case "scheme":
			s, ok := result.analyzeScheme(attr, ctx)
			if ok {
				sel.Scheme = s
			}
			resolved = resolved && ok
		case "same_color_text":
			sel.SameColorText, _ = result.analyzeBool(attr, ctx)
		case "mix_it_up":
			sel.MixItUp, _ = result.analyzeBool(attr, ctx)
		case "history":
			result.analyzeLegacyHistory(attr)
		default:
			result.addWarning(attr.NameRange, fmt.Sprintf("unknown attribute %q (valid: %s, history)", attr.Name, strings.Join(topLevelAttributes, ", ")))
		}
	}

	entries := 0
	for _, block := range body.Blocks {
		if block.Type != "history" {
			result.addWarning(block.DefRange(), fmt.Sprintf("unknown block %q", block.Type))
			continue
		}
		if result.Version == 1 {
			result.addError(block.DefRange(), "history blocks require version = 2")
			continue
		}
		entries++
		result.analyzeHistoryBlock(block, ctx)
	}
	if entries > prefs.MaxHistory {
		result.addWarning(body.Blocks[0].DefRange(), fmt.Sprintf("%d history entries; only the newest %d are kept", entries, prefs.MaxHistory))
	}

	if resolved {
		verdict := palette.Evaluate(sel)
		result.Selection = &sel
		result.Verdict = &verdict
		if !verdict.MeetsAA {
			rng := hcl.Range{Filename: filename, Start: hcl.InitialPos, End: hcl.InitialPos}
			if attr, ok := body.Attributes["color"]; ok {
				rng = attr.Expr.Range()
			}
			result.addWarning(rng, verdict.Warning)
		}
	}

	return result
}

// analyzeVersion reports the declared format version, treating a missing
// version as the legacy format.
func (r *AnalysisResult) analyzeVersion(body *hclsyntax.Body) int {
	attr, ok := body.Attributes["version"]
	if !ok {
		return 1
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || val.IsNull() || val.Type() != cty.Number {
		r.addError(attr.Expr.Range(), "version must be a number")
		return prefs.Version
	}
	n, _ := val.AsBigFloat().Int64()
	if n != 1 && n != prefs.Version {
		r.addError(attr.Expr.Range(), fmt.Sprintf("%s: %d (supported: 1, %d)", prefs.ErrUnknownVersion, n, prefs.Version))
		return prefs.Version
	}
	return int(n)
}

func (r *AnalysisResult) evalString(attr *hclsyntax.Attribute, ctx *hcl.EvalContext) (string, bool) {
	val, diags := attr.Expr.Value(ctx)
	if diags.HasErrors() {
		for _, d := range diags {
			r.Diagnostics = append(r.Diagnostics, hclDiagToLSP(d))
		}
		return "", false
	}
	if val.IsNull() || val.Type() != cty.String {
		r.addError(attr.Expr.Range(), fmt.Sprintf("%s must be a string", attr.Name))
		return "", false
	}
	return val.AsString(), true
}

func (r *AnalysisResult) analyzeColor(attr *hclsyntax.Attribute, ctx *hcl.EvalContext, current bool) (color.Color, bool) {
	s, ok := r.evalString(attr, ctx)
	if !ok {
		return color.Color{}, false
	}
	c, err := color.ParseHex(s)
	if err != nil {
		r.addError(attr.Expr.Range(), err.Error())
		return color.Color{}, false
	}
	_, isCall := attr.Expr.(*hclsyntax.FunctionCallExpr)
	r.Colors = append(r.Colors, ColorLocation{
		Range:   hclRangeToLSP(attr.Expr.Range()),
		Color:   c,
		IsCall:  isCall,
		Current: current,
	})
	return c, true
}

func (r *AnalysisResult) analyzeScheme(attr *hclsyntax.Attribute, ctx *hcl.EvalContext) (palette.Scheme, bool) {
	s, ok := r.evalString(attr, ctx)
	if !ok {
		return palette.Monochrome, false
	}
	scheme, err := palette.ParseScheme(s)
	if err != nil {
		r.addError(attr.Expr.Range(), err.Error())
		return palette.Monochrome, false
	}
	return scheme, true
}

func (r *AnalysisResult) analyzeBool(attr *hclsyntax.Attribute, ctx *hcl.EvalContext) (bool, bool) {
	val, diags := attr.Expr.Value(ctx)
	if diags.HasErrors() || val.IsNull() || val.Type() != cty.Bool {
		r.addError(attr.Expr.Range(), fmt.Sprintf("%s must be true or false", attr.Name))
		return false, false
	}
	return val.True(), true
}

// analyzeLegacyHistory checks a version 1 history list of hex strings.
func (r *AnalysisResult) analyzeLegacyHistory(attr *hclsyntax.Attribute) {
	if r.Version != 1 {
		r.addError(attr.NameRange, fmt.Sprintf("history list is the version 1 format; use history blocks with version = %d", prefs.Version))
		return
	}
	tuple, ok := attr.Expr.(*hclsyntax.TupleConsExpr)
	if !ok {
		r.addError(attr.Expr.Range(), "history must be a list of colors")
		return
	}
	for _, expr := range tuple.Exprs {
		val, diags := expr.Value(nil)
		if diags.HasErrors() || val.IsNull() || val.Type() != cty.String {
			r.addError(expr.Range(), "history entries must be hex color strings")
			continue
		}
		c, err := color.ParseHex(val.AsString())
		if err != nil {
			r.addError(expr.Range(), err.Error())
			continue
		}
		r.Colors = append(r.Colors, ColorLocation{Range: hclRangeToLSP(expr.Range()), Color: c})
	}
	if len(tuple.Exprs) > prefs.MaxHistory {
		r.addWarning(attr.NameRange, fmt.Sprintf("%d history entries; only the newest %d are kept", len(tuple.Exprs), prefs.MaxHistory))
	}
	r.addInfo(attr.NameRange, fmt.Sprintf("legacy history format; saving upgrades the file to version %d", prefs.Version))
}

func (r *AnalysisResult) analyzeHistoryBlock(block *hclsyntax.Block, ctx *hcl.EvalContext) {
	if _, ok := block.Body.Attributes["color"]; !ok {
		r.addError(block.DefRange(), "history entry is missing color")
	}
	for _, attr := range sortedAttributes(block.Body) {
		switch attr.Name {
		case "color":
			r.analyzeColor(attr, ctx, false)
		case "scheme":
			r.analyzeScheme(attr, ctx)
		default:
			r.addWarning(attr.NameRange, fmt.Sprintf("unknown history attribute %q (valid: %s)", attr.Name, strings.Join(historyAttributes, ", ")))
		}
	}
	for _, nested := range block.Body.Blocks {
		r.addWarning(nested.DefRange(), fmt.Sprintf("unknown block %q", nested.Type))
	}
}

// sortedAttributes returns body's attributes in source order.
func sortedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	slices.SortFunc(attrs, func(a, b *hclsyntax.Attribute) int {
		return a.SrcRange.Start.Byte - b.SrcRange.Start.Byte
	})
	return attrs
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

func (r *AnalysisResult) add(rng hcl.Range, sev protocol.DiagnosticSeverity, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &sev,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func (r *AnalysisResult) addError(rng hcl.Range, msg string)   { r.add(rng, DiagError, msg) }
func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) { r.add(rng, DiagWarning, msg) }
func (r *AnalysisResult) addInfo(rng hcl.Range, msg string)    { r.add(rng, DiagInfo, msg) }

func strPtr(s string) *string {
	return &s
}
