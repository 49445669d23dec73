package prefs

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/jsvensson/rolodex/internal/color"
	"github.com/jsvensson/rolodex/internal/format"
	"github.com/jsvensson/rolodex/internal/palette"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Document is the decoded contents of a preference file, always in the
// current format regardless of the version it was read from.
type Document struct {
	Version       int
	Color         color.Color
	Scheme        palette.Scheme
	SameColorText bool
	MixItUp       bool
	History       []HistoryEntry
}

// Selection returns the document's preferences as a palette selection.
func (d *Document) Selection() palette.Selection {
	return palette.Selection{
		Color:         d.Color,
		Scheme:        d.Scheme,
		SameColorText: d.SameColorText,
		MixItUp:       d.MixItUp,
	}
}

// DecodeError is a value error tied to a location in the source file.
type DecodeError struct {
	Subject hcl.Range
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Subject, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// header is decoded first to learn which layout the rest of the file uses.
type header struct {
	Version hcl.Expression `hcl:"version,optional"`
	Remain  hcl.Body       `hcl:",remain"`
}

type fileV1 struct {
	Version       hcl.Expression `hcl:"version,optional"`
	Color         hcl.Expression `hcl:"color,optional"`
	Scheme        hcl.Expression `hcl:"scheme,optional"`
	SameColorText bool           `hcl:"same_color_text,optional"`
	MixItUp       bool           `hcl:"mix_it_up,optional"`
	History       hcl.Expression `hcl:"history,optional"`
}

type fileV2 struct {
	Version       hcl.Expression `hcl:"version,optional"`
	Color         hcl.Expression `hcl:"color,optional"`
	Scheme        hcl.Expression `hcl:"scheme,optional"`
	SameColorText bool           `hcl:"same_color_text,optional"`
	MixItUp       bool           `hcl:"mix_it_up,optional"`
	History       []historyBlock `hcl:"history,block"`
}

type historyBlock struct {
	Color  hcl.Expression `hcl:"color"`
	Scheme hcl.Expression `hcl:"scheme,optional"`
}

// Decode parses preference file source. Files without a version, or with
// version 1, carry history as a list of hex strings and are migrated.
func Decode(src []byte, filename string) (*Document, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %w", diags)
	}

	var h header
	if diags := gohcl.DecodeBody(file.Body, nil, &h); diags.HasErrors() {
		return nil, fmt.Errorf("decoding version: %w", diags)
	}
	version, err := decodeVersion(h.Version)
	if err != nil {
		return nil, err
	}

	ctx := EvalContext()
	doc := &Document{Version: version}

	switch version {
	case 1:
		var raw fileV1
		if diags := gohcl.DecodeBody(file.Body, ctx, &raw); diags.HasErrors() {
			return nil, fmt.Errorf("decoding preferences: %w", diags)
		}
		if err := decodeSelection(doc, raw.Color, raw.Scheme, ctx); err != nil {
			return nil, err
		}
		doc.SameColorText, doc.MixItUp = raw.SameColorText, raw.MixItUp
		legacy, err := decodeStrings(raw.History)
		if err != nil {
			return nil, err
		}
		doc.History, err = Migrate(legacy)
		if err != nil {
			return nil, err
		}
		log.Info("migrated legacy history", "entries", len(doc.History))
	default:
		var raw fileV2
		if diags := gohcl.DecodeBody(file.Body, ctx, &raw); diags.HasErrors() {
			return nil, fmt.Errorf("decoding preferences: %w", diags)
		}
		if err := decodeSelection(doc, raw.Color, raw.Scheme, ctx); err != nil {
			return nil, err
		}
		doc.SameColorText, doc.MixItUp = raw.SameColorText, raw.MixItUp
		for _, b := range raw.History {
			c, err := decodeColor(b.Color, ctx, color.Black)
			if err != nil {
				return nil, fmt.Errorf("history: %w", err)
			}
			s, err := decodeScheme(b.Scheme, ctx, palette.Monochrome)
			if err != nil {
				return nil, fmt.Errorf("history: %w", err)
			}
			doc.History = append(doc.History, HistoryEntry{Color: c, Scheme: s})
		}
		doc.History = capHistory(doc.History)
	}

	return doc, nil
}

func decodeSelection(doc *Document, colorExpr, schemeExpr hcl.Expression, ctx *hcl.EvalContext) error {
	var err error
	if doc.Color, err = decodeColor(colorExpr, ctx, DefaultColor); err != nil {
		return err
	}
	doc.Scheme, err = decodeScheme(schemeExpr, ctx, DefaultScheme)
	return err
}

// Migrate converts a legacy history list of hex strings into entries.
// Legacy entries have no scheme and are recorded as monochrome. Only the
// newest MaxHistory entries are kept.
func Migrate(legacy []string) ([]HistoryEntry, error) {
	entries := make([]HistoryEntry, 0, len(legacy))
	for i, hex := range legacy {
		c, err := color.ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("history[%d]: %w", i, err)
		}
		entries = append(entries, HistoryEntry{Color: c, Scheme: palette.Monochrome})
	}
	return capHistory(entries), nil
}

func decodeVersion(expr hcl.Expression) (int, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("evaluating version: %w", diags)
	}
	if val.IsNull() {
		return 1, nil
	}
	var n int
	if err := gocty.FromCtyValue(val, &n); err != nil {
		return 0, &DecodeError{Subject: expr.Range(), Err: fmt.Errorf("version: %w", err)}
	}
	if n != 1 && n != Version {
		return 0, &DecodeError{Subject: expr.Range(), Err: fmt.Errorf("%w: %d", ErrUnknownVersion, n)}
	}
	return n, nil
}

func decodeString(expr hcl.Expression, ctx *hcl.EvalContext) (string, bool, error) {
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return "", false, diags
	}
	if val.IsNull() {
		return "", false, nil
	}
	var s string
	if err := gocty.FromCtyValue(val, &s); err != nil {
		return "", false, &DecodeError{Subject: expr.Range(), Err: err}
	}
	return s, true, nil
}

func decodeColor(expr hcl.Expression, ctx *hcl.EvalContext, fallback color.Color) (color.Color, error) {
	s, ok, err := decodeString(expr, ctx)
	if err != nil || !ok {
		return fallback, err
	}
	c, err := color.ParseHex(s)
	if err != nil {
		return fallback, &DecodeError{Subject: expr.Range(), Err: err}
	}
	return c, nil
}

func decodeScheme(expr hcl.Expression, ctx *hcl.EvalContext, fallback palette.Scheme) (palette.Scheme, error) {
	s, ok, err := decodeString(expr, ctx)
	if err != nil || !ok {
		return fallback, err
	}
	scheme, err := palette.ParseScheme(s)
	if err != nil {
		return fallback, &DecodeError{Subject: expr.Range(), Err: err}
	}
	return scheme, nil
}

func decodeStrings(expr hcl.Expression) ([]string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluating history: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.CanIterateElements() {
		return nil, &DecodeError{Subject: expr.Range(), Err: errors.New("history must be a list of colors")}
	}
	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.IsNull() || v.Type() != cty.String {
			return nil, &DecodeError{Subject: expr.Range(), Err: errors.New("history must be a list of colors")}
		}
		out = append(out, v.AsString())
	}
	return out, nil
}

// layout formats encoded documents.
var layout = format.Format

// Encode renders d in the current file format.
func Encode(d *Document) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("version", cty.NumberIntVal(Version))
	body.SetAttributeValue("color", cty.StringVal(d.Color.Hex()))
	body.SetAttributeValue("scheme", cty.StringVal(d.Scheme.String()))
	body.SetAttributeValue("same_color_text", cty.BoolVal(d.SameColorText))
	body.SetAttributeValue("mix_it_up", cty.BoolVal(d.MixItUp))

	for _, e := range d.History {
		body.AppendNewline()
		entry := body.AppendNewBlock("history", nil).Body()
		entry.SetAttributeValue("color", cty.StringVal(e.Color.Hex()))
		entry.SetAttributeValue("scheme", cty.StringVal(e.Scheme.String()))
	}

	out, err := layout(string(f.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("formatting preferences: %w", err)
	}
	return []byte(out), nil
}
