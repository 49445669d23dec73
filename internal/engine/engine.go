package engine

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/jsvensson/rolodex/internal/color"
	"github.com/jsvensson/rolodex/internal/palette"
)

//go:embed templates/*.tmpl
var builtin embed.FS

// DefaultTemplate is the embedded template used when no directory is given.
const DefaultTemplate = "theme.css.tmpl"

// Engine loads and executes Go templates against a resolved theme.
type Engine struct {
	TemplatesDir string   // if empty, the embedded templates are used
	OutputDir    string   // created if missing
	Apps         []string // if non-empty, only render these template basenames
}

// Data is what templates see.
type Data struct {
	Selection  palette.Selection
	SchemeName string
	Harmony    []color.Color
	Roles      map[string]color.Color
	Properties palette.Properties
	Verdict    palette.Verdict
}

// NewData derives the template data for a selection.
func NewData(sel palette.Selection) *Data {
	harmony := palette.Harmony(sel.Color, sel.Scheme)
	roleMap := palette.ElementMapping(harmony, sel.TextOptions())
	roles := make(map[string]color.Color, len(roleMap))
	for r, c := range roleMap {
		roles[string(r)] = c
	}
	return &Data{
		Selection:  sel,
		SchemeName: sel.Scheme.String(),
		Harmony:    harmony,
		Roles:      roles,
		Properties: palette.Build(sel),
		Verdict:    palette.Evaluate(sel),
	}
}

// Run loads all .tmpl files, executes them with data, and writes one output
// file per template named after the template minus its extension.
func (e *Engine) Run(data *Data) error {
	files, err := e.templates()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for name, src := range files {
		baseName := strings.TrimSuffix(name, ".tmpl")
		if !e.shouldRender(baseName) {
			continue
		}
		if err := e.renderFile(name, src, baseName, data); err != nil {
			return err
		}
	}

	return nil
}

// templates returns template sources keyed by file name.
func (e *Engine) templates() (map[string]string, error) {
	out := make(map[string]string)

	if e.TemplatesDir == "" {
		entries, err := builtin.ReadDir("templates")
		if err != nil {
			return nil, fmt.Errorf("reading embedded templates: %w", err)
		}
		for _, entry := range entries {
			src, err := builtin.ReadFile("templates/" + entry.Name())
			if err != nil {
				return nil, fmt.Errorf("reading embedded template %s: %w", entry.Name(), err)
			}
			out[entry.Name()] = string(src)
		}
		return out, nil
	}

	matches, err := filepath.Glob(filepath.Join(e.TemplatesDir, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("globbing templates: %w", err)
	}
	for _, path := range matches {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", path, err)
		}
		out[filepath.Base(path)] = string(src)
	}
	return out, nil
}

func (e *Engine) shouldRender(name string) bool {
	// If no apps are specified, render all.
	if len(e.Apps) == 0 {
		return true
	}

	return slices.Contains(e.Apps, name)
}

func (e *Engine) renderFile(name, src, outputName string, data *Data) error {
	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	return Render(f, name, src, data)
}

// Render parses src as a template and executes it with data into w.
func Render(w io.Writer, name, src string, data *Data) error {
	tmpl, err := template.New(name).Funcs(funcMap(data)).Parse(src)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", name, err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}
	return nil
}

// RenderCSS writes the embedded stylesheet for data into w.
func RenderCSS(w io.Writer, data *Data) error {
	src, err := builtin.ReadFile("templates/" + DefaultTemplate)
	if err != nil {
		return fmt.Errorf("reading embedded template: %w", err)
	}
	return Render(w, DefaultTemplate, string(src), data)
}

// resolveColorPath resolves a dot-notation path to a Color.
// Supports "role.title", "scheme.2" (1-based) and "prop.primary-dark".
func resolveColorPath(path string, data *Data) (color.Color, error) {
	block, rest, ok := strings.Cut(path, ".")
	if !ok || rest == "" {
		return color.Color{}, fmt.Errorf("invalid path %q: must be block.name format", path)
	}

	switch block {
	case "role":
		c, ok := data.Roles[rest]
		if !ok {
			return color.Color{}, fmt.Errorf("role not found: %s", rest)
		}
		return c, nil

	case "scheme":
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 || n > len(data.Harmony) {
			return color.Color{}, fmt.Errorf("scheme color %q out of range (1-%d)", rest, len(data.Harmony))
		}
		return data.Harmony[n-1], nil

	case "prop":
		v, ok := data.Properties["--"+strings.TrimPrefix(rest, "--")]
		if !ok {
			return color.Color{}, fmt.Errorf("property not found: %s", rest)
		}
		c, err := color.ParseHex(v)
		if err != nil {
			return color.Color{}, fmt.Errorf("property %s is not a hex color: %w", rest, err)
		}
		return c, nil

	default:
		return color.Color{}, fmt.Errorf("unknown block %q (valid: role, scheme, prop)", block)
	}
}

// toColor accepts either a Color or a path string.
func toColor(v any, data *Data) (color.Color, error) {
	switch c := v.(type) {
	case color.Color:
		return c, nil
	case string:
		return resolveColorPath(c, data)
	default:
		return color.Color{}, fmt.Errorf("expected color or path, got %T", v)
	}
}

func funcMap(data *Data) template.FuncMap {
	return template.FuncMap{
		"hex": func(v any) (string, error) {
			c, err := toColor(v, data)
			return c.Hex(), err
		},
		"hexBare": func(v any) (string, error) {
			c, err := toColor(v, data)
			return c.HexBare(), err
		},
		"rgb": func(v any) (string, error) {
			c, err := toColor(v, data)
			return c.RGB(), err
		},
		"hsl": func(v any) (string, error) {
			c, err := toColor(v, data)
			return color.ToHSL(c).String(), err
		},
		"prop": func(name string) (string, error) {
			v, ok := data.Properties["--"+strings.TrimPrefix(name, "--")]
			if !ok {
				return "", fmt.Errorf("property not found: %s", name)
			}
			return v, nil
		},
	}
}
