package main

import (
	"fmt"
	"io"

	ansi "github.com/fatih/color"
	"github.com/jsvensson/rolodex/internal/color"
	"github.com/jsvensson/rolodex/internal/engine"
	"github.com/jsvensson/rolodex/internal/palette"
	"github.com/jsvensson/rolodex/internal/prefs"
)

var (
	heading = ansi.New(ansi.Bold)
	pass    = ansi.New(ansi.FgGreen)
	fail    = ansi.New(ansi.FgYellow, ansi.Bold)
)

// swatch returns a two-cell block filled with c.
func swatch(c color.Color) string {
	return ansi.BgRGB(int(c.R), int(c.G), int(c.B)).Sprint("  ")
}

// sample returns label drawn in fg on bg.
func sample(label string, bg, fg color.Color) string {
	return ansi.RGB(int(fg.R), int(fg.G), int(fg.B)).
		AddBgRGB(int(bg.R), int(bg.G), int(bg.B)).
		Sprintf(" %-18s ", label)
}

// printPreview writes the harmony, role samples and contrast verdict.
func printPreview(w io.Writer, data *engine.Data) {
	if data == nil {
		return
	}

	heading.Fprintf(w, "%s %s\n", data.Selection.Color.Hex(), data.SchemeName)
	for _, c := range data.Harmony {
		fmt.Fprintf(w, "  %s %s\n", swatch(c), c.Hex())
	}
	fmt.Fprintln(w)

	// Roles alternate background and the text drawn on it.
	for i := 0; i+1 < len(palette.Roles); i += 2 {
		bg := data.Roles[string(palette.Roles[i])]
		fg := data.Roles[string(palette.Roles[i+1])]
		fmt.Fprintf(w, "  %s %s on %s\n", sample(string(palette.Roles[i]), bg, fg), fg.Hex(), bg.Hex())
	}
	fmt.Fprintln(w)

	v := data.Verdict
	status := pass
	if !v.MeetsAA {
		status = fail
	}
	status.Fprintf(w, "contrast %.2f:1 %s", v.Ratio, v.Level())
	fmt.Fprintf(w, " (text %s)\n", v.Recommended.Hex())
	if v.Warning != "" {
		fail.Fprintln(w, v.Warning)
	}
}

// printHistoryEntry writes one numbered history line.
func printHistoryEntry(w io.Writer, n int, entry prefs.HistoryEntry) {
	fmt.Fprintf(w, "%3d  %s %s  %s\n", n, swatch(entry.Color), entry.Color.Hex(), entry.Scheme)
}
