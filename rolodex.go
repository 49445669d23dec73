// Package rolodex derives a complete UI palette from one base color and a
// harmony scheme, checks it against WCAG contrast minimums, and commits
// accepted palettes to the preference store and the active theme.
package rolodex

import (
	"errors"
	"fmt"

	"github.com/jsvensson/rolodex/internal/engine"
	"github.com/jsvensson/rolodex/internal/palette"
	"github.com/jsvensson/rolodex/internal/prefs"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("rolodex")

// ErrInaccessible is returned by Commit when the palette fails WCAG AA
// and the caller did not force it.
var ErrInaccessible = errors.New("palette fails WCAG AA contrast")

// Preview derives the palette, properties and contrast verdict for sel.
// It has no side effects.
func Preview(sel palette.Selection) *engine.Data {
	return engine.NewData(sel)
}

// Load opens the preference file at path.
func Load(path string) (*prefs.File, error) {
	f, err := prefs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}
	return f, nil
}

// Current returns the selection stored in store.
func Current(store prefs.Store) palette.Selection {
	return palette.Selection{
		Color:         store.Color(),
		Scheme:        store.Scheme(),
		SameColorText: store.SameColorText(),
		MixItUp:       store.MixItUp(),
	}
}

// Restore applies the stored selection to sink. Stored selections were
// accepted when committed, so no contrast gate applies.
func Restore(store prefs.Store, sink palette.Sink) *engine.Data {
	sel := Current(store)
	palette.Apply(sink, sel)
	return Preview(sel)
}

// Commit evaluates sel and, if it meets WCAG AA or force is set, stores it,
// records it in the history and applies it to sink. A failing palette is
// returned alongside ErrInaccessible so the caller can show the verdict.
func Commit(store prefs.Store, sink palette.Sink, sel palette.Selection, force bool) (*engine.Data, error) {
	p := Preview(sel)
	if !p.Verdict.MeetsAA && !force {
		log.Info("commit refused", "color", sel.Color.Hex(), "ratio", p.Verdict.Ratio)
		return p, fmt.Errorf("%w: %s", ErrInaccessible, p.Verdict.Warning)
	}

	store.SetColor(sel.Color)
	store.SetScheme(sel.Scheme)
	store.SetSameColorText(sel.SameColorText)
	store.SetMixItUp(sel.MixItUp)
	store.AppendHistory(prefs.HistoryEntry{Color: sel.Color, Scheme: sel.Scheme})

	if s, ok := store.(prefs.Saver); ok {
		if err := s.Save(); err != nil {
			return p, fmt.Errorf("saving preferences: %w", err)
		}
	}

	palette.Apply(sink, sel)
	log.Info("palette committed", "color", sel.Color.Hex(), "scheme", sel.Scheme.String(), "forced", force && !p.Verdict.MeetsAA)
	return p, nil
}
