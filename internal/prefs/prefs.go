// Package prefs stores the user's color preferences and color history.
package prefs

import (
	"errors"
	"slices"
	"sync"

	"github.com/jsvensson/rolodex/internal/color"
	"github.com/jsvensson/rolodex/internal/palette"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("rolodex.prefs")

// MaxHistory is the number of history entries kept. Appending beyond it
// evicts the oldest entry.
const MaxHistory = 20

// Version is the preference file format written by this package.
const Version = 2

// ErrUnknownVersion is returned when a preference file declares a format
// version this package cannot read.
var ErrUnknownVersion = errors.New("unknown preferences version")

// Defaults used when no preference has been stored yet.
var (
	DefaultColor  = color.MustParseHex("#3b82f6")
	DefaultScheme = palette.Monochrome
)

// HistoryEntry is a previously committed color together with the scheme
// it was committed with.
type HistoryEntry struct {
	Color  color.Color
	Scheme palette.Scheme
}

// Store is the preference store the rolodex commits to.
type Store interface {
	Color() color.Color
	SetColor(color.Color)
	Scheme() palette.Scheme
	SetScheme(palette.Scheme)
	SameColorText() bool
	SetSameColorText(bool)
	MixItUp() bool
	SetMixItUp(bool)
	// History returns entries oldest first.
	History() []HistoryEntry
	AppendHistory(HistoryEntry)
}

// Saver is implemented by stores that buffer changes until saved.
type Saver interface {
	Save() error
}

// Memory is an in-memory Store. The zero value is not ready for use; call
// NewMemory.
type Memory struct {
	mu            sync.RWMutex
	color         color.Color
	scheme        palette.Scheme
	sameColorText bool
	mixItUp       bool
	history       []HistoryEntry
}

// NewMemory returns a Memory store holding the default preferences.
func NewMemory() *Memory {
	return &Memory{color: DefaultColor, scheme: DefaultScheme}
}

func (m *Memory) Color() color.Color {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.color
}

func (m *Memory) SetColor(c color.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.color = c
}

func (m *Memory) Scheme() palette.Scheme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scheme
}

func (m *Memory) SetScheme(s palette.Scheme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheme = s
}

func (m *Memory) SameColorText() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sameColorText
}

func (m *Memory) SetSameColorText(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sameColorText = v
}

func (m *Memory) MixItUp() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mixItUp
}

func (m *Memory) SetMixItUp(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mixItUp = v
}

// History returns a copy of the stored history, oldest first.
func (m *Memory) History() []HistoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.history)
}

func (m *Memory) AppendHistory(e HistoryEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = appendCapped(m.history, e)
	log.Debug("history appended", "color", e.Color.Hex(), "scheme", e.Scheme.String(), "len", len(m.history))
}

// Selection returns the stored preferences as a palette selection.
func (m *Memory) Selection() palette.Selection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return palette.Selection{
		Color:         m.color,
		Scheme:        m.scheme,
		SameColorText: m.sameColorText,
		MixItUp:       m.mixItUp,
	}
}

func (m *Memory) load(d *Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.color = d.Color
	m.scheme = d.Scheme
	m.sameColorText = d.SameColorText
	m.mixItUp = d.MixItUp
	m.history = capHistory(slices.Clone(d.History))
}

func (m *Memory) document() *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &Document{
		Version:       Version,
		Color:         m.color,
		Scheme:        m.scheme,
		SameColorText: m.sameColorText,
		MixItUp:       m.mixItUp,
		History:       slices.Clone(m.history),
	}
}

// appendCapped appends e and drops the oldest entries beyond MaxHistory.
func appendCapped(h []HistoryEntry, e HistoryEntry) []HistoryEntry {
	return capHistory(append(h, e))
}

func capHistory(h []HistoryEntry) []HistoryEntry {
	if over := len(h) - MaxHistory; over > 0 {
		h = slices.Delete(h, 0, over)
	}
	return h
}
