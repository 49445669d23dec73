// Package style holds the process-wide active theme that display surfaces
// read their colors from.
package style

import (
	"sync/atomic"

	"github.com/jsvensson/rolodex/internal/palette"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("rolodex.style")

// Theme is the active set of custom properties. Apply replaces the whole set
// atomically; readers never observe a mix of two applications.
type Theme struct {
	current atomic.Pointer[palette.Properties]
	version atomic.Uint64
}

// NewTheme returns an empty theme.
func NewTheme() *Theme {
	t := &Theme{}
	empty := palette.Properties{}
	t.current.Store(&empty)
	return t
}

// Apply implements palette.Sink.
func (t *Theme) Apply(props palette.Properties) {
	snapshot := props.Clone()
	t.current.Store(&snapshot)
	v := t.version.Add(1)
	log.Debug("theme replaced", "version", v, "properties", len(snapshot))
}

// Get returns the value of a single property.
func (t *Theme) Get(name string) (string, bool) {
	props := t.load()
	v, ok := props[name]
	return v, ok
}

// Snapshot returns a copy of the current properties.
func (t *Theme) Snapshot() palette.Properties {
	return t.load().Clone()
}

// Version counts how many times Apply has been called.
func (t *Theme) Version() uint64 {
	return t.version.Load()
}

func (t *Theme) load() palette.Properties {
	if p := t.current.Load(); p != nil {
		return *p
	}
	return palette.Properties{}
}
