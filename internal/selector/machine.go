package selector

import (
	"fmt"
	"time"
)

// State is the gesture state of the list.
type State int

const (
	// Idle: no gesture in progress; the offset rests on, or springs
	// toward, the centered item.
	Idle State = iota
	// Dragging: the offset follows the pointer 1:1.
	Dragging
	// WheelScrolling: wheel deltas accumulate into the offset until the
	// settle delay passes without further input.
	WheelScrolling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case WheelScrolling:
		return "wheel-scrolling"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Motion tuning.
const (
	// DecayFactor projects a drag release: rest = offset + velocity*DecayFactor.
	DecayFactor = 0.2
	// WheelSensitivity scales wheel deltaY into offset change.
	WheelSensitivity = 0.5
	// SettleDelay is the quiet period after the last wheel event before
	// the list snaps.
	SettleDelay = 150 * time.Millisecond
)

// Model is the selector state. Offset is the single source of truth for
// rendering and for the centered index.
type Model struct {
	State    State
	Offset   float64
	Index    int     // centered item, -1 when the list is empty
	Velocity float64 // last release velocity in px/s
	Count    int

	// pinned is set while a gesture is pressed against a bound, so the
	// boundary pulse plays once per contact.
	pinned bool
}

// NewModel returns the model of an empty list.
func NewModel(g Geometry) Model {
	return Model{Offset: g.CenteredOffset(0), Index: -1}
}

// Event is input to Transition.
type Event interface{ event() }

// DragStart is a pointer press on the list.
type DragStart struct{}

// DragMove moves the pointer by Delta pixels since the last move.
type DragMove struct{ Delta float64 }

// DragEnd releases the pointer with the given velocity in px/s.
type DragEnd struct{ Velocity float64 }

// Wheel is one wheel event.
type Wheel struct{ DeltaY float64 }

// WheelSettled fires when SettleDelay has passed since the last Wheel.
type WheelSettled struct{}

// Sync reports the owner's item count and selected index (-1 when the
// selected item is not in the list).
type Sync struct{ Count, Index int }

// Tick is an animation frame carrying the animated offset.
type Tick struct{ Offset float64 }

func (DragStart) event()    {}
func (DragMove) event()     {}
func (DragEnd) event()      {}
func (Wheel) event()        {}
func (WheelSettled) event() {}
func (Sync) event()         {}
func (Tick) event()         {}

// Effect is a side effect requested by Transition, executed by the caller.
type Effect interface{ effect() }

// Select notifies the owner that the centered item changed.
type Select struct{ Index int }

// Haptic plays a pulse.
type Haptic struct{ Strength Strength }

// AnimateTo starts a spring from the current offset to Offset, replacing
// any running animation.
type AnimateTo struct{ Offset float64 }

// StopAnimation cancels the running animation.
type StopAnimation struct{}

// ScheduleSettle arms the settle timer to deliver WheelSettled.
type ScheduleSettle struct{ After time.Duration }

// CancelSettle disarms the settle timer.
type CancelSettle struct{}

func (Select) effect()         {}
func (Haptic) effect()         {}
func (AnimateTo) effect()      {}
func (StopAnimation) effect()  {}
func (ScheduleSettle) effect() {}
func (CancelSettle) effect()   {}

// Transition applies ev to m and returns the new model with the effects
// the caller must perform, in order. It has no side effects of its own.
func Transition(m Model, g Geometry, ev Event) (Model, []Effect) {
	g = g.normalized()

	if s, ok := ev.(Sync); ok {
		return m.sync(g, s)
	}
	if m.Count <= 0 {
		return m, nil
	}

	switch ev := ev.(type) {
	case DragStart:
		m.State = Dragging
		m.Velocity = 0
		m.pinned = false
		return m, []Effect{StopAnimation{}, CancelSettle{}, Haptic{Light}}

	case DragMove:
		if m.State != Dragging {
			return m, nil
		}
		return m.scroll(g, m.Offset+ev.Delta)

	case DragEnd:
		if m.State != Dragging {
			return m, nil
		}
		m.State = Idle
		m.Velocity = ev.Velocity
		m.pinned = false

		projected := m.Offset + ev.Velocity*DecayFactor
		index := g.CenteredIndex(projected, m.Count)
		effects := []Effect{AnimateTo{Offset: g.CenteredOffset(index)}}
		if index != m.Index {
			m.Index = index
			effects = append(effects, Select{Index: index})
		}
		effects = append(effects, Haptic{Light})
		if s, ok := VelocityPulse(ev.Velocity); ok {
			effects = append(effects, Haptic{s})
		}
		return m, effects

	case Wheel:
		if m.State == Dragging {
			return m, nil
		}
		if m.State != WheelScrolling {
			m.pinned = false
		}
		m.State = WheelScrolling
		var scrolled []Effect
		m, scrolled = m.scroll(g, m.Offset-ev.DeltaY*WheelSensitivity)
		effects := make([]Effect, 0, len(scrolled)+3)
		effects = append(effects, StopAnimation{})
		effects = append(effects, scrolled...)
		effects = append(effects, CancelSettle{}, ScheduleSettle{After: SettleDelay})
		return m, effects

	case WheelSettled:
		if m.State != WheelScrolling {
			return m, nil
		}
		m.State = Idle
		m.pinned = false
		return m, []Effect{AnimateTo{Offset: g.CenteredOffset(m.Index)}}

	case Tick:
		lo, hi := g.Bounds(m.Count)
		m.Offset = clampFloat(ev.Offset, lo, hi)
		return m, nil
	}

	return m, nil
}

// scroll moves the offset to target, clamped to the list bounds, and
// reports index changes and boundary contact.
func (m Model) scroll(g Geometry, target float64) (Model, []Effect) {
	lo, hi := g.Bounds(m.Count)
	m.Offset = clampFloat(target, lo, hi)

	var effects []Effect
	if index := g.CenteredIndex(m.Offset, m.Count); index != m.Index {
		m.Index = index
		effects = append(effects, Select{Index: index}, Haptic{Light})
	}

	atBound := target <= lo || target >= hi
	if atBound && !m.pinned {
		effects = append(effects, Haptic{Heavy})
	}
	m.pinned = atBound
	return m, effects
}

// sync adopts the owner's item count and, while idle, the owner's
// selection. The owner already knows its selection, so no Select is
// emitted unless the index had to be corrected. A Sync that keeps the
// current index leaves a running snap alone.
func (m Model) sync(g Geometry, s Sync) (Model, []Effect) {
	m.Count = max(s.Count, 0)

	if m.Count == 0 {
		return NewModel(g), []Effect{StopAnimation{}, CancelSettle{}}
	}

	lo, hi := g.Bounds(m.Count)
	if m.State != Idle {
		prev := m.Index
		m.Index = clampIndex(m.Index, m.Count)
		m.Offset = clampFloat(m.Offset, lo, hi)
		if m.Index != prev {
			return m, []Effect{Select{Index: m.Index}}
		}
		return m, nil
	}

	index := s.Index
	corrected := index < 0 || index >= m.Count
	if corrected {
		index = clampIndex(m.Index, m.Count)
	}

	if !corrected && index == m.Index {
		m.Offset = clampFloat(m.Offset, lo, hi)
		return m, nil
	}

	m.Index = index
	m.Offset = g.CenteredOffset(index)
	m.Velocity = 0
	m.pinned = false

	effects := []Effect{StopAnimation{}}
	if corrected {
		effects = append(effects, Select{Index: index})
	}
	return m, effects
}

func clampFloat(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
