package selector

import (
	"slices"
	"sync"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("rolodex.selector")

// Item is one entry shown by a List. Items are owned by the caller and
// never modified.
type Item struct {
	ID    string
	Label string
}

// Options configures a List. Zero fields get defaults: DefaultGeometry,
// a ClockScheduler, NoHaptics, and no selection callback.
type Options struct {
	Geometry  Geometry
	Scheduler Scheduler
	Haptics   Haptics
	// OnSelect is called with the id of the newly centered item whenever
	// the list changes the selection. It runs without the list locked, so
	// it may call back into the list.
	OnSelect func(id string)
}

// List drives a Model from user input and runs the resulting effects.
// It is safe for concurrent use; scheduler callbacks are serialized with
// input calls.
type List struct {
	mu sync.Mutex

	items    []Item
	model    Model
	geometry Geometry

	scheduler Scheduler
	haptics   Haptics
	onSelect  func(id string)

	// Generations invalidate callbacks of superseded animations and timers
	// that were already in flight when stopped.
	animGen   uint64
	animTimer Timer
	settleGen uint64
	settle    Timer
}

// NewList returns an empty list.
func NewList(opts Options) *List {
	g := opts.Geometry.normalized()
	l := &List{
		geometry:  g,
		model:     NewModel(g),
		scheduler: opts.Scheduler,
		haptics:   opts.Haptics,
		onSelect:  opts.OnSelect,
	}
	if l.scheduler == nil {
		l.scheduler = NewClockScheduler()
	}
	if l.haptics == nil {
		l.haptics = NoHaptics
	}
	return l
}

// SetItems replaces the items and selects selectedID. If selectedID is
// not among the items the list keeps its centered position and reports
// the resulting selection through OnSelect.
func (l *List) SetItems(items []Item, selectedID string) {
	l.mu.Lock()
	l.items = slices.Clone(items)
	calls := l.dispatch(Sync{Count: len(l.items), Index: l.indexOf(selectedID)})
	l.mu.Unlock()
	run(calls)
}

// SetSelected moves the list to the item with the given id. While a
// gesture is in progress the request is ignored; the gesture's own
// selection wins.
func (l *List) SetSelected(id string) {
	l.mu.Lock()
	calls := l.dispatch(Sync{Count: len(l.items), Index: l.indexOf(id)})
	l.mu.Unlock()
	run(calls)
}

func (l *List) DragStart()               { l.send(DragStart{}) }
func (l *List) DragMove(delta float64)   { l.send(DragMove{Delta: delta}) }
func (l *List) DragEnd(velocity float64) { l.send(DragEnd{Velocity: velocity}) }
func (l *List) Wheel(deltaY float64)     { l.send(Wheel{DeltaY: deltaY}) }

// Selected returns the id of the centered item, or "" for an empty list.
func (l *List) Selected() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.model.Index < 0 || l.model.Index >= len(l.items) {
		return ""
	}
	return l.items[l.model.Index].ID
}

// Offset returns the current scroll offset.
func (l *List) Offset() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.model.Offset
}

// State returns the current gesture state.
func (l *List) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.model.State
}

// Model returns a snapshot of the list state.
func (l *List) Model() Model {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.model
}

// Items returns the items currently shown.
func (l *List) Items() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

func (l *List) send(ev Event) {
	l.mu.Lock()
	calls := l.dispatch(ev)
	l.mu.Unlock()
	run(calls)
}

func (l *List) indexOf(id string) int {
	return slices.IndexFunc(l.items, func(it Item) bool { return it.ID == id })
}

// dispatch runs one transition with l.mu held. Scheduler effects are
// performed immediately; callbacks into user code are returned so they
// can run after the lock is released.
func (l *List) dispatch(ev Event) []func() {
	before := l.model.State
	m, effects := Transition(l.model, l.geometry, ev)
	l.model = m
	if m.State != before {
		log.Debug("state changed", "from", before.String(), "to", m.State.String(), "offset", m.Offset)
	}

	var calls []func()
	for _, eff := range effects {
		switch eff := eff.(type) {
		case Select:
			if eff.Index < 0 || eff.Index >= len(l.items) || l.onSelect == nil {
				continue
			}
			id, onSelect := l.items[eff.Index].ID, l.onSelect
			calls = append(calls, func() { onSelect(id) })
		case Haptic:
			haptics, s := l.haptics, eff.Strength
			calls = append(calls, func() { haptics.Pulse(s) })
		case AnimateTo:
			l.animate(eff.Offset)
		case StopAnimation:
			l.stopAnimation()
		case ScheduleSettle:
			l.scheduleSettle(eff.After)
		case CancelSettle:
			l.cancelSettle()
		}
	}
	return calls
}

func (l *List) animate(target float64) {
	l.stopAnimation()
	gen := l.animGen
	spring := NewSpring(l.model.Offset, target)
	start := l.scheduler.Now()

	var frame func(now time.Time)
	frame = func(now time.Time) {
		l.mu.Lock()
		if l.animGen != gen {
			l.mu.Unlock()
			return
		}
		elapsed := now.Sub(start)
		offset, done := spring.Position(elapsed), spring.Settled(elapsed)
		if done {
			offset = target
		}
		calls := l.dispatch(Tick{Offset: offset})
		if done {
			l.animTimer = nil
		} else {
			l.animTimer = l.scheduler.Frame(frame)
		}
		l.mu.Unlock()
		run(calls)
	}
	l.animTimer = l.scheduler.Frame(frame)
}

func (l *List) stopAnimation() {
	l.animGen++
	if l.animTimer != nil {
		l.animTimer.Stop()
		l.animTimer = nil
	}
}

func (l *List) scheduleSettle(after time.Duration) {
	l.cancelSettle()
	gen := l.settleGen
	l.settle = l.scheduler.AfterFunc(after, func() {
		l.mu.Lock()
		if l.settleGen != gen {
			l.mu.Unlock()
			return
		}
		l.settle = nil
		calls := l.dispatch(WheelSettled{})
		l.mu.Unlock()
		run(calls)
	})
}

func (l *List) cancelSettle() {
	l.settleGen++
	if l.settle != nil {
		l.settle.Stop()
		l.settle = nil
	}
}

func run(calls []func()) {
	for _, call := range calls {
		call()
	}
}
