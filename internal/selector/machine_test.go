package selector

import (
	"reflect"
	"testing"
)

var testGeometry = Geometry{ItemHeight: 56, Slots: 5}

// synced returns an idle model of count items centered on index.
func synced(t *testing.T, count, index int) Model {
	t.Helper()
	m, _ := Transition(NewModel(testGeometry), testGeometry, Sync{Count: count, Index: index})
	return m
}

func apply(t *testing.T, m Model, events ...Event) (Model, []Effect) {
	t.Helper()
	var all []Effect
	for _, ev := range events {
		var effects []Effect
		m, effects = Transition(m, testGeometry, ev)
		all = append(all, effects...)
	}
	return m, all
}

func selects(effects []Effect) []int {
	var out []int
	for _, e := range effects {
		if s, ok := e.(Select); ok {
			out = append(out, s.Index)
		}
	}
	return out
}

func haptics(effects []Effect) []Strength {
	var out []Strength
	for _, e := range effects {
		if h, ok := e.(Haptic); ok {
			out = append(out, h.Strength)
		}
	}
	return out
}

func TestSyncWhileIdle(t *testing.T) {
	m := synced(t, 5, 3)
	if m.Index != 3 || m.Offset != testGeometry.CenteredOffset(3) || m.State != Idle {
		t.Fatalf("got %+v, want idle at index 3", m)
	}

	m, effects := Transition(m, testGeometry, Sync{Count: 5, Index: 1})
	if m.Index != 1 || m.Offset != testGeometry.CenteredOffset(1) {
		t.Errorf("got index %d offset %v, want 1 at %v", m.Index, m.Offset, testGeometry.CenteredOffset(1))
	}
	if got := selects(effects); len(got) != 0 {
		t.Errorf("Sync emitted Select %v back to the owner", got)
	}
}

func TestSyncUnknownSelectionIsCorrected(t *testing.T) {
	m, effects := Transition(NewModel(testGeometry), testGeometry, Sync{Count: 3, Index: -1})
	if m.Index != 0 {
		t.Errorf("Index = %d, want 0", m.Index)
	}
	if got := selects(effects); !reflect.DeepEqual(got, []int{0}) {
		t.Errorf("selects = %v, want [0]", got)
	}
}

func TestSyncSameIndexKeepsSnap(t *testing.T) {
	m := synced(t, 3, 0)
	m, _ = apply(t, m, DragStart{}, DragMove{Delta: -70}, DragEnd{Velocity: -300})
	if m.Index != 2 {
		t.Fatalf("Index = %d after flick, want 2", m.Index)
	}
	released := m.Offset

	tests := []struct {
		name string
		sync Sync
	}{
		{"selection echo", Sync{Count: 3, Index: 2}},
		{"item added", Sync{Count: 4, Index: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects := Transition(m, testGeometry, tt.sync)
			if got.Offset != released {
				t.Errorf("Offset = %v, want %v left for the snap", got.Offset, released)
			}
			if got.Index != 2 || got.State != Idle {
				t.Errorf("got index %d state %s, want 2 idle", got.Index, got.State)
			}
			if len(effects) != 0 {
				t.Errorf("effects = %v, want none", effects)
			}
		})
	}
}

func TestSyncMidGestureClamps(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		count   int
		want    int
		selects []int
	}{
		{"last item removed", 4, 3, 2, []int{2}},
		{"index still valid", 1, 3, 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := synced(t, 5, tt.index)
			m, _ = apply(t, m, DragStart{})

			m, effects := Transition(m, testGeometry, Sync{Count: tt.count, Index: 0})
			if m.State != Dragging {
				t.Errorf("State = %s, want dragging", m.State)
			}
			if m.Index != tt.want {
				t.Errorf("Index = %d, want %d", m.Index, tt.want)
			}
			if lo, _ := testGeometry.Bounds(tt.count); m.Offset < lo {
				t.Errorf("Offset = %v beyond last item bound %v", m.Offset, lo)
			}
			if got := selects(effects); !reflect.DeepEqual(got, tt.selects) {
				t.Errorf("selects = %v, want %v", got, tt.selects)
			}
			if got := haptics(effects); len(got) != 0 {
				t.Errorf("haptics = %v, want none for an owner change", got)
			}
		})
	}
}

func TestEmptyListIgnoresGestures(t *testing.T) {
	m := synced(t, 0, 0)
	if m.Index != -1 {
		t.Fatalf("Index = %d, want -1", m.Index)
	}
	for _, ev := range []Event{DragStart{}, DragMove{Delta: 50}, DragEnd{Velocity: 3000}, Wheel{DeltaY: 100}, WheelSettled{}, Tick{Offset: 7}} {
		next, effects := Transition(m, testGeometry, ev)
		if next != m || len(effects) != 0 {
			t.Errorf("%T on empty list changed model to %+v with %v", ev, next, effects)
		}
	}
}

func TestSingleItemAlwaysSelected(t *testing.T) {
	m := synced(t, 1, 0)
	m, effects := apply(t, m, DragStart{}, DragMove{Delta: -500}, DragMove{Delta: 900}, DragEnd{Velocity: -4000})
	if m.Index != 0 || m.Offset != testGeometry.CenteredOffset(0) {
		t.Errorf("got index %d offset %v, want 0 at %v", m.Index, m.Offset, testGeometry.CenteredOffset(0))
	}
	if got := selects(effects); len(got) != 0 {
		t.Errorf("selects = %v, want none", got)
	}
}

func TestDragFollowsPointer(t *testing.T) {
	m := synced(t, 10, 0)
	m, effects := apply(t, m, DragStart{}, DragMove{Delta: -20}, DragMove{Delta: -20})
	if m.Offset != 72 {
		t.Errorf("Offset = %v, want 72", m.Offset)
	}
	if got := selects(effects); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("selects = %v, want [1]", got)
	}
	if got := haptics(effects); !reflect.DeepEqual(got, []Strength{Light, Light}) {
		t.Errorf("haptics = %v, want drag start and index change", got)
	}
}

func TestScrollClampsHugeDelta(t *testing.T) {
	for _, delta := range []float64{-1e9, 1e9} {
		m := synced(t, 7, 3)
		lo, hi := testGeometry.Bounds(7)

		dragged, _ := apply(t, m, DragStart{}, DragMove{Delta: delta})
		if dragged.Offset < lo || dragged.Offset > hi {
			t.Errorf("drag %v: Offset = %v outside [%v, %v]", delta, dragged.Offset, lo, hi)
		}

		wheeled, _ := apply(t, m, Wheel{DeltaY: delta})
		if wheeled.Offset < lo || wheeled.Offset > hi {
			t.Errorf("wheel %v: Offset = %v outside [%v, %v]", delta, wheeled.Offset, lo, hi)
		}
	}
}

func TestBoundaryPulseOncePerContact(t *testing.T) {
	m := synced(t, 3, 1)
	m, effects := apply(t, m,
		DragStart{},
		DragMove{Delta: 100}, // hits the first item bound
		DragMove{Delta: 50},  // still pressed against it
		DragMove{Delta: -80}, // back inside
		DragMove{Delta: 200}, // hits again
	)
	heavy := 0
	for _, s := range haptics(effects) {
		if s == Heavy {
			heavy++
		}
	}
	if heavy != 2 {
		t.Errorf("heavy pulses = %d, want 2", heavy)
	}
	if m.Index != 0 {
		t.Errorf("Index = %d, want 0", m.Index)
	}
}

func TestDragEndProjectsAndSnaps(t *testing.T) {
	tests := []struct {
		name      string
		velocity  float64
		wantIndex int
		wantPulse []Strength
	}{
		{"slow release stays", 0, 0, []Strength{Light, Light}},
		{"flick one row", -300, 1, []Strength{Light, Light}},
		{"medium flick", -1000, 4, []Strength{Light, Light, Medium}},
		{"hard flick clamps", -9000, 9, []Strength{Light, Light, Heavy}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := synced(t, 10, 0)
			m, effects := apply(t, m, DragStart{}, DragEnd{Velocity: tt.velocity})
			if m.State != Idle {
				t.Errorf("State = %s, want idle", m.State)
			}
			if m.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", m.Index, tt.wantIndex)
			}
			want := AnimateTo{Offset: testGeometry.CenteredOffset(tt.wantIndex)}
			if !containsEffect(effects, want) {
				t.Errorf("effects %v missing %v", effects, want)
			}
			if got := haptics(effects); !reflect.DeepEqual(got, tt.wantPulse) {
				t.Errorf("haptics = %v, want %v", got, tt.wantPulse)
			}
		})
	}
}

func TestThreeItemScenario(t *testing.T) {
	m := synced(t, 3, 0)
	if got := testGeometry.CenteredIndex(m.Offset, m.Count); got != 0 {
		t.Fatalf("centered index at rest = %d, want 0", got)
	}

	m, effects := apply(t, m, DragStart{}, DragMove{Delta: -2 * 56}, DragEnd{Velocity: -5000})
	if m.Index != 2 {
		t.Errorf("Index = %d, want 2", m.Index)
	}
	for _, idx := range selects(effects) {
		if idx > 2 {
			t.Errorf("selected index %d beyond last item", idx)
		}
	}
	if !containsEffect(effects, AnimateTo{Offset: testGeometry.CenteredOffset(2)}) {
		t.Errorf("effects %v missing snap to index 2", effects)
	}
}

func TestWheelRestartsSettle(t *testing.T) {
	m := synced(t, 10, 0)
	m, effects := apply(t, m, Wheel{DeltaY: 40})
	if m.State != WheelScrolling {
		t.Fatalf("State = %s, want wheel-scrolling", m.State)
	}
	if m.Offset != 92 {
		t.Errorf("Offset = %v, want 92", m.Offset)
	}
	wantTail := []Effect{CancelSettle{}, ScheduleSettle{After: SettleDelay}}
	if tail := effects[len(effects)-2:]; !reflect.DeepEqual(tail, wantTail) {
		t.Errorf("effects end with %v, want %v", tail, wantTail)
	}

	m, effects = apply(t, m, Wheel{DeltaY: 40})
	if got := selects(effects); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("selects = %v, want [1]", got)
	}

	m, effects = apply(t, m, WheelSettled{})
	if m.State != Idle {
		t.Errorf("State = %s, want idle", m.State)
	}
	if !reflect.DeepEqual(effects, []Effect{AnimateTo{Offset: testGeometry.CenteredOffset(1)}}) {
		t.Errorf("effects = %v, want snap to index 1", effects)
	}
}

func TestWheelIgnoredWhileDragging(t *testing.T) {
	m, _ := apply(t, synced(t, 5, 2), DragStart{})
	next, effects := Transition(m, testGeometry, Wheel{DeltaY: 100})
	if next != m || len(effects) != 0 {
		t.Errorf("Wheel during drag changed model: %+v, %v", next, effects)
	}
}

func TestDragStartCancelsPendingWork(t *testing.T) {
	m, _ := apply(t, synced(t, 5, 2), Wheel{DeltaY: 10})
	_, effects := Transition(m, testGeometry, DragStart{})
	if !containsEffect(effects, StopAnimation{}) || !containsEffect(effects, CancelSettle{}) {
		t.Errorf("DragStart effects = %v, want StopAnimation and CancelSettle", effects)
	}
}

func TestTickClampsToBounds(t *testing.T) {
	m := synced(t, 3, 0)
	m, _ = Transition(m, testGeometry, Tick{Offset: 500})
	if _, hi := testGeometry.Bounds(3); m.Offset != hi {
		t.Errorf("Offset = %v, want %v", m.Offset, hi)
	}
}

func containsEffect(effects []Effect, want Effect) bool {
	for _, e := range effects {
		if e == want {
			return true
		}
	}
	return false
}
