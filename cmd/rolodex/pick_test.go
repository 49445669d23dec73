package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/jsvensson/rolodex/internal/color"
	"github.com/jsvensson/rolodex/internal/palette"
	"github.com/jsvensson/rolodex/internal/prefs"
	"github.com/jsvensson/rolodex/internal/selector"
)

func TestVisibleSlots(t *testing.T) {
	g := selector.DefaultGeometry

	tests := []struct {
		name   string
		offset float64
		count  int
		want   []slot
	}{
		{"first centered", g.CenteredOffset(0), 3, []slot{{2, 0}, {3, 1}, {4, 2}}},
		{"last centered", g.CenteredOffset(2), 3, []slot{{0, 0}, {1, 1}, {2, 2}}},
		{"long list", g.CenteredOffset(5), 10, []slot{{0, 3}, {1, 4}, {2, 5}, {3, 6}, {4, 7}}},
		{"between rows rounds", g.CenteredOffset(0) - 20, 2, []slot{{2, 0}, {3, 1}}},
		{"empty", g.CenteredOffset(0), 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := visibleSlots(g, tt.offset, tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("visibleSlots() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("slot %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWheelDelta(t *testing.T) {
	g := selector.DefaultGeometry
	// One notch must move the offset by exactly one row.
	if got := wheelDelta(g, true) * selector.WheelSensitivity; got != g.ItemHeight {
		t.Errorf("down notch moves %v, want %v", got, g.ItemHeight)
	}
	if got := wheelDelta(g, false) * selector.WheelSensitivity; got != -g.ItemHeight {
		t.Errorf("up notch moves %v, want %v", got, -g.ItemHeight)
	}
}

func newTestPicker(t *testing.T) (*picker, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 10)

	store := prefs.NewMemory()
	store.AppendHistory(prefs.HistoryEntry{Color: color.MustParseHex("#ff0000"), Scheme: palette.Monochrome})
	store.AppendHistory(prefs.HistoryEntry{Color: color.MustParseHex("#00ff00"), Scheme: palette.Triadic})
	store.AppendHistory(prefs.HistoryEntry{Color: color.MustParseHex("#0000ff"), Scheme: palette.Square})
	store.SetSameColorText(true)

	return newPicker(screen, store), screen
}

func TestPicker_NewestFirst(t *testing.T) {
	p, _ := newTestPicker(t)

	items := p.list.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	want := []string{"#0000ff square", "#00ff00 triadic", "#ff0000 monochrome"}
	for i, item := range items {
		if item.Label != want[i] {
			t.Errorf("item %d = %q, want %q", i, item.Label, want[i])
		}
	}

	sel, ok := p.selection()
	if !ok {
		t.Fatal("expected a selection")
	}
	if sel.Color.Hex() != "#0000ff" || sel.Scheme != palette.Square || !sel.SameColorText {
		t.Errorf("selection() = %+v, want newest entry with stored text options", sel)
	}
}

func TestPicker_Keys(t *testing.T) {
	p, _ := newTestPicker(t)

	steps := []struct {
		key  *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), "#00ff00"},
		{tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), "#ff0000"},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), "#ff0000"},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "#00ff00"},
		{tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), "#0000ff"},
	}
	for i, s := range steps {
		if done, _ := p.handleKey(s.key); done {
			t.Fatalf("step %d: picker stopped early", i)
		}
		sel, _ := p.selection()
		if sel.Color.Hex() != s.want {
			t.Errorf("step %d: selected %s, want %s", i, sel.Color.Hex(), s.want)
		}
		if p.list.Selected() != p.book.Selected() {
			t.Errorf("step %d: list selected %q, book %q", i, p.list.Selected(), p.book.Selected())
		}
	}

	if done, accepted := p.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)); !done || !accepted {
		t.Errorf("enter: done=%v accepted=%v, want both", done, accepted)
	}
	if done, accepted := p.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); !done || accepted {
		t.Errorf("escape: done=%v accepted=%v, want done only", done, accepted)
	}
}

func TestPicker_Draw(t *testing.T) {
	p, screen := newTestPicker(t)
	p.draw()

	// Newest entry sits in the center slot, one row below the top margin.
	row := selector.DefaultGeometry.Slots/2 + 1
	if r, _, _, _ := screen.GetContent(0, row); r != '>' {
		t.Errorf("marker at row %d = %q, want '>'", row, r)
	}
	var label []rune
	for x := 7; x < 7+len("#0000ff square"); x++ {
		r, _, _, _ := screen.GetContent(x, row)
		label = append(label, r)
	}
	if string(label) != "#0000ff square" {
		t.Errorf("center label = %q, want %q", string(label), "#0000ff square")
	}
	_, _, st, _ := screen.GetContent(2, row)
	if _, bg, _ := st.Decompose(); bg != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("swatch background = %v, want blue", bg)
	}
}
