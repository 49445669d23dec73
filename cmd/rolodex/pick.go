package main

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jsvensson/rolodex"
	"github.com/jsvensson/rolodex/internal/color"
	"github.com/jsvensson/rolodex/internal/contacts"
	"github.com/jsvensson/rolodex/internal/palette"
	"github.com/jsvensson/rolodex/internal/prefs"
	"github.com/jsvensson/rolodex/internal/selector"
	"github.com/jsvensson/rolodex/internal/style"
	"github.com/spf13/cobra"
)

// A pause this long before release means the drag ended at rest.
const releaseIdle = 100 * time.Millisecond

// slot is one visible row of the picker.
type slot struct {
	Row   int
	Index int
}

// visibleSlots maps the list offset to terminal rows, one row per slot.
// Items scrolled out of the viewport are left out.
func visibleSlots(g selector.Geometry, offset float64, count int) []slot {
	first := int(math.Round(offset / g.ItemHeight))
	var out []slot
	for i := range count {
		row := first + i
		if row >= 0 && row < g.Slots {
			out = append(out, slot{Row: row, Index: i})
		}
	}
	return out
}

// wheelDelta converts a wheel notch to the DeltaY that scrolls one item.
func wheelDelta(g selector.Geometry, down bool) float64 {
	d := g.ItemHeight / selector.WheelSensitivity
	if down {
		return d
	}
	return -d
}

// picker browses preference history entries in a momentum list. The book
// owns the entries and the selection; the list only mirrors it.
type picker struct {
	screen   tcell.Screen
	book     *contacts.Book
	list     *selector.List
	entries  map[string]prefs.HistoryEntry
	geometry selector.Geometry
	text     palette.TextOptions

	dragging bool
	lastY    int
	lastMove time.Time
	velocity float64
}

func newPicker(screen tcell.Screen, store prefs.Store) *picker {
	p := &picker{
		screen:   screen,
		book:     contacts.NewBook(),
		entries:  make(map[string]prefs.HistoryEntry),
		geometry: selector.DefaultGeometry,
		text: palette.TextOptions{
			SameColorText: store.SameColorText(),
			MixItUp:       store.MixItUp(),
		},
	}

	history := store.History()
	slices.Reverse(history)
	for _, entry := range history {
		c := p.book.Add(fmt.Sprintf("%s %s", entry.Color.Hex(), entry.Scheme))
		p.entries[c.ID] = entry
	}

	p.list = p.book.NewBoundList(selector.Options{
		Geometry: p.geometry,
		Haptics: selector.HapticsFunc(func(s selector.Strength) {
			if s == selector.Heavy {
				_ = screen.Beep()
			}
		}),
	})
	return p
}

// selection returns the palette selection of the chosen entry.
func (p *picker) selection() (palette.Selection, bool) {
	entry, ok := p.entries[p.book.Selected()]
	if !ok {
		return palette.Selection{}, false
	}
	return palette.Selection{
		Color:         entry.Color,
		Scheme:        entry.Scheme,
		SameColorText: p.text.SameColorText,
		MixItUp:       p.text.MixItUp,
	}, true
}

// step moves the selection by delta items.
func (p *picker) step(delta int) {
	items := p.book.Items()
	i := slices.IndexFunc(items, func(it selector.Item) bool { return it.ID == p.book.Selected() })
	next := min(max(i+delta, 0), len(items)-1)
	if next >= 0 && next != i {
		_ = p.book.Select(items[next].ID)
	}
}

// handleMouse turns button 1 motion into drag gestures and wheel notches
// into wheel events.
func (p *picker) handleMouse(ev *tcell.EventMouse) {
	_, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		p.list.Wheel(wheelDelta(p.geometry, false))
	case buttons&tcell.WheelDown != 0:
		p.list.Wheel(wheelDelta(p.geometry, true))
	case buttons&tcell.Button1 != 0:
		now := ev.When()
		if !p.dragging {
			p.dragging = true
			p.lastY, p.lastMove, p.velocity = y, now, 0
			p.list.DragStart()
			return
		}
		if y == p.lastY {
			return
		}
		delta := float64(y-p.lastY) * p.geometry.ItemHeight
		if dt := now.Sub(p.lastMove).Seconds(); dt > 0 {
			p.velocity = delta / dt
		}
		p.lastY, p.lastMove = y, now
		p.list.DragMove(delta)
	case p.dragging:
		p.dragging = false
		if ev.When().Sub(p.lastMove) > releaseIdle {
			p.velocity = 0
		}
		p.list.DragEnd(p.velocity)
	}
}

// handleKey reports whether the picker should stop, and whether the
// selection was accepted.
func (p *picker) handleKey(ev *tcell.EventKey) (done, accepted bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, false
	case tcell.KeyEnter:
		return true, true
	case tcell.KeyUp:
		p.step(-1)
	case tcell.KeyDown:
		p.step(1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true, false
		case 'k':
			p.step(-1)
		case 'j':
			p.step(1)
		}
	}
	return false, false
}

func (p *picker) draw() {
	p.screen.Clear()
	items := p.list.Items()
	center := p.geometry.Slots / 2
	selected := p.list.Selected()

	for _, s := range visibleSlots(p.geometry, p.list.Offset(), len(items)) {
		item := items[s.Index]
		entry := p.entries[item.ID]
		y := s.Row + 1

		p.fill(2, y, 4, tcell.StyleDefault.Background(tcellColor(entry.Color)))
		st := tcell.StyleDefault
		if s.Row == center && item.ID == selected {
			st = st.Bold(true)
		}
		p.print(7, y, item.Label, st)
	}
	p.print(0, center+1, ">", tcell.StyleDefault.Bold(true))

	if sel, ok := p.selection(); ok {
		v := rolodex.Preview(sel).Verdict
		p.print(2, p.geometry.Slots+2, fmt.Sprintf("contrast %.2f:1 %s", v.Ratio, v.Level()), tcell.StyleDefault)
	}
	p.print(2, p.geometry.Slots+3, "wheel, drag or j/k to browse · enter to apply · esc to quit", tcell.StyleDefault.Dim(true))
	p.screen.Show()
}

func (p *picker) fill(x, y, width int, st tcell.Style) {
	for i := range width {
		p.screen.SetContent(x+i, y, ' ', nil, st)
	}
}

func (p *picker) print(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		p.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

// run shows the picker until the user accepts or quits.
func (p *picker) run() bool {
	ticker := time.NewTicker(selector.FrameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	p.draw()
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if done, accepted := p.handleKey(ev); done {
					return accepted
				}
			case *tcell.EventMouse:
				p.handleMouse(ev)
			case *tcell.EventResize:
				p.screen.Sync()
			}
		case <-ticker.C:
			p.draw()
		}
	}
}

func tcellColor(c color.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func runPick(cmd *cobra.Command, args []string) error {
	f, err := loadPrefs()
	if err != nil {
		return err
	}
	if len(f.History()) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No history")
		return nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	screen.EnableMouse()

	p := newPicker(screen, f)
	accepted := p.run()
	sel, ok := p.selection()
	screen.Fini()

	if !accepted || !ok {
		return nil
	}

	data, err := rolodex.Commit(f, style.NewTheme(), sel, flagForce)
	printPreview(cmd.OutOrStdout(), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", f.Path())
	return nil
}
