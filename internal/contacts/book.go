// Package contacts holds the in-memory contact list shown by the rolodex
// selector and owns which contact is selected.
package contacts

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jsvensson/rolodex/internal/selector"
)

// ErrNotFound is returned for an id that is not in the book.
var ErrNotFound = errors.New("contact not found")

// Contact is one entry in the book.
type Contact struct {
	ID   string
	Name string
}

// Listener is notified with the current items and selected id after every
// change to the book.
type Listener func(items []selector.Item, selectedID string)

// Book is an ordered contact list with a single selection. It is safe for
// concurrent use; listeners run without the book locked.
type Book struct {
	mu        sync.RWMutex
	contacts  []Contact
	selected  string
	listeners []Listener
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{}
}

// Add appends a contact with a fresh id. The first contact added becomes
// the selection.
func (b *Book) Add(name string) Contact {
	c := Contact{ID: uuid.New().String(), Name: strings.TrimSpace(name)}

	b.mu.Lock()
	b.contacts = append(b.contacts, c)
	if b.selected == "" {
		b.selected = c.ID
	}
	b.mu.Unlock()

	b.notify()
	return c
}

// Remove deletes a contact. When the selected contact is removed the
// selection moves to the next contact, else the previous one, else none.
func (b *Book) Remove(id string) error {
	b.mu.Lock()
	i := b.indexOf(id)
	if i < 0 {
		b.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	b.contacts = slices.Delete(b.contacts, i, i+1)
	if b.selected == id {
		b.selected = fallback(b.contacts, i)
	}
	b.mu.Unlock()

	b.notify()
	return nil
}

// Rename changes a contact's name.
func (b *Book) Rename(id, name string) error {
	b.mu.Lock()
	i := b.indexOf(id)
	if i < 0 {
		b.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	b.contacts[i].Name = strings.TrimSpace(name)
	b.mu.Unlock()

	b.notify()
	return nil
}

// Select makes id the selected contact. Selecting the current selection
// is a no-op and does not notify listeners.
func (b *Book) Select(id string) error {
	b.mu.Lock()
	if b.indexOf(id) < 0 {
		b.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	changed := b.selected != id
	b.selected = id
	b.mu.Unlock()

	if changed {
		b.notify()
	}
	return nil
}

// Selected returns the selected contact id, or "" when the book is empty.
func (b *Book) Selected() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.selected
}

// Get returns the contact with the given id.
func (b *Book) Get(id string) (Contact, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i := b.indexOf(id); i >= 0 {
		return b.contacts[i], true
	}
	return Contact{}, false
}

// Contacts returns a copy of all contacts in order.
func (b *Book) Contacts() []Contact {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.contacts)
}

// Items returns the contacts as selector items.
func (b *Book) Items() []selector.Item {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return items(b.contacts)
}

// Filter returns the contacts whose name contains query, ignoring case.
func (b *Book) Filter(query string) []selector.Item {
	q := strings.ToLower(strings.TrimSpace(query))

	b.mu.RLock()
	defer b.mu.RUnlock()
	if q == "" {
		return items(b.contacts)
	}
	var matched []Contact
	for _, c := range b.contacts {
		if strings.Contains(strings.ToLower(c.Name), q) {
			matched = append(matched, c)
		}
	}
	return items(matched)
}

// Subscribe registers fn for change notifications and calls it once with
// the current state.
func (b *Book) Subscribe(fn Listener) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	its, sel := items(b.contacts), b.selected
	b.mu.Unlock()

	fn(its, sel)
}

// Bind keeps l showing the book's contacts and selection. Use
// NewBoundList for a list whose gestures also select in the book.
func (b *Book) Bind(l *selector.List) {
	b.Subscribe(l.SetItems)
}

// NewBoundList creates a selector list bound to the book in both
// directions. opts.OnSelect, if set, runs after the book is updated.
func (b *Book) NewBoundList(opts selector.Options) *selector.List {
	next := opts.OnSelect
	opts.OnSelect = func(id string) {
		if err := b.Select(id); err != nil {
			return
		}
		if next != nil {
			next(id)
		}
	}
	l := selector.NewList(opts)
	b.Bind(l)
	return l
}

func (b *Book) notify() {
	b.mu.RLock()
	listeners := slices.Clone(b.listeners)
	its, sel := items(b.contacts), b.selected
	b.mu.RUnlock()

	for _, fn := range listeners {
		fn(its, sel)
	}
}

func (b *Book) indexOf(id string) int {
	return slices.IndexFunc(b.contacts, func(c Contact) bool { return c.ID == id })
}

// fallback picks the contact that takes over the selection after the one
// at index removed was deleted.
func fallback(remaining []Contact, removed int) string {
	switch {
	case removed < len(remaining):
		return remaining[removed].ID
	case len(remaining) > 0:
		return remaining[len(remaining)-1].ID
	}
	return ""
}

func items(cs []Contact) []selector.Item {
	out := make([]selector.Item, len(cs))
	for i, c := range cs {
		out[i] = selector.Item{ID: c.ID, Label: c.Name}
	}
	return out
}
