// Package links implements the ordered link collection edited by a profile
// session. Position is the index in the collection and is never stored on an
// entry.
package links

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Field names a mutable attribute of an Entry.
type Field string

const (
	FieldPlatform Field = "platformId"
	FieldURL      Field = "url"
)

var (
	// ErrNotFound is returned when no entry has the requested id.
	ErrNotFound = errors.New("link not found")
	// ErrUnknownField is returned by Update for fields other than platformId and url.
	ErrUnknownField = errors.New("unknown link field")
)

// RangeError reports an index outside [0, Len).
type RangeError struct {
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("link index %d out of range [0, %d)", e.Index, e.Len)
}

// Entry binds a platform to a URL. PlatformID is "" until the user picks one.
type Entry struct {
	ID         string
	PlatformID string
	URL        string
}

// Record is an entry without identity, as exchanged with the remote store.
type Record struct {
	PlatformID string
	URL        string
}

// Collection is an ordered set of entries with stable ids. It is not safe for
// concurrent use; a session owns it from a single goroutine.
type Collection struct {
	entries []Entry
	newID   func() string
}

// New returns an empty collection minting uuid ids.
func New() *Collection {
	return &Collection{newID: uuid.NewString}
}

// NewFromRecords rebuilds a collection from the remote ordered array, minting
// a fresh id for every record.
func NewFromRecords(records []Record) *Collection {
	c := New()
	c.entries = make([]Entry, 0, len(records))
	for _, r := range records {
		c.entries = append(c.entries, Entry{ID: c.newID(), PlatformID: r.PlatformID, URL: r.URL})
	}
	return c
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Add appends an empty entry with a fresh id and returns it.
func (c *Collection) Add() Entry {
	e := Entry{ID: c.newID()}
	c.entries = append(c.entries, e)
	return e
}

// Remove deletes the entry with id. Unknown ids are ignored so that repeated
// remove events are harmless.
func (c *Collection) Remove(id string) {
	i := c.Index(id)
	if i < 0 {
		return
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
}

// Update sets one field of the entry with id in place.
func (c *Collection) Update(id string, field Field, value string) error {
	i := c.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	switch field {
	case FieldPlatform:
		c.entries[i].PlatformID = value
	case FieldURL:
		c.entries[i].URL = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Swap moves the entry at from to to, shifting the entries in between by one.
// Entry contents travel with the entry.
func (c *Collection) Swap(from, to int) error {
	if err := c.checkIndex(from); err != nil {
		return err
	}
	if err := c.checkIndex(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	moved := c.entries[from]
	if from < to {
		copy(c.entries[from:to], c.entries[from+1:to+1])
	} else {
		copy(c.entries[to+1:from+1], c.entries[to:from])
	}
	c.entries[to] = moved
	return nil
}

// Drop is the drag-and-drop form of Swap: a destination past either end is
// clamped into range, and dropping in place is a no-op.
func (c *Collection) Drop(from, to int) error {
	if err := c.checkIndex(from); err != nil {
		return err
	}
	if to >= len(c.entries) {
		to = len(c.entries) - 1
	}
	if to < 0 {
		to = 0
	}
	return c.Swap(from, to)
}

// Entries returns the entries in order. The slice is a snapshot; changing it
// does not affect the collection.
func (c *Collection) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Records returns the ordered entries without ids.
func (c *Collection) Records() []Record {
	out := make([]Record, len(c.entries))
	for i, e := range c.entries {
		out[i] = Record{PlatformID: e.PlatformID, URL: e.URL}
	}
	return out
}

// Get returns the entry with id.
func (c *Collection) Get(id string) (Entry, bool) {
	i := c.Index(id)
	if i < 0 {
		return Entry{}, false
	}
	return c.entries[i], true
}

// At returns the entry at position i.
func (c *Collection) At(i int) (Entry, error) {
	if err := c.checkIndex(i); err != nil {
		return Entry{}, err
	}
	return c.entries[i], nil
}

// Index returns the position of id, or -1.
func (c *Collection) Index(id string) int {
	for i, e := range c.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) checkIndex(i int) error {
	if i < 0 || i >= len(c.entries) {
		return &RangeError{Index: i, Len: len(c.entries)}
	}
	return nil
}
