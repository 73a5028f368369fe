package profile

import (
	"fmt"

	"github.com/ruminaider/devlinks/internal/links"
)

// Links returns the ordered link entries. The slice is a snapshot.
func (d *Document) Links() []links.Entry {
	return d.links.Entries()
}

// LinkCount returns the number of link entries.
func (d *Document) LinkCount() int {
	return d.links.Len()
}

// Link returns the entry with id.
func (d *Document) Link(id string) (links.Entry, bool) {
	return d.links.Get(id)
}

// LinkAt returns the entry at position i.
func (d *Document) LinkAt(i int) (links.Entry, error) {
	return d.links.At(i)
}

func (d *Document) AddLink() links.Entry {
	e := d.links.Add()
	d.edited()
	return e
}

func (d *Document) RemoveLink(id string) {
	d.links.Remove(id)
	d.edited()
}

func (d *Document) UpdateLink(id string, field links.Field, value string) error {
	if err := d.links.Update(id, field, value); err != nil {
		return err
	}
	d.edited()
	return nil
}

func (d *Document) SwapLinks(from, to int) error {
	if err := d.links.Swap(from, to); err != nil {
		return err
	}
	d.edited()
	return nil
}

// DropLink applies a drag-and-drop reorder, clamping the destination.
func (d *Document) DropLink(from, to int) error {
	if err := d.links.Drop(from, to); err != nil {
		return err
	}
	d.edited()
	return nil
}

// Namer resolves platform display names.
type Namer interface {
	Name(id string) string
}

// LinkLabel is the heading shown for the entry at position i: the platform
// name, or "Link #n" counting from one.
func LinkLabel(n Namer, i int, e links.Entry) string {
	if e.PlatformID != "" {
		if name := n.Name(e.PlatformID); name != "" {
			return name
		}
	}
	return fmt.Sprintf("Link #%d", i+1)
}
