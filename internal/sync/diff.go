package sync

import (
	"github.com/ruminaider/devlinks/internal/links"
	"github.com/ruminaider/devlinks/internal/profile"
)

// Change is one scalar field difference.
type Change struct {
	Saved   string
	Current string
}

// LinksDiff describes how the link collection moved away from the saved one.
type LinksDiff struct {
	Added     []links.Record // In current but not saved
	Removed   []links.Record // In saved but not current
	Reordered bool           // Same records, different order
}

// Diff is the set of unsaved changes of a document.
type Diff struct {
	Changed map[string]Change
	Links   LinksDiff
}

// Empty reports whether there is nothing to save.
func (d Diff) Empty() bool {
	return len(d.Changed) == 0 && len(d.Links.Added) == 0 && len(d.Links.Removed) == 0 && !d.Links.Reordered
}

// ProfileDirty reports whether any scalar field changed.
func (d Diff) ProfileDirty() bool { return len(d.Changed) > 0 }

// LinksDirty reports whether the link collection changed.
func (d Diff) LinksDirty() bool {
	return len(d.Links.Added) > 0 || len(d.Links.Removed) > 0 || d.Links.Reordered
}

// ComputeDiff compares a saved snapshot with the current one.
func ComputeDiff(saved, current profile.Snapshot) Diff {
	diff := Diff{Changed: make(map[string]Change)}

	fields := []struct {
		name         string
		saved, value string
	}{
		{string(profile.FieldFirstName), saved.FirstName, current.FirstName},
		{string(profile.FieldLastName), saved.LastName, current.LastName},
		{string(profile.FieldImage), imageURL(saved), imageURL(current)},
		{"Color", saved.Color, current.Color},
		{"Custom URL", saved.CustomURL, current.CustomURL},
	}
	for _, f := range fields {
		if f.saved != f.value {
			diff.Changed[f.name] = Change{Saved: f.saved, Current: f.value}
		}
	}

	diff.Links = computeLinksDiff(saved.Links, current.Links)
	return diff
}

func computeLinksDiff(saved, current []links.Record) LinksDiff {
	savedCount := toCounts(saved)
	currentCount := toCounts(current)

	var diff LinksDiff
	for _, r := range current {
		if savedCount[r] > 0 {
			savedCount[r]--
		} else {
			diff.Added = append(diff.Added, r)
		}
	}
	for _, r := range saved {
		if currentCount[r] > 0 {
			currentCount[r]--
		} else {
			diff.Removed = append(diff.Removed, r)
		}
	}

	if len(diff.Added) == 0 && len(diff.Removed) == 0 {
		for i := range saved {
			if saved[i] != current[i] {
				diff.Reordered = true
				break
			}
		}
	}
	return diff
}

func imageURL(s profile.Snapshot) string {
	if s.Image == nil {
		return ""
	}
	return s.Image.DataURL
}

func toCounts(items []links.Record) map[links.Record]int {
	m := make(map[links.Record]int, len(items))
	for _, item := range items {
		m[item]++
	}
	return m
}
