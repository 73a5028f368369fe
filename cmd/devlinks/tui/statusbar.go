package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// StatusBar renders the bottom row with save state and keyboard shortcuts.
type StatusBar struct {
	section   Section
	syncing   bool
	dirty     bool
	failed    bool
	links     int
	lastSaved time.Time
	width     int
}

// NewStatusBar creates a status bar with default values.
func NewStatusBar() StatusBar {
	return StatusBar{section: SectionProfile}
}

// SetWidth sets the available width for rendering.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// StatusSummary is the editor state shown in the status bar.
type StatusSummary struct {
	Section   Section
	Syncing   bool
	Dirty     bool
	Failed    bool
	Links     int
	LastSaved time.Time
}

// Update refreshes the status bar.
func (s *StatusBar) Update(sum StatusSummary) {
	s.section = sum.Section
	s.syncing = sum.Syncing
	s.dirty = sum.Dirty
	s.failed = sum.Failed
	s.links = sum.Links
	s.lastSaved = sum.LastSaved
}

func (s StatusBar) state() string {
	switch {
	case s.syncing:
		return "saving…"
	case s.failed:
		return "save failed"
	case s.dirty:
		return "unsaved changes"
	case !s.lastSaved.IsZero():
		return "saved " + humanize.Time(s.lastSaved)
	}
	return "up to date"
}

// View renders the status bar.
func (s StatusBar) View() string {
	left := fmt.Sprintf("%s · %s", s.section, s.state())
	if s.section == SectionLinks {
		left = fmt.Sprintf("%s · %d %s · %s", s.section, s.links, plural(s.links, "link", "links"), s.state())
	}

	shortcuts := []string{
		StatusBarKeyStyle.Render("Ctrl+S") + ": save",
		StatusBarKeyStyle.Render("Tab") + ": section",
		StatusBarKeyStyle.Render("Esc") + ": quit",
	}
	right := strings.Join(shortcuts, " · ")

	gap := s.width - 2 - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return StatusBarStyle.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
