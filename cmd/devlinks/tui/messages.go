package tui

import (
	"time"

	"github.com/ruminaider/devlinks/internal/avatar"
	dsync "github.com/ruminaider/devlinks/internal/sync"
)

// Section identifies one half of the editor.
type Section int

const (
	SectionProfile Section = iota
	SectionLinks
)

// String returns the tab label for a section.
func (s Section) String() string {
	switch s {
	case SectionProfile:
		return "Profile Details"
	case SectionLinks:
		return "Links"
	default:
		return "Unknown"
	}
}

// AllSections lists every section in tab order.
var AllSections = []Section{SectionProfile, SectionLinks}

// OverlayCloseMsg is emitted when any overlay is dismissed.
type OverlayCloseMsg struct {
	Result    string // Text result (for text input or choice) or empty
	Index     int    // Chosen index for choice overlays
	Confirmed bool   // true = OK/Submit, false = Cancel/Esc
}

// profileSavedMsg carries a finished profile request back to the event loop.
type profileSavedMsg struct {
	save   dsync.ProfileSave
	shared bool
	err    error
}

// linksSavedMsg carries a finished links request back to the event loop.
type linksSavedMsg struct {
	save   dsync.LinksSave
	shared bool
	err    error
}

// avatarLoadedMsg carries the outcome of reading an avatar source.
type avatarLoadedMsg struct {
	img avatar.Image
	err error
}

// Requests raised by child components and handled by the root model.
type (
	avatarPromptMsg  struct{}
	platformPickMsg  struct{ ID string }
	removeRequestMsg struct{ ID string }
	tickMsg          time.Time
)
