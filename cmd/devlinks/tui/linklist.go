package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/devlinks/internal/links"
	"github.com/ruminaider/devlinks/internal/platforms"
	"github.com/ruminaider/devlinks/internal/profile"
)

// LinkList edits the ordered link collection. The selected link's URL is
// bound to a text input.
type LinkList struct {
	cursor  int
	boundID string
	url     textinput.Model
}

// NewLinkList creates a list with the first link selected.
func NewLinkList(doc *profile.Document) LinkList {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "e.g. https://www.github.com/johnappleseed"
	ti.CharLimit = 2048
	ti.Width = 48
	l := LinkList{url: ti}
	l.bind(doc)
	return l
}

// Cursor returns the selected position.
func (l LinkList) Cursor() int { return l.cursor }

// Selected returns the selected entry.
func (l LinkList) Selected(doc *profile.Document) (links.Entry, bool) {
	e, err := doc.LinkAt(l.cursor)
	return e, err == nil
}

// Blur removes keyboard focus from the URL input.
func (l *LinkList) Blur() { l.url.Blur() }

// Focus gives keyboard focus back to the URL input.
func (l *LinkList) Focus() { l.url.Focus() }

// bind clamps the cursor and loads the selected URL into the input when the
// selection changed.
func (l *LinkList) bind(doc *profile.Document) {
	n := doc.LinkCount()
	l.cursor = max(min(l.cursor, n-1), 0)
	e, ok := l.Selected(doc)
	if !ok {
		l.boundID = ""
		l.url.SetValue("")
		return
	}
	if e.ID != l.boundID {
		l.boundID = e.ID
		l.url.SetValue(e.URL)
		l.url.CursorEnd()
	}
}

// Select moves the cursor to the link with id.
func (l *LinkList) Select(doc *profile.Document, id string) {
	for i, e := range doc.Links() {
		if e.ID == id {
			l.cursor = i
		}
	}
	l.bind(doc)
}

// Update handles key messages while the links section is active.
func (l LinkList) Update(msg tea.Msg, doc *profile.Document) (LinkList, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up":
			l.cursor--
			l.bind(doc)
			return l, nil
		case "down":
			l.cursor++
			l.bind(doc)
			return l, nil
		case "ctrl+n":
			e := doc.AddLink()
			l.Select(doc, e.ID)
			return l, nil
		case "ctrl+d":
			if e, ok := l.Selected(doc); ok {
				return l, func() tea.Msg { return removeRequestMsg{ID: e.ID} }
			}
			return l, nil
		case "ctrl+p", "enter":
			if e, ok := l.Selected(doc); ok {
				return l, func() tea.Msg { return platformPickMsg{ID: e.ID} }
			}
			return l, nil
		case "shift+up", "shift+down":
			l.move(doc, key.String() == "shift+down")
			return l, nil
		}
	}

	e, ok := l.Selected(doc)
	if !ok {
		return l, nil
	}
	var cmd tea.Cmd
	l.url, cmd = l.url.Update(msg)
	if v := l.url.Value(); v != e.URL {
		// The bound id always exists, so the update cannot fail.
		_ = doc.UpdateLink(e.ID, links.FieldURL, v)
	}
	return l, cmd
}

// move shifts the selected link by one position. Moves past either end are
// ignored.
func (l *LinkList) move(doc *profile.Document, down bool) {
	to := l.cursor - 1
	if down {
		to = l.cursor + 1
	}
	var rangeErr *links.RangeError
	if err := doc.SwapLinks(l.cursor, to); errors.As(err, &rangeErr) {
		return
	}
	l.cursor = to
	l.bind(doc)
}

// View renders the link cards.
func (l LinkList) View(doc *profile.Document, reg *platforms.Registry) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Customize your links"))
	b.WriteString("\n")
	b.WriteString(HintStyle.Render("Add/edit/remove links below and then share all your profiles with the world!"))
	b.WriteString("\n\n")

	entries := doc.Links()
	if len(entries) == 0 {
		b.WriteString("Let's get you started\n")
		b.WriteString(HintStyle.Render("Press Ctrl+N to add your first link."))
		return b.String()
	}

	issues := map[string]profile.IssueReason{}
	for _, is := range doc.LinkIssues(reg) {
		issues[is.ID] = is.Reason
	}

	for i, e := range entries {
		var card strings.Builder
		card.WriteString(HeaderStyle.Render("= " + profile.LinkLabel(reg, i, e)))
		card.WriteString("\n")

		card.WriteString(LabelStyle.Render("Platform"))
		if e.PlatformID == "" {
			card.WriteString(ReadOnlyStyle.Render("Choose a platform"))
		} else if name := reg.Name(e.PlatformID); name != "" {
			card.WriteString(name)
		} else {
			card.WriteString(e.PlatformID)
		}
		card.WriteString("\n")

		card.WriteString(LabelStyle.Render("Link"))
		if i == l.cursor {
			card.WriteString(l.url.View())
		} else if e.URL == "" {
			card.WriteString(ReadOnlyStyle.Render("empty"))
		} else {
			card.WriteString(e.URL)
		}
		if reason, ok := issues[e.ID]; ok {
			card.WriteString("\n")
			card.WriteString(IssueStyle.Render(string(reason)))
		}

		style := CardStyle
		if i == l.cursor {
			style = SelectedCardStyle
		}
		b.WriteString(style.Render(card.String()))
		b.WriteString("\n")
	}
	b.WriteString(HintStyle.Render("Ctrl+N: add  Ctrl+D: remove  Enter: platform  Shift+↑/↓: reorder"))
	return b.String()
}
