package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ruminaider/devlinks/internal/avatar"
	"github.com/ruminaider/devlinks/internal/links"
	"github.com/ruminaider/devlinks/internal/platforms"
	"github.com/ruminaider/devlinks/internal/profile"
	dsync "github.com/ruminaider/devlinks/internal/sync"
)

// tickInterval refreshes the relative "saved ... ago" text.
const tickInterval = 30 * time.Second

// overlayContext tracks what the currently active overlay was opened for.
type overlayContext int

const (
	overlayNone          overlayContext = iota
	overlayAvatarSource                 // path or URL of a new picture
	overlayPlatform                     // platform picker for a link
	overlayRemoveConfirm                // remove link confirmation
	overlayQuitConfirm                  // quit with unsaved changes
)

// Ingester loads avatar images.
type Ingester interface {
	Ingest(ctx context.Context, source string) (avatar.Image, error)
}

// Model is the root bubbletea model of the profile editor. It owns the
// document; saves and image loads run as commands and report back as
// messages.
type Model struct {
	ctx      context.Context
	doc      *profile.Document
	manager  *dsync.Manager
	registry *platforms.Registry
	ingester Ingester

	section   Section
	form      ProfileForm
	linkList  LinkList
	statusBar StatusBar
	overlay   Overlay

	overlayCtx overlayContext
	pendingID  string // link the overlay acts on

	notice        string
	width, height int
	quitting      bool
}

// NewModel creates the editor for an opened document.
func NewModel(ctx context.Context, doc *profile.Document, mgr *dsync.Manager, reg *platforms.Registry, ing Ingester) Model {
	m := Model{
		ctx:       ctx,
		doc:       doc,
		manager:   mgr,
		registry:  reg,
		ingester:  ing,
		section:   SectionProfile,
		form:      NewProfileForm(doc),
		linkList:  NewLinkList(doc),
		statusBar: NewStatusBar(),
	}
	m.linkList.Blur()
	m.refreshStatus()
	return m
}

// Init starts the status refresh ticker.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.statusBar.SetWidth(msg.Width)
		return m, nil

	case tickMsg:
		m.refreshStatus()
		return m, tick()

	case profileSavedMsg:
		m.applyResult(m.manager.FinishProfile(m.doc, msg.save, msg.shared, msg.err))
	case linksSavedMsg:
		m.applyResult(m.manager.FinishLinks(m.doc, msg.save, msg.shared, msg.err))

	case avatarLoadedMsg:
		m.notice = ""
		if err := m.doc.ApplyIngest(msg.img, msg.err); err == nil {
			m.notice = "Picture updated: " + msg.img.Describe()
		}

	case avatarPromptMsg:
		m.openOverlay(overlayAvatarSource, NewTextInputOverlay("Profile picture", avatar.Hint, "path/to/image.png or https://…"))
	case platformPickMsg:
		m.pendingID = msg.ID
		m.openOverlay(overlayPlatform, m.platformOverlay(msg.ID))
	case removeRequestMsg:
		m.pendingID = msg.ID
		label := "this link"
		if i := m.indexOf(msg.ID); i >= 0 {
			e, _ := m.doc.LinkAt(i)
			label = profile.LinkLabel(m.registry, i, e)
		}
		m.openOverlay(overlayRemoveConfirm, NewConfirmOverlay("Remove link", fmt.Sprintf("Remove %s?", label)))

	case OverlayCloseMsg:
		cmd = m.closeOverlay(msg)

	case tea.KeyMsg:
		if m.overlay.Active() {
			m.overlay, cmd = m.overlay.Update(msg)
			return m, cmd
		}
		cmd = m.handleKey(msg)

	default:
		if m.overlay.Active() {
			m.overlay, cmd = m.overlay.Update(msg)
			return m, cmd
		}
	}

	m.refreshStatus()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m.requestQuit()
	case "tab", "shift+tab":
		m.switchSection()
		return nil
	case "ctrl+s":
		return m.save()
	}

	m.notice = ""
	var cmd tea.Cmd
	switch m.section {
	case SectionProfile:
		m.form, cmd = m.form.Update(msg, m.doc)
	case SectionLinks:
		m.linkList, cmd = m.linkList.Update(msg, m.doc)
	}
	return cmd
}

func (m *Model) switchSection() {
	if m.section == SectionProfile {
		m.section = SectionLinks
		m.form.Blur()
		m.linkList.Focus()
		return
	}
	m.section = SectionProfile
	m.linkList.Blur()
	m.form.Focus()
}

// save starts a save of the active section. Begin runs here on the event
// loop; only the request itself runs in the returned command.
func (m *Model) save() tea.Cmd {
	m.notice = ""
	ctx := m.ctx
	mgr := m.manager

	if m.section == SectionLinks {
		ls := mgr.BeginLinks(m.doc)
		return func() tea.Msg {
			shared, err := mgr.SendLinks(ctx, ls)
			return linksSavedMsg{save: ls, shared: shared, err: err}
		}
	}

	ps, err := mgr.BeginProfile(m.doc)
	if err != nil {
		// The document carries the eligibility message.
		return nil
	}
	return func() tea.Msg {
		shared, err := mgr.SendProfile(ctx, ps)
		return profileSavedMsg{save: ps, shared: shared, err: err}
	}
}

func (m *Model) applyResult(res dsync.SaveResult) {
	if !res.Success {
		m.notice = ""
		return
	}
	m.notice = res.Notice
	if n := len(res.Warnings); n > 0 {
		m.notice += fmt.Sprintf(" %d %s attention.", n, plural(n, "link needs", "links need"))
	}
}

func (m *Model) requestQuit() tea.Cmd {
	pending := m.manager.Pending(m.doc)
	if pending.Empty() && !m.doc.IsSyncing() {
		m.quitting = true
		return tea.Quit
	}
	msg := "You have unsaved changes. Quit anyway?"
	if m.doc.IsSyncing() {
		msg = "A save is still in progress. Quit anyway?"
	}
	m.openOverlay(overlayQuitConfirm, NewConfirmOverlay("Quit", msg))
	return nil
}

func (m *Model) openOverlay(ctx overlayContext, o Overlay) {
	m.overlayCtx = ctx
	m.overlay = o
}

func (m *Model) closeOverlay(msg OverlayCloseMsg) tea.Cmd {
	ctx, id := m.overlayCtx, m.pendingID
	m.overlayCtx, m.pendingID = overlayNone, ""
	if !msg.Confirmed {
		return nil
	}

	switch ctx {
	case overlayAvatarSource:
		ingester, reqCtx, source := m.ingester, m.ctx, msg.Result
		return func() tea.Msg {
			img, err := ingester.Ingest(reqCtx, source)
			return avatarLoadedMsg{img: img, err: err}
		}
	case overlayPlatform:
		list := m.registry.List()
		if msg.Index >= 0 && msg.Index < len(list) {
			if err := m.doc.UpdateLink(id, links.FieldPlatform, list[msg.Index].ID); errors.Is(err, links.ErrNotFound) {
				m.doc.SetError("That link no longer exists.")
			}
		}
	case overlayRemoveConfirm:
		m.doc.RemoveLink(id)
		m.linkList.bind(m.doc)
	case overlayQuitConfirm:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m Model) platformOverlay(id string) Overlay {
	list := m.registry.List()
	names := make([]string, len(list))
	selected := 0
	current := ""
	if e, ok := m.doc.Link(id); ok {
		current = e.PlatformID
	}
	for i, p := range list {
		names[i] = p.Name
		if p.ID == current {
			selected = i
		}
	}
	return NewChoiceOverlay("Platform", names, selected)
}

func (m Model) indexOf(id string) int {
	for i, e := range m.doc.Links() {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) refreshStatus() {
	m.statusBar.Update(StatusSummary{
		Section:   m.section,
		Syncing:   m.doc.IsSyncing(),
		Dirty:     !m.manager.Pending(m.doc).Empty(),
		Failed:    m.manager.State() == dsync.StateErrored,
		Links:     m.doc.LinkCount(),
		LastSaved: m.manager.LastSaved(),
	})
}

// View renders the editor.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var tabs []string
	for _, s := range AllSections {
		if s == m.section {
			tabs = append(tabs, ActiveTabStyle.Render(s.String()))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(s.String()))
		}
	}
	tabBar := TabBarStyle.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))

	var body string
	if m.section == SectionProfile {
		body = m.form.View(m.doc)
	} else {
		body = m.linkList.View(m.doc, m.registry)
	}

	var message string
	switch {
	case m.doc.ErrorMessage() != "":
		message = ErrorStyle.Render(m.doc.ErrorMessage())
	case m.notice != "":
		message = NoticeStyle.Render(m.notice)
	}

	// Fill the space between content and status bar.
	content := ContentPaneStyle.Render(body)
	used := lipgloss.Height(tabBar) + lipgloss.Height(content) + 2
	filler := ""
	if m.height > used {
		filler = strings.Repeat("\n", m.height-used)
	}

	frame := lipgloss.JoinVertical(lipgloss.Left,
		tabBar,
		content+filler,
		ContentPaneStyle.Render(message),
		m.statusBar.View(),
	)
	if m.overlay.Active() {
		return Composite(frame, m.overlay.View(), m.width, m.height)
	}
	return frame
}
