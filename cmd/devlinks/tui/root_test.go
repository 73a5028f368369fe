package tui

import (
	"context"
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/devlinks/internal/api"
	"github.com/ruminaider/devlinks/internal/apitest"
	"github.com/ruminaider/devlinks/internal/avatar"
	"github.com/ruminaider/devlinks/internal/logger"
	"github.com/ruminaider/devlinks/internal/platforms"
	"github.com/ruminaider/devlinks/internal/profile"
	dsync "github.com/ruminaider/devlinks/internal/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIngester struct {
	img avatar.Image
	err error
	got []string
}

func (f *fakeIngester) Ingest(_ context.Context, source string) (avatar.Image, error) {
	f.got = append(f.got, source)
	return f.img, f.err
}

var testImage = avatar.Image{DataURL: "data:image/png;base64,AAAA", MIME: "image/png", Format: "png", Width: 64, Height: 64, Size: 3}

func testModel(t *testing.T, doc *profile.Document) (Model, *apitest.Server, *fakeIngester) {
	t.Helper()
	srv := apitest.New(t)
	client, err := api.NewClient(srv.URL, api.WithLogger(logger.Discard()))
	require.NoError(t, err)
	reg := platforms.Default()
	mgr := dsync.NewManager(client, dsync.WithValidator(reg), dsync.WithLogger(logger.Discard()))
	ing := &fakeIngester{img: testImage}
	m := NewModel(context.Background(), doc, mgr, reg, ing)
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, srv, ing
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keys(m Model, msgs ...tea.KeyMsg) Model {
	for _, msg := range msgs {
		m, _ = update(m, msg)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	return update(m, cmd())
}

func completeDoc() *profile.Document {
	d := profile.New("ada@example.com")
	d.SetFirstName("Ada")
	d.SetLastName("Lovelace")
	d.SetImage(testImage)
	return d
}

func TestProfileForm_TypingWritesThrough(t *testing.T) {
	doc := profile.New("ada@example.com")
	m, _, _ := testModel(t, doc)

	m = keys(m, runes("Ada"), key(tea.KeyDown), runes("Lovelace"), key(tea.KeyDown), runes("#633CFF"))

	assert.Equal(t, "Ada", doc.FirstName())
	assert.Equal(t, "Lovelace", doc.LastName())
	assert.Equal(t, "#633CFF", doc.Color())
	assert.Contains(t, m.View(), "ada@example.com")
}

func TestProfileForm_EditClearsValidationError(t *testing.T) {
	doc := profile.New("ada@example.com")
	m, srv, _ := testModel(t, doc)

	m, cmd := update(m, key(tea.KeyCtrlS))

	assert.Nil(t, cmd)
	assert.Equal(t, "You must provide all the information: First Name, Last Name, Profile Picture", doc.ErrorMessage())
	assert.Contains(t, m.View(), "You must provide all the information")
	assert.Contains(t, m.statusBar.View(), "save failed")
	assert.Zero(t, srv.Calls(apitest.PostProfile))

	keys(m, runes("A"))
	assert.Empty(t, doc.ErrorMessage())
}

func TestSaveProfile_RunsAsync(t *testing.T) {
	doc := completeDoc()
	m, srv, _ := testModel(t, doc)

	m, cmd := update(m, key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	assert.True(t, doc.IsSyncing())
	assert.Contains(t, m.statusBar.View(), "saving")

	// Editing continues while the request is out.
	m = keys(m, runes("!"))
	assert.Equal(t, "Ada!", doc.FirstName())

	m, _ = run(t, m, cmd)
	assert.False(t, doc.IsSyncing())
	assert.Equal(t, dsync.SavedNotice, m.notice)
	assert.Equal(t, "Ada", srv.Profile().FirstName)
	assert.Contains(t, m.statusBar.View(), "unsaved changes")
}

func TestSaveProfile_RemoteError(t *testing.T) {
	doc := completeDoc()
	m, srv, _ := testModel(t, doc)
	srv.Fail(apitest.PostProfile, apitest.Failure{Status: http.StatusOK, Body: `{"error":"Email taken"}`})

	m, cmd := update(m, key(tea.KeyCtrlS))
	m, _ = run(t, m, cmd)

	assert.Equal(t, "Email taken", doc.ErrorMessage())
	assert.Empty(t, m.notice)
	assert.Contains(t, m.View(), "Email taken")
	assert.Contains(t, m.statusBar.View(), "save failed")
}

func TestAvatar_PromptAndLoad(t *testing.T) {
	doc := profile.New("ada@example.com")
	m, _, ing := testModel(t, doc)

	// Move to the picture row and open the prompt.
	m = keys(m, key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown))
	m, cmd := update(m, key(tea.KeyEnter))
	m, _ = run(t, m, cmd)
	require.True(t, m.overlay.Active())
	assert.Equal(t, overlayAvatarSource, m.overlayCtx)

	m = keys(m, runes("me.png"))
	m, cmd = update(m, key(tea.KeyEnter))
	m, cmd = run(t, m, cmd) // overlay close starts the load
	m, _ = run(t, m, cmd)

	assert.Equal(t, []string{"me.png"}, ing.got)
	require.NotNil(t, doc.Image())
	assert.Equal(t, 64, doc.Image().Width)
	assert.Contains(t, m.notice, "64x64 PNG")
}

func TestAvatar_TooLargeKeepsPrevious(t *testing.T) {
	doc := completeDoc()
	m, _, _ := testModel(t, doc)

	m, _ = update(m, avatarLoadedMsg{err: &avatar.TooLargeError{Width: 1025, Height: 800}})

	assert.Equal(t, avatar.TooLargeMessage, doc.ErrorMessage())
	assert.Equal(t, testImage, *doc.Image())
	assert.Empty(t, m.notice)
}

func TestLinks_AddPickPlatformAndSave(t *testing.T) {
	doc := profile.New("ada@example.com")
	m, srv, _ := testModel(t, doc)

	m = keys(m, key(tea.KeyTab), key(tea.KeyCtrlN), runes("https://github.com/ada"))
	require.Equal(t, 1, doc.LinkCount())
	assert.Contains(t, m.View(), "Link #1")
	assert.Contains(t, m.View(), "Choose a platform")

	m, cmd := update(m, key(tea.KeyEnter))
	m, _ = run(t, m, cmd)
	require.Equal(t, overlayPlatform, m.overlayCtx)
	m, cmd = update(m, key(tea.KeyEnter)) // GitHub is first
	m, _ = run(t, m, cmd)

	e, err := doc.LinkAt(0)
	require.NoError(t, err)
	assert.Equal(t, "github", e.PlatformID)
	assert.Equal(t, "https://github.com/ada", e.URL)
	assert.Contains(t, m.View(), "GitHub")

	m, cmd = update(m, key(tea.KeyCtrlS))
	m, _ = run(t, m, cmd)
	assert.Equal(t, dsync.SavedNotice, m.notice)
	assert.Equal(t, []api.Link{{PlatformID: api.StringPtr("github"), URL: "https://github.com/ada"}}, srv.Profile().Links)
}

func TestLinks_SaveReportsWarnings(t *testing.T) {
	doc := profile.New("ada@example.com")
	m, _, _ := testModel(t, doc)

	m = keys(m, key(tea.KeyTab), key(tea.KeyCtrlN))
	m, cmd := update(m, key(tea.KeyCtrlS))
	m, _ = run(t, m, cmd)

	assert.True(t, strings.HasPrefix(m.notice, dsync.SavedNotice))
	assert.Contains(t, m.notice, "1 link needs attention.")
}

func TestLinks_Reorder(t *testing.T) {
	doc := profile.New("ada@example.com")
	m, _, _ := testModel(t, doc)
	m = keys(m, key(tea.KeyTab), key(tea.KeyCtrlN), runes("a"), key(tea.KeyCtrlN), runes("b"))
	require.Equal(t, 1, m.linkList.Cursor())

	m = keys(m, key(tea.KeyShiftUp))
	assert.Equal(t, 0, m.linkList.Cursor())
	assert.Equal(t, []string{"b", "a"}, urls(doc))

	// Moving past the top is ignored.
	m = keys(m, key(tea.KeyShiftUp))
	assert.Equal(t, 0, m.linkList.Cursor())
	assert.Equal(t, []string{"b", "a"}, urls(doc))

	// The input follows the selection.
	m = keys(m, key(tea.KeyDown), runes("!"))
	assert.Equal(t, []string{"b", "a!"}, urls(doc))
}

func TestLinks_RemoveConfirm(t *testing.T) {
	doc := profile.New("ada@example.com")
	m, _, _ := testModel(t, doc)
	m = keys(m, key(tea.KeyTab), key(tea.KeyCtrlN), runes("a"), key(tea.KeyCtrlN), runes("b"))

	m, cmd := update(m, key(tea.KeyCtrlD))
	m, _ = run(t, m, cmd)
	require.Equal(t, overlayRemoveConfirm, m.overlayCtx)
	assert.Contains(t, m.View(), "Remove Link #2?")

	// Cancel is the default button.
	m, cmd = update(m, key(tea.KeyEnter))
	m, _ = run(t, m, cmd)
	assert.Equal(t, 2, doc.LinkCount())

	m, cmd = update(m, key(tea.KeyCtrlD))
	m, _ = run(t, m, cmd)
	m, cmd = update(m, runes("y"))
	m, _ = run(t, m, cmd)
	assert.Equal(t, []string{"a"}, urls(doc))
	assert.Equal(t, 0, m.linkList.Cursor())
}

func TestQuit(t *testing.T) {
	t.Run("clean document quits at once", func(t *testing.T) {
		m, _, _ := testModel(t, profile.New("ada@example.com"))
		m, cmd := update(m, key(tea.KeyEsc))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.True(t, m.quitting)
	})

	t.Run("unsaved changes ask first", func(t *testing.T) {
		m, _, _ := testModel(t, profile.New("ada@example.com"))
		m = keys(m, runes("A"))

		m, cmd := update(m, key(tea.KeyCtrlC))
		assert.Nil(t, cmd)
		require.Equal(t, overlayQuitConfirm, m.overlayCtx)
		assert.Contains(t, m.View(), "unsaved changes")

		m, cmd = update(m, runes("y"))
		m, cmd = run(t, m, cmd)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestSectionTabs(t *testing.T) {
	m, _, _ := testModel(t, profile.New("ada@example.com"))
	assert.Contains(t, m.View(), "Profile Details")

	m = keys(m, key(tea.KeyTab))
	assert.Equal(t, SectionLinks, m.section)
	assert.Contains(t, m.View(), "Let's get you started")
	assert.Contains(t, m.statusBar.View(), "0 links")

	m = keys(m, key(tea.KeyShiftTab))
	assert.Equal(t, SectionProfile, m.section)
}

func urls(doc *profile.Document) []string {
	var out []string
	for _, e := range doc.Links() {
		out = append(out, e.URL)
	}
	return out
}
