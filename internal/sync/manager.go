// Package sync persists profile documents to the backend and tracks the save
// lifecycle: Idle, Saving, then back to Idle or Errored.
//
// Saves are split in three steps. Begin and Finish read and write the
// document and must run on the goroutine that owns it. Send performs the
// network call and may run anywhere, which lets an event loop keep editing
// while a save is in flight.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/ruminaider/devlinks/internal/api"
	"github.com/ruminaider/devlinks/internal/profile"
	"golang.org/x/sync/singleflight"
)

// SavedNotice is reported after every successful save.
const SavedNotice = "Your changes have been successfully saved!"

// Remote is the subset of the API client the manager needs.
type Remote interface {
	FetchProfile(ctx context.Context, email string) (*api.Profile, error)
	SaveProfile(ctx context.Context, req api.ProfileRequest) error
	SaveLinks(ctx context.Context, req api.LinksRequest) error
}

// State is the save lifecycle state.
type State int

const (
	StateIdle State = iota
	StateSaving
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSaving:
		return "saving"
	case StateErrored:
		return "errored"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// EligibilityError is returned when a profile save is attempted with
// required fields missing. No request is sent.
type EligibilityError struct {
	Missing []profile.Field
}

func (e *EligibilityError) Error() string {
	return "You must provide all the information: " + profile.JoinFields(e.Missing)
}

// SaveResult is the outcome of one save.
type SaveResult struct {
	Success bool
	Notice  string
	Err     error
	// Shared is set when the request was coalesced with an identical one
	// already in flight.
	Shared bool
	// Warnings lists links that do not validate. They are submitted anyway.
	Warnings []profile.LinkIssue
}

// ProfileSave is a profile payload captured by BeginProfile.
type ProfileSave struct {
	req  api.ProfileRequest
	snap profile.Snapshot
	seq  uint64
	key  string
}

// Request returns the payload that will be posted.
func (p ProfileSave) Request() api.ProfileRequest { return p.req }

// LinksSave is a links payload captured by BeginLinks.
type LinksSave struct {
	req      api.LinksRequest
	snap     profile.Snapshot
	warnings []profile.LinkIssue
	seq      uint64
	key      string
}

// Request returns the payload that will be posted.
func (l LinksSave) Request() api.LinksRequest { return l.req }

// Manager runs saves against a Remote.
type Manager struct {
	remote    Remote
	validator profile.URLValidator
	logger    *slog.Logger
	now       func() time.Time

	group singleflight.Group
	lanes map[string]*lane

	state     State
	inflight  int
	saved     profile.Snapshot
	lastSaved time.Time
}

// lane tracks the most recently begun save of one kind. A new save shares
// the lane's coalescing key only while its payload matches the previous one.
type lane struct {
	seq    uint64
	hash   uint64
	hashed bool
	key    string
}

// Option configures a Manager.
type Option func(*Manager)

// WithValidator enables link warnings on links saves.
func WithValidator(v profile.URLValidator) Option {
	return func(m *Manager) { m.validator = v }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns an idle manager.
func NewManager(remote Remote, opts ...Option) *Manager {
	m := &Manager{
		remote: remote,
		logger: slog.Default(),
		now:    time.Now,
		lanes:  make(map[string]*lane),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current lifecycle state.
func (m *Manager) State() State { return m.state }

// LastSaved returns when the last successful save finished, or the zero time.
func (m *Manager) LastSaved() time.Time { return m.lastSaved }

// Open loads the stored profile for email. An account without a stored
// profile starts from a blank document.
func (m *Manager) Open(ctx context.Context, email string) (*profile.Document, error) {
	p, err := m.remote.FetchProfile(ctx, email)
	if errors.Is(err, api.ErrNotFound) {
		m.logger.Debug("no stored profile, starting blank", "email", email)
		doc := profile.New(email)
		m.saved = doc.Snapshot()
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	snap := snapshotFromAPI(email, p, m.logger)
	m.saved = snap
	return profile.FromSnapshot(snap), nil
}

// BeginProfile checks that doc can be saved and captures its payload. When
// required fields are missing it records the failure on the document and
// returns an *EligibilityError.
func (m *Manager) BeginProfile(doc *profile.Document) (ProfileSave, error) {
	if missing := doc.MissingFields(); len(missing) > 0 {
		err := &EligibilityError{Missing: missing}
		doc.SetError(err.Error())
		m.state = StateErrored
		return ProfileSave{}, err
	}
	snap := doc.Snapshot()
	ps := ProfileSave{req: profileRequest(snap), snap: snap}
	ps.seq, ps.key = m.ticket(kindProfile, ps.req)
	m.begin(doc)
	return ps, nil
}

// SendProfile posts a captured profile payload. It is safe for concurrent use.
func (m *Manager) SendProfile(ctx context.Context, ps ProfileSave) (shared bool, err error) {
	return m.send(ctx, kindProfile, ps.key, func() error {
		return m.remote.SaveProfile(ctx, ps.req)
	})
}

// FinishProfile applies the outcome of SendProfile to doc. Only the most
// recently begun profile save moves the saved baseline.
func (m *Manager) FinishProfile(doc *profile.Document, ps ProfileSave, shared bool, err error) SaveResult {
	latest := m.latest(kindProfile, ps.seq)
	res := m.finish(doc, latest, shared, err)
	if res.Success && latest {
		m.saved.Email = ps.snap.Email
		m.saved.FirstName = ps.snap.FirstName
		m.saved.LastName = ps.snap.LastName
		m.saved.Image = ps.snap.Image
		m.saved.Color = ps.snap.Color
		m.saved.CustomURL = ps.snap.CustomURL
	}
	return res
}

// SaveProfile runs a whole profile save synchronously.
func (m *Manager) SaveProfile(ctx context.Context, doc *profile.Document) SaveResult {
	ps, err := m.BeginProfile(doc)
	if err != nil {
		return SaveResult{Err: err}
	}
	shared, err := m.SendProfile(ctx, ps)
	return m.FinishProfile(doc, ps, shared, err)
}

// BeginLinks captures the full ordered link collection. Links are never
// gated; issues found by the validator are carried as warnings.
func (m *Manager) BeginLinks(doc *profile.Document) LinksSave {
	snap := doc.Snapshot()
	ls := LinksSave{req: linksRequest(snap), snap: snap}
	if m.validator != nil {
		ls.warnings = doc.LinkIssues(m.validator)
	}
	ls.seq, ls.key = m.ticket(kindLinks, ls.req)
	m.begin(doc)
	return ls
}

// SendLinks posts a captured links payload. It is safe for concurrent use.
func (m *Manager) SendLinks(ctx context.Context, ls LinksSave) (shared bool, err error) {
	return m.send(ctx, kindLinks, ls.key, func() error {
		return m.remote.SaveLinks(ctx, ls.req)
	})
}

// FinishLinks applies the outcome of SendLinks to doc. Only the most
// recently begun links save moves the saved baseline.
func (m *Manager) FinishLinks(doc *profile.Document, ls LinksSave, shared bool, err error) SaveResult {
	latest := m.latest(kindLinks, ls.seq)
	res := m.finish(doc, latest, shared, err)
	res.Warnings = ls.warnings
	if res.Success && latest {
		m.saved.Links = ls.snap.Links
	}
	return res
}

// SaveLinks runs a whole links save synchronously.
func (m *Manager) SaveLinks(ctx context.Context, doc *profile.Document) SaveResult {
	ls := m.BeginLinks(doc)
	shared, err := m.SendLinks(ctx, ls)
	return m.FinishLinks(doc, ls, shared, err)
}

// Pending reports what doc changed since it was opened or last saved.
func (m *Manager) Pending(doc *profile.Document) Diff {
	return ComputeDiff(m.saved, doc.Snapshot())
}

func (m *Manager) begin(doc *profile.Document) {
	// A new attempt supersedes the previous failure.
	if doc.ErrorKind() == profile.ErrorRemote {
		doc.ClearError()
	}
	doc.BeginSync()
	m.inflight++
	m.state = StateSaving
}

func (m *Manager) finish(doc *profile.Document, latest, shared bool, err error) SaveResult {
	doc.EndSync()
	if m.inflight > 0 {
		m.inflight--
	}

	if !latest {
		// A newer save of the same kind owns the document's error and the
		// saved baseline.
		if m.inflight == 0 && m.state == StateSaving {
			m.state = StateIdle
		}
		if err != nil {
			m.logger.Debug("superseded save failed", "error", err)
			return SaveResult{Err: err, Shared: shared}
		}
		return SaveResult{Success: true, Notice: SavedNotice, Shared: shared}
	}

	if err != nil {
		msg := api.UserMessage(err)
		m.logger.Warn("save failed", "error", err)
		doc.SetSyncError(msg)
		m.state = StateErrored
		return SaveResult{Err: err, Shared: shared}
	}

	doc.ClearError()
	m.lastSaved = m.now()
	if m.inflight == 0 {
		m.state = StateIdle
	}
	return SaveResult{Success: true, Notice: SavedNotice, Shared: shared}
}

const (
	kindProfile = "profile"
	kindLinks   = "links"
)

// ticket numbers a new save of kind and picks its coalescing key. The key is
// reused only when the previous save of the same kind carried an identical
// payload, so a save never joins a request that an intervening write has
// already overtaken on the server. An empty key disables coalescing.
func (m *Manager) ticket(kind string, payload any) (uint64, string) {
	l := m.lanes[kind]
	if l == nil {
		l = &lane{}
		m.lanes[kind] = l
	}
	l.seq++

	h, err := hashstructure.Hash(payload, hashstructure.FormatV2, nil)
	if err != nil {
		m.logger.Debug("payload not hashable, sending uncoalesced", "kind", kind, "error", err)
		l.hashed, l.key = false, ""
		return l.seq, ""
	}
	if !l.hashed || l.hash != h || l.key == "" {
		l.key = fmt.Sprintf("%s/%d/%016x", kind, l.seq, h)
	}
	l.hash, l.hashed = h, true
	return l.seq, l.key
}

func (m *Manager) latest(kind string, seq uint64) bool {
	l := m.lanes[kind]
	return l != nil && l.seq == seq
}

// send runs call, sharing one request among saves with the same key.
func (m *Manager) send(ctx context.Context, kind, key string, call func() error) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, &api.TransportError{Op: "save " + kind, Err: err}
	}
	if key == "" {
		return false, call()
	}
	_, err, shared := m.group.Do(key, func() (any, error) {
		return nil, call()
	})
	if shared {
		m.logger.Debug("save coalesced", "kind", kind, "key", key)
	}
	return shared, err
}
