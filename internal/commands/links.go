package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ruminaider/devlinks/internal/links"
	"github.com/ruminaider/devlinks/internal/profile"
	dsync "github.com/ruminaider/devlinks/internal/sync"
)

// ErrNotPosition is returned for a link reference that is not a number.
var ErrNotPosition = errors.New("links are referenced by their position in the list")

// LinkView is one row of the link list. ID is only meaningful inside the
// session that produced it; ids are minted again every time the profile is
// loaded, so commands address links by Position.
type LinkView struct {
	Position   int // 1-based
	ID         string
	Label      string
	PlatformID string
	URL        string
	Issue      profile.IssueReason
}

// ListLinks returns the links in order with their advisory issues.
func ListLinks(s *Session) []LinkView {
	issues := map[string]profile.IssueReason{}
	for _, is := range s.Doc.LinkIssues(s.Registry) {
		issues[is.ID] = is.Reason
	}

	entries := s.Doc.Links()
	views := make([]LinkView, len(entries))
	for i, e := range entries {
		views[i] = LinkView{
			Position:   i + 1,
			ID:         e.ID,
			Label:      profile.LinkLabel(s.Registry, i, e),
			PlatformID: e.PlatformID,
			URL:        e.URL,
			Issue:      issues[e.ID],
		}
	}
	return views
}

// ResolveLink finds a link by its 1-based position.
func ResolveLink(doc *profile.Document, ref string) (links.Entry, error) {
	n, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil {
		return links.Entry{}, fmt.Errorf("link %q: %w", ref, ErrNotPosition)
	}
	e, err := doc.LinkAt(n - 1)
	if err != nil {
		return links.Entry{}, fmt.Errorf("link %d: %w", n, err)
	}
	return e, nil
}

// AddLink appends a link and saves the collection. An unknown platform is
// refused; a URL that does not match the platform is saved with a warning.
func AddLink(ctx context.Context, s *Session, platformID, url string) (links.Entry, dsync.SaveResult, error) {
	if platformID != "" {
		if _, err := s.Registry.Get(platformID); err != nil {
			return links.Entry{}, dsync.SaveResult{}, err
		}
	}
	e := s.Doc.AddLink()
	if err := s.Doc.UpdateLink(e.ID, links.FieldPlatform, platformID); err != nil {
		return links.Entry{}, dsync.SaveResult{}, err
	}
	if err := s.Doc.UpdateLink(e.ID, links.FieldURL, url); err != nil {
		return links.Entry{}, dsync.SaveResult{}, err
	}
	e, _ = s.Doc.Link(e.ID)

	res, err := saveLinks(ctx, s)
	return e, res, err
}

// RemoveLink deletes the referenced link and saves the collection.
func RemoveLink(ctx context.Context, s *Session, ref string) (links.Entry, dsync.SaveResult, error) {
	e, err := ResolveLink(s.Doc, ref)
	if err != nil {
		return links.Entry{}, dsync.SaveResult{}, err
	}
	s.Doc.RemoveLink(e.ID)
	res, err := saveLinks(ctx, s)
	return e, res, err
}

// UpdateLink sets one field of the referenced link and saves the collection.
func UpdateLink(ctx context.Context, s *Session, ref string, field links.Field, value string) (dsync.SaveResult, error) {
	e, err := ResolveLink(s.Doc, ref)
	if err != nil {
		return dsync.SaveResult{}, err
	}
	if field == links.FieldPlatform && value != "" {
		if _, err := s.Registry.Get(value); err != nil {
			return dsync.SaveResult{}, err
		}
	}
	if err := s.Doc.UpdateLink(e.ID, field, value); err != nil {
		return dsync.SaveResult{}, err
	}
	return saveLinks(ctx, s)
}

// MoveLink drags the link at 1-based position from to position to, shifting
// the links in between. Targets past either end land at that end.
func MoveLink(ctx context.Context, s *Session, from, to int) (dsync.SaveResult, error) {
	if err := s.Doc.DropLink(from-1, to-1); err != nil {
		return dsync.SaveResult{}, err
	}
	return saveLinks(ctx, s)
}

func saveLinks(ctx context.Context, s *Session) (dsync.SaveResult, error) {
	res := s.SaveLinks(ctx)
	if res.Err != nil {
		return res, fmt.Errorf("saving links: %w", res.Err)
	}
	return res, nil
}
