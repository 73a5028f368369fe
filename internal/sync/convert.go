package sync

import (
	"log/slog"

	"github.com/ruminaider/devlinks/internal/api"
	"github.com/ruminaider/devlinks/internal/avatar"
	"github.com/ruminaider/devlinks/internal/links"
	"github.com/ruminaider/devlinks/internal/profile"
)

func profileRequest(s profile.Snapshot) api.ProfileRequest {
	req := api.ProfileRequest{
		Email:     s.Email,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		CustomURL: api.StringPtr(s.CustomURL),
		Color:     api.StringPtr(s.Color),
	}
	if s.Image != nil {
		req.Image = s.Image.DataURL
	}
	return req
}

func linksRequest(s profile.Snapshot) api.LinksRequest {
	out := make([]api.Link, len(s.Links))
	for i, r := range s.Links {
		out[i] = api.Link{PlatformID: api.StringPtr(r.PlatformID), URL: r.URL}
	}
	return api.LinksRequest{Links: out}
}

// snapshotFromAPI converts a fetched profile. The session email wins over
// whatever the server echoed.
func snapshotFromAPI(email string, p *api.Profile, logger *slog.Logger) profile.Snapshot {
	snap := profile.Snapshot{
		Email:     email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Color:     api.Deref(p.Color),
		CustomURL: api.Deref(p.CustomURL),
	}
	if p.Image != "" {
		img, err := avatar.ParseDataURL(p.Image)
		if err != nil {
			// Keep images we cannot inspect; they were accepted by the server.
			logger.Debug("stored avatar not decodable", "error", err)
			img = avatar.Image{DataURL: p.Image}
		}
		snap.Image = &img
	}
	for _, l := range p.Links {
		snap.Links = append(snap.Links, links.Record{PlatformID: api.Deref(l.PlatformID), URL: l.URL})
	}
	return snap
}
