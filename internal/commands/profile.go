package commands

import (
	"context"
	"fmt"

	"github.com/ruminaider/devlinks/internal/avatar"
	dsync "github.com/ruminaider/devlinks/internal/sync"
)

// ProfileUpdate holds the scalar fields to change. Nil leaves a field as is;
// a pointer to "" clears it.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Color     *string
	CustomURL *string
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Color == nil && u.CustomURL == nil
}

// ProfileView is the displayable state of a profile.
type ProfileView struct {
	Email     string
	FirstName string
	LastName  string
	Avatar    string
	Color     string
	CustomURL string
	Links     int
	Missing   []string
}

// ShowProfile summarizes the session document.
func ShowProfile(s *Session) ProfileView {
	d := s.Doc
	v := ProfileView{
		Email:     d.Email(),
		FirstName: d.FirstName(),
		LastName:  d.LastName(),
		Color:     d.Color(),
		CustomURL: d.CustomURL(),
		Links:     d.LinkCount(),
	}
	if img := d.Image(); img != nil {
		v.Avatar = img.Describe()
	}
	for _, f := range d.MissingFields() {
		v.Missing = append(v.Missing, string(f))
	}
	return v
}

// SetProfile applies u to the document and saves the profile.
func SetProfile(ctx context.Context, s *Session, u ProfileUpdate) (dsync.SaveResult, error) {
	if u.Empty() {
		return dsync.SaveResult{}, fmt.Errorf("nothing to update")
	}
	if u.FirstName != nil {
		s.Doc.SetFirstName(*u.FirstName)
	}
	if u.LastName != nil {
		s.Doc.SetLastName(*u.LastName)
	}
	if u.Color != nil {
		s.Doc.SetColor(*u.Color)
	}
	if u.CustomURL != nil {
		s.Doc.SetCustomURL(*u.CustomURL)
	}
	return saveProfile(ctx, s)
}

// SetAvatar ingests source (a file path or an http(s) URL) as the avatar and
// saves the profile. A rejected image leaves the stored avatar untouched and
// nothing is sent.
func SetAvatar(ctx context.Context, s *Session, source string) (avatar.Image, dsync.SaveResult, error) {
	img, ingestErr := s.Ingestor.Ingest(ctx, source)
	if err := s.Doc.ApplyIngest(img, ingestErr); err != nil {
		return avatar.Image{}, dsync.SaveResult{}, fmt.Errorf("setting avatar: %w", err)
	}
	res, err := saveProfile(ctx, s)
	return img, res, err
}

func saveProfile(ctx context.Context, s *Session) (dsync.SaveResult, error) {
	res := s.SaveProfile(ctx)
	if res.Err != nil {
		return res, fmt.Errorf("saving profile: %w", res.Err)
	}
	return res, nil
}
