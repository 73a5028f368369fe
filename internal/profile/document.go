// Package profile holds the editable profile document: scalar fields, the
// avatar, the ordered link collection and document-level error state.
//
// A Document is owned by a single editing session and is not safe for
// concurrent use. Saves read it through Snapshot so the payload reflects the
// document at the moment the save was issued.
package profile

import (
	"errors"
	"fmt"

	"github.com/ruminaider/devlinks/internal/avatar"
	"github.com/ruminaider/devlinks/internal/links"
)

// ErrImmutableField matches any *ImmutableFieldError.
var ErrImmutableField = errors.New("field is immutable")

// ImmutableFieldError is returned when a read-only field is written.
type ImmutableFieldError struct {
	Field string
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("%s cannot be changed after the profile is created", e.Field)
}

func (e *ImmutableFieldError) Is(target error) bool {
	return target == ErrImmutableField
}

// ErrorKind classifies the document error message.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	// ErrorValidation messages are advisory and cleared by the next edit.
	ErrorValidation
	// ErrorRemote messages come from a failed save and persist until the
	// next save attempt.
	ErrorRemote
)

// Document is the editable state of one profile.
type Document struct {
	email     string
	firstName string
	lastName  string
	image     *avatar.Image
	color     string
	customURL string
	links     *links.Collection

	errMsg  string
	errKind ErrorKind
	syncing int
}

// New creates an empty document for the authenticated email.
func New(email string) *Document {
	return &Document{email: email, links: links.New()}
}

// Snapshot is a value copy of the document's persisted fields.
type Snapshot struct {
	Email     string
	FirstName string
	LastName  string
	Image     *avatar.Image
	Color     string
	CustomURL string
	Links     []links.Record
}

// FromSnapshot restores a document, typically one fetched from the remote
// store. Link entries receive fresh ids.
func FromSnapshot(s Snapshot) *Document {
	d := &Document{
		email:     s.Email,
		firstName: s.FirstName,
		lastName:  s.LastName,
		color:     s.Color,
		customURL: s.CustomURL,
		links:     links.NewFromRecords(s.Links),
	}
	if s.Image != nil {
		img := *s.Image
		d.image = &img
	}
	return d
}

// Snapshot copies the current persisted state.
func (d *Document) Snapshot() Snapshot {
	s := Snapshot{
		Email:     d.email,
		FirstName: d.firstName,
		LastName:  d.lastName,
		Color:     d.color,
		CustomURL: d.customURL,
		Links:     d.links.Records(),
	}
	if d.image != nil {
		img := *d.image
		s.Image = &img
	}
	return s
}

func (d *Document) Email() string     { return d.email }
func (d *Document) FirstName() string { return d.firstName }
func (d *Document) LastName() string  { return d.lastName }
func (d *Document) Color() string     { return d.color }
func (d *Document) CustomURL() string { return d.customURL }

// Image returns a copy of the avatar, or nil when none is set.
func (d *Document) Image() *avatar.Image {
	if d.image == nil {
		return nil
	}
	img := *d.image
	return &img
}

// SetEmail always fails: the email is fixed by the authenticated identity.
func (d *Document) SetEmail(string) error {
	return &ImmutableFieldError{Field: "email"}
}

func (d *Document) SetFirstName(v string) {
	d.firstName = v
	d.edited()
}

func (d *Document) SetLastName(v string) {
	d.lastName = v
	d.edited()
}

func (d *Document) SetColor(v string) {
	d.color = v
	d.edited()
}

func (d *Document) SetCustomURL(v string) {
	d.customURL = v
	d.edited()
}

func (d *Document) SetImage(img avatar.Image) {
	d.image = &img
	d.edited()
}

// ClearImage removes the avatar.
func (d *Document) ClearImage() {
	d.image = nil
	d.edited()
}

// ApplyIngest records the outcome of an avatar ingestion. On failure the
// previous avatar is kept and the failure becomes the document error.
func (d *Document) ApplyIngest(img avatar.Image, err error) error {
	if err != nil {
		if errors.Is(err, avatar.ErrImageTooLarge) {
			d.SetError(avatar.TooLargeMessage)
		} else {
			d.SetError(err.Error())
		}
		return err
	}
	d.SetImage(img)
	return nil
}

// edited applies the clear-on-edit policy to validation messages.
func (d *Document) edited() {
	if d.errKind == ErrorValidation {
		d.ClearError()
	}
}

// ErrorMessage returns the current document error, or "".
func (d *Document) ErrorMessage() string { return d.errMsg }

// ErrorKind classifies ErrorMessage.
func (d *Document) ErrorKind() ErrorKind { return d.errKind }

// SetError replaces the document error with an advisory message. An empty
// message clears it.
func (d *Document) SetError(msg string) {
	d.setError(msg, ErrorValidation)
}

// SetSyncError replaces the document error with a failed-save message that
// survives further edits.
func (d *Document) SetSyncError(msg string) {
	d.setError(msg, ErrorRemote)
}

func (d *Document) setError(msg string, kind ErrorKind) {
	if msg == "" {
		d.ClearError()
		return
	}
	d.errMsg = msg
	d.errKind = kind
}

// ClearError removes any document error.
func (d *Document) ClearError() {
	d.errMsg = ""
	d.errKind = ErrorNone
}

// BeginSync marks a save as in flight. Saves may overlap, so each BeginSync
// must be paired with EndSync.
func (d *Document) BeginSync() { d.syncing++ }

// EndSync marks one in-flight save as resolved.
func (d *Document) EndSync() {
	if d.syncing > 0 {
		d.syncing--
	}
}

// IsSyncing reports whether any save is in flight.
func (d *Document) IsSyncing() bool { return d.syncing > 0 }
