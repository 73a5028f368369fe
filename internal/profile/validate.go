package profile

import "strings"

// Field is the display name of a required profile field.
type Field string

const (
	FieldEmail     Field = "Email"
	FieldFirstName Field = "First Name"
	FieldLastName  Field = "Last Name"
	FieldImage     Field = "Profile Picture"
)

// MissingFields lists the required fields that are empty, in form order.
// It is recomputed on every call.
func (d *Document) MissingFields() []Field {
	var missing []Field
	if strings.TrimSpace(d.email) == "" {
		missing = append(missing, FieldEmail)
	}
	if strings.TrimSpace(d.firstName) == "" {
		missing = append(missing, FieldFirstName)
	}
	if strings.TrimSpace(d.lastName) == "" {
		missing = append(missing, FieldLastName)
	}
	if d.image == nil || d.image.DataURL == "" {
		missing = append(missing, FieldImage)
	}
	return missing
}

// IsSaveEligible reports whether every required field is present. Color,
// custom URL and link validity do not count.
func (d *Document) IsSaveEligible() bool {
	return len(d.MissingFields()) == 0
}

// JoinFields renders fields as "Email, First Name".
func JoinFields(fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}

// IssueReason explains why a link is not valid.
type IssueReason string

const (
	IssueNoPlatform      IssueReason = "Choose a platform"
	IssueUnknownPlatform IssueReason = "Unknown platform"
	IssueEmptyURL        IssueReason = "Can't be empty"
	IssueInvalidURL      IssueReason = "Invalid Link"
)

// LinkIssue is advisory validation for one link entry.
type LinkIssue struct {
	ID       string
	Position int
	Reason   IssueReason
}

// URLValidator checks a URL against a platform rule.
type URLValidator interface {
	Has(id string) bool
	ValidateURL(id, url string) bool
}

// LinkIssues validates every link against its platform. Issues never block
// saving; they exist for display.
func (d *Document) LinkIssues(v URLValidator) []LinkIssue {
	var issues []LinkIssue
	for i, e := range d.links.Entries() {
		var reason IssueReason
		switch {
		case e.PlatformID == "":
			reason = IssueNoPlatform
		case !v.Has(e.PlatformID):
			reason = IssueUnknownPlatform
		case e.URL == "":
			reason = IssueEmptyURL
		case !v.ValidateURL(e.PlatformID, e.URL):
			reason = IssueInvalidURL
		default:
			continue
		}
		issues = append(issues, LinkIssue{ID: e.ID, Position: i, Reason: reason})
	}
	return issues
}
