package api

// ProfileRequest is the body of POST /api/profile. Nil pointers encode as
// JSON null for the nullable fields.
type ProfileRequest struct {
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Image     string  `json:"image"`
	CustomURL *string `json:"customUrl"`
	Color     *string `json:"color"`
}

// Link is one entry of the ordered link array. PlatformID is null until the
// user picks a platform.
type Link struct {
	PlatformID *string `json:"platformId"`
	URL        string  `json:"url"`
}

// LinksRequest is the body of POST /api/link. It always carries the whole
// ordered collection.
type LinksRequest struct {
	Links []Link `json:"links"`
}

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Profile is the stored profile returned by GET /api/profile.
type Profile struct {
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Image     string  `json:"image"`
	CustomURL *string `json:"customUrl"`
	Color     *string `json:"color"`
	Links     []Link  `json:"links"`
}

// envelope captures the failure fields any endpoint may return.
type envelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StringPtr returns nil for "" and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
