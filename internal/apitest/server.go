// Package apitest provides an in-process fake of the devlinks backend for
// tests. It stores a single account and records every call.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ruminaider/devlinks/internal/api"
)

// Endpoint keys used by Calls and Fail.
const (
	GetProfile  = "GET /api/profile"
	PostProfile = "POST /api/profile"
	PostLinks   = "POST /api/link"
	PostSignup  = "POST /api/signup"
)

// Failure is a scripted response for an endpoint.
type Failure struct {
	Status int
	Body   string
}

// Server is a fake backend.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	profile  *api.Profile
	calls    map[string]int
	failures map[string]Failure
	gates    map[string]chan struct{}
	arrived  map[string]chan struct{}
	signups  []api.SignupRequest
	tokens   []string
}

// New starts a fake backend that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		calls:    map[string]int{},
		failures: map[string]Failure{},
		gates:    map[string]chan struct{}{},
		arrived:  map[string]chan struct{}{},
	}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Route("/api", func(r chi.Router) {
		r.Get("/profile", s.getProfile)
		r.Post("/profile", s.postProfile)
		r.Post("/link", s.postLinks)
		r.Post("/signup", s.postSignup)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Seed installs a stored profile.
func (s *Server) Seed(p api.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.profile = &cp
}

// Profile returns the stored profile, or nil.
func (s *Server) Profile() *api.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	cp := *s.profile
	cp.Links = append([]api.Link(nil), s.profile.Links...)
	return &cp
}

// Calls returns how many requests hit endpoint.
func (s *Server) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

// Signups returns every signup request received.
func (s *Server) Signups() []api.SignupRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.SignupRequest(nil), s.signups...)
}

// Tokens returns the bearer tokens seen, in order.
func (s *Server) Tokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens...)
}

// Fail makes every following request to endpoint return f until Recover.
func (s *Server) Fail(endpoint string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[endpoint] = f
}

// Recover removes a scripted failure.
func (s *Server) Recover(endpoint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, endpoint)
}

// Hold blocks requests to endpoint until the returned release func is
// called. The arrived channel receives once per blocked request.
func (s *Server) Hold(endpoint string) (arrived <-chan struct{}, release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gate := make(chan struct{})
	a := make(chan struct{}, 16)
	s.gates[endpoint] = gate
	s.arrived[endpoint] = a
	var once sync.Once
	return a, func() { once.Do(func() { close(gate) }) }
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		s.mu.Lock()
		s.calls[key]++
		if auth := r.Header.Get("Authorization"); auth != "" {
			s.tokens = append(s.tokens, auth)
		}
		failure, failing := s.failures[key]
		gate := s.gates[key]
		arrived := s.arrived[key]
		s.mu.Unlock()

		if gate != nil {
			arrived <- struct{}{}
			<-gate
		}
		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(failure.Status)
			w.Write([]byte(failure.Body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p := s.Profile()
	if p == nil || p.Email != r.URL.Query().Get("email") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) postProfile(w http.ResponseWriter, r *http.Request) {
	var req api.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	s.mu.Lock()
	var links []api.Link
	if s.profile != nil {
		links = s.profile.Links
	}
	s.profile = &api.Profile{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Image:     req.Image,
		CustomURL: req.CustomURL,
		Color:     req.Color,
		Links:     links,
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) postLinks(w http.ResponseWriter, r *http.Request) {
	var req api.LinksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	s.mu.Lock()
	if s.profile == nil {
		s.profile = &api.Profile{}
	}
	s.profile.Links = req.Links
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) postSignup(w http.ResponseWriter, r *http.Request) {
	var req api.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, prev := range s.signups {
		if prev.Email == req.Email {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "Email already registered"})
			return
		}
	}
	s.signups = append(s.signups, req)
	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
