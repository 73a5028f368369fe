package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ruminaider/devlinks/internal/api"
	"github.com/ruminaider/devlinks/internal/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, srv *apitest.Server, opts ...api.Option) *api.Client {
	t.Helper()
	c, err := api.NewClient(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:3000", "ftp://example.com", "http://"} {
		_, err := api.NewClient(raw)
		assert.Error(t, err, raw)
	}
}

func TestSaveProfile(t *testing.T) {
	srv := apitest.New(t)
	c := newClient(t, srv, api.WithToken("tkn"))

	err := c.SaveProfile(context.Background(), api.ProfileRequest{
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Image:     "data:image/png;base64,AAAA",
		Color:     api.StringPtr("#633CFF"),
	})
	require.NoError(t, err)

	stored := srv.Profile()
	require.NotNil(t, stored)
	assert.Equal(t, "Ada", stored.FirstName)
	assert.Equal(t, "#633CFF", api.Deref(stored.Color))
	assert.Nil(t, stored.CustomURL)
	assert.Equal(t, 1, srv.Calls(apitest.PostProfile))
	assert.Equal(t, []string{"Bearer tkn"}, srv.Tokens())
}

func TestSaveProfile_RemoteError(t *testing.T) {
	srv := apitest.New(t)
	srv.Fail(apitest.PostProfile, apitest.Failure{Status: http.StatusOK, Body: `{"error":"Email taken"}`})
	c := newClient(t, srv)

	err := c.SaveProfile(context.Background(), api.ProfileRequest{Email: "ada@example.com"})

	var remote *api.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "Email taken", remote.Message)
	assert.Equal(t, "Email taken", api.UserMessage(err))
}

func TestSaveProfile_StatusWithoutMessage(t *testing.T) {
	srv := apitest.New(t)
	srv.Fail(apitest.PostProfile, apitest.Failure{Status: http.StatusInternalServerError, Body: "oops"})
	c := newClient(t, srv)

	err := c.SaveProfile(context.Background(), api.ProfileRequest{})

	var remote *api.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusInternalServerError, remote.Status)
	assert.Contains(t, err.Error(), "Internal Server Error")
	assert.Equal(t, api.GenericFailure, api.UserMessage(err))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := api.NewClient(url)
	require.NoError(t, err)

	err = c.SaveLinks(context.Background(), api.LinksRequest{})
	var transport *api.TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, "POST /api/link", transport.Op)
	assert.Equal(t, api.GenericFailure, api.UserMessage(err))
}

func TestTimeout(t *testing.T) {
	srv := apitest.New(t)
	arrived, release := srv.Hold(apitest.PostLinks)
	defer release()

	c := newClient(t, srv, api.WithTimeout(50*time.Millisecond))
	done := make(chan error, 1)
	go func() { done <- c.SaveLinks(context.Background(), api.LinksRequest{}) }()

	<-arrived
	err := <-done
	var transport *api.TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestSaveLinks(t *testing.T) {
	srv := apitest.New(t)
	c := newClient(t, srv)

	links := []api.Link{
		{PlatformID: api.StringPtr("github"), URL: "https://github.com/ada"},
		{PlatformID: nil, URL: ""},
	}
	require.NoError(t, c.SaveLinks(context.Background(), api.LinksRequest{Links: links}))
	assert.Equal(t, links, srv.Profile().Links)

	// An empty collection replaces the stored one.
	require.NoError(t, c.SaveLinks(context.Background(), api.LinksRequest{}))
	assert.Empty(t, srv.Profile().Links)
	assert.Equal(t, 2, srv.Calls(apitest.PostLinks))
}

func TestFetchProfile(t *testing.T) {
	srv := apitest.New(t)
	c := newClient(t, srv)

	_, err := c.FetchProfile(context.Background(), "ada@example.com")
	assert.ErrorIs(t, err, api.ErrNotFound)

	srv.Seed(api.Profile{
		Email:     "ada@example.com",
		FirstName: "Ada",
		Links:     []api.Link{{PlatformID: api.StringPtr("github"), URL: "https://github.com/ada"}},
	})

	p, err := c.FetchProfile(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FirstName)
	require.Len(t, p.Links, 1)
	assert.Equal(t, "github", api.Deref(p.Links[0].PlatformID))
}

func TestFetchProfile_ServerError(t *testing.T) {
	srv := apitest.New(t)
	srv.Fail(apitest.GetProfile, apitest.Failure{Status: http.StatusBadGateway, Body: `{"error":"upstream down"}`})
	c := newClient(t, srv)

	_, err := c.FetchProfile(context.Background(), "ada@example.com")
	require.Error(t, err)
	assert.False(t, errors.Is(err, api.ErrNotFound))
	assert.Equal(t, "upstream down", api.UserMessage(err))
}

func TestSignup(t *testing.T) {
	srv := apitest.New(t)
	c := newClient(t, srv)
	req := api.SignupRequest{Email: "ada@example.com", Password: "password1", ConfirmPassword: "password1"}

	require.NoError(t, c.Signup(context.Background(), req))
	assert.Equal(t, []api.SignupRequest{req}, srv.Signups())

	err := c.Signup(context.Background(), req)
	var remote *api.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusConflict, remote.Status)
	assert.Equal(t, "Email already registered", remote.Message)
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, api.StringPtr(""))
	assert.Equal(t, "x", *api.StringPtr("x"))
	assert.Equal(t, "", api.Deref(nil))
}
