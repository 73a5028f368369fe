package platforms_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ruminaider/devlinks/internal/platforms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_ListOrder(t *testing.T) {
	r := platforms.Default()
	list := r.List()
	require.Len(t, list, 14)
	assert.Equal(t, "github", list[0].ID)
	assert.Equal(t, "stack-overflow", list[len(list)-1].ID)

	// Deterministic across calls.
	assert.Equal(t, list, r.List())
}

func TestList_ReturnsCopy(t *testing.T) {
	r := platforms.Default()
	list := r.List()
	list[0].Name = "changed"
	assert.Equal(t, "GitHub", r.List()[0].Name)
}

func TestGet(t *testing.T) {
	r := platforms.Default()

	p, err := r.Get("linkedin")
	require.NoError(t, err)
	assert.Equal(t, "LinkedIn", p.Name)

	_, err = r.Get("myspace")
	require.Error(t, err)
	assert.ErrorIs(t, err, platforms.ErrNotFound)
	assert.Contains(t, err.Error(), "myspace")
}

func TestValidateURL(t *testing.T) {
	r := platforms.Default()

	tests := []struct {
		platform string
		url      string
		want     bool
	}{
		{"github", "https://github.com/x", true},
		{"github", "http://www.github.com/ada/", true},
		{"github", "https://GitHub.com/ada", true},
		{"github", "https://github.com/", false},
		{"github", "https://github.com", false},
		{"github", "https://gitlab.com/ada", false},
		{"github", "github.com/ada", false},
		{"github", "ftp://github.com/ada", false},
		{"github", "https://user:pw@github.com/ada", false},
		{"github", "https://evilgithub.com/ada", false},
		{"github", "https://github.com.evil.io/ada", false},
		{"github", "", false},
		{"github", "::not a url::", false},
		{"linkedin", "https://www.linkedin.com/in/ada", true},
		{"linkedin", "https://www.linkedin.com/company/acme", false},
		{"twitter", "https://x.com/ada", true},
		{"hashnode", "https://hashnode.com/@ada", true},
		{"hashnode", "https://hashnode.com/ada", false},
		{"unknown", "https://github.com/x", false},
	}
	for _, tt := range tests {
		t.Run(tt.platform+" "+tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ValidateURL(tt.platform, tt.url))
		})
	}
}

func TestValidateURL_Pure(t *testing.T) {
	r := platforms.Default()
	for i := 0; i < 3; i++ {
		assert.True(t, r.ValidateURL("github", "https://github.com/x"))
		assert.False(t, r.ValidateURL("github", ""))
	}
	for _, p := range r.List() {
		assert.False(t, r.ValidateURL(p.ID, ""), p.ID)
	}
}

func TestNew_Rejects(t *testing.T) {
	gh := platforms.Platform{ID: "gh", Pattern: platforms.URLPattern{Hosts: []string{"github.com"}}}

	_, err := platforms.New(gh, gh)
	assert.ErrorContains(t, err, "duplicate platform id")

	_, err = platforms.New(platforms.Platform{ID: "x"})
	assert.ErrorContains(t, err, "no hosts")

	_, err = platforms.New(platforms.Platform{Name: "Nameless", Pattern: gh.Pattern})
	assert.ErrorContains(t, err, "no id")

	r, err := platforms.New(gh)
	require.NoError(t, err)
	assert.Equal(t, "gh", r.Name("gh"), "name defaults to id")
}

func TestLoadCatalog(t *testing.T) {
	data := []byte(`platforms:
  - id: mastodon
    name: Mastodon
    pattern:
      hosts: [mastodon.social, fosstodon.org]
      path_prefix: /@
  - id: github
    name: GitHub
    pattern:
      hosts: [github.com]
`)
	r, err := platforms.LoadCatalog(data)
	require.NoError(t, err)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "mastodon", list[0].ID)
	assert.True(t, r.ValidateURL("mastodon", "https://fosstodon.org/@ada"))
	assert.False(t, r.ValidateURL("mastodon", "https://fosstodon.org/ada"))
	assert.True(t, r.Has("github"))
	assert.False(t, r.Has("twitter"))
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := platforms.LoadCatalog([]byte(`platforms: []`))
	assert.ErrorContains(t, err, "no platforms defined")

	_, err = platforms.LoadCatalog([]byte(`{{{`))
	assert.Error(t, err)

	_, err = platforms.LoadCatalog([]byte("platforms:\n  - id: a\n    pattern: {hosts: [a.com]}\n  - id: a\n    pattern: {hosts: [b.com]}\n"))
	assert.ErrorContains(t, err, "duplicate")
}

func TestLoadFile(t *testing.T) {
	r, err := platforms.LoadFile("")
	require.NoError(t, err)
	assert.Len(t, r.List(), 14)

	path := filepath.Join(t.TempDir(), "platforms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("platforms:\n  - id: a\n    pattern: {hosts: [a.com]}\n"), 0644))
	r, err = platforms.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, r.List(), 1)

	_, err = platforms.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
