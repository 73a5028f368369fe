package platforms

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ErrNotFound is returned when a platform id is not in the catalog.
var ErrNotFound = errors.New("platform not found")

// Registry is an ordered, immutable platform catalog. It is safe for
// concurrent use because nothing mutates it after construction.
type Registry struct {
	platforms []Platform
	index     map[string]int
}

// New builds a registry preserving the given order. Ids must be unique and
// non-empty and every platform needs at least one host.
func New(platforms ...Platform) (*Registry, error) {
	r := &Registry{
		platforms: make([]Platform, 0, len(platforms)),
		index:     make(map[string]int, len(platforms)),
	}
	for _, p := range platforms {
		if p.ID == "" {
			return nil, fmt.Errorf("platform %q has no id", p.Name)
		}
		if _, dup := r.index[p.ID]; dup {
			return nil, fmt.Errorf("duplicate platform id %q", p.ID)
		}
		if len(p.Pattern.Hosts) == 0 {
			return nil, fmt.Errorf("platform %q has no hosts", p.ID)
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		p.Pattern.Hosts = append([]string(nil), p.Pattern.Hosts...)
		r.index[p.ID] = len(r.platforms)
		r.platforms = append(r.platforms, p)
	}
	return r, nil
}

// catalogFile is the on-disk YAML shape of a platform catalog.
type catalogFile struct {
	Platforms []Platform `yaml:"platforms"`
}

// LoadCatalog parses a YAML platform catalog.
func LoadCatalog(data []byte) (*Registry, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing platform catalog: %w", err)
	}
	if len(f.Platforms) == 0 {
		return nil, fmt.Errorf("parsing platform catalog: no platforms defined")
	}
	r, err := New(f.Platforms...)
	if err != nil {
		return nil, fmt.Errorf("parsing platform catalog: %w", err)
	}
	return r, nil
}

// LoadFile reads a catalog from path. An empty path yields the built-in
// catalog.
func LoadFile(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading platform catalog: %w", err)
	}
	return LoadCatalog(data)
}

// List returns the catalog in load order. The slice is a copy.
func (r *Registry) List() []Platform {
	out := make([]Platform, len(r.platforms))
	copy(out, r.platforms)
	return out
}

// Get looks up a platform by id.
func (r *Registry) Get(id string) (Platform, error) {
	i, ok := r.index[id]
	if !ok {
		return Platform{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return r.platforms[i], nil
}

// Has reports whether id is in the catalog.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// ValidateURL applies the platform's pattern to candidate. Unknown platforms
// and empty or malformed URLs yield false.
func (r *Registry) ValidateURL(id, candidate string) bool {
	p, err := r.Get(id)
	if err != nil {
		return false
	}
	return p.Pattern.Match(candidate)
}

// Name returns the display name for id, or "" if unknown.
func (r *Registry) Name(id string) string {
	p, err := r.Get(id)
	if err != nil {
		return ""
	}
	return p.Name
}
