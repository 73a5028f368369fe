// Package platforms holds the read-only catalog of link platforms and the
// per-platform URL rules used to validate link entries.
package platforms

import (
	"net/url"
	"strings"
)

// Platform is an external service a link entry can point at.
type Platform struct {
	ID      string     `yaml:"id"`
	Name    string     `yaml:"name"`
	Icon    string     `yaml:"icon,omitempty"`
	Pattern URLPattern `yaml:"pattern"`
}

// URLPattern matches profile URLs on a platform: an absolute http(s) URL on
// one of Hosts whose path starts with PathPrefix and names something after it.
type URLPattern struct {
	Hosts      []string `yaml:"hosts"`
	PathPrefix string   `yaml:"path_prefix,omitempty"`
}

// Match reports whether candidate satisfies the pattern. It never panics and
// returns false for empty or malformed input.
func (p URLPattern) Match(candidate string) bool {
	if candidate == "" {
		return false
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.User != nil {
		return false
	}

	host := normalizeHost(u.Hostname())
	if host == "" || !p.hasHost(host) {
		return false
	}

	prefix := p.PathPrefix
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasPrefix(u.Path, prefix) {
		return false
	}
	handle := strings.Trim(strings.TrimPrefix(u.Path, prefix), "/")
	return handle != ""
}

func (p URLPattern) hasHost(host string) bool {
	for _, h := range p.Hosts {
		if normalizeHost(h) == host {
			return true
		}
	}
	return false
}

// normalizeHost lowercases a host and drops a leading "www.".
func normalizeHost(h string) string {
	h = strings.ToLower(h)
	return strings.TrimPrefix(h, "www.")
}
