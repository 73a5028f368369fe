// Package api is the HTTP client for the devlinks backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	profilePath = "/api/profile"
	linksPath   = "/api/link"
	signupPath  = "/api/signup"

	// maxResponseSize leaves room for a profile whose avatar is a large data URL.
	maxResponseSize = 32 << 20
)

// UserAgent identifies the client to the server.
var UserAgent = "devlinks"

// Client calls the backend endpoints.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithTimeout sets the overall timeout of each call.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			hc := *cl.httpClient
			hc.Timeout = d
			cl.httpClient = &hc
		}
	}
}

// WithToken sends an opaque bearer token with every request.
func WithToken(token string) Option {
	return func(cl *Client) { cl.token = token }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// NewClient returns a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("server URL %q must be absolute http or https", baseURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchProfile loads the stored profile for email. It returns ErrNotFound
// when the account has no profile yet.
func (c *Client) FetchProfile(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	err := c.do(ctx, http.MethodGet, profilePath, url.Values{"email": {email}}, nil, &p)
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile posts the profile scalars.
func (c *Client) SaveProfile(ctx context.Context, req ProfileRequest) error {
	return c.do(ctx, http.MethodPost, profilePath, nil, req, nil)
}

// SaveLinks replaces the stored link collection.
func (c *Client) SaveLinks(ctx context.Context, req LinksRequest) error {
	if req.Links == nil {
		req.Links = []Link{}
	}
	return c.do(ctx, http.MethodPost, linksPath, nil, req, nil)
}

// Signup creates an account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, http.MethodPost, signupPath, nil, req, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	op := method + " " + path

	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s body: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("building %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "op", op, "error", err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("reading response: %w", err)}
	}
	c.logger.Debug("request done", "op", op, "status", resp.StatusCode, "elapsed", time.Since(start))

	var env envelope
	if len(bytes.TrimSpace(data)) > 0 {
		// Bodies that are not JSON objects carry no error fields.
		_ = json.Unmarshal(data, &env)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok || env.Error != "" {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		c.logger.Info("server reported failure", "op", op, "status", resp.StatusCode, "message", msg)
		return &RemoteError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s response: %w", op, err)
		}
	}
	return nil
}
