package avatar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/doyensec/safeurl"
)

// defaultFetchTimeout bounds remote avatar downloads.
const defaultFetchTimeout = 10 * time.Second

// Ingestor loads avatar images from files, readers and remote URLs.
type Ingestor struct {
	client *http.Client
	logger *slog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithHTTPClient replaces the SSRF-guarded client used for remote sources.
func WithHTTPClient(c *http.Client) Option {
	return func(i *Ingestor) { i.client = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(i *Ingestor) { i.logger = l }
}

// NewIngestor returns an Ingestor. Remote sources are fetched through a
// safeurl client that refuses private, loopback and link-local addresses.
func NewIngestor(opts ...Option) *Ingestor {
	i := &Ingestor{logger: slog.Default()}
	for _, opt := range opts {
		opt(i)
	}
	if i.client == nil {
		cfg := safeurl.GetConfigBuilder().
			SetTimeout(defaultFetchTimeout).
			SetAllowedSchemes("http", "https").
			SetAllowedPorts(80, 443).
			Build()
		i.client = safeurl.Client(cfg).Client
	}
	return i
}

// Ingest loads source, which is either an http(s) URL or a local file path.
func (i *Ingestor) Ingest(ctx context.Context, source string) (Image, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return i.IngestURL(ctx, source)
	}
	return i.IngestFile(source)
}

// IngestFile loads an image from disk.
func (i *Ingestor) IngestFile(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	return i.IngestReader(f)
}

// IngestReader loads an image from r, reading at most MaxBytes.
func (i *Ingestor) IngestReader(r io.Reader) (Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("reading image: %w", err)
	}
	img, err := Decode(data)
	if err != nil {
		return Image{}, err
	}
	i.logger.Debug("avatar ingested", "format", img.Format, "width", img.Width, "height", img.Height, "bytes", img.Size)
	return img, nil
}

// IngestURL downloads and decodes a remote image.
func (i *Ingestor) IngestURL(ctx context.Context, rawURL string) (Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Image{}, fmt.Errorf("building image request: %w", err)
	}
	req.Header.Set("Accept", "image/png, image/jpeg, image/*")

	resp, err := i.client.Do(req)
	if err != nil {
		i.logger.Warn("avatar fetch failed", "url", rawURL, "error", err)
		return Image{}, fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Image{}, fmt.Errorf("fetching image: unexpected status %d", resp.StatusCode)
	}
	if resp.ContentLength > MaxBytes {
		return Image{}, ErrInputTooLarge
	}
	return i.IngestReader(resp.Body)
}
