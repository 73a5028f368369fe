// Package avatar turns raw image sources into the embeddable representation
// stored on a profile: a data: URL plus pixel dimensions.
package avatar

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	// Registered decoders define which formats are accepted.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/dustin/go-humanize"
)

const (
	// MaxDimension is the largest accepted width or height, inclusive.
	MaxDimension = 1024
	// MaxBytes bounds how much raw input is read from any source.
	MaxBytes = 10 << 20

	// TooLargeMessage is the user-facing text for ErrImageTooLarge.
	TooLargeMessage = "Image must be below 1024x1024px."
	// Hint describes the accepted input next to an upload control.
	Hint = "Image must be below 1024x1024px. Use PNG or JPG format."
)

var (
	// ErrImageTooLarge matches any *TooLargeError.
	ErrImageTooLarge = errors.New("image too large")
	// ErrInputTooLarge is returned when the raw source exceeds MaxBytes.
	ErrInputTooLarge = errors.New("image input exceeds size limit")
	// ErrNotDataURL is returned by ParseDataURL for other URL forms.
	ErrNotDataURL = errors.New("not a base64 data URL")
)

// TooLargeError reports decoded dimensions above MaxDimension.
type TooLargeError struct {
	Width, Height int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("image is %dx%dpx, must be at most %dx%dpx", e.Width, e.Height, MaxDimension, MaxDimension)
}

func (e *TooLargeError) Is(target error) bool {
	return target == ErrImageTooLarge
}

// Image is a decoded avatar. DataURL holds the original bytes verbatim.
type Image struct {
	DataURL string
	MIME    string
	Format  string
	Width   int
	Height  int
	Size    int
}

// Describe renders a short summary such as "512x512 PNG, 84 kB".
func (img Image) Describe() string {
	if img.Width == 0 && img.Height == 0 {
		return "remote image"
	}
	return fmt.Sprintf("%dx%d %s, %s", img.Width, img.Height, strings.ToUpper(img.Format), humanize.Bytes(uint64(img.Size)))
}

// Decode inspects raw image bytes and builds an Image. It fails with a
// *TooLargeError when either dimension exceeds MaxDimension.
func Decode(data []byte) (Image, error) {
	if len(data) > MaxBytes {
		return Image{}, ErrInputTooLarge
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("decoding image: %w", err)
	}
	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return Image{}, &TooLargeError{Width: cfg.Width, Height: cfg.Height}
	}

	mime := "image/" + format
	return Image{
		DataURL: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		MIME:    mime,
		Format:  format,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Size:    len(data),
	}, nil
}

// ParseDataURL decodes an image previously produced by Decode, for example
// one returned by the remote store.
func ParseDataURL(s string) (Image, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return Image{}, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return Image{}, ErrNotDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("decoding data URL: %w", err)
	}
	return Decode(data)
}
