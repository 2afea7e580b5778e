package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	_ "golang.org/x/image/webp"
)

// ImageRef is one query-image reference: a filesystem path, an HTTP(S)
// URL, or an inline data blob, with an optional display label.
type ImageRef struct {
	Path  string `json:"path,omitempty"`
	URL   string `json:"url,omitempty"`
	Data  []byte `json:"data,omitempty"`
	Label string `json:"label,omitempty"`
}

// Display returns the best human-readable identifier for the reference.
func (r ImageRef) Display() string {
	switch {
	case r.Label != "":
		return r.Label
	case r.Path != "":
		return r.Path
	case r.URL != "":
		return r.URL
	default:
		return "inline image"
	}
}

var fetchClient = resty.New().SetTimeout(30 * time.Second)

// LoadImage resolves an image reference to raw bytes and a format name
// (png, jpeg, gif, webp).
func LoadImage(ctx context.Context, ref ImageRef) ([]byte, string, error) {
	var data []byte
	switch {
	case len(ref.Data) > 0:
		data = ref.Data
	case ref.Path != "":
		b, err := os.ReadFile(ref.Path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read image %s: %w", ref.Path, err)
		}
		data = b
	case ref.URL != "":
		resp, err := fetchClient.R().SetContext(ctx).Get(ref.URL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to fetch image %s: %w", ref.URL, err)
		}
		if resp.StatusCode() != 200 {
			return nil, "", fmt.Errorf("failed to fetch image %s: status %d", ref.URL, resp.StatusCode())
		}
		data = resp.Body()
	default:
		return nil, "", fmt.Errorf("empty image reference")
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("unsupported image data for %s: %w", ref.Display(), err)
	}
	return data, format, nil
}

// imageDimensions reads the pixel dimensions of an encoded image
// without decoding the full bitmap.
func imageDimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read image dimensions: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
