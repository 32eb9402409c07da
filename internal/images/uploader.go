// Package images handles product image storage. The core only ever stores a
// URI string; this package is the collaborator that turns an uploaded binary
// payload into one.
package images

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploader stores an image payload and returns the URI to persist on the
// product. Implementations may write to local disk, a CDN, or an external
// media service.
type Uploader interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// LocalUploader stores images on the local filesystem under Dir and returns
// URIs below BaseURL. The web server serves Dir at that path.
type LocalUploader struct {
	Dir     string
	BaseURL string
}

// NewLocalUploader creates the upload directory if needed.
func NewLocalUploader(dir, baseURL string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalUploader{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload writes the payload under a random name, keeping the original
// extension, and returns the serving URI.
func (u *LocalUploader) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	name := uuid.New().String() + ext
	path := filepath.Join(u.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return u.BaseURL + "/" + name, nil
}
