package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Driver is the blob-store contract: hand it bytes plus a content type,
// get back a stable public URL. The services only ever record the URL.
type Driver interface {
	Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// MakeKey builds a collision-free object key for an uploaded photo:
// <scope>/<timestamp>-<random>-<slugged original name>.<ext>
func MakeKey(scope string, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	name := slug.Make(base)
	if name == "" {
		name = "foto"
	}
	return fmt.Sprintf("%s/%d-%s-%s%s", scope, time.Now().Unix(), uuid.NewString()[:8], name, ext)
}

// CaptionFromFilename derives the default photo caption the way the
// dashboard expects it: the original filename without its extension.
func CaptionFromFilename(originalName string) string {
	return strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
}
