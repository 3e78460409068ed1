package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalDriver writes blobs under a public directory served by the app at
// /uploads. This is the default driver and matches single-host deploys.
type LocalDriver struct {
	BaseDir string
}

func NewLocalDriver(baseDir string) *LocalDriver {
	return &LocalDriver{BaseDir: baseDir}
}

func (d *LocalDriver) Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	path := filepath.Join(d.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("could not create upload directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("could not write file: %w", err)
	}

	return "/uploads/" + key, nil
}

func (d *LocalDriver) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, "/uploads/")
	if !ok {
		// URL from another driver or an external source, nothing to remove
		return nil
	}
	path := filepath.Join(d.BaseDir, filepath.FromSlash(key))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete file: %w", err)
	}
	return nil
}
