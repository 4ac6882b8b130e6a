package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Local stores files on disk; the router serves Dir under BaseURL.
type Local struct {
	Dir     string
	BaseURL string
}

func NewLocal(dir, baseURL string) *Local {
	return &Local{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}
}

func (l *Local) Save(_ context.Context, body io.Reader, key, _ string) (string, error) {
	dst := filepath.Join(l.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return path.Join(l.BaseURL, key), nil
}

func (l *Local) Delete(_ context.Context, url string) error {
	key := strings.TrimPrefix(strings.TrimPrefix(url, l.BaseURL), "/")
	if key == "" || strings.Contains(key, "..") {
		return fmt.Errorf("refusing to delete %q", url)
	}
	err := os.Remove(filepath.Join(l.Dir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}
