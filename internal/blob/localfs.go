package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalFS stores assets under a root directory on the local filesystem.
type LocalFS struct {
	Root string
}

func NewLocalFS(root string) (*LocalFS, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &LocalFS{Root: root}, nil
}

func (l *LocalFS) Put(ctx context.Context, relPath string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := l.cleanPath(relPath)
	if err != nil {
		return "", err
	}
	abs := filepath.Join(l.Root, clean)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create namespace dir: %w", err)
	}
	file, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create asset: %w", err)
	}
	defer file.Close()
	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	return filepath.ToSlash(clean), nil
}

func (l *LocalFS) Open(relPath string) (io.ReadCloser, error) {
	clean, err := l.cleanPath(relPath)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(l.Root, clean))
}

func (l *LocalFS) Exists(relPath string) bool {
	clean, err := l.cleanPath(relPath)
	if err != nil {
		return false
	}
	_, statErr := os.Stat(filepath.Join(l.Root, clean))
	return statErr == nil
}

func (l *LocalFS) cleanPath(relPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid asset path %q", relPath)
	}
	return clean, nil
}
