// Package blob persists submission assets under two independent namespaces,
// "videos" and "resumes". Paths are caller-chosen; writes overwrite.
package blob

import (
	"context"
	"io"
)

const (
	NamespaceVideos  = "videos"
	NamespaceResumes = "resumes"
)

// Store accepts an upload at a relative path and returns the stored path.
type Store interface {
	Put(ctx context.Context, relPath string, r io.Reader) (string, error)
	Open(relPath string) (io.ReadCloser, error)
	Exists(relPath string) bool
}
