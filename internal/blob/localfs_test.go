package blob

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestLocalFSPutOpenRoundTrip(t *testing.T) {
	store, err := NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	path, err := store.Put(context.Background(), "videos/tok-1.webm", strings.NewReader("clip"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if path != "videos/tok-1.webm" {
		t.Fatalf("unexpected stored path %q", path)
	}
	if !store.Exists(path) {
		t.Fatalf("asset should exist after put")
	}

	reader, err := store.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reader.Close()
	content, _ := io.ReadAll(reader)
	if string(content) != "clip" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestLocalFSOverwritesOnConflict(t *testing.T) {
	store, err := NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Put(ctx, "resumes/tok.pdf", strings.NewReader("first")); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if _, err := store.Put(ctx, "resumes/tok.pdf", strings.NewReader("second")); err != nil {
		t.Fatalf("second put: %v", err)
	}
	reader, _ := store.Open("resumes/tok.pdf")
	defer reader.Close()
	content, _ := io.ReadAll(reader)
	if string(content) != "second" {
		t.Fatalf("expected overwrite, got %q", content)
	}
}

func TestLocalFSRejectsEscapingPaths(t *testing.T) {
	store, err := NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Put(context.Background(), "../outside", strings.NewReader("nope")); err == nil {
		t.Fatalf("expected traversal rejection")
	}
}
