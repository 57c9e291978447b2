// Package testutil provides shared helpers for tests that need a real store
// on disk. Every store lives under t.TempDir() and disappears with the test.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkordes/park-tracker/internal/domain"
	"github.com/pkordes/park-tracker/internal/repo"
)

// NewFileRepo returns a DocumentRepo backed by a fresh file in a temporary
// directory, together with the file's path. The file itself is not created
// until the first save.
func NewFileRepo(t *testing.T) (repo.DocumentRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker.json")
	return repo.NewFileRepo(path, nil), path
}

// MustLoad reads the whole document from r and fails the test on error.
func MustLoad(t *testing.T, r repo.DocumentRepo) domain.Document {
	t.Helper()
	doc, err := r.Load(context.Background())
	if err != nil {
		t.Fatalf("testutil.MustLoad: %v", err)
	}
	return doc
}

// MustSave replaces the whole document in r and fails the test on error.
func MustSave(t *testing.T, r repo.DocumentRepo, doc domain.Document) {
	t.Helper()
	if err := r.Save(context.Background(), doc); err != nil {
		t.Fatalf("testutil.MustSave: %v", err)
	}
}
