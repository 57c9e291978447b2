// Package repo contains the persistence engine for the park tracker.
// The whole store is one JSON document on disk; every write replaces it
// atomically. No business logic lives here, only encoding and file handling.
//
// Ids must be UUID strings. created_at is written as RFC 3339 UTC; zone-less
// ISO 8601 values from older stores are read as UTC.
package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pkordes/park-tracker/internal/domain"
)

// DocumentRepo is the low-level read/write primitive all store operations use.
// The service layer depends on this interface, not the file implementation,
// which allows services to be unit-tested with a mock.
type DocumentRepo interface {
	// Load returns the current document. A missing backing file yields an
	// empty document and is not created. A file that exists but cannot be
	// decoded yields domain.ErrMalformedDocument.
	Load(ctx context.Context) (domain.Document, error)

	// Save replaces the whole document. Readers observe either the old or the
	// new document, never a partial write.
	Save(ctx context.Context, doc domain.Document) error

	// Initialize creates an empty document if none exists. Safe to call on every start.
	Initialize(ctx context.Context) error

	// ExportTo writes doc to an arbitrary path using the same format and the
	// same atomic replace. The canonical store is not touched.
	ExportTo(ctx context.Context, doc domain.Document, path string) error
}

// fileDocumentRepo is the JSON file implementation of DocumentRepo.
type fileDocumentRepo struct {
	path   string
	logger *zap.Logger

	// beforeRename runs after the temporary file is fully written and synced
	// but before it replaces the target. Tests use it to simulate a crash.
	beforeRename func(tmpPath string) error
}

// NewFileRepo constructs a DocumentRepo backed by the JSON file at path.
// The parent directory is created on first save.
func NewFileRepo(path string, logger *zap.Logger) DocumentRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fileDocumentRepo{path: path, logger: logger.Named("repo")}
}

func (r *fileDocumentRepo) Load(ctx context.Context) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, fmt.Errorf("repo.DocumentRepo.Load: %w", err)
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Debug("store file absent, using empty document", zap.String("path", r.path))
		return domain.NewDocument(), nil
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("repo.DocumentRepo.Load: %w", err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return domain.Document{}, fmt.Errorf("repo.DocumentRepo.Load: %s: %w", r.path, err)
	}

	r.logger.Debug("store loaded",
		zap.String("path", r.path),
		zap.Int("parks", len(doc.Parks)),
		zap.Int("visits", len(doc.Visits)))
	return doc, nil
}

func (r *fileDocumentRepo) Save(ctx context.Context, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("repo.DocumentRepo.Save: %w", err)
	}
	if err := r.write(r.path, doc); err != nil {
		return fmt.Errorf("repo.DocumentRepo.Save: %w", err)
	}
	r.logger.Debug("store saved",
		zap.String("path", r.path),
		zap.Int("parks", len(doc.Parks)),
		zap.Int("visits", len(doc.Visits)))
	return nil
}

func (r *fileDocumentRepo) Initialize(ctx context.Context) error {
	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("repo.DocumentRepo.Initialize: %w", err)
	}
	if err := r.Save(ctx, domain.NewDocument()); err != nil {
		return fmt.Errorf("repo.DocumentRepo.Initialize: %w", err)
	}
	r.logger.Info("created empty store", zap.String("path", r.path))
	return nil
}

func (r *fileDocumentRepo) ExportTo(ctx context.Context, doc domain.Document, path string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("repo.DocumentRepo.ExportTo: %w", err)
	}
	if err := r.write(path, doc); err != nil {
		return fmt.Errorf("repo.DocumentRepo.ExportTo: %w", err)
	}
	return nil
}

func (r *fileDocumentRepo) write(path string, doc domain.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return writeFileAtomic(path, data, 0o644, r.beforeRename)
}

// encodeDocument renders doc as indented JSON with a trailing newline so the
// file stays diffable. Nil slices are written as [].
func encodeDocument(doc domain.Document) ([]byte, error) {
	if doc.Parks == nil {
		doc.Parks = []domain.Park{}
	}
	if doc.Visits == nil {
		doc.Visits = []domain.Visit{}
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func decodeDocument(data []byte) (domain.Document, error) {
	var doc domain.Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return domain.Document{}, fmt.Errorf("%w: trailing content", domain.ErrMalformedDocument)
	}
	if doc.Parks == nil {
		doc.Parks = []domain.Park{}
	}
	if doc.Visits == nil {
		doc.Visits = []domain.Visit{}
	}
	return doc, nil
}

// writeFileAtomic writes data to a temporary file in the target's directory,
// syncs it, and renames it over path. The temporary file is removed on any failure.
func writeFileAtomic(path string, data []byte, perm os.FileMode, beforeRename func(string) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if beforeRename != nil {
		if err := beforeRename(tmpName); err != nil {
			return err
		}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	syncDir(dir)
	return nil
}

// syncDir flushes the directory entry so the rename survives a crash.
// Best effort: some platforms cannot sync a directory handle.
func syncDir(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = f.Sync()
	_ = f.Close()
}
