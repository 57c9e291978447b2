package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/park-tracker/internal/domain"
	"github.com/pkordes/park-tracker/internal/repo"
)

// DocumentService implements the whole-store operations: export and reset.
type DocumentService struct {
	repo repo.DocumentRepo
}

// NewDocumentService constructs a DocumentService backed by the provided DocumentRepo.
func NewDocumentService(r repo.DocumentRepo) *DocumentService {
	return &DocumentService{repo: r}
}

// Export writes the current document to path. The canonical store is only read.
func (s *DocumentService) Export(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("service.DocumentService.Export: %w: path is required", domain.ErrValidation)
	}
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("service.DocumentService.Export: %w", err)
	}
	if err := s.repo.ExportTo(ctx, doc, path); err != nil {
		return fmt.Errorf("service.DocumentService.Export: %w", err)
	}
	return nil
}

// ClearAll replaces the store with an empty document in one write.
// It does not read the existing document, so it also resets a malformed file.
func (s *DocumentService) ClearAll(ctx context.Context) error {
	if err := s.repo.Save(ctx, domain.NewDocument()); err != nil {
		return fmt.Errorf("service.DocumentService.ClearAll: %w", err)
	}
	return nil
}
