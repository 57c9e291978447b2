package service_test

import (
	"context"

	"github.com/pkordes/park-tracker/internal/domain"
	"github.com/pkordes/park-tracker/internal/repo"
)

// mockDocumentRepo is a hand-written test double for repo.DocumentRepo.
// Each method is a function field; set only the ones your test needs.
type mockDocumentRepo struct {
	load       func(ctx context.Context) (domain.Document, error)
	save       func(ctx context.Context, doc domain.Document) error
	initialize func(ctx context.Context) error
	exportTo   func(ctx context.Context, doc domain.Document, path string) error
}

func (m *mockDocumentRepo) Load(ctx context.Context) (domain.Document, error) {
	return m.load(ctx)
}
func (m *mockDocumentRepo) Save(ctx context.Context, doc domain.Document) error {
	return m.save(ctx, doc)
}
func (m *mockDocumentRepo) Initialize(ctx context.Context) error {
	return m.initialize(ctx)
}
func (m *mockDocumentRepo) ExportTo(ctx context.Context, doc domain.Document, path string) error {
	return m.exportTo(ctx, doc, path)
}

// compile-time check: mockDocumentRepo must satisfy repo.DocumentRepo.
var _ repo.DocumentRepo = (*mockDocumentRepo)(nil)

// staticRepo serves doc from Load and records every Save.
func staticRepo(doc domain.Document) (*mockDocumentRepo, *[]domain.Document) {
	var saved []domain.Document
	return &mockDocumentRepo{
		load: func(context.Context) (domain.Document, error) { return doc, nil },
		save: func(_ context.Context, d domain.Document) error {
			saved = append(saved, d)
			return nil
		},
	}, &saved
}
