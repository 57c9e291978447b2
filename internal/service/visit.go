package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/pkordes/park-tracker/internal/domain"
	"github.com/pkordes/park-tracker/internal/repo"
)

// VisitService implements the visit operations.
// It does not check that a visit's park exists: the park reference is weak.
type VisitService struct {
	repo repo.DocumentRepo
}

// NewVisitService constructs a VisitService backed by the provided DocumentRepo.
func NewVisitService(r repo.DocumentRepo) *VisitService {
	return &VisitService{repo: r}
}

// Add assigns a new id and creation time and appends the visit.
// A zero PartySize is stored as 1; other values are stored as given.
func (s *VisitService) Add(ctx context.Context, attrs domain.Visit) (domain.Visit, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Add: %w", err)
	}

	visit := domain.NewVisit(attrs)
	doc.Visits = append(doc.Visits, visit)
	if err := s.repo.Save(ctx, doc); err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Add: %w", err)
	}
	return visit, nil
}

// List returns visits newest first. A non-nil parkID restricts the result
// to that park. Always returns a non-nil slice.
func (s *VisitService) List(ctx context.Context, parkID uuid.UUID) ([]domain.Visit, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VisitService.List: %w", err)
	}
	return visitsNewestFirst(doc, parkID), nil
}

// ListDetailed is List with each visit's park name resolved from the same
// snapshot. Dangling references resolve to domain.UnknownParkName.
func (s *VisitService) ListDetailed(ctx context.Context, parkID uuid.UUID) ([]domain.VisitDetail, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VisitService.ListDetailed: %w", err)
	}
	visits := visitsNewestFirst(doc, parkID)
	out := make([]domain.VisitDetail, 0, len(visits))
	for _, v := range visits {
		out = append(out, domain.VisitDetail{Visit: v, ParkName: doc.ParkName(v.ParkID)})
	}
	return out, nil
}

func visitsNewestFirst(doc domain.Document, parkID uuid.UUID) []domain.Visit {
	out := make([]domain.Visit, 0, len(doc.Visits))
	for _, v := range doc.Visits {
		if parkID != uuid.Nil && v.ParkID != parkID {
			continue
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// VisitedParkIDs returns the set of park ids referenced by at least one visit.
func (s *VisitService) VisitedParkIDs(ctx context.Context) (map[uuid.UUID]struct{}, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VisitService.VisitedParkIDs: %w", err)
	}
	return doc.VisitedParkIDs(), nil
}

// Clear removes every visit and leaves parks untouched.
func (s *VisitService) Clear(ctx context.Context) error {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("service.VisitService.Clear: %w", err)
	}
	doc.Visits = []domain.Visit{}
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("service.VisitService.Clear: %w", err)
	}
	return nil
}
