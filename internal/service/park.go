// Package service contains the store operations for the park tracker.
// Every operation is a full read-modify-write against repo.DocumentRepo:
// load the whole document, change it in memory, save the whole document.
// Nothing is cached between calls, so two processes writing concurrently
// resolve as last-writer-wins at document granularity.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/park-tracker/internal/domain"
	"github.com/pkordes/park-tracker/internal/repo"
)

// ParkService implements the park operations.
type ParkService struct {
	repo repo.DocumentRepo
}

// NewParkService constructs a ParkService backed by the provided DocumentRepo.
func NewParkService(r repo.DocumentRepo) *ParkService {
	return &ParkService{repo: r}
}

// Add validates attrs, assigns a new id and creation time, and appends the park.
// Duplicate names are permitted.
func (s *ParkService) Add(ctx context.Context, attrs domain.Park) (domain.Park, error) {
	attrs.Name = strings.TrimSpace(attrs.Name)
	if err := validatePark(attrs); err != nil {
		return domain.Park{}, fmt.Errorf("service.ParkService.Add: %w", err)
	}

	doc, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Park{}, fmt.Errorf("service.ParkService.Add: %w", err)
	}

	park := domain.NewPark(attrs)
	doc.Parks = append(doc.Parks, park)
	if err := s.repo.Save(ctx, doc); err != nil {
		return domain.Park{}, fmt.Errorf("service.ParkService.Add: %w", err)
	}
	return park, nil
}

// Update applies patch to the park with the given id and returns the result.
// Returns domain.ErrNotFound without writing if no park has that id.
// An empty patch returns the stored park and does not write either.
func (s *ParkService) Update(ctx context.Context, id uuid.UUID, patch domain.ParkPatch) (domain.Park, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Park{}, fmt.Errorf("service.ParkService.Update: %w", err)
	}

	i := doc.ParkIndex(id)
	if i < 0 {
		return domain.Park{}, fmt.Errorf("service.ParkService.Update: park %s: %w", id, domain.ErrNotFound)
	}
	if patch.IsEmpty() {
		return doc.Parks[i], nil
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	updated := patch.Apply(doc.Parks[i])
	if err := validatePark(updated); err != nil {
		return domain.Park{}, fmt.Errorf("service.ParkService.Update: %w", err)
	}

	doc.Parks[i] = updated
	if err := s.repo.Save(ctx, doc); err != nil {
		return domain.Park{}, fmt.Errorf("service.ParkService.Update: %w", err)
	}
	return updated, nil
}

// List returns parks sorted by name ascending (byte order, ties keep insertion
// order), narrowed by filter. Always returns a non-nil slice.
func (s *ParkService) List(ctx context.Context, filter domain.ParkFilter) ([]domain.Park, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ParkService.List: %w", err)
	}

	parks := make([]domain.Park, len(doc.Parks))
	copy(parks, doc.Parks)
	sort.SliceStable(parks, func(i, j int) bool { return parks[i].Name < parks[j].Name })

	var visited map[uuid.UUID]struct{}
	if filter.Visited != domain.AllParks {
		visited = doc.VisitedParkIDs()
	}
	state := strings.ToUpper(strings.TrimSpace(filter.State))

	out := make([]domain.Park, 0, len(parks))
	for _, p := range parks {
		if !matchesVisited(p, filter.Visited, visited) {
			continue
		}
		if state != "" && !strings.Contains(strings.ToUpper(p.StateOrEmpty()), state) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func matchesVisited(p domain.Park, f domain.VisitedFilter, visited map[uuid.UUID]struct{}) bool {
	_, ok := visited[p.ID]
	switch f {
	case domain.VisitedOnly:
		return ok
	case domain.UnvisitedOnly:
		return !ok
	default:
		return true
	}
}

// FindByName returns the first park whose name equals name exactly.
// Returns domain.ErrNotFound if there is none.
func (s *ParkService) FindByName(ctx context.Context, name string) (domain.Park, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Park{}, fmt.Errorf("service.ParkService.FindByName: %w", err)
	}
	i := doc.ParkIndexByName(name)
	if i < 0 {
		return domain.Park{}, fmt.Errorf("service.ParkService.FindByName: %q: %w", name, domain.ErrNotFound)
	}
	return doc.Parks[i], nil
}

// FindByID returns the park with the given id.
// Returns domain.ErrNotFound if there is none.
func (s *ParkService) FindByID(ctx context.Context, id uuid.UUID) (domain.Park, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Park{}, fmt.Errorf("service.ParkService.FindByID: %w", err)
	}
	i := doc.ParkIndex(id)
	if i < 0 {
		return domain.Park{}, fmt.Errorf("service.ParkService.FindByID: park %s: %w", id, domain.ErrNotFound)
	}
	return doc.Parks[i], nil
}

// Clear removes every park and every visit.
func (s *ParkService) Clear(ctx context.Context) error {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("service.ParkService.Clear: %w", err)
	}
	doc.Parks = []domain.Park{}
	doc.Visits = []domain.Visit{}
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("service.ParkService.Clear: %w", err)
	}
	return nil
}
