package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/park-tracker/internal/domain"
	"github.com/pkordes/park-tracker/internal/repo"
)

// SourceLoader fetches and normalizes an external park listing.
// Failures to read or decode the source wrap domain.ErrSourceUnavailable.
type SourceLoader interface {
	Load(ctx context.Context, source string) ([]domain.ImportRecord, error)
}

// ImportService merges external park listings into the store.
type ImportService struct {
	repo   repo.DocumentRepo
	loader SourceLoader
}

// NewImportService constructs an ImportService that reads listings through loader.
func NewImportService(r repo.DocumentRepo, loader SourceLoader) *ImportService {
	return &ImportService{repo: r, loader: loader}
}

// Import loads source and merges it into the store in a single write.
//
// Records without a name are ignored. A record whose name exactly matches an
// existing park only backfills that park's missing lat, lon and source id;
// values already present are never overwritten. Any other record becomes a new
// park. Importing the same listing twice therefore never duplicates a park.
// The store is untouched when the source cannot be loaded.
func (s *ImportService) Import(ctx context.Context, source string) (domain.ImportResult, error) {
	records, err := s.loader.Load(ctx, source)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.Import: %w", err)
	}

	doc, err := s.repo.Load(ctx)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.Import: %w", err)
	}

	result, changed := mergeRecords(&doc, records)
	if !changed {
		return result, nil
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return domain.ImportResult{}, fmt.Errorf("service.ImportService.Import: %w", err)
	}
	return result, nil
}

func mergeRecords(doc *domain.Document, records []domain.ImportRecord) (domain.ImportResult, bool) {
	var (
		result  domain.ImportResult
		changed bool
	)
	for _, rec := range records {
		name := strings.TrimSpace(rec.Name)
		if name == "" {
			continue
		}

		if i := doc.ParkIndexByName(name); i >= 0 {
			if backfill(&doc.Parks[i], rec) {
				result.Added++
				changed = true
			} else {
				result.Skipped++
			}
			continue
		}

		park := domain.Park{Name: name, State: rec.State, Lat: rec.Lat, Lon: rec.Lon, SourceID: rec.SourceID}
		if validatePark(park) != nil {
			// Out-of-range coordinates from upstream are dropped rather than
			// rejecting the whole park.
			park.Lat, park.Lon = nil, nil
		}
		doc.Parks = append(doc.Parks, domain.NewPark(park))
		result.Added++
		changed = true
	}
	return result, changed
}

// backfill copies rec's lat, lon and source id into p where p has none.
// It reports whether anything changed.
func backfill(p *domain.Park, rec domain.ImportRecord) bool {
	changed := false
	if p.Lat == nil && rec.Lat != nil {
		lat := *rec.Lat
		p.Lat = &lat
		changed = true
	}
	if p.Lon == nil && rec.Lon != nil {
		lon := *rec.Lon
		p.Lon = &lon
		changed = true
	}
	if p.SourceIDOrEmpty() == "" && rec.SourceID != nil && *rec.SourceID != "" {
		id := *rec.SourceID
		p.SourceID = &id
		changed = true
	}
	return changed
}
