package services

import (
	"context"
	"fmt"
	"strings"

	"lablink/internal/models"
	"lablink/internal/seed"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CatalogSource lists bookable items from the content backend.
type CatalogSource interface {
	FetchTests(ctx context.Context) ([]models.CatalogItem, error)
	FetchScans(ctx context.Context) ([]models.CatalogItem, error)
	FetchPackages(ctx context.Context) ([]models.CatalogItem, error)
	FetchDoctors(ctx context.Context) ([]models.CatalogItem, error)
}

// CatalogService keeps the store's catalog cache filled, falling back to the
// bundled seed data when the source is empty or unreachable.
type CatalogService struct {
	source CatalogSource // nil means offline
	store  *Store
	logger *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(source CatalogSource, store *Store, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		store:  store,
		logger: logger.Named("catalog"),
	}
}

// Refresh reloads tests, scans and packages into the store and returns them.
func (s *CatalogService) Refresh(ctx context.Context) []models.CatalogItem {
	var items []models.CatalogItem
	if s.source == nil {
		items = seed.Tests()
	} else {
		fetched, err := s.fetchLab(ctx)
		if err != nil {
			s.logger.Warn("failed to fetch catalog, using bundled data", zap.Error(err))
			fetched = seed.Tests()
		}
		items = fetched
	}
	s.store.SetTests(ctx, items)
	return items
}

// fetchLab loads the three lab listings in parallel. A failed listing is
// logged and counts as empty; only an empty tests and scans pair is an error.
func (s *CatalogService) fetchLab(ctx context.Context) ([]models.CatalogItem, error) {
	var tests, scans, packages []models.CatalogItem
	var g errgroup.Group
	g.Go(func() error {
		tests = s.fetchListing(ctx, "tests", s.source.FetchTests)
		return nil
	})
	g.Go(func() error {
		scans = s.fetchListing(ctx, "scans", s.source.FetchScans)
		return nil
	})
	g.Go(func() error {
		packages = s.fetchListing(ctx, "packages", s.source.FetchPackages)
		return nil
	})
	_ = g.Wait()

	if len(tests) == 0 && len(scans) == 0 {
		return nil, fmt.Errorf("catalog source returned no tests or scans")
	}

	items := make([]models.CatalogItem, 0, len(tests)+len(scans)+len(packages))
	items = append(items, tests...)
	items = append(items, scans...)
	items = append(items, packages...)
	return items, nil
}

func (s *CatalogService) fetchListing(ctx context.Context, name string, fetch func(context.Context) ([]models.CatalogItem, error)) []models.CatalogItem {
	items, err := fetch(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch listing", zap.String("listing", name), zap.Error(err))
		return nil
	}
	return items
}

// Doctors returns the cached doctors, loading them on first use.
func (s *CatalogService) Doctors(ctx context.Context) []models.CatalogItem {
	if cached := s.store.Doctors(); len(cached) > 0 {
		return cached
	}

	var doctors []models.CatalogItem
	if s.source != nil {
		fetched, err := s.source.FetchDoctors(ctx)
		if err != nil {
			s.logger.Warn("failed to fetch doctors, using bundled data", zap.Error(err))
		}
		doctors = fetched
	}
	if len(doctors) == 0 {
		doctors = seed.Doctors()
	}
	s.store.SetDoctors(ctx, doctors)
	return doctors
}

// Tests returns the cached tests, loading them on first use.
func (s *CatalogService) Tests(ctx context.Context) []models.CatalogItem {
	if cached := s.store.Tests(); len(cached) > 0 {
		return cached
	}
	return s.Refresh(ctx)
}

// GetByID finds an item among tests and doctors.
func (s *CatalogService) GetByID(ctx context.Context, id string) (models.CatalogItem, bool) {
	if item, ok := s.store.FindItem(id); ok {
		return item, true
	}
	// Fill whichever cache is still empty and retry once.
	s.Tests(ctx)
	s.Doctors(ctx)
	return s.store.FindItem(id)
}

// Filter category labels with special meaning.
const (
	CategoryAll      = "All Tests"
	CategoryAllShort = "All"
	CategoryPackages = "Packages"
	CategoryScans    = "Scans"
	CategoryFullBody = "Full Body"
)

// Filter returns the items matching category and a case-insensitive search
// term. Doctors match the term on name or specialty, other kinds on name or
// short description.
func Filter(items []models.CatalogItem, category, term string) []models.CatalogItem {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if matchesCategory(item, category) && matchesTerm(item, term) {
			out = append(out, item)
		}
	}
	return out
}

func matchesCategory(item models.CatalogItem, category string) bool {
	switch category {
	case "", CategoryAll, CategoryAllShort:
		return true
	case CategoryPackages:
		return item.Kind == models.KindPackage
	case CategoryScans:
		return item.Kind == models.KindScan
	case CategoryFullBody:
		return item.Category == CategoryFullBody || item.HasTag(CategoryFullBody)
	default:
		return item.Category == category
	}
}

func matchesTerm(item models.CatalogItem, term string) bool {
	if term == "" || strings.Contains(strings.ToLower(item.Name), term) {
		return true
	}
	switch item.Kind {
	case models.KindDoctor:
		return item.Doctor != nil && strings.Contains(strings.ToLower(item.Doctor.Specialty), term)
	case models.KindTest, models.KindScan, models.KindPackage:
		return strings.Contains(strings.ToLower(item.ShortDescription), term)
	default:
		return false
	}
}
