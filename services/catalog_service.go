package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/prepfox/catalog-service/catalog"
	"github.com/prepfox/catalog-service/models"
)

// ProductReader is the slice of the product repository the storefront
// read path needs.
type ProductReader interface {
	FindStorefrontSnapshot(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// CategoryReader is the slice of the category repository the storefront
// read path needs.
type CategoryReader interface {
	FindActive(ctx context.Context) ([]models.Category, error)
}

// StorefrontPage is one page of filtered, sorted products plus the metadata
// the UI renders around it.
type StorefrontPage struct {
	Products      []models.Product `json:"products"`
	Total         int              `json:"total"`
	Page          int              `json:"page"`
	PerPage       int              `json:"per_page"`
	TotalPages    int              `json:"total_pages"`
	ActiveFilters int              `json:"active_filters"`
}

// CatalogService serves the shopper-facing read path: it materializes the
// active/public snapshot from the repository and runs the pure catalog engine
// over it. All filtering and sorting beyond the baseline fetch order happens
// in memory, so two calls with the same snapshot and filters return the same
// page.
type CatalogService struct {
	productRepo  ProductReader
	categoryRepo CategoryReader
}

func NewCatalogService(pr ProductReader, cr CategoryReader) *CatalogService {
	return &CatalogService{
		productRepo:  pr,
		categoryRepo: cr,
	}
}

// GetFacets derives the filterable values from the current full snapshot.
// Facets always describe the whole catalog, never a filtered view.
func (s *CatalogService) GetFacets(ctx context.Context) (catalog.FacetOptions, error) {
	snapshot, err := s.productRepo.FindStorefrontSnapshot(ctx)
	if err != nil {
		return catalog.FacetOptions{}, err
	}
	return catalog.DeriveFacets(snapshot), nil
}

// ListProducts applies the filter state to the current snapshot, sorts the
// result and returns the requested page.
func (s *CatalogService) ListProducts(ctx context.Context, filters catalog.FilterState, page, perPage int) (*StorefrontPage, error) {
	snapshot, err := s.productRepo.FindStorefrontSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	facets := catalog.DeriveFacets(snapshot)
	filtered := catalog.ApplyFilters(snapshot, filters)
	sorted := catalog.SortProducts(filtered, filters.Sort)

	total := len(sorted)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return &StorefrontPage{
		Products:      sorted[start:end],
		Total:         total,
		Page:          page,
		PerPage:       perPage,
		TotalPages:    totalPages,
		ActiveFilters: catalog.CountActiveFilters(filters, facets),
	}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// DefaultFilters returns the cleared filter state for the current catalog,
// re-derived from facets because the catalog's max price changes over time.
func (s *CatalogService) DefaultFilters(ctx context.Context) (catalog.FilterState, error) {
	facets, err := s.GetFacets(ctx)
	if err != nil {
		return catalog.FilterState{}, err
	}
	return catalog.ResetFilters(facets), nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.FindActive(ctx)
}
