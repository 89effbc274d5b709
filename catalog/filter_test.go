package catalog_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/prepfox/catalog-service/catalog"
	"github.com/prepfox/catalog-service/models"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func testProduct(name, category string, price float64) models.Product {
	return models.Product{
		ID:         uuid.New(),
		Name:       name,
		Category:   category,
		Price:      price,
		InStock:    true,
		Status:     models.StatusActive,
		Visibility: models.VisibilityPublic,
		CreatedAt:  time.Now().UTC(),
	}
}

func noFilters(products []models.Product) catalog.FilterState {
	return catalog.ResetFilters(catalog.DeriveFacets(products))
}

func TestApplyFiltersCategoryAndPrice(t *testing.T) {
	products := []models.Product{
		testProduct("A", "Electronics", 30),
		testProduct("B", "Electronics", 80),
		testProduct("C", "Books", 20),
	}

	filters := noFilters(products)
	filters.Category = "Electronics"
	filters.MaxPrice = 50

	got := catalog.ApplyFilters(products, filters)
	assert.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)

	sorted := catalog.SortProducts(got, catalog.SortPriceLow)
	assert.Equal(t, "A", sorted[0].Name)
}

func TestApplyFiltersEmptyBrandSetPassesAll(t *testing.T) {
	products := []models.Product{
		testProduct("A", "Apparel", 10),
		testProduct("B", "Apparel", 20),
		testProduct("C", "Apparel", 30),
	}
	products[0].Brand = strPtr("X")
	products[1].Brand = strPtr("Y")
	// products[2] has no brand

	filters := noFilters(products)
	got := catalog.ApplyFilters(products, filters)
	assert.Len(t, got, 3)

	filters.Brands = []string{"X"}
	got = catalog.ApplyFilters(products, filters)
	assert.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
}

func TestApplyFiltersBrandlessProductFailsNonEmptySelection(t *testing.T) {
	products := []models.Product{testProduct("A", "Apparel", 10)}

	filters := noFilters(products)
	filters.Brands = []string{"X"}

	assert.Empty(t, catalog.ApplyFilters(products, filters))
}

func TestApplyFiltersRatingThreshold(t *testing.T) {
	products := []models.Product{
		testProduct("unrated", "Books", 10),
		testProduct("low", "Books", 10),
		testProduct("exact", "Books", 10),
		testProduct("high", "Books", 10),
	}
	products[1].Rating = floatPtr(3.5)
	products[2].Rating = floatPtr(4.0)
	products[3].Rating = floatPtr(4.8)

	filters := noFilters(products)
	filters.MinRating = 4

	got := catalog.ApplyFilters(products, filters)
	assert.Len(t, got, 2)
	assert.Equal(t, "exact", got[0].Name)
	assert.Equal(t, "high", got[1].Name)
}

func TestApplyFiltersSearchMatchesNameDescriptionTagsBrand(t *testing.T) {
	products := []models.Product{
		testProduct("Walnut Desk", "Furniture", 100),
		testProduct("Chair", "Furniture", 50),
		testProduct("Lamp", "Furniture", 25),
		testProduct("Rug", "Furniture", 75),
		testProduct("Shelf", "Furniture", 60),
	}
	products[1].Description = "solid walnut frame"
	products[2].Tags = []string{"walnut", "brass"}
	products[3].Brand = strPtr("Walnut & Co")

	filters := noFilters(products)
	filters.Search = "WALNUT"

	got := catalog.ApplyFilters(products, filters)
	assert.Len(t, got, 4)
	for _, p := range got {
		assert.NotEqual(t, "Shelf", p.Name)
	}
}

func TestApplyFiltersCategoryMatchesSubcategory(t *testing.T) {
	products := []models.Product{
		testProduct("A", "Electronics", 30),
		testProduct("B", "Electronics", 40),
	}
	products[0].Subcategory = strPtr("Audio")

	filters := noFilters(products)
	filters.Category = "Audio"

	got := catalog.ApplyFilters(products, filters)
	assert.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
}

func TestApplyFiltersPriceUsesSalePrice(t *testing.T) {
	products := []models.Product{testProduct("A", "Books", 80)}
	products[0].SalePrice = floatPtr(40)

	filters := noFilters(products)
	filters.MaxPrice = 50

	got := catalog.ApplyFilters(products, filters)
	assert.Len(t, got, 1)
}

func TestApplyFiltersStockAndFeaturedFlags(t *testing.T) {
	products := []models.Product{
		testProduct("A", "Books", 10),
		testProduct("B", "Books", 10),
	}
	products[0].InStock = false
	products[1].IsFeatured = true

	filters := noFilters(products)
	filters.InStockOnly = true
	got := catalog.ApplyFilters(products, filters)
	assert.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Name)

	filters = noFilters(products)
	filters.FeaturedOnly = true
	got = catalog.ApplyFilters(products, filters)
	assert.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Name)
}

func TestApplyFiltersIdempotent(t *testing.T) {
	products := []models.Product{
		testProduct("A", "Electronics", 30),
		testProduct("B", "Books", 80),
		testProduct("C", "Books", 20),
	}
	products[0].Brand = strPtr("X")
	products[1].Rating = floatPtr(4.5)

	filters := noFilters(products)
	filters.Category = "Books"
	filters.MaxPrice = 90

	once := catalog.ApplyFilters(products, filters)
	twice := catalog.ApplyFilters(once, filters)
	assert.Equal(t, once, twice)
}

func TestApplyFiltersMonotonic(t *testing.T) {
	products := []models.Product{
		testProduct("A", "Electronics", 30),
		testProduct("B", "Electronics", 80),
		testProduct("C", "Books", 20),
		testProduct("D", "Books", 95),
	}
	products[0].Brand = strPtr("X")
	products[1].Brand = strPtr("Y")

	filters := noFilters(products)
	base := catalog.ApplyFilters(products, filters)

	narrower := filters
	narrower.MaxPrice = 50
	assert.LessOrEqual(t, len(catalog.ApplyFilters(products, narrower)), len(base))

	narrower = filters
	narrower.Brands = []string{"X"}
	assert.LessOrEqual(t, len(catalog.ApplyFilters(products, narrower)), len(base))
}

func TestApplyFiltersResetReturnsEverything(t *testing.T) {
	products := []models.Product{
		testProduct("A", "Electronics", 30),
		testProduct("B", "Books", 980),
		testProduct("C", "Books", 20),
	}
	products[1].Brand = strPtr("X")

	facets := catalog.DeriveFacets(products)
	got := catalog.ApplyFilters(products, catalog.ResetFilters(facets))
	assert.Equal(t, products, got)
}

func TestApplyFiltersEmptyCatalog(t *testing.T) {
	filters := catalog.ResetFilters(catalog.DeriveFacets(nil))
	assert.Empty(t, catalog.ApplyFilters(nil, filters))
}
