package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prepfox/catalog-service/catalog"
	"github.com/prepfox/catalog-service/models"
)

func TestResetFiltersDerivesPriceRangeFromFacets(t *testing.T) {
	products := []models.Product{testProduct("A", "Books", 740)}
	facets := catalog.DeriveFacets(products)

	state := catalog.ResetFilters(facets)

	assert.Equal(t, "", state.Search)
	assert.Equal(t, catalog.CategoryAll, state.Category)
	assert.Empty(t, state.Brands)
	assert.Empty(t, state.Materials)
	assert.Empty(t, state.Colors)
	assert.Equal(t, 0.0, state.MinPrice)
	assert.Equal(t, 800.0, state.MaxPrice)
	assert.Equal(t, 0.0, state.MinRating)
	assert.False(t, state.InStockOnly)
	assert.False(t, state.FeaturedOnly)
	assert.Equal(t, catalog.SortFeatured, state.Sort)
}

func TestCountActiveFiltersZeroAfterReset(t *testing.T) {
	facets := catalog.DeriveFacets([]models.Product{testProduct("A", "Books", 50)})
	state := catalog.ResetFilters(facets)

	assert.Equal(t, 0, catalog.CountActiveFilters(state, facets))
}

func TestCountActiveFiltersCountsEachSelectionIndividually(t *testing.T) {
	facets := catalog.DeriveFacets([]models.Product{testProduct("A", "Books", 50)})
	state := catalog.ResetFilters(facets)

	state.Search = "desk"
	state.Category = "Furniture"
	state.Brands = []string{"X", "Y"}
	state.MaxPrice = 40 // differs from [0, facets.MaxPrice]
	state.MinRating = 4
	state.InStockOnly = true
	state.FeaturedOnly = true
	state.Materials = []string{"oak"}
	state.Colors = []string{"black", "white", "red"}

	// 1 + 1 + 2 + 1 + 1 + 1 + 1 + 1 + 3
	assert.Equal(t, 12, catalog.CountActiveFilters(state, facets))
}

func TestCountActiveFiltersPriceRangeComparedToFacetMax(t *testing.T) {
	facets := catalog.DeriveFacets([]models.Product{testProduct("A", "Books", 95)})
	state := catalog.ResetFilters(facets)

	assert.Equal(t, 0, catalog.CountActiveFilters(state, facets))

	state.MinPrice = 10
	assert.Equal(t, 1, catalog.CountActiveFilters(state, facets))
}

func TestIsValidSortKey(t *testing.T) {
	for _, key := range []string{"featured", "price-low", "price-high", "rating", "newest", "name"} {
		assert.True(t, catalog.IsValidSortKey(key), key)
	}
	assert.False(t, catalog.IsValidSortKey("price_asc"))
	assert.False(t, catalog.IsValidSortKey(""))
}
