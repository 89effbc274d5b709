package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prepfox/catalog-service/catalog"
	"github.com/prepfox/catalog-service/models"
)

func TestDeriveFacetsCollectsDistinctValues(t *testing.T) {
	products := []models.Product{
		testProduct("A", "Electronics", 120),
		testProduct("B", "Electronics", 340),
		testProduct("C", "Books", 15),
		testProduct("D", "Books", 15),
	}
	products[0].Brand = strPtr("Acme")
	products[1].Brand = strPtr("Acme")
	products[2].Brand = strPtr("Bolt")
	products[0].Material = strPtr("aluminium")
	products[1].Color = strPtr("black")
	products[2].Color = strPtr("red")
	products[3].Brand = strPtr("")

	facets := catalog.DeriveFacets(products)

	assert.Equal(t, []string{"Books", "Electronics"}, facets.Categories)
	assert.Equal(t, []string{"Acme", "Bolt"}, facets.Brands)
	assert.Equal(t, []string{"aluminium"}, facets.Materials)
	assert.Equal(t, []string{"black", "red"}, facets.Colors)
}

// Facet soundness: every facet brand occurs on some product, and every
// product brand occurs in the facet set.
func TestDeriveFacetsBrandSoundness(t *testing.T) {
	products := []models.Product{
		testProduct("A", "Books", 10),
		testProduct("B", "Books", 10),
		testProduct("C", "Books", 10),
	}
	products[0].Brand = strPtr("X")
	products[1].Brand = strPtr("Y")

	facets := catalog.DeriveFacets(products)

	inCatalog := make(map[string]bool)
	for _, p := range products {
		if p.Brand != nil && *p.Brand != "" {
			inCatalog[*p.Brand] = true
		}
	}

	assert.Len(t, facets.Brands, len(inCatalog))
	for _, b := range facets.Brands {
		assert.True(t, inCatalog[b], "facet brand %q not present in catalog", b)
	}
}

func TestDeriveFacetsMaxPriceRoundsUpToHundred(t *testing.T) {
	products := []models.Product{
		testProduct("A", "Books", 15),
		testProduct("B", "Books", 341),
	}

	facets := catalog.DeriveFacets(products)
	assert.Equal(t, 400.0, facets.MaxPrice)

	// exact multiples stay put
	facets = catalog.DeriveFacets([]models.Product{testProduct("C", "Books", 300)})
	assert.Equal(t, 300.0, facets.MaxPrice)
}

func TestDeriveFacetsEmptyCatalogDefaults(t *testing.T) {
	facets := catalog.DeriveFacets(nil)

	assert.Empty(t, facets.Categories)
	assert.Empty(t, facets.Brands)
	assert.Empty(t, facets.Materials)
	assert.Empty(t, facets.Colors)
	assert.Equal(t, float64(catalog.DefaultMaxPrice), facets.MaxPrice)
}
