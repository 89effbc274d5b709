package catalog

import (
	"math"
	"sort"

	"github.com/prepfox/catalog-service/models"
)

// DeriveFacets extracts the filterable values present in the full product
// snapshot: distinct categories, brands, materials and colors, plus the
// catalog's maximum list price rounded up to the nearest 100. Absent optional
// fields are simply excluded from their sets. Called once per catalog load,
// not per filter change.
func DeriveFacets(products []models.Product) FacetOptions {
	categorySet := make(map[string]bool)
	brandSet := make(map[string]bool)
	materialSet := make(map[string]bool)
	colorSet := make(map[string]bool)
	maxPrice := 0.0

	for i := range products {
		p := &products[i]
		if p.Category != "" {
			categorySet[p.Category] = true
		}
		if p.Brand != nil && *p.Brand != "" {
			brandSet[*p.Brand] = true
		}
		if p.Material != nil && *p.Material != "" {
			materialSet[*p.Material] = true
		}
		if p.Color != nil && *p.Color != "" {
			colorSet[*p.Color] = true
		}
		if p.Price > maxPrice {
			maxPrice = p.Price
		}
	}

	facets := FacetOptions{
		Categories: sortedKeys(categorySet),
		Brands:     sortedKeys(brandSet),
		Materials:  sortedKeys(materialSet),
		Colors:     sortedKeys(colorSet),
	}

	if len(products) == 0 {
		facets.MaxPrice = DefaultMaxPrice
	} else {
		facets.MaxPrice = math.Ceil(maxPrice/100) * 100
	}

	return facets
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
