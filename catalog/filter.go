package catalog

import (
	"strings"

	"github.com/prepfox/catalog-service/models"
)

// ApplyFilters returns the subset of products that pass every active filter
// dimension. Each dimension is an independent predicate; inactive dimensions
// (empty search, "all" category, empty selection sets, zero rating threshold,
// unset flags) pass everything. Pure function: identical inputs always yield
// identical output.
func ApplyFilters(products []models.Product, filters FilterState) []models.Product {
	result := make([]models.Product, 0, len(products))
	for i := range products {
		if matchesFilters(&products[i], filters) {
			result = append(result, products[i])
		}
	}
	return result
}

func matchesFilters(p *models.Product, f FilterState) bool {
	return matchesSearch(p, f.Search) &&
		matchesCategory(p, f.Category) &&
		matchesSelection(p.Brand, f.Brands) &&
		matchesPrice(p, f.MinPrice, f.MaxPrice) &&
		matchesRating(p, f.MinRating) &&
		(!f.InStockOnly || p.InStock) &&
		(!f.FeaturedOnly || p.IsFeatured) &&
		matchesSelection(p.Material, f.Materials) &&
		matchesSelection(p.Color, f.Colors)
}

// matchesSearch is a case-insensitive substring match against name,
// description, tags and brand. No tokenization, no fuzzy matching.
func matchesSearch(p *models.Product, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	if p.Brand != nil && strings.Contains(strings.ToLower(*p.Brand), needle) {
		return true
	}
	return false
}

// matchesCategory accepts the product when the selected category matches
// either its category or its subcategory.
func matchesCategory(p *models.Product, category string) bool {
	if category == CategoryAll || category == "" {
		return true
	}
	if p.Category == category {
		return true
	}
	return p.Subcategory != nil && *p.Subcategory == category
}

// matchesSelection implements the shared empty-set-passes-all / membership
// pattern used by the brand, material and color dimensions. A product with
// the field absent fails any non-empty selection.
func matchesSelection(value *string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	if value == nil {
		return false
	}
	for _, s := range selected {
		if s == *value {
			return true
		}
	}
	return false
}

func matchesPrice(p *models.Product, min, max float64) bool {
	price := p.EffectivePrice()
	return price >= min && price <= max
}

// matchesRating fails products without a rating for any non-zero threshold.
func matchesRating(p *models.Product, threshold float64) bool {
	if threshold == 0 {
		return true
	}
	return p.Rating != nil && *p.Rating >= threshold
}
