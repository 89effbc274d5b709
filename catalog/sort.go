package catalog

import (
	"sort"
	"strings"

	"github.com/prepfox/catalog-service/models"
)

// SortProducts returns a new slice ordered by the given key; the input is not
// mutated. All sorts are stable so that re-filtering never reorders ties,
// which keeps pagination deterministic across identical requests.
func SortProducts(products []models.Product, key SortKey) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)

	switch key {
	case SortPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].EffectivePrice() < sorted[j].EffectivePrice()
		})
	case SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].EffectivePrice() > sorted[j].EffectivePrice()
		})
	case SortRating:
		sort.SliceStable(sorted, func(i, j int) bool {
			return ratingOrZero(&sorted[i]) > ratingOrZero(&sorted[j])
		})
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	case SortFeatured:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].IsFeatured != sorted[j].IsFeatured {
				return sorted[i].IsFeatured
			}
			return lessByName(&sorted[i], &sorted[j])
		})
	default: // SortName and any unrecognized key
		sort.SliceStable(sorted, func(i, j int) bool {
			return lessByName(&sorted[i], &sorted[j])
		})
	}

	return sorted
}

// ratingOrZero treats an absent rating as 0 for ordering purposes.
func ratingOrZero(p *models.Product) float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

func lessByName(a, b *models.Product) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}
