// Package catalog implements the storefront's faceted filtering and sorting
// engine: pure functions over an in-memory product snapshot. The presentation
// layer (HTTP controllers here) owns the FilterState lifecycle; nothing in
// this package mutates its inputs or keeps hidden state.
package catalog

// CategoryAll is the sentinel meaning "no category restriction".
const CategoryAll = "all"

// DefaultMaxPrice keeps the price-range control usable on an empty catalog.
const DefaultMaxPrice = 1000

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
	SortName      SortKey = "name"
)

// IsValidSortKey reports whether key is one of the supported sort keys.
// Unknown keys are not an error for the engine itself (SortProducts falls
// back to name ordering) but the HTTP layer rejects them up front.
func IsValidSortKey(key string) bool {
	switch SortKey(key) {
	case SortFeatured, SortPriceLow, SortPriceHigh, SortRating, SortNewest, SortName:
		return true
	default:
		return false
	}
}

// FilterState is the complete set of user-selected filter and sort choices.
// Empty selection sets mean "no restriction" for their dimension.
type FilterState struct {
	Search       string   `json:"search"`
	Category     string   `json:"category"`
	Brands       []string `json:"brands"`
	MinPrice     float64  `json:"min_price"`
	MaxPrice     float64  `json:"max_price"`
	MinRating    float64  `json:"min_rating"`
	InStockOnly  bool     `json:"in_stock_only"`
	FeaturedOnly bool     `json:"featured_only"`
	Materials    []string `json:"materials"`
	Colors       []string `json:"colors"`
	Sort         SortKey  `json:"sort"`
}

// FacetOptions are the filterable values present in the whole catalog. They
// are derived from the unfiltered snapshot, never from a filtered view, so
// broadening a filter always remains possible.
type FacetOptions struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
	Materials  []string `json:"materials"`
	Colors     []string `json:"colors"`
	MaxPrice   float64  `json:"max_price"`
}

// ResetFilters returns a fresh FilterState with every dimension inactive.
// The price upper bound is re-derived from the current facets rather than a
// static default because the catalog's max price changes over time.
func ResetFilters(facets FacetOptions) FilterState {
	return FilterState{
		Search:       "",
		Category:     CategoryAll,
		Brands:       []string{},
		MinPrice:     0,
		MaxPrice:     facets.MaxPrice,
		MinRating:    0,
		InStockOnly:  false,
		FeaturedOnly: false,
		Materials:    []string{},
		Colors:       []string{},
		Sort:         SortFeatured,
	}
}

// CountActiveFilters returns how many filters the user has applied, for the
// "N filters applied" UI badge. Multi-select dimensions count each selected
// value individually.
func CountActiveFilters(filters FilterState, facets FacetOptions) int {
	count := 0
	if filters.Search != "" {
		count++
	}
	if filters.Category != CategoryAll && filters.Category != "" {
		count++
	}
	count += len(filters.Brands)
	if filters.MinPrice != 0 || filters.MaxPrice != facets.MaxPrice {
		count++
	}
	if filters.MinRating > 0 {
		count++
	}
	if filters.InStockOnly {
		count++
	}
	if filters.FeaturedOnly {
		count++
	}
	count += len(filters.Materials)
	count += len(filters.Colors)
	return count
}
