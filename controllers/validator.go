package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/prepfox/catalog-service/catalog"
)

// Validation constants
const (
	MaxPageSize   = 100
	MaxPageNumber = 1000000
	MaxUploadSize = 50 * 1024 * 1024 // 50MB
)

var allowedCSVExtensions = map[string]bool{
	".csv": true,
	".txt": true,
}

// RequestValidator handles all input validation.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

func (rv *RequestValidator) ValidateStruct(s interface{}) error {
	return rv.validate.Struct(s)
}

// ParsePagination validates and parses pagination parameters.
func (rv *RequestValidator) ParsePagination(c *gin.Context) (int, int, error) {
	pageStr := c.DefaultQuery("page", "1")
	perPageStr := c.DefaultQuery("perPage", "24")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, 0, errors.New("invalid page number")
	}
	if page > MaxPageNumber {
		page = MaxPageNumber
	}

	perPage, err := strconv.Atoi(perPageStr)
	if err != nil || perPage < 1 {
		return 0, 0, errors.New("invalid page size")
	}
	if perPage > MaxPageSize {
		perPage = MaxPageSize
	}

	return page, perPage, nil
}

// ParseFilterState builds the engine's FilterState from query parameters,
// starting from the cleared state for the current facets so that omitted
// parameters keep their "no restriction" defaults.
func (rv *RequestValidator) ParseFilterState(c *gin.Context, facets catalog.FacetOptions) (catalog.FilterState, error) {
	filters := catalog.ResetFilters(facets)

	filters.Search = strings.TrimSpace(c.Query("q"))

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filters.Category = category
	}

	filters.Brands = parseMultiValue(c, "brand")
	filters.Materials = parseMultiValue(c, "material")
	filters.Colors = parseMultiValue(c, "color")

	if err := rv.parsePriceRange(c, &filters); err != nil {
		return catalog.FilterState{}, err
	}

	if minRatingStr := strings.TrimSpace(c.Query("minRating")); minRatingStr != "" {
		minRating, err := strconv.ParseFloat(minRatingStr, 64)
		if err != nil || minRating < 0 || minRating > 5 {
			return catalog.FilterState{}, errors.New("invalid minRating value")
		}
		filters.MinRating = minRating
	}

	if inStockStr := strings.TrimSpace(c.Query("inStock")); inStockStr != "" {
		inStock, err := strconv.ParseBool(inStockStr)
		if err != nil {
			return catalog.FilterState{}, errors.New("invalid boolean value for 'inStock'")
		}
		filters.InStockOnly = inStock
	}

	if featuredStr := strings.TrimSpace(c.Query("featured")); featuredStr != "" {
		featured, err := strconv.ParseBool(featuredStr)
		if err != nil {
			return catalog.FilterState{}, errors.New("invalid boolean value for 'featured'")
		}
		filters.FeaturedOnly = featured
	}

	if sortParam := strings.TrimSpace(c.Query("sort")); sortParam != "" {
		if !catalog.IsValidSortKey(sortParam) {
			return catalog.FilterState{}, errors.New("invalid sort value")
		}
		filters.Sort = catalog.SortKey(sortParam)
	}

	return filters, nil
}

func (rv *RequestValidator) parsePriceRange(c *gin.Context, filters *catalog.FilterState) error {
	if minPriceStr := strings.TrimSpace(c.Query("minPrice")); minPriceStr != "" {
		parsed, err := strconv.ParseFloat(minPriceStr, 64)
		if err != nil || parsed < 0 {
			return errors.New("invalid minPrice value")
		}
		filters.MinPrice = parsed
	}

	if maxPriceStr := strings.TrimSpace(c.Query("maxPrice")); maxPriceStr != "" {
		parsed, err := strconv.ParseFloat(maxPriceStr, 64)
		if err != nil || parsed < 0 {
			return errors.New("invalid maxPrice value")
		}
		filters.MaxPrice = parsed
	}

	if filters.MinPrice > filters.MaxPrice {
		return errors.New("minPrice must be less than or equal to maxPrice")
	}

	return nil
}

// parseMultiValue reads a repeatable query parameter that also accepts
// comma-separated values, e.g. ?brand=X&brand=Y or ?brand=X,Y.
func parseMultiValue(c *gin.Context, key string) []string {
	var values []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}
	}
	if values == nil {
		return []string{}
	}
	return values
}
