package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/prepfox/catalog-service/catalog"
	"github.com/prepfox/catalog-service/models"
)

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestSortProductsPrice(t *testing.T) {
	products := []models.Product{
		testProduct("mid", "Books", 50),
		testProduct("cheap", "Books", 10),
		testProduct("expensive", "Books", 90),
	}
	// sale price wins over list price
	products[2].SalePrice = floatPtr(5)

	asc := catalog.SortProducts(products, catalog.SortPriceLow)
	assert.Equal(t, []string{"expensive", "cheap", "mid"}, names(asc))

	desc := catalog.SortProducts(products, catalog.SortPriceHigh)
	assert.Equal(t, []string{"mid", "cheap", "expensive"}, names(desc))
}

func TestSortProductsRatingTreatsAbsentAsZero(t *testing.T) {
	products := []models.Product{
		testProduct("unrated", "Books", 10),
		testProduct("best", "Books", 10),
		testProduct("good", "Books", 10),
	}
	products[1].Rating = floatPtr(4.9)
	products[2].Rating = floatPtr(3.2)

	got := catalog.SortProducts(products, catalog.SortRating)
	assert.Equal(t, []string{"best", "good", "unrated"}, names(got))
}

func TestSortProductsNewest(t *testing.T) {
	now := time.Now().UTC()
	products := []models.Product{
		testProduct("old", "Books", 10),
		testProduct("new", "Books", 10),
		testProduct("undated", "Books", 10),
	}
	products[0].CreatedAt = now.Add(-48 * time.Hour)
	products[1].CreatedAt = now
	products[2].CreatedAt = time.Time{}

	got := catalog.SortProducts(products, catalog.SortNewest)
	assert.Equal(t, []string{"new", "old", "undated"}, names(got))
}

func TestSortProductsFeaturedGroupsThenName(t *testing.T) {
	products := []models.Product{
		testProduct("banana", "Books", 10),
		testProduct("apple", "Books", 10),
		testProduct("cherry", "Books", 10),
	}
	products[0].IsFeatured = true
	products[2].IsFeatured = true

	got := catalog.SortProducts(products, catalog.SortFeatured)
	assert.Equal(t, []string{"banana", "cherry", "apple"}, names(got))
}

func TestSortProductsNameIsDefault(t *testing.T) {
	products := []models.Product{
		testProduct("Zebra", "Books", 10),
		testProduct("apple", "Books", 10),
		testProduct("Mango", "Books", 10),
	}

	got := catalog.SortProducts(products, catalog.SortName)
	assert.Equal(t, []string{"apple", "Mango", "Zebra"}, names(got))

	fallback := catalog.SortProducts(products, catalog.SortKey("bogus"))
	assert.Equal(t, names(got), names(fallback))
}

func TestSortProductsDoesNotMutateInput(t *testing.T) {
	products := []models.Product{
		testProduct("b", "Books", 20),
		testProduct("a", "Books", 10),
	}

	_ = catalog.SortProducts(products, catalog.SortPriceLow)
	assert.Equal(t, []string{"b", "a"}, names(products))
}

func TestSortProductsStableUnderResort(t *testing.T) {
	products := []models.Product{
		testProduct("c", "Books", 10),
		testProduct("a", "Books", 10),
		testProduct("b", "Books", 20),
	}

	for _, key := range []catalog.SortKey{
		catalog.SortFeatured, catalog.SortPriceLow, catalog.SortPriceHigh,
		catalog.SortRating, catalog.SortNewest, catalog.SortName,
	} {
		once := catalog.SortProducts(products, key)
		twice := catalog.SortProducts(once, key)
		assert.Equal(t, once, twice, "sort key %s", key)
	}
}
