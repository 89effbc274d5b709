package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/prepfox/catalog-service/catalog"
	"github.com/prepfox/catalog-service/models"
	"github.com/prepfox/catalog-service/services"
)

// --- Fakes ---

type fakeProductReader struct {
	snapshot  []models.Product
	snapCalls int
}

func (f *fakeProductReader) FindStorefrontSnapshot(_ context.Context) ([]models.Product, error) {
	f.snapCalls++
	return f.snapshot, nil
}

func (f *fakeProductReader) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	for i := range f.snapshot {
		if f.snapshot[i].ID == id {
			return &f.snapshot[i], nil
		}
	}
	return nil, assert.AnError
}

type fakeCategoryReader struct {
	categories []models.Category
}

func (f *fakeCategoryReader) FindActive(_ context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func snapshotProduct(name, category string, price float64, featured bool) models.Product {
	return models.Product{
		ID:         uuid.New(),
		Name:       name,
		Category:   category,
		Price:      price,
		InStock:    true,
		IsFeatured: featured,
		Status:     models.StatusActive,
		Visibility: models.VisibilityPublic,
		CreatedAt:  time.Now().UTC(),
	}
}

func newCatalogService(snapshot []models.Product) (*services.CatalogService, *fakeProductReader) {
	reader := &fakeProductReader{snapshot: snapshot}
	return services.NewCatalogService(reader, &fakeCategoryReader{}), reader
}

// --- Tests ---

func TestListProductsAppliesFiltersAndSort(t *testing.T) {
	svc, _ := newCatalogService([]models.Product{
		snapshotProduct("Monitor", "Electronics", 250, false),
		snapshotProduct("Keyboard", "Electronics", 45, false),
		snapshotProduct("Novel", "Books", 12, false),
		snapshotProduct("Headphones", "Electronics", 95, true),
	})

	filters := catalog.ResetFilters(catalog.FacetOptions{MaxPrice: 300})
	filters.Category = "Electronics"
	filters.MaxPrice = 100
	filters.Sort = catalog.SortPriceLow

	page, err := svc.ListProducts(context.Background(), filters, 1, 24)
	assert.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "Keyboard", page.Products[0].Name)
	assert.Equal(t, "Headphones", page.Products[1].Name)
}

func TestListProductsPaginates(t *testing.T) {
	var snapshot []models.Product
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		snapshot = append(snapshot, snapshotProduct(name, "Books", 10, false))
	}
	svc, _ := newCatalogService(snapshot)

	filters := catalog.ResetFilters(catalog.DeriveFacets(snapshot))
	filters.Sort = catalog.SortName

	page, err := svc.ListProducts(context.Background(), filters, 2, 2)
	assert.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Products, 2)
	assert.Equal(t, "c", page.Products[0].Name)
	assert.Equal(t, "d", page.Products[1].Name)

	// Page past the end is empty, not an error
	page, err = svc.ListProducts(context.Background(), filters, 9, 2)
	assert.NoError(t, err)
	assert.Empty(t, page.Products)
}

func TestListProductsCountsActiveFilters(t *testing.T) {
	snapshot := []models.Product{snapshotProduct("Novel", "Books", 12, false)}
	svc, _ := newCatalogService(snapshot)

	filters := catalog.ResetFilters(catalog.DeriveFacets(snapshot))
	page, err := svc.ListProducts(context.Background(), filters, 1, 24)
	assert.NoError(t, err)
	assert.Equal(t, 0, page.ActiveFilters)

	filters.Search = "nov"
	filters.InStockOnly = true
	page, err = svc.ListProducts(context.Background(), filters, 1, 24)
	assert.NoError(t, err)
	assert.Equal(t, 2, page.ActiveFilters)
}

func TestGetFacetsDescribesWholeCatalog(t *testing.T) {
	snapshot := []models.Product{
		snapshotProduct("Monitor", "Electronics", 250, false),
		snapshotProduct("Novel", "Books", 12, false),
	}
	svc, _ := newCatalogService(snapshot)

	facets, err := svc.GetFacets(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"Books", "Electronics"}, facets.Categories)
	assert.Equal(t, 300.0, facets.MaxPrice)
}

func TestDefaultFiltersTracksCatalogMaxPrice(t *testing.T) {
	svc, reader := newCatalogService([]models.Product{
		snapshotProduct("Monitor", "Electronics", 250, false),
	})

	state, err := svc.DefaultFilters(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 300.0, state.MaxPrice)

	// Catalog changes, defaults follow
	reader.snapshot = append(reader.snapshot, snapshotProduct("TV", "Electronics", 910, false))
	state, err = svc.DefaultFilters(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, state.MaxPrice)
}

func TestListProductsEmptyCatalog(t *testing.T) {
	svc, _ := newCatalogService(nil)

	filters := catalog.ResetFilters(catalog.DeriveFacets(nil))
	page, err := svc.ListProducts(context.Background(), filters, 1, 24)
	assert.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Products)
}
