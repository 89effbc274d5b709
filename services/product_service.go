package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/prepfox/catalog-service/events"
	"github.com/prepfox/catalog-service/models"
	"github.com/prepfox/catalog-service/repository"
)

// ProductCreateRequest carries the validated fields for a new catalog item.
type ProductCreateRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	SKU         string   `json:"sku" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	SalePrice   *float64 `json:"sale_price,omitempty" validate:"omitempty,gte=0"`
	Category    string   `json:"category" validate:"required"`
	Subcategory *string  `json:"subcategory,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Material    *string  `json:"material,omitempty"`
	Color       *string  `json:"color,omitempty"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	InStock     bool     `json:"in_stock"`
	IsFeatured  bool     `json:"is_featured"`
}

// ProductService handles the catalog-management write path (the admin side of
// the storefront). Every successful mutation emits a catalog.updated event so
// downstream consumers can refresh.
type ProductService struct {
	productRepo  *repository.ProductRepository
	categoryRepo *repository.CategoryRepository
	publisher    events.Publisher
}

func NewProductService(pr *repository.ProductRepository, cr *repository.CategoryRepository, pub events.Publisher) *ProductService {
	return &ProductService{
		productRepo:  pr,
		categoryRepo: cr,
		publisher:    pub,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req ProductCreateRequest) (*models.Product, error) {
	if req.SalePrice != nil && *req.SalePrice > req.Price {
		return nil, fmt.Errorf("sale price %.2f exceeds list price %.2f", *req.SalePrice, req.Price)
	}

	// The category must exist and be active before a product can reference it.
	cat, err := s.categoryRepo.FindByName(ctx, req.Category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("category '%s' not found", req.Category)
		}
		return nil, err
	}
	if !cat.IsActive {
		return nil, fmt.Errorf("category '%s' is not active", req.Category)
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Brand:       req.Brand,
		Material:    req.Material,
		Color:       req.Color,
		Tags:        req.Tags,
		Images:      req.Images,
		InStock:     req.InStock,
		IsFeatured:  req.IsFeatured,
		Status:      models.StatusActive,
		Visibility:  models.VisibilityPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.productRepo.Create(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("product with SKU '%s' already exists", req.SKU)
		}
		return nil, err
	}

	s.emitCatalogUpdated(ctx, product.ID.String())
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (int64, error) {
	if len(updates) == 0 {
		return 0, fmt.Errorf("no update fields provided")
	}

	// Callers may not touch identity or lifecycle bookkeeping fields.
	for _, field := range []string{"_id", "created_at", "deleted_at"} {
		delete(updates, field)
	}

	result, err := s.productRepo.Update(ctx, id, bson.M(updates))
	if err != nil {
		return 0, err
	}

	if result.ModifiedCount > 0 {
		s.emitCatalogUpdated(ctx, id.String())
	}
	return result.ModifiedCount, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	if result.ModifiedCount > 0 {
		s.emitCatalogUpdated(ctx, id.String())
	}
	return result.ModifiedCount, nil
}

// emitCatalogUpdated is fire-and-forget: a broken broker never fails a write.
func (s *ProductService) emitCatalogUpdated(ctx context.Context, productID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, models.StorefrontEvent{
		Type:      models.EventCatalogUpdated,
		ProductID: productID,
	}); err != nil {
		zap.L().Warn("catalog event not published", zap.String("product_id", productID), zap.Error(err))
	}
}

// Slugify turns a display name into a URL slug.
func Slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}
