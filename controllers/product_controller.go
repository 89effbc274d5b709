package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/prepfox/catalog-service/catalog"
	"github.com/prepfox/catalog-service/models"
	"github.com/prepfox/catalog-service/services"
)

// CatalogServiceAPI is the storefront read-path contract the controller
// depends on.
type CatalogServiceAPI interface {
	GetFacets(ctx context.Context) (catalog.FacetOptions, error)
	ListProducts(ctx context.Context, filters catalog.FilterState, page, perPage int) (*services.StorefrontPage, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// ProductServiceAPI is the catalog-management contract the controller
// depends on.
type ProductServiceAPI interface {
	CreateProduct(ctx context.Context, req services.ProductCreateRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (int64, error)
	ValidateBulkImport(ctx context.Context, r io.Reader) (*models.BulkImportValidation, error)
}

type ProductController struct {
	catalogSvc CatalogServiceAPI
	productSvc ProductServiceAPI
	cache      *CacheManager
	validator  *RequestValidator
	redis      *redis.Client
	bulkDir    string
}

func NewProductController(catalogSvc CatalogServiceAPI, productSvc ProductServiceAPI, redisClient *redis.Client, bulkDir string) *ProductController {
	return &ProductController{
		catalogSvc: catalogSvc,
		productSvc: productSvc,
		cache:      NewCacheManager(redisClient),
		validator:  NewRequestValidator(),
		redis:      redisClient,
		bulkDir:    bulkDir,
	}
}

// GetProducts serves the filtered, sorted, paginated storefront listing.
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	page, perPage, err := ctrl.validator.ParsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	facets, err := ctrl.getFacets(c)
	if err != nil {
		zap.L().Error("Failed to derive facets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	filters, err := ctrl.validator.ParseFilterState(c, facets)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if cached, ok := ctrl.cache.GetProductList(c.Request.Context(), page, perPage, filters); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	result, err := ctrl.catalogSvc.ListProducts(c.Request.Context(), filters, page, perPage)
	if err != nil {
		zap.L().Error("Error listing products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	response := map[string]interface{}{
		"products": result.Products,
		"meta": map[string]interface{}{
			"page":          result.Page,
			"perPage":       result.PerPage,
			"total":         result.Total,
			"totalPages":    result.TotalPages,
			"activeFilters": result.ActiveFilters,
		},
	}

	ctrl.cache.SetProductListAsync(page, perPage, filters, response)
	c.JSON(http.StatusOK, response)
}

// GetFacets serves the filterable values of the whole catalog.
func (ctrl *ProductController) GetFacets(c *gin.Context) {
	facets, err := ctrl.getFacets(c)
	if err != nil {
		zap.L().Error("Failed to derive facets", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch facets"})
		return
	}
	c.JSON(http.StatusOK, facets)
}

func (ctrl *ProductController) getFacets(c *gin.Context) (catalog.FacetOptions, error) {
	if cached, ok := ctrl.cache.GetFacets(c.Request.Context()); ok {
		return *cached, nil
	}

	facets, err := ctrl.catalogSvc.GetFacets(c.Request.Context())
	if err != nil {
		return catalog.FacetOptions{}, err
	}

	ctrl.cache.SetFacetsAsync(facets)
	return facets, nil
}

// GetProductByID retrieves a single product by ID.
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id := c.Param("id")
	productID, err := uuid.Parse(id)
	if err != nil {
		zap.L().Warn("Invalid UUID format", zap.String("id", id))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID format"})
		return
	}

	product, err := ctrl.catalogSvc.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		zap.L().Error("Database error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a new catalog item.
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req services.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := ctrl.validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	product, err := ctrl.productSvc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "not active") ||
			strings.Contains(err.Error(), "exceeds") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product"})
		return
	}

	ctrl.invalidateCache(c)
	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
}

// UpdateProduct updates an existing product.
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	productID, err := uuid.Parse(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID format"})
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	modified, err := ctrl.productSvc.UpdateProduct(c.Request.Context(), productID, updates)
	if err != nil {
		if strings.Contains(err.Error(), "no update fields") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Error updating product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	if modified == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found or no changes made"})
		return
	}

	ctrl.invalidateCache(c)
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

// DeleteProduct performs a soft delete.
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	productID, err := uuid.Parse(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid UUID format"})
		return
	}

	modified, err := ctrl.productSvc.DeleteProduct(c.Request.Context(), productID)
	if err != nil {
		zap.L().Error("Failed to soft delete product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if modified == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found or already deleted"})
		return
	}

	ctrl.invalidateCache(c)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// ValidateBulkImport dry-runs a CSV upload and reports row-level problems.
func (ctrl *ProductController) ValidateBulkImport(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File upload required"})
		return
	}
	defer file.Close()

	if err := ctrl.checkCSVUpload(header.Filename, header.Size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	validation, err := ctrl.productSvc.ValidateBulkImport(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, validation)
}

// UploadBulkImport persists the CSV and enqueues a background import job.
func (ctrl *ProductController) UploadBulkImport(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File upload required"})
		return
	}
	defer file.Close()

	if err := ctrl.checkCSVUpload(header.Filename, header.Size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobID := uuid.NewString()
	filePath := filepath.Join(ctrl.bulkDir, jobID+".csv")
	dst, err := os.Create(filePath)
	if err != nil {
		zap.L().Error("Failed to persist bulk upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		_ = os.Remove(filePath)
		zap.L().Error("Failed to persist bulk upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}
	dst.Close()

	job := services.BulkImportJob{ID: jobID, FilePath: filePath}
	if err := services.EnqueueBulkImport(c.Request.Context(), ctrl.redis, job); err != nil {
		_ = os.Remove(filePath)
		zap.L().Error("Failed to enqueue bulk import", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue import"})
		return
	}

	ctrl.invalidateCache(c)
	c.JSON(http.StatusAccepted, gin.H{"job_id": jobID, "status": "queued"})
}

// GetBulkImportStatus reports the state of a queued or finished import job.
func (ctrl *ProductController) GetBulkImportStatus(c *gin.Context) {
	jobID := c.Param("jobId")
	if _, err := uuid.Parse(jobID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	job, err := services.GetBulkImportJob(c.Request.Context(), ctrl.redis, jobID)
	if err != nil {
		zap.L().Error("Failed to read bulk import job", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read job"})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, job)
}

func (ctrl *ProductController) checkCSVUpload(filename string, size int64) error {
	if size > MaxUploadSize {
		return fmt.Errorf("file too large (max %dMB)", MaxUploadSize/(1024*1024))
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedCSVExtensions[ext] {
		return fmt.Errorf("invalid file type %q, expected CSV", ext)
	}
	return nil
}

func (ctrl *ProductController) invalidateCache(c *gin.Context) {
	if err := ctrl.cache.Invalidate(c.Request.Context()); err != nil {
		zap.L().Error("Failed to invalidate cache", zap.Error(err))
	}
}
