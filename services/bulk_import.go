package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prepfox/catalog-service/models"
)

// bulkHeader is the required CSV column order for catalog imports.
var bulkHeader = []string{
	"name", "description", "sku", "price", "sale_price", "category",
	"subcategory", "brand", "material", "color", "tags", "in_stock", "is_featured",
}

// ValidateBulkImport checks a CSV without writing anything: header shape,
// per-row field validity, and SKUs duplicated within the file.
func (s *ProductService) ValidateBulkImport(ctx context.Context, r io.Reader) (*models.BulkImportValidation, error) {
	reader := csv.NewReader(r)

	if err := checkBulkHeader(reader); err != nil {
		return nil, err
	}

	validation := &models.BulkImportValidation{}
	seenSKUs := make(map[string]bool)
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			validation.InvalidRows++
			validation.Errors = append(validation.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		validation.TotalRows++
		product, rowErr := parseBulkRow(record)
		if rowErr != nil {
			validation.InvalidRows++
			validation.Errors = append(validation.Errors, fmt.Sprintf("line %d: %v", line, rowErr))
			continue
		}

		if seenSKUs[product.SKU] {
			validation.InvalidRows++
			validation.DuplicateSKUs = append(validation.DuplicateSKUs, product.SKU)
			validation.Errors = append(validation.Errors, fmt.Sprintf("line %d: duplicate SKU %s", line, product.SKU))
			continue
		}
		seenSKUs[product.SKU] = true
		validation.ValidRows++
	}

	return validation, nil
}

// ProcessBulkImport inserts every valid CSV row as a new active product.
// Invalid rows are reported, not fatal.
func (s *ProductService) ProcessBulkImport(ctx context.Context, r io.Reader) (*models.BulkImportResult, error) {
	reader := csv.NewReader(r)

	if err := checkBulkHeader(reader); err != nil {
		return nil, err
	}

	result := &models.BulkImportResult{}
	var docs []interface{}
	seenSKUs := make(map[string]bool)
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.ErrorsCount++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		product, rowErr := parseBulkRow(record)
		if rowErr != nil {
			result.ErrorsCount++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, rowErr))
			continue
		}
		if seenSKUs[product.SKU] {
			result.ErrorsCount++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: duplicate SKU %s", line, product.SKU))
			continue
		}
		seenSKUs[product.SKU] = true
		docs = append(docs, product)
	}

	if len(docs) > 0 {
		insertResult, err := s.productRepo.CreateMany(ctx, docs)
		if err != nil {
			// Unordered failures still insert the valid remainder.
			if insertResult == nil || !mongo.IsDuplicateKeyError(err) {
				return nil, fmt.Errorf("bulk insert failed: %w", err)
			}
		}
		if insertResult != nil {
			result.InsertedCount = len(insertResult.InsertedIDs)
		}
		s.emitCatalogUpdated(ctx, "")
	}

	result.Message = fmt.Sprintf("imported %d products, %d errors", result.InsertedCount, result.ErrorsCount)
	return result, nil
}

func checkBulkHeader(reader *csv.Reader) error {
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) != len(bulkHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(bulkHeader), len(header))
	}
	for i, col := range header {
		if strings.ToLower(strings.TrimSpace(col)) != bulkHeader[i] {
			return fmt.Errorf("column %d must be %q, got %q", i+1, bulkHeader[i], col)
		}
	}
	return nil
}

func parseBulkRow(record []string) (*models.Product, error) {
	if len(record) != len(bulkHeader) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(bulkHeader), len(record))
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	name, description, sku := record[0], record[1], record[2]
	if name == "" || sku == "" {
		return nil, fmt.Errorf("name and sku are required")
	}

	price, err := strconv.ParseFloat(record[3], 64)
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("invalid price %q", record[3])
	}

	var salePrice *float64
	if record[4] != "" {
		sp, err := strconv.ParseFloat(record[4], 64)
		if err != nil || sp < 0 || sp > price {
			return nil, fmt.Errorf("invalid sale_price %q", record[4])
		}
		salePrice = &sp
	}

	category := record[5]
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}

	inStock := true
	if record[11] != "" {
		inStock, err = strconv.ParseBool(record[11])
		if err != nil {
			return nil, fmt.Errorf("invalid in_stock %q", record[11])
		}
	}

	isFeatured := false
	if record[12] != "" {
		isFeatured, err = strconv.ParseBool(record[12])
		if err != nil {
			return nil, fmt.Errorf("invalid is_featured %q", record[12])
		}
	}

	var tags []string
	if record[10] != "" {
		for _, tag := range strings.Split(record[10], "|") {
			if t := strings.TrimSpace(tag); t != "" {
				tags = append(tags, t)
			}
		}
	}

	now := time.Now().UTC()
	product := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		SKU:         sku,
		Price:       price,
		SalePrice:   salePrice,
		Category:    category,
		Subcategory: optionalField(record[6]),
		Brand:       optionalField(record[7]),
		Material:    optionalField(record[8]),
		Color:       optionalField(record[9]),
		Tags:        tags,
		InStock:     inStock,
		IsFeatured:  isFeatured,
		Status:      models.StatusActive,
		Visibility:  models.VisibilityPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return product, nil
}

func optionalField(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
