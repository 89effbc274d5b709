package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prepfox/catalog-service/services"
)

const bulkCSVHeader = "name,description,sku,price,sale_price,category,subcategory,brand,material,color,tags,in_stock,is_featured\n"

func TestValidateBulkImportAcceptsWellFormedRows(t *testing.T) {
	svc := services.NewProductService(nil, nil, nil)

	csv := bulkCSVHeader +
		"Desk,Solid walnut desk,SKU-1,499.99,449.99,Furniture,Desks,Walnut & Co,walnut,brown,office|wood,true,true\n" +
		"Lamp,Brass lamp,SKU-2,89,,Lighting,,,,brass,,true,false\n"

	validation, err := svc.ValidateBulkImport(context.Background(), strings.NewReader(csv))
	assert.NoError(t, err)
	assert.Equal(t, 2, validation.TotalRows)
	assert.Equal(t, 2, validation.ValidRows)
	assert.Equal(t, 0, validation.InvalidRows)
	assert.Empty(t, validation.Errors)
}

func TestValidateBulkImportFlagsBadRows(t *testing.T) {
	svc := services.NewProductService(nil, nil, nil)

	csv := bulkCSVHeader +
		"Desk,desc,SKU-1,499.99,,Furniture,,,,,,true,false\n" +
		",desc,SKU-2,10,,Books,,,,,,true,false\n" + // missing name
		"Lamp,desc,SKU-3,-5,,Lighting,,,,,,true,false\n" + // bad price
		"Rug,desc,SKU-4,100,150,Decor,,,,,,true,false\n" + // sale above list
		"Desk2,desc,SKU-1,20,,Furniture,,,,,,true,false\n" // duplicate SKU

	validation, err := svc.ValidateBulkImport(context.Background(), strings.NewReader(csv))
	assert.NoError(t, err)
	assert.Equal(t, 5, validation.TotalRows)
	assert.Equal(t, 1, validation.ValidRows)
	assert.Equal(t, 4, validation.InvalidRows)
	assert.Equal(t, []string{"SKU-1"}, validation.DuplicateSKUs)
	assert.Len(t, validation.Errors, 4)
}

func TestValidateBulkImportRejectsWrongHeader(t *testing.T) {
	svc := services.NewProductService(nil, nil, nil)

	_, err := svc.ValidateBulkImport(context.Background(), strings.NewReader("name,sku\nDesk,SKU-1\n"))
	assert.Error(t, err)
}
