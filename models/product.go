package models

import (
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusDraft    ProductStatus = "draft"
	StatusArchived ProductStatus = "archived"
)

type ProductVisibility string

const (
	VisibilityPublic  ProductVisibility = "public"
	VisibilityPrivate ProductVisibility = "private"
)

type Product struct {
	ID          uuid.UUID         `json:"id" bson:"_id"`
	Name        string            `json:"name" bson:"name"`
	Description string            `json:"description" bson:"description"`
	SKU         string            `json:"sku" bson:"sku"`
	Price       float64           `json:"price" bson:"price"`
	SalePrice   *float64          `json:"sale_price,omitempty" bson:"sale_price,omitempty"`
	Category    string            `json:"category" bson:"category"`
	Subcategory *string           `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	Brand       *string           `json:"brand,omitempty" bson:"brand,omitempty"`
	Material    *string           `json:"material,omitempty" bson:"material,omitempty"`
	Color       *string           `json:"color,omitempty" bson:"color,omitempty"`
	Tags        []string          `json:"tags" bson:"tags"`
	Images      []string          `json:"images" bson:"images"`
	Rating      *float64          `json:"rating,omitempty" bson:"rating,omitempty"`
	InStock     bool              `json:"in_stock" bson:"in_stock"`
	IsFeatured  bool              `json:"is_featured" bson:"is_featured"`
	Status      ProductStatus     `json:"status" bson:"status"`
	Visibility  ProductVisibility `json:"visibility" bson:"visibility"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
	DeletedAt   *time.Time        `json:"-" bson:"deleted_at,omitempty"`
}

// EffectivePrice is the price used for filtering, sorting and display:
// the sale price when one is set, the list price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}
