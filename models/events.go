package models

import "time"

// Event types published to the storefront activity topic. Consumers are
// fire-and-forget from this service's perspective.
const (
	EventCartItemAdded   = "cart.item_added"
	EventCartItemRemoved = "cart.item_removed"
	EventWishlistToggled = "wishlist.toggled"
	EventCatalogUpdated  = "catalog.updated"
)

type StorefrontEvent struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id,omitempty"`
	ProductID string    `json:"product_id,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
