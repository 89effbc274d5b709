package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/prepfox/catalog-service/events"
	"github.com/prepfox/catalog-service/models"
)

// CartStore is the Redis-backed storage the cart service depends on.
type CartStore interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, userID string) error
	GetWishlist(ctx context.Context, userID string) (*models.Wishlist, error)
	SaveWishlist(ctx context.Context, wishlist *models.Wishlist) error
}

// CartService implements the storefront's side-effect operations: add to
// cart, remove from cart, toggle wishlist. The catalog engine never depends
// on their results; event publishing is fire-and-forget.
type CartService struct {
	store     CartStore
	publisher events.Publisher
}

func NewCartService(store CartStore, pub events.Publisher) *CartService {
	return &CartService{
		store:     store,
		publisher: pub,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	return cart, nil
}

// AddItem adds quantity of a product to the user's cart, merging with any
// existing line for the same product.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.emit(ctx, models.StorefrontEvent{
		Type:      models.EventCartItemAdded,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	removed := false
	for _, item := range cart.Items {
		if item.ProductID == productID {
			removed = true
			continue
		}
		items = append(items, item)
	}
	if !removed {
		return nil, fmt.Errorf("product %s not in cart", productID)
	}
	cart.Items = items

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.emit(ctx, models.StorefrontEvent{
		Type:      models.EventCartItemRemoved,
		UserID:    userID,
		ProductID: productID,
	})
	return cart, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	return s.store.DeleteCart(ctx, userID)
}

func (s *CartService) GetWishlist(ctx context.Context, userID string) (*models.Wishlist, error) {
	wishlist, err := s.store.GetWishlist(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		wishlist = &models.Wishlist{UserID: userID, ProductIDs: []string{}}
	}
	return wishlist, nil
}

// ToggleWishlist adds the product to the wishlist if absent, removes it if
// present. Returns the wishlist and whether the product is now on it.
func (s *CartService) ToggleWishlist(ctx context.Context, userID, productID string) (*models.Wishlist, bool, error) {
	wishlist, err := s.GetWishlist(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	ids := wishlist.ProductIDs[:0]
	found := false
	for _, id := range wishlist.ProductIDs {
		if id == productID {
			found = true
			continue
		}
		ids = append(ids, id)
	}
	if !found {
		ids = append(ids, productID)
	}
	wishlist.ProductIDs = ids

	if err := s.store.SaveWishlist(ctx, wishlist); err != nil {
		return nil, false, err
	}

	s.emit(ctx, models.StorefrontEvent{
		Type:      models.EventWishlistToggled,
		UserID:    userID,
		ProductID: productID,
	})
	return wishlist, !found, nil
}

func (s *CartService) emit(ctx context.Context, event models.StorefrontEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		zap.L().Warn("storefront event not published", zap.String("type", event.Type), zap.Error(err))
	}
}
