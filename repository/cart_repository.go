package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/prepfox/catalog-service/models"
)

// CartRepository stores carts and wishlists as JSON blobs in Redis, keyed by
// user. Entries expire after the configured TTL of inactivity.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CartRepository) cartKey(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

func (r *CartRepository) wishlistKey(userID string) string {
	return fmt.Sprintf("wishlist:user:%s", userID)
}

// GetCart returns the user's cart, or nil when none exists.
func (r *CartRepository) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.cartKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.cartKey(cart.UserID), data, r.ttl).Err()
}

func (r *CartRepository) DeleteCart(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.cartKey(userID)).Err()
}

// GetWishlist returns the user's wishlist, or nil when none exists.
func (r *CartRepository) GetWishlist(ctx context.Context, userID string) (*models.Wishlist, error) {
	data, err := r.client.Get(ctx, r.wishlistKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var wishlist models.Wishlist
	if err := json.Unmarshal([]byte(data), &wishlist); err != nil {
		return nil, err
	}
	return &wishlist, nil
}

func (r *CartRepository) SaveWishlist(ctx context.Context, wishlist *models.Wishlist) error {
	wishlist.UpdatedAt = time.Now()

	data, err := json.Marshal(wishlist)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.wishlistKey(wishlist.UserID), data, r.ttl).Err()
}
