package controllers

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/prepfox/catalog-service/catalog"
)

const (
	ProductListCachePrefix = "products:v:"
	FacetsCacheKeyPrefix   = "facets:v:"
	CacheVersionKey        = "products:version"
	DefaultCacheTTL        = 5 * time.Minute
)

// CacheManager handles all Redis caching for storefront reads. Listing and
// facet responses are cached under a shared version number; mutations bump
// the version, which orphans every stale entry at once.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(redis *redis.Client) *CacheManager {
	return &CacheManager{
		redis: redis,
		ttl:   DefaultCacheTTL,
	}
}

// GetProductList retrieves a cached product list response.
func (cm *CacheManager) GetProductList(ctx context.Context, page, perPage int, filters catalog.FilterState) (map[string]interface{}, bool) {
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cacheKey := cm.listCacheKey(version, page, perPage, filters)
	cachedData, err := cm.redis.Get(ctx, cacheKey).Result()
	if err != nil {
		return nil, false
	}

	var response map[string]interface{}
	if err := json.Unmarshal([]byte(cachedData), &response); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}

	return response, true
}

// SetProductListAsync caches a product list response asynchronously.
func (cm *CacheManager) SetProductListAsync(page, perPage int, filters catalog.FilterState, response map[string]interface{}) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		cacheKey := cm.listCacheKey(version, page, perPage, filters)
		jsonBytes, err := json.Marshal(response)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, cacheKey, jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// GetFacets retrieves the cached facet options.
func (cm *CacheManager) GetFacets(ctx context.Context) (*catalog.FacetOptions, bool) {
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cachedData, err := cm.redis.Get(ctx, fmt.Sprintf("%s%d", FacetsCacheKeyPrefix, version)).Result()
	if err != nil {
		return nil, false
	}

	var facets catalog.FacetOptions
	if err := json.Unmarshal([]byte(cachedData), &facets); err != nil {
		zap.L().Warn("Failed to unmarshal cached facets", zap.Error(err))
		return nil, false
	}
	return &facets, true
}

// SetFacetsAsync caches facet options asynchronously.
func (cm *CacheManager) SetFacetsAsync(facets catalog.FacetOptions) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		jsonBytes, err := json.Marshal(facets)
		if err != nil {
			zap.L().Warn("Failed to marshal facets for cache", zap.Error(err))
			return
		}

		key := fmt.Sprintf("%s%d", FacetsCacheKeyPrefix, version)
		if err := cm.redis.Set(bgCtx, key, jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache facets", zap.Error(err))
		}
	}()
}

// Invalidate invalidates all storefront caches by bumping the version.
func (cm *CacheManager) Invalidate(ctx context.Context) error {
	newVersion, err := cm.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	zap.L().Info("Cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

// getCacheVersion retrieves the current cache version with retry logic.
func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
		if err == nil && ver > 0 {
			return ver, nil
		}

		if err == redis.Nil {
			// Initialize version key if it doesn't exist
			if err := cm.redis.Set(ctx, CacheVersionKey, 1, 0).Err(); err == nil {
				return 1, nil
			}
		}

		if i < maxRetries-1 {
			time.Sleep(time.Millisecond * 50)
		}
	}

	return 0, fmt.Errorf("failed to get cache version after %d retries", maxRetries)
}

// listCacheKey creates a unique cache key for a filter state and page. The
// filter state is hashed because it has too many dimensions for a readable
// flat key.
func (cm *CacheManager) listCacheKey(version int64, page, perPage int, filters catalog.FilterState) string {
	stateJSON, _ := json.Marshal(filters)
	digest := sha1.Sum(stateJSON)
	return fmt.Sprintf("%s%d:p:%d:l:%d:f:%x", ProductListCachePrefix, version, page, perPage, digest)
}
