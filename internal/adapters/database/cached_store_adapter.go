package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/zerobase/storereservation/internal/domain/entities"
	"github.com/zerobase/storereservation/internal/domain/providers"
	"github.com/zerobase/storereservation/internal/domain/repositories"
)

// CachedStoreAdapter wraps a StoreRepository with caching
type CachedStoreAdapter struct {
	adapter repositories.StoreRepository
	cache   providers.CacheProvider
}

// NewCachedStoreAdapter creates a new cached store adapter
func NewCachedStoreAdapter(adapter repositories.StoreRepository, cache providers.CacheProvider) repositories.StoreRepository {
	return &CachedStoreAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	storeByIDTTL  = 300 // 5 minutes for single store
	storesListTTL = 180 // 3 minutes for the full list
)

const storesListCacheKey = "stores:list"

func storeCacheKey(id string) string {
	return fmt.Sprintf("store:%s", id)
}

// GetByID retrieves a store by ID with caching
func (a *CachedStoreAdapter) GetByID(ctx context.Context, id string) (*entities.Store, error) {
	cacheKey := storeCacheKey(id)

	// Try to get from cache first
	if cached, err := a.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		var store entities.Store
		unmarshalErr := json.Unmarshal(cached, &store)
		if unmarshalErr == nil {
			return &store, nil
		}
		// Treat a corrupt entry as a miss and fall through to the DB
		log.Warn().Err(unmarshalErr).Str("store_id", id).Msg("failed to unmarshal cached store")
	}

	// Cache miss - fetch from database
	store, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(store); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, storeByIDTTL); err != nil {
				log.Warn().Err(err).Str("store_id", id).Msg("failed to cache store")
			}
		}
	}()

	return store, nil
}

// List retrieves all stores with caching
func (a *CachedStoreAdapter) List(ctx context.Context) ([]*entities.Store, error) {
	// Try to get from cache first
	if cached, err := a.cache.Get(ctx, storesListCacheKey); err == nil && cached != nil {
		var stores []*entities.Store
		unmarshalErr := json.Unmarshal(cached, &stores)
		if unmarshalErr == nil {
			return stores, nil
		}
		log.Warn().Err(unmarshalErr).Msg("failed to unmarshal cached store list")
	}

	// Cache miss - fetch from database
	stores, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(stores); err == nil {
			if err := a.cache.Set(bgCtx, storesListCacheKey, data, storesListTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache store list")
			}
		}
	}()

	return stores, nil
}

// Create creates a store and invalidates the list cache
func (a *CachedStoreAdapter) Create(ctx context.Context, store *entities.Store) error {
	if err := a.adapter.Create(ctx, store); err != nil {
		return err
	}

	go a.invalidate(store.ID)
	return nil
}

// Update updates a store and invalidates its caches
func (a *CachedStoreAdapter) Update(ctx context.Context, store *entities.Store) error {
	if err := a.adapter.Update(ctx, store); err != nil {
		return err
	}

	go a.invalidate(store.ID)
	return nil
}

// Delete deletes a store and invalidates its caches
func (a *CachedStoreAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}

	go a.invalidate(id)
	return nil
}

// RecomputeRating rederives the rating aggregate and invalidates the
// store's caches so readers do not serve the stale average.
func (a *CachedStoreAdapter) RecomputeRating(ctx context.Context, storeID string) (float64, error) {
	rating, err := a.adapter.RecomputeRating(ctx, storeID)
	if err != nil {
		return 0, err
	}

	a.invalidate(storeID)
	return rating, nil
}

func (a *CachedStoreAdapter) invalidate(storeID string) {
	bgCtx := context.Background()

	if err := a.cache.Delete(bgCtx, storeCacheKey(storeID)); err != nil {
		log.Warn().Err(err).Str("store_id", storeID).Msg("failed to invalidate store cache")
	}
	if err := a.cache.Delete(bgCtx, storesListCacheKey); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate store list cache")
	}
}
