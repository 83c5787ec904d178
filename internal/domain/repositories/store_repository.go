package repositories

import (
	"context"

	"github.com/zerobase/storereservation/internal/domain/entities"
)

// StoreRepository defines the interface for store data operations
type StoreRepository interface {
	// Create creates a new store
	Create(ctx context.Context, store *entities.Store) error

	// GetByID retrieves a store by ID
	GetByID(ctx context.Context, id string) (*entities.Store, error)

	// List retrieves all stores
	List(ctx context.Context) ([]*entities.Store, error)

	// Update updates a store's mutable fields
	Update(ctx context.Context, store *entities.Store) error

	// Delete deletes a store
	Delete(ctx context.Context, id string) error

	// RecomputeRating atomically rederives the cached rating aggregate
	// (and review count) from the store's review set and returns the new
	// average, 0.0 when the store has no reviews. The recompute happens
	// in a single statement so concurrent review writes cannot leave a
	// stale aggregate behind.
	RecomputeRating(ctx context.Context, storeID string) (float64, error)
}
