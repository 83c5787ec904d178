package repositories

import (
	"context"

	"github.com/zerobase/storereservation/internal/domain/entities"
)

// ReviewRepository defines the interface for review operations
type ReviewRepository interface {
	// Create creates a new review
	Create(ctx context.Context, review *entities.Review) error

	// GetByID retrieves a review by ID
	GetByID(ctx context.Context, id string) (*entities.Review, error)

	// ListByStore retrieves reviews for a store in insertion order
	ListByStore(ctx context.Context, storeID string) ([]*entities.Review, error)

	// Update updates a review's content and rating
	Update(ctx context.Context, review *entities.Review) error

	// Delete deletes a review
	Delete(ctx context.Context, id string) error
}
