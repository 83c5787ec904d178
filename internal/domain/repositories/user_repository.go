package repositories

import (
	"context"

	"github.com/zerobase/storereservation/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*entities.User, error)

	// ExistsUsername reports whether a username is already taken
	ExistsUsername(ctx context.Context, username string) (bool, error)
}
