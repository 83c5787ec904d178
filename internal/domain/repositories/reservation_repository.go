package repositories

import (
	"context"
	"time"

	"github.com/zerobase/storereservation/internal/domain/entities"
)

// ReservationRepository defines the interface for reservation data operations
type ReservationRepository interface {
	// Create creates a new reservation
	Create(ctx context.Context, reservation *entities.Reservation) error

	// GetByID retrieves a reservation by ID
	GetByID(ctx context.Context, id string) (*entities.Reservation, error)

	// TransitionStatus applies a status transition as a compare-and-swap:
	// the row is updated only if its current status equals from. It
	// returns the updated reservation, or (nil, nil) when the swap lost
	// to a concurrent transition, so the caller can re-read and report
	// the precise precondition failure.
	TransitionStatus(ctx context.Context, id string, from, to entities.ReservationStatus, rejectReason string) (*entities.Reservation, error)

	// ListByStoreAndTimeRange retrieves reservations for a store with
	// reservedAt in [from, to], ordered by reservedAt ascending.
	ListByStoreAndTimeRange(ctx context.Context, storeID string, from, to time.Time) ([]*entities.Reservation, error)

	// ListByUser retrieves all reservations for a user ordered by
	// reservedAt descending.
	ListByUser(ctx context.Context, userID string) ([]*entities.Reservation, error)

	// ListByStoreAndStatus retrieves reservations for a store in a given
	// status, no time filter.
	ListByStoreAndStatus(ctx context.Context, storeID string, status entities.ReservationStatus) ([]*entities.Reservation, error)

	// ExistsConfirmed reports whether the user holds at least one
	// CONFIRMED reservation at the store.
	ExistsConfirmed(ctx context.Context, userID, storeID string) (bool, error)

	// ExistsActiveByStore reports whether the store has any PENDING or
	// CONFIRMED reservations.
	ExistsActiveByStore(ctx context.Context, storeID string) (bool, error)
}
