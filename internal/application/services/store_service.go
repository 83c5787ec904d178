package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zerobase/storereservation/internal/domain/entities"
	"github.com/zerobase/storereservation/internal/domain/repositories"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
)

// Sort criteria accepted by GetStores.
const (
	SortByName     = "name"
	SortByRating   = "rating"
	SortByDistance = "distance"
)

// StoreService handles store management, ranked listing, and the cached
// rating aggregate.
type StoreService struct {
	storeRepo       repositories.StoreRepository
	userRepo        repositories.UserRepository
	reservationRepo repositories.ReservationRepository
}

// NewStoreService creates a new store service.
func NewStoreService(
	storeRepo repositories.StoreRepository,
	userRepo repositories.UserRepository,
	reservationRepo repositories.ReservationRepository,
) *StoreService {
	return &StoreService{
		storeRepo:       storeRepo,
		userRepo:        userRepo,
		reservationRepo: reservationRepo,
	}
}

// StoreInput carries the store create/update parameters.
type StoreInput struct {
	Name        string
	Description string
	Latitude    float64
	Longitude   float64
}

// CreateStore registers a new store owned by the caller. Only PARTNER
// users may own stores.
func (s *StoreService) CreateStore(ctx context.Context, callerID string, input StoreInput) (*entities.Store, error) {
	owner, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := assertRole(owner, entities.RolePartner); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	store := &entities.Store{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     owner.ID,
		Location: entities.Location{
			Latitude:  input.Latitude,
			Longitude: input.Longitude,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}

	log.Info().Str("store_id", store.ID).Str("owner_id", owner.ID).Msg("store created")
	return store, nil
}

// GetStore retrieves a store by id.
func (s *StoreService) GetStore(ctx context.Context, id string) (*entities.Store, error) {
	return s.storeRepo.GetByID(ctx, id)
}

// UpdateStore updates a store's details. Only the owner may update.
func (s *StoreService) UpdateStore(ctx context.Context, id, callerID string, input StoreInput) (*entities.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertStoreOwner(store, callerID); err != nil {
		return nil, err
	}

	store.Name = input.Name
	store.Description = input.Description
	store.Location.Latitude = input.Latitude
	store.Location.Longitude = input.Longitude
	store.UpdatedAt = time.Now().UTC()

	if err := s.storeRepo.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// DeleteStore deletes a store. Only the owner may delete, and deletion is
// refused while the store still has PENDING or CONFIRMED reservations so
// no live reservation is ever orphaned.
func (s *StoreService) DeleteStore(ctx context.Context, id, callerID string) error {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := assertStoreOwner(store, callerID); err != nil {
		return err
	}

	active, err := s.reservationRepo.ExistsActiveByStore(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return apperrors.NewConflictError(apperrors.CodeStoreHasActiveReservations,
			"store has pending or confirmed reservations")
	}

	if err := s.storeRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("store_id", id).Msg("store deleted")
	return nil
}

// GetStores lists all stores ordered by the given criteria: "name"
// (ascending), "rating" (descending), or "distance" (ascending from the
// caller's coordinates, which are then required). Ties keep arrival order.
func (s *StoreService) GetStores(ctx context.Context, sortBy string, callerLat, callerLon *float64) ([]entities.StoreSummary, error) {
	switch sortBy {
	case SortByName, SortByRating, SortByDistance:
	default:
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidSortCriteria,
			"sortBy must be one of name, rating, distance")
	}

	if sortBy == SortByDistance && (callerLat == nil || callerLon == nil) {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidLocation,
			"lat and lon are required for distance sorting")
	}

	stores, err := s.storeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]entities.StoreSummary, len(stores))
	for i, store := range stores {
		distance := 0.0
		if sortBy == SortByDistance {
			distance = calculateDistance(*callerLat, *callerLon,
				store.Location.Latitude, store.Location.Longitude)
		}
		summaries[i] = entities.StoreSummary{
			ID:          store.ID,
			Name:        store.Name,
			Description: store.Description,
			OwnerID:     store.OwnerID,
			Rating:      store.Rating,
			Location:    store.Location,
			Distance:    distance,
		}
	}

	switch sortBy {
	case SortByName:
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].Name < summaries[j].Name
		})
	case SortByRating:
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].Rating > summaries[j].Rating
		})
	case SortByDistance:
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].Distance < summaries[j].Distance
		})
	}

	return summaries, nil
}

// UpdateAverageRating rederives the store's cached rating aggregate from
// its review set. Invoked synchronously after every review mutation.
func (s *StoreService) UpdateAverageRating(ctx context.Context, storeID string) error {
	rating, err := s.storeRepo.RecomputeRating(ctx, storeID)
	if err != nil {
		return err
	}
	log.Info().Str("store_id", storeID).Float64("rating", rating).Msg("store rating recomputed")
	return nil
}
