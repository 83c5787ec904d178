package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zerobase/storereservation/internal/domain/entities"
	"github.com/zerobase/storereservation/internal/domain/repositories"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
)

// transitionAttempts bounds how often a status transition retries after
// losing a compare-and-swap to a concurrent transition.
const transitionAttempts = 3

// CustomerReservationService handles the customer side of the
// reservation lifecycle: creation, cancellation, arrival check, and the
// customer's own listing.
type CustomerReservationService struct {
	reservationRepo repositories.ReservationRepository
	storeRepo       repositories.StoreRepository
	userRepo        repositories.UserRepository
}

// NewCustomerReservationService creates a new customer reservation service.
func NewCustomerReservationService(
	reservationRepo repositories.ReservationRepository,
	storeRepo repositories.StoreRepository,
	userRepo repositories.UserRepository,
) *CustomerReservationService {
	return &CustomerReservationService{
		reservationRepo: reservationRepo,
		storeRepo:       storeRepo,
		userRepo:        userRepo,
	}
}

// CreateReservationInput carries the reservation creation parameters.
// RequiresApproval selects the owner-approval flow (initial status
// PENDING); the default is the self-service flow (initial status
// CONFIRMED).
type CreateReservationInput struct {
	StoreID          string
	UserID           string
	PhoneNumber      string
	ReservedAt       time.Time
	RequiresApproval bool
}

// CreateReservation creates a reservation for a future time slot. The
// initial status is fixed at creation and never re-selected.
func (s *CustomerReservationService) CreateReservation(ctx context.Context, input CreateReservationInput) (*entities.Reservation, error) {
	if !input.ReservedAt.After(time.Now()) {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidReservationTime,
			"reservation time must be after the current time")
	}

	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		return nil, err
	}
	if _, err := s.storeRepo.GetByID(ctx, input.StoreID); err != nil {
		return nil, err
	}

	status := entities.ReservationStatusConfirmed
	if input.RequiresApproval {
		status = entities.ReservationStatusPending
	}

	now := time.Now().UTC()
	reservation := &entities.Reservation{
		ID:          uuid.New().String(),
		StoreID:     input.StoreID,
		UserID:      input.UserID,
		PhoneNumber: input.PhoneNumber,
		ReservedAt:  input.ReservedAt,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	log.Info().
		Str("reservation_id", reservation.ID).
		Str("store_id", reservation.StoreID).
		Str("status", string(reservation.Status)).
		Msg("reservation created")
	return reservation, nil
}

// GetReservation retrieves a reservation by id.
func (s *CustomerReservationService) GetReservation(ctx context.Context, id string) (*entities.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, id)
}

// CancelReservation cancels a reservation. Only the reserving customer
// may cancel; a reservation that is already CANCELLED stays cancelled and
// the repeat attempt fails.
func (s *CustomerReservationService) CancelReservation(ctx context.Context, id, callerID string) (*entities.Reservation, error) {
	for attempt := 0; attempt < transitionAttempts; attempt++ {
		reservation, err := s.reservationRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if reservation.UserID != callerID {
			return nil, apperrors.NewUnauthorizedError("caller did not make this reservation")
		}
		if reservation.Status == entities.ReservationStatusCancelled {
			return nil, apperrors.NewValidationError(apperrors.CodeAlreadyCancelled,
				"reservation is already cancelled")
		}

		updated, err := s.reservationRepo.TransitionStatus(ctx, id,
			reservation.Status, entities.ReservationStatusCancelled, "")
		if err != nil {
			return nil, err
		}
		if updated != nil {
			log.Info().Str("reservation_id", id).Msg("reservation cancelled")
			return updated, nil
		}
		// Lost the swap to a concurrent transition; re-read and re-check.
	}
	return nil, apperrors.NewConflictError("", "reservation is being modified concurrently")
}

// CheckArrival verifies that a reservation belongs to the given store and
// reports whether arrivalTime falls inside the ten-minute arrival window
// before the reserved time. The reservation is not mutated.
func (s *CustomerReservationService) CheckArrival(ctx context.Context, reservationID, storeID string, arrivalTime time.Time) (*entities.ArrivalCheck, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.StoreID != storeID {
		return nil, apperrors.NewUnauthorizedError("reservation does not belong to this store")
	}
	if reservation.Status == entities.ReservationStatusCancelled {
		return nil, apperrors.NewValidationError(apperrors.CodeAlreadyCancelled,
			"reservation is cancelled")
	}

	return &entities.ArrivalCheck{
		ReservationID: reservation.ID,
		Arrived:       reservation.ArrivedAt(arrivalTime),
	}, nil
}

// GetCustomerReservations lists a customer's reservations, most recent
// reserved time first.
func (s *CustomerReservationService) GetCustomerReservations(ctx context.Context, userID string) ([]*entities.Reservation, error) {
	return s.reservationRepo.ListByUser(ctx, userID)
}
