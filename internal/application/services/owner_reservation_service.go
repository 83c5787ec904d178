package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zerobase/storereservation/internal/domain/entities"
	"github.com/zerobase/storereservation/internal/domain/repositories"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
)

// OwnerReservationService handles the store owner's side of the
// reservation lifecycle: listings, approval, and rejection.
type OwnerReservationService struct {
	reservationRepo repositories.ReservationRepository
	storeRepo       repositories.StoreRepository
	userRepo        repositories.UserRepository
}

// NewOwnerReservationService creates a new owner reservation service.
func NewOwnerReservationService(
	reservationRepo repositories.ReservationRepository,
	storeRepo repositories.StoreRepository,
	userRepo repositories.UserRepository,
) *OwnerReservationService {
	return &OwnerReservationService{
		reservationRepo: reservationRepo,
		storeRepo:       storeRepo,
		userRepo:        userRepo,
	}
}

// GetReservationsByStore lists a store's reservations for the calendar
// day containing date. The caller must be the PARTNER owner of the store.
func (s *OwnerReservationService) GetReservationsByStore(ctx context.Context, callerID, storeID string, date time.Time) ([]*entities.Reservation, error) {
	if err := s.validateStoreOwner(ctx, callerID, storeID); err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(23*time.Hour + 59*time.Minute)

	return s.reservationRepo.ListByStoreAndTimeRange(ctx, storeID, dayStart, dayEnd)
}

// GetPendingReservations lists a store's PENDING reservations with no
// time filter. The caller must be the PARTNER owner of the store.
func (s *OwnerReservationService) GetPendingReservations(ctx context.Context, callerID, storeID string) ([]*entities.Reservation, error) {
	if err := s.validateStoreOwner(ctx, callerID, storeID); err != nil {
		return nil, err
	}
	return s.reservationRepo.ListByStoreAndStatus(ctx, storeID, entities.ReservationStatusPending)
}

// ApproveReservation moves a PENDING reservation to CONFIRMED. Any other
// current status fails the precondition, including after losing a race
// with a concurrent transition.
func (s *OwnerReservationService) ApproveReservation(ctx context.Context, callerID, reservationID string) (*entities.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := s.validateStoreOwner(ctx, callerID, reservation.StoreID); err != nil {
		return nil, err
	}

	if reservation.Status != entities.ReservationStatusPending {
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidReservationStatus,
			"only pending reservations can be approved")
	}

	updated, err := s.reservationRepo.TransitionStatus(ctx, reservationID,
		entities.ReservationStatusPending, entities.ReservationStatusConfirmed, "")
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// A concurrent transition won; the reservation is no longer PENDING.
		return nil, apperrors.NewValidationError(apperrors.CodeInvalidReservationStatus,
			"only pending reservations can be approved")
	}

	log.Info().Str("reservation_id", reservationID).Msg("reservation approved")
	return updated, nil
}

// RejectReservation moves a reservation to REJECTED with a reason.
// Reservations that are already REJECTED or CONFIRMED cannot be rejected.
func (s *OwnerReservationService) RejectReservation(ctx context.Context, callerID, reservationID, reason string) (*entities.Reservation, error) {
	for attempt := 0; attempt < transitionAttempts; attempt++ {
		reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
		if err != nil {
			return nil, err
		}
		if err := s.validateStoreOwner(ctx, callerID, reservation.StoreID); err != nil {
			return nil, err
		}

		switch reservation.Status {
		case entities.ReservationStatusRejected:
			return nil, apperrors.NewValidationError(apperrors.CodeAlreadyRejected,
				"reservation is already rejected")
		case entities.ReservationStatusConfirmed:
			return nil, apperrors.NewValidationError(apperrors.CodeAlreadyConfirmed,
				"reservation is already confirmed")
		}

		updated, err := s.reservationRepo.TransitionStatus(ctx, reservationID,
			reservation.Status, entities.ReservationStatusRejected, reason)
		if err != nil {
			return nil, err
		}
		if updated != nil {
			log.Info().Str("reservation_id", reservationID).Str("reason", reason).Msg("reservation rejected")
			return updated, nil
		}
		// Lost the swap to a concurrent transition; re-read and re-check.
	}
	return nil, apperrors.NewConflictError("", "reservation is being modified concurrently")
}

// validateStoreOwner checks that the caller exists, holds the PARTNER
// role, and owns the store.
func (s *OwnerReservationService) validateStoreOwner(ctx context.Context, callerID, storeID string) error {
	owner, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if err := assertRole(owner, entities.RolePartner); err != nil {
		return err
	}

	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	return assertStoreOwner(store, callerID)
}
