package services

import (
	"context"
	"time"

	"github.com/zerobase/storereservation/internal/domain/entities"
	"github.com/zerobase/storereservation/internal/domain/repositories"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
)

// KioskService serves the in-store kiosk: today's reservation list and
// arrival checks.
type KioskService struct {
	reservationRepo repositories.ReservationRepository
}

// NewKioskService creates a new kiosk service.
func NewKioskService(reservationRepo repositories.ReservationRepository) *KioskService {
	return &KioskService{reservationRepo: reservationRepo}
}

// GetTodayReservations lists a store's reservations for the current
// calendar day.
func (s *KioskService) GetTodayReservations(ctx context.Context, storeID string) ([]*entities.Reservation, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(23*time.Hour + 59*time.Minute)

	return s.reservationRepo.ListByStoreAndTimeRange(ctx, storeID, dayStart, dayEnd)
}

// CheckArrival reports whether arrivalTime falls inside the ten-minute
// arrival window before the reserved time. Cancelled reservations cannot
// check in. The reservation is not mutated.
func (s *KioskService) CheckArrival(ctx context.Context, reservationID string, arrivalTime time.Time) (*entities.ArrivalCheck, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
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
