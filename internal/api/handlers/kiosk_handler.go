package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/zerobase/storereservation/internal/domain/entities"
)

// KioskService defines the interface for the in-store kiosk operations
type KioskService interface {
	GetTodayReservations(ctx context.Context, storeID string) ([]*entities.Reservation, error)
	CheckArrival(ctx context.Context, reservationID string, arrivalTime time.Time) (*entities.ArrivalCheck, error)
}

// KioskHandler handles in-store kiosk requests
type KioskHandler struct {
	service KioskService
}

// NewKioskHandler creates a new kiosk handler
func NewKioskHandler(service KioskService) *KioskHandler {
	return &KioskHandler{
		service: service,
	}
}

// GetTodayReservations handles GET /api/kiosk/stores/{storeId}/reservations
func (h *KioskHandler) GetTodayReservations(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("storeId")
	if storeID == "" {
		respondWithError(w, http.StatusBadRequest, "store ID is required")
		return
	}

	reservations, err := h.service.GetTodayReservations(r.Context(), storeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": reservations,
	})
}

// CheckArrival handles POST /api/kiosk/reservations/{id}/arrival
func (h *KioskHandler) CheckArrival(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reservation ID is required")
		return
	}

	check, err := h.service.CheckArrival(r.Context(), id, time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, check)
}
