package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/zerobase/storereservation/internal/api/middleware"
	"github.com/zerobase/storereservation/internal/domain/entities"
)

// OwnerReservationService defines the interface for the store owner's
// reservation operations
type OwnerReservationService interface {
	GetReservationsByStore(ctx context.Context, callerID, storeID string, date time.Time) ([]*entities.Reservation, error)
	GetPendingReservations(ctx context.Context, callerID, storeID string) ([]*entities.Reservation, error)
	ApproveReservation(ctx context.Context, callerID, reservationID string) (*entities.Reservation, error)
	RejectReservation(ctx context.Context, callerID, reservationID, reason string) (*entities.Reservation, error)
}

// OwnerReservationHandler handles store owner reservation requests
type OwnerReservationHandler struct {
	service OwnerReservationService
}

// NewOwnerReservationHandler creates a new owner reservation handler
func NewOwnerReservationHandler(service OwnerReservationService) *OwnerReservationHandler {
	return &OwnerReservationHandler{
		service: service,
	}
}

// GetReservationsByStore handles GET /api/owner/stores/{storeId}/reservations?date=
func (h *OwnerReservationHandler) GetReservationsByStore(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("storeId")
	if storeID == "" {
		respondWithError(w, http.StatusBadRequest, "store ID is required")
		return
	}

	dateStr := r.URL.Query().Get("date")
	date := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid date format (use YYYY-MM-DD)")
			return
		}
		date = parsed
	}

	reservations, err := h.service.GetReservationsByStore(r.Context(), middleware.CallerID(r.Context()), storeID, date)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": reservations,
	})
}

// GetPendingReservations handles GET /api/owner/stores/{storeId}/reservations/pending
func (h *OwnerReservationHandler) GetPendingReservations(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("storeId")
	if storeID == "" {
		respondWithError(w, http.StatusBadRequest, "store ID is required")
		return
	}

	reservations, err := h.service.GetPendingReservations(r.Context(), middleware.CallerID(r.Context()), storeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": reservations,
	})
}

// ApproveReservation handles PUT /api/owner/reservations/{id}/approve
func (h *OwnerReservationHandler) ApproveReservation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reservation ID is required")
		return
	}

	reservation, err := h.service.ApproveReservation(r.Context(), middleware.CallerID(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reservation)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// RejectReservation handles PUT /api/owner/reservations/{id}/reject
func (h *OwnerReservationHandler) RejectReservation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reservation ID is required")
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	reservation, err := h.service.RejectReservation(r.Context(), middleware.CallerID(r.Context()), id, req.Reason)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reservation)
}
