package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/zerobase/storereservation/internal/api/middleware"
	"github.com/zerobase/storereservation/internal/application/services"
	"github.com/zerobase/storereservation/internal/domain/entities"
)

// CustomerReservationService defines the interface for customer-side
// reservation operations
type CustomerReservationService interface {
	CreateReservation(ctx context.Context, input services.CreateReservationInput) (*entities.Reservation, error)
	GetReservation(ctx context.Context, id string) (*entities.Reservation, error)
	CancelReservation(ctx context.Context, id, callerID string) (*entities.Reservation, error)
	CheckArrival(ctx context.Context, reservationID, storeID string, arrivalTime time.Time) (*entities.ArrivalCheck, error)
	GetCustomerReservations(ctx context.Context, userID string) ([]*entities.Reservation, error)
}

// ReservationHandler handles customer reservation requests
type ReservationHandler struct {
	service CustomerReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(service CustomerReservationService) *ReservationHandler {
	return &ReservationHandler{
		service: service,
	}
}

type createReservationRequest struct {
	StoreID          string    `json:"store_id"`
	PhoneNumber      string    `json:"phone_number"`
	ReservedAt       time.Time `json:"reserved_at"`
	RequiresApproval bool      `json:"requires_approval"`
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), services.CreateReservationInput{
		StoreID:          req.StoreID,
		UserID:           middleware.CallerID(r.Context()),
		PhoneNumber:      req.PhoneNumber,
		ReservedAt:       req.ReservedAt,
		RequiresApproval: req.RequiresApproval,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, reservation)
}

// GetReservation handles GET /api/reservations/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reservation ID is required")
		return
	}

	reservation, err := h.service.GetReservation(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reservation)
}

// CancelReservation handles PUT /api/reservations/{id}/cancel
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reservation ID is required")
		return
	}

	reservation, err := h.service.CancelReservation(r.Context(), id, middleware.CallerID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reservation)
}

type arrivalRequest struct {
	StoreID string `json:"store_id"`
}

// CheckArrival handles POST /api/reservations/{id}/arrival
func (h *ReservationHandler) CheckArrival(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "reservation ID is required")
		return
	}

	var req arrivalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	check, err := h.service.CheckArrival(r.Context(), id, req.StoreID, time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, check)
}

// GetCustomerReservations handles GET /api/customers/{userId}/reservations
func (h *ReservationHandler) GetCustomerReservations(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	if userID != middleware.CallerID(r.Context()) {
		respondWithError(w, http.StatusForbidden, "cannot list another user's reservations")
		return
	}

	reservations, err := h.service.GetCustomerReservations(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": reservations,
	})
}
