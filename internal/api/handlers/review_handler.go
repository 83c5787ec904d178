package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zerobase/storereservation/internal/api/middleware"
	"github.com/zerobase/storereservation/internal/application/services"
	"github.com/zerobase/storereservation/internal/domain/entities"
)

// ReviewService defines the interface for review operations
type ReviewService interface {
	CreateReview(ctx context.Context, input services.CreateReviewInput) (*entities.Review, error)
	GetReviewsByStore(ctx context.Context, storeID string) ([]*entities.Review, error)
	UpdateReview(ctx context.Context, reviewID, callerID string, input services.UpdateReviewInput) (*entities.Review, error)
	DeleteReview(ctx context.Context, reviewID, callerID string) error
}

// ReviewHandler handles review requests
type ReviewHandler struct {
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service: service,
	}
}

type createReviewRequest struct {
	StoreID string `json:"store_id"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// CreateReview handles POST /api/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	review, err := h.service.CreateReview(r.Context(), services.CreateReviewInput{
		StoreID: req.StoreID,
		UserID:  middleware.CallerID(r.Context()),
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

// GetReviewsByStore handles GET /api/stores/{storeId}/reviews
func (h *ReviewHandler) GetReviewsByStore(w http.ResponseWriter, r *http.Request) {
	storeID := r.PathValue("storeId")
	if storeID == "" {
		respondWithError(w, http.StatusBadRequest, "store ID is required")
		return
	}

	reviews, err := h.service.GetReviewsByStore(r.Context(), storeID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
	})
}

type updateReviewRequest struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// UpdateReview handles PUT /api/reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "review ID is required")
		return
	}

	var req updateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	review, err := h.service.UpdateReview(r.Context(), id, middleware.CallerID(r.Context()), services.UpdateReviewInput{
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "review ID is required")
		return
	}

	if err := h.service.DeleteReview(r.Context(), id, middleware.CallerID(r.Context())); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
