package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zerobase/storereservation/internal/api/middleware"
	"github.com/zerobase/storereservation/internal/application/services"
	"github.com/zerobase/storereservation/internal/domain/entities"
)

// StoreService defines the interface for store operations
type StoreService interface {
	CreateStore(ctx context.Context, callerID string, input services.StoreInput) (*entities.Store, error)
	GetStore(ctx context.Context, id string) (*entities.Store, error)
	GetStores(ctx context.Context, sortBy string, callerLat, callerLon *float64) ([]entities.StoreSummary, error)
	UpdateStore(ctx context.Context, id, callerID string, input services.StoreInput) (*entities.Store, error)
	DeleteStore(ctx context.Context, id, callerID string) error
}

// StoreHandler handles store requests
type StoreHandler struct {
	service StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(service StoreService) *StoreHandler {
	return &StoreHandler{
		service: service,
	}
}

type storeRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// CreateStore handles POST /api/stores
func (h *StoreHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req storeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	store, err := h.service.CreateStore(r.Context(), middleware.CallerID(r.Context()), services.StoreInput{
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, store)
}

// GetStore handles GET /api/stores/{id}
func (h *StoreHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "store ID is required")
		return
	}

	store, err := h.service.GetStore(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, store)
}

// GetStores handles GET /api/stores?sortBy=&lat=&lon=
func (h *StoreHandler) GetStores(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sortBy")
	if sortBy == "" {
		sortBy = services.SortByName
	}

	lat, err := parseCoordinate(r.URL.Query().Get("lat"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid lat parameter")
		return
	}
	lon, err := parseCoordinate(r.URL.Query().Get("lon"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid lon parameter")
		return
	}

	stores, err := h.service.GetStores(r.Context(), sortBy, lat, lon)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"stores": stores,
	})
}

// UpdateStore handles PUT /api/stores/{id}
func (h *StoreHandler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "store ID is required")
		return
	}

	var req storeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	store, err := h.service.UpdateStore(r.Context(), id, middleware.CallerID(r.Context()), services.StoreInput{
		Name:        req.Name,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, store)
}

// DeleteStore handles DELETE /api/stores/{id}
func (h *StoreHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "store ID is required")
		return
	}

	if err := h.service.DeleteStore(r.Context(), id, middleware.CallerID(r.Context())); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseCoordinate(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
