package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zerobase/storereservation/internal/api/handlers"
	"github.com/zerobase/storereservation/internal/application/services"
	"github.com/zerobase/storereservation/internal/domain/entities"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
)

type MockStoreService struct {
	mock.Mock
}

func (m *MockStoreService) CreateStore(ctx context.Context, callerID string, input services.StoreInput) (*entities.Store, error) {
	args := m.Called(ctx, callerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Store), args.Error(1)
}

func (m *MockStoreService) GetStore(ctx context.Context, id string) (*entities.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Store), args.Error(1)
}

func (m *MockStoreService) GetStores(ctx context.Context, sortBy string, callerLat, callerLon *float64) ([]entities.StoreSummary, error) {
	args := m.Called(ctx, sortBy, callerLat, callerLon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.StoreSummary), args.Error(1)
}

func (m *MockStoreService) UpdateStore(ctx context.Context, id, callerID string, input services.StoreInput) (*entities.Store, error) {
	args := m.Called(ctx, id, callerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Store), args.Error(1)
}

func (m *MockStoreService) DeleteStore(ctx context.Context, id, callerID string) error {
	args := m.Called(ctx, id, callerID)
	return args.Error(0)
}

func newStoreMux(handler *handlers.StoreHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/stores", handler.GetStores)
	mux.HandleFunc("GET /api/stores/{id}", handler.GetStore)
	mux.HandleFunc("DELETE /api/stores/{id}", handler.DeleteStore)
	return mux
}

func TestStoreHandler_GetStore(t *testing.T) {
	t.Run("returns the store", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := handlers.NewStoreHandler(mockService)

		store := &entities.Store{ID: "store-1", Name: "Gangnam Grill House", Rating: 4.2}
		mockService.On("GetStore", mock.Anything, "store-1").Return(store, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/stores/store-1", nil)
		rec := httptest.NewRecorder()
		newStoreMux(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body entities.Store
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "Gangnam Grill House", body.Name)
	})

	t.Run("maps not found onto a bad request with its code", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := handlers.NewStoreHandler(mockService)

		mockService.On("GetStore", mock.Anything, "missing").Return(nil,
			apperrors.NewNotFoundError(apperrors.CodeStoreNotFound, "store not found"))

		req := httptest.NewRequest(http.MethodGet, "/api/stores/missing", nil)
		rec := httptest.NewRecorder()
		newStoreMux(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, apperrors.CodeStoreNotFound, body["code"])
	})
}

func TestStoreHandler_GetStores(t *testing.T) {
	t.Run("passes sort criteria and coordinates through", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := handlers.NewStoreHandler(mockService)

		summaries := []entities.StoreSummary{{ID: "s1", Name: "Noodle Bar", Distance: 1.2}}
		mockService.On("GetStores", mock.Anything, services.SortByDistance,
			mock.MatchedBy(func(lat *float64) bool { return lat != nil && *lat == 37.5 }),
			mock.MatchedBy(func(lon *float64) bool { return lon != nil && *lon == 127.0 }),
		).Return(summaries, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/stores?sortBy=distance&lat=37.5&lon=127.0", nil)
		rec := httptest.NewRecorder()
		newStoreMux(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("defaults to name sorting", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := handlers.NewStoreHandler(mockService)

		mockService.On("GetStores", mock.Anything, services.SortByName,
			(*float64)(nil), (*float64)(nil)).Return([]entities.StoreSummary{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
		rec := httptest.NewRecorder()
		newStoreMux(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("rejects a malformed coordinate before calling the service", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := handlers.NewStoreHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/stores?sortBy=distance&lat=abc", nil)
		rec := httptest.NewRecorder()
		newStoreMux(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "GetStores")
	})
}

func TestStoreHandler_DeleteStore(t *testing.T) {
	t.Run("maps the active-reservations conflict onto 409", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := handlers.NewStoreHandler(mockService)

		mockService.On("DeleteStore", mock.Anything, "store-1", mock.Anything).Return(
			apperrors.NewConflictError(apperrors.CodeStoreHasActiveReservations,
				"store has pending or confirmed reservations"))

		req := httptest.NewRequest(http.MethodDelete, "/api/stores/store-1", nil)
		rec := httptest.NewRecorder()
		newStoreMux(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("maps an ownership failure onto 403", func(t *testing.T) {
		mockService := new(MockStoreService)
		handler := handlers.NewStoreHandler(mockService)

		mockService.On("DeleteStore", mock.Anything, "store-1", mock.Anything).Return(
			apperrors.NewUnauthorizedError("caller is not the store owner"))

		req := httptest.NewRequest(http.MethodDelete, "/api/stores/store-1", nil)
		rec := httptest.NewRecorder()
		newStoreMux(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
