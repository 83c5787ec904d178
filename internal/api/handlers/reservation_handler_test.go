package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zerobase/storereservation/internal/api/handlers"
	"github.com/zerobase/storereservation/internal/application/services"
	"github.com/zerobase/storereservation/internal/domain/entities"
	apperrors "github.com/zerobase/storereservation/pkg/errors"
)

type MockCustomerReservationService struct {
	mock.Mock
}

func (m *MockCustomerReservationService) CreateReservation(ctx context.Context, input services.CreateReservationInput) (*entities.Reservation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reservation), args.Error(1)
}

func (m *MockCustomerReservationService) GetReservation(ctx context.Context, id string) (*entities.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reservation), args.Error(1)
}

func (m *MockCustomerReservationService) CancelReservation(ctx context.Context, id, callerID string) (*entities.Reservation, error) {
	args := m.Called(ctx, id, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reservation), args.Error(1)
}

func (m *MockCustomerReservationService) CheckArrival(ctx context.Context, reservationID, storeID string, arrivalTime time.Time) (*entities.ArrivalCheck, error) {
	args := m.Called(ctx, reservationID, storeID, arrivalTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ArrivalCheck), args.Error(1)
}

func (m *MockCustomerReservationService) GetCustomerReservations(ctx context.Context, userID string) ([]*entities.Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Reservation), args.Error(1)
}

func newReservationMux(handler *handlers.ReservationHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/reservations", handler.CreateReservation)
	mux.HandleFunc("GET /api/reservations/{id}", handler.GetReservation)
	mux.HandleFunc("PUT /api/reservations/{id}/cancel", handler.CancelReservation)
	mux.HandleFunc("POST /api/reservations/{id}/arrival", handler.CheckArrival)
	return mux
}

func TestReservationHandler_CreateReservation(t *testing.T) {
	t.Run("creates and returns 201", func(t *testing.T) {
		mockService := new(MockCustomerReservationService)
		handler := handlers.NewReservationHandler(mockService)

		reservedAt := time.Date(2026, 9, 2, 18, 0, 0, 0, time.UTC)
		created := &entities.Reservation{ID: "res-1", StoreID: "store-1", Status: entities.ReservationStatusConfirmed}

		mockService.On("CreateReservation", mock.Anything, mock.MatchedBy(func(in services.CreateReservationInput) bool {
			return in.StoreID == "store-1" && in.ReservedAt.Equal(reservedAt) && !in.RequiresApproval
		})).Return(created, nil)

		body := `{"store_id":"store-1","phone_number":"010-1234-5678","reserved_at":"2026-09-02T18:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newReservationMux(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp entities.Reservation
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, entities.ReservationStatusConfirmed, resp.Status)
	})

	t.Run("rejects a malformed payload", func(t *testing.T) {
		mockService := new(MockCustomerReservationService)
		handler := handlers.NewReservationHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		newReservationMux(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "CreateReservation")
	})

	t.Run("maps a past reservation time onto 400 with its code", func(t *testing.T) {
		mockService := new(MockCustomerReservationService)
		handler := handlers.NewReservationHandler(mockService)

		mockService.On("CreateReservation", mock.Anything, mock.Anything).Return(nil,
			apperrors.NewValidationError(apperrors.CodeInvalidReservationTime,
				"reservation time must be after the current time"))

		body := `{"store_id":"store-1","reserved_at":"2020-01-01T18:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newReservationMux(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, apperrors.CodeInvalidReservationTime, resp["code"])
	})
}

func TestReservationHandler_CancelReservation(t *testing.T) {
	t.Run("maps a repeat cancellation onto 400", func(t *testing.T) {
		mockService := new(MockCustomerReservationService)
		handler := handlers.NewReservationHandler(mockService)

		mockService.On("CancelReservation", mock.Anything, "res-1", mock.Anything).Return(nil,
			apperrors.NewValidationError(apperrors.CodeAlreadyCancelled, "reservation is already cancelled"))

		req := httptest.NewRequest(http.MethodPut, "/api/reservations/res-1/cancel", nil)
		rec := httptest.NewRecorder()
		newReservationMux(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReservationHandler_CheckArrival(t *testing.T) {
	t.Run("reports the arrival result", func(t *testing.T) {
		mockService := new(MockCustomerReservationService)
		handler := handlers.NewReservationHandler(mockService)

		mockService.On("CheckArrival", mock.Anything, "res-1", "store-1", mock.Anything).Return(
			&entities.ArrivalCheck{ReservationID: "res-1", Arrived: true}, nil)

		body := `{"store_id":"store-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/reservations/res-1/arrival", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newReservationMux(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp entities.ArrivalCheck
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Arrived)
	})
}
