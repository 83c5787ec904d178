package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/zerobase/storereservation/internal/api/handlers"
	"github.com/zerobase/storereservation/internal/api/middleware"
	"github.com/zerobase/storereservation/internal/infrastructure/observability"
	"github.com/zerobase/storereservation/internal/infrastructure/tokens"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler  *handlers.AuthHandler
	userHandler  *handlers.UserHandler
	storeHandler *handlers.StoreHandler

	reservationHandler      *handlers.ReservationHandler
	ownerReservationHandler *handlers.OwnerReservationHandler
	kioskHandler            *handlers.KioskHandler
	reviewHandler           *handlers.ReviewHandler

	auth    func(http.Handler) http.Handler
	metrics *observability.Metrics
	db      Pinger
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	storeHandler *handlers.StoreHandler,
	reservationHandler *handlers.ReservationHandler,
	ownerReservationHandler *handlers.OwnerReservationHandler,
	kioskHandler *handlers.KioskHandler,
	reviewHandler *handlers.ReviewHandler,
	issuer *tokens.Issuer,
	metrics *observability.Metrics,
	db Pinger,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		authHandler:  authHandler,
		userHandler:  userHandler,
		storeHandler: storeHandler,

		reservationHandler:      reservationHandler,
		ownerReservationHandler: ownerReservationHandler,
		kioskHandler:            kioskHandler,
		reviewHandler:           reviewHandler,

		auth:    middleware.AuthMiddleware(issuer),
		metrics: metrics,
		db:      db,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint; unhealthy when the database is unreachable
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		if r.db != nil {
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()
			if err := r.db.Ping(ctx); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Auth endpoints (public)
	r.mux.HandleFunc("POST /api/auth/signup", r.authHandler.Signup)
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)

	// User endpoints
	r.protected("GET /api/users/{id}", r.userHandler.GetUser)

	// Store endpoints; listing and lookup are public, mutations are not
	r.mux.HandleFunc("GET /api/stores", r.storeHandler.GetStores)
	r.mux.HandleFunc("GET /api/stores/{id}", r.storeHandler.GetStore)
	r.protected("POST /api/stores", r.storeHandler.CreateStore)
	r.protected("PUT /api/stores/{id}", r.storeHandler.UpdateStore)
	r.protected("DELETE /api/stores/{id}", r.storeHandler.DeleteStore)

	// Customer reservation endpoints
	r.protected("POST /api/reservations", r.reservationHandler.CreateReservation)
	r.protected("GET /api/reservations/{id}", r.reservationHandler.GetReservation)
	r.protected("PUT /api/reservations/{id}/cancel", r.reservationHandler.CancelReservation)
	r.protected("POST /api/reservations/{id}/arrival", r.reservationHandler.CheckArrival)
	r.protected("GET /api/customers/{userId}/reservations", r.reservationHandler.GetCustomerReservations)

	// Store owner endpoints
	r.protected("GET /api/owner/stores/{storeId}/reservations", r.ownerReservationHandler.GetReservationsByStore)
	r.protected("GET /api/owner/stores/{storeId}/reservations/pending", r.ownerReservationHandler.GetPendingReservations)
	r.protected("PUT /api/owner/reservations/{id}/approve", r.ownerReservationHandler.ApproveReservation)
	r.protected("PUT /api/owner/reservations/{id}/reject", r.ownerReservationHandler.RejectReservation)

	// Kiosk endpoints (in-store terminal, no customer token)
	r.mux.HandleFunc("GET /api/kiosk/stores/{storeId}/reservations", r.kioskHandler.GetTodayReservations)
	r.mux.HandleFunc("POST /api/kiosk/reservations/{id}/arrival", r.kioskHandler.CheckArrival)

	// Review endpoints; reading a store's reviews is public
	r.mux.HandleFunc("GET /api/stores/{storeId}/reviews", r.reviewHandler.GetReviewsByStore)
	r.protected("POST /api/reviews", r.reviewHandler.CreateReview)
	r.protected("PUT /api/reviews/{id}", r.reviewHandler.UpdateReview)
	r.protected("DELETE /api/reviews/{id}", r.reviewHandler.DeleteReview)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on rejected requests
	handler = middleware.CORSMiddleware(handler)

	return handler
}

func (r *Router) protected(pattern string, handlerFunc http.HandlerFunc) {
	r.mux.Handle(pattern, r.auth(handlerFunc))
}
