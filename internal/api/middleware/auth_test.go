package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zerobase/storereservation/internal/api/middleware"
	"github.com/zerobase/storereservation/internal/domain/entities"
	"github.com/zerobase/storereservation/internal/infrastructure/tokens"
)

func TestAuthMiddleware(t *testing.T) {
	issuer := tokens.NewIssuer("test-secret", time.Hour)
	auth := middleware.AuthMiddleware(issuer)

	echo := auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Caller-ID", middleware.CallerID(r.Context()))
		w.Header().Set("X-Caller-Role", string(middleware.CallerRole(r.Context())))
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("rejects a request without a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		other := tokens.NewIssuer("other-secret", time.Hour)
		token, err := other.Generate(&entities.User{ID: "user-1", Role: entities.RoleCustomer})
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("injects the caller identity on a valid token", func(t *testing.T) {
		token, err := issuer.Generate(&entities.User{ID: "user-1", Role: entities.RolePartner})
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		echo.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Header().Get("X-Caller-ID"))
		assert.Equal(t, string(entities.RolePartner), rec.Header().Get("X-Caller-Role"))
	})
}
