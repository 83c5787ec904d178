package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zerobase/storereservation/internal/api/middleware"
	"github.com/zerobase/storereservation/internal/infrastructure/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestObservabilityMiddleware_UsesRoutePattern(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	metrics, err := observability.InitMetrics()
	assert.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/stores/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.ObservabilityMiddleware(metrics)(mux)

	t.Run("span and route attribute carry the pattern, not the raw path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/stores/store-1", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		spans := recorder.Ended()
		if !assert.Len(t, spans, 1) {
			return
		}
		assert.Equal(t, "GET /api/stores/{id}", spans[0].Name())

		var route string
		for _, attr := range spans[0].Attributes() {
			if attr.Key == attribute.Key("http.route") {
				route = attr.Value.AsString()
			}
		}
		assert.Equal(t, "GET /api/stores/{id}", route)
	})

	t.Run("unrouted requests fall back to the raw path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		spans := recorder.Ended()
		if !assert.Len(t, spans, 2) {
			return
		}
		assert.Equal(t, "/no/such/route", spans[1].Name())
	})
}
