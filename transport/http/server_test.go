package http_test

import (
	"encoding/json"
	"hotel/config"
	"hotel/infras/kafka"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/shared/cache"
	transport "hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bareServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()

	otl := otelMocks.NewOtel()
	routes := router.New(router.DomainHandlers{}, middleware.NewAuthMiddleware(otl, cfg))

	return transport.New(cfg, routes, middleware.NewAppMiddleware(otl, cfg, cache.NewCounter(nil, otl)), otl, kafka.New(cfg)).Handler()
}

func TestServer_Health(t *testing.T) {
	handler := bareServer(t, &config.Config{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	payload := map[string]string{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "OK", payload["message"])
}

func TestServer_APIKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.APIKey = "secret"

	handler := bareServer(t, cfg)

	tests := []struct {
		name     string
		key      string
		expected int
	}{
		{name: "missing", key: "", expected: http.StatusUnauthorized},
		{name: "wrong", key: "guess", expected: http.StatusUnauthorized},
		{name: "valid reaches routing", key: "secret", expected: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/unknown", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "health stays open")
}
