package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noteplane/noteplane/internal/middleware"
)

func TestCORSHeadersOnRequest(t *testing.T) {
	handler := middleware.CORS(middleware.DefaultCORSConfig())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	innerCalled := false
	handler := middleware.CORS(middleware.DefaultCORSConfig())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			innerCalled = true
		}),
	)

	req := httptest.NewRequest(http.MethodOptions, "/api/notes", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.False(t, innerCalled)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}
