package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noteplane/noteplane/internal/service"
)

func TestWriteServiceError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid_credentials",
			err:        service.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"invalid credentials"}`,
		},
		{
			name:       "note_not_found",
			err:        service.ErrNoteNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"note not found"}`,
		},
		{
			name:       "forbidden",
			err:        service.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"not permitted"}`,
		},
		{
			name:       "quota_exceeded_carries_details",
			err:        &service.QuotaExceededError{CurrentCount: 3, Limit: 3},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"note limit reached: 3 of 3 notes used","details":{"current_count":3,"limit":3}}`,
		},
		{
			name:       "wrapped_sentinel_still_maps",
			err:        errors.Join(errors.New("context"), service.ErrNoteNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"note not found"}`,
		},
		{
			name:       "unknown_error_is_opaque",
			err:        errors.New("pq: connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, logger, "req-1", test.err)

			require.Equal(t, test.wantStatus, rec.Code)
			require.JSONEq(t, test.wantBody, rec.Body.String())
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
