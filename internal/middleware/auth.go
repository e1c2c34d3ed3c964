package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/noteplane/noteplane/internal/auth"
	"github.com/noteplane/noteplane/internal/metrics"
	"github.com/noteplane/noteplane/internal/model"
	"github.com/noteplane/noteplane/internal/repository"
	"github.com/noteplane/noteplane/internal/token"
)

// SubjectResolver re-resolves a token subject against live records.
// Tokens are not authoritative for existence, only for identity claims at
// issuance time, so every request goes back to the store.
type SubjectResolver interface {
	GetUserWithTenant(ctx context.Context, id string) (*model.User, *model.Tenant, error)
}

// TokenVerifier verifies a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Store   SubjectResolver
	Tokens  TokenVerifier
	Metrics metrics.Recorder
}

// Auth returns a middleware that authenticates API requests.
// It extracts the bearer token from the Authorization header, verifies it,
// re-resolves the subject, and injects the auth context into the request.
//
// Every failure surfaces as the same opaque 401. The finer cause (missing
// header, invalid signature, expired token, vanished user) is logged
// internally only, so an unauthenticated caller gains no oracle.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	reject := func(w http.ResponseWriter, r *http.Request, reason string) {
		logAuthFailure(cfg.Logger, r, reason)
		recorder.IncAuthRejected(reason)
		writeAuthError(w)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := extractBearerToken(r)
			if raw == "" {
				reject(w, r, "missing_or_malformed_header")
				return
			}

			claims, err := cfg.Tokens.Verify(raw)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, token.ErrTokenExpired) {
					reason = "expired_token"
				}
				reject(w, r, reason)
				return
			}

			// Re-resolve the subject. A user deleted since issuance must
			// not authenticate even though the signature is valid.
			user, tenant, err := cfg.Store.GetUserWithTenant(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					reject(w, r, "subject_not_found")
					return
				}
				cfg.Logger.Error("store error during auth",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncAuthRejected("store_error")
				writeAuthError(w)
				return
			}

			// The token's tenant claim must match the user's current tenant.
			if user.TenantID != claims.TenantID {
				reject(w, r, "tenant_mismatch")
				return
			}

			// Display fields come from the freshly loaded tenant record,
			// not from the token's snapshot.
			authCtx := &model.AuthContext{
				UserID:             user.ID,
				Email:              user.Email,
				Role:               user.Role,
				TenantID:           user.TenantID,
				TenantSlug:         tenant.Slug,
				TenantName:         tenant.Name,
				TenantSubscription: tenant.Subscription,
				TokenExpiresAt:     claims.ExpiresAt.Time,
			}

			cfg.Logger.Debug("authentication successful",
				slog.String("user_id", authCtx.UserID),
				slog.String("tenant_id", authCtx.TenantID),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the token from "Authorization: Bearer <token>".
// Returns empty string if the header is absent or the prefix is malformed.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same body for all auth failures to prevent probing.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
