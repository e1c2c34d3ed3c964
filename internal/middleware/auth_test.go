package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noteplane/noteplane/internal/auth"
	"github.com/noteplane/noteplane/internal/middleware"
	"github.com/noteplane/noteplane/internal/model"
	"github.com/noteplane/noteplane/internal/repository/memstore"
	"github.com/noteplane/noteplane/internal/token"
)

type gateFixture struct {
	store  *memstore.Store
	tokens *token.Service
	tenant *model.Tenant
	user   *model.User
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	now := time.Now().UTC()
	tenant := &model.Tenant{
		ID:           "tenant-acme",
		Slug:         "acme",
		Name:         "Acme Corporation",
		Subscription: model.TierFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user := &model.User{
		ID:        "user-1",
		Email:     "admin@acme.test",
		Role:      model.RoleAdmin,
		TenantID:  tenant.ID,
		CreatedAt: now,
	}

	store := memstore.New()
	store.AddTenant(tenant)
	store.AddUser(user)

	return &gateFixture{
		store:  store,
		tokens: token.NewService([]byte("gate-secret"), time.Hour),
		tenant: tenant,
		user:   user,
	}
}

// gateHandler captures the auth context the middleware injected, or reports
// that the request never reached the inner handler.
func gateHandler(reached *bool, captured **model.AuthContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		*captured = auth.AuthFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthRejectsUniformly(t *testing.T) {
	f := newGateFixture(t)

	valid, err := f.tokens.Issue(f.user, f.tenant)
	require.NoError(t, err)

	expired, err := f.tokens.IssueWithTTL(f.user, f.tenant, -time.Minute)
	require.NoError(t, err)

	otherSecret := token.NewService([]byte("some-other-secret"), time.Hour)
	forged, err := otherSecret.Issue(f.user, f.tenant)
	require.NoError(t, err)

	ghost := &model.User{ID: "user-ghost", Email: "ghost@acme.test", Role: model.RoleMember, TenantID: f.tenant.ID}
	f.store.AddUser(ghost)
	ghostToken, err := f.tokens.Issue(ghost, f.tenant)
	require.NoError(t, err)
	f.store.RemoveUser(ghost.ID)

	// Correctly signed but missing the exp claim. Must be a clean 401, not
	// a panic on the absent expiry.
	eternal, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, token.Claims{
		Email:            f.user.Email,
		Role:             f.user.Role,
		TenantID:         f.tenant.ID,
		TenantSlug:       f.tenant.Slug,
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: f.user.ID},
	}).SignedString([]byte("gate-secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing_header", ""},
		{"wrong_scheme", "Basic " + valid},
		{"bare_token_no_scheme", valid},
		{"garbage_token", "Bearer not-a-token"},
		{"wrong_secret", "Bearer " + forged},
		{"expired_token", "Bearer " + expired},
		{"no_expiry_token", "Bearer " + eternal},
		{"deleted_subject", "Bearer " + ghostToken},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			reached := false
			var captured *model.AuthContext
			gate := middleware.Auth(middleware.AuthConfig{
				Logger: discardLogger(),
				Store:  f.store,
				Tokens: f.tokens,
			})(gateHandler(&reached, &captured))

			req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
			if test.header != "" {
				req.Header.Set("Authorization", test.header)
			}
			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, req)

			require.False(t, reached)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			// Every rejection uses the same opaque body.
			require.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
		})
	}
}

func TestAuthRejectsTenantMismatch(t *testing.T) {
	f := newGateFixture(t)

	// Token minted against a tenant the user no longer belongs to.
	stale := &model.Tenant{ID: "tenant-old", Slug: "old", Name: "Old", Subscription: model.TierFree}
	raw, err := f.tokens.Issue(f.user, stale)
	require.NoError(t, err)

	reached := false
	var captured *model.AuthContext
	gate := middleware.Auth(middleware.AuthConfig{
		Logger: discardLogger(),
		Store:  f.store,
		Tokens: f.tokens,
	})(gateHandler(&reached, &captured))

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	require.False(t, reached)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthInjectsFreshTenantState(t *testing.T) {
	f := newGateFixture(t)

	raw, err := f.tokens.Issue(f.user, f.tenant)
	require.NoError(t, err)

	// Upgrade after issuance: the request must see the pro tier even though
	// the token predates it.
	_, err = f.store.UpgradeTenantToPro(context.Background(), f.tenant.ID)
	require.NoError(t, err)

	reached := false
	var captured *model.AuthContext
	gate := middleware.Auth(middleware.AuthConfig{
		Logger: discardLogger(),
		Store:  f.store,
		Tokens: f.tokens,
	})(gateHandler(&reached, &captured))

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	require.True(t, reached)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	require.Equal(t, f.user.ID, captured.UserID)
	require.Equal(t, f.user.Email, captured.Email)
	require.Equal(t, model.RoleAdmin, captured.Role)
	require.Equal(t, f.tenant.ID, captured.TenantID)
	require.Equal(t, "acme", captured.TenantSlug)
	require.Equal(t, model.TierPro, captured.TenantSubscription)
	require.WithinDuration(t, time.Now().Add(time.Hour), captured.TokenExpiresAt, 5*time.Second)
}
