package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noteplane/noteplane/internal/model"
	"github.com/noteplane/noteplane/internal/service"
	"github.com/noteplane/noteplane/internal/token"
)

func TestLoginSuccess(t *testing.T) {
	f := newFixture(t)
	tokens := token.NewService([]byte("test-secret"), time.Hour)
	svc := service.NewAuthService(f.store, tokens, nil)

	result, err := svc.Login(context.Background(), "admin@acme.test", testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	// The issued token carries the user's identity and tenant claims.
	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, f.acmeAdmin.ID, claims.Subject)
	require.Equal(t, f.acme.ID, claims.TenantID)
	require.Equal(t, "acme", claims.TenantSlug)

	// The profile reflects the live tenant record.
	require.Equal(t, "admin@acme.test", result.User.Email)
	require.Equal(t, model.RoleAdmin, result.User.Role)
	require.Equal(t, "Acme Corporation", result.User.Tenant.Name)
	require.Equal(t, model.TierFree, result.User.Tenant.Subscription)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFixture(t)
	tokens := token.NewService([]byte("test-secret"), time.Hour)
	svc := service.NewAuthService(f.store, tokens, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown_email", "nobody@acme.test", testPassword},
		{"wrong_password", "admin@acme.test", "wrong"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Login(ctx, test.email, test.password)
			require.True(t, errors.Is(err, service.ErrInvalidCredentials))
		})
	}
}
