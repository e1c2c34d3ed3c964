package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noteplane/noteplane/internal/auth"
	"github.com/noteplane/noteplane/internal/model"
	"github.com/noteplane/noteplane/internal/repository/memstore"
)

// fixture holds the seeded store and the accounts the tests act as.
type fixture struct {
	store *memstore.Store

	acme   *model.Tenant
	globex *model.Tenant

	acmeAdmin    *model.User
	acmeMember   *model.User
	globexAdmin  *model.User
	passwordHash string
}

const testPassword = "password"

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	f := &fixture{
		store:        memstore.New(),
		passwordHash: hash,
	}

	now := time.Now().UTC()

	f.acme = &model.Tenant{
		ID:           "tenant-acme",
		Slug:         "acme",
		Name:         "Acme Corporation",
		Subscription: model.TierFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.globex = &model.Tenant{
		ID:           "tenant-globex",
		Slug:         "globex",
		Name:         "Globex Corporation",
		Subscription: model.TierFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.store.AddTenant(f.acme)
	f.store.AddTenant(f.globex)

	f.acmeAdmin = f.addUser("user-acme-admin", "admin@acme.test", model.RoleAdmin, f.acme)
	f.acmeMember = f.addUser("user-acme-member", "user@acme.test", model.RoleMember, f.acme)
	f.globexAdmin = f.addUser("user-globex-admin", "admin@globex.test", model.RoleAdmin, f.globex)

	return f
}

func (f *fixture) addUser(id, email, role string, tenant *model.Tenant) *model.User {
	user := &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: f.passwordHash,
		Role:         role,
		TenantID:     tenant.ID,
		CreatedAt:    time.Now().UTC(),
	}
	f.store.AddUser(user)
	return user
}

// actor builds the auth context the middleware would derive for a user.
func (f *fixture) actor(user *model.User, tenant *model.Tenant) *model.AuthContext {
	return &model.AuthContext{
		UserID:             user.ID,
		Email:              user.Email,
		Role:               user.Role,
		TenantID:           tenant.ID,
		TenantSlug:         tenant.Slug,
		TenantName:         tenant.Name,
		TenantSubscription: tenant.Subscription,
		TokenExpiresAt:     time.Now().Add(time.Hour),
	}
}
