package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noteplane/noteplane/internal/model"
	"github.com/noteplane/noteplane/internal/service"
)

func TestUpgradeByAdmin(t *testing.T) {
	f := newFixture(t)
	svc := service.NewSubscriptionService(f.store, nil)
	ctx := context.Background()

	tenant, err := svc.Upgrade(ctx, f.actor(f.acmeAdmin, f.acme), "acme")
	require.NoError(t, err)
	require.Equal(t, model.TierPro, tenant.Subscription)

	stored, err := f.store.GetTenantByID(ctx, f.acme.ID)
	require.NoError(t, err)
	require.Equal(t, model.TierPro, stored.Subscription)
}

func TestUpgradeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := service.NewSubscriptionService(f.store, nil)
	ctx := context.Background()
	actor := f.actor(f.acmeAdmin, f.acme)

	_, err := svc.Upgrade(ctx, actor, "acme")
	require.NoError(t, err)

	// Second call is a no-op success, not an error.
	tenant, err := svc.Upgrade(ctx, actor, "acme")
	require.NoError(t, err)
	require.Equal(t, model.TierPro, tenant.Subscription)
}

func TestUpgradeForbidden(t *testing.T) {
	f := newFixture(t)
	svc := service.NewSubscriptionService(f.store, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		actor *model.AuthContext
		slug  string
	}{
		{"member_role", f.actor(f.acmeMember, f.acme), "acme"},
		{"admin_of_other_tenant", f.actor(f.globexAdmin, f.globex), "acme"},
		{"admin_wrong_slug", f.actor(f.acmeAdmin, f.acme), "globex"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.Upgrade(ctx, test.actor, test.slug)
			require.True(t, errors.Is(err, service.ErrForbidden))
		})
	}

	// No denial may have changed either tenant's tier.
	for _, id := range []string{f.acme.ID, f.globex.ID} {
		tenant, err := f.store.GetTenantByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, model.TierFree, tenant.Subscription)
	}
}
