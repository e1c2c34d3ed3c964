package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/noteplane/noteplane/internal/metrics"
	"github.com/noteplane/noteplane/internal/model"
	"github.com/noteplane/noteplane/internal/repository"
)

// TenantStore is the subset of the repository the subscription service needs.
type TenantStore interface {
	UpgradeTenantToPro(ctx context.Context, id string) (*model.Tenant, error)
}

// SubscriptionService transitions a tenant's plan tier. It sits off the
// request hot path; only tenant admins may invoke it.
type SubscriptionService struct {
	store   TenantStore
	metrics metrics.Recorder
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(store TenantStore, recorder metrics.Recorder) *SubscriptionService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SubscriptionService{store: store, metrics: recorder}
}

// Upgrade moves the actor's tenant to the pro tier.
// The actor must be an admin and the target slug must name their own tenant;
// an admin can never upgrade another tenant, even by guessing its slug.
// Upgrading an already-pro tenant is a no-op success.
func (s *SubscriptionService) Upgrade(ctx context.Context, actor *model.AuthContext, targetSlug string) (*model.Tenant, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if actor.TenantSlug != targetSlug {
		return nil, ErrForbidden
	}

	tenant, err := s.store.UpgradeTenantToPro(ctx, actor.TenantID)
	if err != nil {
		if errors.Is(err, repository.ErrTenantNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("upgrade tenant: %w", err)
	}

	s.metrics.IncTenantUpgraded()
	return tenant, nil
}
