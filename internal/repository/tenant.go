package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/noteplane/noteplane/internal/model"
)

// Common errors for tenant repository operations.
var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrSlugExists     = errors.New("slug already exists")
)

const tenantColumns = `id, slug, name, subscription, created_at, updated_at`

// CreateTenant inserts a new tenant. Used by provisioning and seeding.
func (r *Repository) CreateTenant(ctx context.Context, tenant *model.Tenant) error {
	query := `
		INSERT INTO tenants (id, slug, name, subscription, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		tenant.ID,
		tenant.Slug,
		tenant.Name,
		tenant.Subscription,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlugExists
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	return nil
}

// GetTenantByID retrieves a tenant by its ID.
func (r *Repository) GetTenantByID(ctx context.Context, id string) (*model.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`

	tenant, err := scanTenant(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant by ID: %w", err)
	}

	return tenant, nil
}

// GetTenantBySlug retrieves a tenant by its unique slug.
func (r *Repository) GetTenantBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1`

	tenant, err := scanTenant(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant by slug: %w", err)
	}

	return tenant, nil
}

// UpgradeTenantToPro sets the tenant's subscription to pro and returns the
// updated row. Upgrading an already-pro tenant is a no-op success, so the
// operation is idempotent. No downgrade path exists.
func (r *Repository) UpgradeTenantToPro(ctx context.Context, id string) (*model.Tenant, error) {
	query := `
		UPDATE tenants
		SET subscription = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + tenantColumns

	tenant, err := scanTenant(r.pool.QueryRow(ctx, query, id, model.TierPro))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to upgrade tenant: %w", err)
	}

	return tenant, nil
}

// scanTenant scans a single row into a Tenant model.
func scanTenant(row pgx.Row) (*model.Tenant, error) {
	var tenant model.Tenant
	err := row.Scan(
		&tenant.ID,
		&tenant.Slug,
		&tenant.Name,
		&tenant.Subscription,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	return &tenant, err
}
