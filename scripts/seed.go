// Command seed provisions the demo tenants and users.
//
// Two free-tier tenants (acme, globex) each get an admin and a member
// account, all with the password "password". Safe to re-run: existing
// slugs and emails are skipped.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/noteplane/noteplane/internal/auth"
	"github.com/noteplane/noteplane/internal/model"
	"github.com/noteplane/noteplane/internal/repository"
)

type seedUser struct {
	email string
	role  string
}

type seedTenant struct {
	slug  string
	name  string
	users []seedUser
}

var seedData = []seedTenant{
	{
		slug: "acme",
		name: "Acme Corporation",
		users: []seedUser{
			{email: "admin@acme.test", role: model.RoleAdmin},
			{email: "user@acme.test", role: model.RoleMember},
		},
	},
	{
		slug: "globex",
		name: "Globex Corporation",
		users: []seedUser{
			{email: "admin@globex.test", role: model.RoleAdmin},
			{email: "user@globex.test", role: model.RoleMember},
		},
	},
}

func main() {
	_ = godotenv.Load()

	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		password    = flag.String("password", "password", "Password for all seeded users")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	passwordHash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	for _, st := range seedData {
		tenantID, err := ensureTenant(ctx, repo, st)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		for _, su := range st.users {
			if err := ensureUser(ctx, repo, tenantID, su, passwordHash); err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				os.Exit(1)
			}
		}
	}

	fmt.Println("database seeded successfully")
}

func ensureTenant(ctx context.Context, repo *repository.Repository, st seedTenant) (string, error) {
	existing, err := repo.GetTenantBySlug(ctx, st.slug)
	if err == nil {
		fmt.Printf("tenant %q already exists, skipping\n", st.slug)
		return existing.ID, nil
	}
	if !errors.Is(err, repository.ErrTenantNotFound) {
		return "", fmt.Errorf("lookup tenant %q: %w", st.slug, err)
	}

	now := time.Now().UTC()
	tenant := &model.Tenant{
		ID:           uuid.New().String(),
		Slug:         st.slug,
		Name:         st.name,
		Subscription: model.TierFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := repo.CreateTenant(ctx, tenant); err != nil {
		return "", fmt.Errorf("create tenant %q: %w", st.slug, err)
	}

	fmt.Printf("created tenant %q (%s)\n", st.slug, tenant.ID)
	return tenant.ID, nil
}

func ensureUser(ctx context.Context, repo *repository.Repository, tenantID string, su seedUser, passwordHash string) error {
	_, err := repo.GetUserByEmail(ctx, su.email)
	if err == nil {
		fmt.Printf("user %q already exists, skipping\n", su.email)
		return nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return fmt.Errorf("lookup user %q: %w", su.email, err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        su.email,
		PasswordHash: passwordHash,
		Role:         su.role,
		TenantID:     tenantID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := repo.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create user %q: %w", su.email, err)
	}

	fmt.Printf("created user %q (%s)\n", su.email, su.role)
	return nil
}
