package model

import "time"

// Role constants for the two-level role model.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents an account bound to a single tenant for its lifetime.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	Role         string    `json:"role"`
	TenantID     string    `json:"tenant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicProfile is the user representation returned by the login endpoint.
type PublicProfile struct {
	ID     string        `json:"id"`
	Email  string        `json:"email"`
	Role   string        `json:"role"`
	Tenant TenantProfile `json:"tenant"`
}

// TenantProfile is the public view of a tenant.
type TenantProfile struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Subscription string `json:"subscription"`
}

// ToProfile builds the public profile for a user and their tenant.
// The tenant argument must be the freshly loaded record, never a token snapshot.
func (u *User) ToProfile(tenant *Tenant) PublicProfile {
	return PublicProfile{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
		Tenant: TenantProfile{
			ID:           tenant.ID,
			Slug:         tenant.Slug,
			Name:         tenant.Name,
			Subscription: tenant.Subscription,
		},
	}
}
