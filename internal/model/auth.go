package model

import "time"

// AuthContext holds the authenticated request context.
// It is derived per request by the auth middleware and never persisted.
// Tenant display fields come from the freshly loaded tenant record, not
// from the token's embedded snapshot.
type AuthContext struct {
	UserID             string
	Email              string
	Role               string
	TenantID           string
	TenantSlug         string
	TenantName         string
	TenantSubscription string
	TokenExpiresAt     time.Time
}

// IsAdmin returns true if the authenticated subject has the admin role.
func (a *AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}
