// Package model defines domain entities for the application.
package model

import "time"

// Subscription tier constants.
const (
	TierFree = "free"
	TierPro  = "pro"
)

// FreeTierNoteLimit is the maximum number of notes a free-tier tenant may hold.
const FreeTierNoteLimit = 3

// Tenant represents an isolated organizational boundary.
// All users and notes belong to exactly one tenant.
type Tenant struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Subscription string    `json:"subscription"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsPro returns true if the tenant is on the pro tier.
func (t *Tenant) IsPro() bool {
	return t.Subscription == TierPro
}

// NoteLimit returns the maximum note count for the tenant's tier.
// A negative value means unbounded.
func (t *Tenant) NoteLimit() int {
	if t.IsPro() {
		return -1
	}
	return FreeTierNoteLimit
}

// Admission is the result of a quota admission check for a create operation.
type Admission struct {
	Allowed      bool `json:"allowed"`
	CurrentCount int  `json:"current_count"`
	Limit        int  `json:"limit"`
}
