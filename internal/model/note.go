package model

import "time"

// Note represents a tenant-owned note.
// TenantID is set exactly once at creation from the authenticated context
// and is never client-settable afterwards.
type Note struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Author fields are populated by a join on users for read paths.
	AuthorEmail string `json:"-"`
	AuthorRole  string `json:"-"`
}
