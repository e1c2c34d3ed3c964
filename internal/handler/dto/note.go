// Package dto defines request and response shapes for the HTTP API.
package dto

import (
	"time"

	"github.com/noteplane/noteplane/internal/model"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token and the public profile.
type LoginResponse struct {
	Token string              `json:"token"`
	User  model.PublicProfile `json:"user"`
}

// NoteRequest is the body of POST /api/notes and PUT /api/notes/{id}.
// Tenant and author identifiers are never read from the payload; they come
// from the authenticated context.
type NoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// NoteAuthor is the embedded author view on note responses.
type NoteAuthor struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NoteResponse is the API representation of a note.
type NoteResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	User      NoteAuthor `json:"user"`
}

// ToNoteResponse converts a note model to its API representation.
func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		UserID:    note.UserID,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		User: NoteAuthor{
			Email: note.AuthorEmail,
			Role:  note.AuthorRole,
		},
	}
}

// ToNoteResponses converts a slice of notes.
func ToNoteResponses(notes []*model.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, note := range notes {
		out = append(out, ToNoteResponse(note))
	}
	return out
}

// UpgradeResponse is the body returned by the subscription upgrade endpoint.
type UpgradeResponse struct {
	Message string              `json:"message"`
	Tenant  model.TenantProfile `json:"tenant"`
}
