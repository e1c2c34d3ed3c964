package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/noteplane/noteplane/internal/model"
)

// ErrNoteNotFound is returned when a note does not exist within the
// requesting tenant. A note that exists under another tenant is
// indistinguishable from one that does not exist at all.
var ErrNoteNotFound = errors.New("note not found")

const noteColumns = `n.id, n.tenant_id, n.user_id, n.title, n.content, n.created_at, n.updated_at`

// CreateNoteWithinQuota atomically admits and inserts a note under the
// tenant's plan limit. The tenant row is locked for the duration of the
// transaction, so concurrent creates for the same tenant serialize on the
// count-check/insert pair; creates for different tenants never contend.
//
// Returns the admission result; the note is inserted only when admitted.
func (r *Repository) CreateNoteWithinQuota(ctx context.Context, note *model.Note) (*model.Admission, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var subscription string
	err = tx.QueryRow(ctx,
		`SELECT subscription FROM tenants WHERE id = $1 FOR UPDATE`,
		note.TenantID,
	).Scan(&subscription)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to lock tenant row: %w", err)
	}

	var count int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM notes WHERE tenant_id = $1`,
		note.TenantID,
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to count notes: %w", err)
	}

	admission := &model.Admission{
		Allowed:      true,
		CurrentCount: count,
		Limit:        -1,
	}
	if subscription != model.TierPro {
		admission.Limit = model.FreeTierNoteLimit
		admission.Allowed = count < model.FreeTierNoteLimit
	}

	if !admission.Allowed {
		// Rejected: roll back without inserting.
		return admission, nil
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO notes (id, tenant_id, user_id, title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		note.ID,
		note.TenantID,
		note.UserID,
		note.Title,
		note.Content,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit note creation: %w", err)
	}

	return admission, nil
}

// GetNoteByID retrieves a note by ID within the given tenant.
// The tenant predicate is part of the lookup itself, so a cross-tenant ID
// probe yields the same ErrNoteNotFound as a missing note.
func (r *Repository) GetNoteByID(ctx context.Context, tenantID, id string) (*model.Note, error) {
	query := `
		SELECT ` + noteColumns + `, u.email, u.role
		FROM notes n
		JOIN users u ON u.id = n.user_id
		WHERE n.id = $1 AND n.tenant_id = $2
	`

	note, err := scanNote(r.pool.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note by ID: %w", err)
	}

	return note, nil
}

// ListNotesByTenant retrieves all notes for a tenant, newest first.
func (r *Repository) ListNotesByTenant(ctx context.Context, tenantID string) ([]*model.Note, error) {
	query := `
		SELECT ` + noteColumns + `, u.email, u.role
		FROM notes n
		JOIN users u ON u.id = n.user_id
		WHERE n.tenant_id = $1
		ORDER BY n.created_at DESC, n.id DESC
	`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	return notes, nil
}

// UpdateNote updates a note's title and content as a single conditional
// mutation carrying the tenant predicate, closing the window between an
// existence check and the write under concurrent delete or update.
func (r *Repository) UpdateNote(ctx context.Context, tenantID, id, title, content string) error {
	query := `
		UPDATE notes
		SET title = $3, content = $4, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, tenantID, title, content)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// DeleteNote deletes a note as a single tenant-scoped conditional mutation.
func (r *Repository) DeleteNote(ctx context.Context, tenantID, id string) error {
	query := `DELETE FROM notes WHERE id = $1 AND tenant_id = $2`

	result, err := r.pool.Exec(ctx, query, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// scanNote scans a single row (note columns plus author email/role) into a
// Note model.
func scanNote(row pgx.Row) (*model.Note, error) {
	var note model.Note
	err := row.Scan(
		&note.ID,
		&note.TenantID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
		&note.AuthorEmail,
		&note.AuthorRole,
	)
	return &note, err
}
