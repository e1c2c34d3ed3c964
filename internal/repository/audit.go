package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/noteplane/noteplane/internal/model"
)

// BulkInsertAuditEvents inserts a batch of audit events. The ON CONFLICT
// clause on event_id makes replays after a worker crash idempotent.
func (r *Repository) BulkInsertAuditEvents(ctx context.Context, events []*model.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	query := `
		INSERT INTO audit_events (
			id, event_id, tenant_id, actor_id, action, target_id,
			actor_hash, occurred_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (event_id) DO NOTHING
	`

	for _, event := range events {
		batch.Queue(query,
			event.ID,
			event.EventID,
			event.TenantID,
			event.ActorID,
			event.Action,
			nullableString(event.TargetID),
			nullableString(event.ActorHash),
			event.OccurredAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(events); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert event %d: %w", i, err)
		}
	}

	return nil
}

// ListAuditEventsByTenant returns a tenant's recent audit trail, newest
// first, capped at limit rows.
func (r *Repository) ListAuditEventsByTenant(ctx context.Context, tenantID string, limit int) ([]*model.AuditEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, event_id, tenant_id, actor_id, action,
		       COALESCE(target_id, ''), COALESCE(actor_hash, ''), occurred_at
		FROM audit_events
		WHERE tenant_id = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2
	`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	events := make([]*model.AuditEvent, 0)
	for rows.Next() {
		event := &model.AuditEvent{}
		if err := rows.Scan(
			&event.ID,
			&event.EventID,
			&event.TenantID,
			&event.ActorID,
			&event.Action,
			&event.TargetID,
			&event.ActorHash,
			&event.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// nullableString maps empty strings to SQL NULL.
func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
