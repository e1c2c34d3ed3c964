package model

import "time"

// AuditEvent is a persisted record of a security-relevant action.
// EventID is the stream message ID and doubles as the idempotency key, so
// re-processing a batch after a crash cannot duplicate rows.
type AuditEvent struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	TenantID   string    `json:"tenant_id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	TargetID   string    `json:"target_id,omitempty"`
	ActorHash  string    `json:"actor_hash,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
