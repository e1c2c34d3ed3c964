package audit

import (
	"strings"
	"testing"
	"time"
)

func TestValidateEventPayload(t *testing.T) {
	valid := EventPayload{
		TenantID:   "tenant-1",
		ActorID:    "user-1",
		Action:     ActionNoteCreated,
		TargetID:   "note-1",
		ActorHash:  "0123456789abcdef",
		OccurredAt: time.Now().UnixMilli(),
	}

	if err := ValidateEventPayload(valid); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *EventPayload)
	}{
		{"missing_tenant", func(p *EventPayload) { p.TenantID = "" }},
		{"tenant_too_long", func(p *EventPayload) { p.TenantID = strings.Repeat("x", 65) }},
		{"missing_actor", func(p *EventPayload) { p.ActorID = "" }},
		{"unknown_action", func(p *EventPayload) { p.Action = "note.exported" }},
		{"empty_action", func(p *EventPayload) { p.Action = "" }},
		{"target_too_long", func(p *EventPayload) { p.TargetID = strings.Repeat("x", 65) }},
		{"actor_hash_wrong_length", func(p *EventPayload) { p.ActorHash = "abc" }},
		{"actor_hash_not_hex", func(p *EventPayload) { p.ActorHash = "zzzzzzzzzzzzzzzz" }},
		{"missing_timestamp", func(p *EventPayload) { p.OccurredAt = 0 }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			payload := valid
			test.mutate(&payload)
			if err := ValidateEventPayload(payload); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestHashClientIP_Deterministic(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	hash1 := HashClientIP("192.168.1.100", at)
	hash2 := HashClientIP("192.168.1.100", at)

	if hash1 != hash2 {
		t.Error("same inputs should produce same hash")
	}
	if len(hash1) != 16 {
		t.Errorf("hash length = %d, want 16", len(hash1))
	}
}

func TestHashClientIP_StripsPort(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	if HashClientIP("192.168.1.100:54321", at) != HashClientIP("192.168.1.100", at) {
		t.Error("port should not affect the hash")
	}
}

func TestHashClientIP_DailyRotation(t *testing.T) {
	t.Parallel()

	day1 := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 1, 16, 12, 0, 0, 0, time.UTC)

	if HashClientIP("192.168.1.100", day1) == HashClientIP("192.168.1.100", day2) {
		t.Error("different days should produce different hashes to prevent cross-day correlation")
	}

	morning := time.Date(2026, 1, 15, 6, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 1, 15, 18, 0, 0, 0, time.UTC)
	if HashClientIP("192.168.1.100", morning) != HashClientIP("192.168.1.100", evening) {
		t.Error("same day should produce same hash regardless of time")
	}
}

func TestHashClientIP_Empty(t *testing.T) {
	t.Parallel()

	if got := HashClientIP("", time.Now()); got != "" {
		t.Errorf("empty address should hash to empty string, got %q", got)
	}
}
