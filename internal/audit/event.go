// Package audit captures security-relevant actions as events and processes
// them asynchronously, off the request hot path.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"time"
)

// Actions recorded in the audit trail.
const (
	ActionLogin          = "auth.login"
	ActionNoteCreated    = "note.created"
	ActionNoteUpdated    = "note.updated"
	ActionNoteDeleted    = "note.deleted"
	ActionTenantUpgraded = "tenant.upgraded"
)

const (
	maxIDLength     = 64
	actorHashLength = 16
)

// knownActions is the closed set of recordable actions.
var knownActions = map[string]struct{}{
	ActionLogin:          {},
	ActionNoteCreated:    {},
	ActionNoteUpdated:    {},
	ActionNoteDeleted:    {},
	ActionTenantUpgraded: {},
}

// EventPayload is the compressed event format for the stream.
type EventPayload struct {
	TenantID   string `json:"tid"`
	ActorID    string `json:"aid"`
	Action     string `json:"a"`
	TargetID   string `json:"tgt,omitempty"`
	ActorHash  string `json:"ah,omitempty"` // privacy-safe network identifier
	OccurredAt int64  `json:"t"`            // Unix milliseconds
}

// ValidateEventPayload checks an event before it enters the pipeline.
// Invalid events are dead-lettered rather than persisted.
func ValidateEventPayload(payload EventPayload) error {
	if payload.TenantID == "" {
		return fmt.Errorf("tenant id is required")
	}
	if len(payload.TenantID) > maxIDLength {
		return fmt.Errorf("tenant id too long")
	}
	if payload.ActorID == "" {
		return fmt.Errorf("actor id is required")
	}
	if len(payload.ActorID) > maxIDLength {
		return fmt.Errorf("actor id too long")
	}
	if _, ok := knownActions[payload.Action]; !ok {
		return fmt.Errorf("unknown action %q", payload.Action)
	}
	if len(payload.TargetID) > maxIDLength {
		return fmt.Errorf("target id too long")
	}
	if payload.ActorHash != "" && (len(payload.ActorHash) != actorHashLength || !isHex(payload.ActorHash)) {
		return fmt.Errorf("actor hash must be %d hex chars", actorHashLength)
	}
	if payload.OccurredAt <= 0 {
		return fmt.Errorf("occurred_at must be set")
	}
	return nil
}

// HashClientIP creates a privacy-safe network identifier for the audit
// trail. Uses SHA256(IP + daily_salt) truncated to 16 hex chars; the salt
// rotates at midnight UTC so events cannot be correlated across days.
func HashClientIP(remoteAddr string, at time.Time) string {
	if remoteAddr == "" {
		return ""
	}
	ip := remoteAddr
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		ip = host
	}

	dailySalt := fmt.Sprintf("noteplane:%s", at.UTC().Format("2006-01-02"))
	hash := sha256.Sum256([]byte(ip + dailySalt))
	return hex.EncodeToString(hash[:])[:actorHashLength]
}

func isHex(value string) bool {
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F') {
			continue
		}
		return false
	}
	return true
}
