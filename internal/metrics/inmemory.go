package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	LoginSuccesses       uint64            `json:"login_successes"`
	LoginFailures        uint64            `json:"login_failures"`
	LoginsThrottled      uint64            `json:"logins_throttled"`
	AuthRejections       map[string]uint64 `json:"auth_rejections"`
	NotesCreated         uint64            `json:"notes_created"`
	NotesUpdated         uint64            `json:"notes_updated"`
	NotesDeleted         uint64            `json:"notes_deleted"`
	QuotaDenials         uint64            `json:"quota_denials"`
	TenantUpgrades       uint64            `json:"tenant_upgrades"`
	AuditPublished       map[string]uint64 `json:"audit_published"`
	AuditProcessed       map[string]uint64 `json:"audit_processed"`
	AuditBatchCount      uint64            `json:"audit_batch_count"`
	AuditBatchEventTotal uint64            `json:"audit_batch_event_total"`
	AuditBatchTotalNs    int64             `json:"audit_batch_total_ns"`
	AuditQueueDepth      int64             `json:"audit_queue_depth"`
}

// InMemoryRecorder stores metrics in memory. It backs the metrics endpoint
// and the tests.
type InMemoryRecorder struct {
	loginSuccesses       uint64
	loginFailures        uint64
	loginsThrottled      uint64
	notesCreated         uint64
	notesUpdated         uint64
	notesDeleted         uint64
	quotaDenials         uint64
	tenantUpgrades       uint64
	auditBatchCount      uint64
	auditBatchEventTotal uint64
	auditBatchTotalNs    int64
	auditQueueDepth      int64

	mu             sync.Mutex
	authRejections map[string]uint64
	auditPublished map[string]uint64
	auditProcessed map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		authRejections: make(map[string]uint64),
		auditPublished: make(map[string]uint64),
		auditProcessed: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		LoginSuccesses:       atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:        atomic.LoadUint64(&m.loginFailures),
		LoginsThrottled:      atomic.LoadUint64(&m.loginsThrottled),
		AuthRejections:       copyCounters(m.authRejections),
		NotesCreated:         atomic.LoadUint64(&m.notesCreated),
		NotesUpdated:         atomic.LoadUint64(&m.notesUpdated),
		NotesDeleted:         atomic.LoadUint64(&m.notesDeleted),
		QuotaDenials:         atomic.LoadUint64(&m.quotaDenials),
		TenantUpgrades:       atomic.LoadUint64(&m.tenantUpgrades),
		AuditPublished:       copyCounters(m.auditPublished),
		AuditProcessed:       copyCounters(m.auditProcessed),
		AuditBatchCount:      atomic.LoadUint64(&m.auditBatchCount),
		AuditBatchEventTotal: atomic.LoadUint64(&m.auditBatchEventTotal),
		AuditBatchTotalNs:    atomic.LoadInt64(&m.auditBatchTotalNs),
		AuditQueueDepth:      atomic.LoadInt64(&m.auditQueueDepth),
	}
}

func copyCounters(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// IncLoginSuccess increments the successful-login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed-login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncLoginThrottled increments the rate-limited-login counter.
func (m *InMemoryRecorder) IncLoginThrottled() {
	atomic.AddUint64(&m.loginsThrottled, 1)
}

// IncAuthRejected increments the gate rejection counter for a reason.
func (m *InMemoryRecorder) IncAuthRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authRejections[reason]++
}

// IncNoteCreated increments the note created counter.
func (m *InMemoryRecorder) IncNoteCreated() {
	atomic.AddUint64(&m.notesCreated, 1)
}

// IncNoteUpdated increments the note updated counter.
func (m *InMemoryRecorder) IncNoteUpdated() {
	atomic.AddUint64(&m.notesUpdated, 1)
}

// IncNoteDeleted increments the note deleted counter.
func (m *InMemoryRecorder) IncNoteDeleted() {
	atomic.AddUint64(&m.notesDeleted, 1)
}

// IncQuotaDenied increments the quota denial counter.
func (m *InMemoryRecorder) IncQuotaDenied() {
	atomic.AddUint64(&m.quotaDenials, 1)
}

// IncTenantUpgraded increments the subscription upgrade counter.
func (m *InMemoryRecorder) IncTenantUpgraded() {
	atomic.AddUint64(&m.tenantUpgrades, 1)
}

// IncAuditEventPublished increments the audit publish counter for a status.
func (m *InMemoryRecorder) IncAuditEventPublished(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auditPublished[status]++
}

// IncAuditEventProcessed increments the audit processing counter for a status.
func (m *InMemoryRecorder) IncAuditEventProcessed(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auditProcessed[status]++
}

// ObserveAuditBatchSize records a processed batch size.
func (m *InMemoryRecorder) ObserveAuditBatchSize(size int) {
	atomic.AddUint64(&m.auditBatchCount, 1)
	atomic.AddUint64(&m.auditBatchEventTotal, uint64(size))
}

// ObserveAuditBatchDuration records time spent processing a batch.
func (m *InMemoryRecorder) ObserveAuditBatchDuration(duration time.Duration) {
	atomic.AddInt64(&m.auditBatchTotalNs, duration.Nanoseconds())
}

// SetAuditQueueDepth records the current audit stream backlog.
func (m *InMemoryRecorder) SetAuditQueueDepth(depth int64) {
	atomic.StoreInt64(&m.auditQueueDepth, depth)
}
