package anticheat

import (
	"sync"
	"time"
)

// SuspicionRecord is an append-only audit entry describing one
// suspicion-worthy event with its raw triggering data. Records are never
// mutated, only pruned by age or by the size cap.
type SuspicionRecord struct {
	PlayerID  string                 `json:"playerId"`
	Reason    string                 `json:"reason"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// auditLog keeps suspicion records for operator review. It is bounded two
// ways: records older than the configured age are pruned periodically, and
// maxEntries is a hard cap so a violation storm cannot exhaust memory
// between pruning runs.
type auditLog struct {
	mu         sync.Mutex
	records    []SuspicionRecord
	maxEntries int
}

func newAuditLog(maxEntries int) *auditLog {
	return &auditLog{
		maxEntries: maxEntries,
	}
}

func (a *auditLog) append(record SuspicionRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.records = append(a.records, record)

	if overflow := len(a.records) - a.maxEntries; overflow > 0 {
		a.records = append(a.records[:0], a.records[overflow:]...)
	}
}

// recent returns copies of the most recent limit records, oldest first.
func (a *auditLog) recent(limit int) []SuspicionRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	if limit <= 0 || limit > len(a.records) {
		limit = len(a.records)
	}

	out := make([]SuspicionRecord, limit)
	copy(out, a.records[len(a.records)-limit:])

	return out
}

// prune removes records older than maxAge and returns how many were
// dropped. Records are appended in time order, so it is enough to find the
// first survivor.
func (a *auditLog) prune(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	a.mu.Lock()
	defer a.mu.Unlock()

	keepFrom := len(a.records)

	for i, record := range a.records {
		if record.Timestamp.After(cutoff) {
			keepFrom = i

			break
		}
	}

	if keepFrom == 0 {
		return 0
	}

	a.records = append(a.records[:0], a.records[keepFrom:]...)

	return keepFrom
}

func (a *auditLog) size() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.records)
}
