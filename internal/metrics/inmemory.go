package metrics

import (
	"sync"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	InferenceCalls      map[string]uint64 // keyed by "op/outcome"
	InferenceDurationNs int64
	UsersCreated        uint64
	UsersExisting       uint64
	RateLimitedRequests uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu                  sync.Mutex
	inferenceCalls      map[string]uint64
	inferenceDurationNs int64
	usersCreated        uint64
	usersExisting       uint64
	rateLimited         uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{inferenceCalls: make(map[string]uint64)}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make(map[string]uint64, len(m.inferenceCalls))
	for k, v := range m.inferenceCalls {
		calls[k] = v
	}

	return Snapshot{
		InferenceCalls:      calls,
		InferenceDurationNs: m.inferenceDurationNs,
		UsersCreated:        m.usersCreated,
		UsersExisting:       m.usersExisting,
		RateLimitedRequests: m.rateLimited,
	}
}

// ObserveInferenceCall counts a call by op and outcome.
func (m *InMemoryRecorder) ObserveInferenceCall(op, outcome string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inferenceCalls[op+"/"+outcome]++
	m.inferenceDurationNs += duration.Nanoseconds()
}

// IncUserSync counts a user sync by outcome.
func (m *InMemoryRecorder) IncUserSync(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if outcome == "created" {
		m.usersCreated++
	} else {
		m.usersExisting++
	}
}

// IncRateLimited counts a rejected request.
func (m *InMemoryRecorder) IncRateLimited() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateLimited++
}
