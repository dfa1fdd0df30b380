package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for requests, errors, and
// complaint lifecycle outcomes.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[string]int64
	requestDur    map[string]time.Duration
	errorCount    map[string]int64
	outcomeCount  map[string]int64
	notifyAttempt int64
	notifyFailure int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		requestDur:   make(map[string]time.Duration),
		errorCount:   make(map[string]int64),
		outcomeCount: make(map[string]int64),
	}
}

// RecordRequest increments the request counter and accumulates latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestDur[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordOutcome counts lifecycle operation results by operation and code.
func (m *Metrics) RecordOutcome(operation, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomeCount[operation+"|"+code]++
}

// RecordNotification counts notification attempts and failures.
func (m *Metrics) RecordNotification(failed bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifyAttempt++
	if failed {
		m.notifyFailure++
	}
}

// NotificationCounts returns attempt and failure totals.
func (m *Metrics) NotificationCounts() (attempts, failures int64) {
	if m == nil {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifyAttempt, m.notifyFailure
}

// RequestStats aggregates requests sharing a path|method|status key.
type RequestStats struct {
	Count       int64 `json:"count"`
	TotalMillis int64 `json:"total_millis"`
}

// Snapshot copies the request, error, and outcome counters for reporting.
func (m *Metrics) Snapshot() (requests map[string]RequestStats, errors, outcomes map[string]int64) {
	requests = make(map[string]RequestStats)
	errors = make(map[string]int64)
	outcomes = make(map[string]int64)
	if m == nil {
		return requests, errors, outcomes
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, count := range m.requestCount {
		requests[key] = RequestStats{
			Count:       count,
			TotalMillis: m.requestDur[key].Milliseconds(),
		}
	}
	for key, count := range m.errorCount {
		errors[key] = count
	}
	for key, count := range m.outcomeCount {
		outcomes[key] = count
	}
	return requests, errors, outcomes
}
