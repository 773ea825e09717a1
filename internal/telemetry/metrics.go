// Package telemetry collects local search query metrics.
// All data stays in process memory - no external reporting.
package telemetry

import (
	"sync"
	"time"
)

// LatencyBucket represents a latency histogram bucket.
type LatencyBucket string

const (
	BucketP10   LatencyBucket = "p10"   // <10ms
	BucketP50   LatencyBucket = "p50"   // 10-50ms
	BucketP100  LatencyBucket = "p100"  // 50-100ms
	BucketP500  LatencyBucket = "p500"  // 100-500ms
	BucketP1000 LatencyBucket = "p1000" // >=500ms
)

// LatencyToBucket converts a duration to its histogram bucket.
func LatencyToBucket(d time.Duration) LatencyBucket {
	ms := d.Milliseconds()
	switch {
	case ms < 10:
		return BucketP10
	case ms < 50:
		return BucketP50
	case ms < 100:
		return BucketP100
	case ms < 500:
		return BucketP500
	default:
		return BucketP1000
	}
}

// QueryEvent records one search invocation.
type QueryEvent struct {
	Username    string        `json:"username"`
	Query       string        `json:"query"`
	Source      string        `json:"source"`
	ResultCount int           `json:"result_count"`
	Latency     time.Duration `json:"-"`
	Timestamp   time.Time     `json:"timestamp"`
}

// IsZeroResult reports whether the query returned nothing.
func (e QueryEvent) IsZeroResult() bool {
	return e.ResultCount == 0
}

// DefaultRecentSize is the number of recent queries kept for inspection.
const DefaultRecentSize = 50

// Metrics aggregates query events.
type Metrics struct {
	mu          sync.Mutex
	total       int
	zeroResults int
	bySource    map[string]int
	byBucket    map[LatencyBucket]int

	// Fixed-size ring of recent events, oldest overwritten first.
	recent []QueryEvent
	head   int
	size   int
}

// NewMetrics creates a Metrics collector keeping recentSize recent queries.
func NewMetrics(recentSize int) *Metrics {
	if recentSize <= 0 {
		recentSize = DefaultRecentSize
	}
	return &Metrics{
		bySource: make(map[string]int),
		byBucket: make(map[LatencyBucket]int),
		recent:   make([]QueryEvent, recentSize),
	}
}

// Record adds a query event to the aggregates.
func (m *Metrics) Record(e QueryEvent) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.total++
	if e.IsZeroResult() {
		m.zeroResults++
	}
	m.bySource[e.Source]++
	m.byBucket[LatencyToBucket(e.Latency)]++

	m.recent[m.head] = e
	m.head = (m.head + 1) % len(m.recent)
	if m.size < len(m.recent) {
		m.size++
	}
}

// Snapshot is a point-in-time view of the aggregates.
type Snapshot struct {
	TotalQueries int                   `json:"total_queries"`
	ZeroResults  int                   `json:"zero_results"`
	BySource     map[string]int        `json:"by_source"`
	Latency      map[LatencyBucket]int `json:"latency"`
	Recent       []QueryEvent          `json:"recent"`
}

// Snapshot returns a copy of the current aggregates. Recent queries are
// ordered oldest first.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		TotalQueries: m.total,
		ZeroResults:  m.zeroResults,
		BySource:     make(map[string]int, len(m.bySource)),
		Latency:      make(map[LatencyBucket]int, len(m.byBucket)),
		Recent:       make([]QueryEvent, 0, m.size),
	}
	for k, v := range m.bySource {
		snap.BySource[k] = v
	}
	for k, v := range m.byBucket {
		snap.Latency[k] = v
	}

	start := 0
	if m.size == len(m.recent) {
		start = m.head
	}
	for i := 0; i < m.size; i++ {
		snap.Recent = append(snap.Recent, m.recent[(start+i)%len(m.recent)])
	}

	return snap
}
