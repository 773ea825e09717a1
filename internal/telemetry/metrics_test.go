package telemetry

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatencyToBucket(t *testing.T) {
	tests := []struct {
		latency time.Duration
		want    LatencyBucket
	}{
		{5 * time.Millisecond, BucketP10},
		{25 * time.Millisecond, BucketP50},
		{75 * time.Millisecond, BucketP100},
		{250 * time.Millisecond, BucketP500},
		{2 * time.Second, BucketP1000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LatencyToBucket(tt.latency), "latency %v", tt.latency)
	}
}

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics(10)

	m.Record(QueryEvent{
		Username:    "octocat",
		Query:       "python",
		Source:      "keyword",
		ResultCount: 3,
		Latency:     5 * time.Millisecond,
	})
	m.Record(QueryEvent{
		Username:    "octocat",
		Query:       "nothing here",
		Source:      "openai/text-embedding-3-small",
		ResultCount: 0,
		Latency:     120 * time.Millisecond,
	})

	snap := m.Snapshot()
	assert.Equal(t, 2, snap.TotalQueries)
	assert.Equal(t, 1, snap.ZeroResults)
	assert.Equal(t, 1, snap.BySource["keyword"])
	assert.Equal(t, 1, snap.BySource["openai/text-embedding-3-small"])
	assert.Equal(t, 1, snap.Latency[BucketP10])
	assert.Equal(t, 1, snap.Latency[BucketP500])
	require.Len(t, snap.Recent, 2)
	assert.Equal(t, "python", snap.Recent[0].Query)
	assert.False(t, snap.Recent[0].Timestamp.IsZero())
}

func TestMetricsRecentRingEvictsOldest(t *testing.T) {
	m := NewMetrics(3)

	for i := 0; i < 5; i++ {
		m.Record(QueryEvent{Query: fmt.Sprintf("q%d", i), Source: "keyword"})
	}

	snap := m.Snapshot()
	assert.Equal(t, 5, snap.TotalQueries)
	require.Len(t, snap.Recent, 3)
	assert.Equal(t, "q2", snap.Recent[0].Query)
	assert.Equal(t, "q4", snap.Recent[2].Query)
}

func TestNewMetricsDefaultSize(t *testing.T) {
	m := NewMetrics(0)
	m.Record(QueryEvent{Query: "q", Source: "keyword"})
	assert.Len(t, m.Snapshot().Recent, 1)
}
