// Package metrics provides in-memory performance instrumentation for sv.
//
// Hot paths (generation, filtering, sorting, chunk mounting, rendering)
// record timings into atomic counters; the UI status bar and robot output
// read them back. Collection is enabled by default and can be disabled via
// SV_METRICS=0.
//
// Usage:
//
//	func expensiveOperation() {
//	    defer metrics.Timer(metrics.FilterLatency)()
//	    // ... operation code
//	}
package metrics

import (
	"os"
	"sync/atomic"
	"time"
)

var enabled = os.Getenv("SV_METRICS") != "0"

// Enabled returns whether metrics collection is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of metrics collection.
func SetEnabled(e bool) {
	enabled = e
}

// TimingMetric tracks timing statistics for a named operation.
// All methods are thread-safe using atomic operations.
type TimingMetric struct {
	name    string
	count   atomic.Int64
	totalNs atomic.Int64
	lastNs  atomic.Int64
	maxNs   atomic.Int64
}

func newTimingMetric(name string) *TimingMetric {
	return &TimingMetric{name: name}
}

// Record records a single timing measurement.
func (m *TimingMetric) Record(d time.Duration) {
	if !enabled {
		return
	}
	ns := d.Nanoseconds()
	m.count.Add(1)
	m.totalNs.Add(ns)
	m.lastNs.Store(ns)
	for {
		old := m.maxNs.Load()
		if ns <= old || m.maxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// Name returns the metric name.
func (m *TimingMetric) Name() string { return m.name }

// Count returns the number of recorded measurements.
func (m *TimingMetric) Count() int64 { return m.count.Load() }

// Last returns the most recently recorded duration.
func (m *TimingMetric) Last() time.Duration {
	return time.Duration(m.lastNs.Load())
}

// LastMs returns the most recent measurement in milliseconds.
func (m *TimingMetric) LastMs() float64 {
	return float64(m.lastNs.Load()) / 1e6
}

// Stats returns all timing statistics at once.
func (m *TimingMetric) Stats() TimingStats {
	count := m.count.Load()
	totalNs := m.totalNs.Load()
	var avgNs int64
	if count > 0 {
		avgNs = totalNs / count
	}
	return TimingStats{
		Name:    m.name,
		Count:   count,
		LastMs:  float64(m.lastNs.Load()) / 1e6,
		AvgMs:   float64(avgNs) / 1e6,
		MaxMs:   float64(m.maxNs.Load()) / 1e6,
		TotalMs: float64(totalNs) / 1e6,
	}
}

// Reset clears all recorded measurements.
func (m *TimingMetric) Reset() {
	m.count.Store(0)
	m.totalNs.Store(0)
	m.lastNs.Store(0)
	m.maxNs.Store(0)
}

// TimingStats holds a snapshot of timing statistics.
type TimingStats struct {
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	LastMs  float64 `json:"last_ms"`
	AvgMs   float64 `json:"avg_ms"`
	MaxMs   float64 `json:"max_ms"`
	TotalMs float64 `json:"total_ms"`
}

// Timer returns a function that records elapsed time when called.
// Use with defer for automatic timing.
func Timer(m *TimingMetric) func() {
	if !enabled || m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.Record(time.Since(start))
	}
}

// Global timing metrics for the operations on the responsiveness-critical path.
var (
	GenerateLatency = newTimingMetric("generate")
	FilterLatency   = newTimingMetric("filter")
	SortLatency     = newTimingMetric("sort")
	MountLatency    = newTimingMetric("chunk_mount")
	UIRender        = newTimingMetric("ui_render")
	DatasourceLoad  = newTimingMetric("datasource_load")
)

// Result-set gauges, fed on every commit or window-range change.
var (
	totalResults      atomic.Int64
	materializedCount atomic.Int64
)

// RecordResultCounts records the committed result-set size and how many
// rows of it are currently materialized.
func RecordResultCounts(total, materialized int) {
	if !enabled {
		return
	}
	totalResults.Store(int64(total))
	materializedCount.Store(int64(materialized))
}

// RecordMaterialized updates only the materialized-row gauge.
func RecordMaterialized(materialized int) {
	if !enabled {
		return
	}
	materializedCount.Store(int64(materialized))
}

// ResultCounts returns the last recorded (total, materialized) pair.
func ResultCounts() (total, materialized int) {
	return int(totalResults.Load()), int(materializedCount.Load())
}

// AllTimingMetrics returns all registered timing metrics.
func AllTimingMetrics() []*TimingMetric {
	return []*TimingMetric{
		GenerateLatency,
		FilterLatency,
		SortLatency,
		MountLatency,
		UIRender,
		DatasourceLoad,
	}
}

// AllTimingStats returns stats for every metric with recorded data.
func AllTimingStats() []TimingStats {
	all := AllTimingMetrics()
	stats := make([]TimingStats, 0, len(all))
	for _, m := range all {
		if m.Count() > 0 {
			stats = append(stats, m.Stats())
		}
	}
	return stats
}

// ResetAll resets all timing metrics and gauges.
func ResetAll() {
	for _, m := range AllTimingMetrics() {
		m.Reset()
	}
	totalResults.Store(0)
	materializedCount.Store(0)
}
