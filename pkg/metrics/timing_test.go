package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestTimingMetricRecord(t *testing.T) {
	m := newTimingMetric("test")
	m.Record(10 * time.Millisecond)
	m.Record(30 * time.Millisecond)

	if m.Count() != 2 {
		t.Fatalf("count = %d, want 2", m.Count())
	}
	stats := m.Stats()
	if stats.LastMs != 30 {
		t.Errorf("last = %f, want 30", stats.LastMs)
	}
	if stats.MaxMs != 30 {
		t.Errorf("max = %f, want 30", stats.MaxMs)
	}
	if stats.AvgMs != 20 {
		t.Errorf("avg = %f, want 20", stats.AvgMs)
	}

	m.Reset()
	if m.Count() != 0 || m.Last() != 0 {
		t.Error("reset did not clear metric")
	}
}

func TestTimingMetricConcurrent(t *testing.T) {
	m := newTimingMetric("concurrent")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Record(time.Millisecond)
			}
		}()
	}
	wg.Wait()
	if m.Count() != 800 {
		t.Fatalf("count = %d, want 800", m.Count())
	}
}

func TestTimerDefer(t *testing.T) {
	m := newTimingMetric("timer")
	func() {
		defer Timer(m)()
		time.Sleep(time.Millisecond)
	}()
	if m.Count() != 1 {
		t.Fatalf("count = %d, want 1", m.Count())
	}
	if m.Last() < time.Millisecond {
		t.Errorf("recorded %v, expected at least 1ms", m.Last())
	}
}

func TestResultCounts(t *testing.T) {
	RecordResultCounts(100000, 24)
	total, materialized := ResultCounts()
	if total != 100000 || materialized != 24 {
		t.Fatalf("got (%d, %d), want (100000, 24)", total, materialized)
	}
	RecordMaterialized(48)
	_, materialized = ResultCounts()
	if materialized != 48 {
		t.Fatalf("materialized = %d, want 48", materialized)
	}
	ResetAll()
	total, materialized = ResultCounts()
	if total != 0 || materialized != 0 {
		t.Fatalf("reset left gauges at (%d, %d)", total, materialized)
	}
}

func TestDisabledSkipsRecording(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	m := newTimingMetric("disabled")
	m.Record(time.Second)
	if m.Count() != 0 {
		t.Fatal("recorded while disabled")
	}
}
