package ui

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/SandeshR98/scaleview/pkg/metrics"
)

func TestComputeWindowBasics(t *testing.T) {
	tests := []struct {
		name string
		p    WindowParams
		want Window
	}{
		{
			"empty result set",
			WindowParams{Total: 0, Offset: 0, Extent: 40, GroupSize: 1, Overscan: 8},
			Window{},
		},
		{
			"zero extent",
			WindowParams{Total: 100, Offset: 0, Extent: 0, GroupSize: 1, Overscan: 8},
			Window{},
		},
		{
			"window at top without overscan before",
			WindowParams{Total: 1000, Offset: 0, Extent: 40, GroupSize: 1, Overscan: 8},
			Window{Start: 0, End: 48},
		},
		{
			"window in middle gets overscan both sides",
			WindowParams{Total: 1000, Offset: 500, Extent: 40, GroupSize: 1, Overscan: 8},
			Window{Start: 492, End: 548},
		},
		{
			"window at bottom clamps overscan after",
			WindowParams{Total: 1000, Offset: 960, Extent: 40, GroupSize: 1, Overscan: 8},
			Window{Start: 952, End: 1000},
		},
		{
			"offset beyond end clamps into range",
			WindowParams{Total: 50, Offset: 5000, Extent: 40, GroupSize: 1, Overscan: 0},
			Window{Start: 49, End: 50},
		},
		{
			"smaller than extent materializes everything",
			WindowParams{Total: 10, Offset: 0, Extent: 40, GroupSize: 1, Overscan: 8},
			Window{Start: 0, End: 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeWindow(tt.p); got != tt.want {
				t.Fatalf("ComputeWindow(%+v) = %+v, want %+v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRowsGrouped(t *testing.T) {
	tests := []struct {
		n, k, want int
	}{
		{0, 4, 0},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{100, 4, 25},
		{101, 4, 26},
		{7, 1, 7},
		{7, 0, 7}, // k < 1 treated as 1
	}
	for _, tt := range tests {
		if got := Rows(tt.n, tt.k); got != tt.want {
			t.Errorf("Rows(%d, %d) = %d, want %d", tt.n, tt.k, got, tt.want)
		}
	}
}

func TestGroupBoundsPartialLastGroup(t *testing.T) {
	// 10 records, 4 per row: rows are [0,4) [4,8) [8,10).
	lo, hi := GroupBounds(2, 10, 4)
	if lo != 8 || hi != 10 {
		t.Fatalf("GroupBounds(2, 10, 4) = [%d, %d), want [8, 10)", lo, hi)
	}
	lo, hi = GroupBounds(3, 10, 4)
	if lo != 10 || hi != 10 {
		t.Fatalf("row past end should be empty, got [%d, %d)", lo, hi)
	}
}

func TestWindowSchedulerReportsChanges(t *testing.T) {
	var ws windowScheduler

	win, changed := ws.Update(WindowParams{Total: 1000, Offset: 0, Extent: 30, GroupSize: 1, Overscan: 4})
	if !changed || win.Len() != 34 {
		t.Fatalf("initial update: changed=%v len=%d", changed, win.Len())
	}

	// Same geometry: no change.
	_, changed = ws.Update(WindowParams{Total: 1000, Offset: 0, Extent: 30, GroupSize: 1, Overscan: 4})
	if changed {
		t.Fatal("identical geometry reported as changed")
	}

	// Scrolling moves the window.
	win, changed = ws.Update(WindowParams{Total: 1000, Offset: 200, Extent: 30, GroupSize: 1, Overscan: 4})
	if !changed || win.Start != 196 {
		t.Fatalf("scroll update: changed=%v start=%d", changed, win.Start)
	}

	// Reset forgets the computed range, so the next update reports even
	// identical geometry. Result-set commits rely on this to repopulate
	// the materialized gauge after zeroing it.
	ws.Reset()
	metrics.SetEnabled(true)
	metrics.RecordResultCounts(1000, 0)
	win, changed = ws.Update(WindowParams{Total: 1000, Offset: 200, Extent: 30, GroupSize: 1, Overscan: 4})
	if !changed || win.Start != 196 {
		t.Fatalf("update after reset: changed=%v start=%d", changed, win.Start)
	}
	if _, materialized := metrics.ResultCounts(); materialized != win.Len() {
		t.Fatalf("materialized gauge = %d, want %d", materialized, win.Len())
	}
}

func TestComputeWindowProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := WindowParams{
			Total:     rapid.IntRange(0, 200_000).Draw(t, "total"),
			Offset:    rapid.IntRange(0, 250_000).Draw(t, "offset"),
			Extent:    rapid.IntRange(0, 300).Draw(t, "extent"),
			GroupSize: rapid.IntRange(1, 8).Draw(t, "group"),
			Overscan:  rapid.IntRange(0, 50).Draw(t, "overscan"),
		}
		win := ComputeWindow(p)
		rows := Rows(p.Total, p.GroupSize)

		if win.Start < 0 || win.End > rows || win.Start > win.End {
			t.Fatalf("window [%d, %d) outside [0, %d)", win.Start, win.End, rows)
		}
		if win.Len() > rows {
			t.Fatalf("window size %d exceeds row count %d", win.Len(), rows)
		}
		if p.Total > 0 && p.Extent > 0 && win.Len() == 0 {
			t.Fatal("non-empty geometry produced empty window")
		}

		// Growing the container never shrinks the materialized range.
		bigger := p
		bigger.Extent = p.Extent + rapid.IntRange(1, 100).Draw(t, "growth")
		if grown := ComputeWindow(bigger); grown.Len() < win.Len() {
			t.Fatalf("window shrank when extent grew: %d -> %d", win.Len(), grown.Len())
		}

		// Every group referenced by the window stays within the records.
		for row := win.Start; row < win.End; row++ {
			lo, hi := GroupBounds(row, p.Total, p.GroupSize)
			if lo < 0 || hi > p.Total || lo > hi {
				t.Fatalf("row %d maps to invalid record range [%d, %d)", row, lo, hi)
			}
		}
	})
}
