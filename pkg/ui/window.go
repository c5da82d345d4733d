package ui

import "github.com/SandeshR98/scaleview/pkg/metrics"

// DefaultOverscan is the number of extra rows materialized on each side of
// the visible range to mask pop-in while scrolling.
const DefaultOverscan = 8

// WindowParams describes the geometry a window is computed from.
type WindowParams struct {
	// Total is the number of logical records in the current result set.
	Total int
	// Offset is the scroll position in rows (first visible row index).
	Offset int
	// Extent is the visible container height in rows.
	Extent int
	// GroupSize is the number of logical records per visual row (K >= 1).
	GroupSize int
	// Overscan is the number of extra rows on each side; negative means
	// DefaultOverscan.
	Overscan int
}

// Window is a half-open row range [Start, End) over the grouped result
// set. Only rows in the window are materialized.
type Window struct {
	Start int
	End   int
}

// Len returns the number of materialized rows.
func (w Window) Len() int {
	return w.End - w.Start
}

// Contains reports whether row index i is materialized.
func (w Window) Contains(i int) bool {
	return i >= w.Start && i < w.End
}

// Rows returns the total visual row count for n records grouped k per row,
// counting a trailing partial group as a full row.
func Rows(n, k int) int {
	if n <= 0 {
		return 0
	}
	if k < 1 {
		k = 1
	}
	return (n + k - 1) / k
}

// GroupBounds returns the logical record range [lo, hi) backing visual row
// i, with the last group correctly truncated when n is not a multiple of k.
func GroupBounds(row, n, k int) (lo, hi int) {
	if k < 1 {
		k = 1
	}
	lo = row * k
	hi = lo + k
	if lo > n {
		lo = n
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}

// ComputeWindow returns the minimal contiguous row range that must be
// materialized for the given geometry, expanded by overscan and clamped to
// [0, rows). An empty result set yields the empty window.
func ComputeWindow(p WindowParams) Window {
	rows := Rows(p.Total, p.GroupSize)
	if rows == 0 || p.Extent <= 0 {
		return Window{}
	}
	overscan := p.Overscan
	if overscan < 0 {
		overscan = DefaultOverscan
	}

	start := p.Offset
	if start > rows-1 {
		start = rows - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + p.Extent
	if end > rows {
		end = rows
	}

	start -= overscan
	if start < 0 {
		start = 0
	}
	end += overscan
	if end > rows {
		end = rows
	}
	return Window{Start: start, End: end}
}

// windowScheduler recomputes the materialized range reactively and reports
// the materialized row count to the metrics collaborator whenever the
// range changes. It lives on the UI goroutine.
type windowScheduler struct {
	params  WindowParams
	current Window
}

// Update recomputes the window from new geometry. Returns the window and
// whether it changed since the last computation.
func (ws *windowScheduler) Update(p WindowParams) (Window, bool) {
	ws.params = p
	win := ComputeWindow(p)
	changed := win != ws.current
	ws.current = win
	if changed {
		metrics.RecordMaterialized(ws.materializedRecords())
	}
	return win, changed
}

// Reset forgets the last computed range. Called whenever result-set
// identity changes: the materialized gauge has just been zeroed, so the
// next Update must report its count even when the new range happens to
// equal the old one.
func (ws *windowScheduler) Reset() {
	ws.params = WindowParams{}
	ws.current = Window{}
}

// Current returns the last computed window.
func (ws *windowScheduler) Current() Window {
	return ws.current
}

// materializedRecords converts the materialized row range back to a
// logical record count, accounting for a partial last group.
func (ws *windowScheduler) materializedRecords() int {
	k := ws.params.GroupSize
	if k < 1 {
		k = 1
	}
	count := 0
	for row := ws.current.Start; row < ws.current.End; row++ {
		lo, hi := GroupBounds(row, ws.params.Total, k)
		count += hi - lo
	}
	return count
}
