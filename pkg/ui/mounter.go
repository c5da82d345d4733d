package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SandeshR98/scaleview/pkg/model"
)

// Progressive mounting defaults. When windowing is off the full result set
// would otherwise be materialized in one synchronous unit of work; instead
// it is capped and mounted chunk by chunk, yielding to the event loop
// between chunks so input stays serviceable.
const (
	DefaultMountCap  = 5000
	DefaultChunkSize = 500
)

// mountChunkMsg schedules the next chunk. Version pins the message to the
// result set it was started for: a chunk message surviving a filter/sort
// change must not mount rows from the wrong data.
type mountChunkMsg struct {
	version uint64
}

// mountChunkCmd yields to the event loop before the next chunk mounts.
// The tick gives pending input messages a chance to be processed first.
func mountChunkCmd(version uint64) tea.Cmd {
	return tea.Tick(time.Millisecond, func(time.Time) tea.Msg {
		return mountChunkMsg{version: version}
	})
}

// mounter incrementally materializes a capped result set in fixed-size
// chunks. It is rebuilt from scratch whenever the result set changes
// identity; chunks are immutable once produced.
type mounter struct {
	items       []model.Product // capped view of the result set
	trueTotal   int             // size before capping
	chunkSize   int
	totalChunks int
	ready       int // chunks mounted so far
	version     uint64
}

// newMounter caps the result set and partitions it into chunks. It holds a
// reference to the (immutable) result slice rather than copying it.
func newMounter(results []model.Product, cap, chunkSize int, version uint64) *mounter {
	if cap <= 0 {
		cap = DefaultMountCap
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	trueTotal := len(results)
	if len(results) > cap {
		results = results[:cap]
	}
	total := (len(results) + chunkSize - 1) / chunkSize
	return &mounter{
		items:       results,
		trueTotal:   trueTotal,
		chunkSize:   chunkSize,
		totalChunks: total,
		version:     version,
	}
}

// Advance mounts the next chunk. Returns false once all chunks are mounted.
func (m *mounter) Advance() bool {
	if m.ready >= m.totalChunks {
		return false
	}
	m.ready++
	return true
}

// Chunk returns the record range [lo, hi) mounted by chunk i.
func (m *mounter) Chunk(i int) (lo, hi int) {
	lo = i * m.chunkSize
	hi = lo + m.chunkSize
	if hi > len(m.items) {
		hi = len(m.items)
	}
	if lo > len(m.items) {
		lo = len(m.items)
	}
	return lo, hi
}

// Mounted returns the records materialized so far.
func (m *mounter) Mounted() []model.Product {
	return m.items[:m.mountedCount()]
}

// mountedCount returns the number of records in mounted chunks.
func (m *mounter) mountedCount() int {
	n := m.ready * m.chunkSize
	if n > len(m.items) {
		n = len(m.items)
	}
	return n
}

// Complete reports whether every chunk has been mounted.
func (m *mounter) Complete() bool {
	return m.ready >= m.totalChunks
}

// Capped reports whether the result set was truncated to the cap.
func (m *mounter) Capped() bool {
	return m.trueTotal > len(m.items)
}

// Progress returns mount progress in [0, 1].
func (m *mounter) Progress() float64 {
	if m.totalChunks == 0 {
		return 1
	}
	return float64(m.ready) / float64(m.totalChunks)
}
