// Package compute runs generation, filtering, and sorting off the UI
// goroutine. One worker goroutine executes requests sequentially to
// completion; all coordination with the UI is by message passing over a
// tea.Msg channel. The worker owns a private copy of the catalog so
// Filter/Sort requests never re-transfer the collection.
package compute

import (
	"fmt"
	"time"

	"github.com/SandeshR98/scaleview/pkg/model"
)

// Request is a unit of work for the worker. Every request carries the
// caller-assigned monotonic sequence number used for staleness detection:
// a response is only committed if its Seq still equals the most recently
// dispatched one.
type Request interface {
	seq() uint64
	phase() string
}

// GenerateRequest asks the worker to build a fresh catalog of Count
// products. The worker caches the result internally before replying.
type GenerateRequest struct {
	Count int
	Seed  int64
	Seq   uint64
}

func (r GenerateRequest) seq() uint64 { return r.Seq }
func (r GenerateRequest) phase() string { return "generate" }

// PrimeRequest replaces the worker's cached catalog with an
// independently-owned copy of the given products. Used when the catalog was
// loaded from a datasource instead of generated in the worker.
type PrimeRequest struct {
	Products []model.Product
	Seq      uint64
}

func (r PrimeRequest) seq() uint64 { return r.Seq }
func (r PrimeRequest) phase() string { return "prime" }

// FilterRequest asks the worker to filter its cached catalog.
type FilterRequest struct {
	Query model.Query
	Seq   uint64
}

func (r FilterRequest) seq() uint64 { return r.Seq }
func (r FilterRequest) phase() string { return "filter" }

// SortRequest asks the worker to sort its cached catalog.
type SortRequest struct {
	Spec model.SortSpec
	Seq  uint64
}

func (r SortRequest) seq() uint64 { return r.Seq }
func (r SortRequest) phase() string { return "sort" }

// GeneratedMsg carries a freshly generated catalog. Ownership of Products
// moves to the receiver; the worker keeps its own separate copy.
type GeneratedMsg struct {
	Products []model.Product
	Seq      uint64
	Elapsed  time.Duration
}

// FilteredMsg carries index positions into the full collection, not product
// copies. The slice is moved: the worker drops its reference on send and
// never touches the buffer again, so the receiver owns it outright.
type FilteredMsg struct {
	Indices []int
	Seq     uint64
	Elapsed time.Duration
}

// SortedMsg carries the full collection in the requested order. The slice
// is freshly allocated per request and owned by the receiver.
type SortedMsg struct {
	Products []model.Product
	Seq      uint64
	Elapsed  time.Duration
}

// PrimedMsg acknowledges a PrimeRequest.
type PrimedMsg struct {
	Count int
	Seq   uint64
}

// FailedMsg reports that a single request errored. The UI must drop its
// busy state but keep the previously committed result visible.
type FailedMsg struct {
	Seq    uint64
	Phase  string
	Reason string
}

// WorkerError wraps request failures with phase context.
type WorkerError struct {
	Phase string
	Cause error
	Time  time.Time
}

func (e WorkerError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Phase, e.Cause)
}

func (e WorkerError) Unwrap() error {
	return e.Cause
}
