package ui

import "time"

// Outcome classifies a response arriving from the compute worker.
type Outcome int

const (
	// OutcomeCommitted means the response answers the most recent dispatch
	// and becomes the visible result set.
	OutcomeCommitted Outcome = iota
	// OutcomeSuperseded means a newer request was dispatched after this
	// response's request; the response is discarded silently.
	OutcomeSuperseded
	// OutcomeFailed means the request errored; the busy state clears but
	// the previous result set stays visible.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeSuperseded:
		return "superseded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Sequencer correlates asynchronous worker responses with the request that
// caused them. Each dispatch takes a monotonically increasing sequence
// number; a response commits only if its number still equals the latest
// dispatched one. No ordering is assumed between dispatch and arrival: a
// later request's response may arrive first, so the comparison is always
// against "the most recently dispatched", never "has anything arrived
// since".
//
// It lives on the UI goroutine and needs no locking: Begin and Observe are
// only called from Update.
type Sequencer struct {
	lastSeq   uint64
	inFlight  bool
	startedAt time.Time
	lastTrip  time.Duration
}

// Begin registers a new dispatch and returns its sequence number. Any
// response still in flight for an earlier number is superseded from this
// moment.
func (s *Sequencer) Begin() uint64 {
	s.lastSeq++
	s.inFlight = true
	s.startedAt = time.Now()
	return s.lastSeq
}

// Invalidate bumps the sequence without dispatching, so that every
// response currently in flight is treated as superseded when it arrives.
// Used by the empty-query short-circuit and by the worker toggle: once an
// inline result is committed, a late worker response must not revert it.
func (s *Sequencer) Invalidate() {
	s.lastSeq++
	s.inFlight = false
}

// Observe classifies a response by its originating sequence number. For a
// committed response the round-trip latency since Begin is recorded and
// available from LastLatency.
func (s *Sequencer) Observe(seq uint64) Outcome {
	if seq != s.lastSeq {
		return OutcomeSuperseded
	}
	s.inFlight = false
	s.lastTrip = time.Since(s.startedAt)
	return OutcomeCommitted
}

// ObserveFailure classifies a failure response. A stale failure is just a
// superseded message; a current one clears the in-flight state.
func (s *Sequencer) ObserveFailure(seq uint64) Outcome {
	if seq != s.lastSeq {
		return OutcomeSuperseded
	}
	s.inFlight = false
	return OutcomeFailed
}

// InFlight reports whether the most recent dispatch is still unanswered.
func (s *Sequencer) InFlight() bool {
	return s.inFlight
}

// LastLatency returns the round-trip time of the last committed response.
func (s *Sequencer) LastLatency() time.Duration {
	return s.lastTrip
}
