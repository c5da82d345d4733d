package ui

import "testing"

func TestSequencerOutOfOrderArrival(t *testing.T) {
	var s Sequencer

	seq1 := s.Begin()
	seq2 := s.Begin()
	seq3 := s.Begin()

	// All three dispatched before anything arrives, then arrival order
	// 2, 1, 3: responses 1 and 2 are both older than the latest dispatch,
	// so only 3 commits.
	if got := s.Observe(seq2); got != OutcomeSuperseded {
		t.Fatalf("response 2 after dispatch 3: got %v, want superseded", got)
	}
	if got := s.Observe(seq1); got != OutcomeSuperseded {
		t.Fatalf("response 1: got %v, want superseded", got)
	}
	if got := s.Observe(seq3); got != OutcomeCommitted {
		t.Fatalf("response 3: got %v, want committed", got)
	}
}

func TestSequencerInterleavedDispatchArrival(t *testing.T) {
	var s Sequencer

	// Dispatch 1, 2; response 2 arrives (commits); then dispatch 3;
	// response 1 arrives late (superseded); response 3 commits.
	seq1 := s.Begin()
	seq2 := s.Begin()
	if got := s.Observe(seq2); got != OutcomeCommitted {
		t.Fatalf("response 2: got %v, want committed", got)
	}
	seq3 := s.Begin()
	if got := s.Observe(seq1); got != OutcomeSuperseded {
		t.Fatalf("late response 1: got %v, want superseded", got)
	}
	if got := s.Observe(seq3); got != OutcomeCommitted {
		t.Fatalf("response 3: got %v, want committed", got)
	}
}

func TestSequencerInvalidateSupersedesInFlight(t *testing.T) {
	var s Sequencer

	seq := s.Begin()
	if !s.InFlight() {
		t.Fatal("expected in-flight after Begin")
	}

	// Empty-query short-circuit: full collection committed synchronously,
	// so the pending response must be dropped when it arrives.
	s.Invalidate()
	if s.InFlight() {
		t.Fatal("Invalidate left sequencer in flight")
	}
	if got := s.Observe(seq); got != OutcomeSuperseded {
		t.Fatalf("in-flight response after invalidate: got %v, want superseded", got)
	}
}

func TestSequencerFailureClearsBusyOnlyWhenCurrent(t *testing.T) {
	var s Sequencer

	seq1 := s.Begin()
	seq2 := s.Begin()

	if got := s.ObserveFailure(seq1); got != OutcomeSuperseded {
		t.Fatalf("stale failure: got %v, want superseded", got)
	}
	if !s.InFlight() {
		t.Fatal("stale failure must not clear in-flight state")
	}
	if got := s.ObserveFailure(seq2); got != OutcomeFailed {
		t.Fatalf("current failure: got %v, want failed", got)
	}
	if s.InFlight() {
		t.Fatal("current failure must clear in-flight state")
	}
}

func TestSequencerLatencyRecorded(t *testing.T) {
	var s Sequencer
	seq := s.Begin()
	if got := s.Observe(seq); got != OutcomeCommitted {
		t.Fatalf("got %v, want committed", got)
	}
	if s.LastLatency() <= 0 {
		t.Fatal("expected a positive committed latency")
	}
}
