package compute

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	json "github.com/goccy/go-json"

	"github.com/SandeshR98/scaleview/pkg/model"
)

func waitMsg(t *testing.T, w *Worker) tea.Msg {
	t.Helper()
	select {
	case msg := <-w.Messages():
		return msg
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for worker message")
		return nil
	}
}

func startWorker(t *testing.T) *Worker {
	t.Helper()
	w := NewWorker(Config{})
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWorkerGenerateCachesAndReplies(t *testing.T) {
	w := startWorker(t)

	if err := w.Dispatch(GenerateRequest{Count: 5000, Seed: 42, Seq: 1}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	msg := waitMsg(t, w)
	gen, ok := msg.(GeneratedMsg)
	if !ok {
		t.Fatalf("expected GeneratedMsg, got %T", msg)
	}
	if gen.Seq != 1 || len(gen.Products) != 5000 {
		t.Fatalf("unexpected reply: seq=%d count=%d", gen.Seq, len(gen.Products))
	}

	// Filter uses the internal cache; the caller never resends products.
	if err := w.Dispatch(FilterRequest{Query: model.ParseQuery("widget", ""), Seq: 2}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	msg = waitMsg(t, w)
	filt, ok := msg.(FilteredMsg)
	if !ok {
		t.Fatalf("expected FilteredMsg, got %T", msg)
	}
	if filt.Seq != 2 {
		t.Fatalf("seq = %d, want 2", filt.Seq)
	}
	if len(filt.Indices) == 0 {
		t.Fatal("expected some widget matches in a 5000-product catalog")
	}
	for _, idx := range filt.Indices {
		if idx < 0 || idx >= 5000 {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestWorkerGeneratedSliceIsNotCacheAlias(t *testing.T) {
	w := startWorker(t)

	if err := w.Dispatch(GenerateRequest{Count: 100, Seed: 1, Seq: 1}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	gen := waitMsg(t, w).(GeneratedMsg)

	// Mutating the received slice must not corrupt later worker results.
	original := gen.Products[0]
	gen.Products[0] = model.Product{ID: -99, Name: "corrupted"}

	if err := w.Dispatch(SortRequest{Spec: model.SortSpec{Field: model.SortFieldID}, Seq: 2}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	sorted := waitMsg(t, w).(SortedMsg)
	if sorted.Products[0] != original {
		t.Fatalf("worker cache aliases the transferred slice: got %+v, want %+v",
			sorted.Products[0], original)
	}
}

func TestWorkerSortStableOnCache(t *testing.T) {
	w := startWorker(t)
	w.Dispatch(GenerateRequest{Count: 2000, Seed: 5, Seq: 1})
	waitMsg(t, w)

	w.Dispatch(SortRequest{Spec: model.SortSpec{Field: model.SortFieldCategory}, Seq: 2})
	sorted := waitMsg(t, w).(SortedMsg)
	if len(sorted.Products) != 2000 {
		t.Fatalf("sorted count = %d", len(sorted.Products))
	}
	for i := 1; i < len(sorted.Products); i++ {
		a, b := sorted.Products[i-1], sorted.Products[i]
		if a.Category > b.Category {
			t.Fatalf("out of order at %d: %q > %q", i, a.Category, b.Category)
		}
		// Stability: within equal categories the generation order (ID) holds.
		if a.Category == b.Category && a.ID > b.ID {
			t.Fatalf("stability violated at %d: ID %d before %d", i, a.ID, b.ID)
		}
	}
}

func TestWorkerPrimeReplacesCache(t *testing.T) {
	w := startWorker(t)
	products := []model.Product{
		{ID: 0, Name: "Only Lamp", Category: "Books"},
		{ID: 1, Name: "Only Widget", Category: "Books"},
	}
	w.Dispatch(PrimeRequest{Products: products, Seq: 1})
	primed := waitMsg(t, w).(PrimedMsg)
	if primed.Count != 2 {
		t.Fatalf("primed count = %d", primed.Count)
	}

	w.Dispatch(FilterRequest{Query: model.ParseQuery("widget", ""), Seq: 2})
	filt := waitMsg(t, w).(FilteredMsg)
	if len(filt.Indices) != 1 || filt.Indices[0] != 1 {
		t.Fatalf("indices = %v, want [1]", filt.Indices)
	}
}

func TestWorkerGenerateErrorReportsFailure(t *testing.T) {
	w := startWorker(t)
	w.Dispatch(GenerateRequest{Count: -1, Seq: 7})
	msg := waitMsg(t, w)
	failed, ok := msg.(FailedMsg)
	if !ok {
		t.Fatalf("expected FailedMsg, got %T", msg)
	}
	if failed.Seq != 7 || failed.Phase != "generate" {
		t.Fatalf("unexpected failure: %+v", failed)
	}

	// The worker must remain usable after a failed request.
	w.Dispatch(GenerateRequest{Count: 10, Seed: 1, Seq: 8})
	if _, ok := waitMsg(t, w).(GeneratedMsg); !ok {
		t.Fatal("worker did not recover after failure")
	}
}

func TestWorkerRequestsRunInOrder(t *testing.T) {
	w := startWorker(t)
	w.Dispatch(GenerateRequest{Count: 1000, Seed: 2, Seq: 1})
	w.Dispatch(FilterRequest{Query: model.ParseQuery("premium", ""), Seq: 2})
	w.Dispatch(SortRequest{Spec: model.SortSpec{Field: model.SortFieldPrice}, Seq: 3})

	seqs := []uint64{}
	for i := 0; i < 3; i++ {
		switch m := waitMsg(t, w).(type) {
		case GeneratedMsg:
			seqs = append(seqs, m.Seq)
		case FilteredMsg:
			seqs = append(seqs, m.Seq)
		case SortedMsg:
			seqs = append(seqs, m.Seq)
		default:
			t.Fatalf("unexpected message %T", m)
		}
	}
	for i, seq := range seqs {
		if seq != uint64(i+1) {
			t.Fatalf("responses arrived out of dispatch order: %v", seqs)
		}
	}
}

func TestWorkerLifecycle(t *testing.T) {
	w := NewWorker(Config{})
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("second Start should be a no-op, got %v", err)
	}
	w.Stop()
	w.Stop() // idempotent

	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after Stop")
	}

	if err := w.Dispatch(FilterRequest{Seq: 1}); err == nil {
		t.Fatal("Dispatch after Stop should fail")
	}
	if err := w.Start(); err == nil {
		t.Fatal("Start after Stop should fail")
	}
}

func TestWorkerTraceFileRecordsEvents(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "worker.jsonl")
	t.Setenv("SV_WORKER_TRACE", tracePath)

	w := NewWorker(Config{})
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Dispatch(GenerateRequest{Count: 100, Seed: 1, Seq: 1}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	waitMsg(t, w)
	w.Stop()

	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 3 {
		t.Fatalf("trace has %d events, want at least start/generated/stop", len(lines))
	}
	for _, line := range lines {
		var event map[string]any
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("trace line is not JSON: %q", line)
		}
		if event["component"] != "compute_worker" {
			t.Errorf("event missing component tag: %q", line)
		}
	}
}
