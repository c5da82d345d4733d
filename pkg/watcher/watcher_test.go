package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitChange(t *testing.T, w *Watcher, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-w.Changed():
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestWatcherDetectsFileChange(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "catalog.db")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(tmpFile, WithDebounceDuration(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(tmpFile, []byte("modified contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitChange(t, w, 5*time.Second) {
		t.Fatal("no change notification after write")
	}
}

func TestWatcherCoalescesRapidWrites(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "catalog.db")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(tmpFile, WithDebounceDuration(100*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(tmpFile, []byte(time.Now().String()), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if !waitChange(t, w, 5*time.Second) {
		t.Fatal("no change notification after burst of writes")
	}
	// The burst lands as one debounced notification, not five.
	select {
	case <-w.Changed():
		t.Fatal("burst produced more than one notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherPollingMode(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "catalog.db")
	if err := os.WriteFile(tmpFile, []byte("initial"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(tmpFile,
		WithForcePoll(true),
		WithPollInterval(30*time.Millisecond),
		WithDebounceDuration(30*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("expected polling mode with WithForcePoll")
	}

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(tmpFile, []byte("changed via polling"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitChange(t, w, 5*time.Second) {
		t.Fatal("polling mode missed the change")
	}
}

func TestWatcherStartStopLifecycle(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "catalog.db")
	if err := os.WriteFile(tmpFile, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(tmpFile)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Start(); err != ErrAlreadyStarted {
		t.Fatalf("second Start: got %v, want ErrAlreadyStarted", err)
	}
	if !w.IsStarted() {
		t.Fatal("IsStarted false after Start")
	}
	w.Stop()
	if w.IsStarted() {
		t.Fatal("IsStarted true after Stop")
	}
	w.Stop() // idempotent
}

func TestWatcherMissingFileStarts(t *testing.T) {
	// Watching a path that doesn't exist yet must not fail: the file can
	// appear later.
	tmpDir := t.TempDir()
	missing := filepath.Join(tmpDir, "not-yet.db")

	w, err := New(missing, WithDebounceDuration(30*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start on missing file: %v", err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(missing, []byte("created"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !waitChange(t, w, 5*time.Second) {
		t.Fatal("no notification when the file appeared")
	}
}
