package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Catalog.Count != 100_000 {
		t.Errorf("expected default count 100000, got %d", cfg.Catalog.Count)
	}
	if !cfg.WindowingEnabled() {
		t.Error("expected windowing enabled by default")
	}
	if !cfg.WorkerEnabled() {
		t.Error("expected worker enabled by default")
	}
	if cfg.UI.MountCap != 5000 || cfg.UI.ChunkSize != 500 {
		t.Errorf("unexpected mount defaults: cap=%d chunk=%d", cfg.UI.MountCap, cfg.UI.ChunkSize)
	}
	if cfg.UI.DebounceMs != 150 {
		t.Errorf("expected debounce 150ms, got %d", cfg.UI.DebounceMs)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Catalog.Count != 100_000 {
		t.Errorf("expected default config, got count %d", cfg.Catalog.Count)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
catalog:
  count: 25000
  seed: 7

ui:
  windowing: false
  overscan: 12
  chunk_size: 250
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Catalog.Count != 25000 || cfg.Catalog.Seed != 7 {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if cfg.WindowingEnabled() {
		t.Error("expected windowing disabled")
	}
	if cfg.WorkerEnabled() != true {
		t.Error("worker should stay at its default when unset")
	}
	if cfg.UI.Overscan != 12 || cfg.UI.ChunkSize != 250 {
		t.Errorf("ui = %+v", cfg.UI)
	}
	// Unset values keep defaults.
	if cfg.UI.MountCap != 5000 {
		t.Errorf("mount cap = %d, want default 5000", cfg.UI.MountCap)
	}
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("catalog: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	// Defaults survive a broken file.
	if cfg.Catalog.Count != 100_000 {
		t.Errorf("expected defaults on parse error, got count %d", cfg.Catalog.Count)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SV_COUNT", "1234")
	t.Setenv("SV_WINDOWING", "off")
	t.Setenv("SV_WORKER", "1")
	t.Setenv("SV_CHUNK_SIZE", "100")
	t.Setenv("SV_DEBOUNCE_MS", "50")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Catalog.Count != 1234 {
		t.Errorf("count = %d, want 1234", cfg.Catalog.Count)
	}
	if cfg.WindowingEnabled() {
		t.Error("SV_WINDOWING=off not applied")
	}
	if !cfg.WorkerEnabled() {
		t.Error("SV_WORKER=1 not applied")
	}
	if cfg.UI.ChunkSize != 100 || cfg.UI.DebounceMs != 50 {
		t.Errorf("ui = %+v", cfg.UI)
	}
}

func TestEnvOverridesIgnoreGarbage(t *testing.T) {
	t.Setenv("SV_COUNT", "not-a-number")
	t.Setenv("SV_CHUNK_SIZE", "-5")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Catalog.Count != 100_000 {
		t.Errorf("garbage SV_COUNT changed count to %d", cfg.Catalog.Count)
	}
	if cfg.UI.ChunkSize != 500 {
		t.Errorf("non-positive SV_CHUNK_SIZE accepted: %d", cfg.UI.ChunkSize)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Catalog.Count = 42
	off := false
	cfg.UI.Windowing = &off

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Catalog.Count != 42 {
		t.Errorf("count = %d, want 42", loaded.Catalog.Count)
	}
	if loaded.WindowingEnabled() {
		t.Error("windowing toggle lost in round trip")
	}
}
