// Package config handles loading and saving sv configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/sv/config.yaml
//
// Environment variables prefixed SV_ override file values, so scripted and
// robot invocations can tune behavior without touching the config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogConfig controls dataset generation and loading.
type CatalogConfig struct {
	Count int    `yaml:"count,omitempty"` // generated catalog size
	Seed  int64  `yaml:"seed,omitempty"`  // generation seed
	DB    string `yaml:"db,omitempty"`    // optional SQLite catalog path
}

// UIConfig holds rendering and scheduling preferences.
type UIConfig struct {
	Windowing  *bool `yaml:"windowing,omitempty"`   // viewport windowing (default on)
	Worker     *bool `yaml:"worker,omitempty"`      // compute worker (default on)
	Overscan   int   `yaml:"overscan,omitempty"`    // extra rows per side
	GroupSize  int   `yaml:"group_size,omitempty"`  // records per visual row
	MountCap   int   `yaml:"mount_cap,omitempty"`   // progressive mount cap
	ChunkSize  int   `yaml:"chunk_size,omitempty"`  // records per mount chunk
	DebounceMs int   `yaml:"debounce_ms,omitempty"` // search input debounce
}

// Config is the top-level configuration for sv.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	on := true
	return Config{
		Catalog: CatalogConfig{
			Count: 100_000,
			Seed:  1,
		},
		UI: UIConfig{
			Windowing:  &on,
			Worker:     &on,
			Overscan:   8,
			GroupSize:  1,
			MountCap:   5000,
			ChunkSize:  500,
			DebounceMs: 150,
		},
	}
}

// WindowingEnabled resolves the windowing toggle with its default.
func (c Config) WindowingEnabled() bool {
	return c.UI.Windowing == nil || *c.UI.Windowing
}

// WorkerEnabled resolves the worker toggle with its default.
func (c Config) WorkerEnabled() bool {
	return c.UI.Worker == nil || *c.UI.Worker
}

// ConfigDir returns the XDG config directory for sv.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "sv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sv")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory and applies
// environment overrides. Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return applyEnv(DefaultConfig()), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path and applies environment
// overrides. Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return applyEnv(cfg), fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return applyEnv(DefaultConfig()), fmt.Errorf("parsing config: %w", err)
	}
	cfg.Catalog.DB = expandHome(cfg.Catalog.DB)
	return applyEnv(cfg), nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// applyEnv overlays SV_* environment variables onto the config.
func applyEnv(cfg Config) Config {
	if v, ok := envInt("SV_COUNT"); ok {
		cfg.Catalog.Count = v
	}
	if v, ok := envInt64("SV_SEED"); ok {
		cfg.Catalog.Seed = v
	}
	if v := os.Getenv("SV_DB"); v != "" {
		cfg.Catalog.DB = expandHome(v)
	}
	if v, ok := envBool("SV_WINDOWING"); ok {
		cfg.UI.Windowing = &v
	}
	if v, ok := envBool("SV_WORKER"); ok {
		cfg.UI.Worker = &v
	}
	if v, ok := envInt("SV_OVERSCAN"); ok {
		cfg.UI.Overscan = v
	}
	if v, ok := envInt("SV_GROUP_SIZE"); ok && v >= 1 {
		cfg.UI.GroupSize = v
	}
	if v, ok := envInt("SV_MOUNT_CAP"); ok && v > 0 {
		cfg.UI.MountCap = v
	}
	if v, ok := envInt("SV_CHUNK_SIZE"); ok && v > 0 {
		cfg.UI.ChunkSize = v
	}
	if v, ok := envInt("SV_DEBOUNCE_MS"); ok && v >= 0 {
		cfg.UI.DebounceMs = v
	}
	return cfg
}

func envInt(name string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envInt64(name string) (int64, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(name string) (bool, bool) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	switch v {
	case "":
		return false, false
	case "1", "true", "yes", "on":
		return true, true
	default:
		return false, true
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
