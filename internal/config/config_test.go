package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Expected embedded defaults %+v, got %+v", DefaultConfig(), cfg)
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("search:\n  workers: 3\n  stop_after: 5\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Search.Workers != 3 {
		t.Errorf("Expected workers 3, got %d", cfg.Search.Workers)
	}
	if cfg.Search.StopAfter != 5 {
		t.Errorf("Expected stop_after 5, got %d", cfg.Search.StopAfter)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.Log.Level)
	}
	// Keys not named in the file keep their defaults.
	if cfg.Search.Count != DefaultConfig().Search.Count {
		t.Errorf("Expected default count %d, got %d", DefaultConfig().Search.Count, cfg.Search.Count)
	}
	if !cfg.Snapshot.Compress {
		t.Error("Expected snapshot compression to stay enabled")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("render:\n  color: sometimes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid render.color")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.Workers = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for negative workers")
	}

	cfg = DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}
