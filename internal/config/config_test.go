package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dkeye/portal/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Backend != "spawn" {
		t.Errorf("backend = %q, want spawn", cfg.Backend)
	}
	if cfg.DialTimeout != 10*time.Second {
		t.Errorf("dial_timeout = %v, want 10s", cfg.DialTimeout)
	}
	if cfg.Completion != "prefix" {
		t.Errorf("completion = %q, want prefix", cfg.Completion)
	}
	if cfg.CodeWords != 2 {
		t.Errorf("code_words = %d, want 2", cfg.CodeWords)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.yaml")
	body := "backend: pool\npool_size: 8\ndial_timeout: 2s\ncompletion: fuzzy\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "pool" || cfg.PoolSize != 8 {
		t.Errorf("backend/pool_size = %q/%d", cfg.Backend, cfg.PoolSize)
	}
	if cfg.DialTimeout != 2*time.Second {
		t.Errorf("dial_timeout = %v", cfg.DialTimeout)
	}
	if cfg.Completion != "fuzzy" {
		t.Errorf("completion = %q", cfg.Completion)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.yaml")
	if err := os.WriteFile(path, []byte("backend: fibers\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatalf("want error for unknown backend")
	}
}

func TestLoadRejectsUndersizedPool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.yaml")
	if err := os.WriteFile(path, []byte("backend: pool\npool_size: 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatalf("want error for pool_size below the floor")
	}

	// zero means unlimited and stays valid
	if err := os.WriteFile(path, []byte("backend: pool\npool_size: 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Fatalf("pool_size 0 rejected: %v", err)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("want error for missing explicit config file")
	}
}
