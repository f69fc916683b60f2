package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	if cfg.DBPath == "" {
		t.Errorf("expected default db path")
	}
	if cfg.MaxDepth != 0 || len(cfg.SourceRoots) != 0 {
		t.Errorf("expected zero-value optional fields, got %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "db_path: /tmp/custom.db\nsource_roots:\n  - /src/app\n  - /src/lib\nmax_depth: 3\nrow_limit: 200\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("expected custom db path, got %s", cfg.DBPath)
	}
	if len(cfg.SourceRoots) != 2 || cfg.SourceRoots[1] != "/src/lib" {
		t.Errorf("expected two source roots, got %v", cfg.SourceRoots)
	}
	if cfg.MaxDepth != 3 || cfg.RowLimit != 200 {
		t.Errorf("expected max_depth=3 row_limit=200, got %+v", cfg)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("db_path: [unclosed"), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("expected malformed YAML to be rejected")
	}
}

func TestLoadPartialKeepsDefaultDB(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("max_depth: 4\n"), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBPath != Default().DBPath {
		t.Errorf("expected default db path to survive partial config")
	}
	if cfg.MaxDepth != 4 {
		t.Errorf("expected max_depth 4, got %d", cfg.MaxDepth)
	}
}
