package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureUserConfigWritesDefaults(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	if err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("config written outside data dir: %s", path)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.Port != 8000 {
		t.Errorf("default port = %d", cfg.App.Port)
	}
	if cfg.Mongo.Database != "jobportal" {
		t.Errorf("default database = %q", cfg.Mongo.Database)
	}

	// Second call must return the existing file untouched.
	again, err := EnsureUserConfig(dir)
	if err != nil || again != path {
		t.Errorf("bootstrap not idempotent: %s %v", again, err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.App.Port = 0
	cfg.Mongo.URI = ""
	if err := Validate(cfg); err == nil {
		t.Error("expected validation failure")
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("app:\n  port: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected load to fail validation")
	}
}
