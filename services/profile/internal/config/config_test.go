package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromEnvironmentOnly(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://profile")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9104")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr() != ":9104" || cfg.DatabaseURL != "postgres://profile" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadDefaultsPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("databaseURL: postgres://p\njwtSecret: s\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORT", "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("port = %q", cfg.Port)
	}
}
