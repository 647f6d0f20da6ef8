package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadJobsServiceURL(t *testing.T) {
	t.Setenv("JOBS_SERVICE_URL", "")
	path := writeConfig(t, "databaseURL: postgres://apps\njwtSecret: s\njobsServiceURL: http://jobs:8002\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8003" || cfg.JobsServiceURL != "http://jobs:8002" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsRelativeJobsURL(t *testing.T) {
	t.Setenv("JOBS_SERVICE_URL", "jobs:8002/api")
	path := writeConfig(t, "databaseURL: postgres://apps\njwtSecret: s\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for relative jobsServiceURL")
	}
}
