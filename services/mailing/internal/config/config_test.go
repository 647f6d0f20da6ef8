package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOutboxSettings(t *testing.T) {
	t.Setenv("MAILING_OUTBOX_STREAM", "")
	t.Setenv("MAILING_OUTBOX_MAXLEN", "500")
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "databaseURL: postgres://m\njwtSecret: s\nredisAddr: redis:6379\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutboxStream != "jobboard:mailing:outbox" || cfg.OutboxMaxLen != 500 || cfg.RedisAddr != "redis:6379" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
