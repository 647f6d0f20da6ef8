package config

import (
	"strings"

	sharedconfig "jobboard/internal/config"
)

const (
	defaultPort         = "8007"
	defaultOutboxStream = "jobboard:mailing:outbox"
)

// FileConfig is the mailing service configuration. Emails go to a Redis
// stream outbox when redisAddr is set and are simulated otherwise.
type FileConfig struct {
	sharedconfig.Base `yaml:",inline"`

	OutboxStream string `yaml:"outboxStream" env:"MAILING_OUTBOX_STREAM"`
	OutboxMaxLen int64  `yaml:"outboxMaxLen" env:"MAILING_OUTBOX_MAXLEN"`
}

// Load reads the mailing config from path.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if err := sharedconfig.Load(path, &cfg); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults(defaultPort)
	if strings.TrimSpace(cfg.OutboxStream) == "" {
		cfg.OutboxStream = defaultOutboxStream
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
