package config

import (
	"errors"
	"fmt"
	"time"

	sharedconfig "jobboard/internal/config"
)

const defaultPort = "8001"

// FileConfig is the auth service configuration.
type FileConfig struct {
	sharedconfig.Base `yaml:",inline"`

	TokenTTL                   string `yaml:"tokenTTL" env:"AUTH_TOKEN_TTL"`
	RegisterRateLimitPerMinute int    `yaml:"registerRateLimitPerMinute" env:"AUTH_REGISTER_RATE_LIMIT_PER_MINUTE"`
	LoginRateLimitPerMinute    int    `yaml:"loginRateLimitPerMinute" env:"AUTH_LOGIN_RATE_LIMIT_PER_MINUTE"`
}

// Load reads the auth config from path (see sharedconfig.Load for sources).
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if err := sharedconfig.Load(path, &cfg); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults(defaultPort)
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.RegisterRateLimitPerMinute < 0 || cfg.LoginRateLimitPerMinute < 0 {
		return errors.New("config: rate limits must be >= 0")
	}
	if (cfg.RegisterRateLimitPerMinute > 0 || cfg.LoginRateLimitPerMinute > 0) && cfg.RedisAddr == "" {
		return errors.New("config: redisAddr is required when rate limits are enabled")
	}
	if _, err := ParseTokenTTL(cfg.TokenTTL); err != nil {
		return err
	}
	return nil
}

// ParseTokenTTL parses the optional token lifetime; zero means the default.
func ParseTokenTTL(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	dur, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid tokenTTL duration: %w", err)
	}
	if dur < 0 {
		return 0, errors.New("invalid tokenTTL duration: must be positive")
	}
	return dur, nil
}
