package config

import (
	"fmt"
	"net/url"
	"strings"

	sharedconfig "jobboard/internal/config"
)

const defaultPort = "8003"

// FileConfig is the applications service configuration.
type FileConfig struct {
	sharedconfig.Base `yaml:",inline"`

	// JobsServiceURL enables job existence checks against the jobs service.
	JobsServiceURL string `yaml:"jobsServiceURL" env:"JOBS_SERVICE_URL"`
}

// Load reads the applications config from path.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if err := sharedconfig.Load(path, &cfg); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults(defaultPort)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if raw := strings.TrimSpace(cfg.JobsServiceURL); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return cfg, fmt.Errorf("config: invalid jobsServiceURL %q", raw)
		}
	}
	return cfg, nil
}
