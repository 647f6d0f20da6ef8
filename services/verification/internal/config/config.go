package config

import (
	"fmt"
	"net/url"
	"strings"

	sharedconfig "jobboard/internal/config"
)

const defaultPort = "8008"

// FileConfig is the verification service configuration. Without an identity
// service URL every submission is verified by a local simulator.
type FileConfig struct {
	sharedconfig.Base `yaml:",inline"`

	IdentityServiceURL string `yaml:"identityServiceURL" env:"IDENTITY_SERVICE_URL"`
	IdentityAPIKey     string `yaml:"identityAPIKey" env:"IDENTITY_API_KEY"`
}

// Load reads the verification config from path.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if err := sharedconfig.Load(path, &cfg); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults(defaultPort)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if raw := strings.TrimSpace(cfg.IdentityServiceURL); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return cfg, fmt.Errorf("config: invalid identityServiceURL %q", raw)
		}
	}
	return cfg, nil
}
