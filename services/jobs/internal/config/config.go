package config

import (
	sharedconfig "jobboard/internal/config"
)

const defaultPort = "8002"

// FileConfig is the jobs service configuration.
type FileConfig struct {
	sharedconfig.Base `yaml:",inline"`
}

// Load reads the jobs config from path.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if err := sharedconfig.Load(path, &cfg); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults(defaultPort)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
