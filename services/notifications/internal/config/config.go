package config

import (
	"strings"

	sharedconfig "jobboard/internal/config"
)

const (
	defaultPort      = "8006"
	defaultAMQPQueue = "jobboard.notifications"
)

// FileConfig is the notifications service configuration.
type FileConfig struct {
	sharedconfig.Base `yaml:",inline"`

	// AMQPURL enables publishing notifications to RabbitMQ; empty means
	// deliveries are simulated.
	AMQPURL   string `yaml:"amqpURL" env:"AMQP_URL"`
	AMQPQueue string `yaml:"amqpQueue" env:"AMQP_QUEUE"`
}

// Load reads the notifications config from path.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if err := sharedconfig.Load(path, &cfg); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults(defaultPort)
	if strings.TrimSpace(cfg.AMQPQueue) == "" {
		cfg.AMQPQueue = defaultAMQPQueue
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
