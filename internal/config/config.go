// Package config loads service configuration: YAML file first, then .env,
// then process environment, which always wins.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"jobboard/internal/usertoken"
)

// ConfigPath is used when CONFIG_PATH is unset.
const ConfigPath = "config.yaml"

// Base holds the settings every service shares.
type Base struct {
	Port           string   `yaml:"port" env:"PORT"`
	DatabaseURL    string   `yaml:"databaseURL" env:"DATABASE_URL"`
	LogLevel       string   `yaml:"logLevel" env:"LOG_LEVEL"`
	JWTSecret      string   `yaml:"jwtSecret" env:"JWT_SECRET"`
	JWTAlgorithm   string   `yaml:"jwtAlgorithm" env:"JWT_ALGORITHM"`
	JWTIssuer      string   `yaml:"jwtIssuer" env:"JWT_ISSUER"`
	RedisAddr      string   `yaml:"redisAddr" env:"REDIS_ADDR"`
	RedisPassword  string   `yaml:"redisPassword" env:"REDIS_PASSWORD"`
	TrustedProxies []string `yaml:"trustedProxies" env:"TRUSTED_PROXIES" envSeparator:","`
}

// Path resolves the config file location.
func Path() string {
	if p := strings.TrimSpace(os.Getenv("CONFIG_PATH")); p != "" {
		return p
	}
	return ConfigPath
}

// Load fills dst from the YAML file at path, a .env file in the working
// directory and the environment. A missing YAML file is not an error so that
// containers can run on environment alone.
func Load(path string, dst any) error {
	if path == "" {
		path = Path()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("read config: %w", err)
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
	}
	if err := env.Parse(dst); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ApplyDefaults fills optional fields.
func (b *Base) ApplyDefaults(port string) {
	if strings.TrimSpace(b.Port) == "" {
		b.Port = port
	}
	if strings.TrimSpace(b.LogLevel) == "" {
		b.LogLevel = "info"
	}
	if strings.TrimSpace(b.JWTAlgorithm) == "" {
		b.JWTAlgorithm = usertoken.DefaultAlgorithm
	}
}

// Validate checks the shared fields.
func (b Base) Validate() error {
	if strings.TrimSpace(b.Port) == "" {
		return errors.New("config: port is required (set in config.yaml or PORT)")
	}
	if strings.TrimSpace(b.DatabaseURL) == "" {
		return errors.New("config: databaseURL is required (set in config.yaml or DATABASE_URL)")
	}
	if strings.TrimSpace(b.JWTSecret) == "" {
		return errors.New("config: jwtSecret is required (set JWT_SECRET)")
	}
	switch strings.ToUpper(strings.TrimSpace(b.JWTAlgorithm)) {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("config: jwtAlgorithm %q is not supported (use HS256, HS384 or HS512)", b.JWTAlgorithm)
	}
	return nil
}

// Token returns the token trust-domain settings.
func (b Base) Token() usertoken.Config {
	return usertoken.Config{
		Secret:    b.JWTSecret,
		Algorithm: b.JWTAlgorithm,
		Issuer:    b.JWTIssuer,
	}
}

// Addr returns the listen address.
func (b Base) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(b.Port), ":")
}
