package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"
)

// DefaultTimeout bounds every remote call when the config does not set one.
const DefaultTimeout = 15 * time.Second

// EnvPrefix namespaces every environment override.
const EnvPrefix = "DEVLINKS_"

// Config represents ~/.devlinks/config.yaml. Environment variables prefixed
// with DEVLINKS_ override file values.
type Config struct {
	Server        string        `yaml:"server" env:"SERVER"`
	Email         string        `yaml:"email" env:"EMAIL"`
	Token         string        `yaml:"token,omitempty" env:"TOKEN"`
	PlatformsFile string        `yaml:"platforms_file,omitempty" env:"PLATFORMS_FILE"`
	Timeout       time.Duration `yaml:"timeout,omitempty" env:"TIMEOUT"`
}

// Default returns a config with default values.
func Default() Config {
	return Config{Timeout: DefaultTimeout}
}

// Parse parses config.yaml bytes into a Config.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// ApplyEnv overrides cfg with any DEVLINKS_* variables present in the
// environment. Unset variables leave the file value in place.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv loads the given .env files into the process environment. Missing
// files are skipped and variables already set are never overwritten.
func LoadDotEnv(files ...string) error {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading env files: %w", err)
	}
	return nil
}

// Load reads the config file at path (a missing file yields defaults) and
// applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = Parse(data)
		if err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first problem that would prevent a session from
// reaching the server.
func (c Config) Validate() error {
	if c.Server == "" {
		return fmt.Errorf("server is not configured (run `devlinks config init` or set %sSERVER)", EnvPrefix)
	}
	u, err := url.Parse(c.Server)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("server %q must be an absolute http or https URL", c.Server)
	}
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("email is not configured (run `devlinks config init` or set %sEMAIL)", EnvPrefix)
	}
	return nil
}
