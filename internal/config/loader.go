package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultPath = "./config.yaml"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (env-default tags and newConfig).
// The YAML file path is taken from CONFIG_PATH (fallback ./config.yaml).
// A missing fallback file is not an error: ENV and defaults are used instead.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path != "" {
		return LoadFile(path)
	}

	_, err := os.Stat(defaultPath)
	switch {
	case err == nil:
		return LoadFile(defaultPath)
	case errors.Is(err, fs.ErrNotExist):
		cfg := newConfig()
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
		return validated(cfg)
	default:
		return nil, fmt.Errorf("config: file %s: %w", defaultPath, err)
	}
}

// LoadFile reads configuration from the YAML file at path, then applies ENV
// overrides and defaults.
func LoadFile(path string) (*Config, error) {
	cfg := newConfig()
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return validated(cfg)
}

func validated(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}
