// Package config loads settings from the environment and an optional TOML file.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds the environment overrides. Empty fields are unset.
type EnvConfig struct {
	DataDir    string `env:"RADSIM_DATA_DIR"`
	HTTPAddr   string `env:"RADSIM_HTTP_ADDR"`
	ConfigPath string `env:"RADSIM_CONFIG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
