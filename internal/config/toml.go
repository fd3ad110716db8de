package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
}

// ServerConfig maps HTTP server settings.
type ServerConfig struct {
	Addr *string `toml:"addr"`
}

// DataConfig maps material data settings.
type DataConfig struct {
	Dir *string `toml:"dir"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// DefaultFileTemplate returns a commented config file with the defaults.
func DefaultFileTemplate() string {
	return fmt.Sprintf(`# radsim configuration
# Uncomment a value to enable it. Environment variables and CLI flags override config values.

[server]
# addr = %q   # HTTP listen address (RADSIM_HTTP_ADDR)

[data]
# dir = %q             # Directory with <material>.txt tables (RADSIM_DATA_DIR)
`, DefaultHTTPAddr, DefaultDataDir)
}
