package config

import (
	"os"
	"path/filepath"
)

// Defaults.
const (
	DefaultDataDir  = "data"
	DefaultHTTPAddr = "localhost:5000"
)

// Settings is the resolved process configuration.
type Settings struct {
	DataDir    string
	HTTPAddr   string
	ConfigPath string
}

// Load resolves settings. The environment wins over the TOML file, which
// wins over built-in defaults. A relative data directory in the file is
// resolved against the file's directory.
func Load() (Settings, error) {
	return LoadWithPath("")
}

// LoadWithPath is Load with an explicit config file path. An empty path
// falls back to RADSIM_CONFIG and then the XDG default.
func LoadWithPath(configPath string) (Settings, error) {
	var envCfg EnvConfig
	if err := ParseEnv(&envCfg); err != nil {
		return Settings{}, err
	}

	settings := Settings{
		DataDir:    DefaultDataDir,
		HTTPAddr:   DefaultHTTPAddr,
		ConfigPath: configPath,
	}
	if settings.ConfigPath == "" {
		settings.ConfigPath = envCfg.ConfigPath
	}
	if settings.ConfigPath == "" {
		settings.ConfigPath = DefaultConfigPath()
	}

	fileCfg, err := LoadFile(settings.ConfigPath)
	if err != nil {
		return Settings{}, err
	}
	if fileCfg.Data.Dir != nil && *fileCfg.Data.Dir != "" {
		dir := *fileCfg.Data.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(settings.ConfigPath), dir)
		}
		settings.DataDir = dir
	}
	if fileCfg.Server.Addr != nil && *fileCfg.Server.Addr != "" {
		settings.HTTPAddr = *fileCfg.Server.Addr
	}

	if envCfg.DataDir != "" {
		settings.DataDir = envCfg.DataDir
	}
	if envCfg.HTTPAddr != "" {
		settings.HTTPAddr = envCfg.HTTPAddr
	}
	return settings, nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "radsim", "config.toml")
}
