package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RADSIM_DATA_DIR", "")
	t.Setenv("RADSIM_HTTP_ADDR", "")
	t.Setenv("RADSIM_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	settings, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.DataDir != DefaultDataDir {
		t.Fatalf("DataDir = %q, want %q", settings.DataDir, DefaultDataDir)
	}
	if settings.HTTPAddr != DefaultHTTPAddr {
		t.Fatalf("HTTPAddr = %q, want %q", settings.HTTPAddr, DefaultHTTPAddr)
	}
	if !strings.HasSuffix(settings.ConfigPath, filepath.Join("radsim", "config.toml")) {
		t.Fatalf("ConfigPath = %q", settings.ConfigPath)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[server]\naddr = \"0.0.0.0:8080\"\n\n[data]\ndir = \"tables\"\n")
	t.Setenv("RADSIM_CONFIG", path)

	settings, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.HTTPAddr != "0.0.0.0:8080" {
		t.Fatalf("HTTPAddr = %q", settings.HTTPAddr)
	}
	if want := filepath.Join(filepath.Dir(path), "tables"); settings.DataDir != want {
		t.Fatalf("DataDir = %q, want %q", settings.DataDir, want)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[server]\naddr = \"0.0.0.0:8080\"\n\n[data]\ndir = \"/srv/tables\"\n")
	t.Setenv("RADSIM_CONFIG", path)
	t.Setenv("RADSIM_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("RADSIM_DATA_DIR", "/opt/radsim/data")

	settings, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.HTTPAddr != "127.0.0.1:9000" {
		t.Fatalf("HTTPAddr = %q", settings.HTTPAddr)
	}
	if settings.DataDir != "/opt/radsim/data" {
		t.Fatalf("DataDir = %q", settings.DataDir)
	}
}

func TestLoadFileMissingIsNotError(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Addr != nil || cfg.Data.Dir != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(""); err == nil {
		t.Fatal("expected error for empty path")
	}
	path := writeConfig(t, "[server\naddr = 1\n")
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "failed to decode config") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("RADSIM_DATA_DIR", "/tmp/tables")
	var cfg EnvConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.DataDir != "/tmp/tables" {
		t.Fatalf("DataDir = %q", cfg.DataDir)
	}

	var bad struct {
		Port int `env:"RADSIM_TEST_PORT"`
	}
	t.Setenv("RADSIM_TEST_PORT", "not-an-int")
	err := ParseEnv(&bad)
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestDefaultFileTemplateDecodes(t *testing.T) {
	var cfg FileConfig
	if _, err := toml.Decode(DefaultFileTemplate(), &cfg); err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if !strings.Contains(DefaultFileTemplate(), DefaultHTTPAddr) {
		t.Fatal("template should mention the default address")
	}
}

func TestLoadWithPathBeatsEnvPath(t *testing.T) {
	clearEnv(t)
	envPath := writeConfig(t, "[server]\naddr = \"env-file:1\"\n")
	flagPath := writeConfig(t, "[server]\naddr = \"flag-file:2\"\n")
	t.Setenv("RADSIM_CONFIG", envPath)

	settings, err := LoadWithPath(flagPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.ConfigPath != flagPath {
		t.Fatalf("ConfigPath = %q, want %q", settings.ConfigPath, flagPath)
	}
	if settings.HTTPAddr != "flag-file:2" {
		t.Fatalf("HTTPAddr = %q", settings.HTTPAddr)
	}
}
