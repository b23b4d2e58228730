package config

import (
	"path/filepath"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if cfg.Port() != DefaultPort {
		t.Errorf("Port() = %d, want %d", cfg.Port(), DefaultPort)
	}
	if cfg.LogLevel() != DefaultLogLevel {
		t.Errorf("LogLevel() = %q, want %q", cfg.LogLevel(), DefaultLogLevel)
	}
	if filepath.Base(cfg.DBPath()) != DBFilename {
		t.Errorf("DBPath() = %q, want basename %q", cfg.DBPath(), DBFilename)
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPort, "9001")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDataDir, "/tmp/sfdata")
	t.Setenv(EnvAssetsDir, "/tmp/sfassets")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if cfg.Port() != 9001 {
		t.Errorf("Port() = %d, want 9001", cfg.Port())
	}
	if cfg.LogLevel() != "debug" {
		t.Errorf("LogLevel() = %q, want debug", cfg.LogLevel())
	}
	if cfg.DBPath() != filepath.Join("/tmp/sfdata", DBFilename) {
		t.Errorf("DBPath() = %q", cfg.DBPath())
	}
	if cfg.AssetsDir() != "/tmp/sfassets" {
		t.Errorf("AssetsDir() = %q, want /tmp/sfassets", cfg.AssetsDir())
	}
}

func TestNew_InvalidPort(t *testing.T) {
	for _, bad := range []string{"abc", "0", "70000", "-1"} {
		t.Setenv(EnvPort, bad)
		if _, err := New(); err == nil {
			t.Errorf("New() with %s=%q: nil error, want error", EnvPort, bad)
		}
	}
}
