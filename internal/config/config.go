// Package config provides configuration management for the SpriteForge
// studio service. Configuration is loaded from environment variables with
// sensible defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// Default values
	DefaultPort     = 8971
	DefaultLogLevel = "info"
	DefaultDataDir  = ".spriteforge"

	// Environment variable names
	EnvPort      = "SPRITEFORGE_PORT"
	EnvLogLevel  = "SPRITEFORGE_LOG_LEVEL"
	EnvDataDir   = "SPRITEFORGE_DATA_DIR"
	EnvAssetsDir = "SPRITEFORGE_ASSETS_DIR"

	// Database filename
	DBFilename = "spriteforge.db"

	// Export defaults
	DefaultSheetColumns   = 8
	DefaultFrameDuration  = 150 // milliseconds
	DefaultExportAssetDir = "assets/sprites"
)

// Config holds the studio service configuration.
type Config struct {
	port      int
	logLevel  string
	dataDir   string
	assetsDir string
}

// New creates a Config with defaults and environment variable overrides.
func New() (*Config, error) {
	cfg := &Config{
		port:      DefaultPort,
		logLevel:  DefaultLogLevel,
		dataDir:   defaultDataDir(),
		assetsDir: DefaultExportAssetDir,
	}

	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid %s: %d out of range", EnvPort, port)
		}
		cfg.port = port
	}

	if l := os.Getenv(EnvLogLevel); l != "" {
		cfg.logLevel = l
	}

	if d := os.Getenv(EnvDataDir); d != "" {
		cfg.dataDir = d
	}

	if d := os.Getenv(EnvAssetsDir); d != "" {
		cfg.assetsDir = d
	}

	return cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Port returns the HTTP listen port.
func (c *Config) Port() int { return c.port }

// LogLevel returns the configured log level name.
func (c *Config) LogLevel() string { return c.logLevel }

// DataDir returns the directory holding the session database.
func (c *Config) DataDir() string { return c.dataDir }

// DBPath returns the session database path.
func (c *Config) DBPath() string { return filepath.Join(c.dataDir, DBFilename) }

// AssetsDir returns the directory exported sheets are written to.
func (c *Config) AssetsDir() string { return c.assetsDir }
