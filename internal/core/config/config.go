// Package config handles configuration loading and validation for taskboard.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Board render styles accepted by the board.style setting.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StylePlain = "plain"
)

// Config holds the application configuration.
type Config struct {
	DataFile string      `yaml:"data_file"`
	HTTP     HTTPConfig  `yaml:"http"`
	Board    BoardConfig `yaml:"board"`
	DataDir  string      `yaml:"-"` // set by caller, not from config file
}

// HTTPConfig configures the streamable HTTP transport.
type HTTPConfig struct {
	Addr        string     `yaml:"addr"`
	Path        string     `yaml:"path"`
	Stateless   bool       `yaml:"stateless"`
	PortFromEnv bool       `yaml:"port_from_env"`
	ForceAccept bool       `yaml:"force_accept"`
	CORS        CORSConfig `yaml:"cors"`
}

// CORSConfig controls cross-origin access to the HTTP transport.
type CORSConfig struct {
	Enabled bool     `yaml:"enabled"`
	Origins []string `yaml:"origins"`
}

// BoardConfig controls terminal board rendering.
type BoardConfig struct {
	Style string `yaml:"style"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DataFile: "tasks.json",
		HTTP: HTTPConfig{
			Addr: "127.0.0.1:8000",
			Path: "/mcp",
			CORS: CORSConfig{
				Origins: []string{"*"},
			},
		},
		Board: BoardConfig{
			Style: StyleAuto,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.DataFile == "" {
		c.DataFile = defaults.DataFile
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = defaults.HTTP.Addr
	}
	if c.HTTP.Path == "" {
		c.HTTP.Path = defaults.HTTP.Path
	}
	if c.HTTP.CORS.Origins == nil {
		c.HTTP.CORS.Origins = defaults.HTTP.CORS.Origins
	}
	if c.Board.Style == "" {
		c.Board.Style = defaults.Board.Style
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data_file cannot be empty")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if _, _, err := net.SplitHostPort(c.HTTP.Addr); err != nil {
		return fmt.Errorf("http.addr %q is not host:port: %w", c.HTTP.Addr, err)
	}

	if !strings.HasPrefix(c.HTTP.Path, "/") {
		return fmt.Errorf("http.path %q must begin with /", c.HTTP.Path)
	}

	if c.HTTP.CORS.Enabled && len(c.HTTP.CORS.Origins) == 0 {
		return fmt.Errorf("http.cors.origins cannot be empty when cors is enabled")
	}

	if !isValidStyle(c.Board.Style) {
		return fmt.Errorf("board.style %q must be one of auto, dark, light, plain", c.Board.Style)
	}

	return nil
}

// DataFilePath returns the task snapshot path. Relative data_file values
// resolve under the data directory.
func (c *Config) DataFilePath() string {
	if filepath.IsAbs(c.DataFile) {
		return c.DataFile
	}
	return filepath.Join(c.DataDir, c.DataFile)
}

func isValidStyle(style string) bool {
	switch style {
	case StyleAuto, StyleDark, StyleLight, StylePlain:
		return true
	default:
		return false
	}
}
