package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		dataDir := t.TempDir()

		cfg, err := Load(filepath.Join(dataDir, "nope.yaml"), dataDir)
		require.NoError(t, err)

		assert.Equal(t, "tasks.json", cfg.DataFile)
		assert.Equal(t, "127.0.0.1:8000", cfg.HTTP.Addr)
		assert.Equal(t, "/mcp", cfg.HTTP.Path)
		assert.False(t, cfg.HTTP.Stateless)
		assert.Equal(t, []string{"*"}, cfg.HTTP.CORS.Origins)
		assert.Equal(t, StyleAuto, cfg.Board.Style)
		assert.Equal(t, dataDir, cfg.DataDir)
	})

	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("", t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "tasks.json", cfg.DataFile)
	})

	t.Run("yaml overrides defaults", func(t *testing.T) {
		dataDir := t.TempDir()
		configPath := filepath.Join(dataDir, "config.yaml")
		content := `
data_file: board.json
http:
  addr: "0.0.0.0:9090"
  stateless: true
  port_from_env: true
  cors:
    enabled: true
    origins:
      - https://app.example.com
board:
  style: plain
`
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

		cfg, err := Load(configPath, dataDir)
		require.NoError(t, err)

		assert.Equal(t, "board.json", cfg.DataFile)
		assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr)
		assert.Equal(t, "/mcp", cfg.HTTP.Path)
		assert.True(t, cfg.HTTP.Stateless)
		assert.True(t, cfg.HTTP.PortFromEnv)
		assert.True(t, cfg.HTTP.CORS.Enabled)
		assert.Equal(t, []string{"https://app.example.com"}, cfg.HTTP.CORS.Origins)
		assert.Equal(t, StylePlain, cfg.Board.Style)
	})

	t.Run("partial yaml keeps remaining defaults", func(t *testing.T) {
		dataDir := t.TempDir()
		configPath := filepath.Join(dataDir, "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("data_file: mine.json\n"), 0o644))

		cfg, err := Load(configPath, dataDir)
		require.NoError(t, err)

		assert.Equal(t, "mine.json", cfg.DataFile)
		assert.Equal(t, "127.0.0.1:8000", cfg.HTTP.Addr)
		assert.Equal(t, StyleAuto, cfg.Board.Style)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		dataDir := t.TempDir()
		configPath := filepath.Join(dataDir, "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("data_file: [not closed"), 0o644))

		_, err := Load(configPath, dataDir)
		assert.ErrorContains(t, err, "parse config file")
	})
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) Config {
		t.Helper()
		cfg := DefaultConfig()
		cfg.DataDir = t.TempDir()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "empty data file",
			mutate:  func(c *Config) { c.DataFile = "" },
			wantErr: "data_file cannot be empty",
		},
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.DataDir = "" },
			wantErr: "data directory cannot be empty",
		},
		{
			name:    "addr without port",
			mutate:  func(c *Config) { c.HTTP.Addr = "localhost" },
			wantErr: "not host:port",
		},
		{
			name:    "path without leading slash",
			mutate:  func(c *Config) { c.HTTP.Path = "mcp" },
			wantErr: "must begin with /",
		},
		{
			name: "cors enabled without origins",
			mutate: func(c *Config) {
				c.HTTP.CORS.Enabled = true
				c.HTTP.CORS.Origins = []string{}
			},
			wantErr: "origins cannot be empty",
		},
		{
			name:    "unknown board style",
			mutate:  func(c *Config) { c.Board.Style = "neon" },
			wantErr: "board.style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDataFilePath(t *testing.T) {
	t.Run("relative resolves under data dir", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DataDir = "/var/lib/taskboard"

		assert.Equal(t, filepath.Join("/var/lib/taskboard", "tasks.json"), cfg.DataFilePath())
	})

	t.Run("absolute is kept", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DataDir = "/var/lib/taskboard"
		cfg.DataFile = "/srv/tasks.json"

		assert.Equal(t, "/srv/tasks.json", cfg.DataFilePath())
	})
}
