package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
fetch:
  timeout: 10s
  user_agent: test-agent
  retries: 5
  retry_delay: 1s
  max_size: 2048
server:
  listen: ":9090"
  timeout: 45s
  max_body: 4096
sanitize:
  enabled: true
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, "test-agent", cfg.Fetch.UserAgent)
		require.NotNil(t, cfg.Fetch.Retries)
		assert.Equal(t, 5, *cfg.Fetch.Retries)
		assert.Equal(t, time.Second, cfg.Fetch.RetryDelay)
		assert.Equal(t, int64(2048), cfg.Fetch.MaxSize)
		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, int64(4096), cfg.Server.MaxBody)
		assert.True(t, cfg.Sanitize.Enabled)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8081\"\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8081", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, int64(1024*1024), cfg.Server.MaxBody)
		assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, "rsskit/1.0", cfg.Fetch.UserAgent)
		require.NotNil(t, cfg.Fetch.Retries)
		assert.Equal(t, 3, *cfg.Fetch.Retries)
		assert.Equal(t, 500*time.Millisecond, cfg.Fetch.RetryDelay)
		assert.Equal(t, int64(10*1024*1024), cfg.Fetch.MaxSize)
		assert.False(t, cfg.Sanitize.Enabled)
	})

	t.Run("retries disabled", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "fetch:\n  retries: 0\n"))
		require.NoError(t, err)
		require.NotNil(t, cfg.Fetch.Retries)
		assert.Equal(t, 0, *cfg.Fetch.Retries)
	})

	t.Run("empty path", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("RSSKIT_TEST_AGENT", "env-agent")
		cfg, err := Load(writeConfig(t, "fetch:\n  user_agent: ${RSSKIT_TEST_AGENT}\n"))
		require.NoError(t, err)
		assert.Equal(t, "env-agent", cfg.Fetch.UserAgent)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		tbl := []struct {
			content string
			errMsg  string
		}{
			{"fetch:\n  timeout: 100ms\n", "fetch timeout must be at least 1 second"},
			{"fetch:\n  retries: -1\n", "fetch retries must be non-negative"},
			{"fetch:\n  max_size: -5\n", "fetch max_size must be positive"},
			{"server:\n  timeout: 1ms\n", "server timeout must be at least 1 second"},
			{"server:\n  max_body: -1\n", "server max_body must be positive"},
		}
		for _, tt := range tbl {
			cfg, err := Load(writeConfig(t, tt.content))
			require.Error(t, err, tt.content)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validate config")
			assert.Contains(t, err.Error(), tt.errMsg)
		}
	})

	t.Run("unknown keys are not fatal", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "fetch:\n  timout: 5s\nextra: 1\n"))
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	})
}
