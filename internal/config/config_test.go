package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
database:
  path: /var/lib/muscu/workout.db
server:
  host: 0.0.0.0
  port: 9000
catalog:
  path: /etc/muscu/catalog.yaml
history:
  default_days: 7
log:
  level: debug
  use_cases: true
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/muscu/workout.db", cfg.Database.Path)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr())
	assert.Equal(t, "/etc/muscu/catalog.yaml", cfg.Catalog.Path)
	assert.Equal(t, 7, cfg.History.DefaultDays)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.True(t, cfg.Log.UseCases)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".muscu", "workout.db"), cfg.Database.Path)
	assert.Equal(t, "127.0.0.1:8501", cfg.Server.Addr())
	assert.Equal(t, 30, cfg.History.DefaultDays)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	assert.Empty(t, cfg.Catalog.Path)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "server:\n  port: 8600\n"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8600, cfg.Server.Port)
	assert.Equal(t, 30, cfg.History.DefaultDays)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MUSCU_DB", ":memory:")
	t.Setenv("MUSCU_SERVER_PORT", "8777")
	t.Setenv("MUSCU_CATALOG", "/tmp/cat.yaml")
	t.Setenv("MUSCU_LOG_LEVEL", "warn")
	t.Setenv("MUSCU_LOG_USE_CASES", "false")

	cfg, err := Load(writeTemp(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, 8777, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "unset env keeps the file value")
	assert.Equal(t, "/tmp/cat.yaml", cfg.Catalog.Path)
	assert.Equal(t, slog.LevelWarn, cfg.Log.SlogLevel())
	assert.False(t, cfg.Log.UseCases)
}

func TestLoad_InvalidPortEnvIgnored(t *testing.T) {
	t.Setenv("MUSCU_SERVER_PORT", "not-a-port")

	cfg, err := Load(writeTemp(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoad_Validation(t *testing.T) {
	tests := map[string]string{
		"port out of range": "server:\n  port: 70000\n",
		"negative days":     "history:\n  default_days: -1\n",
		"unknown level":     "log:\n  level: verbose\n",
		"empty db path":     "database:\n  path: \"\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeTemp(t, content))
			assert.ErrorContains(t, err, "config validation")
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeTemp(t, "server: [unclosed"))
	assert.ErrorContains(t, err, "parsing config file")
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "x.db"), expandHome("~/x.db"))
	assert.Equal(t, "/abs/x.db", expandHome("/abs/x.db"))
	assert.Equal(t, ":memory:", expandHome(":memory:"))
}
