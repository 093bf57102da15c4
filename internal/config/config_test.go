package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "PHANTOM_IROPS_WH", cfg.Warehouse.Warehouse)
	assert.Equal(t, "PHANTOM_IROPS", cfg.Warehouse.Database)
	assert.Equal(t, "ANALYTICS", cfg.Warehouse.Schema)
	assert.Equal(t, "/snowflake/session/token", cfg.Warehouse.TokenPath)
	assert.Equal(t, "irops.db", cfg.Store.Path)
	assert.Equal(t, "claude-3-5-sonnet", cfg.Agent.Model)
	assert.True(t, cfg.Agent.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
warehouse:
  account: phantomair
  user: ops_svc
  warehouse: OPS_WH
store:
  path: /var/lib/irops/sessions.db
agent:
  enabled: false
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("IROPS_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "phantomair", cfg.Warehouse.Account)
	assert.Equal(t, "ops_svc", cfg.Warehouse.User)
	assert.Equal(t, "OPS_WH", cfg.Warehouse.Warehouse)
	assert.Equal(t, "/var/lib/irops/sessions.db", cfg.Store.Path)
	assert.False(t, cfg.Agent.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("IROPS_WAREHOUSE_PASSWORD", "hunter2")
	t.Setenv("IROPS_STORE_PATH", "/tmp/override.db")
	t.Setenv("IROPS_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hunter2", cfg.Warehouse.Password)
	assert.Equal(t, "/tmp/override.db", cfg.Store.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("IROPS_LOG_LEVEL", "loud")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("IROPS_LOG_FORMAT", "csv")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingPointedConfigFile(t *testing.T) {
	t.Setenv("IROPS_CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
