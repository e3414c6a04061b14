package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.Equal(t, "roomos-client.db", cfg.Storage.Path)
	assert.Equal(t, 15*time.Second, cfg.Sync.ProbeInterval)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Metrics.Listen)
}

func TestLoad_YAMLFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roomos.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  base_url: https://roomos.example.com
storage:
  driver: sqlite
  path: /var/lib/roomos/client.db
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://roomos.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/var/lib/roomos/client.db", cfg.Storage.Path)
	// Незатронутые файлом значения остаются умолчаниями
	assert.Equal(t, 10*time.Second, cfg.Server.Timeout)
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roomos.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"logging":{"level":"debug","format":"json"}}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roomos.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  base_url: https://from-file\n"), 0o600))

	t.Setenv("ROOMOS_SERVER__BASE_URL", "https://from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://from-env", cfg.Server.BaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roomos.ini")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestValidate_BadDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Driver = "postgres"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage driver")
}
