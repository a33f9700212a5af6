package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "taxonomy-mapper", cfg.Service.Name)
	assert.Equal(t, 8090, cfg.Service.Port)
	assert.Equal(t, 10, cfg.Service.Concurrency)
	assert.Equal(t, 50, cfg.Service.BatchRPS)
	assert.Equal(t, 30*time.Second, cfg.Service.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Service.WriteTimeout)
	assert.Equal(t, "resources", cfg.Taxonomy.ResourceDir)
	assert.Equal(t, "taxonomy-mapper.db", cfg.Storage.HistoryPath)
	assert.Equal(t, 100, cfg.Storage.HistoryLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Service.Debug)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
service:
  name: mapper-test
  port: 9999
  concurrency: 3
taxonomy:
  resource_dir: /data/taxonomy
storage:
  history_path: ":memory:"
logging:
  level: debug
  development: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mapper-test", cfg.Service.Name)
	assert.Equal(t, 9999, cfg.Service.Port)
	assert.Equal(t, 3, cfg.Service.Concurrency)
	assert.Equal(t, "/data/taxonomy", cfg.Taxonomy.ResourceDir)
	assert.Equal(t, ":memory:", cfg.Storage.HistoryPath)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)

	// Unset fields still get defaults.
	assert.Equal(t, 50, cfg.Service.BatchRPS)
	assert.Equal(t, 100, cfg.Storage.HistoryLimit)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TAXONOMY_MAPPER_PORT", "7070")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("TAXONOMY_RESOURCE_DIR", "/override")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Service.Port)
	assert.True(t, cfg.Service.Debug)
	assert.Equal(t, "/override", cfg.Taxonomy.ResourceDir)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestEnvOverridesBeatYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("service:\n  port: 1234\n"), 0o644))

	t.Setenv("TAXONOMY_MAPPER_PORT", "5678")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5678, cfg.Service.Port)
}

func TestGetConfigPath(t *testing.T) {
	assert.Equal(t, "config.yml", GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/mapper.yml")
	assert.Equal(t, "/etc/mapper.yml", GetConfigPath("config.yml"))
}
