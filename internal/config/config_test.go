package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_ReturnsDefaults(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "forgelode.db", cfg.Store.Path)
	assert.Equal(t, DefaultProjectCacheEntries, cfg.Cache.ProjectEntries)
	assert.Equal(t, DefaultVersionCacheEntries, cfg.Cache.VersionEntries)
	assert.Equal(t, "search-index", cfg.Index.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "forgelode.db", cfg.Store.Path)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indexer.yaml")
	data := `
store:
  path: /var/lib/forgelode/catalog.db
cache:
  project_entries: 123
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/forgelode/catalog.db", cfg.Store.Path)
	assert.Equal(t, 123, cfg.Cache.ProjectEntries)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultVersionCacheEntries, cfg.Cache.VersionEntries)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indexer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  path: from-file.db\n"), 0o644))

	t.Setenv("FORGELODE_STORE_PATH", "from-env.db")
	t.Setenv("FORGELODE_LOG_LEVEL", "warn")
	t.Setenv("FORGELODE_PROJECT_CACHE_ENTRIES", "42")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", cfg.Store.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 42, cfg.Cache.ProjectEntries)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "indexer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cfg := NewConfig()
	cfg.Cache.ProjectEntries = 0
	require.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.Cache.VersionEntries = -1
	require.Error(t, cfg.Validate())

	cfg = NewConfig()
	cfg.Logging.Level = "loud"
	require.Error(t, cfg.Validate())
}
