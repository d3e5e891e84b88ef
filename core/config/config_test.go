package config_test

import (
	"testing"

	"registry-ingest/core/config"
	"registry-ingest/feature/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Source.PageSize)
	assert.Equal(t, 50, cfg.Source.MaxPages)
	assert.Equal(t, 15, cfg.Source.TimeoutSeconds)
	assert.Equal(t, registry.ModeIdentity, cfg.Source.Mode)
	assert.Equal(t, "registry-sync", cfg.Source.JobName)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Storage.Enabled(), "archival is off unless an endpoint is set")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SOURCE_BASE_URL", "https://registry.example.org/api/companies")
	t.Setenv("SOURCE_PAGE_SIZE", "25")
	t.Setenv("SOURCE_MODE", "checksum")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("STORAGE_ENDPOINT", "localhost:9000")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://registry.example.org/api/companies", cfg.Source.BaseURL)
	assert.Equal(t, 25, cfg.Source.PageSize)
	assert.Equal(t, registry.ModeChecksum, cfg.Source.Mode)
	assert.True(t, cfg.Source.IsValidMode())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Storage.Enabled())
}
