package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, 10, cfg.App.ShutdownTimeoutSeconds)
	assert.Equal(t, "postgres", cfg.Primary.Driver)
	assert.Equal(t, "postgres", cfg.Secondary.Driver)
	assert.NotEqual(t, cfg.Primary.URL, cfg.Secondary.URL)
	assert.Equal(t, 25, cfg.Pool.MaxOpenConns)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PRIMARY_DB_DRIVER", "mysql")
	t.Setenv("PRIMARY_DB_URL", "mysql://localhost:3306/demo")
	t.Setenv("RATELIMIT_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.HTTPPort)
	assert.Equal(t, "mysql", cfg.Primary.Driver)
	assert.Equal(t, "mysql://localhost:3306/demo", cfg.Primary.URL)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestValidate_RejectsUnsupportedDriver(t *testing.T) {
	t.Setenv("PRIMARY_DB_DRIVER", "oracle")

	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestValidate_RejectsEmptyDatasourceURL(t *testing.T) {
	cfg := Config{
		App:       AppConfig{HTTPPort: "8080"},
		Primary:   DatasourceConfig{URL: "", Driver: "postgres"},
		Secondary: DatasourceConfig{URL: "postgres://localhost:5433/demo", Driver: "postgres"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URL must not be empty")
}
