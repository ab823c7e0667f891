package config_test

import (
	"testing"
	"time"

	"github.com/koya1616/koko-pic/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("KOKO_ENV", "local")
	t.Setenv("KOKO_INTERVAL", "10m")
	t.Setenv("KOKO_PROVIDER_KEY", "testAPIKey")
	t.Setenv("KOKO_LANGUAGE", "en")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
	assert.Equal(t, 10*time.Minute, cfg.Interval)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 10, cfg.Workers)
}

func TestMustLoad_Defaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "nominatim", cfg.ProviderType)
	assert.Equal(t, "ja", cfg.Language)
	assert.InEpsilon(t, 35.6812, cfg.DefaultCenter.Latitude, 0.0001)
	assert.InEpsilon(t, 139.7671, cfg.DefaultCenter.Longitude, 0.0001)
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestMustLoad_IntervalError(t *testing.T) {
	t.Setenv("KOKO_INTERVAL", "error_value")

	assert.PanicsWithValue(t, "failed to parse interval from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_WorkersError(t *testing.T) {
	t.Setenv("KOKO_WORKERS", "error_value")

	assert.PanicsWithValue(t, "failed to parse workers from configuration, must be a positive integer", func() {
		config.MustLoad()
	})
}
