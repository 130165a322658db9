package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MemoryDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("DEFAULT_TIMEZONE", "America/New_York")
	t.Setenv("ENFORCE_CONTACT_OWNERSHIP", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "America/New_York", cfg.DefaultTimezone.String())
	assert.False(t, cfg.EnforceContactOwnership)
	assert.Equal(t, 60, cfg.RateLimitWindowSeconds)
}

func TestLoadConfig_Rejects(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("DATABASE_URL", "")
		t.Setenv("AUTH_JWT_SECRET", "secret")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "DATABASE_URL")
	})

	t.Run("no auth", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("AUTH_JWT_SECRET", "")
		t.Setenv("AUTH_JWKS_URL", "")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "AUTH_JWT_SECRET")
	})

	t.Run("bad timezone", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("AUTH_JWT_SECRET", "secret")
		t.Setenv("DEFAULT_TIMEZONE", "Mars/Olympus")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "DEFAULT_TIMEZONE")
	})
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{StorageDriver: "sqlite", JWTSecret: "x", RateLimitWindowSeconds: 1, RateLimitThreshold: 1, DefaultTimezone: time.UTC}
	assert.ErrorContains(t, cfg.Validate(), "unknown STORAGE_DRIVER")
}
