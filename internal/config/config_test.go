package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("API_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	require.Equal(t, 15*time.Second, cfg.API.Timeout())
	require.Equal(t, "127.0.0.1:5000", cfg.DevServer.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("API_BASE_URL", "http://api.local")
	t.Setenv("API_TIMEOUT_SECONDS", "0")
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	require.Equal(t, "http://api.local", cfg.API.BaseURL)
	require.Zero(t, cfg.API.Timeout())
	require.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "floppy")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "one")

	_, err := Load()
	require.Error(t, err)
}
