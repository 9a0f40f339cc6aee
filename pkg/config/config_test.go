package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MOBYDOCK_SETTINGS", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("REDIS_HOST", "")
	t.Setenv("FEED_COUNT_KEY", "")
	t.Setenv("SEED_RATE_PER_MINUTE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, "feed_count", cfg.Redis.FeedCountKey)
	assert.Equal(t, 0, cfg.Seed.RatePerMinute)
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("MOBYDOCK_SETTINGS", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "moby")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "dock")
	t.Setenv("REDIS_PORT", "not-a-number")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://moby.example, ,https://dock.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "host=postgres port=6543 user=moby password=secret dbname=dock sslmode=disable", cfg.Database.DatabaseDSN())
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.True(t, cfg.OTEL.Enabled)
	assert.Equal(t, []string{"https://moby.example", "https://dock.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_SettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.env")
	require.NoError(t, os.WriteFile(path, []byte("REDIS_HOST=redis\nSERVER_PORT=9000\n"), 0o600))

	t.Setenv("MOBYDOCK_SETTINGS", path)
	// An existing variable wins over the file.
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("REDIS_HOST", "")
	os.Unsetenv("REDIS_HOST")
	t.Cleanup(func() { os.Unsetenv("REDIS_HOST") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Redis.Host)
	assert.Equal(t, 8081, cfg.Server.Port)
}
