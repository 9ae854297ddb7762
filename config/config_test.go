package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NOTEFUL_CONFIG", "PORT", "DATABASE_URL", "DATABASE_NS", "DATABASE_DB",
		"DATABASE_USER", "DATABASE_PASS", "JWT_SECRET", "JWT_EXPIRY", "LOG_PRETTY",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "ws://localhost:8000/rpc", cfg.Database.URL)
	assert.Equal(t, "noteful", cfg.Database.Namespace)
	assert.Equal(t, "noteful", cfg.Database.Database)
	assert.Equal(t, "dev-secret", cfg.JWT.Secret)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expiry)
	assert.False(t, cfg.LogPretty)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "ws://db:8000/rpc")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "15m")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "ws://db:8000/rpc", cfg.Database.URL)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 15*time.Minute, cfg.JWT.Expiry)
	assert.True(t, cfg.LogPretty)
}

func TestLoadInvalidExpiry(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_EXPIRY", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_EXPIRY")
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7070"
database:
  url: ws://file-db:8000/rpc
  namespace: prod
jwt:
  secret: from-file
  expiry: 1h
`), 0o600))
	t.Setenv("NOTEFUL_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "ws://file-db:8000/rpc", cfg.Database.URL)
	assert.Equal(t, "prod", cfg.Database.Namespace)
	assert.Equal(t, "noteful", cfg.Database.Database, "unset file fields keep defaults")
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, time.Hour, cfg.JWT.Expiry)
}

func TestEnvWinsOverFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"7070\"\n"), 0o600))
	t.Setenv("NOTEFUL_CONFIG", path)
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoadBadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("NOTEFUL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}
