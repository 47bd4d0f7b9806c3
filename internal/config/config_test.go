package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("JWT_TTL_MIN", "30")
	os.Setenv("REDIS_ADDR", "localhost:6379")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("MINIO_USE_SSL")
		os.Unsetenv("JWT_TTL_MIN")
		os.Unsetenv("REDIS_ADDR")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "sitrack:changes", cfg.Redis.EventChannel)
	assert.Equal(t, 15*time.Minute, cfg.MinIO.PresignExpiry())
	assert.Equal(t, "sitrack.gov.id", cfg.Auth.EmailDomain)
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "Asia/Jakarta"}
	assert.Equal(t, "Asia/Jakarta", cfg.Location().String())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestParseCatalog(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c, err := ParseCatalog([]byte(`
services: [Perizinan, Pengaduan]
requirements:
  Perizinan: [KTP, NPWP]
todo_items: [Verifikasi berkas]
`))
		require.NoError(t, err)
		assert.True(t, c.HasService("Perizinan"))
		assert.False(t, c.HasService("Legalisir"))
		assert.Equal(t, []string{"KTP", "NPWP"}, c.RequiredDocuments("Perizinan"))
		assert.Empty(t, c.RequiredDocuments("Pengaduan"))
		assert.True(t, c.HasTodo("Verifikasi berkas"))
	})

	t.Run("no services", func(t *testing.T) {
		_, err := ParseCatalog([]byte(`todo_items: [a]`))
		assert.Error(t, err)
	})

	t.Run("requirements for unknown service", func(t *testing.T) {
		_, err := ParseCatalog([]byte("services: [A]\nrequirements:\n  B: [KTP]\n"))
		assert.ErrorContains(t, err, `unknown service "B"`)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseCatalog([]byte("services: [A"))
		assert.Error(t, err)
	})
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog(), c)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("services: [Pengaduan]\n"), 0o600))
	c, err = LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pengaduan"}, c.Services)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
