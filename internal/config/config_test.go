package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: production
jwt:
  access_secret: file-access
  refresh_secret: file-refresh
  access_token_expiration: 30m
awards:
  strict_degree_check: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "file-access", cfg.JWT.AccessSecret)
	assert.Equal(t, "30m", cfg.JWT.AccessTokenExpiration)
	assert.False(t, cfg.Awards.StrictDegreeCheck)

	// Untouched values stay at their defaults
	assert.Equal(t, "360h", cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "Uploads", cfg.Storage.UploadsDir)
	assert.Equal(t, "awards", cfg.Storage.AwardsDir)
}

func TestLoadConfigMissingFileUsesEnv(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "env-access")
	t.Setenv("JWT_REFRESH_SECRET", "env-refresh")
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "env-access", cfg.JWT.AccessSecret)
	assert.False(t, cfg.IsProduction())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "env-access")
	t.Setenv("JWT_REFRESH_SECRET", "env-refresh")
	t.Setenv("DB_NAME", "awardhub_test")

	path := writeConfigFile(t, `
database:
  dbname: from_file
jwt:
  access_secret: file-access
  refresh_secret: file-refresh
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "awardhub_test", cfg.Database.DBName)
	assert.Equal(t, "env-access", cfg.JWT.AccessSecret)
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  access_secret: only-access
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh secret")
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  access_secret: a
  refresh_secret: b
  access_token_expiration: soon
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{}
	cfg.CORS.AllowedOrigins = "http://localhost:3000, https://app.example.com ,"

	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.AllowedOrigins())
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "awardhub"

	assert.Equal(t,
		"postgres://app:pw@db:5433/awardhub?sslmode=disable",
		cfg.GetPostgresConnectionString())
}
