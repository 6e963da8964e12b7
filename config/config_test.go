package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.Catalog.LookupTimeout)
	assert.Equal(t, 8, cfg.Catalog.MaxConcurrent)
	assert.Equal(t, 6*time.Hour, cfg.Catalog.CacheTTL)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10.0, cfg.Catalog.RequestsPerSecond)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("FUELPLATE_SERVER_PORT", "9090")
	t.Setenv("FUELPLATE_DATABASE_DRIVER", "sqlite")
	t.Setenv("FUELPLATE_DATABASE_PATH", "/tmp/fuelplate-test.db")
	t.Setenv("FUELPLATE_AUTH_JWT_SECRET", "test-secret")
	t.Setenv("FUELPLATE_CATALOG_MAX_CONCURRENT", "3")
	t.Setenv("FUELPLATE_SESSION_TTL", "30m")
	t.Setenv("FUELPLATE_REDIS_URL", "redis://localhost:6379/1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/fuelplate-test.db", cfg.Database.Path)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 3, cfg.Catalog.MaxConcurrent)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
}

func TestValidateConfigProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CI", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.jwt_secret")
	assert.Contains(t, err.Error(), "database.password")

	t.Setenv("FUELPLATE_AUTH_JWT_SECRET", "prod-secret")
	t.Setenv("FUELPLATE_DATABASE_PASSWORD", "prod-pass")
	_, err = LoadConfig()
	assert.NoError(t, err)

	t.Setenv("FUELPLATE_DATABASE_DRIVER", "sqlite")
	_, err = LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite is not allowed")
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("CI", "")

	cfg := &Config{
		Server:   ServerConfig{Port: 70000},
		Database: DatabaseConfig{Driver: "mysql"},
		Catalog:  CatalogConfig{BaseURL: "http://x", LookupTimeout: time.Second, MaxConcurrent: 0},
		Session:  SessionConfig{TTL: time.Hour},
		Storage:  StorageConfig{PresignExpiry: time.Minute},
	}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.Contains(t, err.Error(), "database.driver")
	assert.Contains(t, err.Error(), "catalog.max_concurrent")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("ENV", "production")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
	assert.True(t, GetEnvironment().IsDevelopment())
}

func TestDatabaseConfigDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "fuel", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=fuel sslmode=disable", d.DSN())
	assert.Equal(t, "postgres://u:p@db:5432/fuel?sslmode=disable", d.URL())
}
