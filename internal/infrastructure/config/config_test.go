package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("EVOLEXX_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "evolexx-store", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "http://localhost:3000", cfg.App.FrontendURL)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "evolexx", cfg.Database.DBName)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "evolexx-store", cfg.JWT.Issuer)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Redis.Host)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EVOLEXX_JWT_SECRET", "test-secret")
	t.Setenv("EVOLEXX_APP_ENV", "production")
	t.Setenv("EVOLEXX_DATABASE_HOST", "db.internal")
	t.Setenv("EVOLEXX_DATABASE_PORT", "5433")
	t.Setenv("EVOLEXX_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("EVOLEXX_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret is required")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "pw",
		DBName:   "evolexx",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=evolexx sslmode=disable",
		cfg.DSN())
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{
		JWT:      JWTConfig{Secret: "s", Expiration: time.Hour},
		Database: DatabaseConfig{DBName: "evolexx"},
	}
	assert.NoError(t, cfg.Validate())

	cfg.JWT.Expiration = 0
	assert.Error(t, cfg.Validate())

	cfg.JWT.Expiration = time.Hour
	cfg.Database.DBName = ""
	assert.Error(t, cfg.Validate())
}
