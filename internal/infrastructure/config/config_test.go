package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gita-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "4000", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 168*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "session", cfg.Cookie.Name)
	assert.Equal(t, 6, cfg.OTP.Length)
	assert.Equal(t, 10*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, 5, cfg.OTP.Attempts)
	assert.Equal(t, 24*time.Hour, cfg.Content.CacheTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GITA_APP_PORT", "8080")
	t.Setenv("GITA_DATABASE_PASSWORD", "secret")
	t.Setenv("GITA_OTP_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 5*time.Minute, cfg.OTP.TTL)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("GITA_APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestLoad_ProductionRejectsDevEcho(t *testing.T) {
	t.Setenv("GITA_APP_ENV", "production")
	t.Setenv("GITA_JWT_SECRET", "prod-secret")
	t.Setenv("GITA_OTP_DEV_SHOW_OTP", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dev_show_otp")
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "gita",
		Password: "pw",
		DBName:   "gitadb",
		SSLMode:  "require",
	}

	assert.Equal(t, "host=db port=5433 user=gita password=pw dbname=gitadb sslmode=require", cfg.DSN())
	assert.Equal(t, "postgres://gita:pw@db:5433/gitadb?sslmode=require", cfg.URL())
}

func TestDevShowOTP(t *testing.T) {
	dev := &Config{App: AppConfig{Env: "development"}}
	assert.True(t, dev.DevShowOTP(), "dev environment always echoes codes")

	prod := &Config{App: AppConfig{Env: "production"}}
	assert.False(t, prod.DevShowOTP())
}
