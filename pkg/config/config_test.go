package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "rental_db", cfg.Database.Name)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpirationTime)
	assert.Equal(t, "rental", cfg.Metrics.Prefix)
	assert.NotEmpty(t, cfg.Demo.Email)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_MAX_IDLE_CONNS", "5")
	t.Setenv("JWT_EXPIRATION", "2h")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpirationTime)
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("JWT_EXPIRATION", "soon")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 100, cfg.Database.MaxOpenConns)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpirationTime)
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "db", Port: "5432", User: "app",
		Password: "secret", Name: "rental_db", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=rental_db sslmode=disable",
		db.GetDSN())
}
