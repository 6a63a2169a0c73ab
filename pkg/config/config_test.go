package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hisaab-kitaab/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "hisaab.db", cfg.Storage.SQLitePath)
	assert.Equal(t, config.PasswordPlain, cfg.Auth.PasswordMode)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr())
	assert.Equal(t, 720, cfg.JWT.Expiration)
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("AUTH_PASSWORD_MODE", "bcrypt")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_EXPIRATION_MINUTES", "no-es-numero")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, config.PasswordBcrypt, cfg.Auth.PasswordMode)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 720, cfg.JWT.Expiration, "un entero inválido cae al default")
}

func TestLoad_SinSecretoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_DriverDesconocidoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("STORAGE_DRIVER", "redis")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "hk", Password: "p@ss:word", DBName: "hisaab", SSLMode: "disable"}
	assert.Equal(t, "postgres://hk:p%40ss%3Aword@db:5432/hisaab?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
