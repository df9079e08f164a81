package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, "DZD", cfg.App.Currency)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 5, cfg.Auth.LoginRatePerMinute)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_PASSWORD", "p@ss:word")
	t.Setenv("DB_MIGRATE", "true")
	t.Setenv("SUPPLIERS_PRINT", " Atelier A , ,Atelier B")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, []string{"Atelier A", "Atelier B"}, cfg.Ledger.PrintSuppliers)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "postgres://postgres:p%40ss%3Aword@db:6543/merchbydz?sslmode=disable", cfg.DB.ConnectionString())
}

func TestLoad_DatabaseURLWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@remote:5432/x")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@remote:5432/x", cfg.DB.ConnectionString())
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	_, err := Load()
	assert.Error(t, err)
}
