package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hisaab-kitaab/internal/infrastructure/memory"
	"github.com/jhoicas/hisaab-kitaab/internal/infrastructure/sqlite"
	"github.com/jhoicas/hisaab-kitaab/pkg/config"
	"github.com/jhoicas/hisaab-kitaab/pkg/logger"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}}
	s, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &memory.InvoiceRepo{}, s.Invoices)
	assert.IsType(t, &memory.UserRepo{}, s.Users)
}

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{
		Driver:     config.StorageSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "hk.db"),
	}}
	s, err := Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &sqlite.InvoiceRepo{}, s.Invoices)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "redis"}}
	_, err := Open(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}
