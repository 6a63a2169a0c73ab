// Package storage arma los repositorios según STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/hisaab-kitaab/internal/domain/repository"
	"github.com/jhoicas/hisaab-kitaab/internal/infrastructure/memory"
	"github.com/jhoicas/hisaab-kitaab/internal/infrastructure/postgres"
	"github.com/jhoicas/hisaab-kitaab/internal/infrastructure/sqlite"
	"github.com/jhoicas/hisaab-kitaab/pkg/config"
	"github.com/jhoicas/hisaab-kitaab/pkg/logger"
)

// Stores repositorios listos para inyectar. Close libera la conexión subyacente.
type Stores struct {
	Invoices repository.InvoiceRepository
	Users    repository.UserRepository
	Close    func() error
}

// Open abre el almacenamiento configurado. Con postgres crea las tablas si no existen.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Stores, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &Stores{
			Invoices: memory.NewInvoiceRepository(),
			Users:    memory.NewUserRepository(),
			Close:    func() error { return nil },
		}, nil

	case config.StorageSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.Storage.SQLitePath).Msg("almacenamiento SQLite")
		return &Stores{
			Invoices: sqlite.NewInvoiceRepository(db),
			Users:    sqlite.NewUserRepository(db),
			Close:    func() error { return sqlite.Close(db) },
		}, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.DBName).Msg("almacenamiento PostgreSQL")
		return &Stores{
			Invoices: postgres.NewInvoiceRepository(pool),
			Users:    postgres.NewUserRepository(pool),
			Close:    func() error { pool.Close(); return nil },
		}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
}
