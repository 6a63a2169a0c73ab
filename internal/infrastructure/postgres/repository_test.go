package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hisaab-kitaab/internal/infrastructure/postgres"
	"github.com/jhoicas/hisaab-kitaab/internal/infrastructure/storetest"
	"github.com/jhoicas/hisaab-kitaab/pkg/config"
)

// Pruebas de integración: requieren TEST_DATABASE_URL apuntando a una base desechable.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE invoices, users`)
	require.NoError(t, err)
	return pool
}

func TestInvoiceRepo_Contrato(t *testing.T) {
	storetest.RunInvoiceRepository(t, postgres.NewInvoiceRepository(testPool(t)))
}

func TestUserRepo_Contrato(t *testing.T) {
	storetest.RunUserRepository(t, postgres.NewUserRepository(testPool(t)))
}
