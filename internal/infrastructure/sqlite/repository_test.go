package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jhoicas/hisaab-kitaab/internal/infrastructure/sqlite"
	"github.com/jhoicas/hisaab-kitaab/internal/infrastructure/storetest"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "hisaab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return db
}

func TestInvoiceRepo_Contrato(t *testing.T) {
	storetest.RunInvoiceRepository(t, sqlite.NewInvoiceRepository(openTestDB(t)))
}

func TestUserRepo_Contrato(t *testing.T) {
	storetest.RunUserRepository(t, sqlite.NewUserRepository(openTestDB(t)))
}

func TestInvoiceRepo_JSONCorruptoEsError(t *testing.T) {
	db := openTestDB(t)
	repo := sqlite.NewInvoiceRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, storetest.SampleInvoice("inv-x", "ana", "X", "2025-01-01")))

	require.NoError(t, db.Exec(`UPDATE invoices SET items = ? WHERE id = ?`, "{no es json", "inv-x").Error)

	got, err := repo.GetByID(ctx, "inv-x")
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestOpen_PersisteEntreAperturas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hisaab.db")
	ctx := context.Background()

	db, err := sqlite.Open(path)
	require.NoError(t, err)
	inv := storetest.SampleInvoice("inv-p", "ana", "Persistente", "2025-01-01")
	require.NoError(t, sqlite.NewInvoiceRepository(db).Save(ctx, inv))
	require.NoError(t, sqlite.Close(db))

	db, err = sqlite.Open(path)
	require.NoError(t, err)
	defer sqlite.Close(db)
	got, err := sqlite.NewInvoiceRepository(db).GetByID(ctx, "inv-p")
	require.NoError(t, err)
	storetest.AssertSameInvoice(t, inv, got)
}
