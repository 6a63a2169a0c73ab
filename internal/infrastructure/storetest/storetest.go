// Package storetest contiene las pruebas de contrato comunes a todos los adaptadores
// de InvoiceRepository y UserRepository (memory, sqlite, postgres).
package storetest

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hisaab-kitaab/internal/domain"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/pricing"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/repository"
)

// SampleInvoice construye una factura calculada de prueba.
func SampleInvoice(id, owner, name, date string) *entity.Invoice {
	n := func(s string) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.RequireFromString(s)) }
	inv := &entity.Invoice{
		ID:     id,
		UserID: owner,
		Name:   name,
		Date:   date,
		Status: entity.InvoiceStatusPending,
		Items: []entity.InvoiceItem{
			{ID: id + "-1", ItemName: "Panadol", Rate: n("100"), Qty: n("2"), DiscountPercent: n("0")},
			{ID: id + "-2", ItemName: "Augmentin", Rate: n("100"), Qty: n("2"), DiscountPercent: n("10")},
			{ID: id + "-3", ItemName: "Sin datos"},
		},
		PaidAmounts: []entity.PaidAmount{
			{ID: id + "-p1", Narration: "Anticipo", Amount: n("100")},
			{ID: id + "-p2", Narration: "Sin monto"},
		},
		CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	pricing.Apply(inv)
	return inv
}

// AssertSameInvoice compara dos facturas campo a campo salvo UpdatedAt, que debe ser >= el original.
// Los montos se comparan por valor (85.5 == 85.50).
func AssertSameInvoice(t *testing.T, want, got *entity.Invoice) {
	t.Helper()
	require.NotNil(t, got)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "createdAt: %v != %v", want.CreatedAt, got.CreatedAt)
	assert.False(t, got.UpdatedAt.Before(want.UpdatedAt), "updatedAt no puede retroceder")

	norm := func(inv *entity.Invoice) string {
		cp := *inv
		cp.CreatedAt, cp.UpdatedAt = time.Time{}, time.Time{}
		b, err := json.Marshal(cp)
		require.NoError(t, err)
		return string(b)
	}
	assert.JSONEq(t, norm(want), norm(got))
}

// RunInvoiceRepository ejecuta el contrato de InvoiceRepository sobre repo (debe estar vacío).
func RunInvoiceRepository(t *testing.T, repo repository.InvoiceRepository) {
	ctx := context.Background()

	t.Run("GetByID inexistente devuelve nil sin error", func(t *testing.T) {
		inv, err := repo.GetByID(ctx, "no-existe")
		require.NoError(t, err)
		assert.Nil(t, inv)
	})

	t.Run("Save y GetByID conservan todos los campos", func(t *testing.T) {
		inv := SampleInvoice("inv-rt", "ana", "Farmacia Central", "2025-03-01")
		before := time.Now().UTC().Add(-time.Second)
		require.NoError(t, repo.Save(ctx, inv))
		assert.False(t, inv.UpdatedAt.Before(before), "Save debe sobrescribir UpdatedAt")

		got, err := repo.GetByID(ctx, "inv-rt")
		require.NoError(t, err)
		AssertSameInvoice(t, inv, got)
		assert.True(t, got.Balance.Equal(got.GrandTotal.Sub(got.TotalPaid)))
		assert.False(t, got.Items[2].Qty.Valid, "un valor sin asignar se conserva como tal")
	})

	t.Run("Save reemplaza el registro existente", func(t *testing.T) {
		inv := SampleInvoice("inv-up", "ana", "Original", "2025-03-02")
		require.NoError(t, repo.Save(ctx, inv))
		first := inv.UpdatedAt

		inv.Name = "Editada"
		inv.Status = entity.InvoiceStatusPaid
		inv.Items = inv.Items[:1]
		pricing.Apply(inv)
		require.NoError(t, repo.Save(ctx, inv))
		assert.False(t, inv.UpdatedAt.Before(first))

		got, err := repo.GetByID(ctx, "inv-up")
		require.NoError(t, err)
		assert.Equal(t, "Editada", got.Name)
		assert.Equal(t, entity.InvoiceStatusPaid, got.Status)
		assert.Len(t, got.Items, 1)
		assert.True(t, decimal.NewFromInt(171).Equal(got.GrandTotal))
	})

	t.Run("Save sin ID es entrada inválida", func(t *testing.T) {
		err := repo.Save(ctx, &entity.Invoice{UserID: "ana"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("ListByOwner filtra por dueño", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, SampleInvoice("inv-b1", "beto", "B1", "2025-01-01")))
		require.NoError(t, repo.Save(ctx, SampleInvoice("inv-b2", "beto", "B2", "2025-02-01")))

		list, err := repo.ListByOwner(ctx, "beto")
		require.NoError(t, err)
		ids := make([]string, 0, len(list))
		for _, inv := range list {
			assert.Equal(t, "beto", inv.UserID)
			ids = append(ids, inv.ID)
		}
		assert.ElementsMatch(t, []string{"inv-b1", "inv-b2"}, ids)

		list, err = repo.ListByOwner(ctx, "nadie")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Delete elimina y es idempotente", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, SampleInvoice("inv-del", "ana", "Borrar", "2025-03-03")))
		require.NoError(t, repo.Delete(ctx, "inv-del"))

		got, err := repo.GetByID(ctx, "inv-del")
		require.NoError(t, err)
		assert.Nil(t, got)

		assert.NoError(t, repo.Delete(ctx, "inv-del"))
	})
}

// RunUserRepository ejecuta el contrato de UserRepository sobre repo (debe estar vacío).
func RunUserRepository(t *testing.T, repo repository.UserRepository) {
	ctx := context.Background()

	u, err := repo.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Nil(t, u)

	created := &entity.User{Username: "ana", Password: "secreto", CreatedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, repo.Create(ctx, created))

	u, err = repo.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "secreto", u.Password)

	u, err = repo.GetByUsername(ctx, "ANA")
	require.NoError(t, err)
	assert.Nil(t, u, "el username distingue mayúsculas")

	err = repo.Create(ctx, &entity.User{Username: "ana", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
