package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/pricing"
)

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func sampleInvoice(withPayments bool) *entity.Invoice {
	inv := &entity.Invoice{
		ID:     "inv-1",
		UserID: "alice",
		Name:   "Acme Pharma",
		Date:   "2025-03-10",
		Status: entity.InvoiceStatusPending,
		Items: []entity.InvoiceItem{
			{ID: "a", ItemName: "Panadol", Rate: nd("100"), Qty: nd("2")},
			{ID: "b", ItemName: "Brufen", Rate: nd("100"), Qty: nd("2"), DiscountPercent: nd("10")},
			{ID: "c", ItemName: "pendiente"},
		},
	}
	if withPayments {
		inv.PaidAmounts = []entity.PaidAmount{{ID: "p", Narration: "cash", Amount: nd("100")}}
	}
	pricing.Apply(inv)
	return inv
}

func TestGenerateInvoicePDF(t *testing.T) {
	g := NewMarotoPDFGenerator()
	for _, withPayments := range []bool{true, false} {
		b, err := g.GenerateInvoicePDF(context.Background(), sampleInvoice(withPayments))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "debe ser un PDF")
	}
}

func TestItemCells(t *testing.T) {
	inv := sampleInvoice(false)

	assert.Equal(t,
		[]string{"1", "Panadol", "2", "100", "-", "85.50", "85.50", "171.00"},
		ItemCells(0, inv.Items[0]))
	assert.Equal(t,
		[]string{"2", "Brufen", "2", "100", "10", "85.00", "93.50", "187.00"},
		ItemCells(1, inv.Items[1]))
	assert.Equal(t,
		[]string{"3", "pendiente", "", "", "-", "0.00", "0.00", "0.00"},
		ItemCells(2, inv.Items[2]))
}

func TestDiscountLabel(t *testing.T) {
	assert.Equal(t, "-", DiscountLabel(decimal.NullDecimal{}))
	assert.Equal(t, "-", DiscountLabel(nd("0")))
	assert.Equal(t, "-10", DiscountLabel(nd("-10")))
	assert.Equal(t, "12.5", DiscountLabel(nd("12.5")))
}

func TestFormatRs(t *testing.T) {
	assert.Equal(t, "Rs 1,234.5", FormatRs(decimal.RequireFromString("1234.50")))
	assert.Equal(t, "Rs 258", FormatRs(decimal.RequireFromString("258.00")))
	assert.Equal(t, "Rs 1,000,000.25", FormatRs(decimal.RequireFromString("1000000.25")))
	assert.Equal(t, "Rs 0", FormatRs(decimal.Zero))
}
