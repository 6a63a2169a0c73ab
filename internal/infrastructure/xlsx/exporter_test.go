package xlsx

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
)

func TestExportInvoices(t *testing.T) {
	list := []*entity.Invoice{
		{
			Name: "City Clinic", Date: "2025-03-01", Status: entity.InvoiceStatusPaid,
			Items:      make([]entity.InvoiceItem, 2),
			GrandTotal: decimal.RequireFromString("1234.5"),
			TotalPaid:  decimal.RequireFromString("1234.5"),
			Balance:    decimal.Zero,
		},
		{
			Name: "Acme Pharma", Date: "2025-01-05", Status: entity.InvoiceStatusPending,
			Items:      make([]entity.InvoiceItem, 1),
			GrandTotal: decimal.RequireFromString("358"),
			TotalPaid:  decimal.RequireFromString("100"),
			Balance:    decimal.RequireFromString("258"),
		},
	}

	b, err := NewExporter().ExportInvoices(context.Background(), "alice", list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)

	assert.Equal(t, []string{"Name", "Date", "Status", "Items", "Grand Total", "Total Paid", "Balance"}, rows[0])
	assert.Equal(t, []string{"City Clinic", "2025-03-01", "Paid", "2", "1234.5", "1234.5", "0"}, rows[1])
	assert.Equal(t, []string{"Acme Pharma", "2025-01-05", "Pending", "1", "358", "100", "258"}, rows[2])
	assert.Equal(t, "Total", rows[3][0])

	formula, err := f.GetCellFormula(SheetName, "E4")
	require.NoError(t, err)
	assert.Equal(t, "SUM(E2:E3)", formula)
}

func TestExportInvoices_ListaVacia(t *testing.T) {
	b, err := NewExporter().ExportInvoices(context.Background(), "alice", nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
