// Package xlsx exporta el listado de facturas a una hoja de cálculo.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/hisaab-kitaab/internal/application/invoicing"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
)

// SheetName hoja donde se escribe el listado.
const SheetName = "Invoices"

var headers = []interface{}{"Name", "Date", "Status", "Items", "Grand Total", "Total Paid", "Balance"}

// Exporter implementa invoicing.InvoiceListExporter con excelize.
type Exporter struct{}

var _ invoicing.InvoiceListExporter = (*Exporter)(nil)

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportInvoices escribe una fila por factura, en el orden recibido, más una fila de totales.
func (e *Exporter) ExportInvoices(_ context.Context, owner string, invoices []*entity.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}
	if err := f.SetDocProps(&excelize.DocProperties{Creator: owner, Title: "Hisaab Kitaab invoices"}); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", "G1", bold); err != nil {
		return nil, err
	}

	for i, inv := range invoices {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			inv.Name,
			inv.Date,
			string(inv.Status),
			len(inv.Items),
			inv.GrandTotal.InexactFloat64(),
			inv.TotalPaid.InexactFloat64(),
			inv.Balance.InexactFloat64(),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, err
		}
	}

	last := len(invoices) + 1
	if len(invoices) > 0 {
		totalRow := last + 1
		if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", totalRow), "Total"); err != nil {
			return nil, err
		}
		for _, c := range []string{"E", "F", "G"} {
			formula := fmt.Sprintf("SUM(%s2:%s%d)", c, c, last)
			if err := f.SetCellFormula(SheetName, fmt.Sprintf("%s%d", c, totalRow), formula); err != nil {
				return nil, err
			}
		}
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("G%d", totalRow), bold); err != nil {
			return nil, err
		}
		last = totalRow
	}
	if err := f.SetCellStyle(SheetName, "E2", fmt.Sprintf("G%d", last), money); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "A", "A", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "B", "G", 14); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}
