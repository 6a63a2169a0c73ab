package invoicing

import (
	"context"

	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
)

// InvoicePDFGenerator genera el documento imprimible de una factura.
// Solo usa los campos ya calculados de la factura; no recalcula.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice) ([]byte, error)
}

// InvoiceListExporter genera la hoja de cálculo con el listado de facturas del usuario.
type InvoiceListExporter interface {
	ExportInvoices(ctx context.Context, owner string, invoices []*entity.Invoice) ([]byte, error)
}
