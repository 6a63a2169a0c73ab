package invoicing

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jhoicas/hisaab-kitaab/internal/application/dto"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// PDFFilename nombre de descarga: espacios del nombre reemplazados por "_" más "_invoice.pdf".
func PDFFilename(inv *entity.Invoice) string {
	return whitespaceRun.ReplaceAllString(inv.Name, "_") + "_invoice.pdf"
}

// ExportUseCase genera los documentos descargables (PDF de factura, XLSX del listado).
type ExportUseCase struct {
	invoices *InvoiceUseCase
	pdf      InvoicePDFGenerator
	xlsx     InvoiceListExporter
}

// NewExportUseCase construye el caso de uso inyectando los generadores.
func NewExportUseCase(invoices *InvoiceUseCase, pdf InvoicePDFGenerator, xlsx InvoiceListExporter) *ExportUseCase {
	return &ExportUseCase{invoices: invoices, pdf: pdf, xlsx: xlsx}
}

// DownloadInvoicePDF genera el PDF de una factura guardada del usuario.
func (uc *ExportUseCase) DownloadInvoicePDF(ctx context.Context, owner, id string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoices.Get(ctx, owner, id)
	if err != nil {
		return nil, "", err
	}
	return uc.render(ctx, inv)
}

// PreviewInvoicePDF genera el PDF del estado actual del editor sin guardarlo.
func (uc *ExportUseCase) PreviewInvoicePDF(ctx context.Context, owner string, in dto.SaveInvoiceRequest) (pdfBytes []byte, filename string, err error) {
	if err := dto.Validate(in); err != nil {
		return nil, "", err
	}
	return uc.render(ctx, BuildInvoice(owner, in))
}

func (uc *ExportUseCase) render(ctx context.Context, inv *entity.Invoice) ([]byte, string, error) {
	b, err := uc.pdf.GenerateInvoicePDF(ctx, inv)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar documento: %w", err)
	}
	return b, PDFFilename(inv), nil
}

// ExportInvoicesXLSX genera la hoja con el listado del usuario en el orden del dashboard.
func (uc *ExportUseCase) ExportInvoicesXLSX(ctx context.Context, owner string) ([]byte, string, error) {
	list, err := uc.invoices.List(ctx, owner, "")
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xlsx.ExportInvoices(ctx, owner, list)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: generar hoja: %w", err)
	}
	return b, "invoices.xlsx", nil
}
