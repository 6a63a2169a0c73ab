package invoicing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hisaab-kitaab/internal/domain"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
)

type fakePDF struct{ got *entity.Invoice }

func (f *fakePDF) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice) ([]byte, error) {
	f.got = inv
	return []byte("%PDF-fake"), nil
}

type fakeXLSX struct{ got []*entity.Invoice }

func (f *fakeXLSX) ExportInvoices(_ context.Context, _ string, list []*entity.Invoice) ([]byte, error) {
	f.got = list
	return []byte("xlsx"), nil
}

func TestPDFFilename(t *testing.T) {
	assert.Equal(t, "Acme_Pharma_March_invoice.pdf", PDFFilename(&entity.Invoice{Name: "Acme  Pharma\tMarch"}))
	assert.Equal(t, "x_invoice.pdf", PDFFilename(&entity.Invoice{Name: "x"}))
}

func TestExport_DownloadInvoicePDF(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	pdf := &fakePDF{}
	exp := NewExportUseCase(uc, pdf, &fakeXLSX{})

	inv, err := uc.Save(ctx, "alice", sampleRequest("Acme Pharma", "2025-03-10"))
	require.NoError(t, err)

	b, name, err := exp.DownloadInvoicePDF(ctx, "alice", inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(b))
	assert.Equal(t, "Acme_Pharma_invoice.pdf", name)
	require.NotNil(t, pdf.got)
	assert.Equal(t, "358.00", pdf.got.GrandTotal.StringFixed(2))

	_, _, err = exp.DownloadInvoicePDF(ctx, "bob", inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExport_PreviewNoPersiste(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	pdf := &fakePDF{}
	exp := NewExportUseCase(uc, pdf, &fakeXLSX{})

	_, name, err := exp.PreviewInvoicePDF(ctx, "alice", sampleRequest("Borrador", "2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "Borrador_invoice.pdf", name)
	assert.Equal(t, "258.00", pdf.got.Balance.StringFixed(2))

	list, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExport_XLSXEnOrdenDelDashboard(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	xl := &fakeXLSX{}
	exp := NewExportUseCase(uc, &fakePDF{}, xl)

	_, err := uc.Save(ctx, "alice", sampleRequest("Old", "2024-01-01"))
	require.NoError(t, err)
	_, err = uc.Save(ctx, "alice", sampleRequest("New", "2025-01-01"))
	require.NoError(t, err)

	_, name, err := exp.ExportInvoicesXLSX(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "invoices.xlsx", name)
	assert.Equal(t, []string{"New", "Old"}, names(xl.got))
}
