// Package pdf implementa el documento imprimible de una factura.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Hisaab Kitaab / Medical Invoice  │  Fecha + Estado │
//	│  Invoice: nombre                                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Item | Qty | Rate | Disc % | T.P | Unit | Amount│
//	│  PAID HISTORY (solo si hay abonos)                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Grand Total / Total Paid / Balance Due            │
//	│  FOOTER                                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/hisaab-kitaab/internal/application/invoicing"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
)

// DefaultFooter texto al pie de cada página.
const DefaultFooter = "All Rights Reserved 2025 - Yasir"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorHeader  = &props.Color{Red: 15, Green: 23, Blue: 42}
	colorTable   = &props.Color{Red: 30, Green: 41, Blue: 59}
	colorPaid    = &props.Color{Red: 71, Green: 85, Blue: 105}
	colorStripe  = &props.Color{Red: 241, Green: 245, Blue: 249}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	moneyPrinter = message.NewPrinter(language.English)
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa invoicing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	Footer string
}

var _ invoicing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador con el pie por defecto.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{Footer: DefaultFooter}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes. Usa los campos ya calculados de la factura.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, invoice *entity.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+invoice.Name, true).
		WithAuthor("Hisaab Kitaab", true).
		Build()

	m := maroto.New(cfg)
	if g.Footer != "" {
		if err := m.RegisterFooter(footerRow(g.Footer)); err != nil {
			return nil, fmt.Errorf("pdf: registrar footer: %w", err)
		}
	}

	m.AddRows(headerRow(invoice))
	m.AddRows(nameRow(invoice))
	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(invoice.Items)...)

	if len(invoice.PaidAmounts) > 0 {
		m.AddRows(line.NewRow(4))
		m.AddRows(paidRows(invoice.PaidAmounts)...)
	}

	m.AddRows(line.NewRow(4, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(summaryRows(invoice)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: banda oscura con el título (izq) y fecha + estado (der).
func headerRow(invoice *entity.Invoice) core.Row {
	return row.New(28).Add(
		col.New(7).Add(
			text.New("Hisaab Kitaab", props.Text{
				Style: fontstyle.Bold, Size: 20, Color: colorWhite, Top: 4, Left: 3,
			}),
			text.New("Medical Invoice", props.Text{
				Size: 10, Color: colorWhite, Top: 16, Left: 3,
			}),
		),
		col.New(5).Add(
			text.New("Date: "+invoice.Date, props.Text{
				Size: 10, Align: align.Right, Color: colorWhite, Top: 6, Right: 3,
			}),
			text.New("Status: "+string(invoice.Status), props.Text{
				Size: 10, Align: align.Right, Color: colorWhite, Top: 14, Right: 3,
			}),
		),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func nameRow(invoice *entity.Invoice) core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New("Invoice: "+invoice.Name, props.Text{Style: fontstyle.Bold, Size: 14, Top: 5}),
	))
}

// Anchos de columna de la tabla de ítems (suman 12).
var itemCols = []struct {
	label string
	size  int
	align align.Type
}{
	{"#", 1, align.Center},
	{"Item Name", 3, align.Left},
	{"Qty", 1, align.Right},
	{"Rate", 1, align.Right},
	{"Disc %", 1, align.Right},
	{"T.P", 1, align.Right},
	{"Total/Unit", 2, align.Right},
	{"Amount", 2, align.Right},
}

func itemsHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(itemCols))
	for _, c := range itemCols {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorTable})
}

// itemRows: una fila por ítem, con filas alternas sombreadas.
func itemRows(items []entity.InvoiceItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for i, it := range items {
		values := ItemCells(i, it)
		cols := make([]core.Col, 0, len(values))
		for j, v := range values {
			c := itemCols[j]
			cols = append(cols, col.New(c.size).Add(text.New(v, props.Text{
				Size: 8, Align: c.align, Top: 1.5, Left: 1, Right: 1,
			})))
		}
		r := row.New(7).Add(cols...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

// ItemCells textos de la fila index (0-based) en el orden de las columnas.
// Qty y Rate sin valor quedan vacíos; Disc % muestra "-" cuando es 0 o no tiene valor.
func ItemCells(index int, it entity.InvoiceItem) []string {
	return []string{
		strconv.Itoa(index + 1),
		it.ItemName,
		plain(it.Qty),
		plain(it.Rate),
		DiscountLabel(it.DiscountPercent),
		it.TP.StringFixed(2),
		it.TotalPricePerPiece.StringFixed(2),
		it.RowTotal.StringFixed(2),
	}
}

// paidRows: título "Paid History" y tabla Narration | Amount.
func paidRows(payments []entity.PaidAmount) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("Paid History", props.Text{Style: fontstyle.Bold, Size: 12, Top: 1}),
		)),
		row.New(7).Add(
			col.New(8).Add(text.New("Narration", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 1.5, Left: 1,
			})),
			col.New(4).Add(text.New("Amount", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorWhite, Align: align.Right, Top: 1.5, Right: 1,
			})),
		).WithStyle(&props.Cell{BackgroundColor: colorPaid}),
	}
	for _, p := range payments {
		amount := ""
		if p.Amount.Valid {
			amount = FormatAmount(p.Amount.Decimal)
		}
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(p.Narration, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(amount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// summaryRows: bloque de totales alineado a la derecha.
func summaryRows(invoice *entity.Invoice) []core.Row {
	entry := func(label, value string, size float64, style fontstyle.Type) core.Row {
		return row.New(size*0.7).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{Style: style, Size: size, Top: 1})),
			col.New(3).Add(text.New(value, props.Text{Style: style, Size: size, Align: align.Right, Top: 1})),
		)
	}
	return []core.Row{
		entry("Grand Total:", FormatRs(invoice.GrandTotal), 11, fontstyle.Normal),
		entry("Total Paid:", FormatRs(invoice.TotalPaid), 11, fontstyle.Normal),
		entry("Balance Due:", FormatRs(invoice.Balance), 14, fontstyle.Bold),
	}
}

func footerRow(footer string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(footer, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 3}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// FormatAmount separa miles con coma y muestra hasta 2 decimales sin ceros de relleno.
// Ej: 1234.5 → "1,234.5", 258 → "258".
func FormatAmount(d decimal.Decimal) string {
	return moneyPrinter.Sprintf("%v", number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}

// FormatRs monto con prefijo de moneda.
func FormatRs(d decimal.Decimal) string {
	return "Rs " + FormatAmount(d)
}

// DiscountLabel "-" para descuento 0 o sin valor.
func DiscountLabel(n decimal.NullDecimal) string {
	if !n.Valid || n.Decimal.IsZero() {
		return "-"
	}
	return n.Decimal.String()
}

func plain(n decimal.NullDecimal) string {
	if !n.Valid {
		return ""
	}
	return n.Decimal.String()
}
