// Package pricing implementa el motor de precios de las líneas de factura:
// tarifa → precio comercial (T.P) → precio por unidad → total de la fila → totales de la factura.
//
// Todas las funciones son puras: sin I/O ni efectos secundarios.
package pricing

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
)

// Descuentos fijos sobre la tarifa. La diferencia entre ambos (14.5% vs 15%) es política
// comercial: sin ajuste se usa 14.5%, con ajuste (+/-) el T.P base pasa a 15%.
//
// Son variables y no constantes: 1 - 0.145 tiene que evaluarse en float64 en tiempo de
// ejecución, igual que en las facturas ya emitidas, y no con la precisión exacta de las constantes.
var (
	baseMarkdown     = 0.145
	adjustedMarkdown = 0.15
)

// Places decimales de todos los montos derivados.
const Places = 2

// RowValues campos derivados de una fila.
type RowValues struct {
	TP                 decimal.Decimal `json:"tp"`
	TotalPricePerPiece decimal.Decimal `json:"totalPricePerPiece"`
	RowTotal           decimal.Decimal `json:"rowTotal"`
}

// Totals agregados de la factura.
type Totals struct {
	GrandTotal decimal.Decimal `json:"grandTotal"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	Balance    decimal.Decimal `json:"balance"`
}

// ComputeRow calcula T.P, total por unidad y total de la fila.
// Los valores sin asignar cuentan como 0. La aritmética es float64 y cada resultado se
// redondea a 2 decimales de forma independiente con RoundFixed; RowTotal parte del total
// por unidad sin redondear.
func ComputeRow(rate, qty, discountPercent decimal.NullDecimal) RowValues {
	r := floatOf(rate)
	q := floatOf(qty)
	d := floatOf(discountPercent)

	var tp, perPiece float64
	if d == 0 {
		tp = float64(r * (1 - baseMarkdown))
		perPiece = tp
	} else {
		baseTp := float64(r * (1 - adjustedMarkdown))
		tp = baseTp
		perPiece = float64(baseTp * (1 + d/100))
	}
	rowTotal := float64(perPiece * q)

	return RowValues{
		TP:                 RoundFixed(tp),
		TotalPricePerPiece: RoundFixed(perPiece),
		RowTotal:           RoundFixed(rowTotal),
	}
}

// RoundFixed redondea el valor binario exacto de x a 2 decimales, empates lejos de cero.
// 1.005 queda en 1.00 porque su float64 es 1.00499999999999989...
// NaN e infinitos devuelven 0.
func RoundFixed(x float64) decimal.Decimal {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return decimal.Zero
	}
	r := new(big.Rat).SetFloat64(x)
	neg := r.Sign() < 0
	r.Abs(r)
	r.Mul(r, big.NewRat(100, 1))
	r.Add(r, big.NewRat(1, 2))
	n := new(big.Int).Quo(r.Num(), r.Denom())
	if neg {
		n.Neg(n)
	}
	return decimal.NewFromBigInt(n, -Places)
}

// Recalculate reemplaza los campos derivados de la fila por los calculados a partir de sus entradas.
func Recalculate(item *entity.InvoiceItem) {
	v := ComputeRow(item.Rate, item.Qty, item.DiscountPercent)
	item.TP = v.TP
	item.TotalPricePerPiece = v.TotalPricePerPiece
	item.RowTotal = v.RowTotal
}

// GrandTotal suma los RowTotal ya redondeados de las filas (sin volver a redondear).
func GrandTotal(items []entity.InvoiceItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.RowTotal)
	}
	return sum
}

// TotalPaid suma los abonos; un abono sin monto aporta 0.
func TotalPaid(payments []entity.PaidAmount) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(valueOf(p.Amount))
	}
	return sum
}

// Summarize calcula total general, total pagado y saldo.
func Summarize(items []entity.InvoiceItem, payments []entity.PaidAmount) Totals {
	grand := GrandTotal(items)
	paid := TotalPaid(payments)
	return Totals{
		GrandTotal: grand,
		TotalPaid:  paid,
		Balance:    grand.Sub(paid),
	}
}

// Apply recalcula todas las filas y los agregados de la factura.
func Apply(inv *entity.Invoice) {
	for i := range inv.Items {
		Recalculate(&inv.Items[i])
	}
	t := Summarize(inv.Items, inv.PaidAmounts)
	inv.GrandTotal = t.GrandTotal
	inv.TotalPaid = t.TotalPaid
	inv.Balance = t.Balance
}

func floatOf(n decimal.NullDecimal) float64 {
	if !n.Valid {
		return 0
	}
	f, _ := n.Decimal.Float64()
	return f
}

func valueOf(n decimal.NullDecimal) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Decimal
}
