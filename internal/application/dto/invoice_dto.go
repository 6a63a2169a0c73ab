package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RowRequest entradas de una fila para el cálculo en vivo (POST /api/pricing/row).
// Un campo ausente o null equivale a "sin asignar".
type RowRequest struct {
	Rate            decimal.NullDecimal `json:"rate"`
	Qty             decimal.NullDecimal `json:"qty"`
	DiscountPercent decimal.NullDecimal `json:"discountPercent"`
}

// InvoiceItemRequest fila enviada por el editor. Los campos derivados no se aceptan: se recalculan.
type InvoiceItemRequest struct {
	ID              string              `json:"id" validate:"max=64"`
	ItemName        string              `json:"itemName" validate:"max=200"`
	Qty             decimal.NullDecimal `json:"qty"`
	Rate            decimal.NullDecimal `json:"rate"`
	DiscountPercent decimal.NullDecimal `json:"discountPercent"`
}

// PaidAmountRequest abono enviado por el editor.
type PaidAmountRequest struct {
	ID        string              `json:"id" validate:"max=64"`
	Narration string              `json:"narration" validate:"max=200"`
	Amount    decimal.NullDecimal `json:"amount"`
}

// SaveInvoiceRequest factura completa para POST /api/invoices y PUT /api/invoices/:id.
// ID vacío crea una factura nueva.
type SaveInvoiceRequest struct {
	ID          string               `json:"id,omitempty" validate:"max=64"`
	Name        string               `json:"name" validate:"required,max=200"`
	Date        string               `json:"date" validate:"required,datetime=2006-01-02"`
	Status      string               `json:"status" validate:"omitempty,oneof=Paid Pending"`
	Items       []InvoiceItemRequest `json:"items" validate:"dive"`
	PaidAmounts []PaidAmountRequest  `json:"paidAmounts" validate:"dive"`
}

// InvoiceSummary fila del listado del dashboard.
type InvoiceSummary struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Date       string          `json:"date"`
	Status     string          `json:"status"`
	ItemCount  int             `json:"itemCount"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	Balance    decimal.Decimal `json:"balance"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
