package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de cobro de la factura.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusPending InvoiceStatus = "Pending"
)

// DateLayout formato de Invoice.Date.
const DateLayout = "2006-01-02"

// InvoiceItem representa una línea de la factura.
// Qty, Rate y DiscountPercent pueden quedar sin valor (Valid == false); los
// campos TP, TotalPricePerPiece y RowTotal son derivados y los calcula el motor de precios.
type InvoiceItem struct {
	ID              string              `json:"id"`
	ItemName        string              `json:"itemName"`
	Qty             decimal.NullDecimal `json:"qty"`
	Rate            decimal.NullDecimal `json:"rate"`
	DiscountPercent decimal.NullDecimal `json:"discountPercent"`

	TP                 decimal.Decimal `json:"tp"`
	TotalPricePerPiece decimal.Decimal `json:"totalPricePerPiece"`
	RowTotal           decimal.Decimal `json:"rowTotal"`
}

// PaidAmount representa un abono registrado sobre la factura.
type PaidAmount struct {
	ID        string              `json:"id"`
	Narration string              `json:"narration"`
	Amount    decimal.NullDecimal `json:"amount"`
}

// Invoice raíz del agregado. GrandTotal, TotalPaid y Balance son caché: se recalculan en cada guardado.
type Invoice struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	Name        string        `json:"name"`
	Date        string        `json:"date"`
	Status      InvoiceStatus `json:"status"`
	Items       []InvoiceItem `json:"items"`
	PaidAmounts []PaidAmount  `json:"paidAmounts"`

	GrandTotal decimal.Decimal `json:"grandTotal"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	Balance    decimal.Decimal `json:"balance"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBlankItem crea una fila vacía con ID nuevo.
func NewBlankItem() InvoiceItem {
	return InvoiceItem{ID: uuid.New().String()}
}

// AddItem agrega una fila vacía al final y devuelve su índice.
func (inv *Invoice) AddItem() int {
	inv.Items = append(inv.Items, NewBlankItem())
	return len(inv.Items) - 1
}

// RemoveItem elimina la fila index. La factura conserva siempre al menos una fila:
// devuelve false si index está fuera de rango o es la única fila.
func (inv *Invoice) RemoveItem(index int) bool {
	if index < 0 || index >= len(inv.Items) || len(inv.Items) <= 1 {
		return false
	}
	inv.Items = append(inv.Items[:index], inv.Items[index+1:]...)
	return true
}

// DuplicateItem inserta una copia de la fila index justo después de ella, con ID nuevo.
func (inv *Invoice) DuplicateItem(index int) bool {
	if index < 0 || index >= len(inv.Items) {
		return false
	}
	cp := inv.Items[index]
	cp.ID = uuid.New().String()
	inv.Items = append(inv.Items, InvoiceItem{})
	copy(inv.Items[index+2:], inv.Items[index+1:])
	inv.Items[index+1] = cp
	return true
}

// AddPayment agrega un abono vacío y devuelve su índice.
func (inv *Invoice) AddPayment() int {
	inv.PaidAmounts = append(inv.PaidAmounts, PaidAmount{ID: uuid.New().String()})
	return len(inv.PaidAmounts) - 1
}

// RemovePayment elimina el abono index.
func (inv *Invoice) RemovePayment(index int) bool {
	if index < 0 || index >= len(inv.PaidAmounts) {
		return false
	}
	inv.PaidAmounts = append(inv.PaidAmounts[:index], inv.PaidAmounts[index+1:]...)
	return true
}

// OwnedBy indica si la factura pertenece al usuario.
func (inv *Invoice) OwnedBy(username string) bool {
	return inv != nil && inv.UserID == username
}
