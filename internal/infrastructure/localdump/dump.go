// Package localdump lee el volcado JSON del almacenamiento local del navegador
// (claves hk_users y hk_invoices) para importarlo a cualquier repositorio.
package localdump

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
)

// Claves del volcado.
const (
	UsersKey    = "hk_users"
	InvoicesKey = "hk_invoices"
)

// Dump contenido decodificado.
type Dump struct {
	Users    []entity.User
	Invoices []*entity.Invoice
}

// looseNumber acepta número, string numérico, "" o null. "" y null quedan sin valor.
type looseNumber decimal.NullDecimal

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if string(b) == "null" || string(b) == `""` {
		*n = looseNumber{}
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*n = looseNumber(decimal.NewNullDecimal(d))
	return nil
}

func (n looseNumber) value() decimal.Decimal { return n.Decimal }

type rawUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type rawItem struct {
	ID                 string      `json:"id"`
	ItemName           string      `json:"itemName"`
	Qty                looseNumber `json:"qty"`
	Rate               looseNumber `json:"rate"`
	DiscountPercent    looseNumber `json:"discountPercent"`
	TP                 looseNumber `json:"tp"`
	TotalPricePerPiece looseNumber `json:"totalPricePerPiece"`
	RowTotal           looseNumber `json:"rowTotal"`
}

type rawPayment struct {
	ID        string      `json:"id"`
	Narration string      `json:"narration"`
	Amount    looseNumber `json:"amount"`
}

type rawInvoice struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Name        string       `json:"name"`
	Date        string       `json:"date"`
	Status      string       `json:"status"`
	Items       []rawItem    `json:"items"`
	PaidAmounts []rawPayment `json:"paidAmounts"`
	GrandTotal  looseNumber  `json:"grandTotal"`
	TotalPaid   looseNumber  `json:"totalPaid"`
	Balance     looseNumber  `json:"balance"`
	CreatedAt   int64        `json:"createdAt"`
	UpdatedAt   int64        `json:"updatedAt"`
}

// Parse decodifica el volcado. Las fechas ISO completas se recortan a YYYY-MM-DD;
// los timestamps vienen en milisegundos desde epoch.
func Parse(r io.Reader) (*Dump, error) {
	var raw struct {
		Users    []rawUser    `json:"hk_users"`
		Invoices []rawInvoice `json:"hk_invoices"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("localdump: decodificar: %w", err)
	}

	out := &Dump{
		Users:    make([]entity.User, 0, len(raw.Users)),
		Invoices: make([]*entity.Invoice, 0, len(raw.Invoices)),
	}
	for _, u := range raw.Users {
		if u.Username == "" {
			continue
		}
		out.Users = append(out.Users, entity.User{Username: u.Username, Password: u.Password})
	}
	for i, ri := range raw.Invoices {
		if ri.ID == "" {
			return nil, fmt.Errorf("localdump: factura %d sin id", i)
		}
		out.Invoices = append(out.Invoices, ri.toEntity())
	}
	return out, nil
}

func (ri rawInvoice) toEntity() *entity.Invoice {
	inv := &entity.Invoice{
		ID:          ri.ID,
		UserID:      ri.UserID,
		Name:        ri.Name,
		Date:        normalizeDate(ri.Date),
		Status:      entity.InvoiceStatusPending,
		Items:       make([]entity.InvoiceItem, 0, len(ri.Items)),
		PaidAmounts: make([]entity.PaidAmount, 0, len(ri.PaidAmounts)),
		GrandTotal:  ri.GrandTotal.value(),
		TotalPaid:   ri.TotalPaid.value(),
		Balance:     ri.Balance.value(),
		CreatedAt:   fromMillis(ri.CreatedAt),
		UpdatedAt:   fromMillis(ri.UpdatedAt),
	}
	if entity.InvoiceStatus(ri.Status) == entity.InvoiceStatusPaid {
		inv.Status = entity.InvoiceStatusPaid
	}
	for _, it := range ri.Items {
		inv.Items = append(inv.Items, entity.InvoiceItem{
			ID:                 it.ID,
			ItemName:           it.ItemName,
			Qty:                decimal.NullDecimal(it.Qty),
			Rate:               decimal.NullDecimal(it.Rate),
			DiscountPercent:    decimal.NullDecimal(it.DiscountPercent),
			TP:                 it.TP.value(),
			TotalPricePerPiece: it.TotalPricePerPiece.value(),
			RowTotal:           it.RowTotal.value(),
		})
	}
	for _, p := range ri.PaidAmounts {
		inv.PaidAmounts = append(inv.PaidAmounts, entity.PaidAmount{
			ID:        p.ID,
			Narration: p.Narration,
			Amount:    decimal.NullDecimal(p.Amount),
		})
	}
	return inv
}

func normalizeDate(s string) string {
	if len(s) >= len(entity.DateLayout) {
		if _, err := time.Parse(entity.DateLayout, s[:len(entity.DateLayout)]); err == nil {
			return s[:len(entity.DateLayout)]
		}
	}
	return s
}

func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
