package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hisaab-kitaab/internal/domain"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, user_id, name, date, status, items, paid_amounts,
		grand_total, total_paid, balance, created_at, updated_at`

// ListByOwner lista las facturas del usuario.
func (r *InvoiceRepo) ListByOwner(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// GetByID obtiene una factura completa por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

// Save inserta o reemplaza la factura completa (upsert por id).
func (r *InvoiceRepo) Save(ctx context.Context, invoice *entity.Invoice) error {
	if invoice == nil || invoice.ID == "" {
		return domain.ErrInvalidInput
	}
	items, err := json.Marshal(nonNil(invoice.Items))
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	paid, err := json.Marshal(nonNil(invoice.PaidAmounts))
	if err != nil {
		return fmt.Errorf("encode paid amounts: %w", err)
	}
	invoice.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE
		SET user_id      = EXCLUDED.user_id,
		    name         = EXCLUDED.name,
		    date         = EXCLUDED.date,
		    status       = EXCLUDED.status,
		    items        = EXCLUDED.items,
		    paid_amounts = EXCLUDED.paid_amounts,
		    grand_total  = EXCLUDED.grand_total,
		    total_paid   = EXCLUDED.total_paid,
		    balance      = EXCLUDED.balance,
		    created_at   = EXCLUDED.created_at,
		    updated_at   = EXCLUDED.updated_at`
	_, err = r.q.Exec(ctx, query,
		invoice.ID, invoice.UserID, invoice.Name, invoice.Date, string(invoice.Status),
		items, paid,
		invoice.GrandTotal, invoice.TotalPaid, invoice.Balance,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert invoice: %w", err)
	}
	return nil
}

// Delete elimina la factura por ID; sin efecto si no existe.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var status string
	var items, paid []byte
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.Name, &inv.Date, &status, &items, &paid,
		&inv.GrandTotal, &inv.TotalPaid, &inv.Balance,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	inv.Status = entity.InvoiceStatus(status)
	inv.CreatedAt = inv.CreatedAt.UTC()
	inv.UpdatedAt = inv.UpdatedAt.UTC()
	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, fmt.Errorf("decode items of invoice %s: %w", inv.ID, err)
	}
	if err := json.Unmarshal(paid, &inv.PaidAmounts); err != nil {
		return nil, fmt.Errorf("decode paid amounts of invoice %s: %w", inv.ID, err)
	}
	return &inv, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
