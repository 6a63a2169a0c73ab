package repository

import (
	"context"

	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
// Una factura se persiste siempre completa (cabecera, filas y abonos).
type InvoiceRepository interface {
	// ListByOwner devuelve las facturas del usuario, sin orden garantizado.
	ListByOwner(ctx context.Context, userID string) ([]*entity.Invoice, error)
	// GetByID devuelve (nil, nil) si no existe. No filtra por dueño: el caller debe verificarlo.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// Save inserta o reemplaza por ID y sobrescribe siempre UpdatedAt.
	Save(ctx context.Context, invoice *entity.Invoice) error
	// Delete elimina la factura; no hace nada si no existe.
	Delete(ctx context.Context, id string) error
}
