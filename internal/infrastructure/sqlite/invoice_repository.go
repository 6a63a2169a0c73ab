package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/hisaab-kitaab/internal/domain"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// invoiceRow registro de la tabla invoices.
type invoiceRow struct {
	ID          string          `gorm:"primaryKey;size:64"`
	UserID      string          `gorm:"index;size:191;not null"`
	Name        string          `gorm:"not null"`
	Date        string          `gorm:"size:10"`
	Status      string          `gorm:"size:16"`
	Items       datatypes.JSON  `gorm:"not null"`
	PaidAmounts datatypes.JSON  `gorm:"not null"`
	GrandTotal  decimal.Decimal `gorm:"type:text"`
	TotalPaid   decimal.Decimal `gorm:"type:text"`
	Balance     decimal.Decimal `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime:false"`
}

func (invoiceRow) TableName() string { return "invoices" }

// InvoiceRepo implementación de InvoiceRepository sobre GORM/SQLite.
type InvoiceRepo struct {
	db *gorm.DB
}

// NewInvoiceRepository construye el adaptador.
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepo {
	return &InvoiceRepo{db: db}
}

// ListByOwner lista las facturas del usuario.
func (r *InvoiceRepo) ListByOwner(ctx context.Context, userID string) ([]*entity.Invoice, error) {
	var rows []invoiceRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	list := make([]*entity.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, nil
}

// GetByID obtiene una factura por ID o (nil, nil).
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var row invoiceRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	return row.toEntity()
}

// Save hace upsert por ID (ON CONFLICT DO UPDATE de todas las columnas).
func (r *InvoiceRepo) Save(ctx context.Context, invoice *entity.Invoice) error {
	if invoice == nil || invoice.ID == "" {
		return domain.ErrInvalidInput
	}
	invoice.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	row, err := fromEntity(invoice)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("guardar factura: %w", err)
	}
	return nil
}

// Delete elimina la factura por ID; sin efecto si no existe.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&invoiceRow{}).Error; err != nil {
		return fmt.Errorf("eliminar factura: %w", err)
	}
	return nil
}

func fromEntity(inv *entity.Invoice) (*invoiceRow, error) {
	items, err := json.Marshal(nonNilItems(inv.Items))
	if err != nil {
		return nil, fmt.Errorf("codificar filas: %w", err)
	}
	paid, err := json.Marshal(nonNilPayments(inv.PaidAmounts))
	if err != nil {
		return nil, fmt.Errorf("codificar abonos: %w", err)
	}
	return &invoiceRow{
		ID:          inv.ID,
		UserID:      inv.UserID,
		Name:        inv.Name,
		Date:        inv.Date,
		Status:      string(inv.Status),
		Items:       datatypes.JSON(items),
		PaidAmounts: datatypes.JSON(paid),
		GrandTotal:  inv.GrandTotal,
		TotalPaid:   inv.TotalPaid,
		Balance:     inv.Balance,
		CreatedAt:   inv.CreatedAt.UTC(),
		UpdatedAt:   inv.UpdatedAt.UTC(),
	}, nil
}

func (row *invoiceRow) toEntity() (*entity.Invoice, error) {
	inv := &entity.Invoice{
		ID:         row.ID,
		UserID:     row.UserID,
		Name:       row.Name,
		Date:       row.Date,
		Status:     entity.InvoiceStatus(row.Status),
		GrandTotal: row.GrandTotal,
		TotalPaid:  row.TotalPaid,
		Balance:    row.Balance,
		CreatedAt:  row.CreatedAt.UTC(),
		UpdatedAt:  row.UpdatedAt.UTC(),
	}
	if err := json.Unmarshal(row.Items, &inv.Items); err != nil {
		return nil, fmt.Errorf("decodificar filas de la factura %s: %w", row.ID, err)
	}
	if err := json.Unmarshal(row.PaidAmounts, &inv.PaidAmounts); err != nil {
		return nil, fmt.Errorf("decodificar abonos de la factura %s: %w", row.ID, err)
	}
	return inv, nil
}

func nonNilItems(items []entity.InvoiceItem) []entity.InvoiceItem {
	if items == nil {
		return []entity.InvoiceItem{}
	}
	return items
}

func nonNilPayments(p []entity.PaidAmount) []entity.PaidAmount {
	if p == nil {
		return []entity.PaidAmount{}
	}
	return p
}
