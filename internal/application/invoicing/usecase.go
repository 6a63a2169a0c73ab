// Package invoicing contiene los casos de uso del editor y del dashboard de facturas.
package invoicing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/jhoicas/hisaab-kitaab/internal/application/dto"
	"github.com/jhoicas/hisaab-kitaab/internal/domain"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/pricing"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/repository"
	"github.com/jhoicas/hisaab-kitaab/pkg/logger"
)

// InvoiceUseCase CRUD de facturas con control de propietario.
type InvoiceUseCase struct {
	repo repository.InvoiceRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(repo repository.InvoiceRepository, log *logger.Logger) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{repo: repo, log: log, now: time.Now}
}

// NewDraft devuelve una factura sin guardar: Pending, fecha de hoy y una fila vacía.
// El ID se asigna al guardarla por primera vez.
func (uc *InvoiceUseCase) NewDraft(owner string) *entity.Invoice {
	inv := &entity.Invoice{
		UserID:      owner,
		Date:        uc.now().Format(entity.DateLayout),
		Status:      entity.InvoiceStatusPending,
		Items:       []entity.InvoiceItem{entity.NewBlankItem()},
		PaidAmounts: []entity.PaidAmount{},
	}
	pricing.Apply(inv)
	return inv
}

// Get carga la factura del usuario. Una factura de otro usuario se reporta como no encontrada.
// Los campos derivados se recalculan al cargar: lo guardado es solo caché.
func (uc *InvoiceUseCase) Get(ctx context.Context, owner, id string) (*entity.Invoice, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoicing: obtener factura: %w", err)
	}
	if inv == nil || !inv.OwnedBy(owner) {
		return nil, domain.ErrNotFound
	}
	pricing.Apply(inv)
	return inv, nil
}

// Save valida, recalcula filas y totales, y persiste la factura completa.
// Sin ID crea una nueva; con ID reemplaza la existente conservando CreatedAt.
func (uc *InvoiceUseCase) Save(ctx context.Context, owner string, in dto.SaveInvoiceRequest) (*entity.Invoice, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	inv := BuildInvoice(owner, in)

	if inv.ID == "" {
		inv.ID = uuid.New().String()
		inv.CreatedAt = uc.now().UTC().Truncate(time.Millisecond)
	} else {
		existing, err := uc.repo.GetByID(ctx, inv.ID)
		if err != nil {
			return nil, fmt.Errorf("invoicing: obtener factura: %w", err)
		}
		switch {
		case existing == nil:
			inv.CreatedAt = uc.now().UTC().Truncate(time.Millisecond)
		case !existing.OwnedBy(owner):
			return nil, domain.ErrNotFound
		default:
			inv.CreatedAt = existing.CreatedAt
		}
	}

	if err := uc.repo.Save(ctx, inv); err != nil {
		return nil, fmt.Errorf("invoicing: guardar factura: %w", err)
	}
	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("user", owner).
		Str("grand_total", inv.GrandTotal.StringFixed(2)).
		Msg("factura guardada")
	return inv, nil
}

// BuildInvoice arma la entidad a partir del request y recalcula todos los campos derivados.
// Filas y abonos sin ID reciben uno nuevo. No persiste nada.
func BuildInvoice(owner string, in dto.SaveInvoiceRequest) *entity.Invoice {
	status := entity.InvoiceStatus(in.Status)
	if status == "" {
		status = entity.InvoiceStatusPending
	}
	inv := &entity.Invoice{
		ID:          in.ID,
		UserID:      owner,
		Name:        strings.TrimSpace(in.Name),
		Date:        in.Date,
		Status:      status,
		Items:       make([]entity.InvoiceItem, 0, len(in.Items)),
		PaidAmounts: make([]entity.PaidAmount, 0, len(in.PaidAmounts)),
	}
	for _, it := range in.Items {
		item := entity.InvoiceItem{
			ID:              it.ID,
			ItemName:        it.ItemName,
			Qty:             it.Qty,
			Rate:            it.Rate,
			DiscountPercent: it.DiscountPercent,
		}
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		inv.Items = append(inv.Items, item)
	}
	for _, p := range in.PaidAmounts {
		pa := entity.PaidAmount{ID: p.ID, Narration: p.Narration, Amount: p.Amount}
		if pa.ID == "" {
			pa.ID = uuid.New().String()
		}
		inv.PaidAmounts = append(inv.PaidAmounts, pa)
	}
	pricing.Apply(inv)
	return inv
}

// List devuelve las facturas del usuario ordenadas por fecha descendente.
// search filtra por subcadena del nombre sin distinguir mayúsculas; vacío no filtra.
func (uc *InvoiceUseCase) List(ctx context.Context, owner, search string) ([]*entity.Invoice, error) {
	all, err := uc.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("invoicing: listar facturas: %w", err)
	}
	for _, inv := range all {
		pricing.Apply(inv)
	}
	needle := strings.TrimSpace(search)
	out := all
	if needle != "" {
		fold := cases.Fold()
		needle = fold.String(needle)
		out = make([]*entity.Invoice, 0, len(all))
		for _, inv := range all {
			if strings.Contains(fold.String(inv.Name), needle) {
				out = append(out, inv)
			}
		}
	}
	// YYYY-MM-DD ordena lexicográficamente igual que cronológicamente
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// ToggleStatus alterna Paid ⇄ Pending y persiste.
func (uc *InvoiceUseCase) ToggleStatus(ctx context.Context, owner, id string) (*entity.Invoice, error) {
	inv, err := uc.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == entity.InvoiceStatusPaid {
		inv.Status = entity.InvoiceStatusPending
	} else {
		inv.Status = entity.InvoiceStatusPaid
	}
	pricing.Apply(inv)
	if err := uc.repo.Save(ctx, inv); err != nil {
		return nil, fmt.Errorf("invoicing: guardar estado: %w", err)
	}
	uc.log.Debug().Str("invoice_id", id).Str("status", string(inv.Status)).Msg("estado de factura cambiado")
	return inv, nil
}

// Delete elimina la factura del usuario.
func (uc *InvoiceUseCase) Delete(ctx context.Context, owner, id string) error {
	if _, err := uc.Get(ctx, owner, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("invoicing: eliminar factura: %w", err)
	}
	uc.log.Info().Str("invoice_id", id).Str("user", owner).Msg("factura eliminada")
	return nil
}

// ToSummary resume la factura para el listado.
func ToSummary(inv *entity.Invoice) dto.InvoiceSummary {
	return dto.InvoiceSummary{
		ID:         inv.ID,
		Name:       inv.Name,
		Date:       inv.Date,
		Status:     string(inv.Status),
		ItemCount:  len(inv.Items),
		GrandTotal: inv.GrandTotal,
		TotalPaid:  inv.TotalPaid,
		Balance:    inv.Balance,
		UpdatedAt:  inv.UpdatedAt,
	}
}
