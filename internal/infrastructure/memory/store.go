// Package memory implementa los repositorios en memoria (tests y modo demo sin disco).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/hisaab-kitaab/internal/domain"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository = (*InvoiceRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
)

// InvoiceRepo guarda las facturas en un mapa por ID conservando el orden de inserción.
type InvoiceRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*entity.Invoice
	now   func() time.Time
}

// NewInvoiceRepository construye el repositorio vacío.
func NewInvoiceRepository() *InvoiceRepo {
	return &InvoiceRepo{
		byID: make(map[string]*entity.Invoice),
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// ListByOwner devuelve copias de las facturas del usuario.
func (r *InvoiceRepo) ListByOwner(_ context.Context, userID string) ([]*entity.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Invoice, 0)
	for _, id := range r.order {
		if inv := r.byID[id]; inv.UserID == userID {
			list = append(list, clone(inv))
		}
	}
	return list, nil
}

// GetByID devuelve una copia de la factura o (nil, nil).
func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return clone(inv), nil
}

// Save reemplaza la factura con el mismo ID o la agrega al final.
func (r *InvoiceRepo) Save(_ context.Context, invoice *entity.Invoice) error {
	if invoice == nil || invoice.ID == "" {
		return domain.ErrInvalidInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	invoice.UpdatedAt = r.now()
	if _, ok := r.byID[invoice.ID]; !ok {
		r.order = append(r.order, invoice.ID)
	}
	r.byID[invoice.ID] = clone(invoice)
	return nil
}

// Delete elimina la factura si existe.
func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return nil
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func clone(inv *entity.Invoice) *entity.Invoice {
	cp := *inv
	if inv.Items != nil {
		cp.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	}
	if inv.PaidAmounts != nil {
		cp.PaidAmounts = append([]entity.PaidAmount(nil), inv.PaidAmounts...)
	}
	return &cp
}

// UserRepo guarda usuarios por username.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

// NewUserRepository construye el repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{users: make(map[string]entity.User)}
}

// GetByUsername devuelve el usuario o (nil, nil).
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// Create registra el usuario. Devuelve domain.ErrDuplicate si el username ya existe.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return domain.ErrDuplicate
	}
	r.users[user.Username] = *user
	return nil
}
