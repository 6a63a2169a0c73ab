package repository

import (
	"context"

	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	// GetByUsername devuelve (nil, nil) si no existe.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
}
