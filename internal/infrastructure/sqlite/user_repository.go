package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jhoicas/hisaab-kitaab/internal/domain"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type userRow struct {
	Username  string    `gorm:"primaryKey;size:191"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (userRow) TableName() string { return "users" }

// UserRepo implementación de UserRepository sobre GORM/SQLite.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepository construye el adaptador.
func NewUserRepository(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetByUsername obtiene el usuario o (nil, nil).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where("username = ?", username).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	return &entity.User{Username: row.Username, Password: row.Password, CreatedAt: row.CreatedAt.UTC()}, nil
}

// Create registra el usuario. Devuelve domain.ErrDuplicate si el username ya existe.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	row := userRow{Username: user.Username, Password: user.Password, CreatedAt: user.CreatedAt.UTC()}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar usuario: %w", err)
	}
	return nil
}

// isUniqueViolation verifica si el error es una violación de clave única de SQLite.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
