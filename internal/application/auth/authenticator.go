package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/hisaab-kitaab/internal/domain"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/repository"
	"github.com/jhoicas/hisaab-kitaab/pkg/logger"
)

// AuthenticationService valida credenciales. Un username desconocido se registra con la
// contraseña recibida y se acepta; uno existente debe coincidir exactamente (sensible a mayúsculas).
type AuthenticationService interface {
	ValidateOrRegisterUser(ctx context.Context, username, password string) (bool, error)
}

// PasswordHasher define cómo se guarda y compara la contraseña.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(stored, password string) bool
}

// PlainHasher guarda la contraseña tal cual (modo demo local).
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) { return password, nil }

func (PlainHasher) Matches(stored, password string) bool { return stored == password }

// BcryptHasher guarda hashes bcrypt. Cost 0 usa bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Matches(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// Authenticator implementa AuthenticationService sobre un UserRepository.
type Authenticator struct {
	users  repository.UserRepository
	hasher PasswordHasher
	log    *logger.Logger
	now    func() time.Time
}

var _ AuthenticationService = (*Authenticator)(nil)

// NewAuthenticator construye el servicio con el hasher indicado.
func NewAuthenticator(users repository.UserRepository, hasher PasswordHasher, log *logger.Logger) *Authenticator {
	if log == nil {
		log = logger.Nop()
	}
	return &Authenticator{users: users, hasher: hasher, log: log, now: time.Now}
}

// NewPlainAuthenticator guarda contraseñas en texto plano.
func NewPlainAuthenticator(users repository.UserRepository, log *logger.Logger) *Authenticator {
	return NewAuthenticator(users, PlainHasher{}, log)
}

// NewBcryptAuthenticator guarda hashes bcrypt.
func NewBcryptAuthenticator(users repository.UserRepository, log *logger.Logger) *Authenticator {
	return NewAuthenticator(users, BcryptHasher{}, log)
}

// ValidateOrRegisterUser ver AuthenticationService. Acepta cualquier contraseña, incluso vacía;
// los campos obligatorios del login los exige dto.LoginRequest. Los errores del repositorio se propagan.
func (a *Authenticator) ValidateOrRegisterUser(ctx context.Context, username, password string) (bool, error) {
	if username == "" {
		return false, fmt.Errorf("%w: usuario obligatorio", domain.ErrInvalidInput)
	}
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("auth: buscar usuario: %w", err)
	}
	if user != nil {
		return a.hasher.Matches(user.Password, password), nil
	}

	stored, err := a.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("auth: hash password: %w", err)
	}
	err = a.users.Create(ctx, &entity.User{Username: username, Password: stored, CreatedAt: a.now().UTC()})
	if errors.Is(err, domain.ErrDuplicate) {
		// otro login registró el mismo username entre la lectura y el alta
		user, err = a.users.GetByUsername(ctx, username)
		if err != nil {
			return false, fmt.Errorf("auth: releer usuario: %w", err)
		}
		if user == nil {
			return false, fmt.Errorf("auth: usuario %q duplicado pero ausente al releer", username)
		}
		return a.hasher.Matches(user.Password, password), nil
	}
	if err != nil {
		return false, fmt.Errorf("auth: registrar usuario: %w", err)
	}
	a.log.Info().Str("username", username).Msg("usuario registrado en primer login")
	return true, nil
}
