package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hisaab-kitaab/internal/domain"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/entity"
	"github.com/jhoicas/hisaab-kitaab/internal/infrastructure/memory"
)

func TestPlainAuthenticator_RegistraYValida(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	a := NewPlainAuthenticator(users, nil)

	ok, err := a.ValidateOrRegisterUser(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.True(t, ok, "usuario nuevo queda registrado")

	ok, err = a.ValidateOrRegisterUser(ctx, "alice", "pw2")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = a.ValidateOrRegisterUser(ctx, "alice", "PW1")
	require.NoError(t, err)
	assert.False(t, ok, "la contraseña distingue mayúsculas")

	ok, err = a.ValidateOrRegisterUser(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	u, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "pw1", u.Password)
}

func TestBcryptAuthenticator_GuardaHash(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	a := NewAuthenticator(users, BcryptHasher{Cost: 4}, nil)

	ok, err := a.ValidateOrRegisterUser(ctx, "bob", "secreto")
	require.NoError(t, err)
	assert.True(t, ok)

	u, err := users.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEqual(t, "secreto", u.Password)

	ok, err = a.ValidateOrRegisterUser(ctx, "bob", "secreto")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.ValidateOrRegisterUser(ctx, "bob", "Secreto")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthenticator_UsuarioVacio(t *testing.T) {
	a := NewPlainAuthenticator(memory.NewUserRepository(), nil)
	_, err := a.ValidateOrRegisterUser(context.Background(), "", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthenticator_ContraseñaVaciaSeRegistra(t *testing.T) {
	ctx := context.Background()
	a := NewPlainAuthenticator(memory.NewUserRepository(), nil)

	ok, err := a.ValidateOrRegisterUser(ctx, "alice", "")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.ValidateOrRegisterUser(ctx, "alice", "x")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = a.ValidateOrRegisterUser(ctx, "alice", "")
	require.NoError(t, err)
	assert.True(t, ok)
}

type failingUsers struct{}

func (failingUsers) GetByUsername(context.Context, string) (*entity.User, error) {
	return nil, errors.New("disco lleno")
}
func (failingUsers) Create(context.Context, *entity.User) error { return nil }

func TestAuthenticator_PropagaErrorDeStore(t *testing.T) {
	a := NewPlainAuthenticator(failingUsers{}, nil)
	ok, err := a.ValidateOrRegisterUser(context.Background(), "alice", "pw")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "disco lleno")
}

// racyUsers simula que otro login creó el usuario entre la lectura y el alta.
type racyUsers struct {
	*memory.UserRepo
	firstMiss bool
}

func (r *racyUsers) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	if !r.firstMiss {
		r.firstMiss = true
		_ = r.UserRepo.Create(ctx, &entity.User{Username: username, Password: "otra"})
		return nil, nil
	}
	return r.UserRepo.GetByUsername(ctx, username)
}

func TestAuthenticator_AltaConcurrenteCompara(t *testing.T) {
	users := &racyUsers{UserRepo: memory.NewUserRepository()}
	a := NewPlainAuthenticator(users, nil)

	ok, err := a.ValidateOrRegisterUser(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.False(t, ok)
}

// vanishingUsers responde duplicado al alta pero nunca encuentra el usuario.
type vanishingUsers struct{}

func (vanishingUsers) GetByUsername(context.Context, string) (*entity.User, error) { return nil, nil }
func (vanishingUsers) Create(context.Context, *entity.User) error { return domain.ErrDuplicate }

func TestAuthenticator_DuplicadoAusenteAlReleer(t *testing.T) {
	a := NewPlainAuthenticator(vanishingUsers{}, nil)

	ok, err := a.ValidateOrRegisterUser(context.Background(), "alice", "pw")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "ausente al releer")
	assert.NotContains(t, err.Error(), "%!w")
}
