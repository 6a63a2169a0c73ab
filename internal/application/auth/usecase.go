package auth

import (
	"context"

	"github.com/jhoicas/hisaab-kitaab/internal/application/dto"
	"github.com/jhoicas/hisaab-kitaab/internal/domain"
	"github.com/jhoicas/hisaab-kitaab/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de login.
type AuthUseCase struct {
	authn  AuthenticationService
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(authn AuthenticationService, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{authn: authn, jwtCfg: jwtCfg}
}

// Login valida (o registra) al usuario y emite el token de sesión.
// El logout es del lado del cliente: basta con descartar el token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	ok, err := uc.authn.ValidateOrRegisterUser(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, in.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserResponse{Username: in.Username},
	}, nil
}
