package auth

import (
	"context"
	"net/url"
	"strings"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/application/identity"
	"github.com/jhoicas/AgriConnect-api/internal/domain"
	"github.com/jhoicas/AgriConnect-api/pkg/jwt"
)

// LoginUseCase inicio de sesión con email y contraseña.
type LoginUseCase struct {
	accounts *identity.AccountManager
	jwtCfg   JWTConfig
}

// NewLoginUseCase construye el caso de uso de login.
func NewLoginUseCase(accounts *identity.AccountManager, jwtCfg JWTConfig) *LoginUseCase {
	return &LoginUseCase{accounts: accounts, jwtCfg: jwtCfg}
}

// Login verifica credenciales y genera el token. Email desconocido y contraseña incorrecta
// devuelven el mismo ErrUnauthorized.
func (uc *LoginUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := uc.accounts.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if account == nil || !uc.accounts.CheckPassword(account, in.Password) {
		return nil, domain.ErrUnauthorized
	}
	roles, err := uc.accounts.Roles(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, account.ID, account.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:      token,
		Account:    toAccountResponse(account, roles),
		RedirectTo: SafeReturnURL(in.ReturnURL),
	}, nil
}

// SafeReturnURL devuelve raw solo si es una ruta local de la aplicación; si no, "/".
func SafeReturnURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	return raw
}
