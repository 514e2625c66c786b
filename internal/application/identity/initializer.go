package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
)

// SeedConfig credenciales de la cuenta administradora inicial.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// Initializer paso de arranque: roles y cuenta administradora. Se ejecuta una sola vez por proceso.
type Initializer struct {
	manager *AccountManager
	seed    SeedConfig
	log     zerolog.Logger

	once sync.Once
	err  error
}

// NewInitializer construye el inicializador.
func NewInitializer(manager *AccountManager, seed SeedConfig, log zerolog.Logger) *Initializer {
	return &Initializer{manager: manager, seed: seed, log: log}
}

// Run ejecuta la inicialización la primera vez; las llamadas siguientes devuelven el mismo resultado.
func (i *Initializer) Run(ctx context.Context) error {
	i.once.Do(func() {
		if err := i.EnsureRoles(ctx); err != nil {
			i.err = err
			return
		}
		i.err = i.ensureAdmin(ctx)
	})
	return i.err
}

// EnsureRoles crea los roles que falten. Es idempotente.
func (i *Initializer) EnsureRoles(ctx context.Context) error {
	for _, r := range entity.AllRoles {
		ok, err := i.manager.RoleExists(ctx, r)
		if err != nil {
			return fmt.Errorf("comprobar rol %s: %w", r, err)
		}
		if ok {
			continue
		}
		if err := i.manager.CreateRole(ctx, r); err != nil {
			return fmt.Errorf("crear rol %s: %w", r, err)
		}
		i.log.Info().Str("role", r.String()).Msg("rol creado")
	}
	return nil
}

func (i *Initializer) ensureAdmin(ctx context.Context) error {
	if i.seed.AdminEmail == "" {
		return nil
	}
	admin, err := i.manager.FindByEmail(ctx, i.seed.AdminEmail)
	if err != nil {
		return fmt.Errorf("buscar administrador: %w", err)
	}
	if admin == nil {
		admin, err = i.manager.Create(ctx, i.seed.AdminEmail, i.seed.AdminPassword)
		if err != nil {
			return fmt.Errorf("crear administrador: %w", err)
		}
		i.log.Info().Str("email", admin.Email).Msg("cuenta administradora creada")
	}
	return i.manager.AddToRoles(ctx, admin.ID, entity.RoleAdmin)
}
