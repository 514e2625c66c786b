package repository

import (
	"context"

	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
)

// AccountRepository puerto de persistencia de las identidades de inicio de sesión.
// Los Get* devuelven (nil, nil) si no existe el registro.
type AccountRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email normalizado ya existe.
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByNormalizedEmail(ctx context.Context, normalizedEmail string) (*entity.Account, error)
	List(ctx context.Context) ([]*entity.Account, error)
	// Update devuelve domain.ErrNotFound si la cuenta ya no existe.
	Update(ctx context.Context, account *entity.Account) error
	// Delete borra la cuenta; la BD elimina en cascada el Employee y desvincula el Farmer.
	Delete(ctx context.Context, id string) error
}
