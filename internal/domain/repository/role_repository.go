package repository

import (
	"context"

	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
)

// RoleRepository puerto de persistencia de roles y membresías cuenta-rol (muchos a muchos).
type RoleRepository interface {
	Exists(ctx context.Context, role entity.Role) (bool, error)
	// Create es idempotente: crear un rol existente no es error ni duplica filas.
	Create(ctx context.Context, role entity.Role) error
	List(ctx context.Context) ([]entity.Role, error)
	RolesFor(ctx context.Context, accountID string) ([]entity.Role, error)
	AddMember(ctx context.Context, accountID string, role entity.Role) error
	RemoveMember(ctx context.Context, accountID string, role entity.Role) error
}
