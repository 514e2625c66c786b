package usecase

import (
	"context"

	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
)

// Destinos de la navegación por rol. PathLanding significa "mostrar la página de inicio".
const (
	PathFarmerDashboard   = "/Farmer/Dashboard"
	PathEmployeeDashboard = "/Employee/Dashboard"
	PathLanding           = ""
)

// RoleReader consulta los roles de una cuenta.
type RoleReader interface {
	Roles(ctx context.Context, accountID string) ([]entity.Role, error)
}

// NavigationUseCase decide a qué panel se envía al usuario que visita la raíz.
type NavigationUseCase struct {
	roles RoleReader
}

// NewNavigationUseCase construye el caso de uso.
func NewNavigationUseCase(roles RoleReader) *NavigationUseCase {
	return &NavigationUseCase{roles: roles}
}

// Destination ruta del panel para la cuenta, o PathLanding. Sin cuenta siempre es PathLanding.
func (uc *NavigationUseCase) Destination(ctx context.Context, accountID string) (string, error) {
	if accountID == "" {
		return PathLanding, nil
	}
	roles, err := uc.roles.Roles(ctx, accountID)
	if err != nil {
		return "", err
	}
	return DestinationFor(roles), nil
}

// DestinationFor Farmer tiene prioridad sobre Employee; Admin y cuentas sin rol van a la página de inicio.
func DestinationFor(roles []entity.Role) string {
	dest := PathLanding
	for _, r := range roles {
		switch r {
		case entity.RoleFarmer:
			return PathFarmerDashboard
		case entity.RoleEmployee:
			dest = PathEmployeeDashboard
		case entity.RoleAdmin:
		}
	}
	return dest
}
