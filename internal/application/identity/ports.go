package identity

import (
	"context"

	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a ella.
// Si fn devuelve error no queda nada escrito: ni la cuenta, ni su rol, ni el perfil.
type TxRunner interface {
	RunIdentity(ctx context.Context, fn func(
		accountRepo repository.AccountRepository,
		roleRepo repository.RoleRepository,
		farmerRepo repository.FarmerRepository,
		employeeRepo repository.EmployeeRepository,
	) error) error
}
