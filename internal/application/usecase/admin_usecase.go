package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/application/identity"
	"github.com/jhoicas/AgriConnect-api/internal/application/validation"
	"github.com/jhoicas/AgriConnect-api/internal/domain"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
)

// AdminUseCase gestión de cuentas y roles, independiente de los perfiles de dominio.
type AdminUseCase struct {
	accounts  *identity.AccountManager
	tx        identity.TxRunner
	validator *validation.Validator
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(accounts *identity.AccountManager, tx identity.TxRunner, v *validation.Validator) *AdminUseCase {
	return &AdminUseCase{accounts: accounts, tx: tx, validator: v}
}

// Dashboard número de cuentas, total y por rol.
func (uc *AdminUseCase) Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	users, err := uc.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.AdminDashboardResponse{Users: len(users), ByRole: map[string]int{}}
	for _, r := range entity.AllRoles {
		out.ByRole[r.String()] = 0
	}
	for _, u := range users {
		for _, r := range u.Roles {
			out.ByRole[r]++
		}
	}
	return out, nil
}

// ListUsers todas las cuentas con sus roles.
func (uc *AdminUseCase) ListUsers(ctx context.Context) ([]dto.AccountResponse, error) {
	list, err := uc.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		roles, err := uc.accounts.Roles(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toAccountResponse(a, roles))
	}
	return out, nil
}

func (uc *AdminUseCase) account(ctx context.Context, id string) (*entity.Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	a, err := uc.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// GetUser cuenta por id. ErrNotFound si no existe.
func (uc *AdminUseCase) GetUser(ctx context.Context, id string) (*dto.AccountResponse, error) {
	a, err := uc.account(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := uc.accounts.Roles(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	out := toAccountResponse(a, roles)
	return &out, nil
}

// UpdateUser cambia email y nombre de usuario. El nuevo email se copia en el mismo commit a los
// perfiles de agricultor y empleado enlazados a la cuenta.
func (uc *AdminUseCase) UpdateUser(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.AccountResponse, error) {
	if fe := uc.validator.Struct(in); fe != nil {
		return nil, fe
	}
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	var updated *entity.Account
	err := uc.tx.RunIdentity(ctx, func(
		accountRepo repository.AccountRepository,
		roleRepo repository.RoleRepository,
		farmerRepo repository.FarmerRepository,
		employeeRepo repository.EmployeeRepository,
	) error {
		manager := identity.NewAccountManager(accountRepo, roleRepo)
		a, err := manager.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		emailChanged := a.Email != strings.TrimSpace(in.Email)
		a.Email = strings.TrimSpace(in.Email)
		a.UserName = strings.TrimSpace(in.UserName)
		if err := manager.Update(ctx, a); err != nil {
			return err
		}
		if emailChanged {
			if err := farmerRepo.UpdateEmailByAccount(ctx, a.ID, a.Email); err != nil {
				return err
			}
			if err := employeeRepo.UpdateEmailByAccount(ctx, a.ID, a.Email); err != nil {
				return err
			}
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	roles, err := uc.accounts.Roles(ctx, updated.ID)
	if err != nil {
		return nil, err
	}
	out := toAccountResponse(updated, roles)
	return &out, nil
}

// DeleteUser borra la cuenta: su Employee se borra en cascada y su Farmer queda sin cuenta.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, id string) error {
	a, err := uc.account(ctx, id)
	if err != nil {
		return err
	}
	return uc.accounts.Delete(ctx, a.ID)
}

// UserRoles todos los roles, marcando los que tiene la cuenta.
func (uc *AdminUseCase) UserRoles(ctx context.Context, userID string) (*dto.UserRolesResponse, error) {
	a, err := uc.account(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Quitar y agregar en una sola transacción.
	err = uc.tx.RunIdentity(ctx, func(
		accountRepo repository.AccountRepository,
		roleRepo repository.RoleRepository,
		_ repository.FarmerRepository,
		_ repository.EmployeeRepository,
	) error {
		manager := identity.NewAccountManager(accountRepo, roleRepo)
		current, err := manager.Roles(ctx, a.ID)
		if err != nil {
			return err
		}
		var toRemove, toAdd []entity.Role
		for _, r := range current {
			if !entity.HasRole(selected, r) {
				toRemove = append(toRemove, r)
			}
		}
		for _, r := range selected {
			if !entity.HasRole(current, r) {
				toAdd = append(toAdd, r)
			}
		}
		if err := manager.RemoveFromRoles(ctx, a.ID, toRemove...); err != nil {
			return err
		}
		return manager.AddToRoles(ctx, a.ID, toAdd...)
	})
	if err != nil {
		return nil, err
	}
	return uc.UserRoles(ctx, a.ID)
}
