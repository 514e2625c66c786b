package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/AgriConnect-api/internal/domain"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
)

// AccountManager almacén de cuentas: alta con política de contraseña y unicidad de email,
// búsquedas, edición, baja y pertenencia a roles.
type AccountManager struct {
	accounts repository.AccountRepository
	roles    repository.RoleRepository
	cost     int
}

// NewAccountManager construye el gestor sobre los repositorios dados (del pool o de una tx).
func NewAccountManager(accounts repository.AccountRepository, roles repository.RoleRepository) *AccountManager {
	return &AccountManager{accounts: accounts, roles: roles, cost: bcrypt.DefaultCost}
}

// WithHashCost cambia el coste de bcrypt (los tests usan bcrypt.MinCost).
func (m *AccountManager) WithHashCost(cost int) *AccountManager {
	m.cost = cost
	return m
}

func duplicateEmailReason(email string) string {
	return fmt.Sprintf("El email '%s' ya está registrado.", email)
}

// Create da de alta una cuenta con email como nombre de usuario. Los fallos de política o de
// unicidad se devuelven juntos en un *domain.IdentityError.
func (m *AccountManager) Create(ctx context.Context, email, password string) (*entity.Account, error) {
	reasons := CheckPasswordPolicy(password)
	normalized := entity.NormalizeEmail(email)
	existing, err := m.accounts.GetByNormalizedEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		reasons = append(reasons, duplicateEmailReason(email))
	}
	if len(reasons) > 0 {
		return nil, &domain.IdentityError{Reasons: reasons}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, &domain.IdentityError{Reasons: []string{ReasonPasswordTooLong}}
	}
	if err != nil {
		return nil, err
	}
	now := time.Now()
	account := &entity.Account{
		ID:              uuid.New().String(),
		UserName:        email,
		Email:           email,
		NormalizedEmail: normalized,
		PasswordHash:    string(hash),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := m.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, &domain.IdentityError{Reasons: []string{duplicateEmailReason(email)}}
		}
		return nil, err
	}
	return account, nil
}

// FindByID devuelve (nil, nil) si no existe.
func (m *AccountManager) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	return m.accounts.GetByID(ctx, id)
}

// FindByEmail busca sin distinguir mayúsculas. Devuelve (nil, nil) si no existe.
func (m *AccountManager) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return m.accounts.GetByNormalizedEmail(ctx, entity.NormalizeEmail(email))
}

func (m *AccountManager) List(ctx context.Context) ([]*entity.Account, error) {
	return m.accounts.List(ctx)
}

// Update guarda email y nombre de usuario, volviendo a comprobar la unicidad del email.
func (m *AccountManager) Update(ctx context.Context, account *entity.Account) error {
	account.NormalizedEmail = entity.NormalizeEmail(account.Email)
	other, err := m.accounts.GetByNormalizedEmail(ctx, account.NormalizedEmail)
	if err != nil {
		return err
	}
	if other != nil && other.ID != account.ID {
		return &domain.IdentityError{Reasons: []string{duplicateEmailReason(account.Email)}}
	}
	if account.UserName == "" {
		account.UserName = account.Email
	}
	account.UpdatedAt = time.Now()
	if err := m.accounts.Update(ctx, account); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return &domain.IdentityError{Reasons: []string{duplicateEmailReason(account.Email)}}
		}
		return err
	}
	return nil
}

func (m *AccountManager) Delete(ctx context.Context, id string) error {
	return m.accounts.Delete(ctx, id)
}

// CheckPassword indica si password corresponde al hash de la cuenta.
func (m *AccountManager) CheckPassword(account *entity.Account, password string) bool {
	if account == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) == nil
}

// Roles roles de la cuenta en el orden de AllRoles.
func (m *AccountManager) Roles(ctx context.Context, accountID string) ([]entity.Role, error) {
	return m.roles.RolesFor(ctx, accountID)
}

// AddToRoles añade la cuenta a cada rol; ya pertenecer a uno no es error.
func (m *AccountManager) AddToRoles(ctx context.Context, accountID string, roles ...entity.Role) error {
	for _, r := range roles {
		if err := m.requireRole(ctx, r); err != nil {
			return err
		}
		if err := m.roles.AddMember(ctx, accountID, r); err != nil {
			return fmt.Errorf("asignar rol %s: %w", r, err)
		}
	}
	return nil
}

// RemoveFromRoles quita la cuenta de cada rol; no pertenecer no es error.
func (m *AccountManager) RemoveFromRoles(ctx context.Context, accountID string, roles ...entity.Role) error {
	for _, r := range roles {
		if err := m.requireRole(ctx, r); err != nil {
			return err
		}
		if err := m.roles.RemoveMember(ctx, accountID, r); err != nil {
			return fmt.Errorf("quitar rol %s: %w", r, err)
		}
	}
	return nil
}

func (m *AccountManager) RoleExists(ctx context.Context, role entity.Role) (bool, error) {
	if !role.Valid() {
		return false, nil
	}
	return m.roles.Exists(ctx, role)
}

// CreateRole crea el rol si falta.
func (m *AccountManager) CreateRole(ctx context.Context, role entity.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrUnknownRole, role)
	}
	return m.roles.Create(ctx, role)
}

func (m *AccountManager) requireRole(ctx context.Context, r entity.Role) error {
	ok, err := m.RoleExists(ctx, r)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownRole, r)
	}
	return nil
}
