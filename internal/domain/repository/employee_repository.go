package repository

import (
	"context"

	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
)

// EmployeeRepository puerto de persistencia para Employee.
type EmployeeRepository interface {
	// Create asigna employee.ID.
	Create(ctx context.Context, employee *entity.Employee) error
	GetByAccountID(ctx context.Context, accountID string) (*entity.Employee, error)
	UpdateEmailByAccount(ctx context.Context, accountID, email string) error
}
