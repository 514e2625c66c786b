package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/AgriConnect-api/internal/domain"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

var employeeColumns = []string{"id", "account_id", "farmer_id", "first_name", "last_name", "contact_number", "email"}

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query, args, err := psql.Insert("employees").
		Columns(employeeColumns[1:]...).
		Values(e.AccountID, e.FarmerID, e.FirstName, e.LastName, e.ContactNumber, e.Email).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert employee: %w", err)
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&e.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, constraintName(err))
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) GetByAccountID(ctx context.Context, accountID string) (*entity.Employee, error) {
	query, args, err := psql.Select(employeeColumns...).From("employees").Where(squirrel.Eq{"account_id": accountID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select employee: %w", err)
	}
	var e entity.Employee
	if err := pgxscan.Get(ctx, r.q, &e, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepo) UpdateEmailByAccount(ctx context.Context, accountID, email string) error {
	query, args, err := psql.Update("employees").
		Set("email", email).
		Where(squirrel.Eq{"account_id": accountID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update employee email: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update employee email: %w", err)
	}
	return nil
}
