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

var _ repository.FarmerRepository = (*FarmerRepo)(nil)

var farmerColumns = []string{"id", "account_id", "first_name", "last_name", "contact_number", "email", "address", "registration_date"}

// FarmerRepo implementación del puerto FarmerRepository sobre PostgreSQL.
type FarmerRepo struct {
	q Querier
}

// NewFarmerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFarmerRepository(q Querier) *FarmerRepo {
	return &FarmerRepo{q: q}
}

// Create inserta el agricultor y asigna el id generado.
func (r *FarmerRepo) Create(ctx context.Context, f *entity.Farmer) error {
	query, args, err := psql.Insert("farmers").
		Columns(farmerColumns[1:]...).
		Values(f.AccountID, f.FirstName, f.LastName, f.ContactNumber, f.Email, f.Address, f.RegistrationDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert farmer: %w", err)
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&f.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cuenta inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert farmer: %w", err)
	}
	return nil
}

func (r *FarmerRepo) getOne(ctx context.Context, where squirrel.Sqlizer) (*entity.Farmer, error) {
	query, args, err := psql.Select(farmerColumns...).From("farmers").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select farmer: %w", err)
	}
	var f entity.Farmer
	if err := pgxscan.Get(ctx, r.q, &f, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get farmer: %w", err)
	}
	return &f, nil
}

func (r *FarmerRepo) GetByID(ctx context.Context, id int64) (*entity.Farmer, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByAccountID usa el índice único de farmers.account_id.
func (r *FarmerRepo) GetByAccountID(ctx context.Context, accountID string) (*entity.Farmer, error) {
	return r.getOne(ctx, squirrel.Eq{"account_id": accountID})
}

func (r *FarmerRepo) List(ctx context.Context) ([]*entity.Farmer, error) {
	query, args, err := psql.Select(farmerColumns...).From("farmers").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list farmers: %w", err)
	}
	var list []*entity.Farmer
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list farmers: %w", err)
	}
	return list, nil
}

func (r *FarmerRepo) UpdateEmailByAccount(ctx context.Context, accountID, email string) error {
	query, args, err := psql.Update("farmers").
		Set("email", email).
		Where(squirrel.Eq{"account_id": accountID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update farmer email: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update farmer email: %w", err)
	}
	return nil
}
