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

var _ repository.AccountRepository = (*AccountRepo)(nil)

var accountColumns = []string{"id", "user_name", "email", "normalized_email", "password_hash", "created_at", "updated_at"}

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create persiste una cuenta nueva.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query, args, err := psql.Insert("accounts").
		Columns(accountColumns...).
		Values(a.ID, a.UserName, a.Email, a.NormalizedEmail, a.PasswordHash, a.CreatedAt, a.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert account: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepo) getOne(ctx context.Context, where squirrel.Sqlizer) (*entity.Account, error) {
	query, args, err := psql.Select(accountColumns...).From("accounts").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account: %w", err)
	}
	var a entity.Account
	if err := pgxscan.Get(ctx, r.q, &a, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByNormalizedEmail búsqueda indexada por el email normalizado.
func (r *AccountRepo) GetByNormalizedEmail(ctx context.Context, normalized string) (*entity.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"normalized_email": normalized})
}

// List todas las cuentas ordenadas por email.
func (r *AccountRepo) List(ctx context.Context) ([]*entity.Account, error) {
	query, args, err := psql.Select(accountColumns...).From("accounts").OrderBy("normalized_email").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list accounts: %w", err)
	}
	var list []*entity.Account
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return list, nil
}

// Update modifica nombre de usuario y email.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	query, args, err := psql.Update("accounts").
		Set("user_name", a.UserName).
		Set("email", a.Email).
		Set("normalized_email", a.NormalizedEmail).
		Set("updated_at", a.UpdatedAt).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update account: %w", err)
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la cuenta; las FK borran membresías y Employee y desvinculan el Farmer.
func (r *AccountRepo) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("accounts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete account: %w", err)
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
