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

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo roles (id = valor de entity.Role) y membresías en account_roles.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

func (r *RoleRepo) Exists(ctx context.Context, role entity.Role) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE id = $1)`, int16(role)).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("role exists: %w", err)
	}
	return ok, nil
}

// Create inserta el rol; si ya existe no hace nada.
func (r *RoleRepo) Create(ctx context.Context, role entity.Role) error {
	query, args, err := psql.Insert("roles").
		Columns("id", "name").
		Values(int16(role), role.String()).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert role: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

func (r *RoleRepo) List(ctx context.Context) ([]entity.Role, error) {
	return r.selectRoles(ctx, psql.Select("id").From("roles").OrderBy("id"))
}

func (r *RoleRepo) RolesFor(ctx context.Context, accountID string) ([]entity.Role, error) {
	return r.selectRoles(ctx, psql.Select("role_id").
		From("account_roles").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("role_id"))
}

func (r *RoleRepo) selectRoles(ctx context.Context, qb squirrel.SelectBuilder) ([]entity.Role, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select roles: %w", err)
	}
	var ids []int16
	if err := pgxscan.Select(ctx, r.q, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select roles: %w", err)
	}
	roles := make([]entity.Role, 0, len(ids))
	for _, id := range ids {
		role := entity.Role(id)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: id %d", domain.ErrUnknownRole, id)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// AddMember es idempotente.
func (r *RoleRepo) AddMember(ctx context.Context, accountID string, role entity.Role) error {
	query, args, err := psql.Insert("account_roles").
		Columns("account_id", "role_id").
		Values(accountID, int16(role)).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert account role: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			if constraintName(err) == "account_roles_role_id_fkey" {
				return fmt.Errorf("%w: %s", domain.ErrUnknownRole, role)
			}
			return fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, accountID)
		}
		return fmt.Errorf("insert account role: %w", err)
	}
	return nil
}

func (r *RoleRepo) RemoveMember(ctx context.Context, accountID string, role entity.Role) error {
	query, args, err := psql.Delete("account_roles").
		Where(squirrel.Eq{"account_id": accountID}).
		Where(squirrel.Eq{"role_id": int16(role)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete account role: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete account role: %w", err)
	}
	return nil
}
