package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/AgriConnect-api/internal/domain"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepository)(nil)
var _ repository.RoleRepository = (*RoleRepository)(nil)

// AccountRepository cuentas en memoria.
type AccountRepository struct {
	h handle
}

func emailTaken(st *state, normalized, exceptID string) bool {
	for _, a := range st.accounts {
		if a.NormalizedEmail == normalized && a.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	return r.h.write(ctx, func(st *state) error {
		if _, ok := st.accounts[a.ID]; ok {
			return domain.ErrDuplicate
		}
		if emailTaken(st, a.NormalizedEmail, "") {
			return domain.ErrEmailAlreadyExists
		}
		st.accounts[a.ID] = *a
		return nil
	})
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	var out *entity.Account
	err := r.h.read(ctx, func(st *state) error {
		if a, ok := st.accounts[id]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *AccountRepository) GetByNormalizedEmail(ctx context.Context, normalized string) (*entity.Account, error) {
	var out *entity.Account
	err := r.h.read(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if a.NormalizedEmail == normalized {
				a := a
				out = &a
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *AccountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	var out []*entity.Account
	err := r.h.read(ctx, func(st *state) error {
		for _, a := range st.accounts {
			a := a
			out = append(out, &a)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].NormalizedEmail < out[j].NormalizedEmail })
	return out, err
}

func (r *AccountRepository) Update(ctx context.Context, a *entity.Account) error {
	return r.h.write(ctx, func(st *state) error {
		cur, ok := st.accounts[a.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if emailTaken(st, a.NormalizedEmail, a.ID) {
			return domain.ErrEmailAlreadyExists
		}
		cur.UserName, cur.Email, cur.NormalizedEmail, cur.UpdatedAt = a.UserName, a.Email, a.NormalizedEmail, a.UpdatedAt
		st.accounts[a.ID] = cur
		return nil
	})
}

// Delete reproduce las reglas de la BD: borra membresías y Employee, desvincula el Farmer.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	return r.h.write(ctx, func(st *state) error {
		if _, ok := st.accounts[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.accounts, id)
		delete(st.members, id)
		for eid, e := range st.employees {
			if e.AccountID == id {
				delete(st.employees, eid)
			}
		}
		for fid, f := range st.farmers {
			if f.AccountID != nil && *f.AccountID == id {
				f.AccountID = nil
				st.farmers[fid] = f
			}
		}
		return nil
	})
}

// RoleRepository roles y membresías en memoria.
type RoleRepository struct {
	h handle
}

func (r *RoleRepository) Exists(ctx context.Context, role entity.Role) (bool, error) {
	var ok bool
	err := r.h.read(ctx, func(st *state) error {
		ok = st.roles[role]
		return nil
	})
	return ok, err
}

func (r *RoleRepository) Create(ctx context.Context, role entity.Role) error {
	return r.h.write(ctx, func(st *state) error {
		st.roles[role] = true
		return nil
	})
}

func (r *RoleRepository) List(ctx context.Context) ([]entity.Role, error) {
	var out []entity.Role
	err := r.h.read(ctx, func(st *state) error {
		for _, role := range entity.AllRoles {
			if st.roles[role] {
				out = append(out, role)
			}
		}
		return nil
	})
	return out, err
}

func (r *RoleRepository) RolesFor(ctx context.Context, accountID string) ([]entity.Role, error) {
	var out []entity.Role
	err := r.h.read(ctx, func(st *state) error {
		set := st.members[accountID]
		for _, role := range entity.AllRoles {
			if set[role] {
				out = append(out, role)
			}
		}
		return nil
	})
	return out, err
}

func (r *RoleRepository) AddMember(ctx context.Context, accountID string, role entity.Role) error {
	return r.h.write(ctx, func(st *state) error {
		if _, ok := st.accounts[accountID]; !ok {
			return fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, accountID)
		}
		if !st.roles[role] {
			return fmt.Errorf("%w: %s", domain.ErrUnknownRole, role)
		}
		set := st.members[accountID]
		if set == nil {
			set = make(map[entity.Role]bool)
			st.members[accountID] = set
		}
		set[role] = true
		return nil
	})
}

func (r *RoleRepository) RemoveMember(ctx context.Context, accountID string, role entity.Role) error {
	return r.h.write(ctx, func(st *state) error {
		delete(st.members[accountID], role)
		return nil
	})
}
