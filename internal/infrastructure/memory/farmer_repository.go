package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/AgriConnect-api/internal/domain"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
)

var _ repository.FarmerRepository = (*FarmerRepository)(nil)
var _ repository.EmployeeRepository = (*EmployeeRepository)(nil)

// FarmerRepository agricultores en memoria.
type FarmerRepository struct {
	h handle
}

func (r *FarmerRepository) Create(ctx context.Context, f *entity.Farmer) error {
	return r.h.write(ctx, func(st *state) error {
		if f.AccountID != nil {
			if _, ok := st.accounts[*f.AccountID]; !ok {
				return fmt.Errorf("%w: cuenta %s", domain.ErrInvalidInput, *f.AccountID)
			}
			for _, other := range st.farmers {
				if other.AccountID != nil && *other.AccountID == *f.AccountID {
					return domain.ErrDuplicate
				}
			}
		}
		st.nextFarmer++
		f.ID = st.nextFarmer
		st.farmers[f.ID] = *f
		return nil
	})
}

func (r *FarmerRepository) GetByID(ctx context.Context, id int64) (*entity.Farmer, error) {
	var out *entity.Farmer
	err := r.h.read(ctx, func(st *state) error {
		if f, ok := st.farmers[id]; ok {
			out = &f
		}
		return nil
	})
	return out, err
}

func (r *FarmerRepository) GetByAccountID(ctx context.Context, accountID string) (*entity.Farmer, error) {
	var out *entity.Farmer
	err := r.h.read(ctx, func(st *state) error {
		for _, f := range st.farmers {
			if f.AccountID != nil && *f.AccountID == accountID {
				f := f
				out = &f
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *FarmerRepository) List(ctx context.Context) ([]*entity.Farmer, error) {
	var out []*entity.Farmer
	err := r.h.read(ctx, func(st *state) error {
		for _, f := range st.farmers {
			f := f
			out = append(out, &f)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *FarmerRepository) UpdateEmailByAccount(ctx context.Context, accountID, email string) error {
	return r.h.write(ctx, func(st *state) error {
		for id, f := range st.farmers {
			if f.AccountID != nil && *f.AccountID == accountID {
				f.Email = email
				st.farmers[id] = f
			}
		}
		return nil
	})
}

// EmployeeRepository empleados en memoria.
type EmployeeRepository struct {
	h handle
}

func (r *EmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	return r.h.write(ctx, func(st *state) error {
		if _, ok := st.accounts[e.AccountID]; !ok {
			return fmt.Errorf("%w: cuenta %s", domain.ErrInvalidInput, e.AccountID)
		}
		if e.FarmerID != nil {
			if _, ok := st.farmers[*e.FarmerID]; !ok {
				return fmt.Errorf("%w: agricultor %d", domain.ErrInvalidInput, *e.FarmerID)
			}
		}
		for _, other := range st.employees {
			if other.AccountID == e.AccountID {
				return domain.ErrDuplicate
			}
		}
		st.nextEmployee++
		e.ID = st.nextEmployee
		st.employees[e.ID] = *e
		return nil
	})
}

func (r *EmployeeRepository) GetByAccountID(ctx context.Context, accountID string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.h.read(ctx, func(st *state) error {
		for _, e := range st.employees {
			if e.AccountID == accountID {
				e := e
				out = &e
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *EmployeeRepository) UpdateEmailByAccount(ctx context.Context, accountID, email string) error {
	return r.h.write(ctx, func(st *state) error {
		for id, e := range st.employees {
			if e.AccountID == accountID {
				v := email
				e.Email = &v
				st.employees[id] = e
			}
		}
		return nil
	})
}
