package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/AgriConnect-api/internal/domain"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository productos en memoria.
type ProductRepository struct {
	h handle
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.h.write(ctx, func(st *state) error {
		if _, ok := st.farmers[p.FarmerID]; !ok {
			return fmt.Errorf("%w: agricultor %d", domain.ErrInvalidInput, p.FarmerID)
		}
		st.nextProduct++
		p.ID = st.nextProduct
		stored := *p
		stored.Farmer = nil
		st.products[p.ID] = stored
		return nil
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.h.read(ctx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepository) Exists(ctx context.Context, id int64) (bool, error) {
	p, err := r.GetByID(ctx, id)
	return p != nil, err
}

func (r *ProductRepository) CountByFarmer(ctx context.Context, farmerID int64) (int, error) {
	n := 0
	err := r.h.read(ctx, func(st *state) error {
		for _, p := range st.products {
			if p.FarmerID == farmerID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *ProductRepository) ListByFarmer(ctx context.Context, farmerID int64) ([]*entity.Product, error) {
	return r.collect(ctx, func(p entity.Product) bool { return p.FarmerID == farmerID })
}

func (r *ProductRepository) Filter(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	lower, upper := f.LowerBound(), f.UpperBound()
	return r.collect(ctx, func(p entity.Product) bool {
		if f.Category != "" && p.Category != f.Category {
			return false
		}
		if lower != nil && p.ProductionDate.Before(*lower) {
			return false
		}
		if upper != nil && p.ProductionDate.After(*upper) {
			return false
		}
		return true
	})
}

// collect devuelve los productos que cumplen match, ordenados por id y con su Farmer cargado.
func (r *ProductRepository) collect(ctx context.Context, match func(entity.Product) bool) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.h.read(ctx, func(st *state) error {
		for _, p := range st.products {
			if !match(p) {
				continue
			}
			p := p
			if f, ok := st.farmers[p.FarmerID]; ok {
				p.Farmer = &f
			}
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	return r.h.write(ctx, func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok || cur.FarmerID != p.FarmerID {
			return domain.ErrConflict
		}
		cur.Name, cur.Category, cur.ProductionDate, cur.Description = p.Name, p.Category, p.ProductionDate, p.Description
		st.products[p.ID] = cur
		return nil
	})
}

func (r *ProductRepository) Delete(ctx context.Context, id, farmerID int64) error {
	return r.h.write(ctx, func(st *state) error {
		cur, ok := st.products[id]
		if !ok || cur.FarmerID != farmerID {
			return domain.ErrConflict
		}
		delete(st.products, id)
		return nil
	})
}
