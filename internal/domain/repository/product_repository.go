package repository

import (
	"context"

	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	// Create asigna product.ID.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
	CountByFarmer(ctx context.Context, farmerID int64) (int, error)
	// ListByFarmer y Filter incluyen el Farmer dueño en cada producto.
	ListByFarmer(ctx context.Context, farmerID int64) ([]*entity.Product, error)
	Filter(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
	// Update modifica solo si la fila sigue perteneciendo a product.FarmerID.
	// Si no se afectó ninguna fila devuelve domain.ErrConflict.
	Update(ctx context.Context, product *entity.Product) error
	// Delete borra solo si la fila pertenece a farmerID; sin filas afectadas devuelve domain.ErrConflict.
	Delete(ctx context.Context, id, farmerID int64) error
}
