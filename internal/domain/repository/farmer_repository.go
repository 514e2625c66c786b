package repository

import (
	"context"

	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
)

// FarmerRepository puerto de persistencia para Farmer.
type FarmerRepository interface {
	// Create asigna farmer.ID.
	Create(ctx context.Context, farmer *entity.Farmer) error
	GetByID(ctx context.Context, id int64) (*entity.Farmer, error)
	// GetByAccountID resuelve el perfil dueño de una cuenta (búsqueda indexada por FK).
	GetByAccountID(ctx context.Context, accountID string) (*entity.Farmer, error)
	List(ctx context.Context) ([]*entity.Farmer, error)
	UpdateEmailByAccount(ctx context.Context, accountID, email string) error
}
