package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/application/validation"
	"github.com/jhoicas/AgriConnect-api/internal/domain"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
)

// MsgNoFarmerProfile mensaje cuando la cuenta no tiene perfil de agricultor asociado.
const MsgNoFarmerProfile = "No se encontró un perfil de agricultor para su cuenta. Complete su perfil o contacte a soporte."

// FarmerUseCase operaciones del agricultor autenticado sobre sus propios productos.
// Todas reciben el id de la cuenta que llama; el dueño se resuelve por farmers.account_id.
type FarmerUseCase struct {
	farmers   repository.FarmerRepository
	products  repository.ProductRepository
	validator *validation.Validator
	now       func() time.Time
}

// NewFarmerUseCase construye el caso de uso.
func NewFarmerUseCase(farmers repository.FarmerRepository, products repository.ProductRepository, v *validation.Validator) *FarmerUseCase {
	return &FarmerUseCase{farmers: farmers, products: products, validator: v, now: time.Now}
}

// owner resuelve el perfil de la cuenta. Sin perfil devuelve ErrFarmerProfileNotFound.
func (uc *FarmerUseCase) owner(ctx context.Context, accountID string) (*entity.Farmer, error) {
	farmer, err := uc.farmers.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, domain.ErrFarmerProfileNotFound
	}
	return farmer, nil
}

// Dashboard resumen del agricultor. Sin perfil no es error: se informa con Message.
func (uc *FarmerUseCase) Dashboard(ctx context.Context, accountID string) (*dto.FarmerDashboardResponse, error) {
	farmer, err := uc.owner(ctx, accountID)
	if errors.Is(err, domain.ErrFarmerProfileNotFound) {
		return &dto.FarmerDashboardResponse{Message: MsgNoFarmerProfile}, nil
	}
	if err != nil {
		return nil, err
	}
	n, err := uc.products.CountByFarmer(ctx, farmer.ID)
	if err != nil {
		return nil, err
	}
	return &dto.FarmerDashboardResponse{Farmer: toFarmerResponse(farmer), ProductCount: n}, nil
}

// ListOwnProducts productos del agricultor. Sin perfil devuelve lista vacía y un mensaje.
func (uc *FarmerUseCase) ListOwnProducts(ctx context.Context, accountID string) (*dto.ProductListResponse, error) {
	farmer, err := uc.owner(ctx, accountID)
	if errors.Is(err, domain.ErrFarmerProfileNotFound) {
		return &dto.ProductListResponse{Products: []dto.ProductResponse{}, Message: MsgNoFarmerProfile}, nil
	}
	if err != nil {
		return nil, err
	}
	list, err := uc.products.ListByFarmer(ctx, farmer.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Products: toProductResponses(list)}, nil
}

// validateProduct valida el formulario y devuelve la fecha de producción interpretada.
func (uc *FarmerUseCase) validateProduct(in dto.ProductRequest) (time.Time, domain.FieldErrors) {
	fe := uc.validator.Struct(in)
	if fe == nil {
		fe = domain.FieldErrors{}
	}
	var produced time.Time
	if _, bad := fe["production_date"]; !bad {
		t, err := dto.ParseDate(in.ProductionDate)
		if err != nil {
			fe.Add("production_date", "El campo production_date no es una fecha válida.")
		}
		produced = t
	}
	if fe.Empty() {
		return produced, nil
	}
	return produced, fe
}

// CreateProduct registra un producto del agricultor. El dueño y la fecha de alta los fija el servidor.
func (uc *FarmerUseCase) CreateProduct(ctx context.Context, accountID string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	produced, fe := uc.validateProduct(in)
	if fe != nil {
		return nil, fe
	}
	farmer, err := uc.owner(ctx, accountID)
	if errors.Is(err, domain.ErrFarmerProfileNotFound) {
		return nil, domain.FieldErrors{domain.FormLevel: MsgNoFarmerProfile}
	}
	if err != nil {
		return nil, err
	}
	product := &entity.Product{
		FarmerID:       farmer.ID,
		Name:           strings.TrimSpace(in.Name),
		Category:       strings.TrimSpace(in.Category),
		ProductionDate: produced,
		Description:    strings.TrimSpace(in.Description),
		AddedDate:      uc.now(),
	}
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	product.Farmer = farmer
	return toProductResponse(product), nil
}

// ownedProduct carga el producto y comprueba que pertenece a la cuenta.
// ErrNotFound si no existe; ErrForbidden si es de otro agricultor o la cuenta no tiene perfil.
func (uc *FarmerUseCase) ownedProduct(ctx context.Context, accountID string, id int64) (*entity.Product, *entity.Farmer, error) {
	if id <= 0 {
		return nil, nil, domain.ErrNotFound
	}
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	farmer, err := uc.owner(ctx, accountID)
	if errors.Is(err, domain.ErrFarmerProfileNotFound) {
		return nil, nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, nil, err
	}
	if !farmer.Owns(product) {
		return nil, nil, domain.ErrForbidden
	}
	product.Farmer = farmer
	return product, farmer, nil
}

// GetProductForEdit producto a editar, solo si es del agricultor.
func (uc *FarmerUseCase) GetProductForEdit(ctx context.Context, accountID string, id int64) (*dto.ProductResponse, error) {
	product, _, err := uc.ownedProduct(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateProduct aplica solo nombre, categoría, fecha de producción y descripción. El dueño y
// la fecha de alta se conservan del registro guardado.
func (uc *FarmerUseCase) UpdateProduct(ctx context.Context, accountID string, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if in.ID != 0 && in.ID != id {
		return nil, domain.ErrNotFound
	}
	produced, fe := uc.validateProduct(in)
	if fe != nil {
		return nil, fe
	}
	original, farmer, err := uc.ownedProduct(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	updated := &entity.Product{
		ID:             original.ID,
		FarmerID:       original.FarmerID,
		Name:           strings.TrimSpace(in.Name),
		Category:       strings.TrimSpace(in.Category),
		ProductionDate: produced,
		Description:    strings.TrimSpace(in.Description),
		AddedDate:      original.AddedDate,
		Farmer:         farmer,
	}
	if err := uc.products.Update(ctx, updated); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, uc.resolveConflict(ctx, id, err)
	}
	return toProductResponse(updated), nil
}

// resolveConflict distingue un producto borrado en paralelo (no encontrado) de una
// modificación concurrente real, que se devuelve como error fatal sin reintentar.
func (uc *FarmerUseCase) resolveConflict(ctx context.Context, id int64, cause error) error {
	exists, err := uc.products.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("producto %d modificado concurrentemente: %w", id, cause)
}

// GetProductForDelete confirmación de borrado, con la misma comprobación de dueño que el borrado.
func (uc *FarmerUseCase) GetProductForDelete(ctx context.Context, accountID string, id int64) (*dto.ProductResponse, error) {
	return uc.GetProductForEdit(ctx, accountID, id)
}

// DeleteProduct borra el producto si pertenece al agricultor.
func (uc *FarmerUseCase) DeleteProduct(ctx context.Context, accountID string, id int64) error {
	product, _, err := uc.ownedProduct(ctx, accountID, id)
	if err != nil {
		return err
	}
	if err := uc.products.Delete(ctx, product.ID, product.FarmerID); err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
		return uc.resolveConflict(ctx, id, err)
	}
	return nil
}
