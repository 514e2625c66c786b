package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/application/ports"
	"github.com/jhoicas/AgriConnect-api/internal/application/validation"
	"github.com/jhoicas/AgriConnect-api/internal/domain"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
)

// EmployeeUseCase consultas del empleado sobre agricultores y productos.
type EmployeeUseCase struct {
	farmers   repository.FarmerRepository
	products  repository.ProductRepository
	reports   ports.ProductReportGenerator
	validator *validation.Validator
	log       zerolog.Logger
	now       func() time.Time
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(
	farmers repository.FarmerRepository,
	products repository.ProductRepository,
	reports ports.ProductReportGenerator,
	v *validation.Validator,
	log zerolog.Logger,
) *EmployeeUseCase {
	return &EmployeeUseCase{farmers: farmers, products: products, reports: reports, validator: v, log: log, now: time.Now}
}

// Dashboard total de agricultores y categorías con productos.
func (uc *EmployeeUseCase) Dashboard(ctx context.Context) (*dto.EmployeeDashboardResponse, error) {
	farmers, err := uc.farmers.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.products.Filter(ctx, entity.ProductFilter{})
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	categories := []string{}
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return &dto.EmployeeDashboardResponse{Farmers: len(farmers), Categories: categories}, nil
}

func (uc *EmployeeUseCase) ListFarmers(ctx context.Context) ([]dto.FarmerResponse, error) {
	list, err := uc.farmers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FarmerResponse, 0, len(list))
	for _, f := range list {
		out = append(out, *toFarmerResponse(f))
	}
	return out, nil
}

// AddFarmer da de alta un agricultor sin cuenta asociada. Un fallo al guardar se registra y se
// devuelve como error de formulario genérico para que el usuario reintente.
func (uc *EmployeeUseCase) AddFarmer(ctx context.Context, in dto.FarmerRequest) (*dto.FarmerResponse, error) {
	if fe := uc.validator.Struct(in); fe != nil {
		return nil, fe
	}
	farmer := &entity.Farmer{
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		ContactNumber:    strings.TrimSpace(in.ContactNumber),
		Email:            strings.TrimSpace(in.Email),
		Address:          strings.TrimSpace(in.Address),
		RegistrationDate: uc.now(),
	}
	if err := uc.farmers.Create(ctx, farmer); err != nil {
		uc.log.Error().Err(err).Str("email", farmer.Email).Msg("error al guardar agricultor")
		return nil, domain.FieldErrors{domain.FormLevel: "Ocurrió un error al guardar el agricultor. Intente de nuevo."}
	}
	return toFarmerResponse(farmer), nil
}

// FarmerProducts productos de un agricultor. Id no positivo o inexistente: ErrNotFound.
func (uc *EmployeeUseCase) FarmerProducts(ctx context.Context, farmerID int64) (*dto.FarmerProductsResponse, error) {
	if farmerID <= 0 {
		return nil, domain.ErrNotFound
	}
	farmer, err := uc.farmers.GetByID(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.products.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	return &dto.FarmerProductsResponse{Farmer: *toFarmerResponse(farmer), Products: toProductResponses(list)}, nil
}

// ParseFilter convierte el formulario en entity.ProductFilter. Fechas vacías no limitan.
func ParseFilter(in dto.ProductFilterRequest) (entity.ProductFilter, error) {
	fe := domain.FieldErrors{}
	from, err := dto.ParseOptionalDate(in.FromDate)
	if err != nil {
		fe.Add("from_date", "El campo from_date no es una fecha válida.")
	}
	to, err := dto.ParseOptionalDate(in.ToDate)
	if err != nil {
		fe.Add("to_date", "El campo to_date no es una fecha válida.")
	}
	if !fe.Empty() {
		return entity.ProductFilter{}, fe
	}
	return entity.ProductFilter{Category: strings.TrimSpace(in.Category), From: from, To: to}, nil
}

// FilterProducts filtra por categoría exacta y rango de fecha de producción; el límite
// superior incluye todo el día indicado.
func (uc *EmployeeUseCase) FilterProducts(ctx context.Context, in dto.ProductFilterRequest) (*dto.FilterProductsResponse, error) {
	filter, err := ParseFilter(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.products.Filter(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.FilterProductsResponse{Filter: in, Products: toProductResponses(list)}, nil
}

// ExportProducts genera el PDF de los productos filtrados.
func (uc *EmployeeUseCase) ExportProducts(ctx context.Context, generatedBy string, in dto.ProductFilterRequest) ([]byte, error) {
	res, err := uc.FilterProducts(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.reports.GenerateProductReport(ctx, ports.ProductReport{
		GeneratedAt: uc.now(),
		GeneratedBy: generatedBy,
		Filter:      in,
		Products:    res.Products,
	})
}
