package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/application/identity"
	"github.com/jhoicas/AgriConnect-api/internal/application/ports"
	"github.com/jhoicas/AgriConnect-api/internal/application/usecase"
	"github.com/jhoicas/AgriConnect-api/internal/application/validation"
	"github.com/jhoicas/AgriConnect-api/internal/domain"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
	"github.com/jhoicas/AgriConnect-api/internal/infrastructure/memory"
)

// fixture reproduce los datos de semilla (John con Corn, Jane con Milk), pero con cada
// agricultor enlazado a una cuenta Farmer.
type fixture struct {
	store   *memory.Store
	manager *identity.AccountManager
	john    string
	jane    string
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	m := identity.NewAccountManager(store.Accounts(), store.Roles()).WithHashCost(bcrypt.MinCost)
	for _, r := range entity.AllRoles {
		require.NoError(t, m.CreateRole(ctx, r))
	}
	f := &fixture{store: store, manager: m}
	f.john = f.farmerWithProduct(t,
		entity.Farmer{FirstName: "John", LastName: "Doe", ContactNumber: "1234567890", Email: "john@example.com",
			Address: "123 Farm Lane", RegistrationDate: day(2024, 1, 10)},
		entity.Product{Name: "Corn", Category: "Grains", ProductionDate: day(2024, 3, 1),
			Description: "Fresh corn from John's farm.", AddedDate: day(2024, 3, 5)})
	f.jane = f.farmerWithProduct(t,
		entity.Farmer{FirstName: "Jane", LastName: "Smith", ContactNumber: "0987654321", Email: "jane@example.com",
			Address: "456 Field Road", RegistrationDate: day(2024, 2, 15)},
		entity.Product{Name: "Milk", Category: "Dairy", ProductionDate: day(2024, 3, 2),
			Description: "Organic milk from Jane.", AddedDate: day(2024, 3, 6)})
	return f
}

func (f *fixture) farmerWithProduct(t *testing.T, farmer entity.Farmer, product entity.Product) string {
	t.Helper()
	ctx := context.Background()
	acc, err := f.manager.Create(ctx, farmer.Email, "Secret#1")
	require.NoError(t, err)
	require.NoError(t, f.manager.AddToRoles(ctx, acc.ID, entity.RoleFarmer))
	farmer.AccountID = &acc.ID
	require.NoError(t, f.store.Farmers().Create(ctx, &farmer))
	product.FarmerID = farmer.ID
	require.NoError(t, f.store.Products().Create(ctx, &product))
	return acc.ID
}

func (f *fixture) farmerUC() *usecase.FarmerUseCase {
	return usecase.NewFarmerUseCase(f.store.Farmers(), f.store.Products(), validation.New())
}

func (f *fixture) employeeUC(reports ports.ProductReportGenerator) *usecase.EmployeeUseCase {
	return usecase.NewEmployeeUseCase(f.store.Farmers(), f.store.Products(), reports, validation.New(), zerolog.Nop())
}

func (f *fixture) adminUC() *usecase.AdminUseCase {
	return usecase.NewAdminUseCase(f.manager, f.store, validation.New())
}

func productIDs(list []dto.ProductResponse) []int64 {
	ids := make([]int64, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	return ids
}

// ---- FarmerUseCase ----

func TestFarmer_ListOwnProducts(t *testing.T) {
	f := newFixture(t)
	res, err := f.farmerUC().ListOwnProducts(context.Background(), f.john)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, productIDs(res.Products))
	assert.Equal(t, "John Doe", res.Products[0].FarmerName)
	assert.Empty(t, res.Message)
}

func TestFarmer_SinPerfil(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acc, err := f.manager.Create(ctx, "sinperfil@example.com", "Secret#1")
	require.NoError(t, err)

	res, err := f.farmerUC().ListOwnProducts(ctx, acc.ID)
	require.NoError(t, err)
	assert.Empty(t, res.Products)
	assert.Equal(t, usecase.MsgNoFarmerProfile, res.Message)

	dash, err := f.farmerUC().Dashboard(ctx, acc.ID)
	require.NoError(t, err)
	assert.Nil(t, dash.Farmer)

	_, err = f.farmerUC().CreateProduct(ctx, acc.ID, dto.ProductRequest{Name: "X", ProductionDate: "2024-05-01"})
	var fe domain.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, domain.FormLevel)

	_, err = f.farmerUC().GetProductForEdit(ctx, acc.ID, 1)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestFarmer_Dashboard(t *testing.T) {
	f := newFixture(t)
	dash, err := f.farmerUC().Dashboard(context.Background(), f.jane)
	require.NoError(t, err)
	require.NotNil(t, dash.Farmer)
	assert.Equal(t, int64(2), dash.Farmer.ID)
	assert.Equal(t, 1, dash.ProductCount)
}

func TestFarmer_CreateProduct_IgnoraDuenoDelCliente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := time.Now()
	res, err := f.farmerUC().CreateProduct(ctx, f.john, dto.ProductRequest{
		Name: " Beans ", Category: "Legumes", ProductionDate: "2024-04-10", Description: "Red beans",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.FarmerID)
	assert.Equal(t, "Beans", res.Name)
	assert.Equal(t, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), res.ProductionDate)
	assert.WithinDuration(t, before, res.AddedDate, 5*time.Second)

	stored, err := f.store.Products().GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.FarmerID)
}

func TestFarmer_CreateProduct_Validacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.farmerUC().CreateProduct(context.Background(), f.john, dto.ProductRequest{ProductionDate: "ayer"})
	var fe domain.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "name")
	assert.Contains(t, fe, "production_date")
}

// Editar un producto ajeno no modifica nada y devuelve ErrForbidden.
func TestFarmer_UpdateProduct_AjenoNoModifica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.farmerUC().UpdateProduct(ctx, f.jane, 1, dto.ProductRequest{
		ID: 1, Name: "Hacked", Category: "X", ProductionDate: "2024-01-01",
	})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	p, err := f.store.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Corn", p.Name)
	assert.Equal(t, int64(1), p.FarmerID)
}

func TestFarmer_UpdateProduct_ConservaDuenoYAlta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.farmerUC().UpdateProduct(ctx, f.john, 1, dto.ProductRequest{
		ID: 1, Name: "Sweet Corn", Category: "Grains", ProductionDate: "2024-03-03", Description: "Updated",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sweet Corn", res.Name)

	p, err := f.store.Products().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Sweet Corn", p.Name)
	assert.Equal(t, int64(1), p.FarmerID)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), p.AddedDate)
}

func TestFarmer_UpdateProduct_IdDistintoDeLaRuta(t *testing.T) {
	f := newFixture(t)
	_, err := f.farmerUC().UpdateProduct(context.Background(), f.john, 1, dto.ProductRequest{
		ID: 2, Name: "Corn", ProductionDate: "2024-03-01",
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFarmer_UpdateProduct_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.farmerUC().UpdateProduct(context.Background(), f.john, 99, dto.ProductRequest{
		Name: "Corn", ProductionDate: "2024-03-01",
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// racingProducts simula que entre la lectura y la escritura el producto se borró o cambió.
type racingProducts struct {
	repository.ProductRepository
	exists bool
}

func (r racingProducts) Update(context.Context, *entity.Product) error { return domain.ErrConflict }
func (r racingProducts) Delete(context.Context, int64, int64) error     { return domain.ErrConflict }
func (r racingProducts) Exists(context.Context, int64) (bool, error)    { return r.exists, nil }

func TestFarmer_UpdateProduct_Conflicto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := dto.ProductRequest{ID: 1, Name: "Corn", ProductionDate: "2024-03-01"}

	gone := usecase.NewFarmerUseCase(f.store.Farmers(), racingProducts{ProductRepository: f.store.Products(), exists: false}, validation.New())
	_, err := gone.UpdateProduct(ctx, f.john, 1, in)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	changed := usecase.NewFarmerUseCase(f.store.Farmers(), racingProducts{ProductRepository: f.store.Products(), exists: true}, validation.New())
	_, err = changed.UpdateProduct(ctx, f.john, 1, in)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.False(t, errors.Is(err, domain.ErrNotFound))

	assert.True(t, errors.Is(gone.DeleteProduct(ctx, f.john, 1), domain.ErrNotFound))
	assert.True(t, errors.Is(changed.DeleteProduct(ctx, f.john, 1), domain.ErrConflict))
}

func TestFarmer_DeleteProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.farmerUC()

	_, err := uc.GetProductForDelete(ctx, f.jane, 1)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.True(t, errors.Is(uc.DeleteProduct(ctx, f.jane, 1), domain.ErrForbidden), "el POST repite la comprobación")

	p, err := uc.GetProductForDelete(ctx, f.john, 1)
	require.NoError(t, err)
	assert.Equal(t, "Corn", p.Name)
	require.NoError(t, uc.DeleteProduct(ctx, f.john, 1))

	exists, err := f.store.Products().Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.True(t, errors.Is(uc.DeleteProduct(ctx, f.john, 1), domain.ErrNotFound))
}

// ---- EmployeeUseCase ----

func TestEmployee_FilterProducts_PorCategoria(t *testing.T) {
	f := newFixture(t)
	uc := f.employeeUC(nil)
	ctx := context.Background()

	res, err := uc.FilterProducts(ctx, dto.ProductFilterRequest{Category: "Grains"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, productIDs(res.Products))

	res, err = uc.FilterProducts(ctx, dto.ProductFilterRequest{Category: "Dairy"})
	require.NoError(t, err)
	require.Equal(t, []int64{2}, productIDs(res.Products))
	assert.Equal(t, "Milk", res.Products[0].Name)
	assert.Equal(t, int64(2), res.Products[0].FarmerID)

	res, err = uc.FilterProducts(ctx, dto.ProductFilterRequest{Category: "Unknown"})
	require.NoError(t, err)
	assert.Empty(t, res.Products)

	res, err = uc.FilterProducts(ctx, dto.ProductFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, productIDs(res.Products))
}

func TestEmployee_FilterProducts_FinDeDiaInclusivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	late := &entity.Product{FarmerID: 1, Name: "Late", Category: "Test",
		ProductionDate: time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC), AddedDate: time.Now()}
	next := &entity.Product{FarmerID: 1, Name: "Next", Category: "Test",
		ProductionDate: time.Date(2024, 3, 2, 0, 0, 1, 0, time.UTC), AddedDate: time.Now()}
	require.NoError(t, f.store.Products().Create(ctx, late))
	require.NoError(t, f.store.Products().Create(ctx, next))

	res, err := f.employeeUC(nil).FilterProducts(ctx, dto.ProductFilterRequest{FromDate: "2024-03-01", ToDate: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, late.ID}, productIDs(res.Products))

	res, err = f.employeeUC(nil).FilterProducts(ctx, dto.ProductFilterRequest{FromDate: "2024-03-02"})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, next.ID}, productIDs(res.Products))
}

func TestEmployee_FilterProducts_FechaInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.employeeUC(nil).FilterProducts(context.Background(), dto.ProductFilterRequest{ToDate: "31/12/2024"})
	var fe domain.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "to_date")
}

func TestEmployee_AddFarmer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.employeeUC(nil)

	_, err := uc.AddFarmer(ctx, dto.FarmerRequest{FirstName: "Ana"})
	var fe domain.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "last_name")
	assert.Contains(t, fe, "contact_number")
	assert.Contains(t, fe, "email")
	assert.Contains(t, fe, "address")

	res, err := uc.AddFarmer(ctx, dto.FarmerRequest{
		FirstName: "Ana", LastName: "Gómez", ContactNumber: "+57 300 111 2233", Email: "ana@example.com", Address: "Finca La Esperanza",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.ID)
	assert.False(t, res.RegistrationDate.IsZero())

	list, err := uc.ListFarmers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

type brokenFarmers struct{ repository.FarmerRepository }

func (brokenFarmers) Create(context.Context, *entity.Farmer) error { return errors.New("conexión perdida") }

func TestEmployee_AddFarmer_ErrorDePersistenciaEsErrorDeFormulario(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewEmployeeUseCase(brokenFarmers{f.store.Farmers()}, f.store.Products(), nil, validation.New(), zerolog.Nop())
	_, err := uc.AddFarmer(context.Background(), dto.FarmerRequest{
		FirstName: "Ana", LastName: "Gómez", ContactNumber: "3001112233", Email: "ana@example.com", Address: "Finca",
	})
	var fe domain.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe[domain.FormLevel], "Intente de nuevo")
}

func TestEmployee_FarmerProducts(t *testing.T) {
	f := newFixture(t)
	uc := f.employeeUC(nil)
	ctx := context.Background()

	res, err := uc.FarmerProducts(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", res.Farmer.FullName)
	assert.Equal(t, []int64{2}, productIDs(res.Products))

	for _, id := range []int64{0, -1, 99} {
		_, err := uc.FarmerProducts(ctx, id)
		assert.True(t, errors.Is(err, domain.ErrNotFound), "id %d", id)
	}
}

type captureReports struct {
	got ports.ProductReport
}

func (c *captureReports) GenerateProductReport(_ context.Context, r ports.ProductReport) ([]byte, error) {
	c.got = r
	return []byte("%PDF-fake"), nil
}

func TestEmployee_ExportProducts(t *testing.T) {
	f := newFixture(t)
	reports := &captureReports{}
	out, err := f.employeeUC(reports).ExportProducts(context.Background(), "emp@example.com", dto.ProductFilterRequest{Category: "Dairy"})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)
	assert.Equal(t, "emp@example.com", reports.got.GeneratedBy)
	assert.Equal(t, []int64{2}, productIDs(reports.got.Products))
}

func TestEmployee_Dashboard(t *testing.T) {
	f := newFixture(t)
	dash, err := f.employeeUC(nil).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, dash.Farmers)
	assert.Equal(t, []string{"Dairy", "Grains"}, dash.Categories)
}

// ---- AdminUseCase ----

func TestAdmin_UpdateUser_PropagaEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.adminUC().UpdateUser(ctx, f.john, dto.UpdateUserRequest{Email: "johnny@example.com", UserName: "johnny"})
	require.NoError(t, err)
	assert.Equal(t, "johnny@example.com", res.Email)
	assert.Equal(t, "johnny", res.UserName)

	farmer, err := f.store.Farmers().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "johnny@example.com", farmer.Email)

	// El enlace por cuenta sigue resolviendo tras el cambio de email.
	list, err := f.farmerUC().ListOwnProducts(ctx, f.john)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, productIDs(list.Products))
}

func TestAdmin_UpdateUser_EmailOcupado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.adminUC().UpdateUser(ctx, f.john, dto.UpdateUserRequest{Email: "JANE@example.com"})
	var idErr *domain.IdentityError
	require.True(t, errors.As(err, &idErr))

	farmer, err := f.store.Farmers().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", farmer.Email, "la transacción no se confirmó")

	_, err = f.adminUC().UpdateUser(ctx, "no-existe", dto.UpdateUserRequest{Email: "x@example.com"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAdmin_DeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.adminUC().DeleteUser(ctx, f.john))

	_, err := f.adminUC().GetUser(ctx, f.john)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	farmer, err := f.store.Farmers().GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, farmer, "el perfil sobrevive sin cuenta")
	assert.Nil(t, farmer.AccountID)

	assert.True(t, errors.Is(f.adminUC().DeleteUser(ctx, f.john), domain.ErrNotFound))
}

func TestAdmin_UserRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := f.adminUC()

	res, err := uc.UpdateUserRoles(ctx, f.john, dto.UpdateUserRolesRequest{Roles: []string{"Employee", "Admin"}})
	require.NoError(t, err)
	assert.Equal(t, []dto.RoleSelection{
		{Name: "Admin", IsSelected: true},
		{Name: "Farmer", IsSelected: false},
		{Name: "Employee", IsSelected: true},
	}, res.Roles)

	_, err = uc.UpdateUserRoles(ctx, f.john, dto.UpdateUserRolesRequest{Roles: []string{"Manager"}})
	var fe domain.FieldErrors
	require.True(t, errors.As(err, &fe))
	roles, err := f.manager.Roles(ctx, f.john)
	require.NoError(t, err)
	assert.Equal(t, []entity.Role{entity.RoleAdmin, entity.RoleEmployee}, roles, "un rol desconocido no aplica cambios")

	res, err = uc.UpdateUserRoles(ctx, f.john, dto.UpdateUserRolesRequest{})
	require.NoError(t, err)
	for _, r := range res.Roles {
		assert.False(t, r.IsSelected)
	}

	users, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	dash, err := uc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, dash.Users)
	assert.Equal(t, 1, dash.ByRole["Farmer"])
}

// failingAddRoles falla al asignar un rol, después de que la transacción ya quitó otros.
type failingAddRoles struct {
	repository.RoleRepository
}

func (failingAddRoles) AddMember(context.Context, string, entity.Role) error {
	return errors.New("conexión perdida")
}

type failingRolesTx struct {
	store *memory.Store
}

func (f failingRolesTx) RunIdentity(ctx context.Context, fn func(
	repository.AccountRepository, repository.RoleRepository, repository.FarmerRepository, repository.EmployeeRepository,
) error) error {
	return f.store.RunIdentity(ctx, func(a repository.AccountRepository, r repository.RoleRepository, fr repository.FarmerRepository, e repository.EmployeeRepository) error {
		return fn(a, failingAddRoles{r}, fr, e)
	})
}

// Si agregar falla, lo quitado en la misma operación se revierte.
func TestAdmin_UpdateUserRoles_FalloAlAgregarConservaRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := usecase.NewAdminUseCase(f.manager, failingRolesTx{store: f.store}, validation.New())

	_, err := uc.UpdateUserRoles(ctx, f.john, dto.UpdateUserRolesRequest{Roles: []string{"Employee"}})
	require.Error(t, err)

	roles, err := f.manager.Roles(ctx, f.john)
	require.NoError(t, err)
	assert.Equal(t, []entity.Role{entity.RoleFarmer}, roles)
}

// ---- NavigationUseCase ----

func TestDestinationFor(t *testing.T) {
	cases := []struct {
		roles []entity.Role
		want  string
	}{
		{nil, usecase.PathLanding},
		{[]entity.Role{entity.RoleAdmin}, usecase.PathLanding},
		{[]entity.Role{entity.RoleEmployee}, usecase.PathEmployeeDashboard},
		{[]entity.Role{entity.RoleFarmer}, usecase.PathFarmerDashboard},
		{[]entity.Role{entity.RoleEmployee, entity.RoleFarmer}, usecase.PathFarmerDashboard},
		{[]entity.Role{entity.RoleAdmin, entity.RoleEmployee}, usecase.PathEmployeeDashboard},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, usecase.DestinationFor(c.roles), "roles %v", c.roles)
	}
}

func TestNavigation_Destination(t *testing.T) {
	f := newFixture(t)
	nav := usecase.NewNavigationUseCase(f.manager)
	ctx := context.Background()

	dest, err := nav.Destination(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, usecase.PathLanding, dest)

	dest, err = nav.Destination(ctx, f.john)
	require.NoError(t, err)
	assert.Equal(t, usecase.PathFarmerDashboard, dest)
}
