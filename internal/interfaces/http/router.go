package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog"

	"github.com/jhoicas/AgriConnect-api/internal/application/auth"
	"github.com/jhoicas/AgriConnect-api/internal/application/identity"
	"github.com/jhoicas/AgriConnect-api/internal/application/usecase"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterUC   *auth.RegisterUseCase
	LoginUC      *auth.LoginUseCase
	NavigationUC *usecase.NavigationUseCase
	FarmerUC     *usecase.FarmerUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	AdminUC      *usecase.AdminUseCase
	Accounts     *identity.AccountManager
	Sessions     *session.Store
	Auth         AuthConfig
	Session      SessionConfig
	Log          zerolog.Logger
}

// Router registra las rutas de la aplicación.
func Router(app *fiber.App, deps RouterDeps) {
	b := base{errs: errorResponder{log: deps.Log}, flash: flasher{store: deps.Sessions}}

	app.Use(CSRFMiddleware(deps.Sessions, deps.Session))

	// Público
	homeHandler := NewHomeHandler(b, deps.NavigationUC)
	app.Get("/", OptionalAuth(deps.Auth), homeHandler.Index)

	account := app.Group("/Account")
	accountHandler := NewAccountHandler(b, deps.RegisterUC, deps.LoginUC, deps.Auth)
	account.Get("/Register", accountHandler.RegisterForm)
	account.Post("/Register", accountHandler.Register)
	account.Get("/Login", accountHandler.LoginForm)
	account.Post("/Login", accountHandler.Login)
	account.Post("/Logout", accountHandler.Logout)

	authn := AuthMiddleware(deps.Auth)

	// Agricultor: solo sus propios productos
	farmer := app.Group("/Farmer", authn, RequireRole(deps.Accounts, entity.RoleFarmer))
	farmerHandler := NewFarmerHandler(b, deps.FarmerUC)
	farmer.Get("/Dashboard", farmerHandler.Dashboard)
	farmer.Get("/ViewProducts", farmerHandler.ViewProducts)
	farmer.Get("/AddProduct", farmerHandler.AddProductForm)
	farmer.Post("/AddProduct", farmerHandler.AddProduct)
	farmer.Get("/EditProduct/:id", farmerHandler.EditProductForm)
	farmer.Post("/EditProduct/:id", farmerHandler.EditProduct)
	farmer.Get("/DeleteProduct/:id", farmerHandler.DeleteProductForm)
	farmer.Post("/DeleteProduct/:id", farmerHandler.DeleteProduct)

	// Empleado
	employee := app.Group("/Employee", authn, RequireRole(deps.Accounts, entity.RoleEmployee))
	employeeHandler := NewEmployeeHandler(b, deps.EmployeeUC)
	employee.Get("/Dashboard", employeeHandler.Dashboard)
	employee.Get("/ViewFarmers", employeeHandler.ViewFarmers)
	employee.Get("/ViewFarmerProducts/:farmerId", employeeHandler.ViewFarmerProducts)
	employee.Get("/AddFarmer", employeeHandler.AddFarmerForm)
	employee.Post("/AddFarmer", employeeHandler.AddFarmer)
	employee.Get("/FilterProducts", employeeHandler.FilterProducts)
	employee.Post("/FilterProducts", employeeHandler.FilterProducts)
	employee.Get("/ExportProducts", employeeHandler.ExportProducts)

	// Administrador
	admin := app.Group("/Admin", authn, RequireRole(deps.Accounts, entity.RoleAdmin))
	adminHandler := NewAdminHandler(b, deps.AdminUC)
	admin.Get("/Dashboard", adminHandler.Dashboard)
	admin.Get("/ManageUsers", adminHandler.ManageUsers)
	admin.Get("/EditUser/:id", adminHandler.EditUserForm)
	admin.Post("/EditUser/:id", adminHandler.EditUser)
	admin.Get("/DeleteUser/:id", adminHandler.DeleteUserForm)
	admin.Post("/DeleteUser/:id", adminHandler.DeleteUser)
	admin.Get("/ManageUserRoles/:userId", adminHandler.ManageUserRolesForm)
	admin.Post("/ManageUserRoles/:userId", adminHandler.ManageUserRoles)
}
