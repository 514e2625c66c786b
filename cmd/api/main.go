package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/AgriConnect-api/internal/application/auth"
	"github.com/jhoicas/AgriConnect-api/internal/application/identity"
	"github.com/jhoicas/AgriConnect-api/internal/application/usecase"
	"github.com/jhoicas/AgriConnect-api/internal/application/validation"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
	"github.com/jhoicas/AgriConnect-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/AgriConnect-api/internal/infrastructure/pdf"
	"github.com/jhoicas/AgriConnect-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/AgriConnect-api/internal/interfaces/http"
	"github.com/jhoicas/AgriConnect-api/pkg/config"
	"github.com/jhoicas/AgriConnect-api/pkg/logger"
)

// stores adaptadores de persistencia elegidos por STORE_DRIVER.
type stores struct {
	accounts repository.AccountRepository
	roles    repository.RoleRepository
	farmers  repository.FarmerRepository
	products repository.ProductRepository
	tx       identity.TxRunner
	close    func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) stores {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("usando almacén en memoria: los datos se pierden al reiniciar")
		store := memory.NewSeededStore()
		return stores{
			accounts: store.Accounts(),
			roles:    store.Roles(),
			farmers:  store.Farmers(),
			products: store.Products(),
			tx:       store,
			close:    func() {},
		}
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.ApplyMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	return stores{
		accounts: postgres.NewAccountRepository(pool),
		roles:    postgres.NewRoleRepository(pool),
		farmers:  postgres.NewFarmerRepository(pool),
		products: postgres.NewProductRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		close:    pool.Close,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st := openStores(ctx, cfg, log)
	defer st.close()

	v := validation.New()
	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}

	accountManager := identity.NewAccountManager(st.accounts, st.roles)
	initializer := identity.NewInitializer(accountManager, identity.SeedConfig{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
	}, log.Component("identity"))
	if err := initializer.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("inicializar roles y administrador")
	}

	registerUC := auth.NewRegisterUseCase(st.tx, v, jwtCfg, log.Component("register"))
	loginUC := auth.NewLoginUseCase(accountManager, jwtCfg)
	navigationUC := usecase.NewNavigationUseCase(accountManager)
	farmerUC := usecase.NewFarmerUseCase(st.farmers, st.products, v)
	employeeUC := usecase.NewEmployeeUseCase(st.farmers, st.products, infrapdf.NewMarotoPDFGenerator(), v, log.Component("employee"))
	adminUC := usecase.NewAdminUseCase(accountManager, st.tx, v)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AgriConnect API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	sessionCfg := httpRouter.SessionConfig{CookieSecure: cfg.Session.CookieSecure}
	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterUC:   registerUC,
		LoginUC:      loginUC,
		NavigationUC: navigationUC,
		FarmerUC:     farmerUC,
		EmployeeUC:   employeeUC,
		AdminUC:      adminUC,
		Accounts:     accountManager,
		Sessions:     httpRouter.NewSessionStore(sessionCfg),
		Session:      sessionCfg,
		Auth: httpRouter.AuthConfig{
			JWTSecret:    cfg.JWT.Secret,
			CookieName:   cfg.Session.AuthCookieName,
			CookieSecure: cfg.Session.CookieSecure,
			ExpMinutes:   cfg.JWT.Expiration,
		},
		Log: log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
