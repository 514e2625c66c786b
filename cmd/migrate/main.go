// migrate aplica o revierte las migraciones embebidas (esquema y datos semilla) en PostgreSQL.
//
// Uso: go run ./cmd/migrate [up|down|status|reset]
// Por defecto ejecuta "up". Lee la conexión de DATABASE_URL o DB_HOST, DB_PORT, etc.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/AgriConnect-api/internal/infrastructure/postgres"
	"github.com/jhoicas/AgriConnect-api/pkg/config"
	"github.com/jhoicas/AgriConnect-api/pkg/logger"
)

func main() {
	command := postgres.MigrateUp
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	if err := postgres.RunMigrations(ctx, cfg.DB.ConnectionString(), command); err != nil {
		log.Error().Err(err).Str("command", command).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("command", command).Dur("elapsed", time.Since(start)).Msg("migración completada")
}
