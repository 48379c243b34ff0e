// init_admin crea el usuario administrador a partir de ADMIN_USERNAME y
// ADMIN_PASSWORD si ese username aún no existe. Aplica antes las migraciones.
//
// Uso: go run ./cmd/init_admin
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/inventarios-api/internal/application/auth"
	"github.com/jhoicas/inventarios-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventarios-api/pkg/config"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	created, err := authUC.BootstrapAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	if !created {
		log.Info().Str("username", cfg.Admin.Username).Msg("el administrador ya existe; sin cambios")
		return
	}
	log.Info().Str("username", cfg.Admin.Username).Msg("administrador creado")
}
