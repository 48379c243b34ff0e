package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventarios-api/internal/application/auth"
	"github.com/jhoicas/inventarios-api/internal/application/backup"
	"github.com/jhoicas/inventarios-api/internal/application/documents"
	"github.com/jhoicas/inventarios-api/internal/application/history"
	"github.com/jhoicas/inventarios-api/internal/application/usecase"
	infrabackup "github.com/jhoicas/inventarios-api/internal/infrastructure/backup"
	"github.com/jhoicas/inventarios-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/inventarios-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventarios-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventarios-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventarios-api/internal/interfaces/http"
	"github.com/jhoicas/inventarios-api/pkg/config"
	"github.com/jhoicas/inventarios-api/pkg/logger"
)

// backupJobTimeout tope de un respaldo automático.
const backupJobTimeout = 30 * time.Minute

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Strs("scripts", applied).Msg("esquema al día")

	loc, err := time.LoadLocation(cfg.Backup.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Backup.Timezone).Msg("zona horaria de respaldos")
	}

	uploads, err := storage.NewLocalStorage(cfg.Storage.UploadsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de archivos subidos")
	}
	formats, err := storage.NewLocalStorage(cfg.Storage.FormatsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de formatos")
	}

	store := postgres.NewStore(pool)
	txRunner := postgres.NewTxRunner(pool)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Organization)

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.Username != "" {
		created, err := authUC.BootstrapAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("username", cfg.Admin.Username).Msg("administrador inicial creado")
		}
	}

	backupSvc := backup.NewService(store, txRunner,
		postgres.NewDatabaseRepository(pool),
		infrabackup.NewPgDumper(cfg.Backup.PgDumpPath, cfg.DB),
		backup.Options{BackupsDir: cfg.Storage.BackupsDir, Location: loc},
		log,
	)
	scheduler := infrabackup.NewScheduler(loc, backupSvc.RunScheduled, backupJobTimeout, log)
	backupSvc.SetScheduler(scheduler)
	if err := backupSvc.Load(ctx); err != nil {
		log.Error().Err(err).Msg("cargar programación de respaldos")
	}

	reportUC := usecase.NewReportUseCase(postgres.NewReportRepository(pool), export.NewExporter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB << 20,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.AllowOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Disposition, X-Folio, X-Completo, X-Baja-ID",
	}))

	// Swagger UI en local: http://localhost:<port>/docs (swag init genera el archivo)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Inventarios API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("sin especificación swagger; /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		DepartmentUC:    usecase.NewDepartmentUseCase(store, txRunner),
		UserUC:          usecase.NewUserUseCase(store, txRunner),
		FloorUC:         usecase.NewFloorUseCase(store, txRunner),
		AreaUC:          usecase.NewAreaUseCase(store, txRunner),
		CategoryUC:      usecase.NewCategoryUseCase(store, txRunner),
		DeviceUC:        usecase.NewDeviceUseCase(store, txRunner),
		AccessoryUC:     usecase.NewAccessoryUseCase(store, txRunner),
		ReportUC:        reportUC,
		SearchUC:        usecase.NewSearchUseCase(postgres.NewSearchRepository(pool)),
		LocationUC:      usecase.NewLocationUseCase(postgres.NewLocationRepository(pool)),
		FormatUC:        usecase.NewFormatUseCase(formats),
		ResponsivaUC:    documents.NewResponsivaUseCase(store, txRunner, pdfGenerator, uploads, log),
		BajaUC:          documents.NewBajaUseCase(store, txRunner, pdfGenerator, uploads, log),
		MantenimientoUC: documents.NewMantenimientoUseCase(store, txRunner, pdfGenerator, log),
		History:         history.NewService(store, txRunner, log),
		Backup:          backupSvc,
		LoginLimiter:    httpRouter.NewRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst),
		JWTSecret:       cfg.JWT.Secret,
		UploadsDir:      uploads.Root(),
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
	if err := scheduler.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("detener respaldos programados")
	}

	log.Info().Msg("aplicación detenida")
}
