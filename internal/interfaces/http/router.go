package http

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventarios-api/internal/application/auth"
	"github.com/jhoicas/inventarios-api/internal/application/backup"
	"github.com/jhoicas/inventarios-api/internal/application/documents"
	"github.com/jhoicas/inventarios-api/internal/application/history"
	"github.com/jhoicas/inventarios-api/internal/application/usecase"
	"github.com/jhoicas/inventarios-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	DepartmentUC    *usecase.DepartmentUseCase
	UserUC          *usecase.UserUseCase
	FloorUC         *usecase.FloorUseCase
	AreaUC          *usecase.AreaUseCase
	CategoryUC      *usecase.CategoryUseCase
	DeviceUC        *usecase.DeviceUseCase
	AccessoryUC     *usecase.AccessoryUseCase
	ReportUC        *usecase.ReportUseCase
	SearchUC        *usecase.SearchUseCase
	LocationUC      *usecase.LocationUseCase
	FormatUC        *usecase.FormatUseCase
	ResponsivaUC    *documents.ResponsivaUseCase
	BajaUC          *documents.BajaUseCase
	MantenimientoUC *documents.MantenimientoUseCase
	History         *history.Service
	Backup          *backup.Service
	LoginLimiter    *RateLimiter
	JWTSecret       string
	UploadsDir      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// PDFs subidos (público, igual que el front los enlaza)
	app.Static("/uploads/responsivas", filepath.Join(deps.UploadsDir, "responsivas"))
	app.Static("/uploads/bajas", filepath.Join(deps.UploadsDir, "bajas"))

	api := app.Group("/api")

	// Auth (público, con límite por IP)
	authHandler := NewAuthHandler(deps.AuthUC)
	if deps.LoginLimiter != nil {
		api.Post("/auth/login", deps.LoginLimiter.Handler(), authHandler.Login)
	} else {
		api.Post("/auth/login", authHandler.Login)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	departments := protected.Group("/departments")
	departmentHandler := NewDepartmentHandler(deps.DepartmentUC)
	departments.Get("/", departmentHandler.List)
	departments.Post("/", departmentHandler.Create)
	departments.Get("/:id/equipments/count", departmentHandler.CountEquipments)
	departments.Get("/:id/equipments/has", departmentHandler.HasEquipments)
	departments.Get("/:id", departmentHandler.Get)
	departments.Put("/:id", departmentHandler.Update)
	departments.Delete("/:id", departmentHandler.Delete)

	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	floors := protected.Group("/floors")
	floorHandler := NewFloorHandler(deps.FloorUC)
	floors.Get("/", floorHandler.List)
	floors.Post("/", floorHandler.Create)
	floors.Put("/restore/:id", floorHandler.Restore)
	floors.Get("/:id", floorHandler.Get)
	floors.Put("/:id", floorHandler.Update)
	floors.Delete("/:id", floorHandler.Delete)

	areas := protected.Group("/areas")
	areaHandler := NewAreaHandler(deps.AreaUC)
	areas.Get("/", areaHandler.List)
	areas.Post("/", areaHandler.Create)
	areas.Get("/check-name/:name", areaHandler.CheckName)
	areas.Put("/restablecer/:id", areaHandler.Restore)
	areas.Get("/:id", areaHandler.Get)
	areas.Put("/:id", areaHandler.Update)
	areas.Delete("/:id", areaHandler.Delete)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Post("/addField", categoryHandler.AddField)
	categories.Get("/fields/:categoryId", categoryHandler.ListFields)
	categories.Delete("/fields/:fieldId", categoryHandler.DeleteField)
	categories.Patch("/restore/:id", categoryHandler.Restore)
	categories.Get("/:id", categoryHandler.Get)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	devices := protected.Group("/devices")
	deviceHandler := NewDeviceHandler(deps.DeviceUC)
	devices.Get("/", deviceHandler.List)
	devices.Post("/", deviceHandler.Create)
	devices.Get("/category/:id", deviceHandler.ByCategory)
	devices.Get("/por-departamento/:id", deviceHandler.ByDepartment)
	devices.Get("/custom-fields/:categoryId", deviceHandler.CustomFields)
	devices.Get("/:id", deviceHandler.Get)
	devices.Put("/:id", deviceHandler.Update)
	devices.Delete("/:id", deviceHandler.Delete)

	accessories := protected.Group("/accessories")
	accessoryHandler := NewAccessoryHandler(deps.AccessoryUC, deps.ReportUC)
	accessories.Get("/", accessoryHandler.List)
	accessories.Post("/", accessoryHandler.Create)
	accessories.Get("/categories", accessoryHandler.Categories)
	accessories.Get("/check-name/:name", accessoryHandler.CheckName)
	accessories.Post("/export/csv", accessoryHandler.ExportCSV)
	accessories.Post("/export/excel", accessoryHandler.ExportExcel)
	accessories.Get("/:id", accessoryHandler.Get)
	accessories.Put("/:id", accessoryHandler.Update)
	accessories.Delete("/:id", accessoryHandler.Delete)

	historyGroup := protected.Group("/history", adminOnly)
	historyHandler := NewHistoryHandler(deps.History)
	historyGroup.Get("/", historyHandler.List)
	historyGroup.Post("/restore/:id", historyHandler.Restore)
	historyGroup.Post("/revert/:id", historyHandler.Revert)
	historyGroup.Delete("/delete-permanent/:id", historyHandler.DeletePermanent)
	historyGroup.Get("/:id", historyHandler.Get)

	responsivas := protected.Group("/responsivas")
	responsivaHandler := NewResponsivaHandler(deps.ResponsivaUC)
	responsivas.Get("/", responsivaHandler.List)
	responsivas.Post("/", responsivaHandler.Create)
	responsivas.Post("/preview", responsivaHandler.Preview)
	responsivas.Get("/pdf/:id", responsivaHandler.PDF)
	responsivas.Delete("/delete/:id", responsivaHandler.HardDelete)
	responsivas.Post("/:id/documento", responsivaHandler.UploadDocument)
	responsivas.Get("/:id/documentos", responsivaHandler.Documents)
	responsivas.Delete("/:id/documentos/:docId", responsivaHandler.DeleteDocument)
	responsivas.Get("/:id", responsivaHandler.Get)
	responsivas.Delete("/:id", responsivaHandler.Cancel)

	bajas := protected.Group("/bajas")
	bajaHandler := NewBajaHandler(deps.BajaUC)
	bajas.Get("/", bajaHandler.List)
	bajas.Post("/", bajaHandler.Create)
	bajas.Get("/pdf/:id", bajaHandler.PDF)
	bajas.Get("/descargar/:nombre", bajaHandler.Download)
	bajas.Delete("/por-dispositivo/:id", bajaHandler.DeleteByDevice)
	bajas.Get("/:id/detalle", bajaHandler.Detail)
	bajas.Post("/:id/documento", bajaHandler.UploadDocument)
	bajas.Get("/:id/documentos", bajaHandler.Documents)
	bajas.Delete("/:id/documentos/:docId", bajaHandler.DeleteDocument)
	bajas.Get("/:id", bajaHandler.Get)

	mantenimientos := protected.Group("/mantenimientos")
	mantenimientoHandler := NewMantenimientoHandler(deps.MantenimientoUC)
	mantenimientos.Get("/", mantenimientoHandler.List)
	mantenimientos.Post("/", mantenimientoHandler.Create)
	mantenimientos.Get("/pdf/:id", mantenimientoHandler.PDF)
	mantenimientos.Get("/:id", mantenimientoHandler.Get)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/devices-summary", reportHandler.DeviceSummary)
	reports.Post("/devices-list", reportHandler.DeviceList)
	reports.Post("/devices-export/csv", reportHandler.DeviceCSV)
	reports.Post("/devices-export/excel", reportHandler.DeviceExcel)
	reports.Get("/accessories-summary", reportHandler.AccessorySummary)
	reports.Post("/accessories-list", reportHandler.AccessoryList)
	reports.Post("/accessories-export/csv", reportHandler.AccessoryCSV)
	reports.Post("/accessories-export/excel", reportHandler.AccessoryExcel)
	reports.Get("/all-accessories", reportHandler.AllAccessories)

	lookupHandler := NewLookupHandler(deps.SearchUC, deps.LocationUC, deps.FormatUC)
	protected.Get("/search", lookupHandler.Search)
	protected.Get("/locations", lookupHandler.Locations)
	protected.Get("/formats/:filename", lookupHandler.Format)

	databaseHandler := NewDatabaseHandler(deps.Backup)
	database := protected.Group("/database", adminOnly)
	database.Get("/export", databaseHandler.Export)
	database.Post("/restore", databaseHandler.Restore)
	backupConfig := protected.Group("/backup-config", adminOnly)
	backupConfig.Get("/", databaseHandler.GetConfig)
	backupConfig.Post("/", databaseHandler.SaveConfig)
}
