package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/locvowork/practiceapp/internal/config"
	"github.com/locvowork/practiceapp/internal/database"
	"github.com/locvowork/practiceapp/internal/export"
	"github.com/locvowork/practiceapp/internal/handler"
	"github.com/locvowork/practiceapp/internal/logger"
	"github.com/locvowork/practiceapp/internal/repository"
	"github.com/locvowork/practiceapp/internal/service"
)

type App struct {
	Echo *echo.Echo
	// DB is nil when the memory store is selected.
	DB      *sql.DB
	Repos   repository.Set
	Search  *database.ElasticSearchClient
	Archive *database.DatastoreClient
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

// Initialize loads configuration, opens the store and the optional search
// and archive backends, and wires the HTTP routes.
func (a *App) Initialize(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	cfg := config.DefaultEnvConfig

	logger.InitLogging(cfg.LOG_FILE_PATH, cfg.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	if err := a.openStore(ctx, cfg); err != nil {
		return err
	}

	var opts []service.Option
	if cfg.ELASTIC_URL != "" {
		es, err := database.NewElasticSearchClient(cfg.ELASTIC_URL)
		if err != nil {
			return fmt.Errorf("failed to initialize elasticsearch: %w", err)
		}
		a.Search = es
		opts = append(opts, service.WithIndex(es))
		logger.InfoLog(ctx, "Employee search index enabled at %s", cfg.ELASTIC_URL)
	}
	if cfg.DATASTORE_PROJECT_ID != "" {
		ds, err := database.NewDatastoreClient(ctx, cfg.DATASTORE_PROJECT_ID)
		if err != nil {
			return fmt.Errorf("failed to initialize datastore: %w", err)
		}
		a.Archive = ds
		opts = append(opts, service.WithArchive(ds))
		logger.InfoLog(ctx, "Job history archive enabled for project %s", cfg.DATASTORE_PROJECT_ID)
	}

	tmpl, err := export.LoadTemplate(cfg.EXPORT_CONFIG_PATH)
	if err != nil {
		return fmt.Errorf("failed to load export template: %w", err)
	}

	svc := service.New(a.Repos, opts...)

	a.RegisterMiddlewares()
	a.RegisterRoutes(
		handler.NewEmployeeHandler(svc.Employees),
		handler.NewCatalogHandler(svc.Catalog),
		handler.NewExportHandler(svc.Employees, export.NewExporter(tmpl)),
	)

	return nil
}

func (a *App) openStore(ctx context.Context, cfg *config.EnvConfig) error {
	switch cfg.STORE_DRIVER {
	case config.StoreDriverMemory:
		a.Repos = repository.NewMemoryStore().Set()
		logger.InfoLog(ctx, "Using in-memory store")
		return nil
	case config.StoreDriverPostgres:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.STORE_DRIVER)
	}

	dbConfig := database.Config{
		Host:            cfg.DB_HOST,
		Port:            cfg.DB_PORT,
		User:            cfg.DB_USER,
		Password:        cfg.DB_PASSWORD,
		DBName:          cfg.DB_NAME,
		SSLMode:         cfg.DB_SSL_MODE,
		MaxOpenConns:    cfg.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    cfg.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: cfg.DB_CONN_MAX_LIFETIME,
	}

	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	a.DB = db
	a.Repos = repository.NewPostgresSet(db)
	logger.InfoLog(ctx, "Database connection established successfully")
	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(emp *handler.EmployeeHandler, cat *handler.CatalogHandler, exp *handler.ExportHandler) {
	api := a.Echo.Group("/api")

	employees := api.Group("/employees")
	employees.POST("", emp.CreateHandler)
	employees.GET("", emp.ListHandler)
	employees.GET("/search", emp.SearchHandler)
	employees.POST("/reindex", emp.ReindexHandler)
	employees.GET("/:id", emp.GetHandler)
	employees.PUT("/:id", emp.UpdateHandler)
	employees.DELETE("/:id", emp.DeleteHandler)
	employees.GET("/:id/report", emp.ReportHandler)
	employees.PUT("/:id/jobs", emp.ReplaceJobsHandler)
	employees.PUT("/:id/jobs/:jobId", emp.AssignJobHandler)
	employees.DELETE("/:id/jobs/:jobId", emp.ReleaseJobHandler)
	employees.PUT("/:id/job-history/:historyId", emp.SetJobHistoryHandler)
	employees.DELETE("/:id/job-history", emp.ClearJobHistoryHandler)
	employees.PUT("/:id/manager/:managerId", emp.SetManagerHandler)
	employees.DELETE("/:id/manager", emp.ClearManagerHandler)
	employees.PUT("/:id/department/:departmentId", emp.SetDepartmentHandler)
	employees.DELETE("/:id/department", emp.ClearDepartmentHandler)

	departments := api.Group("/departments")
	departments.POST("", cat.CreateDepartmentHandler)
	departments.GET("", cat.ListDepartmentsHandler)
	departments.GET("/:id", cat.GetDepartmentHandler)
	departments.PUT("/:id", cat.UpdateDepartmentHandler)
	departments.DELETE("/:id", cat.DeleteDepartmentHandler)

	jobs := api.Group("/jobs")
	jobs.POST("", cat.CreateJobHandler)
	jobs.GET("", cat.ListJobsHandler)
	jobs.GET("/:id", cat.GetJobHandler)
	jobs.PUT("/:id", cat.UpdateJobHandler)
	jobs.DELETE("/:id", cat.DeleteJobHandler)

	histories := api.Group("/job-histories")
	histories.POST("", cat.CreateJobHistoryHandler)
	histories.GET("", cat.ListJobHistoriesHandler)
	histories.GET("/:id", cat.GetJobHistoryHandler)
	histories.PUT("/:id", cat.UpdateJobHistoryHandler)
	histories.DELETE("/:id", cat.DeleteJobHistoryHandler)

	tasks := api.Group("/tasks")
	tasks.POST("", cat.CreateTaskHandler)
	tasks.GET("", cat.ListTasksHandler)
	tasks.GET("/:id", cat.GetTaskHandler)
	tasks.PUT("/:id", cat.UpdateTaskHandler)
	tasks.DELETE("/:id", cat.DeleteTaskHandler)

	locations := api.Group("/locations")
	locations.POST("", cat.CreateLocationHandler)
	locations.GET("", cat.ListLocationsHandler)
	locations.GET("/:id", cat.GetLocationHandler)
	locations.PUT("/:id", cat.UpdateLocationHandler)
	locations.DELETE("/:id", cat.DeleteLocationHandler)

	countries := api.Group("/countries")
	countries.POST("", cat.CreateCountryHandler)
	countries.GET("", cat.ListCountriesHandler)
	countries.GET("/:id", cat.GetCountryHandler)
	countries.PUT("/:id", cat.UpdateCountryHandler)
	countries.DELETE("/:id", cat.DeleteCountryHandler)

	regions := api.Group("/regions")
	regions.POST("", cat.CreateRegionHandler)
	regions.GET("", cat.ListRegionsHandler)
	regions.GET("/:id", cat.GetRegionHandler)
	regions.PUT("/:id", cat.UpdateRegionHandler)
	regions.DELETE("/:id", cat.DeleteRegionHandler)

	exportGroup := api.Group("/export")
	exportGroup.GET("/roster", exp.RosterHandler)
}

// Close releases the database and archive connections.
func (a *App) Close() {
	if a.Archive != nil {
		a.Archive.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func (a *App) Run() error {
	defer a.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
