package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"taxdocs-backend/internal/audit"
	"taxdocs-backend/internal/clients"
	"taxdocs-backend/internal/dashboard"
	"taxdocs-backend/internal/documents"
	"taxdocs-backend/internal/intake"
	"taxdocs-backend/internal/shared/config"
	"taxdocs-backend/internal/shared/server"
	"taxdocs-backend/internal/shared/storage/db"
	"taxdocs-backend/internal/shared/telemetry"
	"taxdocs-backend/internal/users"
)

// App holds the shared dependencies for one running process.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	ClientsRepo   clients.Repo
	DocumentsRepo documents.Repo
	AuditRepo     audit.Repo
	UsersRepo     users.Repo

	AuditRecorder *audit.Recorder
	IntakeService *intake.Service
	UsersService  *users.Service

	IntakeHandler    *intake.Handler
	DocumentsHandler *documents.Handler
	DashboardHandler *dashboard.Handler
	UsersHandler     *users.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		IntakeHandler:    app.IntakeHandler,
		DocumentsHandler: app.DocumentsHandler,
		DashboardHandler: app.DashboardHandler,
		UsersHandler:     app.UsersHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_mode", map[string]any{
				"reason": "DATABASE_URL empty",
			})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_mode", map[string]any{
				"reason": "database connect failed",
				"error":  err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_mode", map[string]any{
				"reason": "migrations failed",
				"error":  err.Error(),
			})
			sqlDB.Close()
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildServices(app *App) {
	if app.DB != nil {
		app.ClientsRepo = &clients.PGRepo{DB: app.DB}
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.AuditRepo = &audit.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		clientsRepo := clients.NewMemoryRepo()
		docRepo := documents.NewMemoryRepo()
		// In Postgres the documents table enforces the client foreign key
		// and listings join clients; the memory repo gets both from hooks.
		docRepo.ClientExists = clientsRepo.Exists
		docRepo.ClientInfo = clientsRepo.Info

		app.ClientsRepo = clientsRepo
		app.DocumentsRepo = docRepo
		app.AuditRepo = audit.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.AuditRecorder = &audit.Recorder{Repo: app.AuditRepo}
	app.IntakeService = &intake.Service{
		Clients:   app.ClientsRepo,
		Documents: app.DocumentsRepo,
		Audit:     app.AuditRecorder,
	}
	app.UsersService = users.NewService(app.UsersRepo)

	app.IntakeHandler = intake.NewHandler(app.IntakeService)
	app.DocumentsHandler = documents.NewHandler(app.DocumentsRepo, app.AuditRecorder)
	app.DashboardHandler = dashboard.NewHandler(app.ClientsRepo, app.DocumentsRepo, app.AuditRepo)
	app.UsersHandler = users.NewHandler(app.UsersService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
