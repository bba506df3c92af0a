package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"files-backend/internal/files"
	"files-backend/internal/services/health"
	"files-backend/internal/shared/config"
	"files-backend/internal/shared/server"
	"files-backend/internal/shared/server/middleware"
	"files-backend/internal/shared/storage/db"
	"files-backend/internal/shared/telemetry"
	"files-backend/internal/users"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	DB            *sql.DB
	FilesRepo     files.Repo
	UsersRepo     users.Repo
	FilesService  *files.Service
	UsersService  *users.Service
	HealthService *health.Service
	FilesHandler  *files.Handler
	UsersHandler  *users.Handler
	HealthHandler *health.Handler
}

// Build connects storage, wires services and handlers, and constructs the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		FilesHandler:  app.FilesHandler,
		UsersHandler:  app.UsersHandler,
		HealthHandler: app.HealthHandler,
		RateLimiter:   middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_store", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if config.IsDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_store", map[string]any{"reason": "database unavailable", "error": err})
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildServices(app *App) {
	var pinger health.Pinger
	if app.DB != nil {
		app.FilesRepo = &files.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		pinger = app.DB
	} else {
		app.FilesRepo = files.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.FilesService = files.NewService(app.FilesRepo)
	app.UsersService = users.NewService(app.UsersRepo)
	app.HealthService = health.NewService(pinger)

	app.FilesHandler = files.NewHandler(app.FilesService, files.HandlerOptions{
		MaxUploadBytes: app.Config.MaxUploadBytes,
		PreviewMaxAge:  app.Config.PreviewMaxAge,
	})
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.HealthHandler = health.NewHandler(app.HealthService)
}
