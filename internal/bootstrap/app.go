package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"genius-backend/internal/admins"
	"genius-backend/internal/candidates"
	"genius-backend/internal/dashboard"
	"genius-backend/internal/jobs"
	"genius-backend/internal/lookup"
	"genius-backend/internal/services/health"
	"genius-backend/internal/shared/auth"
	"genius-backend/internal/shared/config"
	"genius-backend/internal/shared/server"
	"genius-backend/internal/shared/storage/db"
	"genius-backend/internal/shared/telemetry"
	"genius-backend/internal/trackcode"
	"genius-backend/internal/tracking"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Redis  *redis.Client
	Health *health.Service

	AdminsService     *admins.Service
	CandidatesService *candidates.Service
	TrackingService   *tracking.Service
	LookupService     *lookup.Service
	JobsService       *jobs.Service
	DashboardService  *dashboard.Service
}

// Build connects storage, wires services and handlers, and mounts routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	rdb, err := buildRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB, Redis: rdb, Health: health.NewService()}
	if sqlDB != nil {
		app.Health.Register("postgres", sqlDB.PingContext)
	}
	if rdb != nil {
		app.Health.Register("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}
	if err := seedAdmin(ctx, app); err != nil {
		return nil, err
	}

	var google *admins.GoogleSignIn
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		google = admins.NewGoogleSignIn(app.AdminsService, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL)
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:     cfg,
		Sessions:   app.AdminsService,
		Health:     app.Health,
		Admins:     admins.NewHandler(app.AdminsService),
		Google:     google,
		Candidates: candidates.NewHandler(app.CandidatesService),
		Tracking:   tracking.NewHandler(app.TrackingService),
		Lookup:     lookup.NewHandler(app.LookupService),
		Jobs:       jobs.NewHandler(app.JobsService),
		Dashboard:  dashboard.NewHandler(app.DashboardService),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_store", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_store", map[string]any{"reason": "connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.redis_unavailable", map[string]any{"error": err})
			return nil, nil
		}
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

func buildServices(app *App) error {
	var (
		adminRepo     admins.Repo
		candidateRepo candidates.Repo
		trackingRepo  tracking.Repo
		jobRepo       jobs.Repo
	)
	if app.DB != nil {
		adminRepo = &admins.PGRepo{DB: app.DB}
		candidateRepo = &candidates.PGRepo{DB: app.DB}
		trackingRepo = &tracking.PGRepo{DB: app.DB}
		jobRepo = &jobs.PGRepo{DB: app.DB}
	} else {
		adminRepo = admins.NewMemoryRepo()
		candidateRepo = candidates.NewMemoryRepo()
		trackingRepo = tracking.NewMemoryRepo()
		jobRepo = jobs.NewMemoryRepo()
	}

	signer, err := auth.NewSigner(app.Config.JWTSecret, app.Config.SessionTTL, app.Config.Env)
	if err != nil {
		return err
	}
	var revoked admins.Revocations
	if app.Redis != nil {
		revoked = admins.NewRedisRevocations(app.Redis)
	}

	codes := trackcode.Checker{Gen: trackcode.NewGenerator(), MaxAttempts: app.Config.TrackingCodeMaxAttempts}

	app.AdminsService = admins.NewService(adminRepo, signer, revoked)
	app.CandidatesService = candidates.NewService(candidateRepo, codes)
	app.TrackingService = tracking.NewService(trackingRepo, app.CandidatesService, codes)
	app.LookupService = lookup.NewService(trackingRepo)
	app.JobsService = jobs.NewService(jobRepo)
	app.DashboardService = dashboard.NewService(app.JobsService, app.CandidatesService, app.TrackingService)
	return nil
}

func seedAdmin(ctx context.Context, app *App) error {
	email := strings.TrimSpace(app.Config.AdminEmail)
	if email == "" || app.Config.AdminPassword == "" {
		return nil
	}
	admin, created, err := app.AdminsService.EnsureAdmin(ctx, email, app.Config.AdminPassword, app.Config.AdminName)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		telemetry.Info("bootstrap.admin_seeded", map[string]any{"adminId": admin.ID, "email": admin.Email})
	}
	return nil
}

// Close releases storage connections.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}
