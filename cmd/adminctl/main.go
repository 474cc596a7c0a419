// Command adminctl manages admin accounts and the schema from the shell.
//
//	go run ./cmd/adminctl create-admin --email ops@example.com --password ... --name Ops
//	go run ./cmd/adminctl reset-password --email ops@example.com --password ...
//	go run ./cmd/adminctl migrate
package main

import (
	"context"
	"database/sql"
	"os"

	"genius-backend/internal/admins"
	"genius-backend/internal/shared/config"
	"genius-backend/internal/shared/storage/db"
	"genius-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	_ = telemetry.Configure(cfg.LogLevel)
	defer telemetry.Sync()

	env := &cliEnv{
		cfg:  cfg,
		open: func(ctx context.Context) (*sql.DB, error) { return connect(ctx, cfg) },
	}
	env.repo = func(ctx context.Context) (admins.Repo, func(), error) {
		sqlDB, err := env.open(ctx)
		if err != nil {
			return nil, nil, err
		}
		return &admins.PGRepo{DB: sqlDB}, func() { _ = sqlDB.Close() }, nil
	}

	if err := newRootCmd(env).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func connect(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}
