package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/migrations"
	"github.com/spf13/cobra"
)

const migrateTimeout = 5 * time.Minute

func newMigrateCommand(logger *log.Logger) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Long: `Creates or updates the users table in the store named by STORE_URL.
Postgres and sqlite URLs are supported; the matching embedded SQL is used
unless --dir points at a directory of migration files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), logger, dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", os.Getenv("MIGRATIONS_DIR"), "read migrations from this directory instead of the embedded set")
	return cmd
}

func runMigrate(ctx context.Context, logger *log.Logger, dir string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		logger.Error("Failed to load store configuration", "error", err.Error())
		return err
	}

	driver, err := config.StoreDriver(settings.Store.URL)
	if err != nil {
		return err
	}

	db, err := config.NewDatabase(logger, &settings.Store)
	if err != nil {
		logger.Error("Failed to connect to database for migration", "error", err.Error())
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close SQL DB after migration", "error", err.Error())
		}
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()

	if err := migrations.Up(ctx, sqlDB, migrations.Config{Driver: driver, Dir: dir, Logger: logger}); err != nil {
		logger.Error("Database migration failed", "error", err.Error())
		return err
	}

	logger.Info("Database migrations completed")
	return nil
}
