package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/stratos/internal/shared"
	"github.com/urfave/cli/v3"
)

// ensureConfig loads the config at path, writing the embedded template there first when it is missing.
// Any failure falls back to the defaults.
func (r *Runner) ensureConfig(path string) *shared.Config {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := shared.CreateConfigFile(path); err != nil {
			r.logger.Warn("could not write config template", "path", path, "error", err)
			return shared.DefaultConfig()
		}
		r.logger.Info("config file created", "path", path)
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("could not load config, using defaults", "path", path, "error", err)
		return shared.DefaultConfig()
	}
	return config
}

// SetupDatabase prepares config.toml and the payload cache database. With --rollback it reverts the
// latest migration instead.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	config := r.ensureConfig(cmd.String("config"))
	dbPath := config.Database.Path

	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()
	shared.ConfigureDatabase(db, config.Database)

	if cmd.Bool("rollback") {
		if err := shared.RollbackMigration(db); err != nil {
			return err
		}
		r.logger.Info("rolled back latest migration", "path", dbPath)
		return r.writePlain("✓ Rolled back latest migration on %s\n", dbPath)
	}

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Info("database ready", "path", dbPath)
	return r.writePlain("✓ Database ready at %s\n", dbPath)
}
