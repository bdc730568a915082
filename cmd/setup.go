package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/desertthunder/songsite/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates config.toml from the embedded template when missing, then initializes the database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := r.configPath
	if configPath == "" {
		configPath = "config.toml"
	}

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err := shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
			} else if err := config.ApplyEnv(r.getenv); err == nil {
				r.config = config
			}
		}
	}

	if err := os.MkdirAll(r.config.Library.SongsDir, 0755); err != nil {
		return fmt.Errorf("failed to create songs directory: %w", err)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	r.writePlain("✓ Config: %s\n", configPath)
	r.writePlain("✓ Songs directory: %s\n", r.config.Library.SongsDir)
	r.writePlain("✓ Database: %s\n", r.config.Database.Path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Copy audio files into %s\n", r.config.Library.SongsDir)
	r.writePlain("2. Set ADMIN_KEY (and YOUTUBE_API_KEY for youtube mode) in .env or config.toml\n")
	r.writePlain("3. Run 'songsite serve'\n")
	return nil
}

// openDatabase opens the configured SQLite database and runs pending migrations.
func (r *Runner) openDatabase() (*sql.DB, error) {
	r.logger.Debug("opening database", "path", r.config.Database.Path)

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}
