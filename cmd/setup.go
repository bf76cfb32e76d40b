package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/desertthunder/evloca/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file from the embedded template when missing and reports the
// migrations applied to the database. Migrations themselves run in [Runner.Bootstrap].
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file found", "path", configPath)
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.writePlain("✓ Created %s\n", configPath)
	}

	if r.db == nil {
		return fmt.Errorf("%w: database not initialized", shared.ErrMissingConfig)
	}

	applied, err := shared.AppliedMigrations(r.db)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	versions := slices.Sorted(maps.Keys(applied))

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	r.writePlain("✓ Database ready: %s\n", r.config.Database.Path)
	r.writePlain("  Migrations applied: %v\n", versions)
	r.writePlain("  API: %s\n", r.config.API.BaseURL)
	return nil
}
