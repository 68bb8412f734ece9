package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/bootstrap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		Long: `Apply every embedded schema migration that has not run yet.

Examples:
  campuscope migrate --config configs/config.yaml`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}
	if cfg.Storage.Backend != repositories.BackendPostgres {
		return fmt.Errorf("migrate needs the postgres backend, configured backend is %q", cfg.Storage.Backend)
	}

	database, err := bootstrap.OpenDatabase(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	defer database.Close()

	return bootstrap.RunMigrations(ctx, database, lgr)
}
