package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/bootstrap"
)

func seedCmd() *cobra.Command {
	var fakeUsers, fakeReviews int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference and demo data into PostgreSQL",
		Long: `Load the reference colleges, departments, demo accounts and polls,
then generate fake users and reviews.

Examples:
  # Reference data only
  campuscope seed

  # Reference data plus 200 generated reviews
  campuscope seed --fake-users 20 --fake-reviews 200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
			if err != nil {
				return err
			}
			// The memory backend is seeded by serve and would be discarded here
			if cfg.Storage.Backend != repositories.BackendPostgres {
				return fmt.Errorf("seed needs the postgres backend, configured backend is %q", cfg.Storage.Backend)
			}
			if cmd.Flags().Changed("fake-users") {
				cfg.Seed.FakeUsers = fakeUsers
			}
			if cmd.Flags().Changed("fake-reviews") {
				cfg.Seed.FakeReviews = fakeReviews
			}
			if cfg.Seed.FakeUsers < 0 || cfg.Seed.FakeReviews < 0 {
				return fmt.Errorf("fake counts must not be negative")
			}

			storage, err := bootstrap.SetupStorage(ctx, cfg, lgr)
			if err != nil {
				return err
			}
			defer storage.Close()

			return bootstrap.SeedData(ctx, cfg, storage.Repos, lgr)
		},
	}

	cmd.Flags().IntVar(&fakeUsers, "fake-users", 0, "Number of generated demo accounts")
	cmd.Flags().IntVar(&fakeReviews, "fake-reviews", 0, "Number of generated demo reviews")
	return cmd
}
