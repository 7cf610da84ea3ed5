package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/pickscout/internal/database"
	"github.com/yourusername/pickscout/internal/repository"
	"github.com/yourusername/pickscout/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample cappers and picks",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.IsProduction() {
			return fmt.Errorf("refusing to seed a production database")
		}

		ctx := context.Background()
		db, err := database.NewDB(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		repos, err := repository.NewRepositories(db)
		if err != nil {
			return err
		}

		res, err := seed.NewSeeder(db, repos, appLog).Seed(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d cappers and %d picks\n", res.Cappers, res.Picks)
		return nil
	},
}
