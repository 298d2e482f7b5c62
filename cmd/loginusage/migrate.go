package main

import (
	"fmt"

	"github.com/aevon-lab/login-usage/internal/core/storage/postgres"
	"github.com/aevon-lab/login-usage/internal/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := postgres.NewAdapter(a.cfg.Database.DSN, a.cfg.Database.MaxOpenConns, a.cfg.Database.MaxIdleConns)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			result, err := migrations.RunMigrations(db.DB(), true)
			if err != nil {
				return err
			}
			if result.Applied {
				fmt.Fprintf(cmd.OutOrStdout(), "migrated from version %d to %d\n", result.FromVersion, result.ToVersion)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "schema up to date at version %d\n", result.ToVersion)
			}
			return nil
		},
	}
}
