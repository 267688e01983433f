package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Banking-Admin-Backend/internal/config"
	"github.com/ndewijer/Banking-Admin-Backend/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending draft store migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := database.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(db); err != nil {
				return err
			}
			v, err := database.SchemaVersion(db)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is at schema version %d\n", cfg.Database.Path, v)
			return nil
		},
	}
}
