package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"hotel-frontend/config"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if _, err := config.ConnectDatabase(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied (%s).\n", cfg.DBDriver)
			return nil
		},
	}
}
