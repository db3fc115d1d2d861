package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"starwars/cmd/holoctl/output"
	"starwars/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the user, planet, character and favorite tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				output.Error(cmd.OutOrStdout(), "migration failed")
				return err
			}
			output.Success(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}
