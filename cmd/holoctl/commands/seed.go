package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"starwars/cmd/holoctl/output"
	"starwars/internal/database"
	"starwars/internal/seed"
)

func newSeedCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample planets, characters and a demo user",
		Long: `Insert sample data. Nothing is written when planets already exist,
unless --reset is given, which empties every table first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}

			summary, err := seed.Run(cmd.Context(), db, reset)
			if err != nil {
				output.Error(cmd.OutOrStdout(), "seeding failed")
				return err
			}

			out := cmd.OutOrStdout()
			if summary.Skipped {
				output.Warning(out, "database already has data, use --reset to start over")
				return nil
			}
			output.Success(out, "seeded %d planets, %d characters, %d users, %d favorites",
				summary.Planets, summary.Characters, summary.Users, summary.Favorites)
			output.Muted(out, "demo login: %s / %s", seed.DemoEmail, seed.DemoPassword)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Delete existing rows before seeding")
	return cmd
}
