package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"starwars/internal/database"
	"starwars/internal/pkg/logger"
)

var (
	dbURL   string
	verbose bool
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holoctl",
		Short: "Operator tooling for the Star Wars blog API",
		Long: `holoctl manages the database behind the Star Wars blog API.

The database is read from --db, falling back to DATABASE_URL and then to
the default sqlite file /tmp/test.db.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}
			return logger.Setup(level, "text")
		},
	}

	cmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to DATABASE_URL)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log SQL statements")

	cmd.AddCommand(newMigrateCmd(), newSeedCmd(), newTablesCmd())
	return cmd
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveURL() string {
	if dbURL != "" {
		return dbURL
	}
	_ = godotenv.Load()
	if env := os.Getenv("DATABASE_URL"); env != "" {
		return env
	}
	return database.DefaultURL
}

func openDB() (*gorm.DB, error) {
	return database.ConnectWithOptions(resolveURL(), database.Options{Logger: logger.Gorm(verbose)})
}
