package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"starwars/cmd/holoctl/output"
	"starwars/internal/database"
	"starwars/internal/domain"
)

type tableCount struct {
	name  string
	count int64
}

func countTables(db *gorm.DB) ([]tableCount, error) {
	models := []struct {
		name  string
		model any
	}{
		{"user", &domain.User{}},
		{"planet", &domain.Planet{}},
		{"character", &domain.Character{}},
		{"favorite", &domain.Favorite{}},
	}

	counts := make([]tableCount, 0, len(models))
	for _, m := range models {
		var n int64
		if err := db.Model(m.model).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", m.name, err)
		}
		counts = append(counts, tableCount{name: m.name, count: n})
	}
	return counts, nil
}

func printCounts(out io.Writer, counts []tableCount) error {
	output.Section(out, "Tables")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%s\t%d\n", output.CountIcon(c.count), c.name, c.count)
	}
	return w.Flush()
}

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print row counts for every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer database.Close(db)

			counts, err := countTables(db)
			if err != nil {
				return err
			}
			return printCounts(cmd.OutOrStdout(), counts)
		},
	}
}
