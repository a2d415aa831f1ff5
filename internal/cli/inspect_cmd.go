package cli

import (
	"fmt"

	"github.com/djouu94/workout-tracker-v2/internal/cli/formatter"
	"github.com/djouu94/workout-tracker-v2/internal/db"
	"github.com/spf13/cobra"
)

func newInspectCmd(app *App) *cobra.Command {
	var table string
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Schéma du stockage, ou lignes brutes d'une table avec --table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if table == "" {
				tables, err := app.Schema.Describe(ctx)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatSchema(tables))
				return nil
			}
			dump, err := app.Schema.Dump(ctx, table, limit)
			if err != nil {
				return fmt.Errorf("table %q: %w", table, err)
			}
			fmt.Fprint(out, formatter.FormatDump(dump))
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "table à afficher")
	cmd.Flags().IntVar(&limit, "limit", 20, "nombre maximum de lignes")
	_ = cmd.RegisterFlagCompletionFunc("table", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return db.Tables, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
