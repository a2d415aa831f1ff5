package cli

import (
	"fmt"

	"github.com/djouu94/workout-tracker-v2/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [TYPE]",
		Short: "Lister les programmes, ou détailler un type de séance",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return app.Catalog.Types(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprint(out, formatter.FormatCatalog(app.Catalog.Programs()))
				return nil
			}
			p, ok := app.Catalog.Program(args[0])
			if !ok {
				return fmt.Errorf("unknown session type %q", args[0])
			}
			fmt.Fprintln(out, formatter.FormatProgram(p))
			return nil
		},
	}
}
