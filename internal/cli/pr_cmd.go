package cli

import (
	"fmt"
	"strings"

	"github.com/djouu94/workout-tracker-v2/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPRCmd(app *App) *cobra.Command {
	var sessionType string

	cmd := &cobra.Command{
		Use:   "pr [EXERCISE]",
		Short: "Record personnel d'un exercice, ou de tout un programme avec --type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if sessionType != "" {
				p, ok := app.Catalog.Program(sessionType)
				if !ok {
					return fmt.Errorf("unknown session type %q", sessionType)
				}
				names := make([]string, len(p.Exercises))
				for i, e := range p.Exercises {
					names[i] = e.Name
				}
				records, err := app.Records.RecordsFor(ctx, names)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatRecords(names, records))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("exercise name or --type is required")
			}
			exercise := strings.TrimSpace(args[0])
			pr, err := app.Records.MaxWeightFor(ctx, exercise)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatRecord(exercise, pr))
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionType, "type", "", "afficher les records de chaque exercice du programme")
	return cmd
}
