package cli

import (
	"fmt"
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/catalog"
	"github.com/djouu94/workout-tracker-v2/internal/cli/formatter"
	"github.com/djouu94/workout-tracker-v2/internal/domain"
	"github.com/djouu94/workout-tracker-v2/internal/service"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var days int
	var sessionType string
	var distinct bool

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"hist"},
		Short:   "Afficher les séances récentes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return domain.Invalid("days", "--days must be >= 0, got %d", days)
			}
			views, err := app.History.ListSessions(cmd.Context(), service.HistoryFilter{
				Days:     days,
				Type:     sessionType,
				Distinct: distinct,
			})
			var warnings []string
			if err != nil {
				app.logger().WarnContext(cmd.Context(), "history unavailable", "error", err)
				warnings = append(warnings, "Historique indisponible: "+err.Error())
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionList(views, warnings, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", app.DefaultDays, "fenêtre en jours (0 pour tout l'historique)")
	cmd.Flags().StringVar(&sessionType, "type", catalog.AllTypes, "filtrer par type de séance")
	cmd.Flags().BoolVar(&distinct, "distinct", false, "fusionner les lignes identiques d'une séance")
	_ = cmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return append([]string{catalog.AllTypes}, app.Catalog.Types()...), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
