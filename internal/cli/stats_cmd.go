package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/djouu94/workout-tracker-v2/internal/cli/formatter"
	"github.com/djouu94/workout-tracker-v2/internal/service"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Totaux et dernières séries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, app, recent)
		},
	}

	cmd.Flags().IntVar(&recent, "recent", service.DefaultRecentLimit, "nombre de séries récentes")
	return cmd
}

func runStats(cmd *cobra.Command, app *App, recent int) error {
	ov := app.Dashboard.Overview(cmd.Context(), recent)
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOverview(ov.Stats, ov.Recent, ov.Warnings, time.Now()))
	return nil
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}
